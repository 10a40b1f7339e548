package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"rag-backend/internal/dto"
	"rag-backend/internal/seed"
)

// ScrapeService 抓取桩：不发起任何网络请求，只返回合成内容
type ScrapeService struct {
	gen *seed.Generator
}

func NewScrapeService(gen *seed.Generator) *ScrapeService {
	return &ScrapeService{gen: gen}
}

func (s *ScrapeService) Scrape(ctx context.Context, url string) (*dto.ScrapeResp, error) {
	if url == "" {
		return nil, missingParam("url")
	}

	title, content, published := s.gen.Scrape()
	log.Ctx(ctx).Debug().Str("url", url).Msg("returning synthetic scrape result")

	return &dto.ScrapeResp{
		Title:         title,
		Content:       content,
		DatePublished: published,
	}, nil
}
