package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"rag-backend/internal/data"
	"rag-backend/internal/dto"
	"rag-backend/internal/model"
)

// lookupMessages 每个接口各自的提示语
type lookupMessages struct {
	param    string
	notFound string
	failure  string
}

var (
	teamMessages = lookupMessages{
		param:    "name",
		notFound: "Team member not found",
		failure:  "Internal server error",
	}
	investmentMessages = lookupMessages{
		param:    "company_name",
		notFound: "Company not found",
		failure:  "Server error",
	}
	sectorMessages = lookupMessages{
		param:    "sector",
		notFound: "Sector not found",
		failure:  "Server error",
	}
	consultationMessages = lookupMessages{
		param:    "name",
		notFound: "No consultations found for the consultant",
		failure:  "Server error",
	}
)

// LookupService 只读查询，不区分大小写
type LookupService struct {
	store data.EntityStore
}

func NewLookupService(store data.EntityStore) *LookupService {
	return &LookupService{store: store}
}

// GetTeamMember 按姓名精确查找，返回不含 insights 的投影
func (s *LookupService) GetTeamMember(ctx context.Context, name string) (*dto.TeamMemberResp, error) {
	m, err := s.teamMember(ctx, name)
	if err != nil {
		return nil, err
	}
	return dto.NewTeamMemberResp(m), nil
}

// GetTeamInsights 返回该成员的 related_insights，可能为空列表
func (s *LookupService) GetTeamInsights(ctx context.Context, name string) ([]model.TeamInsight, error) {
	m, err := s.teamMember(ctx, name)
	if err != nil {
		return nil, err
	}
	if m.RelatedInsights == nil {
		return []model.TeamInsight{}, nil
	}
	return m.RelatedInsights, nil
}

func (s *LookupService) teamMember(ctx context.Context, name string) (*model.TeamMember, error) {
	rec, err := s.findOne(ctx, model.KindTeamMember, "name", name, teamMessages)
	if err != nil {
		return nil, err
	}
	return rec.(*model.TeamMember), nil
}

func (s *LookupService) GetInvestment(ctx context.Context, company string) (*dto.InvestmentResp, error) {
	inv, err := s.investment(ctx, company)
	if err != nil {
		return nil, err
	}
	return dto.NewInvestmentResp(inv), nil
}

func (s *LookupService) GetInvestmentInsights(ctx context.Context, company string) ([]model.InvestmentInsight, error) {
	inv, err := s.investment(ctx, company)
	if err != nil {
		return nil, err
	}
	if inv.Insights == nil {
		return []model.InvestmentInsight{}, nil
	}
	return inv.Insights, nil
}

func (s *LookupService) investment(ctx context.Context, company string) (*model.Investment, error) {
	rec, err := s.findOne(ctx, model.KindInvestment, "company_name", company, investmentMessages)
	if err != nil {
		return nil, err
	}
	return rec.(*model.Investment), nil
}

// GetSector 返回完整记录
func (s *LookupService) GetSector(ctx context.Context, sector string) (*model.Sector, error) {
	rec, err := s.findOne(ctx, model.KindSector, "sector", sector, sectorMessages)
	if err != nil {
		return nil, err
	}
	out := *rec.(*model.Sector)
	if out.Companies == nil {
		out.Companies = []string{}
	}
	if out.InvestmentTeam == nil {
		out.InvestmentTeam = []string{}
	}
	return &out, nil
}

// FindConsultations 在 consultation_details 中做子串匹配
// 顾问姓名只出现在详情文本里，所以按子串而非字段相等
func (s *LookupService) FindConsultations(ctx context.Context, name string) ([]model.Consultation, error) {
	msgs := consultationMessages
	if name == "" {
		return nil, missingParam(msgs.param)
	}

	recs, err := s.store.FindAll(ctx, model.KindConsultation, data.Contains("consultation_details", name))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("name", name).Msg("consultation lookup failed")
		return nil, storeFailure(msgs.failure, err)
	}
	if len(recs) == 0 {
		return nil, notFound(msgs.notFound)
	}

	out := make([]model.Consultation, 0, len(recs))
	for _, rec := range recs {
		out = append(out, *rec.(*model.Consultation))
	}
	return out, nil
}

// findOne 空字符串视为缺参；空白字符是合法的值
func (s *LookupService) findOne(ctx context.Context, kind model.Kind, field, value string, msgs lookupMessages) (model.Record, error) {
	if value == "" {
		return nil, missingParam(msgs.param)
	}

	rec, ok, err := s.store.FindOne(ctx, kind, data.Equal(field, value))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("kind", string(kind)).Str(field, value).Msg("lookup failed")
		return nil, storeFailure(msgs.failure, err)
	}
	if !ok {
		return nil, notFound(msgs.notFound)
	}
	return rec, nil
}
