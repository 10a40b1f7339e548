package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-backend/internal/seed"
)

func TestScrapeService(t *testing.T) {
	svc := NewScrapeService(seed.NewGenerator(seed.FixtureProfile, 7))

	resp, err := svc.Scrape(context.Background(), "https://example.com/article")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Title)
	assert.NotEmpty(t, resp.Content)
	assert.Regexp(t, `^\d{1,2}/\d{1,2}/\d{4}$`, resp.DatePublished)

	_, err = svc.Scrape(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingParameter)
	assert.Equal(t, "Query parameter 'url' is required", Message(err, ""))
}
