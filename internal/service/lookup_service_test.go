package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-backend/internal/data"
	"rag-backend/internal/model"
)

func seededStore(t *testing.T) *data.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := data.NewMemoryStore()

	require.NoError(t, store.InsertMany(ctx, model.KindTeamMember, []model.Record{
		&model.TeamMember{
			Name:          "Ada Lovelace",
			Role:          "Engineer",
			Bio:           "...",
			PersonalQuote: "...",
			RelatedInsights: []model.TeamInsight{
				{Title: "X", Date: "1/1/2020", Link: "http://x"},
			},
		},
		&model.TeamMember{Name: "Grace Hopper", Role: "Admiral"},
	}))
	require.NoError(t, store.InsertMany(ctx, model.KindInvestment, []model.Record{
		&model.Investment{
			CompanyName: "Acme",
			Location:    "Springfield, IL",
			Website:     "http://acme.test",
			Sectors:     []string{"Tools"},
			Insights:    []model.InvestmentInsight{{Date: "1/2/2020", Title: "Y", URL: "http://y"}},
		},
		&model.Investment{CompanyName: "Globex"},
	}))
	require.NoError(t, store.InsertMany(ctx, model.KindSector, []model.Record{
		&model.Sector{Sector: "Books", Description: "Paper", Companies: []string{"Acme"}, InvestmentTeam: []string{"Ada Lovelace"}},
		&model.Sector{Sector: "Books", Description: "Second"},
	}))
	require.NoError(t, store.InsertMany(ctx, model.KindConsultation, []model.Record{
		&model.Consultation{Date: "1/3/2020", CompanyName: "Acme", ConsultationDetails: "Session with Ada Lovelace", Hours: 2},
		&model.Consultation{Date: "1/4/2020", CompanyName: "Globex", ConsultationDetails: "Session with Grace Hopper", Hours: 4},
	}))
	return store
}

// brokenStore 所有操作都失败
type brokenStore struct{}

var errBroken = fmt.Errorf("%w: connection reset", data.ErrStore)

func (brokenStore) Count(context.Context, model.Kind) (int64, error) { return 0, errBroken }
func (brokenStore) InsertMany(context.Context, model.Kind, []model.Record) error {
	return errBroken
}
func (brokenStore) FindOne(context.Context, model.Kind, data.Match) (model.Record, bool, error) {
	return nil, false, errBroken
}
func (brokenStore) FindAll(context.Context, model.Kind, data.Match) ([]model.Record, error) {
	return nil, errBroken
}
func (brokenStore) Close(context.Context) error { return nil }

func TestLookupService_TeamMember(t *testing.T) {
	svc := NewLookupService(seededStore(t))
	ctx := context.Background()

	resp, err := svc.GetTeamMember(ctx, "ada lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", resp.Name)
	assert.Equal(t, "Engineer", resp.Role)

	insights, err := svc.GetTeamInsights(ctx, "ADA LOVELACE")
	require.NoError(t, err)
	assert.Equal(t, []model.TeamInsight{{Title: "X", Date: "1/1/2020", Link: "http://x"}}, insights)

	insights, err = svc.GetTeamInsights(ctx, "Grace Hopper")
	require.NoError(t, err)
	assert.NotNil(t, insights)
	assert.Empty(t, insights)

	_, err = svc.GetTeamMember(ctx, "")
	require.ErrorIs(t, err, ErrMissingParameter)
	assert.Equal(t, "Query parameter 'name' is required", Message(err, ""))

	_, err = svc.GetTeamMember(ctx, "Ada")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Team member not found", Message(err, ""))

	_, err = svc.GetTeamMember(ctx, " ada lovelace")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupService_Investment(t *testing.T) {
	svc := NewLookupService(seededStore(t))
	ctx := context.Background()

	resp, err := svc.GetInvestment(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "Springfield, IL", resp.Location)
	assert.Equal(t, []string{"Tools"}, resp.Sectors)

	resp, err = svc.GetInvestment(ctx, "GLOBEX")
	require.NoError(t, err)
	assert.NotNil(t, resp.Sectors)

	insights, err := svc.GetInvestmentInsights(ctx, "Acme")
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, "http://y", insights[0].URL)

	_, err = svc.GetInvestmentInsights(ctx, "")
	assert.Equal(t, "Query parameter 'company_name' is required", Message(err, ""))

	_, err = svc.GetInvestment(ctx, "Initech")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Company not found", Message(err, ""))
}

func TestLookupService_Sector(t *testing.T) {
	svc := NewLookupService(seededStore(t))
	ctx := context.Background()

	sector, err := svc.GetSector(ctx, "books")
	require.NoError(t, err)
	assert.Equal(t, "Paper", sector.Description, "first match in store order")

	_, err = svc.GetSector(ctx, "")
	assert.Equal(t, "Query parameter 'sector' is required", Message(err, ""))

	_, err = svc.GetSector(ctx, "Music")
	assert.Equal(t, "Sector not found", Message(err, ""))
}

func TestLookupService_Consultations(t *testing.T) {
	svc := NewLookupService(seededStore(t))
	ctx := context.Background()

	list, err := svc.FindConsultations(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0].CompanyName)

	list, err = svc.FindConsultations(ctx, "session with")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.FindConsultations(ctx, "")
	assert.Equal(t, "Query parameter 'name' is required", Message(err, ""))

	_, err = svc.FindConsultations(ctx, "Linus")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "No consultations found for the consultant", Message(err, ""))
}

func TestLookupService_StoreFailure(t *testing.T) {
	svc := NewLookupService(brokenStore{})
	ctx := context.Background()

	_, err := svc.GetTeamMember(ctx, "Ada")
	require.ErrorIs(t, err, data.ErrStore)
	assert.Equal(t, "Internal server error", Message(err, ""))

	_, err = svc.GetInvestment(ctx, "Acme")
	assert.Equal(t, "Server error", Message(err, ""))

	_, err = svc.GetSector(ctx, "Books")
	assert.Equal(t, "Server error", Message(err, ""))

	_, err = svc.FindConsultations(ctx, "Ada")
	require.ErrorIs(t, err, data.ErrStore)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestMessage_Fallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("plain"), "fallback"))
}
