package dto

import "rag-backend/internal/model"

// TeamMemberResp 团队成员投影，不含 related_insights
type TeamMemberResp struct {
	Name          string `json:"name"`
	Role          string `json:"role"`
	Bio           string `json:"bio"`
	PersonalQuote string `json:"personal_quote"`
}

func NewTeamMemberResp(m *model.TeamMember) *TeamMemberResp {
	return &TeamMemberResp{
		Name:          m.Name,
		Role:          m.Role,
		Bio:           m.Bio,
		PersonalQuote: m.PersonalQuote,
	}
}

// InvestmentResp 投资投影，不含 insights
type InvestmentResp struct {
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	Website     string   `json:"website"`
	Sectors     []string `json:"sectors"`
}

func NewInvestmentResp(i *model.Investment) *InvestmentResp {
	sectors := i.Sectors
	if sectors == nil {
		sectors = []string{}
	}
	return &InvestmentResp{
		CompanyName: i.CompanyName,
		Location:    i.Location,
		Website:     i.Website,
		Sectors:     sectors,
	}
}

type ScrapeResp struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	DatePublished string `json:"date_published"`
}
