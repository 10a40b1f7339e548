package seed

import (
	"fmt"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"rag-backend/internal/model"
)

// DateLayout 与前端展示一致的 M/D/YYYY
const DateLayout = "1/2/2006"

// departments 商品部门列表，用作行业/板块名称
var departments = []string{
	"Books", "Movies", "Music", "Games", "Electronics", "Computers", "Home",
	"Garden", "Tools", "Grocery", "Health", "Beauty", "Toys", "Kids", "Baby",
	"Clothing", "Shoes", "Jewelery", "Sports", "Outdoors", "Automotive", "Industrial",
}

// Profile 每种实体的生成数量与形状
type Profile struct {
	TeamMembers          int
	TeamInsights         int
	Investments          int
	InvestmentSectors    int
	InvestmentInsights   int
	Sectors              int
	SectorCompanies      int
	SectorTeam           int
	Consultations        int
	ConsultationSentence int
	MaxHours             int
}

// FullProfile 完整播种：100 / 200 / 50 / 300
var FullProfile = Profile{
	TeamMembers:          100,
	TeamInsights:         5,
	Investments:          200,
	InvestmentSectors:    3,
	InvestmentInsights:   5,
	Sectors:              50,
	SectorCompanies:      4,
	SectorTeam:           3,
	Consultations:        300,
	ConsultationSentence: 3,
	MaxHours:             10,
}

// FixtureProfile 轻量/离线模式的小数据集
var FixtureProfile = Profile{
	TeamMembers:          5,
	TeamInsights:         2,
	Investments:          5,
	InvestmentSectors:    2,
	InvestmentInsights:   2,
	Sectors:              3,
	SectorCompanies:      3,
	SectorTeam:           2,
	Consultations:        3,
	ConsultationSentence: 2,
	MaxHours:             5,
}

// Quantity 该类型需要生成的条数
func (p Profile) Quantity(kind model.Kind) int {
	switch kind {
	case model.KindTeamMember:
		return p.TeamMembers
	case model.KindInvestment:
		return p.Investments
	case model.KindSector:
		return p.Sectors
	case model.KindConsultation:
		return p.Consultations
	}
	return 0
}

// Generator 合成数据生成器，值本身无意义，只保证结构自洽
type Generator struct {
	mu      sync.Mutex
	faker   *gofakeit.Faker
	profile Profile
	now     func() time.Time
}

// NewGenerator seed 为 0 时使用随机种子
func NewGenerator(profile Profile, seed int64) *Generator {
	return &Generator{
		faker:   gofakeit.New(seed),
		profile: profile,
		now:     time.Now,
	}
}

// Records 为指定类型生成 Profile 规定数量的记录
func (g *Generator) Records(kind model.Kind) ([]model.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.profile.Quantity(kind)
	out := make([]model.Record, 0, n)
	for i := 0; i < n; i++ {
		switch kind {
		case model.KindTeamMember:
			out = append(out, g.teamMember())
		case model.KindInvestment:
			out = append(out, g.investment())
		case model.KindSector:
			out = append(out, g.sector())
		case model.KindConsultation:
			out = append(out, g.consultation())
		default:
			return nil, fmt.Errorf("unknown entity kind %q", kind)
		}
	}
	return out, nil
}

func (g *Generator) teamMember() *model.TeamMember {
	f := g.faker
	insights := make([]model.TeamInsight, 0, g.profile.TeamInsights)
	for i := 0; i < max(g.profile.TeamInsights, 1); i++ {
		insights = append(insights, model.TeamInsight{
			Title: f.Sentence(6),
			Date:  g.pastDate(),
			Link:  f.URL(),
		})
	}
	return &model.TeamMember{
		Name:            f.Name(),
		Role:            f.JobTitle(),
		Bio:             g.sentences(2),
		PersonalQuote:   f.Sentence(8),
		RelatedInsights: insights,
	}
}

func (g *Generator) investment() *model.Investment {
	f := g.faker
	sectors := make([]string, 0, g.profile.InvestmentSectors)
	for i := 0; i < g.profile.InvestmentSectors; i++ {
		sectors = append(sectors, f.RandomString(departments))
	}
	insights := make([]model.InvestmentInsight, 0, g.profile.InvestmentInsights)
	for i := 0; i < g.profile.InvestmentInsights; i++ {
		insights = append(insights, model.InvestmentInsight{
			Date:  g.recentDate(),
			Title: f.Sentence(6),
			URL:   f.URL(),
		})
	}
	return &model.Investment{
		CompanyName: f.Company(),
		Location:    fmt.Sprintf("%s, %s", f.City(), f.StateAbr()),
		Website:     f.URL(),
		Sectors:     sectors,
		Insights:    insights,
	}
}

func (g *Generator) sector() *model.Sector {
	f := g.faker
	companies := make([]string, 0, g.profile.SectorCompanies)
	for i := 0; i < g.profile.SectorCompanies; i++ {
		companies = append(companies, f.Company())
	}
	team := make([]string, 0, g.profile.SectorTeam)
	for i := 0; i < g.profile.SectorTeam; i++ {
		team = append(team, f.Name())
	}
	return &model.Sector{
		Sector:         f.RandomString(departments),
		Description:    f.Sentence(10),
		Companies:      companies,
		InvestmentTeam: team,
	}
}

func (g *Generator) consultation() *model.Consultation {
	f := g.faker
	return &model.Consultation{
		Date:                g.recentDate(),
		CompanyName:         f.Company(),
		ConsultationDetails: g.sentences(g.profile.ConsultationSentence),
		Hours:               f.Number(1, max(g.profile.MaxHours, 1)),
	}
}

// Scrape 模拟抓取结果：标题、两段正文、过去的发布日期
func (g *Generator) Scrape() (title, content, published string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	f := g.faker
	return f.Sentence(6), f.Paragraph(2, 4, 10, "\n"), g.pastDate()
}

func (g *Generator) sentences(n int) string {
	return g.faker.Paragraph(1, max(n, 1), 8, " ")
}

// pastDate 过去一年内
func (g *Generator) pastDate() string {
	now := g.now()
	return g.faker.DateRange(now.AddDate(-1, 0, 0), now).Format(DateLayout)
}

// recentDate 最近一天内
func (g *Generator) recentDate() string {
	now := g.now()
	return g.faker.DateRange(now.AddDate(0, 0, -1), now).Format(DateLayout)
}
