package model

type Sector struct {
	Sector         string   `bson:"sector" json:"sector" yaml:"sector"`
	Description    string   `bson:"description" json:"description" yaml:"description"`
	Companies      []string `bson:"companies" json:"companies" yaml:"companies"`
	InvestmentTeam []string `bson:"investment_team" json:"investment_team" yaml:"investment_team"`
}

func (s *Sector) Kind() Kind { return KindSector }

func (s *Sector) FieldValue(field string) string {
	switch field {
	case "sector":
		return s.Sector
	case "description":
		return s.Description
	}
	return ""
}
