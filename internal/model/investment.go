package model

type InvestmentInsight struct {
	Date  string `bson:"date" json:"date" yaml:"date"`
	Title string `bson:"title" json:"title" yaml:"title"`
	URL   string `bson:"url" json:"url" yaml:"url"`
}

type Investment struct {
	CompanyName string   `bson:"company_name" json:"company_name" yaml:"company_name"`
	Location    string   `bson:"location" json:"location" yaml:"location"`
	Website     string   `bson:"website" json:"website" yaml:"website"`
	Sectors     []string `bson:"sectors" json:"sectors" yaml:"sectors"`

	Insights []InvestmentInsight `bson:"insights" json:"insights" yaml:"insights"`
}

func (i *Investment) Kind() Kind { return KindInvestment }

func (i *Investment) FieldValue(field string) string {
	switch field {
	case "company_name":
		return i.CompanyName
	case "location":
		return i.Location
	case "website":
		return i.Website
	}
	return ""
}
