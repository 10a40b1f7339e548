package model

// TeamInsight 团队成员的相关洞察
type TeamInsight struct {
	Title string `bson:"title" json:"title" yaml:"title"`
	Date  string `bson:"date" json:"date" yaml:"date"`
	Link  string `bson:"link" json:"link" yaml:"link"`
}

type TeamMember struct {
	Name          string `bson:"name" json:"name" yaml:"name"`
	Role          string `bson:"role" json:"role" yaml:"role"`
	Bio           string `bson:"bio" json:"bio" yaml:"bio"`
	PersonalQuote string `bson:"personal_quote" json:"personal_quote" yaml:"personal_quote"`

	RelatedInsights []TeamInsight `bson:"related_insights" json:"related_insights" yaml:"related_insights"`
}

func (m *TeamMember) Kind() Kind { return KindTeamMember }

func (m *TeamMember) FieldValue(field string) string {
	switch field {
	case "name":
		return m.Name
	case "role":
		return m.Role
	case "bio":
		return m.Bio
	case "personal_quote":
		return m.PersonalQuote
	}
	return ""
}
