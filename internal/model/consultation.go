package model

type Consultation struct {
	Date        string `bson:"date" json:"date" yaml:"date"`
	CompanyName string `bson:"company_name" json:"company_name" yaml:"company_name"`
	// 咨询详情：顾问姓名目前只出现在这段自由文本里
	ConsultationDetails string `bson:"consultation_details" json:"consultation_details" yaml:"consultation_details"`
	Hours               int    `bson:"hours" json:"hours" yaml:"hours"`
}

func (c *Consultation) Kind() Kind { return KindConsultation }

func (c *Consultation) FieldValue(field string) string {
	switch field {
	case "date":
		return c.Date
	case "company_name":
		return c.CompanyName
	case "consultation_details":
		return c.ConsultationDetails
	}
	return ""
}
