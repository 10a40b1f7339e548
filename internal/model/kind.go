package model

// Kind 实体类型
type Kind string

const (
	KindTeamMember   Kind = "team_member"
	KindInvestment   Kind = "investment"
	KindSector       Kind = "sector"
	KindConsultation Kind = "consultation"
)

// Kinds 固定的播种顺序
var Kinds = []Kind{KindTeamMember, KindInvestment, KindSector, KindConsultation}

// Record 由四种实体的指针实现
type Record interface {
	Kind() Kind
	// FieldValue 按 JSON 字段名取字符串字段，未知字段返回 ""
	FieldValue(field string) string
}

// Collection 文档库中的集合名 (沿用 mongoose 的复数命名)
func (k Kind) Collection() string {
	switch k {
	case KindTeamMember:
		return "teammembers"
	case KindInvestment:
		return "investments"
	case KindSector:
		return "sectors"
	case KindConsultation:
		return "consultations"
	}
	return string(k)
}

// KeyField 该类型的自然查询键
func (k Kind) KeyField() string {
	switch k {
	case KindTeamMember:
		return "name"
	case KindInvestment, KindConsultation:
		return "company_name"
	case KindSector:
		return "sector"
	}
	return ""
}

// Label 用于播种日志，例如 "Seeded 100 TeamMembers"
func (k Kind) Label() string {
	switch k {
	case KindTeamMember:
		return "TeamMembers"
	case KindInvestment:
		return "Investments"
	case KindSector:
		return "Sectors"
	case KindConsultation:
		return "Consultations"
	}
	return string(k)
}

// New 返回一个空记录，供解码使用
func (k Kind) New() Record {
	switch k {
	case KindTeamMember:
		return &TeamMember{}
	case KindInvestment:
		return &Investment{}
	case KindSector:
		return &Sector{}
	case KindConsultation:
		return &Consultation{}
	}
	return nil
}

// Valid 是否为四种实体类型之一
func (k Kind) Valid() bool {
	return k.New() != nil
}
