package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rag-backend/internal/model"
)

// FixtureSet 从 YAML 文件读取的显式记录
//
//	team_members:
//	  - name: Ada Lovelace
//	    role: Engineer
//	    related_insights:
//	      - {title: X, date: 1/1/2020, link: http://x}
//	investments: [...]
//	sectors: [...]
//	consultations: [...]
type FixtureSet struct {
	TeamMembers   []model.TeamMember   `yaml:"team_members"`
	Investments   []model.Investment   `yaml:"investments"`
	Sectors       []model.Sector       `yaml:"sectors"`
	Consultations []model.Consultation `yaml:"consultations"`
}

// LoadFixtureFile 解析 YAML，未知字段视为错误
func LoadFixtureFile(path string) (*FixtureSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fixture file: %w", err)
	}
	defer f.Close()

	var set FixtureSet
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing fixture file %s: %w", path, err)
	}
	return &set, nil
}

// Records 返回该类型的记录 (指针副本)
func (s *FixtureSet) Records(kind model.Kind) ([]model.Record, error) {
	var out []model.Record
	switch kind {
	case model.KindTeamMember:
		for i := range s.TeamMembers {
			m := s.TeamMembers[i]
			out = append(out, &m)
		}
	case model.KindInvestment:
		for i := range s.Investments {
			inv := s.Investments[i]
			out = append(out, &inv)
		}
	case model.KindSector:
		for i := range s.Sectors {
			sec := s.Sectors[i]
			out = append(out, &sec)
		}
	case model.KindConsultation:
		for i := range s.Consultations {
			c := s.Consultations[i]
			out = append(out, &c)
		}
	default:
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
	return out, nil
}
