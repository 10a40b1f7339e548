package seed

import (
	"rag-backend/internal/conf"
)

// NewSource 按配置选择记录来源：显式 YAML 文件优先，否则按模式生成
func NewSource(cfg conf.SeedConfig) (RecordSource, error) {
	if cfg.FixtureFile != "" {
		set, err := LoadFixtureFile(cfg.FixtureFile)
		if err != nil {
			return nil, err
		}
		return set, nil
	}
	profile := FullProfile
	if cfg.Mode == conf.SeedModeFixture {
		profile = FixtureProfile
	}
	return NewGenerator(profile, cfg.RandomSeed), nil
}
