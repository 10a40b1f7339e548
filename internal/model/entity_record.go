package model

import (
	"time"

	"gorm.io/datatypes"
)

// EntityRecord 关系库后端的单表结构：四种实体共用一张表，按 Kind 区分
type EntityRecord struct {
	// 自增主键同时就是存储顺序
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Kind string `gorm:"size:32;not null;index:idx_kind_key,priority:1" json:"kind"`
	// 查询键的小写形式，用于等值下推
	LookupKeyCI string `gorm:"size:512;index:idx_kind_key,priority:2" json:"lookup_key_ci"`

	// 完整记录 (JSON)
	Payload datatypes.JSON `gorm:"not null" json:"payload"`
}

func (EntityRecord) TableName() string {
	return "entity_records"
}
