package data

import (
	"context"
	"errors"
	"fmt"

	"rag-backend/internal/model"
	"rag-backend/internal/utils"
)

// ErrStore 存储介质不可用或读写失败
var ErrStore = errors.New("store error")

var errClosed = errors.New("store closed")

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

// EntityStore 四种实体集合的统一抽象
// 只有播种器会写入；查询层不关心具体后端
type EntityStore interface {
	Count(ctx context.Context, kind model.Kind) (int64, error)
	InsertMany(ctx context.Context, kind model.Kind, records []model.Record) error
	// FindOne 返回存储顺序中第一个匹配的记录，没有匹配时 ok=false
	FindOne(ctx context.Context, kind model.Kind, m Match) (rec model.Record, ok bool, err error)
	// FindAll 按存储顺序返回全部匹配记录
	FindAll(ctx context.Context, kind model.Kind, m Match) ([]model.Record, error)
	Close(ctx context.Context) error
}

type MatchMode int

const (
	MatchEqual MatchMode = iota
	MatchContains
)

// Match 查询谓词：对单个字符串字段做大小写不敏感的等值或子串匹配
// Value 在构造时已归一化
type Match struct {
	Field string
	Value string
	Mode  MatchMode
}

func Equal(field, value string) Match {
	return Match{Field: field, Value: utils.Fold(value), Mode: MatchEqual}
}

func Contains(field, value string) Match {
	return Match{Field: field, Value: utils.Fold(value), Mode: MatchContains}
}

// Matches 在 Go 侧对记录求值，所有后端共用
func (m Match) Matches(rec model.Record) bool {
	got := rec.FieldValue(m.Field)
	if m.Mode == MatchContains {
		return utils.ContainsFold(got, m.Value)
	}
	return utils.EqualFold(got, m.Value)
}

// onKey 是否为该类型自然键上的等值查询 (可下推到后端索引)
func (m Match) onKey(kind model.Kind) bool {
	return m.Mode == MatchEqual && m.Field == kind.KeyField()
}

func checkKind(kind model.Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown entity kind %q", kind)
	}
	return nil
}

func checkRecords(kind model.Kind, records []model.Record) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	for i, r := range records {
		if r == nil || r.Kind() != kind {
			return fmt.Errorf("record %d is not a %s", i, kind)
		}
	}
	return nil
}
