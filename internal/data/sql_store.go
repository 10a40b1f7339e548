package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rag-backend/internal/model"
	"rag-backend/internal/utils"
)

// SQLStore 关系库实现：一张 entity_records 表，payload 为 JSON
type SQLStore struct {
	db *gorm.DB
}

// NewPostgresStore 打开 Postgres 连接并确保表存在
func NewPostgresStore(ctx context.Context, dsn string) (*SQLStore, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, storeErr("open postgres", err)
	}
	return NewSQLStore(ctx, db)
}

// NewSQLStore 复用已有的 gorm 连接 (测试可传入其他方言)
func NewSQLStore(ctx context.Context, db *gorm.DB) (*SQLStore, error) {
	// 仅在首次使用时建表，不做后续迁移
	if !db.Migrator().HasTable(&model.EntityRecord{}) {
		if err := db.WithContext(ctx).Migrator().CreateTable(&model.EntityRecord{}); err != nil {
			return nil, storeErr("create table", err)
		}
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Count(ctx context.Context, kind model.Kind) (int64, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	var n int64
	err := s.db.WithContext(ctx).Model(&model.EntityRecord{}).
		Where("kind = ?", string(kind)).
		Count(&n).Error
	if err != nil {
		return 0, storeErr("count "+string(kind), err)
	}
	return n, nil
}

func (s *SQLStore) InsertMany(ctx context.Context, kind model.Kind, records []model.Record) error {
	if err := checkRecords(kind, records); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	rows := make([]model.EntityRecord, 0, len(records))
	key := kind.KeyField()
	for _, r := range records {
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", kind, err)
		}
		rows = append(rows, model.EntityRecord{
			Kind:        string(kind),
			LookupKeyCI: utils.Fold(r.FieldValue(key)),
			Payload:     datatypes.JSON(payload),
		})
	}

	// 一个事务内分批写入，要么全部可见要么全部回滚
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&rows, 100).Error
	})
	if err != nil {
		return storeErr("insert "+string(kind), err)
	}
	return nil
}

func (s *SQLStore) FindOne(ctx context.Context, kind model.Kind, m Match) (model.Record, bool, error) {
	if err := checkKind(kind); err != nil {
		return nil, false, err
	}

	if m.onKey(kind) {
		var row model.EntityRecord
		err := s.db.WithContext(ctx).
			Where("kind = ? AND lookup_key_ci = ?", string(kind), m.Value).
			Order("id").
			First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, nil
			}
			return nil, false, storeErr("find "+string(kind), err)
		}
		rec, err := decodeRow(kind, row)
		if err != nil {
			return nil, false, err
		}
		return rec, true, nil
	}

	all, err := s.FindAll(ctx, kind, m)
	if err != nil || len(all) == 0 {
		return nil, false, err
	}
	return all[0], true, nil
}

func (s *SQLStore) FindAll(ctx context.Context, kind model.Kind, m Match) ([]model.Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	var rows []model.EntityRecord
	err := s.db.WithContext(ctx).
		Where("kind = ?", string(kind)).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, storeErr("find "+string(kind), err)
	}

	var out []model.Record
	for _, row := range rows {
		rec, err := decodeRow(kind, row)
		if err != nil {
			return nil, err
		}
		if m.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func decodeRow(kind model.Kind, row model.EntityRecord) (model.Record, error) {
	rec := kind.New()
	if err := json.Unmarshal(row.Payload, rec); err != nil {
		return nil, storeErr(fmt.Sprintf("decode %s #%d", kind, row.ID), err)
	}
	return rec, nil
}

func (s *SQLStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
