package data

import (
	"context"
	"sync"

	"rag-backend/internal/model"
)

// MemoryStore 纯内存实现 (fixture 模式、测试)
// 记录只存在于进程内，进程退出即丢失
type MemoryStore struct {
	mu      sync.RWMutex
	records map[model.Kind][]model.Record
	closed  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[model.Kind][]model.Record)}
}

func (s *MemoryStore) Count(ctx context.Context, kind model.Kind) (int64, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, storeErr("count "+string(kind), errClosed)
	}
	return int64(len(s.records[kind])), nil
}

func (s *MemoryStore) InsertMany(ctx context.Context, kind model.Kind, records []model.Record) error {
	if err := checkRecords(kind, records); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storeErr("insert "+string(kind), errClosed)
	}
	s.records[kind] = append(s.records[kind], records...)
	return nil
}

func (s *MemoryStore) FindOne(ctx context.Context, kind model.Kind, m Match) (model.Record, bool, error) {
	if err := checkKind(kind); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, storeErr("find "+string(kind), errClosed)
	}
	for _, r := range s.records[kind] {
		if m.Matches(r) {
			return r, true, nil
		}
	}
	return nil, false, nil
}

func (s *MemoryStore) FindAll(ctx context.Context, kind model.Kind, m Match) ([]model.Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, storeErr("find "+string(kind), errClosed)
	}
	var out []model.Record
	for _, r := range s.records[kind] {
		if m.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
