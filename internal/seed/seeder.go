package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"rag-backend/internal/data"
	"rag-backend/internal/model"
)

// ErrSeed 播种失败，调用方应中止启动
var ErrSeed = errors.New("seed error")

// LockKey Redis 中的播种锁
const LockKey = "rag-backend:seed-lock"

// RecordSource 为某种实体提供待写入的记录
type RecordSource interface {
	Records(kind model.Kind) ([]model.Record, error)
}

// Seeder 每种实体独立判断：集合为空才写入，否则整类跳过
type Seeder struct {
	store  data.EntityStore
	source RecordSource
	locker Locker
}

type Option func(*Seeder)

func WithLocker(l Locker) Option {
	return func(s *Seeder) { s.locker = l }
}

func NewSeeder(store data.EntityStore, source RecordSource, opts ...Option) *Seeder {
	s := &Seeder{store: store, source: source, locker: NopLocker{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Report 每种实体本次写入的条数 (跳过的为 0)
type Report map[model.Kind]int

// Run 阻塞执行，全部写入可见后才返回
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	unlock, err := s.locker.Lock(ctx, LockKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSeed, err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("releasing seed lock")
		}
	}()

	report := make(Report, len(model.Kinds))
	for _, kind := range model.Kinds {
		n, err := s.seedKind(ctx, kind)
		if err != nil {
			return report, fmt.Errorf("%w: %s: %w", ErrSeed, kind, err)
		}
		report[kind] = n
	}
	return report, nil
}

func (s *Seeder) seedKind(ctx context.Context, kind model.Kind) (int, error) {
	count, err := s.store.Count(ctx, kind)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Info().Str("kind", string(kind)).Int64("existing", count).Msg("collection not empty, skipping seed")
		return 0, nil
	}

	records, err := s.source.Records(kind)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	if err := s.store.InsertMany(ctx, kind, records); err != nil {
		return 0, err
	}

	log.Info().Str("kind", string(kind)).Int("count", len(records)).
		Msgf("Seeded %d %s", len(records), kind.Label())
	return len(records), nil
}
