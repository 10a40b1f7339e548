package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rag-backend/internal/model"
	"rag-backend/internal/utils"
)

// ciSuffix 查询键的小写影子字段后缀，例如 name -> name_ci
const ciSuffix = "_ci"

// MongoStore 文档库实现，每种实体一个集合
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore 连接并 Ping，失败即返回 (启动期致命)
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is required")
	}
	if database == "" {
		return nil, errors.New("mongo database is required")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, storeErr("connect", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, storeErr("ping", err)
	}

	s := &MongoStore{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// ensureIndexes 为影子字段建普通索引 (非唯一，允许重复键)，
// 并为缺少影子字段的已有文档补齐
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	for _, kind := range model.Kinds {
		key := kind.KeyField()
		idx := mongo.IndexModel{Keys: bson.D{{Key: key + ciSuffix, Value: 1}}}
		if _, err := s.coll(kind).Indexes().CreateOne(ctx, idx); err != nil {
			return storeErr("index "+kind.Collection(), err)
		}
		if err := s.backfill(ctx, kind); err != nil {
			return err
		}
	}
	return nil
}

// backfill 逐个文档补写 <key>_ci，小写规则与 utils.Fold 一致
func (s *MongoStore) backfill(ctx context.Context, kind model.Kind) error {
	key := kind.KeyField()
	coll := s.coll(kind)
	filter := bson.D{{Key: key + ciSuffix, Value: bson.D{{Key: "$exists", Value: false}}}}
	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}, {Key: key, Value: 1}})

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return storeErr("backfill "+kind.Collection(), err)
	}
	defer cur.Close(ctx)

	n := 0
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return storeErr("backfill "+kind.Collection(), err)
		}
		value, _ := doc[key].(string)
		update := bson.D{{Key: "$set", Value: bson.D{{Key: key + ciSuffix, Value: utils.Fold(value)}}}}
		if _, err := coll.UpdateByID(ctx, doc["_id"], update); err != nil {
			return storeErr("backfill "+kind.Collection(), err)
		}
		n++
	}
	if err := cur.Err(); err != nil {
		return storeErr("backfill "+kind.Collection(), err)
	}
	if n > 0 {
		log.Info().Str("collection", kind.Collection()).Int("documents", n).Msg("backfilled lookup keys")
	}
	return nil
}

func (s *MongoStore) coll(kind model.Kind) *mongo.Collection {
	return s.db.Collection(kind.Collection())
}

func (s *MongoStore) Count(ctx context.Context, kind model.Kind) (int64, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	n, err := s.coll(kind).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, storeErr("count "+kind.Collection(), err)
	}
	return n, nil
}

func (s *MongoStore) InsertMany(ctx context.Context, kind model.Kind, records []model.Record) error {
	if err := checkRecords(kind, records); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(records))
	for _, r := range records {
		doc, err := toDocument(kind, r)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	if _, err := s.coll(kind).InsertMany(ctx, docs); err != nil {
		return storeErr("insert "+kind.Collection(), err)
	}
	return nil
}

// toDocument 记录转 bson 并附加影子字段
func toDocument(kind model.Kind, r model.Record) (bson.M, error) {
	raw, err := bson.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", kind, err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", kind, err)
	}
	key := kind.KeyField()
	doc[key+ciSuffix] = utils.Fold(r.FieldValue(key))
	return doc, nil
}

func (s *MongoStore) FindOne(ctx context.Context, kind model.Kind, m Match) (model.Record, bool, error) {
	if err := checkKind(kind); err != nil {
		return nil, false, err
	}

	// 自然键等值查询下推到影子字段；其余情况在 Go 侧过滤
	if m.onKey(kind) {
		opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
		res := s.coll(kind).FindOne(ctx, bson.D{{Key: m.Field + ciSuffix, Value: m.Value}}, opts)
		rec := kind.New()
		err := res.Decode(rec)
		if err == nil {
			return rec, true, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, storeErr("find "+kind.Collection(), err)
		}
		// 其他写入方写入的文档可能没有影子字段，未命中时退回全表扫描
	}

	var found model.Record
	err := s.scan(ctx, kind, func(rec model.Record) bool {
		if m.Matches(rec) {
			found = rec
			return false
		}
		return true
	})
	if err != nil {
		return nil, false, err
	}
	return found, found != nil, nil
}

func (s *MongoStore) FindAll(ctx context.Context, kind model.Kind, m Match) ([]model.Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	var out []model.Record
	err := s.scan(ctx, kind, func(rec model.Record) bool {
		if m.Matches(rec) {
			out = append(out, rec)
		}
		return true
	})
	return out, err
}

// scan 按 _id 顺序遍历整个集合，fn 返回 false 时停止
func (s *MongoStore) scan(ctx context.Context, kind model.Kind, fn func(model.Record) bool) error {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll(kind).Find(ctx, bson.D{}, opts)
	if err != nil {
		return storeErr("find "+kind.Collection(), err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		rec := kind.New()
		if err := cur.Decode(rec); err != nil {
			return storeErr("decode "+kind.Collection(), err)
		}
		if !fn(rec) {
			return nil
		}
	}
	if err := cur.Err(); err != nil {
		return storeErr("cursor "+kind.Collection(), err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
