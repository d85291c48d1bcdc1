package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"portal-import/internal/importer/model"
)

// mergeScript merges the JSON document ARGV[2] over the one stored in hash
// KEYS[1] under field ARGV[1], atomically.
var mergeScript = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], ARGV[1])
local doc = cjson.decode(ARGV[2])
if cur then
  local old = cjson.decode(cur)
  for k, v in pairs(doc) do old[k] = v end
  doc = old
end
redis.call('HSET', KEYS[1], ARGV[1], cjson.encode(doc))
return 1
`)

// redisStore keeps the collection as one hash: field = _id, value = JSON.
type redisStore struct {
	client *redis.Client
	key    string
}

func openRedis(ctx context.Context, uri string, opts Options) (Store, error) {
	ro, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("redis uri: %w", err)
	}
	client := redis.NewClient(ro)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisStore{client: client, key: opts.Collection}, nil
}

func (s *redisStore) Upsert(ctx context.Context, rec model.Portal) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return mergeScript.Run(ctx, s.client, []string{s.key}, rec.ID, string(doc)).Err()
}

func (s *redisStore) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.client.HLen(ctx, s.key).Result()
	if err != nil {
		return 0, err
	}
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *redisStore) Count(ctx context.Context) (int64, error) {
	return s.client.HLen(ctx, s.key).Result()
}

func (s *redisStore) Close(context.Context) error {
	return s.client.Close()
}
