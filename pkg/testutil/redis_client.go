package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/groove-lab/backend/pkg/xredis"
)

// MockRedisClient keeps objects in memory. TTLs are ignored.
type MockRedisClient struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{objects: map[string][]byte{}}
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = b
	return nil
}

func (m *MockRedisClient) ReplaceObj(ctx context.Context, key string, obj any) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; !ok {
		return xredis.ErrNotFound
	}

	m.objects[key] = b
	return nil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	m.mu.Lock()
	b, ok := m.objects[key]
	m.mu.Unlock()

	if !ok {
		return xredis.ErrNotFound
	}

	return json.Unmarshal(b, v)
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.objects, key)
	}

	return nil
}
