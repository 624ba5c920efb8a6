package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vertifarm/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService is a read-through cache over container reads and the tenant
// list. Misses are (nil, nil); callers treat cache errors as misses so a
// broken cache never fails a request.
type CacheService interface {
	GetContainer(ctx context.Context, id string) (*models.Container, error)
	SetContainer(ctx context.Context, container *models.Container, ttl time.Duration) error
	DeleteContainer(ctx context.Context, id string) error

	GetTenants(ctx context.Context) ([]string, error)
	SetTenants(ctx context.Context, names []string, ttl time.Duration) error
	InvalidateTenants(ctx context.Context) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func containerKey(id string) string {
	return fmt.Sprintf("vertifarm:container:%s", id)
}

const tenantsKey = "vertifarm:tenants"

func (r *redisCacheService) GetContainer(ctx context.Context, id string) (*models.Container, error) {
	data, err := r.client.Get(ctx, containerKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var container models.Container
	if err := json.Unmarshal(data, &container); err != nil {
		return nil, err
	}
	return &container, nil
}

func (r *redisCacheService) SetContainer(ctx context.Context, container *models.Container, ttl time.Duration) error {
	data, err := json.Marshal(container)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, containerKey(container.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteContainer(ctx context.Context, id string) error {
	return r.client.Del(ctx, containerKey(id)).Err()
}

func (r *redisCacheService) GetTenants(ctx context.Context) ([]string, error) {
	data, err := r.client.Get(ctx, tenantsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *redisCacheService) SetTenants(ctx context.Context, names []string, ttl time.Duration) error {
	data, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, tenantsKey, data, ttl).Err()
}

func (r *redisCacheService) InvalidateTenants(ctx context.Context) error {
	return r.client.Del(ctx, tenantsKey).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// noopCacheService is used when no Redis address is configured; every read
// goes straight to storage.
type noopCacheService struct{}

func NewNoopCacheService() CacheService {
	return noopCacheService{}
}

func (noopCacheService) GetContainer(context.Context, string) (*models.Container, error) {
	return nil, nil
}

func (noopCacheService) SetContainer(context.Context, *models.Container, time.Duration) error {
	return nil
}

func (noopCacheService) DeleteContainer(context.Context, string) error { return nil }

func (noopCacheService) GetTenants(context.Context) ([]string, error) { return nil, nil }

func (noopCacheService) SetTenants(context.Context, []string, time.Duration) error { return nil }

func (noopCacheService) InvalidateTenants(context.Context) error { return nil }

func (noopCacheService) Ping(context.Context) error { return nil }
