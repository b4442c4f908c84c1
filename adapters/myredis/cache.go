package myredis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stopwatchdog/service"

	"github.com/go-redis/redis/v8"
)

type redisCache[T any] struct {
	client    redis.UniversalClient
	prefix    string
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
	zero      T
}

// NewCache creates redis implementation of generic cache interface.
func NewCache[T any](client redis.UniversalClient, prefix string, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) *redisCache[T] {
	var zero T
	return &redisCache[T]{
		client:    client,
		prefix:    prefix,
		zero:      zero,
		marshal:   marshal,
		unmarshal: unmarshal,
	}
}

// NewNameCache creates a cache of server display names stored as plain strings.
func NewNameCache(client redis.UniversalClient, prefix string) *redisCache[string] {
	marshal := func(s string) ([]byte, error) { return []byte(s), nil }
	unmarshal := func(b []byte) (string, error) { return string(b), nil }
	return NewCache[string](client, prefix, marshal, unmarshal)
}

func (r *redisCache[T]) WriteValue(ctx context.Context, key string, item T, ttlMs int) error {
	bytes, err := r.marshal(item)
	if err != nil {
		return service.NewInternalServerError("Redis marshal item error", fmt.Errorf("can't marshal item of type %T, err: %w", item, err))
	}

	err = r.client.Set(ctx, r.generateKey(key), bytes, time.Duration(ttlMs)*time.Millisecond).Err()
	if err != nil {
		return service.NewInternalServerError("Redis write key error", fmt.Errorf("can't write item of type %T to redis (key='%s'), err: %w", item, key, err))
	}

	return nil
}

func (r *redisCache[T]) ReadValue(ctx context.Context, key string) (T, error) {
	bytes, err := r.client.Get(ctx, r.generateKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return r.zero, service.NewEntityNotFoundError("Entity not found", nil)
	}
	if err != nil {
		return r.zero, service.NewInternalServerError("Redis get key error", fmt.Errorf("can't read item of type %T from redis (key='%s'), err: %w", r.zero, key, err))
	}

	item, err := r.unmarshal(bytes)
	if err != nil {
		return r.zero, service.NewInternalServerError("Redis unmarshal item error", fmt.Errorf("can't unmarshal item of type %T (key='%s'), err: %w", r.zero, key, err))
	}

	return item, nil
}

func (r *redisCache[T]) generateKey(key string) string {
	return r.prefix + ":" + key
}
