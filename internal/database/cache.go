package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"
)

// CacheBuilder is a fluent helper over a valkey client for the common
// get/set/delete-one-key patterns the repositories use. A nil client
// behaves as an always-empty cache.
type CacheBuilder struct {
	client CacheClient
	key    string
	value  string
	ttl    time.Duration
	ctx    context.Context
	err    error
}

func NewCacheBuilder(client CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		client: client,
		key:    key,
		ctx:    context.Background(),
	}
}

func (b *CacheBuilder) WithStruct(value any) *CacheBuilder {
	data, err := json.Marshal(value)
	if err != nil {
		b.err = err
		return b
	}
	b.value = string(data)
	return b
}

func (b *CacheBuilder) WithValue(value string) *CacheBuilder {
	b.value = value
	return b
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = ttl
	return b
}

func (b *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	b.ctx = ctx
	return b
}

func (b *CacheBuilder) Set() error {
	if b.err != nil {
		return b.err
	}

	if b.client == nil {
		return nil
	}

	if b.ttl > 0 {
		cmd := b.client.B().Set().Key(b.key).Value(b.value).Ex(b.ttl).Build()
		return b.client.Do(b.ctx, cmd).Error()
	}

	cmd := b.client.B().Set().Key(b.key).Value(b.value).Build()
	return b.client.Do(b.ctx, cmd).Error()
}

// Get unmarshals the cached value into dest. The boolean reports whether the
// key existed; a missing key is not an error.
func (b *CacheBuilder) Get(dest any) (bool, error) {
	if b.client == nil {
		return false, nil
	}

	raw, err := b.client.Do(b.ctx, b.client.B().Get().Key(b.key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}

	return true, nil
}

// GetString returns the raw cached string without unmarshaling.
func (b *CacheBuilder) GetString() (string, bool, error) {
	if b.client == nil {
		return "", false, nil
	}

	raw, err := b.client.Do(b.ctx, b.client.B().Get().Key(b.key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return raw, true, nil
}

// TakeString reads and deletes the key in one round trip. Used for
// single-use values like captcha challenges.
func (b *CacheBuilder) TakeString() (string, bool, error) {
	if b.client == nil {
		return "", false, nil
	}

	raw, err := b.client.Do(b.ctx, b.client.B().Getdel().Key(b.key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return raw, true, nil
}

func (b *CacheBuilder) Delete() error {
	if b.client == nil {
		return nil
	}
	return b.client.Do(b.ctx, b.client.B().Del().Key(b.key).Build()).Error()
}
