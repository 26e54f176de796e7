package source

import (
	"context"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/redis/go-redis/v9"

	"github.com/nrfta/searchresult-go"
)

// DefaultKeyPrefix is prepended to identifiers to build Redis keys.
const DefaultKeyPrefix = "searchresult:"

// Redis stores each record set as a JSON blob under <prefix><identifier>.
type Redis struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

var _ Store = (*Redis)(nil)

// RedisOption configures a Redis source.
type RedisOption func(*Redis)

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithExpiration makes written record sets expire after ttl. 0 keeps them forever.
func WithExpiration(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = max(ttl, 0)
	}
}

// NewRedis returns a source on top of client.
func NewRedis(client redis.Cmdable, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OpenRedis parses url, connects and verifies the connection with a ping.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, errors.New("redis URL is required")
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis URL")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	return client, nil
}

// Key returns the Redis key that holds identifier.
func (r *Redis) Key(identifier string) string {
	return r.prefix + identifier
}

// Read loads the record set of identifier. A missing key is an empty set.
func (r *Redis) Read(ctx context.Context, identifier string) ([]searchresult.Record, error) {
	data, err := r.client.Get(ctx, r.Key(identifier)).Bytes()
	if err == redis.Nil {
		return []searchresult.Record{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", identifier)
	}

	records, err := DecodeRecords(data)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", identifier)
	}
	return records, nil
}

// Write replaces the record set of identifier.
func (r *Redis) Write(ctx context.Context, identifier string, records []searchresult.Record) error {
	if identifier == "" {
		return ErrEmptyIdentifier
	}

	data, err := encodeRecords(records)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.Key(identifier), data, r.ttl).Err(); err != nil {
		return errors.Wrapf(err, "write %s", identifier)
	}
	return nil
}
