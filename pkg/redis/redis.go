package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the optional Redis connection used for bookmark and comparison
// persistence. An empty URL disables the store.
type Config struct {
	URL          string `split_words:"true"`
	ReadTimeout  int    `split_words:"true" default:"3"`
	WriteTimeout int    `split_words:"true" default:"3"`
	DialTimeout  int    `split_words:"true" default:"5"`
	SelectionTTL string `split_words:"true" default:"720h"`
}

// Enabled reports whether a Redis URL was configured.
func (r *Config) Enabled() bool {
	return r.URL != ""
}

// TTL parses SelectionTTL, returning 0 (no expiry) when it is empty or invalid.
func (r *Config) TTL() time.Duration {
	d, err := time.ParseDuration(r.SelectionTTL)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

func (r *Config) New(ctx context.Context) (*redis.Client, error) {
	opts, err := redis.ParseURL(r.URL)
	if err != nil {
		return nil, err
	}

	opts.ReadTimeout = time.Duration(r.ReadTimeout) * time.Second
	opts.WriteTimeout = time.Duration(r.WriteTimeout) * time.Second
	opts.DialTimeout = time.Duration(r.DialTimeout) * time.Second

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

func (r *Config) MustNew(ctx context.Context) *redis.Client {
	client, err := r.New(ctx)
	if err != nil {
		panic(err)
	}

	return client
}
