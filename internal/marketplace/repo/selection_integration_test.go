package repo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	pkgredis "github.com/sme-marketplace/server/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSelectionRepository_Integration(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set; skipping Redis integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := pkgredis.Config{URL: url, ReadTimeout: 3, WriteTimeout: 3, DialTimeout: 5}
	client, err := cfg.New(ctx)
	require.NoError(t, err)
	defer client.Close()

	r := NewRedisSelectionRepository(client, time.Minute)
	owner := "it-" + uuid.NewString()
	t.Cleanup(func() {
		for _, c := range model.Categories {
			client.Del(context.Background(), r.bookmarksKey(owner, c), r.comparisonKey(owner, c))
		}
	})

	exerciseRepository(t, r, owner)

	require.NoError(t, r.AddBookmark(ctx, owner, model.KnowledgeHub, "kh-1"))
	ttl, err := client.TTL(ctx, r.bookmarksKey(owner, model.KnowledgeHub)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "bookmark keys expire")
}
