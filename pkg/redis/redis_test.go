package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigTTL(t *testing.T) {
	cfg := Config{SelectionTTL: "48h"}
	assert.Equal(t, 48*time.Hour, cfg.TTL())

	cfg.SelectionTTL = "soon"
	assert.Zero(t, cfg.TTL())

	cfg.SelectionTTL = "-1h"
	assert.Zero(t, cfg.TTL())
}

func TestConfigEnabled(t *testing.T) {
	assert.False(t, (&Config{}).Enabled())
	assert.True(t, (&Config{URL: "redis://localhost:6379/0"}).Enabled())
}

func TestNewRejectsBadURL(t *testing.T) {
	cfg := Config{URL: "http://not-redis"}
	_, err := cfg.New(context.Background())
	assert.Error(t, err)
}
