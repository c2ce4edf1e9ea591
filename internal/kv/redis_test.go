package kv

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRedis_KeyPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	r := NewRedisWithClient(client, "skilltrack:", time.Second)
	if got := r.redisKey("user-skills"); got != "skilltrack:user-skills" {
		t.Errorf("redisKey() = %q, want %q", got, "skilltrack:user-skills")
	}

	bare := NewRedisWithClient(client, "", 0)
	if got := bare.redisKey("user-skills"); got != "user-skills" {
		t.Errorf("redisKey() without prefix = %q", got)
	}
}

func TestRedis_WithTimeout(t *testing.T) {
	r := &Redis{timeout: 50 * time.Millisecond}
	ctx, cancel := r.withTimeout(context.Background())
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Error("expected deadline when timeout is set")
	}

	unbounded := &Redis{}
	ctx2, cancel2 := unbounded.withTimeout(context.Background())
	defer cancel2()
	if _, ok := ctx2.Deadline(); ok {
		t.Error("expected no deadline when timeout is zero")
	}
}
