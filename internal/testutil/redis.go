// Package testutil provides shared test helpers: a Redis connection for store tests
// and a fake hospital API.
package testutil

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTestRedisDB = 9
	redisProbeTimeout  = 2 * time.Second
)

// redisCandidates are tried in order when REDIS_ADDR is unset: the compose service
// name, then a local server, then the port the dev compose file publishes.
var redisCandidates = []string{"redis:6379", "localhost:6379", "localhost:56379"}

// SetupTestRedis connects to a Redis server for the test and empties its test DB.
// The test is skipped when no server answers, unless TEST_REQUIRE_REDIS is set, in
// which case it fails. The DB index comes from TEST_REDIS_DB and defaults to 9.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()

	addrs := redisCandidates
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		addrs = []string{addr}
	}

	db := defaultTestRedisDB
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			t.Fatalf("TEST_REDIS_DB=%q is not a database index", v)
		}
		db = n
	}

	for _, addr := range addrs {
		client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
		ctx, cancel := context.WithTimeout(context.Background(), redisProbeTimeout)
		err := client.Ping(ctx).Err()
		if err == nil {
			err = client.FlushDB(ctx).Err()
		}
		cancel()
		if err != nil {
			t.Logf("redis at %s unavailable: %v", addr, err)
			_ = client.Close()
			continue
		}

		t.Cleanup(func() { _ = client.Close() })
		return client
	}

	if envBool("TEST_REQUIRE_REDIS") || envBool("TEST_REQUIRE_INFRA") {
		t.Fatal("redis not available for testing")
	}
	t.Skip("redis not available for testing")
	return nil
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true
	}
	return false
}
