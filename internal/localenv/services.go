package localenv

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/appneural/setup/internal/branding"
	"github.com/appneural/setup/internal/toolchain"
	"github.com/redis/go-redis/v9"
)

// ServiceNames are the compose services brought up for local development.
var ServiceNames = []string{"db", "redis", "mq"}

// defaultRedisAddr is where the redis service is expected after compose up.
const defaultRedisAddr = "localhost:6379"

const redisProbeTimeout = 2 * time.Second

// startServices brings up the named services in detached mode using the
// detected compose variant.
func (p *Provisioner) startServices(ctx context.Context, compose toolchain.ComposeCommand) error {
	name, args := compose.Args(append([]string{"up", "-d"}, ServiceNames...)...)
	if err := p.RunInteractive(ctx, name, args...); err != nil {
		return fmt.Errorf("starting services with %s: %w", compose.Name(), err)
	}
	return nil
}

// redisAddr returns the probe address, overridable via APPNEURAL_REDIS_ADDR.
func redisAddr() string {
	if v := os.Getenv(branding.EnvVar("REDIS_ADDR")); v != "" {
		return v
	}
	return defaultRedisAddr
}

// PingRedis checks that the redis service accepts connections. Containers
// need a moment after `up -d`, so an immediate failure is advisory, not
// fatal.
func PingRedis(ctx context.Context, addr string) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: redisProbeTimeout,
	})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(ctx, redisProbeTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis at %s: %w", addr, err)
	}
	return nil
}
