package clustermgr

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Ping checks that every node of the cluster answers PING
func (c *Cluster) Ping(ctx context.Context) error {
	for _, node := range c.Nodes {
		opts := &redis.Options{
			Addr:        node.String(),
			DialTimeout: pingTimeout,
			ReadTimeout: pingTimeout,
		}
		if c.TLS {
			// Test clusters use self-signed certificates.
			opts.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		}

		client := redis.NewClient(opts)
		err := client.Ping(ctx).Err()
		_ = client.Close()
		if err != nil {
			return fmt.Errorf("ping %s: %w", node, err)
		}
	}
	return nil
}
