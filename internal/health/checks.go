package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/redis/go-redis/v9"

	"github.com/storefront-dev/storefront-platform/internal/config"
	"github.com/storefront-dev/storefront-platform/pkg/paypal"
)

type Endpoints struct {
	DB           *sql.DB
	RedisClient  *redis.Client
	PayPalClient paypal.Client
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{

			Name:    "storefront-platform",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:    "paypal",
				Timeout: 5 * time.Second,
				// capture still degrades gracefully when the gateway is down,
				// so a paypal outage must not fail the whole health probe
				SkipOnErr: true,
				Check: func(ctx context.Context) error {
					if endpoints.PayPalClient == nil {
						return fmt.Errorf("paypal client is not initialized")
					}

					if err := endpoints.PayPalClient.Ping(ctx); err != nil {
						return fmt.Errorf("failed to connect to paypal: %w", err)
					}

					return nil
				},
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
