// Package cli wires the storefront's command tree: the terminal equivalents
// of the browse/cart/checkout/kitchen/analytics screens.
package cli

import (
	"context"
	"os"
	"strings"

	"github.com/Amresh-01/Canteeno/internal/api"
	"github.com/Amresh-01/Canteeno/internal/cart"
	"github.com/Amresh-01/Canteeno/internal/checkout"
	"github.com/Amresh-01/Canteeno/internal/menu"
	"github.com/Amresh-01/Canteeno/internal/notify"
	"github.com/Amresh-01/Canteeno/internal/session"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// App holds the wired components shared by all commands.
type App struct {
	Client   *api.Client
	Cart     *cart.Store
	Catalog  *menu.Catalog
	Checkout *checkout.Service
	Session  session.Session
	Brokers  []string
}

// Config comes from the environment (and .env when present).
type Config struct {
	APIBaseURL   string
	RedisAddr    string
	Token        string
	Role         string
	KafkaBrokers []string
	Compensation cart.CompensationPolicy
}

func loadConfig() Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load(".env")

	cfg := Config{
		APIBaseURL: getEnv("CANTEEN_API_URL", "http://localhost:8080"),
		RedisAddr:  getEnv("REDIS_ADDR", ""),
		Token:      getEnv("CANTEEN_TOKEN", ""),
		Role:       getEnv("CANTEEN_ROLE", ""),
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if getEnv("CART_COMPENSATION", "all") == "adds" {
		cfg.Compensation = cart.CompensateAdds
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// buildApp constructs the component graph and runs the one-time session
// bootstrap.
func buildApp(ctx context.Context) (*App, error) {
	cfg := loadConfig()
	notifier := notify.LogNotifier{}

	client := api.NewClient(cfg.APIBaseURL)
	cartStore := cart.NewStore(client, notifier, cfg.Compensation)
	catalog := menu.NewCatalog(client, notifier)

	var sessions session.Store
	if cfg.RedisAddr != "" {
		sessions = session.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), "")
	} else {
		sessions = session.NewMemoryStore(cfg.Token, cfg.Role)
	}

	sess, err := session.Bootstrap(ctx, sessions, cartStore)
	if err != nil {
		return nil, err
	}

	return &App{
		Client:   client,
		Cart:     cartStore,
		Catalog:  catalog,
		Checkout: checkout.NewService(client, cartStore, catalog, notifier),
		Session:  sess,
		Brokers:  cfg.KafkaBrokers,
	}, nil
}
