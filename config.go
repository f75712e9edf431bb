package pubsub

import (
	"time"

	"github.com/dmitrymomot/pubsub/core/config"
)

// Config is the environment-derived broker configuration.
// Load it through LoadConfig and apply it with WithConfig.
type Config struct {
	// QueueCapacity is the default delivery-queue capacity per subscription.
	QueueCapacity int `env:"PUBSUB_QUEUE_CAPACITY" envDefault:"100"`

	// OverflowPolicy is the default overflow policy name:
	// "block", "drop-newest" or "drop-oldest".
	OverflowPolicy string `env:"PUBSUB_OVERFLOW_POLICY" envDefault:"drop-newest"`

	// BlockTimeout bounds blocking enqueues during fan-out; zero disables
	// the bound.
	BlockTimeout time.Duration `env:"PUBSUB_BLOCK_TIMEOUT" envDefault:"0"`
}

// LoadConfig loads the broker configuration from the environment.
//
// Example:
//
//	cfg, err := pubsub.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	broker := pubsub.New[Alert](pubsub.WithConfig[Alert](cfg))
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
