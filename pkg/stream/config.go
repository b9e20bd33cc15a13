package stream

import "time"

// Config holds the Redis connection settings for the transition stream.
type Config struct {
	ConnectionURL  string        `env:"FSM_REDIS_URL,required"`                   // ConnectionURL is the redis connection string.
	ConnectTimeout time.Duration `env:"FSM_REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
	RetryAttempts  int           `env:"FSM_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"FSM_REDIS_RETRY_INTERVAL" envDefault:"5s"`
}
