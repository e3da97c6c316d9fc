package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env   string `env:"ENV" env-default:"prod"`
	HTTP  HTTPConfig
	Store StoreConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST"`
	Port            string        `env:"PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	// StaticDir holds the compiled view assets; empty disables static hosting.
	StaticDir string `env:"STATIC_DIR"`
}

type StoreConfig struct {
	URL            string        `env:"STORE_URL,MONGO_URL" env-required:"true"`
	Database       string        `env:"STORE_DATABASE" env-default:"todo_DB"`
	Collection     string        `env:"STORE_COLLECTION" env-default:"tasks"`
	ConnectTimeout time.Duration `env:"STORE_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"STORE_PING_TIMEOUT" env-default:"10s"`
}
