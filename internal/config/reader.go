package config

import (
	"errors"

	"github.com/ilyakaznacheev/cleanenv"
)

var errStoreURLRequired = errors.New("store url is required")

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	// cleanenv accepts a variable that is set but empty.
	if cfg.Store.URL == "" {
		return nil, errStoreURLRequired
	}

	return cfg, nil
}
