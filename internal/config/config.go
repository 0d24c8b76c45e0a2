package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// New reads configuration from environment variables into a struct of type T.
// Sections are composed per binary, e.g.
//
//	type Config struct {
//		Log     config.Log
//		HTTP    config.HTTP
//		Catalog config.Catalog
//	}
func New[T any]() (T, error) {
	var cfg T
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
