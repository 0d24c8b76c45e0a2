package config

import "time"

// Catalog configures the client of the product catalog API.
type Catalog struct {
	BaseURL string        `env:"CATALOG_BASE_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"5s"`
}
