package config

import "time"

type Home struct {
	// RenderWait bounds how long the home handler waits for the product fetch
	// before serving the loading view.
	RenderWait time.Duration `env:"HOME_RENDER_WAIT" envDefault:"3s"`
}
