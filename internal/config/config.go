package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	// DB
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	// JWT
	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	TokenTTLMinutes int    `envconfig:"TOKEN_TTL_MINUTES" default:"60"`
	// Images
	ImageMaxWidth           int   `envconfig:"IMAGE_MAX_WIDTH" default:"800"`
	ImageQuality            int   `envconfig:"IMAGE_QUALITY" default:"80"`
	MaxConcurrentTranscodes int64 `envconfig:"MAX_CONCURRENT_TRANSCODES" default:"4"`
	// Network
	Port    string `envconfig:"PORT" default:"3001"`
	BaseURL string `envconfig:"BASE_URL" default:"http://localhost:3001"`
	// Upload throttling
	UploadRatePerMinute float64 `envconfig:"UPLOAD_RATE_PER_MINUTE" default:"30"`
	UploadBurst         int     `envconfig:"UPLOAD_BURST" default:"10"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
