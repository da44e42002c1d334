// Package config loads settings from the environment and an optional .env file.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	CRPT       CRPT
	Signer     Signer
	Logger     Logger
	HTTP       HTTP
	Generation string `env:"UPD_GENERATION" envDefault:"5.03"`
}

type CRPT struct {
	ServiceURL            string        `env:"CRPT_SERVICE_URL" envDefault:""`
	AuthURL               string        `env:"CRPT_AUTH_URL" envDefault:""`
	CertificateThumbprint string        `env:"CRPT_CERTIFICATE_THUMBPRINT" envDefault:""`
	Timeout               time.Duration `env:"CRPT_TIMEOUT" envDefault:"60s"`
	TransportRetryMax     int           `env:"CRPT_TRANSPORT_RETRY_MAX" envDefault:"0"`
}

type Signer struct {
	// Command is the signing executable followed by its arguments
	Command []string      `env:"SIGNER_COMMAND" envSeparator:" " envDefault:""`
	Timeout time.Duration `env:"SIGNER_TIMEOUT" envDefault:"30s"`
}

type Logger struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTP struct {
	Address      string        `env:"HTTP_ADDRESS" envDefault:":8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	Debug        bool          `env:"HTTP_DEBUG" envDefault:"false"`
}

// New reads envPath when it exists and parses the environment
func New(envPath string) (Config, error) {
	if envPath != "" {
		err := godotenv.Load(envPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	c, err := env.ParseAsWithOptions[Config](env.Options{
		RequiredIfNoDef: true,
	})
	if err != nil {
		return Config{}, err
	}

	if c.CRPT.AuthURL == "" {
		c.CRPT.AuthURL = c.CRPT.ServiceURL
	}

	return c, nil
}
