package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// Oracle endpoint. An empty URL or key selects the built-in mock judge.
	OracleURL         string `env:"ORACLE_URL"`
	OracleAPIKey      string `env:"ORACLE_API_KEY"`
	OracleTimeoutSecs int    `env:"ORACLE_TIMEOUT_SECONDS" envDefault:"15"`

	CatalogPath string `env:"CATALOG_PATH"`

	LobbySize         int `env:"LOBBY_SIZE" envDefault:"4"`
	SweepIntervalMsec int `env:"SWEEP_INTERVAL_MS" envDefault:"500"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
