package config

import "fmt"

// AppConfig bundles everything the game-server binary needs at boot.
type AppConfig struct {
	Server ServerConfig
	Game   GameConfig
	Log    LogConfig
}

func LoadApp() (AppConfig, error) {
	var cfg AppConfig
	var err error
	if cfg.Log, err = LoadLog(); err != nil {
		return AppConfig{}, fmt.Errorf("log config: %w", err)
	}
	if cfg.Server, err = LoadServer(); err != nil {
		return AppConfig{}, fmt.Errorf("server config: %w", err)
	}
	if cfg.Game, err = LoadGame(); err != nil {
		return AppConfig{}, fmt.Errorf("game config: %w", err)
	}
	return cfg, nil
}
