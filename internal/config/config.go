package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "MINES"

// Load reads settings from MINES_* environment variables and, when path is
// not empty, from a config file. Nested keys map to env names by replacing
// dots with underscores: server.addr is MINES_SERVER_ADDR.
func Load(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("development", false)
	v.SetDefault("language", "en")
	v.SetDefault("probability", 0.1)
	v.SetDefault("max_cells", 1<<20)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.base_path", "")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.ws_read_limit", 4096)
	v.SetDefault("server.read_header_timeout", "10s")
	v.SetDefault("server.session_sweep", "1m")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.lifetime", "24h")
	v.SetDefault("log.file", "minesweeper.log")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	return v, nil
}
