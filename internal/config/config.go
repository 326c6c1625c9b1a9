package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`

	// ReconnectTimeout keeps a table alive after its websocket closes.
	ReconnectTimeout time.Duration `yaml:"reconnect-timeout" env:"RECONNECT_TIMEOUT" env-default:"30s"`

	Redis Redis `yaml:"redis"`
	Game  Game  `yaml:"game"`
}

type Redis struct {
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	ResultsTTL time.Duration `yaml:"results-ttl" env:"REDIS_RESULTS_TTL" env-default:"0"`
}

type Game struct {
	DefaultGridSize int `yaml:"default-grid-size" env:"GAME_DEFAULT_GRID_SIZE" env-default:"4"`
	MinGridSize     int `yaml:"min-grid-size" env:"GAME_MIN_GRID_SIZE" env-default:"3"`
	MaxGridSize     int `yaml:"max-grid-size" env:"GAME_MAX_GRID_SIZE" env-default:"8"`
	DefaultPlayers  int `yaml:"default-players" env:"GAME_DEFAULT_PLAYERS" env-default:"2"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads the config file, falling back to the environment when path is empty.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from env: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
