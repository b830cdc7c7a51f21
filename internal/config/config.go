package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vancomm/sweeper/internal/input"
	"github.com/vancomm/sweeper/internal/journal"
	"github.com/vancomm/sweeper/internal/mines"
)

const EnvPrefix = "SWEEPER"

type Board struct {
	Width     int `mapstructure:"width"`
	Height    int `mapstructure:"height"`
	MineCount int `mapstructure:"mine_count"`
}

func (b Board) Params() mines.GameParams {
	return mines.GameParams{Width: b.Width, Height: b.Height, MineCount: b.MineCount}
}

type Session struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	MaxCells      int           `mapstructure:"max_cells"`
}

type Config struct {
	Development bool           `mapstructure:"development"`
	Addr        string         `mapstructure:"addr"`
	BasePath    string         `mapstructure:"base_path"`
	Surface     string         `mapstructure:"surface"`
	Board       Board          `mapstructure:"board"`
	CellSize    input.CellSize `mapstructure:"cell_size"`
	Journal     journal.Config `mapstructure:"journal"`
	Session     Session        `mapstructure:"session"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("development", false)
	v.SetDefault("addr", ":8080")
	v.SetDefault("base_path", "")
	v.SetDefault("surface", "")
	v.SetDefault("board.width", 9)
	v.SetDefault("board.height", 9)
	v.SetDefault("board.mine_count", 10)
	v.SetDefault("cell_size.width", input.DefaultCellSize.Width)
	v.SetDefault("cell_size.height", input.DefaultCellSize.Height)
	v.SetDefault("journal.path", "")
	v.SetDefault("journal.max_size_mb", 10)
	v.SetDefault("journal.max_backups", 3)
	v.SetDefault("journal.max_age_days", 28)
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.sweep_interval", time.Minute)
	v.SetDefault("session.max_cells", 100*100)
}

// LoadDotEnv loads .env from the working directory if there is one.
func LoadDotEnv() error {
	return godotenv.Load()
}

// Load reads defaults, then the optional config file at path, then
// SWEEPER_* environment variables (SWEEPER_BOARD_WIDTH for board.width).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("development", EnvPrefix+"_DEVELOPMENT", "DEVELOPMENT"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if err := c.Board.Params().Validate(); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if c.CellSize.Width <= 0 || c.CellSize.Height <= 0 {
		return errors.New("cell_size must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return errors.New("session.sweep_interval must be positive")
	}
	return nil
}
