package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeBot      = "bot"
	ModeLocal    = "local"
	ModeSelfPlay = "selfplay"

	FeedbackBell = "bell"
	FeedbackOff  = "off"
)

var (
	ErrUnknownMode    = errors.New("unknown mode")
	ErrUnknownBotMark = errors.New("bot mark must be X or O")
	ErrUnknownLevel   = errors.New("unknown log level")
	ErrUnknownEffect  = errors.New("unknown feedback effect")
)

type Config struct {
	LogLevel            string `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	Mode                string `yaml:"mode" env:"TICTACTOE_MODE" env-default:"bot"`
	BotMark             string `yaml:"bot-mark" env:"TICTACTOE_BOT_MARK" env-default:"O"`
	Feedback            string `yaml:"feedback" env:"TICTACTOE_FEEDBACK" env-default:"bell"`
	SelfPlayParallelism int    `yaml:"selfplay-parallelism" env:"TICTACTOE_SELFPLAY_PARALLELISM" env-default:"4"`
	HistoryFile         string `yaml:"history-file" env:"TICTACTOE_HISTORY_FILE" env-default:"/tmp/tictactoe.history"`
}

// Load reads the config file at path if it exists, otherwise only the environment and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	} else if err = cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to load config from env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	switch that.Mode {
	case ModeBot, ModeLocal, ModeSelfPlay:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, that.Mode)
	}

	if that.BotMark != "X" && that.BotMark != "O" {
		return fmt.Errorf("%w: %q", ErrUnknownBotMark, that.BotMark)
	}

	if that.Feedback != FeedbackBell && that.Feedback != FeedbackOff {
		return fmt.Errorf("%w: %q", ErrUnknownEffect, that.Feedback)
	}

	if that.SelfPlayParallelism < 1 {
		that.SelfPlayParallelism = 1
	}

	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLevel, that.LogLevel)
	}

	return nil
}
