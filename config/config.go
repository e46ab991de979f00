// Package config reads server and client settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/ancienttales/model"
)

type Server struct {
	Port       string        `env:"PORT" envDefault:"8080"`
	Content    string        `env:"TALES_CONTENT"`
	SessionTTL time.Duration `env:"TALES_SESSION_TTL" envDefault:"30m"`
	ReapEvery  time.Duration `env:"TALES_REAP_EVERY" envDefault:"1m"`
	LogLevel   string        `env:"TALES_LOG_LEVEL" envDefault:"info"`
	LogFormat  string        `env:"TALES_LOG_FORMAT" envDefault:"text"`
}

type Client struct {
	ServerURL string `env:"TALES_SERVER_URL" envDefault:"ws://localhost:8080/play"`
	Assets    string `env:"TALES_ASSETS" envDefault:"assets"`
	Font      string `env:"TALES_FONT" envDefault:"Teko-Light.ttf"`
	Content   string `env:"TALES_CONTENT"`
	LogLevel  string `env:"TALES_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadServer() (*Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadClient() (*Client, error) {
	var cfg Client
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetupLogging applies level and format to the standard logrus logger.
func SetupLogging(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(lvl)
	switch format {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("log format %q: want text or json", format)
	}
	return nil
}

// LoadContent returns the embedded tables when path is empty.
func LoadContent(path string) (*model.Content, error) {
	if path == "" {
		return model.DefaultContent(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}
	defer f.Close()
	c, err := model.DecodeContent(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.WithField("path", path).Info("content loaded")
	return c, nil
}
