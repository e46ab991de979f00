package server

import (
	"time"

	"github.com/zucenko/ancienttales/config"
	"github.com/zucenko/ancienttales/model"
)

type Options struct {
	Content    *model.Content
	Clock      model.Clock
	SessionTTL time.Duration
	ReapEvery  time.Duration
	// how long a transport waits for the session loop
	Timeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		Content:    model.DefaultContent(),
		Clock:      model.SystemClock{},
		SessionTTL: 30 * time.Minute,
		ReapEvery:  time.Minute,
		Timeout:    2 * time.Second,
	}
}

// OptionsFrom builds Options from the environment driven server config.
func OptionsFrom(cfg *config.Server) (Options, error) {
	opts := DefaultOptions()
	content, err := config.LoadContent(cfg.Content)
	if err != nil {
		return opts, err
	}
	opts.Content = content
	if cfg.SessionTTL > 0 {
		opts.SessionTTL = cfg.SessionTTL
	}
	if cfg.ReapEvery > 0 {
		opts.ReapEvery = cfg.ReapEvery
	}
	return opts, nil
}
