package config

import (
	"errors"
	"fmt"
	"strings"
)

func (m *Manager) validate(cfg *Config) error {
	// app
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if cfg.App.LogLevel != "" && !validLevels[cfg.App.LogLevel] {
		return fmt.Errorf("app.log_level must be one of trace, debug, info, warn, error; got %s", cfg.App.LogLevel)
	}
	if cfg.App.GinMode != "" && cfg.App.GinMode != "debug" && cfg.App.GinMode != "release" && cfg.App.GinMode != "test" {
		return fmt.Errorf("app.gin_mode must be debug, release or test; got %s", cfg.App.GinMode)
	}

	// api
	if cfg.API.ClientID == "" {
		cfg.API.ClientID = DefaultClientID
	}
	if (cfg.API.Requests != 0 && cfg.API.Per == 0) || (cfg.API.Requests == 0 && cfg.API.Per != 0) {
		return errors.New("api.requests and api.per must both be set or both be zero")
	}

	// chat
	if cfg.Chat.MessageLimit < 0 {
		return errors.New("chat.message_limit must not be negative")
	}
	if cfg.Chat.LimitInterval < 0 {
		return errors.New("chat.limit_interval must not be negative")
	}
	if cfg.Chat.QueueSize < 0 {
		return errors.New("chat.queue_size must not be negative")
	}

	// login
	if cfg.Login.RedirectURI != "" && !strings.HasPrefix(cfg.Login.RedirectURI, "http://") && !strings.HasPrefix(cfg.Login.RedirectURI, "https://") {
		return errors.New("login.redirect_uri must be an http(s) url")
	}
	return nil
}
