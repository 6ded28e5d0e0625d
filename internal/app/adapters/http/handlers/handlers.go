package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"sync"

	"gotwitcher/internal/app/infrastructure/config"
	"gotwitcher/pkg/logger"
)

// TokenSetter receives the OAuth token extracted from the login
// redirect.
type TokenSetter interface {
	SetToken(token string)
	Authorized() bool
}

type Handlers struct {
	log       logger.Logger
	manager   *config.Manager
	session   TokenSetter
	state     string
	done      chan struct{}
	closeOnce sync.Once
}

func New(log logger.Logger, manager *config.Manager, session TokenSetter) (*Handlers, error) {
	s, err := generateSecureRandomString(52)
	if err != nil {
		log.Error("failed to generate the state parameter", err)
		return nil, err
	}

	return &Handlers{
		log:     log,
		manager: manager,
		session: session,
		state:   s,
		done:    make(chan struct{}),
	}, nil
}

// TokenReceived is closed once a valid token was extracted.
func (h *Handlers) TokenReceived() <-chan struct{} {
	return h.done
}

func generateSecureRandomString(length int) (string, error) {
	bytes := make([]byte, (length*3)/4)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length], nil
}
