package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"gotwitcher/internal/app/adapters/metrics"
	"gotwitcher/internal/app/infrastructure/config"
	"gotwitcher/internal/app/infrastructure/storage"
	"gotwitcher/internal/app/ports"
	"gotwitcher/pkg/logger"
)

const (
	// KrakenURL is the base url of the main REST api.
	KrakenURL = "https://api.twitch.tv/kraken/"
	// UsherURL is the base url of the playlist api.
	UsherURL = "http://usher.twitch.tv/api/"
	// OldAPIURL is the base url of the undocumented api used for
	// access tokens and chat properties.
	OldAPIURL = "http://api.twitch.tv/api/"
	// StatusURL is the feed with the current chat server statuses.
	StatusURL = "http://twitchstatus.com/api/status?type=chat"

	headerAccept = "application/vnd.twitchtv.v3+json"
)

const (
	maxRetries  = 5
	baseBackoff = time.Second
	maxBackoff  = 30 * time.Second
)

// Session talks to the platform REST apis. Lookups for channels and
// users are cached for a short time; every request runs through a
// shared rate limiter.
type Session struct {
	log     logger.Logger
	cfg     *config.Config
	client  *http.Client
	limiter *rate.Limiter

	mu          sync.RWMutex
	token       string
	currentUser *ports.User

	channelCache *storage.Cache[*Channel]
	userCache    *storage.Cache[*ports.User]

	// overridable in tests
	krakenURL string
	usherURL  string
	oldAPIURL string
	statusURL string
}

func NewSession(log logger.Logger, cfg *config.Config, client *http.Client) *Session {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	limit := rate.Inf
	burst := 1
	if cfg.API.Requests > 0 && cfg.API.Per > 0 {
		limit = rate.Limit(float64(cfg.API.Requests) / cfg.API.Per.Seconds())
		burst = cfg.API.Requests
	}

	return &Session{
		log:          log,
		cfg:          cfg,
		client:       client,
		limiter:      rate.NewLimiter(limit, burst),
		channelCache: storage.NewCache[*Channel](64, time.Minute),
		userCache:    storage.NewCache[*ports.User](64, time.Minute),
		krakenURL:    KrakenURL,
		usherURL:     UsherURL,
		oldAPIURL:    OldAPIURL,
		statusURL:    StatusURL,
	}
}

// SetToken stores the OAuth token obtained from the login flow and
// drops the cached login user.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.currentUser = nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authorized reports whether the session carries an OAuth token.
func (s *Session) Authorized() bool {
	return s.Token() != ""
}

type apiError struct {
	Error   string `json:"error"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// doRequest performs one GET against the given url, decoding the JSON
// body into target when it is non-nil and raw is nil, or copying the
// raw body into raw otherwise. Rate limited responses are retried
// honoring the Ratelimit-Reset header.
func (s *Session) doRequest(endpoint, url string, target interface{}, raw *[]byte) error {
	if err := s.limiter.Wait(context.Background()); err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		s.log.Error("failed to create request", err, slog.String("url", url))
		return err
	}

	req.Header.Set("Accept", headerAccept)
	req.Header.Set("Client-ID", s.cfg.API.ClientID)
	if token := s.Token(); token != "" {
		req.Header.Set("Authorization", "OAuth "+token)
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		s.log.Trace("sending request",
			slog.Int("attempt", attempt), slog.String("url", url))

		resp, err := s.client.Do(req)
		if err != nil {
			s.log.Error("request failed", err, slog.String("url", url))
			return err
		}

		body, err := io.ReadAll(resp.Body)
		if cerr := resp.Body.Close(); cerr != nil {
			s.log.Error("failed to close response body", cerr)
		}
		if err != nil {
			return err
		}

		metrics.APIRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
		switch {
		case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent:
			if raw != nil {
				*raw = body
				return nil
			}
			if target == nil {
				return nil
			}
			if err := json.Unmarshal(body, target); err != nil {
				s.log.Error("failed to decode response", err,
					slog.String("url", url), slog.String("body", string(body)))
				return err
			}
			return nil

		case resp.StatusCode == http.StatusTooManyRequests:
			wait := calcWaitDuration(resp.Header.Get("Ratelimit-Reset"))
			if wait <= 0 {
				wait = time.Duration(attempt) * baseBackoff
			}
			if wait > maxBackoff {
				wait = maxBackoff
			}
			s.log.Warn("rate limit hit, backing off",
				slog.Int("attempt", attempt), slog.String("wait", wait.String()))
			time.Sleep(wait)

		default:
			var apiErr apiError
			if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
				return fmt.Errorf("api returned status %d: %s", resp.StatusCode, string(body))
			}
			s.log.Error("api returned an error", errors.New(apiErr.Message),
				slog.Int("status", resp.StatusCode), slog.String("url", url))
			return errors.New(apiErr.Message)
		}
	}

	return fmt.Errorf("request failed after %d retries", maxRetries)
}

func calcWaitDuration(resetHeader string) time.Duration {
	if resetHeader == "" {
		return 0
	}

	ts, err := strconv.ParseInt(resetHeader, 10, 64)
	if err != nil {
		return 0
	}

	resetTime := time.Unix(ts, 0)
	now := time.Now()

	if resetTime.Before(now) {
		return 0
	}
	return resetTime.Sub(now)
}
