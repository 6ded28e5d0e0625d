package config

import "time"

// DefaultClientID identifies the application to the platform when no
// client id is configured.
const DefaultClientID = "642a2vtmqfumca8hmfcpkosxlkmqifb"

func (m *Manager) GetDefault() *Config {
	return &Config{
		App: App{
			LogLevel:   "info",
			GinMode:    "release",
			ListenAddr: ":8080",
		},
		API: API{
			ClientID: DefaultClientID,
			Requests: 30,
			Per:      time.Minute,
		},
		Chat: Chat{
			MessageLimit:  20,
			LimitInterval: 30 * time.Second,
			QueueSize:     100,
			PollTimeout:   200 * time.Millisecond,
		},
		Login: Login{
			Addr:        ":42420",
			RedirectURI: "http://localhost:42420",
			Scopes:      []string{"user_read", "chat_login"},
		},
	}
}
