package config

import "time"

type Config struct {
	App   App   `json:"app"`
	API   API   `json:"api"`
	Chat  Chat  `json:"chat"`
	Login Login `json:"login"`
}

type App struct {
	LogLevel    string `json:"log_level"`
	GinMode     string `json:"gin_mode"`
	ListenAddr  string `json:"listen_addr"`
	MetricsUser string `json:"metrics_user"`
	MetricsPass string `json:"metrics_pass"`
}

type API struct {
	ClientID string        `json:"client_id"`
	Requests int           `json:"requests"`
	Per      time.Duration `json:"per"`
}

type Chat struct {
	MessageLimit  int           `json:"message_limit"`
	LimitInterval time.Duration `json:"limit_interval"`
	QueueSize     int           `json:"queue_size"`
	PollTimeout   time.Duration `json:"poll_timeout"`
	UseWebsocket  bool          `json:"use_websocket"`
}

type Login struct {
	Addr        string   `json:"addr"`
	RedirectURI string   `json:"redirect_uri"`
	Scopes      []string `json:"scopes"`
}
