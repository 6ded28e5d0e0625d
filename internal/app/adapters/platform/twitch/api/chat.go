package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ChatServerStatus is one entry of the chat server status feed.
type ChatServerStatus struct {
	Server      string `json:"server"`
	IP          string `json:"ip"`
	Port        int    `json:"port"`
	Status      string `json:"status"`
	Errors      int    `json:"errors"`
	Lag         int    `json:"lag"`
	Description string `json:"description"`
}

// Address returns the "host:port" the entry describes.
func (c *ChatServerStatus) Address() string {
	if c.Server != "" {
		return c.Server
	}
	return fmt.Sprintf("%s:%d", c.IP, c.Port)
}

// statusRank orders server states best first. Unknown states rank
// between slow and offline.
func statusRank(status string) int {
	switch status {
	case "online":
		return 0
	case "slow":
		return 1
	case "offline":
		return 99
	default:
		return 2
	}
}

// Better reports whether c should be preferred over other: status
// rank, then error count, then lag.
func (c *ChatServerStatus) Better(other *ChatServerStatus) bool {
	if cr, or := statusRank(c.Status), statusRank(other.Status); cr != or {
		return cr < or
	}
	if c.Errors != other.Errors {
		return c.Errors < other.Errors
	}
	return c.Lag < other.Lag
}

type chatPropertiesResponse struct {
	ChatServers []string `json:"chat_servers"`
}

// GetChatServerCandidates returns the chat server addresses serving
// the given channel.
func (s *Session) GetChatServerCandidates(channel string) ([]string, error) {
	var resp chatPropertiesResponse
	endpoint := s.oldAPIURL + "channels/" + url.PathEscape(channel) + "/chat_properties"
	if err := s.doRequest("chat_properties", endpoint, &resp, nil); err != nil {
		return nil, err
	}
	if len(resp.ChatServers) == 0 {
		return nil, errors.New("no chat servers for channel " + channel)
	}
	return resp.ChatServers, nil
}

// GetChatServerStatus returns the current status of all chat servers.
func (s *Session) GetChatServerStatus() ([]*ChatServerStatus, error) {
	var statuses []*ChatServerStatus
	if err := s.doRequest("chat_server_status", s.statusURL, &statuses, nil); err != nil {
		return nil, err
	}
	return statuses, nil
}

// GetChatServer picks the best reachable chat server for the channel:
// the best-ranked status feed entry that serves the channel. When the
// feed is unreachable or lists none of the candidates, the first
// candidate is used.
func (s *Session) GetChatServer(channel string) (string, int, error) {
	candidates, err := s.GetChatServerCandidates(channel)
	if err != nil {
		return "", 0, err
	}

	statuses, err := s.GetChatServerStatus()
	if err != nil {
		s.log.Warn("chat server status feed unreachable, using the first candidate",
			slog.String("error", err.Error()))
		return splitAddress(candidates[0])
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Better(statuses[j])
	})

	candidateSet := make(map[string]bool, len(candidates))
	for _, addr := range candidates {
		candidateSet[addr] = true
	}

	for _, status := range statuses {
		if candidateSet[status.Address()] {
			return splitAddress(status.Address())
		}
	}

	s.log.Warn("no chat server candidate found in the status feed, using the first candidate",
		slog.String("channel", channel))
	return splitAddress(candidates[0])
}

func splitAddress(addr string) (string, int, error) {
	host, portStr, found := strings.Cut(addr, ":")
	if !found {
		return "", 0, fmt.Errorf("invalid chat server address %q", addr)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid chat server port in %q", addr)
	}
	return host, port, nil
}
