package api

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/grafov/m3u8"
)

// GetChannelAccessToken returns the token and signature needed to
// request the stream playlist of the channel.
func (s *Session) GetChannelAccessToken(channel string) (string, string, error) {
	var resp struct {
		Token string `json:"token"`
		Sig   string `json:"sig"`
	}
	endpoint := s.oldAPIURL + "channels/" + url.PathEscape(channel) + "/access_token"
	if err := s.doRequest("channel_access_token", endpoint, &resp, nil); err != nil {
		return "", "", err
	}
	return resp.Token, resp.Sig, nil
}

// GetPlaylist returns the variant playlist for the live stream of the
// channel. Fails when the channel is offline.
func (s *Session) GetPlaylist(channel string) (*m3u8.MasterPlaylist, error) {
	token, sig, err := s.GetChannelAccessToken(channel)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("token", token)
	params.Set("sig", sig)
	params.Set("allow_audio_only", "true")
	params.Set("allow_source", "true")

	var raw []byte
	endpoint := s.usherURL + "channel/hls/" + url.PathEscape(channel) + ".m3u8?" + params.Encode()
	if err := s.doRequest("playlist", endpoint, nil, &raw); err != nil {
		return nil, err
	}

	playlist, listType, err := m3u8.DecodeFrom(bytes.NewReader(raw), true)
	if err != nil {
		return nil, fmt.Errorf("decode playlist: %w", err)
	}
	master, ok := playlist.(*m3u8.MasterPlaylist)
	if !ok || listType != m3u8.MASTER {
		return nil, fmt.Errorf("expected a master playlist for channel %s", channel)
	}
	return master, nil
}

// qualityNames maps playlist group ids to the quality names shown to
// the user.
var qualityNames = map[string]string{
	"chunked":    "source",
	"high":       "high",
	"medium":     "medium",
	"low":        "low",
	"mobile":     "mobile",
	"audio_only": "audio",
}

// GetQualityOptions returns the quality options available for the
// live stream of the channel, e.g. "source" or "audio".
func (s *Session) GetQualityOptions(channel string) ([]string, error) {
	master, err := s.GetPlaylist(channel)
	if err != nil {
		return nil, err
	}

	var options []string
	for _, variant := range master.Variants {
		if variant == nil || len(variant.Alternatives) == 0 {
			continue
		}
		if name, ok := qualityNames[variant.Alternatives[0].GroupId]; ok {
			options = append(options, name)
		}
	}
	return options, nil
}
