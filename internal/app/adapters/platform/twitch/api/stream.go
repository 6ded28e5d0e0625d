package api

import (
	"net/url"
	"strconv"
	"strings"
)

// GetStream returns the live stream of the channel, or nil when the
// channel is offline.
func (s *Session) GetStream(channel string) (*Stream, error) {
	var resp streamResponse
	if err := s.doRequest("get_stream", s.krakenURL+"streams/"+url.PathEscape(channel), &resp, nil); err != nil {
		return nil, err
	}
	return resp.Stream, nil
}

// GetStreams returns live streams filtered by game and channels,
// sorted by viewer count descending.
func (s *Session) GetStreams(game string, channels []string, limit, offset int) ([]*Stream, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	if game != "" {
		params.Set("game", game)
	}
	if len(channels) > 0 {
		params.Set("channel", strings.Join(channels, ","))
	}

	var resp streamsResponse
	if err := s.doRequest("get_streams", s.krakenURL+"streams?"+params.Encode(), &resp, nil); err != nil {
		return nil, err
	}
	return resp.Streams, nil
}

// SearchStreams returns streams matching the query. When hls is true
// only streams with an hls playlist are returned.
func (s *Session) SearchStreams(query string, hls bool, limit, offset int) ([]*Stream, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("hls", strconv.FormatBool(hls))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var resp streamsResponse
	if err := s.doRequest("search_streams", s.krakenURL+"search/streams?"+params.Encode(), &resp, nil); err != nil {
		return nil, err
	}
	return resp.Streams, nil
}

// FollowedStreams returns the live streams the current user follows.
// Needs an authorized session.
func (s *Session) FollowedStreams(limit, offset int) ([]*Stream, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var resp streamsResponse
	if err := s.doRequest("followed_streams", s.krakenURL+"streams/followed?"+params.Encode(), &resp, nil); err != nil {
		return nil, err
	}
	return resp.Streams, nil
}
