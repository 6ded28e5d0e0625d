package api

import (
	"net/url"
	"strconv"
)

// GetChannel returns the channel with the given name. Results are
// cached for a short time.
func (s *Session) GetChannel(name string) (*Channel, error) {
	if channel, ok := s.channelCache.Get(name); ok {
		return channel, nil
	}

	var channel Channel
	if err := s.doRequest("get_channel", s.krakenURL+"channels/"+url.PathEscape(name), &channel, nil); err != nil {
		return nil, err
	}

	s.channelCache.Set(name, &channel)
	return &channel, nil
}

// SearchChannels returns channels matching the query.
func (s *Session) SearchChannels(query string, limit, offset int) ([]*Channel, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var resp channelsResponse
	if err := s.doRequest("search_channels", s.krakenURL+"search/channels?"+params.Encode(), &resp, nil); err != nil {
		return nil, err
	}
	return resp.Channels, nil
}
