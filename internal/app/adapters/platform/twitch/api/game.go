package api

import (
	"net/url"
	"strconv"
)

// SearchGames returns games similar to the query. When live is true
// only games running on at least one channel are returned. Viewer and
// channel counts are filled from the stream summary.
func (s *Session) SearchGames(query string, live bool) ([]*Game, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", "suggest")
	params.Set("live", strconv.FormatBool(live))

	var resp gamesResponse
	if err := s.doRequest("search_games", s.krakenURL+"search/games?"+params.Encode(), &resp, nil); err != nil {
		return nil, err
	}

	for _, game := range resp.Games {
		if err := s.FetchViewers(game); err != nil {
			return nil, err
		}
	}
	return resp.Games, nil
}

// FetchViewers fills the current viewer and channel counts of game.
func (s *Session) FetchViewers(game *Game) error {
	params := url.Values{}
	params.Set("game", game.Name)

	var resp streamsSummaryResponse
	if err := s.doRequest("streams_summary", s.krakenURL+"streams/summary?"+params.Encode(), &resp, nil); err != nil {
		return err
	}
	game.Viewers = resp.Viewers
	game.Channels = resp.Channels
	return nil
}

// TopGames returns the currently most watched games.
func (s *Session) TopGames(limit, offset int) ([]*Game, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var resp topGamesResponse
	if err := s.doRequest("top_games", s.krakenURL+"games/top?"+params.Encode(), &resp, nil); err != nil {
		return nil, err
	}

	games := make([]*Game, 0, len(resp.Top))
	for _, entry := range resp.Top {
		game := entry.Game
		if game == nil {
			continue
		}
		game.Viewers = entry.Viewers
		game.Channels = entry.Channels
		games = append(games, game)
	}
	return games, nil
}

// GetGame returns the game with the exact name, or nil when no search
// result matches it.
func (s *Session) GetGame(name string) (*Game, error) {
	games, err := s.SearchGames(name, false)
	if err != nil {
		return nil, err
	}
	for _, game := range games {
		if game.Name == name {
			return game, nil
		}
	}
	return nil, nil
}
