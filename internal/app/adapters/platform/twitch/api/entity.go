package api

// Game is a category that can be streamed.
type Game struct {
	Name     string            `json:"name"`
	Box      map[string]string `json:"box"`
	Logo     map[string]string `json:"logo"`
	ID       int64             `json:"_id"`
	Viewers  int               `json:"viewers"`
	Channels int               `json:"channels"`
}

// Channel is a broadcaster's channel.
type Channel struct {
	Name                string `json:"name"`
	Status              string `json:"status"`
	DisplayName         string `json:"display_name"`
	Game                string `json:"game"`
	ID                  int64  `json:"_id"`
	Views               int    `json:"views"`
	Followers           int    `json:"followers"`
	URL                 string `json:"url"`
	Language            string `json:"language"`
	BroadcasterLanguage string `json:"broadcaster_language"`
	Mature              bool   `json:"mature"`
	Logo                string `json:"logo"`
	Banner              string `json:"banner"`
	VideoBanner         string `json:"video_banner"`
	Delay               int    `json:"delay"`
}

// Stream is a live broadcast on a channel.
type Stream struct {
	Game    string            `json:"game"`
	Channel *Channel          `json:"channel"`
	ID      int64             `json:"_id"`
	Viewers int               `json:"viewers"`
	Preview map[string]string `json:"preview"`
}

type userResponse struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	ID          int64  `json:"_id"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

type gamesResponse struct {
	Games []*Game `json:"games"`
}

type topGamesResponse struct {
	Top []struct {
		Game     *Game `json:"game"`
		Viewers  int   `json:"viewers"`
		Channels int   `json:"channels"`
	} `json:"top"`
}

type streamsSummaryResponse struct {
	Viewers  int `json:"viewers"`
	Channels int `json:"channels"`
}

type channelsResponse struct {
	Channels []*Channel `json:"channels"`
}

type streamsResponse struct {
	Streams []*Stream `json:"streams"`
}

type streamResponse struct {
	Stream *Stream `json:"stream"`
}
