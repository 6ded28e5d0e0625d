package message

import (
	"fmt"
	"strconv"
	"strings"
)

// Occurrence is a start/end rune index pair inside a message text.
type Occurrence struct {
	Start int
	End   int
}

// Emote is one emote of the "emotes" tag, tied to the message it was
// parsed from. The picture can be fetched from
// cdn.jtvnw.net/emoticons/v1/<ID>/1.0.
type Emote struct {
	ID          int
	Occurrences []Occurrence
}

// ParseEmote parses a single emote token, e.g. "25:0-4,6-10".
func ParseEmote(s string) (Emote, error) {
	idx := strings.IndexByte(s, ':')
	if idx == -1 {
		return Emote{}, fmt.Errorf("emote %q: missing ':'", s)
	}

	id, err := strconv.Atoi(s[:idx])
	if err != nil {
		return Emote{}, fmt.Errorf("emote %q: bad id: %w", s, err)
	}

	e := Emote{ID: id}
	for _, occ := range strings.Split(s[idx+1:], ",") {
		start, end, ok := strings.Cut(occ, "-")
		if !ok {
			return Emote{}, fmt.Errorf("emote %q: bad occurrence %q", s, occ)
		}
		si, err := strconv.Atoi(start)
		if err != nil {
			return Emote{}, fmt.Errorf("emote %q: bad occurrence %q: %w", s, occ, err)
		}
		ei, err := strconv.Atoi(end)
		if err != nil {
			return Emote{}, fmt.Errorf("emote %q: bad occurrence %q: %w", s, occ, err)
		}
		e.Occurrences = append(e.Occurrences, Occurrence{Start: si, End: ei})
	}
	return e, nil
}

// ParseEmotes parses the full "emotes" tag value, multiple emotes
// separated by "/". An empty value yields nil.
func ParseEmotes(s string) ([]Emote, error) {
	if s == "" {
		return nil, nil
	}
	var emotes []Emote
	for _, tok := range strings.Split(s, "/") {
		e, err := ParseEmote(tok)
		if err != nil {
			return nil, err
		}
		emotes = append(emotes, e)
	}
	return emotes, nil
}
