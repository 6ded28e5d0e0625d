package message

import (
	"fmt"
	"strings"
)

// Tag is a single IRCv3 message tag. Vendor-specific tags carry the
// vendor prefix separately, so "twitch.tv/tags" parses into
// Vendor "twitch.tv" and Name "tags". Empty Value and Vendor mean the
// component was absent. A Tag is immutable once parsed.
type Tag struct {
	Name   string
	Value  string
	Vendor string
}

// ParseTag parses a single "[vendor/]name[=value]" token from the tag
// block of a message.
func ParseTag(s string) (Tag, error) {
	if s == "" {
		return Tag{}, fmt.Errorf("empty tag")
	}

	var t Tag
	if idx := strings.IndexByte(s, '='); idx != -1 {
		t.Value = s[idx+1:]
		s = s[:idx]
	}
	if idx := strings.IndexByte(s, '/'); idx != -1 {
		t.Vendor = s[:idx]
		s = s[idx+1:]
	}
	if s == "" {
		return Tag{}, fmt.Errorf("tag has no name")
	}
	t.Name = s
	return t, nil
}

// ParseTags splits a raw ";"-separated tag block. Empty tokens are
// skipped. A nil or empty input yields an empty, non-nil slice.
func ParseTags(raw string) []Tag {
	tags := make([]Tag, 0, 4)
	for _, tok := range strings.Split(raw, ";") {
		if tok == "" {
			continue
		}
		t, err := ParseTag(tok)
		if err != nil {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}

func (t Tag) String() string {
	var b strings.Builder
	if t.Vendor != "" {
		b.WriteString(t.Vendor)
		b.WriteByte('/')
	}
	b.WriteString(t.Name)
	if t.Value != "" {
		b.WriteByte('=')
		b.WriteString(t.Value)
	}
	return b.String()
}
