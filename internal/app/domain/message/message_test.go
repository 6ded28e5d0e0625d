package message

import "testing"

func TestNewChatter(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   Chatter
	}{
		{
			name:   "full mask",
			source: "pinky!winky@example.com",
			want: Chatter{
				Full:     "pinky!winky@example.com",
				Nickname: "pinky",
				User:     "winky",
				Host:     "example.com",
			},
		},
		{
			name:   "server name only",
			source: "tmi.twitch.tv",
			want:   Chatter{Full: "tmi.twitch.tv", Nickname: "tmi.twitch.tv"},
		},
		{
			name:   "no user part",
			source: "pinky@example.com",
			want: Chatter{
				Full:     "pinky@example.com",
				Nickname: "pinky",
				User:     "pinky",
				Host:     "example.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewChatter(tt.source); got != tt.want {
				t.Errorf("NewChatter(%q) = %+v, want %+v", tt.source, got, tt.want)
			}
		})
	}
}

func TestFromEvent(t *testing.T) {
	tags := []Tag{
		{Name: "color", Value: "#0000FF"},
		{Name: "emotes", Value: "25:0-4"},
		{Name: "subscriber", Value: "1"},
		{Name: "turbo", Value: "1"},
		{Name: "user-type", Value: "mod"},
		{Name: "unknown", Value: "whatever"},
	}

	m := FromEvent("pinky!winky@example.com", "#somechannel", "Kappa hi", tags)

	if m.Source.Nickname != "pinky" {
		t.Errorf("source nickname = %q", m.Source.Nickname)
	}
	if m.Target != "#somechannel" || m.Text != "Kappa hi" {
		t.Errorf("target/text = %q/%q", m.Target, m.Text)
	}
	if m.Color != "#0000FF" {
		t.Errorf("color = %q", m.Color)
	}
	if len(m.Emotes) != 1 || m.Emotes[0].ID != 25 {
		t.Errorf("emotes = %+v", m.Emotes)
	}
	if !m.Subscriber || !m.Turbo {
		t.Errorf("subscriber/turbo = %v/%v", m.Subscriber, m.Turbo)
	}
	if m.UserType != UserTypeMod {
		t.Errorf("user type = %q", m.UserType)
	}
}

func TestFromEventDefaults(t *testing.T) {
	// tags present but without values give the zero value per field
	tags := []Tag{
		{Name: "color"},
		{Name: "emotes"},
		{Name: "subscriber"},
		{Name: "turbo"},
		{Name: "user-type"},
	}

	m := FromEvent("pinky!winky@example.com", "#somechannel", "hi", tags)

	if m.Color != "" || len(m.Emotes) != 0 || m.Subscriber || m.Turbo || m.UserType != UserTypeNone {
		t.Errorf("expected zero values, got %+v", m)
	}
}

func TestTaggedMessageEqual(t *testing.T) {
	tags := []Tag{{Name: "subscriber", Value: "1"}, {Name: "emotes", Value: "25:0-4"}}
	a := FromEvent("pinky!winky@example.com", "#c", "hi", tags)
	b := FromEvent("pinky!winky@example.com", "#c", "hi", tags)
	if !a.Equal(b) {
		t.Error("identical messages not equal")
	}

	c := FromEvent("pinky!winky@example.com", "#c", "hi", []Tag{{Name: "subscriber", Value: "1"}})
	if a.Equal(c) {
		t.Error("messages with different emotes compare equal")
	}
}
