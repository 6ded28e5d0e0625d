package message

// UserType is the special role of a chatter, carried by the
// "user-type" tag. Regular chatters have no user type.
type UserType string

const (
	UserTypeNone      UserType = ""
	UserTypeMod       UserType = "mod"
	UserTypeStaff     UserType = "staff"
	UserTypeGlobalMod UserType = "global_mod"
	UserTypeAdmin     UserType = "admin"
)

// Message is a private or public chat message.
type Message struct {
	Source Chatter
	Target string
	Text   string
}

// TaggedMessage is a Message enriched with the attributes carried by
// IRCv3 tags. Unrecognized tags are ignored; a recognized tag without
// a value leaves the zero value for its field.
type TaggedMessage struct {
	Message

	Tags       []Tag
	Color      string
	Emotes     []Emote
	Subscriber bool
	Turbo      bool
	UserType   UserType
}

// FromEvent builds a TaggedMessage from the components of a pubmsg or
// privmsg event. It is a pure function of its arguments.
func FromEvent(source, target, text string, tags []Tag) TaggedMessage {
	m := TaggedMessage{
		Message: Message{
			Source: NewChatter(source),
			Target: target,
			Text:   text,
		},
		Tags: tags,
	}
	m.applyTags(tags)
	return m
}

func (m *TaggedMessage) applyTags(tags []Tag) {
	for _, t := range tags {
		switch t.Name {
		case "color":
			m.Color = t.Value
		case "emotes":
			// malformed emote ranges leave the list empty rather
			// than failing the whole message
			emotes, err := ParseEmotes(t.Value)
			if err == nil {
				m.Emotes = emotes
			}
		case "subscriber":
			m.Subscriber = t.Value == "1"
		case "turbo":
			m.Turbo = t.Value == "1"
		case "user-type":
			switch UserType(t.Value) {
			case UserTypeMod, UserTypeStaff, UserTypeGlobalMod, UserTypeAdmin:
				m.UserType = UserType(t.Value)
			}
		}
	}
}

// Equal reports structural equality across all fields, including the
// tag-derived attributes.
func (m TaggedMessage) Equal(other TaggedMessage) bool {
	if m.Source.Full != other.Source.Full ||
		m.Target != other.Target ||
		m.Text != other.Text ||
		m.Color != other.Color ||
		m.Subscriber != other.Subscriber ||
		m.Turbo != other.Turbo ||
		m.UserType != other.UserType {
		return false
	}
	if len(m.Emotes) != len(other.Emotes) {
		return false
	}
	for i, e := range m.Emotes {
		o := other.Emotes[i]
		if e.ID != o.ID || len(e.Occurrences) != len(o.Occurrences) {
			return false
		}
		for j, occ := range e.Occurrences {
			if occ != o.Occurrences[j] {
				return false
			}
		}
	}
	return true
}
