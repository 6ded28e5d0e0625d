package irc

import "gotwitcher/internal/app/domain/message"

// Event is one dispatched protocol event. Numeric replies arrive
// under their symbolic type ("welcome", "namreply"); unknown numerics
// keep the digits. Every event carries the tags of the line it came
// from.
type Event struct {
	Type      string
	Source    string
	Target    string
	Arguments []string
	Tags      []message.Tag
}

// EventAllRaw is emitted for every received line before any refined
// event, with the raw line as the sole argument.
const EventAllRaw = "all_raw_messages"
