package irc

import "strings"

// Decoder turns raw wire lines into ordered event slices. It keeps
// the server name learned from the first prefixed line so raw-line
// events can name their origin.
type Decoder struct {
	serverName string
}

// ServerName returns the name the server announced itself with, or
// the empty string before registration completes.
func (d *Decoder) ServerName() string {
	return d.serverName
}

// Decode parses one line and returns the events it produces, in
// dispatch order: the raw-line event first, then the refined events.
// A privmsg or notice body may expand into several events when CTCP
// segments are embedded in it.
func (d *Decoder) Decode(raw string) ([]Event, error) {
	line, err := ParseLine(raw)
	if err != nil {
		return nil, err
	}

	command := line.Command
	if isNumeric(command) {
		command = numericName(command)
	}
	if d.serverName == "" && line.Prefix != "" {
		d.serverName = line.Prefix
	}

	events := []Event{{
		Type:      EventAllRaw,
		Source:    d.serverName,
		Arguments: []string{strings.TrimRight(line.Raw, "\r\n")},
		Tags:      line.Tags,
	}}

	switch command {
	case "privmsg", "notice":
		events = append(events, d.decodeMessage(command, line)...)
	default:
		events = append(events, d.decodeGeneric(command, line))
	}
	return events, nil
}

// decodeMessage refines privmsg and notice lines. Plain text becomes
// pubmsg/privmsg or pubnotice/privnotice depending on the target;
// CTCP segments become ctcp or ctcpreply events, with an extra action
// event for ACTION requests.
func (d *Decoder) decodeMessage(command string, line *Line) []Event {
	var target, body string
	if len(line.Args) > 0 {
		target = line.Args[0]
	}
	if len(line.Args) > 1 {
		body = line.Args[1]
	}

	var events []Event
	for _, chunk := range dequoteCTCP(body) {
		if chunk.Tagged {
			ctcpType := "ctcp"
			if command == "notice" {
				ctcpType = "ctcpreply"
			}
			args := []string{chunk.Command}
			if chunk.Payload != "" {
				args = append(args, chunk.Payload)
			}
			events = append(events, Event{
				Type:      ctcpType,
				Source:    line.Prefix,
				Target:    target,
				Arguments: args,
				Tags:      line.Tags,
			})
			if ctcpType == "ctcp" && chunk.Command == "ACTION" {
				events = append(events, Event{
					Type:      "action",
					Source:    line.Prefix,
					Target:    target,
					Arguments: args[1:],
					Tags:      line.Tags,
				})
			}
			continue
		}

		msgType := "privmsg"
		if command == "privmsg" && IsChannel(target) {
			msgType = "pubmsg"
		} else if command == "notice" {
			msgType = "privnotice"
			if IsChannel(target) {
				msgType = "pubnotice"
			}
		}
		events = append(events, Event{
			Type:      msgType,
			Source:    line.Prefix,
			Target:    target,
			Arguments: []string{chunk.Text},
			Tags:      line.Tags,
		})
	}
	return events
}

// decodeGeneric handles every command outside the message family. The
// first argument becomes the target and the remainder the arguments,
// except for ping (target only) and quit (message only).
func (d *Decoder) decodeGeneric(command string, line *Line) Event {
	ev := Event{
		Type:   command,
		Source: line.Prefix,
		Tags:   line.Tags,
	}
	switch {
	case command == "quit":
		if len(line.Args) > 0 {
			ev.Arguments = line.Args[:1]
		}
	case command == "ping":
		if len(line.Args) > 0 {
			ev.Target = line.Args[0]
		}
		ev.Arguments = line.Args
	default:
		if len(line.Args) > 0 {
			ev.Target = line.Args[0]
			ev.Arguments = line.Args[1:]
		}
	}
	return ev
}
