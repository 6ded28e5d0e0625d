package irc

import "strings"

// Command formats one outbound line, CRLF-terminated. The trailing
// argument gets a ":" sentinel when it is empty, starts with one, or
// contains a space.
func Command(verb string, args ...string) string {
	var b strings.Builder
	b.WriteString(verb)
	for i, arg := range args {
		b.WriteByte(' ')
		if i == len(args)-1 && (arg == "" || strings.ContainsAny(arg, " ") || strings.HasPrefix(arg, ":")) {
			b.WriteByte(':')
		}
		b.WriteString(arg)
	}
	b.WriteString("\r\n")
	return b.String()
}

func Pass(password string) string { return Command("PASS", password) }

func Nick(nickname string) string { return Command("NICK", nickname) }

func User(username, realname string) string {
	return Command("USER", username, "0", "*", realname)
}

func Join(channel string) string { return Command("JOIN", channel) }

func Part(channel string) string { return Command("PART", channel) }

func Ping(target string) string { return Command("PING", target) }

func Pong(target string) string { return Command("PONG", target) }

func Privmsg(target, text string) string {
	return "PRIVMSG " + target + " :" + text + "\r\n"
}

func Notice(target, text string) string {
	return "NOTICE " + target + " :" + text + "\r\n"
}

// Action wraps the text in CTCP quoting so clients render it as "/me".
func Action(target, text string) string {
	return Privmsg(target, "\x01ACTION "+text+"\x01")
}

func Mode(target, modes string) string {
	if modes == "" {
		return "MODE " + target + "\r\n"
	}
	return "MODE " + target + " " + modes + "\r\n"
}

func Topic(channel, topic string) string {
	if topic == "" {
		return Command("TOPIC", channel)
	}
	return "TOPIC " + channel + " :" + topic + "\r\n"
}

func Whois(nickname string) string { return Command("WHOIS", nickname) }

func Who(target string) string {
	if target == "" {
		return "WHO\r\n"
	}
	return Command("WHO", target)
}

func Invite(nickname, channel string) string {
	return Command("INVITE", nickname, channel)
}

func Kick(channel, nickname, reason string) string {
	if reason == "" {
		return Command("KICK", channel, nickname)
	}
	return "KICK " + channel + " " + nickname + " :" + reason + "\r\n"
}

// Cap formats a capability negotiation line. Requested capabilities
// are joined into a single colon-prefixed trailing argument.
func Cap(subcommand string, caps ...string) string {
	if len(caps) == 0 {
		return "CAP " + subcommand + "\r\n"
	}
	return "CAP " + subcommand + " :" + strings.Join(caps, " ") + "\r\n"
}

func Quit(reason string) string {
	if reason == "" {
		return "QUIT\r\n"
	}
	return Command("QUIT", reason)
}
