package irc

// numericNames maps three-digit reply codes to symbolic event types.
// Codes outside the table keep the digits as their event type.
var numericNames = map[string]string{
	"001": "welcome",
	"002": "yourhost",
	"003": "created",
	"004": "myinfo",
	"005": "featurelist",
	"250": "luserconns",
	"251": "luserclient",
	"252": "luserop",
	"253": "luserunknown",
	"254": "luserchannels",
	"255": "luserme",
	"265": "n_local",
	"266": "n_global",
	"301": "away",
	"302": "userhost",
	"303": "ison",
	"305": "unaway",
	"306": "nowaway",
	"311": "whoisuser",
	"312": "whoisserver",
	"313": "whoisoperator",
	"315": "endofwho",
	"317": "whoisidle",
	"318": "endofwhois",
	"319": "whoischannels",
	"321": "liststart",
	"322": "list",
	"323": "listend",
	"324": "channelmodeis",
	"329": "channelcreate",
	"331": "notopic",
	"332": "currenttopic",
	"333": "topicinfo",
	"341": "inviting",
	"352": "whoreply",
	"353": "namreply",
	"366": "endofnames",
	"372": "motd",
	"375": "motdstart",
	"376": "endofmotd",
	"401": "nosuchnick",
	"402": "nosuchserver",
	"403": "nosuchchannel",
	"404": "cannotsendtochan",
	"421": "unknowncommand",
	"422": "nomotd",
	"431": "nonicknamegiven",
	"432": "erroneusnickname",
	"433": "nicknameinuse",
	"441": "usernotinchannel",
	"442": "notonchannel",
	"443": "useronchannel",
	"451": "notregistered",
	"461": "needmoreparams",
	"462": "alreadyregistered",
	"464": "passwdmismatch",
	"465": "yourebannedcreep",
	"471": "channelisfull",
	"473": "inviteonlychan",
	"474": "bannedfromchan",
	"475": "badchannelkey",
	"482": "chanoprivsneeded",
}

// numericName resolves a reply code to its symbolic name, falling
// back to the code itself for unlisted numerics.
func numericName(code string) string {
	if name, ok := numericNames[code]; ok {
		return name
	}
	return code
}

func isNumeric(cmd string) bool {
	if len(cmd) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if cmd[i] < '0' || cmd[i] > '9' {
			return false
		}
	}
	return true
}
