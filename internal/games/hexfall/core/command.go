package core

import "strings"

// Command is one of the six unit commands.
type Command int

const (
	CmdNone Command = iota
	CmdW
	CmdE
	CmdSW
	CmdSE
	CmdCW
	CmdCCW
)

// Commands lists all valid commands in canonical order.
var Commands = []Command{CmdW, CmdE, CmdSW, CmdSE, CmdCW, CmdCCW}

// aliases holds the accepted input characters per command. The first
// character of each entry is the representative emitted on output.
var aliases = map[Command]string{
	CmdW:   "p'!.03",
	CmdE:   "bcefy2",
	CmdSW:  "aghij4",
	CmdSE:  "lmno 5",
	CmdCW:  "dqrvz1",
	CmdCCW: "kstuwx",
}

// ignored characters are skipped silently in solution strings.
const ignored = "\t\n\r"

var symbolTable [256]Command

func init() {
	for cmd, chars := range aliases {
		for i := 0; i < len(chars); i++ {
			symbolTable[chars[i]] = cmd
		}
	}
}

// ParseCommand returns the command for ch, or CmdNone and false for
// characters outside the alphabet.
func ParseCommand(ch byte) (Command, bool) {
	cmd := symbolTable[ch]
	return cmd, cmd != CmdNone
}

// IsIgnored reports whether ch is whitespace that solution strings may contain
// without effect.
func IsIgnored(ch byte) bool {
	return strings.IndexByte(ignored, ch) >= 0
}

// Symbol returns the representative character for the command.
func (c Command) Symbol() byte {
	if s, ok := aliases[c]; ok {
		return s[0]
	}
	return '?'
}

// Aliases returns every character accepted for the command.
func (c Command) Aliases() string {
	return aliases[c]
}

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdW:
		return "W"
	case CmdE:
		return "E"
	case CmdSW:
		return "SW"
	case CmdSE:
		return "SE"
	case CmdCW:
		return "CW"
	case CmdCCW:
		return "CCW"
	default:
		return "None"
	}
}

// Encode converts commands to a solution string of representative symbols.
func Encode(cmds []Command) string {
	buf := make([]byte, 0, len(cmds))
	for _, c := range cmds {
		if c != CmdNone {
			buf = append(buf, c.Symbol())
		}
	}
	return string(buf)
}

// Decode converts a solution string to commands, dropping unknown characters.
func Decode(solution string) []Command {
	cmds := make([]Command, 0, len(solution))
	for i := 0; i < len(solution); i++ {
		if cmd, ok := ParseCommand(solution[i]); ok {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}
