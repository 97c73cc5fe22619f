package uds

import (
	"strings"
)

// Line protocol spoken on the socket. The client sends one command per
// line; the server answers with data lines, optional confirmation prompts
// and exactly one terminating ok/err line.
const (
	CmdList    = "list"
	CmdStatus  = "status"
	CmdClick   = "click"
	CmdRefresh = "refresh"

	prefixData   = "- "
	prefixPrompt = "? "
	prefixOK     = "ok"
	prefixErr    = "err "

	answerYes = "y"
	answerNo  = "n"

	fieldSep = "\t"
)

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

// encodePrompt flattens a multi-line question into a single protocol line.
func encodePrompt(title, question string) string {
	return prefixPrompt + oneLine(title) + fieldSep + strings.ReplaceAll(question, "\n", fieldSep)
}

func decodePrompt(line string) (string, string) {
	title, question, _ := strings.Cut(strings.TrimPrefix(line, prefixPrompt), fieldSep)
	return title, strings.ReplaceAll(question, fieldSep, "\n")
}

func oneLine(s string) string {
	return strings.NewReplacer("\n", " ", "\t", " ").Replace(s)
}
