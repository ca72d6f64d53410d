package cli

import (
	"strings"

	"github.com/google/shlex"
)

// parseLine tokenizes one input line shell-style, so quoted substrings
// survive as single arguments ("add \"Jane Doe\" 0501234567"). The
// first token, lowercased, is the command name.
func parseLine(line string) (string, []string, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return "", nil, err
	}
	if len(tokens) == 0 {
		return "", nil, nil
	}
	return strings.ToLower(tokens[0]), tokens[1:], nil
}
