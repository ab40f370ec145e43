package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Command is one entry of an environment's pipeline: the raw descriptor line
// and its argv split. Splitting is quote-aware (single and double quotes) but
// performs no shell evaluation; the descriptor never goes through a shell.
type Command struct {
	Raw  string
	Argv []string
}

// ParseCommand splits a raw command line into a Command.
func ParseCommand(raw string) (Command, error) {
	argv, err := splitArgv(raw)
	if err != nil {
		return Command{}, err
	}
	if len(argv) == 0 {
		return Command{}, zerr.With(zerr.New("empty command line"), "raw", raw)
	}
	return Command{Raw: raw, Argv: argv}, nil
}

// splitArgv splits on unquoted whitespace. Quotes group words and are
// stripped; there is no escape processing beyond that.
func splitArgv(raw string) ([]string, error) {
	var (
		argv    []string
		current strings.Builder
		quote   rune
		inWord  bool
	)

	for _, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				argv = append(argv, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, zerr.With(zerr.New("unterminated quote in command line"), "raw", raw)
	}
	if inWord {
		argv = append(argv, current.String())
	}
	return argv, nil
}
