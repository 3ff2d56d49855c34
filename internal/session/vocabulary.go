package session

import "strings"

// Command is an operator decision after a run
type Command int

const (
	CommandRetry Command = iota
	CommandNew
	CommandExit
)

func (c Command) String() string {
	switch c {
	case CommandRetry:
		return "retry"
	case CommandNew:
		return "new"
	case CommandExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Vocabulary is the set of words a front-end accepts while awaiting a command
type Vocabulary struct {
	// Prompt is printed as an action line before reading a command
	Prompt string
	// Invalid is printed as an error line for unrecognized input
	Invalid string
	// NewRun is printed as a warning line before running freshly collected parameters
	NewRun string

	Words map[string]Command
}

// Parse matches input case-insensitively
func (v Vocabulary) Parse(input string) (Command, bool) {
	c, ok := v.Words[strings.ToLower(strings.TrimSpace(input))]
	return c, ok
}

// ShortAndLong accepts retry/r, new/n and exit/e
func ShortAndLong(prompt, newRun string) Vocabulary {
	return Vocabulary{
		Prompt:  prompt,
		Invalid: "Invalid input. Select 'retry' (r), 'new' (n), or 'exit' (e).",
		NewRun:  newRun,
		Words: map[string]Command{
			"retry": CommandRetry, "r": CommandRetry,
			"new": CommandNew, "n": CommandNew,
			"exit": CommandExit, "e": CommandExit,
		},
	}
}

// LongOnly accepts only the full words retry, new and exit
func LongOnly(prompt, newRun string) Vocabulary {
	return Vocabulary{
		Prompt:  prompt,
		Invalid: "Invalid input. Please type 'retry', 'new', or 'exit'.",
		NewRun:  newRun,
		Words: map[string]Command{
			"retry": CommandRetry,
			"new":   CommandNew,
			"exit":  CommandExit,
		},
	}
}
