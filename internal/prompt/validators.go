package prompt

import (
	"regexp"
	"strconv"
	"strings"
)

var timerangePattern = regexp.MustCompile(`^\d{8}-\d{8}$`)

// AllowedTimeframes is the closed set accepted for download timeframes
var AllowedTimeframes = []string{"1m", "5m", "15m", "30m", "1h", "2h", "4h", "6h", "12h", "1d"}

// AllowedSpaces is the closed set accepted for hyperopt search spaces
var AllowedSpaces = []string{"all", "buy", "sell", "roi", "stoploss", "trailing", "trades", "protection", "default"}

// IsTimerange reports whether s has the YYYYMMDD-YYYYMMDD shape
func IsTimerange(s string) bool {
	return timerangePattern.MatchString(s)
}

// Fields splits s on whitespace, dropping empty tokens
func Fields(s string) []string {
	return strings.Fields(s)
}

// AllIn reports whether s holds at least one token and every token is in allowed
func AllIn(allowed []string) func(string) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(s string) bool {
		tokens := Fields(s)
		if len(tokens) == 0 {
			return false
		}
		for _, t := range tokens {
			if _, ok := set[t]; !ok {
				return false
			}
		}
		return true
	}
}

// IsPositiveInt reports whether s is a plain decimal integer greater than zero
func IsPositiveInt(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

// IsYesNo reports whether s is one of y, yes, n, no (already lowercased)
func IsYesNo(s string) bool {
	switch s {
	case "y", "yes", "n", "no":
		return true
	}
	return false
}

func isYes(s string) bool {
	return s == "y" || s == "yes"
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Timerange asks for a YYYYMMDD-YYYYMMDD range
func Timerange(p *Prompter, instruction string) (string, error) {
	return Ask(p, Question[string]{
		Field:       "timerange",
		Instruction: instruction,
		Valid:       IsTimerange,
		Convert:     Identity,
		Invalid:     "Invalid input. Please enter the timerange in the format YYYYMMDD-YYYYMMDD.",
	})
}

// Timeframes asks for space separated timeframes from AllowedTimeframes
func Timeframes(p *Prompter) ([]string, error) {
	tfs, err := Ask(p, Question[[]string]{
		Field:       "timeframes",
		Instruction: "Enter the Timeframes (separated by spaces, e.g., " + strings.Join(AllowedTimeframes, " ") + "):",
		Lower:       true,
		Valid:       AllIn(AllowedTimeframes),
		Convert:     Fields,
		Invalid: "Invalid input. Please enter valid timeframes separated by spaces. Allowed: " +
			strings.Join(AllowedTimeframes, ", ") + ".",
	})
	if err != nil {
		return nil, err
	}
	p.con.Tell("You've selected the timeframes: %s", strings.Join(tfs, ", "))
	return tfs, nil
}

// Spaces asks for one or more hyperopt spaces from AllowedSpaces
func Spaces(p *Prompter) ([]string, error) {
	return Ask(p, Question[[]string]{
		Field:       "spaces",
		Instruction: "Choose spaces (can choose multiple, separated by space):",
		Hints:       []string{"buy, sell, stoploss, trailing, roi, trades, protection, all, default"},
		Inline:      "Enter your choice: ",
		Lower:       true,
		Valid:       AllIn(AllowedSpaces),
		Convert:     Fields,
		Invalid:     "Invalid input. Please enter valid space options separated by space (all lowercase).",
	})
}

// PositiveInt asks for an integer greater than zero
func PositiveInt(p *Prompter, field, instruction, invalid string) (int, error) {
	return Ask(p, Question[int]{
		Field:       field,
		Instruction: instruction,
		Valid:       IsPositiveInt,
		Convert:     atoi,
		Invalid:     invalid,
	})
}

// YesNo asks a yes/no question printed as a warning line.
// yesMsg or noMsg is printed as a tell line once answered.
func YesNo(p *Prompter, field, question, yesMsg, noMsg string) (bool, error) {
	yes, err := Ask(p, Question[bool]{
		Field:   field,
		Hints:   []string{question},
		Lower:   true,
		Valid:   IsYesNo,
		Convert: isYes,
		Invalid: "Invalid input. Please enter 'Yes' or 'No'.",
	})
	if err != nil {
		return false, err
	}
	if yes && yesMsg != "" {
		p.con.Tell("%s", yesMsg)
	}
	if !yes && noMsg != "" {
		p.con.Tell("%s", noMsg)
	}
	return yes, nil
}

// Choice asks for one key of a closed menu and returns the mapped value
func Choice[T any](p *Prompter, q Question[T], options map[string]T) (T, error) {
	q.Valid = func(s string) bool {
		_, ok := options[s]
		return ok
	}
	q.Convert = func(s string) T {
		return options[s]
	}
	return Ask(p, q)
}
