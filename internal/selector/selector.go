package selector

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	lerrors "github.com/ducminhle1904/freqtrade-launcher/internal/errors"
	"github.com/ducminhle1904/freqtrade-launcher/internal/prompt"
)

// Ordering controls how candidates are sorted before numbering
type Ordering string

const (
	// OrderNatural compares embedded digit runs numerically, so config-10 follows config-2
	OrderNatural Ordering = "natural"
	// OrderLexical sorts by byte order, so config-10 precedes config-2
	OrderLexical Ordering = "lexical"
)

// ParseOrdering validates an ordering name
func ParseOrdering(s string) (Ordering, error) {
	switch Ordering(s) {
	case OrderNatural, OrderLexical:
		return Ordering(s), nil
	case "":
		return OrderNatural, nil
	}
	return "", fmt.Errorf("unknown selector ordering %q (want natural or lexical)", s)
}

var (
	ErrDirectoryMissing = lerrors.NewFatalError("selector", "list", "directory does not exist")
	ErrNoCandidates     = lerrors.NewFatalError("selector", "list", "no matching files")
)

var suffixPattern = regexp.MustCompile(`(\d+)\.[^.]+$`)

// Candidate is one selectable file
type Candidate struct {
	Path string
	Name string
	// Number is the digit run right before the extension, "X" when absent
	Number string
}

func newCandidate(path string) Candidate {
	name := filepath.Base(path)
	number := "X"
	if m := suffixPattern.FindStringSubmatch(name); m != nil {
		number = m[1]
	}
	return Candidate{Path: path, Name: name, Number: number}
}

// List returns files in dir matching pattern, freshly enumerated on every call
func List(dir, pattern string, order Ordering) ([]Candidate, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryMissing, dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, lerrors.Wrap(err, lerrors.ErrorCategoryConfiguration, "selector", "list", "invalid pattern "+pattern)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrNoCandidates, pattern, dir)
	}

	names := make([]string, len(matches))
	byName := make(map[string]string, len(matches))
	for i, m := range matches {
		names[i] = filepath.Base(m)
		byName[names[i]] = m
	}
	SortNames(names, order)

	out := make([]Candidate, len(names))
	for i, n := range names {
		out[i] = newCandidate(byName[n])
	}
	return out, nil
}

// SortNames sorts names in place
func SortNames(names []string, order Ordering) {
	if order == OrderLexical {
		sort.Strings(names)
		return
	}
	sort.SliceStable(names, func(i, j int) bool {
		return naturalLess(names[i], names[j])
	})
}

// naturalLess compares a and b chunk by chunk, digit runs by numeric value
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ca, ra := chunk(a)
		cb, rb := chunk(b)
		if isDigit(ca[0]) && isDigit(cb[0]) {
			na, _ := strconv.ParseUint(ca, 10, 64)
			nb, _ := strconv.ParseUint(cb, 10, 64)
			if na != nb {
				return na < nb
			}
			if len(ca) != len(cb) {
				return len(ca) < len(cb)
			}
		} else if ca != cb {
			return ca < cb
		}
		a, b = ra, rb
	}
	return len(a) < len(b)
}

func chunk(s string) (string, string) {
	digits := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Menu describes how a candidate list is presented
type Menu struct {
	// Title is printed as an action line above the entries
	Title string
	// Entry renders the 1-based entry line
	Entry func(index int, c Candidate) string
	// EntryWarning prints entries as warning lines instead of info lines
	EntryWarning bool
	// Inline is the input prompt; %d is replaced with the candidate count
	Inline string
}

// Select prints the numbered menu and reads a 1-based index.
// Invalid input prints an error and redraws the whole menu.
func Select(p *prompt.Prompter, candidates []Candidate, menu Menu) (Candidate, error) {
	con := p.Console()
	n := len(candidates)
	if n == 0 {
		return Candidate{}, ErrNoCandidates
	}

	for {
		if menu.Title != "" {
			con.Action("%s", menu.Title)
		}
		for i, c := range candidates {
			line := menu.Entry(i+1, c)
			if menu.EntryWarning {
				con.Warning("%s", line)
			} else {
				con.Info("%s", line)
			}
		}
		if menu.Inline != "" {
			line := menu.Inline
			if strings.Contains(line, "%d") {
				line = fmt.Sprintf(line, n)
			}
			con.Inline("%s", line)
		}

		answer, err := p.ReadLine()
		if err != nil {
			return Candidate{}, err
		}
		if idx, ok := ParseIndex(answer, n); ok {
			return candidates[idx-1], nil
		}

		p.Rejected("selection")
		con.Error("Invalid input. Please enter a number between 1 and %d.", n)
	}
}

// ParseIndex accepts only plain decimal digits within [1, n]
func ParseIndex(s string, n int) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 1 || idx > n {
		return 0, false
	}
	return idx, true
}
