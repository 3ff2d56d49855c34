// Package command builds the argument vectors handed to the external tool.
package command

import "strings"

// Spec is an ordered, immutable token list. Tokens are never re-split or quoted.
type Spec struct {
	tokens []string
}

// New creates a spec from tokens
func New(tokens ...string) Spec {
	cp := make([]string, len(tokens))
	copy(cp, tokens)
	return Spec{tokens: cp}
}

// Program returns the executable token
func (s Spec) Program() string {
	if len(s.tokens) == 0 {
		return ""
	}
	return s.tokens[0]
}

// Args returns every token after the program
func (s Spec) Args() []string {
	if len(s.tokens) < 2 {
		return nil
	}
	out := make([]string, len(s.tokens)-1)
	copy(out, s.tokens[1:])
	return out
}

// Tokens returns a copy of all tokens
func (s Spec) Tokens() []string {
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Empty reports whether the spec has no tokens
func (s Spec) Empty() bool {
	return len(s.tokens) == 0
}

// String joins tokens with single spaces. Used for echoing only.
func (s Spec) String() string {
	return strings.Join(s.tokens, " ")
}

// Equal reports whether both specs hold identical tokens
func (s Spec) Equal(o Spec) bool {
	if len(s.tokens) != len(o.tokens) {
		return false
	}
	for i := range s.tokens {
		if s.tokens[i] != o.tokens[i] {
			return false
		}
	}
	return true
}

// Count returns how often token occurs
func (s Spec) Count(token string) int {
	n := 0
	for _, t := range s.tokens {
		if t == token {
			n++
		}
	}
	return n
}

// Value returns the token following flag, if any
func (s Spec) Value(flag string) (string, bool) {
	for i, t := range s.tokens {
		if t == flag && i+1 < len(s.tokens) {
			return s.tokens[i+1], true
		}
	}
	return "", false
}

// Compose describes the docker-compose invocation prefix
type Compose struct {
	Binary  string
	Service string
}

// DefaultCompose is docker-compose running the freqtrade service
var DefaultCompose = Compose{Binary: "docker-compose", Service: "freqtrade"}

// Builder appends tokens in call order
type Builder struct {
	tokens []string
}

// Run starts a builder with `<binary> run --name <container> --rm <service> <subcommand>`
func (c Compose) Run(container, subcommand string) *Builder {
	return &Builder{tokens: []string{c.Binary, "run", "--name", container, "--rm", c.Service, subcommand}}
}

// Option appends a flag and its value as two tokens
func (b *Builder) Option(flag, value string) *Builder {
	b.tokens = append(b.tokens, flag, value)
	return b
}

// Flag appends a bare flag
func (b *Builder) Flag(flag string) *Builder {
	b.tokens = append(b.tokens, flag)
	return b
}

// FlagIf appends flag only when on is true; false emits nothing
func (b *Builder) FlagIf(on bool, flag string) *Builder {
	if on {
		b.tokens = append(b.tokens, flag)
	}
	return b
}

// OptionIf appends flag and value only when on is true
func (b *Builder) OptionIf(on bool, flag, value string) *Builder {
	if on {
		b.tokens = append(b.tokens, flag, value)
	}
	return b
}

// OptionList appends flag followed by each value as its own token
func (b *Builder) OptionList(flag string, values []string) *Builder {
	b.tokens = append(b.tokens, flag)
	b.tokens = append(b.tokens, values...)
	return b
}

// Build returns the finished spec
func (b *Builder) Build() Spec {
	return New(b.tokens...)
}
