package lsystem

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// A Grammar rewrites every symbol that has a rule, all at once, once per
// iteration.
type Grammar struct {
	Axiom string
	Rules map[rune]string
}

// DefaultGrammar is a three-way branching plant: every X splits into three
// bracketed shoots and every F doubles.
func DefaultGrammar() Grammar {
	return Grammar{
		Axiom: "X",
		Rules: map[rune]string{
			'X': "[-FX][+FX][FX]",
			'F': "FF",
		},
	}
}

// ParseRules converts single-symbol string keys, as they appear in
// configuration files, to rules.
func ParseRules(rules map[string]string) (map[rune]string, error) {
	parsed := make(map[rune]string, len(rules))
	for k, v := range rules {
		if utf8.RuneCountInString(k) != 1 {
			return nil, fmt.Errorf("rule %q: predecessor must be a single symbol", k)
		}
		r, _ := utf8.DecodeRuneInString(k)
		parsed[r] = v
	}
	return parsed, nil
}

// Expand applies the rules iterations times, starting from the axiom.
func (g Grammar) Expand(iterations int) string {
	current := g.Axiom
	for i := 0; i < iterations; i++ {
		var b strings.Builder
		for _, r := range current {
			if production, ok := g.Rules[r]; ok {
				b.WriteString(production)
			} else {
				b.WriteRune(r)
			}
		}
		current = b.String()
	}
	return current
}
