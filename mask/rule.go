// FILE: lixenwraith/recorder/mask/rule.go
// Package mask provides string masking primitives and an ordered, first-match-wins
// rule engine that maps a field key and value to an optional redacted replacement.
package mask

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies the constructor a rule was built with.
// Rules are removed from a Set by kind, not by instance.
type Kind string

// Rule kinds
const (
	KindFull         Kind = "full"
	KindPartial      Kind = "partial"
	KindEmail        Kind = "email"
	KindUserIDNumber Kind = "user_id_number"
	KindRegex        Kind = "regex"
)

// Rule inspects a field and optionally returns a replacement for its value
type Rule interface {
	Kind() Kind
	// Evaluate returns the replacement and true when the rule applies to key
	Evaluate(key, value string) (string, bool)
}

// ruleFunc is the closure-backed Rule implementation shared by all factories
type ruleFunc struct {
	kind Kind
	fn   func(key, value string) (string, bool)
}

func (r *ruleFunc) Kind() Kind { return r.kind }

func (r *ruleFunc) Evaluate(key, value string) (string, bool) {
	return r.fn(key, value)
}

// keyMatcher tests a field key against an allow-list by exact or case-insensitive equality
type keyMatcher struct {
	keys       []string
	ignoreCase bool
}

func newKeyMatcher(keys []string, ignoreCase bool) keyMatcher {
	copied := make([]string, len(keys))
	copy(copied, keys)
	return keyMatcher{keys: copied, ignoreCase: ignoreCase}
}

func (m keyMatcher) matches(key string) bool {
	for _, k := range m.keys {
		if m.ignoreCase {
			if strings.EqualFold(k, key) {
				return true
			}
		} else if k == key {
			return true
		}
	}
	return false
}

// keyRule builds a rule that applies transform to values of matching keys
func keyRule(kind Kind, keys []string, ignoreCase bool, transform func(string) string) Rule {
	m := newKeyMatcher(keys, ignoreCase)
	return &ruleFunc{
		kind: kind,
		fn: func(key, value string) (string, bool) {
			if !m.matches(key) {
				return "", false
			}
			return transform(value), true
		},
	}
}

// Full replaces the entire value of matching keys with symbol
func Full(keys []string, ignoreCase bool, symbol rune) Rule {
	return keyRule(KindFull, keys, ignoreCase, func(v string) string {
		return MaskAll(v, symbol)
	})
}

// Partial keeps prefix leading and suffix trailing characters of matching values.
// Values too short to keep both ends are masked entirely.
func Partial(keys []string, ignoreCase bool, prefix, suffix int, symbol rune) Rule {
	if prefix < 0 {
		prefix = 0
	}
	if suffix < 0 {
		suffix = 0
	}
	return keyRule(KindPartial, keys, ignoreCase, func(v string) string {
		if len([]rune(v)) > prefix+suffix {
			return MaskMiddle(v, prefix, suffix, symbol)
		}
		return MaskAll(v, symbol)
	})
}

// Email applies MaskEmail to values of matching keys
func Email(keys []string, ignoreCase bool, symbol rune) Rule {
	return keyRule(KindEmail, keys, ignoreCase, func(v string) string {
		return MaskEmail(v, symbol)
	})
}

// UserIDNumber applies MaskUserIdentity to values of matching keys
func UserIDNumber(keys []string, ignoreCase bool, symbol rune) Rule {
	return keyRule(KindUserIDNumber, keys, ignoreCase, func(v string) string {
		return MaskUserIdentity(v, symbol)
	})
}

// Regex fully masks values whose key matches pattern.
// The pattern is applied to the key, never to the value.
func Regex(pattern string, ignoreCase bool, symbol rune) (Rule, error) {
	expr := pattern
	if ignoreCase {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("mask: invalid key pattern %q: %w", pattern, err)
	}
	return &ruleFunc{
		kind: KindRegex,
		fn: func(key, value string) (string, bool) {
			if !re.MatchString(key) {
				return "", false
			}
			return MaskAll(value, symbol), true
		},
	}, nil
}

// MustRegex is like Regex but panics on an invalid pattern
func MustRegex(pattern string, ignoreCase bool, symbol rune) Rule {
	r, err := Regex(pattern, ignoreCase, symbol)
	if err != nil {
		panic(err)
	}
	return r
}

// Chain is an ordered rule sequence evaluated with first-match-wins semantics
type Chain []Rule

// Evaluate returns the first replacement produced by a rule in order, or value when none applies
func (c Chain) Evaluate(key, value string) string {
	for _, r := range c {
		if r == nil {
			continue
		}
		if replaced, ok := r.Evaluate(key, value); ok {
			return replaced
		}
	}
	return value
}
