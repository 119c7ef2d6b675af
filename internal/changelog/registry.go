package changelog

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownKindError is returned when a fragment references a kind label that
// is not present in the registry. It aborts the whole release build, since a
// mis-grouped fragment would silently corrupt output.
type UnknownKindError struct {
	Kind  string
	Known []string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown change kind %q (known kinds: %s)",
		e.Kind, strings.Join(e.Known, ", "))
}

// IsUnknownKind returns true if the error is an UnknownKindError.
func IsUnknownKind(err error) bool {
	var uk *UnknownKindError
	return errors.As(err, &uk)
}

// Registry holds the per-kind rendering rules. Declaration order drives the
// section order of the assembled document. A Registry is populated once at
// startup and never mutated afterwards.
type Registry struct {
	rules []KindRule
	index map[string]int
}

// NewRegistry builds a Registry from the given rules in declaration order.
// Labels must be non-empty and unique; identifier fields must be Issue or PR.
func NewRegistry(rules []KindRule) (*Registry, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("kind registry requires at least one kind")
	}

	index := make(map[string]int, len(rules))
	for i, rule := range rules {
		if rule.Label == "" {
			return nil, fmt.Errorf("kind %d: label is empty", i)
		}
		if _, dup := index[rule.Label]; dup {
			return nil, fmt.Errorf("kind %d: duplicate label %q", i, rule.Label)
		}
		if rule.IdentifierField != IdentifierIssue && rule.IdentifierField != IdentifierPR {
			return nil, fmt.Errorf("kind %q: identifier field must be %q or %q, got %q",
				rule.Label, IdentifierIssue, IdentifierPR, rule.IdentifierField)
		}
		index[rule.Label] = i
	}

	return &Registry{
		rules: append([]KindRule(nil), rules...),
		index: index,
	}, nil
}

// Resolve returns the rule for the given kind label.
// Returns an UnknownKindError if the label is not registered.
func (r *Registry) Resolve(label string) (KindRule, error) {
	i, ok := r.index[label]
	if !ok {
		return KindRule{}, &UnknownKindError{Kind: label, Known: r.Labels()}
	}
	return r.rules[i], nil
}

// Rules returns the rules in declaration order.
func (r *Registry) Rules() []KindRule {
	return append([]KindRule(nil), r.rules...)
}

// Labels returns the kind labels in declaration order.
func (r *Registry) Labels() []string {
	labels := make([]string, len(r.rules))
	for i, rule := range r.rules {
		labels[i] = rule.Label
	}
	return labels
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	return len(r.rules)
}
