package changelog

import (
	"errors"
	"fmt"
	"strings"
)

// LinkPlaceholder is the substitution point in link URL templates.
const LinkPlaceholder = "{id}"

// MissingRequiredFieldError is returned when a kind's required custom field
// is absent or empty on a fragment. It is fatal for the invocation: a dropped
// credit or link is a correctness regression, so it is surfaced rather than
// silently skipped.
type MissingRequiredFieldError struct {
	Field string
	Kind  string
	Body  string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("fragment %q (kind %q): required field %q is missing or empty",
		truncate(e.Body, 40), e.Kind, e.Field)
}

// IsMissingRequiredField returns true if the error is a MissingRequiredFieldError.
func IsMissingRequiredField(err error) bool {
	var mf *MissingRequiredFieldError
	return errors.As(err, &mf)
}

// RenderLine renders one fragment into one markdown bullet line using the
// kind's rule:
//
//	- <body> ([#<id>](<url>), ...)
//
// Identifier tokens come from the rule's identifier field, split on single
// spaces with empty tokens dropped, and each token becomes one markdown link
// in token order. Duplicate tokens are preserved. A value that splits into
// zero tokens yields an empty parenthetical; callers that want to reject such
// values must do so during validation.
func RenderLine(frag Fragment, rule KindRule) (string, error) {
	raw, ok := frag.Custom[string(rule.IdentifierField)]
	if !ok || raw == "" {
		return "", &MissingRequiredFieldError{
			Field: string(rule.IdentifierField),
			Kind:  frag.Kind,
			Body:  frag.Body,
		}
	}

	links := renderLinks(raw, rule.LinkTemplate)
	return "- " + frag.Body + " (" + strings.Join(links, ", ") + ")", nil
}

// renderLinks turns a space-separated identifier list into markdown links,
// one per token, in token order.
func renderLinks(raw, template string) []string {
	tokens := splitTokens(raw)
	links := make([]string, len(tokens))
	for i, tok := range tokens {
		links[i] = fmt.Sprintf("[#%s](%s)", tok, expandLinkTemplate(template, tok))
	}
	return links
}

// expandLinkTemplate substitutes the identifier into the URL template.
func expandLinkTemplate(template, id string) string {
	return strings.ReplaceAll(template, LinkPlaceholder, id)
}

// splitTokens splits a space-separated field value, dropping empty tokens.
func splitTokens(s string) []string {
	var tokens []string
	for _, tok := range strings.Split(s, " ") {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
