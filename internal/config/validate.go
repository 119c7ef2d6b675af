package config

import (
	"fmt"
	"strings"

	"github.com/raveheart1/changeset/internal/changelog"
)

// ValidationError represents a config validation error with field context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Validate checks that a Configuration satisfies all schema constraints.
// Link templates are validated only when present; empty templates are caught
// later, when the pipeline is built, so that repository detection can still
// fill them in.
func Validate(c *Configuration) error {
	if c.ChangesDir == "" {
		return &ValidationError{Field: "changes_dir", Message: "required field is empty"}
	}
	if c.HeaderTemplate == "" {
		return &ValidationError{Field: "header_template", Message: "required field is empty"}
	}
	if !strings.Contains(c.HeaderTemplate, "{version}") {
		return &ValidationError{Field: "header_template", Message: "template must contain {version}"}
	}
	if c.DateFormat == "" {
		return &ValidationError{Field: "date_format", Message: "required field is empty"}
	}
	if c.MinFieldLength < 1 {
		return &ValidationError{
			Field:   "min_field_length",
			Message: fmt.Sprintf("must be at least 1, got %d", c.MinFieldLength),
		}
	}

	if err := validateTemplate("profile_template", c.ProfileTemplate, changelog.ProfilePlaceholder); err != nil {
		return err
	}
	if c.IssueLinkTemplate != "" {
		if err := validateTemplate("issue_link_template", c.IssueLinkTemplate, changelog.LinkPlaceholder); err != nil {
			return err
		}
	}
	if c.PRLinkTemplate != "" {
		if err := validateTemplate("pr_link_template", c.PRLinkTemplate, changelog.LinkPlaceholder); err != nil {
			return err
		}
	}

	return validateKinds(c)
}

// validateKinds checks the kind list: non-empty, unique labels, known
// identifier fields, and well-formed per-kind template overrides.
func validateKinds(c *Configuration) error {
	if len(c.Kinds) == 0 {
		return &ValidationError{Field: "kinds", Message: "at least one kind is required"}
	}

	seen := make(map[string]bool, len(c.Kinds))
	for i, kind := range c.Kinds {
		field := fmt.Sprintf("kinds[%d]", i)
		if kind.Label == "" {
			return &ValidationError{Field: field + ".label", Message: "required field is empty"}
		}
		if seen[kind.Label] {
			return &ValidationError{
				Field:   field + ".label",
				Message: fmt.Sprintf("duplicate label %q", kind.Label),
			}
		}
		seen[kind.Label] = true

		if kind.Field != changelog.FieldIssue && kind.Field != changelog.FieldPR {
			return &ValidationError{
				Field: field + ".field",
				Message: fmt.Sprintf("must be %q or %q, got %q",
					changelog.FieldIssue, changelog.FieldPR, kind.Field),
			}
		}

		if kind.LinkTemplate != "" {
			if err := validateTemplate(field+".link_template", kind.LinkTemplate, changelog.LinkPlaceholder); err != nil {
				return err
			}
		}
	}

	for i, label := range c.PRCreditKinds {
		if !seen[label] {
			return &ValidationError{
				Field:   fmt.Sprintf("pr_credit_kinds[%d]", i),
				Message: fmt.Sprintf("label %q is not a configured kind", label),
			}
		}
	}

	return nil
}

// validateTemplate requires exactly one occurrence of the placeholder.
func validateTemplate(field, template, placeholder string) error {
	if strings.Count(template, placeholder) != 1 {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("template %q must contain exactly one %s substitution point", template, placeholder),
		}
	}
	return nil
}
