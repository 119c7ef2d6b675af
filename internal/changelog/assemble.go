package changelog

import (
	"fmt"
	"strings"
	"time"
)

// Default rendering templates for the version header line.
const (
	DefaultHeaderTemplate = "## {version} - {date}"
	DefaultDateFormat     = "January 2, 2006"
)

// Assembler groups fragments into a Release: kinds in registry declaration
// order, fragments within a kind in input order, empty kinds omitted.
type Assembler struct {
	registry       *Registry
	headerTemplate string
	dateFormat     string
	minFieldLength int
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithHeaderTemplate sets the version header template. The template may use
// {version} and {date} substitution points.
func WithHeaderTemplate(t string) AssemblerOption {
	return func(a *Assembler) {
		if t != "" {
			a.headerTemplate = t
		}
	}
}

// WithDateFormat sets the time layout used for {date} in the header.
func WithDateFormat(layout string) AssemblerOption {
	return func(a *Assembler) {
		if layout != "" {
			a.dateFormat = layout
		}
	}
}

// WithMinFieldLength sets the minimum length required of a fragment's
// required custom field values.
func WithMinFieldLength(n int) AssemblerOption {
	return func(a *Assembler) {
		if n >= 1 {
			a.minFieldLength = n
		}
	}
}

// NewAssembler creates an Assembler over the given registry.
func NewAssembler(registry *Registry, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		registry:       registry,
		headerTemplate: DefaultHeaderTemplate,
		dateFormat:     DefaultDateFormat,
		minFieldLength: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble validates all fragments and groups them into a Release for the
// given version and date. Validation runs over the whole input before any
// line is rendered, so an invalid fragment never yields partial output.
// An empty fragment slice is a valid input producing a header-only release.
func (a *Assembler) Assemble(frags []Fragment, version string, date time.Time) (*Release, error) {
	if err := a.Validate(frags); err != nil {
		return nil, err
	}

	// Single grouping pass, preserving per-kind insertion order.
	byKind := make(map[string][]Fragment, a.registry.Len())
	for _, frag := range frags {
		byKind[frag.Kind] = append(byKind[frag.Kind], frag)
	}

	rel := &Release{
		Version: version,
		Date:    date,
		Header:  a.renderHeader(version, date),
	}

	for _, rule := range a.registry.Rules() {
		group := byKind[rule.Label]
		if len(group) == 0 {
			continue
		}
		section := Section{Label: rule.Label, Lines: make([]string, 0, len(group))}
		for _, frag := range group {
			line, err := RenderLine(frag, rule)
			if err != nil {
				return nil, err
			}
			section.Lines = append(section.Lines, line)
		}
		rel.Sections = append(rel.Sections, section)
	}

	return rel, nil
}

// Validate checks every fragment against the registry before rendering:
// the kind must be registered, the body must be present, and the kind's
// required custom fields must be non-empty and meet the minimum length.
func (a *Assembler) Validate(frags []Fragment) error {
	for _, frag := range frags {
		rule, err := a.registry.Resolve(frag.Kind)
		if err != nil {
			return err
		}
		if strings.TrimSpace(frag.Body) == "" {
			return &MissingRequiredFieldError{Field: "body", Kind: frag.Kind, Body: frag.Body}
		}
		for _, field := range requiredFields(rule) {
			if len(frag.Custom[field]) < a.minFieldLength {
				return &MissingRequiredFieldError{Field: field, Kind: frag.Kind, Body: frag.Body}
			}
		}
	}
	return nil
}

// requiredFields returns the custom fields a fragment of this kind must carry.
// Every kind requires Author and its identifier field; kinds that skip the
// global author choice declare both themselves, so the required set is the same.
func requiredFields(rule KindRule) []string {
	if rule.IdentifierField == IdentifierIssue {
		return []string{FieldAuthor, FieldIssue}
	}
	return []string{FieldAuthor, FieldPR}
}

// renderHeader expands the version header template.
func (a *Assembler) renderHeader(version string, date time.Time) string {
	header := strings.ReplaceAll(a.headerTemplate, "{version}", version)
	return strings.ReplaceAll(header, "{date}", date.Format(a.dateFormat))
}

// String implements fmt.Stringer for debugging output.
func (r *Release) String() string {
	return fmt.Sprintf("release %s (%d sections, %d lines)", r.Version, len(r.Sections), r.LineCount())
}
