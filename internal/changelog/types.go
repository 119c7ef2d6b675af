package changelog

import "time"

// Well-known custom field names on a fragment.
const (
	FieldAuthor = "Author"
	FieldIssue  = "Issue"
	FieldPR     = "PR"
)

// IdentifierField names the custom field a kind draws its link identifiers from.
type IdentifierField string

const (
	// IdentifierIssue links a fragment's bullet line to issue numbers.
	IdentifierIssue IdentifierField = FieldIssue
	// IdentifierPR links a fragment's bullet line to pull request numbers.
	IdentifierPR IdentifierField = FieldPR
)

// Fragment is one unreleased change record: a kind, a free-text body, and
// kind-specific custom fields. Custom holds Author (space-separated
// contributor handles) plus the kind's identifier field (space-separated
// issue or PR numbers). Fragments are read-only inputs and are never mutated.
type Fragment struct {
	Kind   string            `yaml:"kind"`
	Body   string            `yaml:"body"`
	Custom map[string]string `yaml:"custom"`
}

// KindRule is the immutable rendering rule for one kind label.
type KindRule struct {
	// Label is the kind label as it appears on fragments and in section headings.
	Label string
	// IdentifierField selects which custom field supplies link identifiers.
	IdentifierField IdentifierField
	// LinkTemplate is a URL template with exactly one {id} substitution point.
	LinkTemplate string
	// SkipsGlobalAuthorChoice marks kinds that declare their own Author and
	// identifier fields instead of inheriting the global author choice.
	SkipsGlobalAuthorChoice bool
}

// Section is one populated kind section of a release: the kind label and the
// rendered bullet lines in fragment input order.
type Section struct {
	Label string
	Lines []string
}

// Release is the assembled document body for one version. Sections appear in
// kind registry declaration order; kinds with no fragments are omitted.
type Release struct {
	Version string
	Date    time.Time
	// Header is the rendered version header line.
	Header string
	// Sections holds the populated kind sections in registry order.
	Sections []Section
}

// IsEmpty returns true if the release has no kind sections.
func (r *Release) IsEmpty() bool {
	return len(r.Sections) == 0
}

// LineCount returns the total number of rendered bullet lines.
func (r *Release) LineCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Lines)
	}
	return n
}

// Contributor is one footer entry: the handle in its first-seen casing and
// the credit links accumulated across every fragment crediting that handle.
type Contributor struct {
	Handle string
	Links  []string
}
