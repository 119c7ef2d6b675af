package changelog

import "strings"

// Default kind labels whose contributor credit links point at pull requests.
// Credit link targets always follow this PR-like vs issue-like split,
// independent of the kind's own declared identifier field.
var DefaultPRCreditKinds = []string{"Dependencies", "Security"}

// Aggregator scans fragments and builds the contributor footer entries,
// filtering out the core-team allowlist case-insensitively and merging each
// remaining handle's credit links across fragments.
type Aggregator struct {
	coreTeam          map[string]struct{}
	prCreditKinds     map[string]struct{}
	issueLinkTemplate string
	prLinkTemplate    string
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithPRCreditKinds sets the kind labels credited via pull-request links.
func WithPRCreditKinds(labels []string) AggregatorOption {
	return func(g *Aggregator) {
		g.prCreditKinds = make(map[string]struct{}, len(labels))
		for _, l := range labels {
			g.prCreditKinds[l] = struct{}{}
		}
	}
}

// WithIssueLinkTemplate sets the issue URL template ({id} substitution point).
func WithIssueLinkTemplate(t string) AggregatorOption {
	return func(g *Aggregator) { g.issueLinkTemplate = t }
}

// WithPRLinkTemplate sets the pull-request URL template ({id} substitution point).
func WithPRLinkTemplate(t string) AggregatorOption {
	return func(g *Aggregator) { g.prLinkTemplate = t }
}

// NewAggregator creates an Aggregator. coreTeam is the allowlist of internal
// handles excluded from contributor credit; matching is case-insensitive.
func NewAggregator(coreTeam []string, opts ...AggregatorOption) *Aggregator {
	g := &Aggregator{
		coreTeam:      make(map[string]struct{}, len(coreTeam)),
		prCreditKinds: make(map[string]struct{}, len(DefaultPRCreditKinds)),
	}
	for _, handle := range coreTeam {
		g.coreTeam[foldHandle(handle)] = struct{}{}
	}
	for _, l := range DefaultPRCreditKinds {
		g.prCreditKinds[l] = struct{}{}
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Aggregate builds the contributor entries for the given fragments.
//
// Entries are ordered by first-seen handle while scanning fragments top to
// bottom; two spellings of the same handle that differ only in case merge
// into one entry keyed by the first-seen casing. A core-team handle
// contributes nothing, even when listed alongside non-team authors on the
// same fragment. Links accumulate in fragment scan order, each fragment's
// links in token order, with no cross-fragment deduplication.
//
// An empty result means no footer section is emitted at all.
func (g *Aggregator) Aggregate(frags []Fragment) []Contributor {
	var order []string
	entries := make(map[string]*Contributor)

	for _, frag := range frags {
		handles := splitTokens(frag.Custom[FieldAuthor])
		if len(handles) == 0 {
			continue
		}
		links := g.creditLinks(frag)

		for _, handle := range handles {
			folded := foldHandle(handle)
			if _, internal := g.coreTeam[folded]; internal {
				continue
			}
			entry, seen := entries[folded]
			if !seen {
				entry = &Contributor{Handle: handle}
				entries[folded] = entry
				order = append(order, folded)
			}
			entry.Links = append(entry.Links, links...)
		}
	}

	out := make([]Contributor, 0, len(order))
	for _, folded := range order {
		out = append(out, *entries[folded])
	}
	return out
}

// creditLinks builds the attribution links for one fragment. PR-credited
// kinds draw from the PR field with the pull-request template; every other
// kind draws from the Issue field with the issue template.
func (g *Aggregator) creditLinks(frag Fragment) []string {
	if _, ok := g.prCreditKinds[frag.Kind]; ok {
		return renderLinks(frag.Custom[FieldPR], g.prLinkTemplate)
	}
	return renderLinks(frag.Custom[FieldIssue], g.issueLinkTemplate)
}

// foldHandle case-folds a contributor handle for identity comparison.
func foldHandle(handle string) string {
	return strings.ToLower(handle)
}
