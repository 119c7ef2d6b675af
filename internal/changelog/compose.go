package changelog

import (
	"fmt"
	"strings"
)

// ProfilePlaceholder is the substitution point in the profile URL template.
const ProfilePlaceholder = "{handle}"

// DefaultProfileTemplate links contributor handles to their GitHub profile.
const DefaultProfileTemplate = "https://github.com/" + ProfilePlaceholder

// Composer concatenates a release body and contributor entries into the
// final document text. The exact whitespace is a compatibility contract:
// given the same release and contributors the output is byte-identical.
type Composer struct {
	// ProfileTemplate is the contributor profile URL template with one
	// {handle} substitution point. Empty falls back to DefaultProfileTemplate.
	ProfileTemplate string
}

// Compose renders the document: the version header line, one blank line
// before each kind section, and, only when contributors exist, a blank line
// and the Contributors section. An empty release yields a header-only
// document with no trailing separators.
//
//	## 1.5.0 - April 27, 2023
//
//	### Fixes
//	- Fix X ([#100](https://.../issues/100))
//
//	### Contributors
//	- [@alice](https://github.com/alice) ([#100](https://.../issues/100))
func (c Composer) Compose(rel *Release, contributors []Contributor) string {
	var b strings.Builder

	b.WriteString(rel.Header)
	b.WriteString("\n")

	for _, section := range rel.Sections {
		b.WriteString("\n### ")
		b.WriteString(section.Label)
		b.WriteString("\n")
		for _, line := range section.Lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if len(contributors) > 0 {
		b.WriteString("\n### Contributors\n")
		for _, contrib := range contributors {
			b.WriteString(c.composeContributorLine(contrib))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// composeContributorLine renders one footer entry:
//
//	- [@<handle>](<profile-url>) (<links joined by ", ">)
func (c Composer) composeContributorLine(contrib Contributor) string {
	template := c.ProfileTemplate
	if template == "" {
		template = DefaultProfileTemplate
	}
	profile := strings.ReplaceAll(template, ProfilePlaceholder, contrib.Handle)
	return fmt.Sprintf("- [@%s](%s) (%s)", contrib.Handle, profile, strings.Join(contrib.Links, ", "))
}
