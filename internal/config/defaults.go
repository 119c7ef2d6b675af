package config

// GetDefaultConfigTemplate returns a fully commented config template that
// helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# Changeset Configuration
# See 'changeset config -h' for commands

project: ""                             # Project display name (optional)
repository_url: ""                      # https://github.com/org/repo (empty = detect from origin remote)
changes_dir: .changeset                 # Directory for fragment files and batched releases

# Rendering
header_template: "## {version} - {date}" # Version header line
date_format: "January 2, 2006"           # Go time layout for {date}
# issue_link_template: ""                # URL template with one {id}; derived from repository_url when empty
# pr_link_template: ""                   # URL template with one {id}; derived from repository_url when empty
profile_template: "https://github.com/{handle}" # Contributor profile URL
min_field_length: 1                      # Minimum length of required custom field values

# Change kinds, in section order. field selects the linked identifier
# (Issue or PR); kinds with skip_global_author declare their own Author/PR.
kinds:
  - label: Features
    field: Issue
  - label: Fixes
    field: Issue
  - label: Docs
    field: Issue
  - label: Under the Hood
    field: Issue
  - label: Dependencies
    field: PR
    skip_global_author: true
  - label: Security
    field: PR
    skip_global_author: true

# Kinds credited in the contributor footer via pull request links
pr_credit_kinds:
  - Dependencies
  - Security

# Internal contributor handles excluded from the footer (case-insensitive)
core_team: []
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"project":        "",
		"repository_url": "",
		"changes_dir":    ".changeset",
		// header_template/date_format render e.g. "## 1.5.0 - April 27, 2023"
		"header_template":     "## {version} - {date}",
		"date_format":         "January 2, 2006",
		"issue_link_template": "",
		"pr_link_template":    "",
		"profile_template":    "https://github.com/{handle}",
		"min_field_length":    1,
		// kinds: default kind set. Dependencies and Security link pull
		// requests and carry their own Author/PR fields.
		"kinds": []map[string]interface{}{
			{"label": "Features", "field": "Issue"},
			{"label": "Fixes", "field": "Issue"},
			{"label": "Docs", "field": "Issue"},
			{"label": "Under the Hood", "field": "Issue"},
			{"label": "Dependencies", "field": "PR", "skip_global_author": true},
			{"label": "Security", "field": "PR", "skip_global_author": true},
		},
		// pr_credit_kinds: contributor credit for these kinds always links
		// pull requests, independent of the kind's own identifier field.
		"pr_credit_kinds": []string{"Dependencies", "Security"},
		"core_team":       []string{},
	}
}
