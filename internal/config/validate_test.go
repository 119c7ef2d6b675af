package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Configuration {
	return &Configuration{
		ChangesDir:      ".changeset",
		HeaderTemplate:  "## {version} - {date}",
		DateFormat:      "January 2, 2006",
		ProfileTemplate: "https://github.com/{handle}",
		MinFieldLength:  1,
		Kinds: []KindConfig{
			{Label: "Features", Field: "Issue"},
			{Label: "Dependencies", Field: "PR"},
		},
		PRCreditKinds: []string{"Dependencies"},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate    func(*Configuration)
		wantField string
	}{
		"valid config": {
			mutate: func(c *Configuration) {},
		},
		"empty changes dir": {
			mutate:    func(c *Configuration) { c.ChangesDir = "" },
			wantField: "changes_dir",
		},
		"empty header template": {
			mutate:    func(c *Configuration) { c.HeaderTemplate = "" },
			wantField: "header_template",
		},
		"header template without version": {
			mutate:    func(c *Configuration) { c.HeaderTemplate = "## release - {date}" },
			wantField: "header_template",
		},
		"empty date format": {
			mutate:    func(c *Configuration) { c.DateFormat = "" },
			wantField: "date_format",
		},
		"zero min field length": {
			mutate:    func(c *Configuration) { c.MinFieldLength = 0 },
			wantField: "min_field_length",
		},
		"profile template without handle": {
			mutate:    func(c *Configuration) { c.ProfileTemplate = "https://github.com/" },
			wantField: "profile_template",
		},
		"malformed issue template": {
			mutate:    func(c *Configuration) { c.IssueLinkTemplate = "https://x/{id}/{id}" },
			wantField: "issue_link_template",
		},
		"malformed pr template": {
			mutate:    func(c *Configuration) { c.PRLinkTemplate = "https://x/pulls" },
			wantField: "pr_link_template",
		},
		"empty link templates allowed before detection": {
			mutate: func(c *Configuration) {
				c.IssueLinkTemplate = ""
				c.PRLinkTemplate = ""
			},
		},
		"no kinds": {
			mutate:    func(c *Configuration) { c.Kinds = nil },
			wantField: "kinds",
		},
		"kind without label": {
			mutate:    func(c *Configuration) { c.Kinds[0].Label = "" },
			wantField: "kinds[0].label",
		},
		"duplicate kind label": {
			mutate:    func(c *Configuration) { c.Kinds[1].Label = "Features" },
			wantField: "kinds[1].label",
		},
		"unknown identifier field": {
			mutate:    func(c *Configuration) { c.Kinds[0].Field = "Ticket" },
			wantField: "kinds[0].field",
		},
		"malformed kind template override": {
			mutate:    func(c *Configuration) { c.Kinds[0].LinkTemplate = "https://x/none" },
			wantField: "kinds[0].link_template",
		},
		"pr credit kind not configured": {
			mutate:    func(c *Configuration) { c.PRCreditKinds = []string{"Security"} },
			wantField: "pr_credit_kinds[0]",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	withField := &ValidationError{Field: "changes_dir", Message: "required field is empty"}
	assert.Equal(t, "changes_dir: required field is empty", withField.Error())

	withoutField := &ValidationError{Message: "broken"}
	assert.Equal(t, "broken", withoutField.Error())
}
