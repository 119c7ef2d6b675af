package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/changeset/internal/changelog"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, ".changeset", cfg.ChangesDir)
	assert.Equal(t, "## {version} - {date}", cfg.HeaderTemplate)
	assert.Equal(t, "January 2, 2006", cfg.DateFormat)
	assert.Equal(t, "https://github.com/{handle}", cfg.ProfileTemplate)
	assert.Equal(t, 1, cfg.MinFieldLength)
	assert.Equal(t, []string{"Dependencies", "Security"}, cfg.PRCreditKinds)
	assert.Empty(t, cfg.CoreTeam)

	require.Len(t, cfg.Kinds, 6)
	assert.Equal(t, "Features", cfg.Kinds[0].Label)
	assert.Equal(t, "Security", cfg.Kinds[5].Label)
	assert.True(t, cfg.Kinds[4].SkipGlobalAuthor)
	assert.Equal(t, "PR", cfg.Kinds[4].Field)
}

func TestLoad_ProjectConfigOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
repository_url: https://github.com/acme/widgets
changes_dir: .changes
core_team:
  - Alice
  - BOT1
kinds:
  - label: Features
    field: Issue
  - label: Breaking Changes
    field: PR
pr_credit_kinds: []
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ".changes", cfg.ChangesDir)
	// Defaults survive for keys the file does not set.
	assert.Equal(t, "## {version} - {date}", cfg.HeaderTemplate)

	require.Len(t, cfg.Kinds, 2)
	assert.Equal(t, "Breaking Changes", cfg.Kinds[1].Label)

	// The allowlist is lowercased on load.
	assert.Equal(t, []string{"alice", "bot1"}, cfg.CoreTeam)
}

func TestLoad_DerivesLinkTemplatesFromRepositoryURL(t *testing.T) {
	path := writeConfigFile(t, "repository_url: https://github.com/acme/widgets/\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/acme/widgets/issues/{id}", cfg.IssueLinkTemplate)
	assert.Equal(t, "https://github.com/acme/widgets/pull/{id}", cfg.PRLinkTemplate)
}

func TestLoad_ExplicitTemplatesWinOverDerived(t *testing.T) {
	path := writeConfigFile(t, `
repository_url: https://github.com/acme/widgets
issue_link_template: https://jira.acme.com/browse/{id}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://jira.acme.com/browse/{id}", cfg.IssueLinkTemplate)
	assert.Equal(t, "https://github.com/acme/widgets/pull/{id}", cfg.PRLinkTemplate)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "changes_dir: .from-file\n")
	t.Setenv("CHANGESET_CHANGES_DIR", ".from-env")
	t.Setenv("CHANGESET_PROFILE_TEMPLATE", "https://gitlab.acme.com/{handle}")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ".from-env", cfg.ChangesDir)
	assert.Equal(t, "https://gitlab.acme.com/{handle}", cfg.ProfileTemplate)
}

func TestLoad_LegacyJSONConfig(t *testing.T) {
	tmp := t.TempDir()
	chdirT(t, tmp)

	require.NoError(t, os.MkdirAll(projectConfigDir, 0755))
	require.NoError(t, os.WriteFile(LegacyProjectConfigPath(),
		[]byte(`{"changes_dir": ".legacy-changes"}`), 0644))

	var warnings bytes.Buffer
	cfg, err := LoadWithOptions(LoadOptions{WarningWriter: &warnings})
	require.NoError(t, err)

	assert.Equal(t, ".legacy-changes", cfg.ChangesDir)
	assert.Contains(t, warnings.String(), "deprecated JSON config")
}

func TestLoad_LegacyWarningSuppressed(t *testing.T) {
	tmp := t.TempDir()
	chdirT(t, tmp)

	require.NoError(t, os.MkdirAll(projectConfigDir, 0755))
	require.NoError(t, os.WriteFile(LegacyProjectConfigPath(),
		[]byte(`{"changes_dir": ".legacy-changes"}`), 0644))

	var warnings bytes.Buffer
	_, err := LoadWithOptions(LoadOptions{WarningWriter: &warnings, SkipWarnings: true})
	require.NoError(t, err)
	assert.Empty(t, warnings.String())
}

func TestLoad_InvalidFileSurfacesValidationError(t *testing.T) {
	path := writeConfigFile(t, "header_template: \"no version placeholder\"\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header_template")
}

func TestApplyRepositoryURL(t *testing.T) {
	t.Parallel()

	t.Run("fills empty templates", func(t *testing.T) {
		t.Parallel()
		cfg := &Configuration{}
		cfg.ApplyRepositoryURL("https://github.com/acme/widgets")
		assert.Equal(t, "https://github.com/acme/widgets/issues/{id}", cfg.IssueLinkTemplate)
		assert.Equal(t, "https://github.com/acme/widgets/pull/{id}", cfg.PRLinkTemplate)
	})

	t.Run("explicit repository URL wins", func(t *testing.T) {
		t.Parallel()
		cfg := &Configuration{RepositoryURL: "https://github.com/acme/widgets"}
		cfg.ApplyRepositoryURL("https://github.com/other/repo")
		assert.Equal(t, "https://github.com/acme/widgets/issues/{id}", cfg.IssueLinkTemplate)
	})

	t.Run("explicit templates untouched", func(t *testing.T) {
		t.Parallel()
		cfg := &Configuration{IssueLinkTemplate: "https://jira/{id}"}
		cfg.ApplyRepositoryURL("https://github.com/acme/widgets")
		assert.Equal(t, "https://jira/{id}", cfg.IssueLinkTemplate)
	})
}

func TestRules(t *testing.T) {
	t.Parallel()

	cfg := &Configuration{
		IssueLinkTemplate: "https://x/issues/{id}",
		PRLinkTemplate:    "https://x/pull/{id}",
		Kinds: []KindConfig{
			{Label: "Features", Field: "Issue"},
			{Label: "Dependencies", Field: "PR", SkipGlobalAuthor: true},
			{Label: "Docs", Field: "Issue", LinkTemplate: "https://docs/{id}"},
		},
	}

	rules := cfg.Rules()
	require.Len(t, rules, 3)

	assert.Equal(t, changelog.KindRule{
		Label:           "Features",
		IdentifierField: changelog.IdentifierIssue,
		LinkTemplate:    "https://x/issues/{id}",
	}, rules[0])
	assert.Equal(t, changelog.KindRule{
		Label:                   "Dependencies",
		IdentifierField:         changelog.IdentifierPR,
		LinkTemplate:            "https://x/pull/{id}",
		SkipsGlobalAuthorChoice: true,
	}, rules[1])
	// A per-kind override beats the global template.
	assert.Equal(t, "https://docs/{id}", rules[2].LinkTemplate)
}

func TestPipelineConfig(t *testing.T) {
	t.Parallel()

	cfg := &Configuration{
		HeaderTemplate:    "## {version} - {date}",
		DateFormat:        "2006-01-02",
		MinFieldLength:    2,
		CoreTeam:          []string{"bot1"},
		PRCreditKinds:     []string{"Dependencies"},
		IssueLinkTemplate: "https://x/issues/{id}",
		PRLinkTemplate:    "https://x/pull/{id}",
		ProfileTemplate:   "https://x/{handle}",
		Kinds:             []KindConfig{{Label: "Fixes", Field: "Issue"}},
	}

	pc := cfg.PipelineConfig()
	assert.Equal(t, cfg.HeaderTemplate, pc.HeaderTemplate)
	assert.Equal(t, cfg.DateFormat, pc.DateFormat)
	assert.Equal(t, 2, pc.MinFieldLength)
	assert.Equal(t, []string{"bot1"}, pc.CoreTeam)
	assert.Equal(t, []string{"Dependencies"}, pc.PRCreditKinds)
	require.Len(t, pc.Rules, 1)
	assert.Equal(t, "Fixes", pc.Rules[0].Label)
}

// chdirT changes into dir for the duration of the test, mirroring the
// behavior of testing.T.Chdir (unavailable before Go 1.24).
func chdirT(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
