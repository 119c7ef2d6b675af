// Package config provides hierarchical configuration management for changeset
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.changeset/config.yml) > defaults. Legacy JSON project
// configs (.changeset/config.json) are still read, with a migration warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/raveheart1/changeset/internal/changelog"
)

// envPrefix is the prefix for environment variable overrides (CHANGESET_CORE_TEAM etc).
const envPrefix = "CHANGESET_"

// KindConfig declares one change kind: its section label, which custom field
// supplies link identifiers, an optional per-kind link template override, and
// whether the kind declares its own Author/identifier fields instead of
// inheriting the global author choice.
type KindConfig struct {
	Label            string `koanf:"label" yaml:"label"`
	Field            string `koanf:"field" yaml:"field"`
	LinkTemplate     string `koanf:"link_template" yaml:"link_template,omitempty"`
	SkipGlobalAuthor bool   `koanf:"skip_global_author" yaml:"skip_global_author,omitempty"`
}

// Configuration represents the changeset CLI tool configuration.
type Configuration struct {
	// Project is the display name used in generated documents (optional).
	Project string `koanf:"project" yaml:"project"`

	// RepositoryURL is the base repository URL (https://github.com/org/repo).
	// When set, issue/PR link templates are derived from it unless given
	// explicitly. When empty, the origin remote of the enclosing git
	// repository is used as a fallback.
	RepositoryURL string `koanf:"repository_url" yaml:"repository_url"`

	// ChangesDir is the directory holding fragment files and batched releases.
	ChangesDir string `koanf:"changes_dir" yaml:"changes_dir"`

	// HeaderTemplate renders the version header line. Substitution points:
	// {version}, {date}.
	HeaderTemplate string `koanf:"header_template" yaml:"header_template"`

	// DateFormat is the Go time layout for {date} in the header.
	DateFormat string `koanf:"date_format" yaml:"date_format"`

	// IssueLinkTemplate and PRLinkTemplate are URL templates with one {id}
	// substitution point. Empty values are derived from RepositoryURL.
	IssueLinkTemplate string `koanf:"issue_link_template" yaml:"issue_link_template"`
	PRLinkTemplate    string `koanf:"pr_link_template" yaml:"pr_link_template"`

	// ProfileTemplate is the contributor profile URL template with one
	// {handle} substitution point.
	ProfileTemplate string `koanf:"profile_template" yaml:"profile_template"`

	// MinFieldLength is the minimum length of required custom field values.
	MinFieldLength int `koanf:"min_field_length" yaml:"min_field_length"`

	// Kinds lists the change kinds in section order.
	Kinds []KindConfig `koanf:"kinds" yaml:"kinds"`

	// PRCreditKinds are the kind labels whose contributor credit links point
	// at pull requests instead of issues.
	PRCreditKinds []string `koanf:"pr_credit_kinds" yaml:"pr_credit_kinds"`

	// CoreTeam is the allowlist of internal contributor handles excluded from
	// the contributor footer. Matching is case-insensitive.
	CoreTeam []string `koanf:"core_team" yaml:"core_team"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .changeset/config.yml)
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from project config and environment sources.
// Priority: Environment variables > Project config > Defaults.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr.
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		yamlPath = customPath
	}
	legacyPath := LegacyProjectConfigPath()

	switch {
	case fileExists(yamlPath):
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", yamlPath, err)
		}
		if fileExists(legacyPath) && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		}
	case fileExists(legacyPath):
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Rewrite it as %s to silence this warning.\n\n", ProjectConfigPath())
		}
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}
	return nil
}

// envTransform maps CHANGESET_CHANGES_DIR to changes_dir and so on.
// Key names keep their underscores; there are no nested env keys.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// finalizeConfig unmarshals, derives link templates, and validates.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.deriveLinkTemplates()
	normalizeCoreTeam(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// ApplyRepositoryURL sets a detected repository URL and re-derives any link
// templates that are still empty. Explicit configuration always wins.
func (c *Configuration) ApplyRepositoryURL(url string) {
	if c.RepositoryURL == "" {
		c.RepositoryURL = url
	}
	c.deriveLinkTemplates()
}

// deriveLinkTemplates fills empty link templates from the repository URL
// using the GitHub URL layout.
func (c *Configuration) deriveLinkTemplates() {
	base := strings.TrimSuffix(c.RepositoryURL, "/")
	if base == "" {
		return
	}
	if c.IssueLinkTemplate == "" {
		c.IssueLinkTemplate = base + "/issues/" + changelog.LinkPlaceholder
	}
	if c.PRLinkTemplate == "" {
		c.PRLinkTemplate = base + "/pull/" + changelog.LinkPlaceholder
	}
}

// normalizeCoreTeam lowercases the allowlist; membership is case-insensitive.
func normalizeCoreTeam(c *Configuration) {
	for i, handle := range c.CoreTeam {
		c.CoreTeam[i] = strings.ToLower(handle)
	}
}

// Rules converts the configured kinds into changelog kind rules, filling
// per-kind link templates from the issue/PR templates when unset.
func (c *Configuration) Rules() []changelog.KindRule {
	rules := make([]changelog.KindRule, len(c.Kinds))
	for i, kind := range c.Kinds {
		rule := changelog.KindRule{
			Label:                   kind.Label,
			IdentifierField:         changelog.IdentifierField(kind.Field),
			LinkTemplate:            kind.LinkTemplate,
			SkipsGlobalAuthorChoice: kind.SkipGlobalAuthor,
		}
		if rule.LinkTemplate == "" {
			if rule.IdentifierField == changelog.IdentifierPR {
				rule.LinkTemplate = c.PRLinkTemplate
			} else {
				rule.LinkTemplate = c.IssueLinkTemplate
			}
		}
		rules[i] = rule
	}
	return rules
}

// PipelineConfig maps the configuration onto the changelog pipeline.
func (c *Configuration) PipelineConfig() changelog.PipelineConfig {
	return changelog.PipelineConfig{
		Rules:             c.Rules(),
		HeaderTemplate:    c.HeaderTemplate,
		DateFormat:        c.DateFormat,
		MinFieldLength:    c.MinFieldLength,
		CoreTeam:          c.CoreTeam,
		PRCreditKinds:     c.PRCreditKinds,
		IssueLinkTemplate: c.IssueLinkTemplate,
		PRLinkTemplate:    c.PRLinkTemplate,
		ProfileTemplate:   c.ProfileTemplate,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
