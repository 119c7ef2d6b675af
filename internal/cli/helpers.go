package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/raveheart1/changeset/internal/changelog"
	"github.com/raveheart1/changeset/internal/config"
	apperrors "github.com/raveheart1/changeset/internal/errors"
	"github.com/raveheart1/changeset/internal/gitrepo"
)

// loadConfig loads the effective configuration, applying global flag
// overrides and falling back to the origin remote for the repository URL.
func loadConfig(warningWriter io.Writer) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPathFlag,
		WarningWriter:     warningWriter,
	})
	if err != nil {
		return nil, apperrors.WrapWithMessage(err, apperrors.Configuration,
			"loading configuration",
			"Check "+config.ProjectConfigPath()+" for syntax errors",
			"Run 'changeset config init' to write a fresh config")
	}

	if changesDirFlag != "" {
		cfg.ChangesDir = changesDirFlag
	}

	if cfg.RepositoryURL == "" {
		if url, err := gitrepo.DetectRepositoryURL(""); err == nil {
			cfg.ApplyRepositoryURL(url)
		}
		// Detection failure is fine here; the pipeline reports missing link
		// templates with remediation when it is actually built.
	}

	return cfg, nil
}

// buildPipeline constructs the changelog pipeline from configuration.
func buildPipeline(cfg *config.Configuration) (*changelog.Pipeline, error) {
	pipeline, err := changelog.NewPipeline(cfg.PipelineConfig())
	if err != nil {
		return nil, apperrors.WrapWithMessage(err, apperrors.Configuration,
			"building changelog pipeline",
			"Set repository_url in "+config.ProjectConfigPath(),
			"Or set issue_link_template and pr_link_template explicitly")
	}
	return pipeline, nil
}

// fragmentErrorMessage formats core validation errors with their context.
// Returns false if the error is not a fragment validation error.
func fragmentErrorMessage(err error) (string, bool) {
	var unknownKind *changelog.UnknownKindError
	if errors.As(err, &unknownKind) {
		return fmt.Sprintf("fragment validation failed: %v", unknownKind), true
	}
	var missingField *changelog.MissingRequiredFieldError
	if errors.As(err, &missingField) {
		return fmt.Sprintf("fragment validation failed: %v", missingField), true
	}
	return "", false
}
