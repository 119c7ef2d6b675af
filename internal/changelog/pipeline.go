package changelog

import (
	"fmt"
	"strings"
	"time"
)

// PipelineConfig carries everything needed to build the full
// fragments-to-document pipeline. Link templates must contain exactly one
// {id} substitution point.
type PipelineConfig struct {
	Rules             []KindRule
	HeaderTemplate    string
	DateFormat        string
	MinFieldLength    int
	CoreTeam          []string
	PRCreditKinds     []string
	IssueLinkTemplate string
	PRLinkTemplate    string
	ProfileTemplate   string
}

// Pipeline wires the assembler, contributor aggregator, and composer into a
// single fragments-to-document transformation. It holds only read-only
// configuration and is safe for repeated use.
type Pipeline struct {
	registry   *Registry
	assembler  *Assembler
	aggregator *Aggregator
	composer   Composer
}

// NewPipeline validates the configuration and builds the pipeline.
func NewPipeline(cfg PipelineConfig) (*Pipeline, error) {
	registry, err := NewRegistry(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("building kind registry: %w", err)
	}

	for _, rule := range cfg.Rules {
		if err := validateLinkTemplate(rule.LinkTemplate, "kind "+rule.Label); err != nil {
			return nil, err
		}
	}
	if err := validateLinkTemplate(cfg.IssueLinkTemplate, "issue link template"); err != nil {
		return nil, err
	}
	if err := validateLinkTemplate(cfg.PRLinkTemplate, "pull request link template"); err != nil {
		return nil, err
	}

	aggOpts := []AggregatorOption{
		WithIssueLinkTemplate(cfg.IssueLinkTemplate),
		WithPRLinkTemplate(cfg.PRLinkTemplate),
	}
	if len(cfg.PRCreditKinds) > 0 {
		aggOpts = append(aggOpts, WithPRCreditKinds(cfg.PRCreditKinds))
	}

	return &Pipeline{
		registry: registry,
		assembler: NewAssembler(registry,
			WithHeaderTemplate(cfg.HeaderTemplate),
			WithDateFormat(cfg.DateFormat),
			WithMinFieldLength(cfg.MinFieldLength),
		),
		aggregator: NewAggregator(cfg.CoreTeam, aggOpts...),
		composer:   Composer{ProfileTemplate: cfg.ProfileTemplate},
	}, nil
}

// Generate runs the full pipeline: validate and assemble the release body,
// aggregate contributors over the same fragment set, and compose the final
// document text.
func (p *Pipeline) Generate(frags []Fragment, version string, date time.Time) (string, error) {
	rel, err := p.assembler.Assemble(frags, version, date)
	if err != nil {
		return "", err
	}
	return p.composer.Compose(rel, p.aggregator.Aggregate(frags)), nil
}

// Assemble exposes the assembly stage for callers that render the release
// themselves (terminal preview).
func (p *Pipeline) Assemble(frags []Fragment, version string, date time.Time) (*Release, error) {
	return p.assembler.Assemble(frags, version, date)
}

// Contributors exposes the aggregation stage over a fragment set.
func (p *Pipeline) Contributors(frags []Fragment) []Contributor {
	return p.aggregator.Aggregate(frags)
}

// Registry returns the pipeline's kind registry.
func (p *Pipeline) Registry() *Registry {
	return p.registry
}

// validateLinkTemplate requires exactly one {id} substitution point.
func validateLinkTemplate(template, context string) error {
	if template == "" {
		return fmt.Errorf("%s: link template is empty (set repository_url or the template explicitly)", context)
	}
	if strings.Count(template, LinkPlaceholder) != 1 {
		return fmt.Errorf("%s: link template %q must contain exactly one %s substitution point",
			context, template, LinkPlaceholder)
	}
	return nil
}
