package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List configured change kinds",
	Long: `List the configured change kinds in section order, with the custom field
each kind links (Issue or PR) and the link template it renders.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKinds(cmd)
	},
}

func init() {
	kindsCmd.GroupID = GroupInfo
	rootCmd.AddCommand(kindsCmd)
}

func runKinds(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	label := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	if plainFlag {
		label = fmt.Sprint
		dim = fmt.Sprint
	}

	for _, rule := range pipeline.Registry().Rules() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", label(rule.Label))
		fmt.Fprintf(cmd.OutOrStdout(), "  field: %s\n", rule.IdentifierField)
		fmt.Fprintf(cmd.OutOrStdout(), "  links: %s\n", dim(rule.LinkTemplate))
		if rule.SkipsGlobalAuthorChoice {
			fmt.Fprintf(cmd.OutOrStdout(), "  declares its own Author/%s fields\n", rule.IdentifierField)
		}
	}

	return nil
}
