package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptshear/promptshear/internal/config"
	"github.com/promptshear/promptshear/internal/errors"
	"github.com/promptshear/promptshear/internal/github"
)

// NewRulesCmd creates the rules command group.
func NewRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage substitution rule packs",
	}

	cmd.AddCommand(newRulesListCmd())
	cmd.AddCommand(newRulesSyncCmd())

	return cmd
}

func newRulesListCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rule packs from all sources",
		Long: `Lists builtin, personal, and project rule packs. When packs from
different sources share a name, the higher-precedence source wins
(project > personal > builtin).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			reg, err := loadRegistry(cfg)
			if err != nil {
				return err
			}

			fmt.Println()
			for _, pack := range reg.All() {
				fmt.Printf("  %-22s %-13s %s %s\n",
					pack.Name, pack.Category,
					dim(fmt.Sprintf("%d rules", len(pack.Rules))),
					dim("("+pack.Source.Label()+")"))
				if verbose && pack.Description != "" {
					fmt.Printf("    %s\n", dim(pack.Description))
				}
			}
			fmt.Println()
			printInfo("Total", fmt.Sprintf("%d packs", reg.Count()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show pack descriptions")
	return cmd
}

func newRulesSyncCmd() *cobra.Command {
	var repo string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch shared rule packs from a GitHub repository",
		Long: `Downloads every rule pack from the repository's rules/ directory into
the personal rules directory. Packs are validated before writing; invalid
packs are skipped with a warning.

The repository defaults to rules.source from the config file.`,
		Example: `  promptshear rules sync
  promptshear rules sync --repo acme/prompt-rules`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRulesSync(cmd.Context(), repo)
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "GitHub repository (owner/repo) to sync from")
	return cmd
}

func runRulesSync(ctx context.Context, repo string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if repo == "" {
		repo = cfg.Rules.Source
	}
	if repo == "" {
		return errors.ConfigInvalid("no rules source configured; use --repo or set rules.source")
	}

	client, err := newGitHubClient()
	if err != nil {
		return err
	}

	results, err := github.SyncRules(ctx, client, repo, cfg.Rules.Dir)
	if err != nil {
		return err
	}

	synced := 0
	for _, r := range results {
		if r.Skipped {
			printWarning("skipped %s: %s", r.FileName, r.Reason)
			continue
		}
		synced++
		fmt.Printf("  %s %s %s\n", successIcon, r.Name, dim(fmt.Sprintf("(%d rules)", r.Rules)))
	}

	fmt.Println()
	printSuccess("Synced %d rule packs from %s to %s", synced, repo, cfg.Rules.Dir)
	return nil
}

// newGitHubClient prefers authenticated access, falling back to anonymous
// for public repositories.
func newGitHubClient() (*github.Client, error) {
	if token, err := github.GetToken(); err == nil {
		return github.NewClientWithToken(token)
	}
	return github.NewUnauthenticatedClient()
}
