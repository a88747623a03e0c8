package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptshear/promptshear/internal/model"
)

// NewModelsCmd creates the models command.
func NewModelsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List supported models with context windows and prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := model.Supported()

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), specs)
			}

			fmt.Println()
			fmt.Printf("  %-20s %-8s %10s %12s %12s\n",
				dim("MODEL"), dim("FAMILY"), dim("CONTEXT"), dim("IN $/1K"), dim("OUT $/1K"))
			for _, s := range specs {
				fmt.Printf("  %-20s %-8s %10d %12.5f %12.5f\n",
					s.Name, s.Family, s.ContextWindow, s.InputPricePer1K, s.OutputPricePer1K)
			}
			fmt.Println()
			fmt.Println(dim("Dated variants (e.g. claude-3-5-sonnet-20241022) resolve to their base model."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the model table as JSON")
	return cmd
}
