package commands

import (
	"github.com/spf13/cobra"

	"github.com/retortlabs/retort/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [environments...]",
		Short: "Provision environments and run their command pipelines",
		Long: "Provision the named test environments and run their command pipelines.\n" +
			"Without arguments, the descriptor's envlist is run.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			parallelism, _ := cmd.Flags().GetInt("parallel")
			recreate, _ := cmd.Flags().GetBool("recreate")
			watch, _ := cmd.Flags().GetBool("watch")

			return c.app.Run(cmd.Context(), args, app.RunOptions{
				ConfigPath:  configPath,
				Parallelism: parallelism,
				Recreate:    recreate,
				Watch:       watch,
			})
		},
	}
	cmd.Flags().IntP("parallel", "p", 0, "Maximum environments to run concurrently (0 means one per CPU)")
	cmd.Flags().BoolP("recreate", "r", false, "Discard and rebuild environment directories")
	cmd.Flags().BoolP("watch", "w", false, "Render run progress in a terminal ui")
	return cmd
}
