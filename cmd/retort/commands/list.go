package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the declared environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			summaries, err := c.app.List(configPath)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPYTHON\tDEPS\tCOMMANDS\tDEFAULT")
			for _, s := range summaries {
				marker := ""
				if s.Default {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", s.Name, s.Basepython, s.Deps, s.Commands, marker)
			}
			return w.Flush()
		},
	}
}
