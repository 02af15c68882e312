package commands

import (
	"fmt"

	"github.com/ArielEspinoza07/console-forge/pkg/descriptor"
	"github.com/spf13/cobra"
)

func (c *cli) newListCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the commands defined in the config directory",
		Long: `List the commands loaded from the config directory.

Examples:
  forge list                      # List visible commands
  forge list --all                # Include hidden commands
  forge list --config-dir tools   # Read definitions from ./tools`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.loadErr != nil {
				return c.loadErr
			}
			io := commandIO(cmd)

			var rows [][]string
			for _, d := range c.registry.All() {
				if d.Hidden() && !all {
					continue
				}
				rows = append(rows, []string{d.Name(), d.Description(), handlerLabel(d)})
			}
			if len(rows) == 0 {
				io.Note(fmt.Sprintf("No commands found in %s", c.flags.configDir))
				return nil
			}
			io.Table([]string{"NAME", "DESCRIPTION", "HANDLER"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include hidden commands")
	return cmd
}

func handlerLabel(d *descriptor.Command) string {
	if d.Callable() == nil {
		return "-"
	}
	return d.Callable().String()
}
