package commands

import (
	"errors"
	"fmt"

	"github.com/ArielEspinoza07/console-forge/pkg/bridge"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

func (c *cli) newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every command definition in the config directory",
		Long: `Load every definition file in the config directory and report all
problems found, not only the first one. Exits with code 1 when any file is
invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			io := commandIO(cmd)
			dir := c.flags.configDir

			cmds, err := c.loader.Check(dir)
			if err != nil {
				errs := []error{err}
				var merr *multierror.Error
				if errors.As(err, &merr) {
					errs = merr.Errors
				}
				io.Error(fmt.Sprintf("%d problem(s) found in %s", len(errs), dir))
				for _, e := range errs {
					io.Writeln("  - " + e.Error())
				}
				return &bridge.ExitError{Command: cmd.Name(), Code: 1}
			}
			io.Success(fmt.Sprintf("%d command(s) defined in %s", len(cmds), dir))
			return nil
		},
	}
}
