package commands

import (
	"fmt"
	"strings"

	"github.com/ArielEspinoza07/console-forge/pkg/console"
	"github.com/ArielEspinoza07/console-forge/pkg/registry"
	"github.com/spf13/cobra"
)

func (c *cli) newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload the config directory whenever a definition changes",
		Long: `Watch the config directory and reload every definition after each change,
reporting the loaded commands or the first error. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			io := commandIO(cmd).WithRenderer(console.BadgeRenderer{})
			dir := c.flags.configDir

			w, err := c.loader.NewWatcher(dir, func(reg *registry.Registry, err error) {
				if err != nil {
					io.Render(console.ErrorNotice("Reload failed:", err.Error()))
					return
				}
				io.Render(console.SuccessNotice(
					fmt.Sprintf("Loaded %d command(s) from %s", reg.Len(), dir),
					strings.Join(reg.Names(), ", "),
				))
			})
			if err != nil {
				return err
			}

			w.Reload()
			w.Start()
			io.Writeln(fmt.Sprintf("Watching %s for changes. Press Ctrl+C to stop.", dir))

			<-cmd.Context().Done()
			return w.Stop()
		},
	}
}
