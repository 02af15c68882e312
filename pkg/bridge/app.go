package bridge

import (
	"github.com/spf13/cobra"

	"github.com/ArielEspinoza07/console-forge/pkg/registry"
)

const (
	DefaultAppName    = "ConsoleForge"
	DefaultAppVersion = "0.1.x-dev"
)

// NewApp creates a root command and attaches every command in reg to it.
// Empty name and version fall back to the defaults; a nil registry gives
// an application without commands.
func NewApp(name, version string, reg *registry.Registry, opts ...MapperOption) (*cobra.Command, error) {
	if name == "" {
		name = DefaultAppName
	}
	if version == "" {
		version = DefaultAppVersion
	}
	root := &cobra.Command{
		Use:           name,
		Version:       version,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	if reg != nil {
		if err := NewMapper(opts...).Attach(root, reg.All()...); err != nil {
			return nil, err
		}
	}
	return root, nil
}
