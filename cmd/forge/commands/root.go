// Package commands provides the CLI commands for forge.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ArielEspinoza07/console-forge/internal/config"
	"github.com/ArielEspinoza07/console-forge/internal/logging"
	"github.com/ArielEspinoza07/console-forge/pkg/bridge"
	"github.com/ArielEspinoza07/console-forge/pkg/console"
	"github.com/ArielEspinoza07/console-forge/pkg/event"
	"github.com/ArielEspinoza07/console-forge/pkg/loader"
	"github.com/ArielEspinoza07/console-forge/pkg/registry"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version information set at build time
	Version   = bridge.DefaultAppVersion
	BuildTime = "dev"
)

const (
	builtinGroup = "forge"
	projectGroup = "project"
)

// Options configures a CLI run. Zero fields fall back to the process
// defaults.
type Options struct {
	Args []string
	In   io.Reader
	Out  io.Writer
	Err  io.Writer
	// Fs backs the command loader and the init commands.
	Fs afero.Fs
	// Settings skips config.Load when set.
	Settings *config.Settings
}

func (o Options) withDefaults() Options {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	return o
}

// Global flags
type globalFlags struct {
	configDir string
	logLevel  string
	printLogs bool
	noColor   bool
}

// cli holds the state shared by the root command and its subcommands.
type cli struct {
	opts     Options
	settings *config.Settings
	flags    globalFlags
	bus      *event.Bus
	loader   *loader.Loader
	registry *registry.Registry
	loadErr  error
}

// Execute runs forge with the process arguments and returns its exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, Options{Args: os.Args[1:]})
}

// Run executes one forge invocation and returns its exit code. Errors are
// written to opts.Err.
func Run(ctx context.Context, opts Options) int {
	opts = opts.withDefaults()

	settings := opts.Settings
	if settings == nil {
		var err error
		if settings, err = config.Load(); err != nil {
			fmt.Fprintln(opts.Err, "Error:", err)
			return 1
		}
	}

	c := &cli{opts: opts, settings: settings, bus: event.NewBus()}
	defer c.bus.Close()
	defer logging.Close()

	c.parseGlobalFlags(opts.Args)
	c.setup()
	c.load()

	root, err := c.newRootCommand()
	if err != nil {
		fmt.Fprintln(opts.Err, "Error:", err)
		return 1
	}
	root.SetArgs(opts.Args)
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	return c.exitCode(root.ExecuteContext(ctx))
}

func (c *cli) bindGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.flags.configDir, "config-dir", c.settings.ConfigDir, "Directory scanned for command definitions")
	fs.StringVar(&c.flags.logLevel, "log-level", c.settings.LogLevel, "Log level (DEBUG|INFO|WARN|ERROR)")
	fs.BoolVar(&c.flags.printLogs, "print-logs", c.settings.PrintLogs, "Print logs to stderr")
	fs.BoolVar(&c.flags.noColor, "no-color", c.settings.NoColor, "Disable colored output")
}

// parseGlobalFlags reads the persistent flags ahead of cobra, since the
// project commands have to be loaded before the command tree exists.
func (c *cli) parseGlobalFlags(args []string) {
	fs := pflag.NewFlagSet("forge", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	c.bindGlobalFlags(fs)
	_ = fs.Parse(args)
}

func (c *cli) setup() {
	if c.flags.noColor {
		color.NoColor = true
	}

	if !c.flags.printLogs && !c.settings.LogToFile {
		logging.Discard()
	} else {
		cfg := logging.Config{
			Level:     logging.ParseLevel(c.flags.logLevel),
			Output:    io.Discard,
			LogToFile: c.settings.LogToFile,
			LogDir:    c.settings.LogDir,
		}
		if c.flags.printLogs {
			cfg.Output = c.opts.Err
			cfg.Pretty = true
		}
		logging.Init(cfg)
	}

	c.bus.SubscribeAll(func(e event.Event) {
		log.Debug().Str("event", string(e.Type)).Interface("data", e.Data).Msg("event")
	})
}

func (c *cli) load() {
	c.loader = loader.New(loader.WithFs(c.opts.Fs), loader.WithBus(c.bus))
	c.registry, c.loadErr = c.loader.LoadRegistry(c.flags.configDir)
	if c.loadErr != nil {
		log.Warn().Err(c.loadErr).Str("dir", c.flags.configDir).Msg("failed to load commands")
		return
	}
	log.Debug().Str("dir", c.flags.configDir).Int("commands", c.registry.Len()).Msg("commands loaded")
}

func (c *cli) newRootCommand() (*cobra.Command, error) {
	root := &cobra.Command{
		Use:   "forge",
		Short: "Console Forge - commands from configuration files",
		Long: `Console Forge builds command-line commands from YAML and JSON definitions.

Every file under the config directory (./config by default) declares one or
more commands. Run 'forge init:file' to create an example, 'forge list' to
see what was loaded and 'forge validate' to check the definitions.`,
		Version:       Version,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("forge %s (%s)\n", Version, BuildTime))
	c.bindGlobalFlags(root.PersistentFlags())

	root.AddGroup(
		&cobra.Group{ID: builtinGroup, Title: "Forge Commands:"},
		&cobra.Group{ID: projectGroup, Title: "Project Commands:"},
	)

	builtins := []*cobra.Command{c.newListCommand(), c.newValidateCommand(), c.newWatchCommand()}
	inits, err := c.newInitCommands()
	if err != nil {
		return nil, err
	}
	builtins = append(builtins, inits...)
	for _, cmd := range builtins {
		cmd.GroupID = builtinGroup
		root.AddCommand(cmd)
	}

	if c.registry == nil {
		return root, nil
	}
	mapper := bridge.NewMapper(bridge.WithBus(c.bus))
	for _, d := range c.registry.All() {
		if found, _, err := root.Find([]string{d.Name()}); err == nil && found != root {
			log.Warn().Str("command", d.Name()).Msg("command shadows a built-in command, skipped")
			continue
		}
		cmd, err := mapper.Command(d)
		if err != nil {
			return nil, err
		}
		cmd.GroupID = projectGroup
		if group := cmd.Annotations["group"]; group != "" {
			if !root.ContainsGroup(group) {
				root.AddGroup(&cobra.Group{ID: group, Title: group + ":"})
			}
			cmd.GroupID = group
		}
		root.AddCommand(cmd)
	}
	return root, nil
}

// exitCode reports err and maps it to a process exit code.
func (c *cli) exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *bridge.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}

	errIO := c.stderrIO()
	errIO.Error(err.Error())
	if c.loadErr != nil && !errors.Is(err, c.loadErr) {
		errIO.Note(fmt.Sprintf("Commands in %s could not be loaded: %v", c.flags.configDir, c.loadErr))
	}
	return 1
}

func (c *cli) stderrIO() *console.IO {
	out := console.NewOutput(c.opts.Err, c.opts.Err)
	return console.NewIO(console.NewStyle(console.NewMapInput(c.opts.In), out))
}

func commandIO(cmd *cobra.Command) *console.IO {
	in := console.NewMapInput(cmd.InOrStdin())
	out := console.NewOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	return console.NewIO(console.NewStyle(in, out))
}
