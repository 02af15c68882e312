package commands

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ArielEspinoza07/console-forge/pkg/bridge"
	"github.com/ArielEspinoza07/console-forge/pkg/console"
	"github.com/ArielEspinoza07/console-forge/pkg/descriptor"
	"github.com/ArielEspinoza07/console-forge/pkg/handler"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//go:embed templates/*.yaml
var templates embed.FS

const (
	configFileName  = "console-forge.yaml"
	configDirName   = "console-forge"
	exampleFileName = "example.yaml"
)

// render loads a template and substitutes its {name} placeholder.
func render(tmpl, name string) ([]byte, error) {
	data, err := templates.ReadFile("templates/" + tmpl)
	if err != nil {
		return nil, err
	}
	return []byte(strings.ReplaceAll(string(data), "{name}", name)), nil
}

// initFile writes a single configuration file with an example command.
type initFile struct {
	fs  afero.Fs
	dir string
}

func (*initFile) Declare(string) []handler.Decl {
	return []handler.Decl{handler.Name("force")}
}

func (t *initFile) Invoke(io *console.IO, force bool) (int, error) {
	io = io.WithRenderer(console.BadgeRenderer{})
	path := filepath.Join(t.dir, configFileName)

	exists, err := afero.Exists(t.fs, path)
	if err != nil {
		return 1, err
	}
	if exists && !force {
		io.Render(console.WarningNotice(fmt.Sprintf("The file %s already exists.", path), "Use --force to overwrite it."))
		return 1, nil
	}

	data, err := render("file.yaml", "greet")
	if err != nil {
		return 1, err
	}
	if err := t.fs.MkdirAll(t.dir, 0o755); err != nil {
		return 1, err
	}
	if err := afero.WriteFile(t.fs, path, data, 0o644); err != nil {
		return 1, err
	}

	io.Render(console.SuccessNotice("Configuration file created successfully: "+path, "An example command was created: greet"))
	return 0, nil
}

// initDir writes a configuration directory holding one example file.
type initDir struct {
	fs  afero.Fs
	dir string
}

func (*initDir) Declare(string) []handler.Decl {
	return []handler.Decl{handler.Name("force")}
}

func (t *initDir) Invoke(io *console.IO, force bool) (int, error) {
	io = io.WithRenderer(console.BadgeRenderer{})
	dir := filepath.Join(t.dir, configDirName)

	exists, err := afero.DirExists(t.fs, dir)
	if err != nil {
		return 1, err
	}
	if exists {
		if !force {
			io.Render(console.WarningNotice(fmt.Sprintf("The directory %s already exists.", dir), "Use --force to overwrite it."))
			return 1, nil
		}
		if err := t.fs.RemoveAll(dir); err != nil {
			return 1, err
		}
	}

	data, err := render("dir.yaml", "greet-dir")
	if err != nil {
		return 1, err
	}
	if err := t.fs.MkdirAll(dir, 0o755); err != nil {
		return 1, err
	}
	if err := afero.WriteFile(t.fs, filepath.Join(dir, exampleFileName), data, 0o644); err != nil {
		return 1, err
	}

	io.Render(console.SuccessNotice(
		"Configuration directory created successfully: "+dir,
		"A sample file with a sample command was created: "+exampleFileName,
	))
	return 0, nil
}

// newInitCommands declares the scaffolding commands as descriptors, the
// same way project commands are declared, and maps them through bridge.
func (c *cli) newInitCommands() ([]*cobra.Command, error) {
	catalog := handler.NewCatalog()
	if err := catalog.RegisterType("forge.InitFile", func() any {
		return &initFile{fs: c.opts.Fs, dir: c.flags.configDir}
	}); err != nil {
		return nil, err
	}
	if err := catalog.RegisterType("forge.InitDir", func() any {
		return &initDir{fs: c.opts.Fs, dir: c.flags.configDir}
	}); err != nil {
		return nil, err
	}

	file, err := descriptor.NewBuilder("init:file").
		Description("Create " + configFileName + " with an example command").
		Help("Write " + configFileName + " into the config directory. The file declares a greet command backed by a shell script.").
		Opt(descriptor.Must(descriptor.Flag("force", "f", "Overwrite the file if it exists"))).
		Handler("forge.InitFile").
		Catalog(catalog).
		Build()
	if err != nil {
		return nil, err
	}
	dir, err := descriptor.NewBuilder("init:dir").
		Description("Create a " + configDirName + " directory with an example file").
		Help("Write " + configDirName + "/" + exampleFileName + " into the config directory. With --force an existing directory is removed first.").
		Opt(descriptor.Must(descriptor.Flag("force", "f", "Replace the directory if it exists"))).
		Handler("forge.InitDir").
		Catalog(catalog).
		Build()
	if err != nil {
		return nil, err
	}

	mapper := bridge.NewMapper(bridge.WithBus(c.bus))
	var cmds []*cobra.Command
	for _, d := range []*descriptor.Command{file, dir} {
		cmd, err := mapper.Command(d)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
