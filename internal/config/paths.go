package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "console-forge"

// Paths holds the per-user directories of console-forge, resolved from the
// XDG base directory variables.
type Paths struct {
	Data   string
	Config string
	Cache  string
	State  string
}

// xdgDir is one XDG base directory: the variable that overrides it and
// its fallback below $HOME (or %APPDATA% on Windows).
type xdgDir struct {
	env     string
	home    []string
	appData []string
}

var (
	xdgData   = xdgDir{env: "XDG_DATA_HOME", home: []string{".local", "share"}}
	xdgConfig = xdgDir{env: "XDG_CONFIG_HOME", home: []string{".config"}}
	xdgCache  = xdgDir{env: "XDG_CACHE_HOME", home: []string{".cache"}, appData: []string{"cache"}}
	xdgState  = xdgDir{env: "XDG_STATE_HOME", home: []string{".local", "state"}}
)

func (d xdgDir) resolve() string {
	base := os.Getenv(d.env)
	if base == "" {
		if runtime.GOOS == "windows" {
			base = filepath.Join(append([]string{os.Getenv("APPDATA")}, d.appData...)...)
		} else {
			base = filepath.Join(append([]string{os.Getenv("HOME")}, d.home...)...)
		}
	}
	return filepath.Join(base, AppName)
}

// GetPaths resolves the per-user directories from the environment.
func GetPaths() *Paths {
	return &Paths{
		Data:   xdgData.resolve(),
		Config: xdgConfig.resolve(),
		Cache:  xdgCache.resolve(),
		State:  xdgState.resolve(),
	}
}

// EnsurePaths creates every directory in p.
func (p *Paths) EnsurePaths() error {
	for _, dir := range [...]string{p.Data, p.Config, p.Cache, p.State} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// LogDir is where log files go when file logging is on.
func (p *Paths) LogDir() string {
	return filepath.Join(p.State, "logs")
}

// GlobalEnvFile is the user-wide .env file loaded after the project one.
func (p *Paths) GlobalEnvFile() string {
	return filepath.Join(p.Config, ".env")
}
