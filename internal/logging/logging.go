// Package logging configures structured logging for the forge binary.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process logger. Init installs it as the zerolog/log
// global too, so library packages logging through log.* share it.
var Logger zerolog.Logger

// Level is a zerolog level.
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

var levelNames = map[string]Level{
	"DEBUG":   DebugLevel,
	"INFO":    InfoLevel,
	"WARN":    WarnLevel,
	"WARNING": WarnLevel,
	"ERROR":   ErrorLevel,
	"FATAL":   FatalLevel,
}

// Config holds logger configuration.
type Config struct {
	Level  Level
	Output io.Writer // os.Stderr when nil
	// Pretty renders Output with zerolog's ConsoleWriter.
	Pretty     bool
	TimeFormat string // RFC3339 when empty
	// LogToFile adds a rotated JSON log file under LogDir.
	LogToFile bool
	LogDir    string // os.TempDir() when empty
}

// DefaultConfig logs INFO and above as JSON to stderr.
func DefaultConfig() Config {
	return Config{
		Level:      InfoLevel,
		Output:     os.Stderr,
		TimeFormat: time.RFC3339,
		LogDir:     os.TempDir(),
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Output == nil {
		c.Output = d.Output
	}
	if c.TimeFormat == "" {
		c.TimeFormat = d.TimeFormat
	}
	if c.LogDir == "" {
		c.LogDir = d.LogDir
	}
	return c
}

// rotation is the open log file, guarded by mu.
var (
	mu       sync.Mutex
	rotation *lumberjack.Logger
)

func openRotation(dir string) *lumberjack.Logger {
	name := "forge-" + time.Now().Format("20060102-150405") + ".log"
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    16, // megabytes
		MaxBackups: 5,
		MaxAge:     14, // days
	}
}

// Init replaces the global logger. A log file left open by an earlier
// Init is closed first.
func Init(cfg Config) {
	cfg = cfg.normalized()

	mu.Lock()
	defer mu.Unlock()
	_ = closeRotation()

	zerolog.TimeFieldFormat = cfg.TimeFormat
	sink := cfg.Output
	if cfg.Pretty {
		sink = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: cfg.TimeFormat}
	}
	if cfg.LogToFile {
		rotation = openRotation(cfg.LogDir)
		sink = zerolog.MultiLevelWriter(sink, rotation)
	}

	Logger = zerolog.New(sink).Level(cfg.Level).With().Timestamp().Logger()
	log.Logger = Logger
}

// Discard turns logging off. forge runs this way unless --print-logs or
// file logging is requested.
func Discard() {
	Init(Config{Level: zerolog.Disabled, Output: io.Discard})
}

// GetLogFilePath returns the open log file, or "" when file logging is
// off.
func GetLogFilePath() string {
	mu.Lock()
	defer mu.Unlock()
	if rotation == nil {
		return ""
	}
	return rotation.Filename
}

// Close closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeRotation()
}

func closeRotation() error {
	if rotation == nil {
		return nil
	}
	err := rotation.Close()
	rotation = nil
	return err
}

// ParseLevel maps DEBUG, INFO, WARN(ING), ERROR and FATAL, in any case,
// to a Level. Anything else is InfoLevel.
func ParseLevel(s string) Level {
	if l, ok := levelNames[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return l
	}
	return InfoLevel
}

func Debug() *zerolog.Event { return Logger.Debug() }
func Info() *zerolog.Event  { return Logger.Info() }
func Warn() *zerolog.Event  { return Logger.Warn() }
func Error() *zerolog.Event { return Logger.Error() }

func init() {
	Init(DefaultConfig())
}
