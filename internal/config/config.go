// Package config provides configuration types and defaults for hecto.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/hecto/internal/document"
	"github.com/zjrosen/hecto/internal/log"
	"github.com/zjrosen/hecto/internal/tracing"
	"github.com/zjrosen/hecto/internal/view"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration options for hecto.
type Config struct {
	Editor  EditorConfig   `mapstructure:"editor"`
	UI      UIConfig       `mapstructure:"ui"`
	Watch   bool           `mapstructure:"watch"` // Notice when the open file changes on disk
	Tracing tracing.Config `mapstructure:"tracing"`
}

// EditorConfig holds document and rendering options.
type EditorConfig struct {
	TabWidth        int    `mapstructure:"tab_width"`
	TrailingNewline bool   `mapstructure:"trailing_newline"`  // End saved files with a newline
	EmptyLineMarker string `mapstructure:"empty_line_marker"` // Drawn below the last line
	Welcome         bool   `mapstructure:"welcome"`           // Show the welcome message on an empty buffer
}

// UIConfig holds terminal interface options.
type UIConfig struct {
	ShowStatusBar  bool          `mapstructure:"show_status_bar"`
	MessageTimeout time.Duration `mapstructure:"message_timeout"`
	// QuitTimes is how many extra Ctrl-Q presses quit with unsaved changes.
	QuitTimes int `mapstructure:"quit_times"`
}

const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = DefaultTracesFilePath()
	return Config{
		Editor: EditorConfig{
			TabWidth:        document.DefaultTabWidth,
			TrailingNewline: true,
			EmptyLineMarker: view.DefaultEmptyLineMarker,
			Welcome:         true,
		},
		UI: UIConfig{
			ShowStatusBar:  true,
			MessageTimeout: 5 * time.Second,
			QuitTimes:      3,
		},
		Watch:   true,
		Tracing: tr,
	}
}

// DefaultTracesFilePath returns ~/.config/hecto/traces/traces.jsonl, or an
// empty string when the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hecto", "traces", "traces.jsonl")
}

// BufferOptions converts the editor settings for document.Buffer.
func (c Config) BufferOptions() document.Options {
	return document.Options{
		TabWidth:        c.Editor.TabWidth,
		TrailingNewline: c.Editor.TrailingNewline,
	}
}

// ViewOptions converts the editor settings for view.View. welcome is used
// only when enabled.
func (c Config) ViewOptions(welcome string) view.Options {
	opts := view.Options{EmptyLineMarker: c.Editor.EmptyLineMarker}
	if c.Editor.Welcome {
		opts.Welcome = welcome
	}
	return opts
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateEditor checks editor settings.
func ValidateEditor(e EditorConfig) error {
	if e.TabWidth < MinTabWidth || e.TabWidth > MaxTabWidth {
		return fmt.Errorf("%w: editor.tab_width must be between %d and %d, got %d",
			ErrInvalid, MinTabWidth, MaxTabWidth, e.TabWidth)
	}
	if w := ansi.StringWidth(e.EmptyLineMarker); w > 1 {
		return fmt.Errorf("%w: editor.empty_line_marker must be at most one cell wide, %q is %d",
			ErrInvalid, e.EmptyLineMarker, w)
	}
	return nil
}

// ValidateUI checks terminal interface settings.
func ValidateUI(u UIConfig) error {
	if u.MessageTimeout < 0 {
		return fmt.Errorf("%w: ui.message_timeout must not be negative, got %s", ErrInvalid, u.MessageTimeout)
	}
	if u.QuitTimes < 0 {
		return fmt.Errorf("%w: ui.quit_times must not be negative, got %d", ErrInvalid, u.QuitTimes)
	}
	return nil
}

// ValidateTracing checks tracing settings. Empty values fall back to defaults.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("%w: tracing.sample_rate must be between 0.0 and 1.0, got %v", ErrInvalid, t.SampleRate)
	}
	switch t.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("%w: tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q",
			ErrInvalid, t.Exporter)
	}
	if t.Enabled && t.Exporter == tracing.ExporterFile && t.FilePath == "" {
		return fmt.Errorf("%w: tracing.file_path is required when exporter is \"file\"", ErrInvalid)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# hecto configuration

editor:
  tab_width: 4             # Cells per tab stop (1-16)
  trailing_newline: true   # End saved files with a newline
  empty_line_marker: "~"   # Drawn on rows past the end of the file
  welcome: true            # Show the welcome message when started without a file

ui:
  show_status_bar: true    # File name, modified flag, line count and cursor position
  message_timeout: 5s      # How long status messages stay visible
  quit_times: 3            # Extra Ctrl-Q presses needed to quit with unsaved changes

# Tell me when the open file is changed by another program
watch: true

# Tracing of edit operations
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/hecto/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
