// Package cmd wires the hecto command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/hecto/internal/app"
	"github.com/zjrosen/hecto/internal/config"
	"github.com/zjrosen/hecto/internal/log"
	"github.com/zjrosen/hecto/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts, so the OSC 11 response does not land
	// in the editor's input stream.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	projectConfigPath = ".hecto/config.yaml"
	debugLogPath      = "hecto-debug.log"
	shutdownTimeout   = 2 * time.Second
)

var (
	version   = "dev"
	cfgFile   string
	debug     bool
	cfg       config.Config
	configErr error
)

var rootCmd = &cobra.Command{
	Use:     "hecto [file]",
	Short:   "A small terminal text editor",
	Long:    `hecto opens a file (or an empty buffer) in a full-screen terminal editor. Ctrl-S saves, Ctrl-Q quits.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .hecto/config.yaml or ~/.config/hecto/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write a debug log to "+debugLogPath+" (also enabled by HECTO_DEBUG)")
	rootCmd.Flags().Int("tab-width", config.Defaults().Editor.TabWidth,
		"cells per tab stop")
	rootCmd.Flags().Bool("no-watch", false,
		"do not watch the open file for changes made by other programs")

	// Bind flags to viper
	_ = viper.BindPFlag("editor.tab_width", rootCmd.Flags().Lookup("tab-width"))
}

func initConfig() {
	cfg, configErr = loadConfig(viper.GetViper(), findConfig(cfgFile))
}

// setDefaults registers every setting so unset keys decode to their defaults.
func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("editor.tab_width", d.Editor.TabWidth)
	v.SetDefault("editor.trailing_newline", d.Editor.TrailingNewline)
	v.SetDefault("editor.empty_line_marker", d.Editor.EmptyLineMarker)
	v.SetDefault("editor.welcome", d.Editor.Welcome)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("ui.message_timeout", d.UI.MessageTimeout)
	v.SetDefault("ui.quit_times", d.UI.QuitTimes)
	v.SetDefault("watch", d.Watch)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// findConfig picks the config file. Lookup order:
//  1. explicit --config flag
//  2. .hecto/config.yaml (current directory)
//  3. ~/.config/hecto/config.yaml (user config, created with defaults if missing)
//
// Returns "" when no file can be found or created.
func findConfig(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(projectConfigPath); err == nil {
		return projectConfigPath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	userPath := filepath.Join(home, ".config", "hecto", "config.yaml")
	if _, err := os.Stat(userPath); err == nil {
		return userPath
	}
	if err := config.WriteDefaultConfig(userPath); err != nil {
		// Continue with defaults (no config file)
		return ""
	}
	return userPath
}

// loadConfig reads file (if any) over the defaults.
func loadConfig(v *viper.Viper, file string) (config.Config, error) {
	setDefaults(v, config.Defaults())

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return config.Defaults(), fmt.Errorf("reading config %s: %w", file, err)
		}
		log.Debug(log.CatConfig, "Loaded config", "path", v.ConfigFileUsed())
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Defaults(), fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

func debugEnabled() bool {
	return debug || os.Getenv("HECTO_DEBUG") != ""
}

func runApp(cmd *cobra.Command, args []string) error {
	if debugEnabled() {
		cleanup, logErr := log.Init(debugLogPath, "hecto")
		if logErr != nil {
			return logErr
		}
		defer cleanup()
	}

	if configErr != nil {
		return configErr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Watch = false
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := provider.Shutdown(ctx); shutdownErr != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", shutdownErr)
		}
	}()

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	model, err := app.New(app.Options{
		Config:  cfg,
		Path:    path,
		Version: version,
		Tracer:  provider.Tracer(),
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
