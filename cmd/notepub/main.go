// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notepub CLI, which publishes a
// folder of notes as a static blog.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notepub/internal/bridge"
	"github.com/pdiddy/notepub/internal/logging"
	"github.com/pdiddy/notepub/internal/notestore"
	"github.com/pdiddy/notepub/internal/publish"
	"github.com/pdiddy/notepub/internal/site"
	"github.com/pdiddy/notepub/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from log_mode before any subcommand runs.
var logger = logging.Nop()

// rootCmd is the base command for the notepub CLI.
var rootCmd = &cobra.Command{
	Use:   "notepub",
	Short: "Publish a notes folder as a static blog",
	Long: `notepub reads the notes of one folder, either straight from the
note database or through the scripting bridge, and renders them as a
static blog: one page per note, an index of recent posts and an RSS feed.

Runs are incremental: only notes modified since the last publish are
rewritten, while links, the index and the feed always cover every note.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(viper.GetString("log_mode"))
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./notepub.yaml or ~/.config/notepub/notepub.yaml)")
	pf.String("folder", "", "notes folder to read")
	pf.String("source", "", "note source: database or bridge")
	pf.String("database", "", "path to NoteStore.sqlite (default: the Notes group container)")
	pf.String("log-mode", "", "log output: development, production or silent")

	_ = viper.BindPFlag("notes_folder", pf.Lookup("folder"))
	_ = viper.BindPFlag("source", pf.Lookup("source"))
	_ = viper.BindPFlag("database_path", pf.Lookup("database"))
	_ = viper.BindPFlag("log_mode", pf.Lookup("log-mode"))

	viper.SetDefault("notes_folder", "test")
	viper.SetDefault("source", string(types.SourceDatabase))
	viper.SetDefault("template_dir", "./templates")
	viper.SetDefault("output_dir", "./output")
	viper.SetDefault("max_posts", site.DefaultMaxPosts)
	viper.SetDefault("site.title", "My Blog")
	viper.SetDefault("site.url", "https://example.com")
	viper.SetDefault("site.description", "Notes from the field")
	viper.SetDefault("highlight.enabled", false)
	viper.SetDefault("highlight.style", "github")
	viper.SetDefault("log_mode", "development")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notepub")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notepub"))
		}
	}

	viper.SetEnvPrefix("NOTEPUB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// sourceConfig reads the note source settings.
func sourceConfig() types.SourceConfig {
	return types.SourceConfig{
		Kind:         types.SourceKind(viper.GetString("source")),
		Folder:       viper.GetString("notes_folder"),
		DatabasePath: viper.GetString("database_path"),
	}
}

// publishConfig assembles the publish settings from flags, environment
// and config file.
func publishConfig() types.PublishConfig {
	return types.PublishConfig{
		Source:       sourceConfig(),
		TemplateDir:  viper.GetString("template_dir"),
		OutputDir:    viper.GetString("output_dir"),
		ManifestPath: manifestPath(),
		MaxPosts:     viper.GetInt("max_posts"),
		Site: types.SiteConfig{
			Title:       viper.GetString("site.title"),
			URL:         viper.GetString("site.url"),
			Description: viper.GetString("site.description"),
		},
		Highlight: types.HighlightConfig{
			Enabled: viper.GetBool("highlight.enabled"),
			Style:   viper.GetString("highlight.style"),
		},
	}
}

// manifestPath defaults to a manifest beside the config file in use, or
// in the working directory without one.
func manifestPath() string {
	if p := viper.GetString("manifest_path"); p != "" {
		return p
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return filepath.Join(filepath.Dir(used), site.ManifestFile)
	}
	return site.ManifestFile
}

// openSource returns the configured note source and a function releasing it.
func openSource(cfg types.SourceConfig) (publish.Source, func() error, error) {
	switch cfg.Kind {
	case types.SourceBridge:
		return bridge.New(logger), func() error { return nil }, nil
	case types.SourceDatabase, "":
		store, err := openStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown note source %q (want %s or %s)",
		cfg.Kind, types.SourceDatabase, types.SourceBridge)
}

func openStore(cfg types.SourceConfig) (*notestore.Store, error) {
	path, err := notestore.ResolvePath(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	return notestore.Open(path, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
