// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notepub/internal/publish"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Render the notes folder into a static site",
	Long: `Publish renders every note of the configured folder to
<output>/YYYY/MM/<title-slug>.html and rebuilds index.html and feed.xml
from the templates article.html, article-snippet.html, index.html and
feed.xml.

After the first run only notes modified since the last publish are
rewritten. Delete the manifest to force a full rebuild.`,
	RunE: runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg := publishConfig()

	src, closeSource, err := openSource(cfg.Source)
	if err != nil {
		return err
	}
	defer closeSource()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := publish.New(cfg, src, logger).Run(ctx, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Unchanged {
		return nil
	}

	if summary.Incremental {
		fmt.Printf("Published %d updated posts to %s\n", summary.Written, summary.OutputDir)
	} else {
		fmt.Printf("Published %d posts to %s\n", summary.Written, summary.OutputDir)
	}
	fmt.Printf("Manifest saved to %s\n", summary.Manifest)
	if summary.HasWarnings() {
		fmt.Fprintf(os.Stderr, "%d unresolved link(s); see warnings above\n", summary.Warnings)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(publishCmd)

	f := publishCmd.Flags()
	f.String("templates", "", "template directory (default ./templates)")
	f.String("output", "", "output directory (default ./output)")
	f.String("manifest", "", "manifest file (default manifest.yaml beside the config file)")
	f.Int("max-posts", 0, "posts listed on the index and in the feed (default 30)")
	f.String("site-url", "", "site URL used for feed links")
	f.String("site-title", "", "site title for the feed")
	f.String("site-description", "", "site description for the feed")
	f.Bool("highlight", false, "syntax-highlight code blocks and write chroma.css")

	for key, flag := range map[string]string{
		"template_dir":      "templates",
		"output_dir":        "output",
		"manifest_path":     "manifest",
		"max_posts":         "max-posts",
		"site.url":          "site-url",
		"site.title":        "site-title",
		"site.description":  "site-description",
		"highlight.enabled": "highlight",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
}
