//go:build mage

// Package main contains Mage build targets for notepub developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories a publish expects.
var projectDirs = []string{
	"templates",
	"output",
}

const starterConfig = `# notepub configuration
notes_folder: blog
source: database
template_dir: ./templates
output_dir: ./output
max_posts: 30
site:
  title: My Blog
  url: https://example.com
  description: Notes from the field
highlight:
  enabled: false
  style: github
`

// Init creates the working directories and a starter notepub.yaml.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	if _, err := os.Stat("notepub.yaml"); os.IsNotExist(err) {
		if err := os.WriteFile("notepub.yaml", []byte(starterConfig), 0o644); err != nil {
			return fmt.Errorf("writing notepub.yaml: %w", err)
		}
		fmt.Println("   notepub.yaml")
	}
	fmt.Println("Project initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "notepub"
	cmdPkg  = "./cmd/notepub"
)

// Build compiles the CLI binary into bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Publish builds the CLI and publishes the configured folder.
func Publish() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "publish")
}

// Export builds the CLI and exports the configured folder with formatting
// runs to output/notes.json.
func Export() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "export", "--formatting", "-o", filepath.Join("output", "notes.json"))
}

// Clean removes build output and the publish manifest.
func Clean() error {
	for _, p := range []string{binDir, "manifest.yaml"} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}
