package types

// SourceKind selects where notes are read from.
type SourceKind string

const (
	// SourceDatabase reads the Notes SQLite store and decodes note records.
	SourceDatabase SourceKind = "database"

	// SourceBridge asks Notes.app for pre-rendered markup via osascript.
	SourceBridge SourceKind = "bridge"
)

// SiteConfig holds the site-wide values used by the index and feed templates.
type SiteConfig struct {
	Title       string `json:"title" yaml:"title" mapstructure:"title"`
	URL         string `json:"url" yaml:"url" mapstructure:"url"`
	Description string `json:"description" yaml:"description" mapstructure:"description"`
}

// HighlightConfig controls syntax highlighting of monospace blocks.
type HighlightConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Style is a chroma style name (e.g. "github", "monokai").
	Style string `json:"style" yaml:"style" mapstructure:"style"`
}

// SourceConfig locates the notes to publish.
type SourceConfig struct {
	Kind SourceKind `json:"source" yaml:"source" mapstructure:"source"`

	// Folder is the Notes folder whose notes are published.
	Folder string `json:"notes_folder" yaml:"notes_folder" mapstructure:"notes_folder"`

	// DatabasePath is the NoteStore.sqlite path for the database source.
	DatabasePath string `json:"database_path" yaml:"database_path" mapstructure:"database_path"`
}

// PublishConfig groups everything the publish stage needs.
type PublishConfig struct {
	Source SourceConfig `json:"source" yaml:"source"`

	// TemplateDir holds article.html, article-snippet.html, index.html and feed.xml.
	TemplateDir string `json:"template_dir" yaml:"template_dir" mapstructure:"template_dir"`

	// OutputDir receives one HTML file per note plus index.html and feed.xml.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// ManifestPath is the file recording the last successful publish.
	ManifestPath string `json:"manifest_path" yaml:"manifest_path" mapstructure:"manifest_path"`

	// MaxPosts caps the number of posts on the index page and in the feed (default 30).
	MaxPosts int `json:"max_posts" yaml:"max_posts" mapstructure:"max_posts"`

	Site      SiteConfig      `json:"site" yaml:"site" mapstructure:"site"`
	Highlight HighlightConfig `json:"highlight" yaml:"highlight" mapstructure:"highlight"`
}
