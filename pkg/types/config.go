// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "example-docs/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RemoteConfig describes where reference examples live on the remote
// content service.
type RemoteConfig struct {
	HTTPConfig `yaml:",inline"`

	// ListingURL is the contents API endpoint that lists the remote
	// example directory (e.g. https://api.github.com/repos/NVIDIA/cccl/contents/thrust/examples).
	ListingURL string `json:"listing_url" yaml:"listing_url"`

	// RawExamplesURL is the raw-content base for files in the remote example
	// directory. The example file name is appended to it.
	RawExamplesURL string `json:"raw_examples_url" yaml:"raw_examples_url"`

	// BrowseURL is the human-facing location of the remote example
	// directory, used for "Link:" lines in the rendered comparison.
	BrowseURL string `json:"browse_url" yaml:"browse_url"`

	// RawBaseURL is the raw-content host used to resolve annotation
	// coordinates: <RawBaseURL>/<owner>/<repo>/<commit>/<path>.
	RawBaseURL string `json:"raw_base_url" yaml:"raw_base_url"`

	// Extension is the example file extension, including the dot (".cu").
	Extension string `json:"extension" yaml:"extension"`

	// ExcludePrefix hides remote entries whose name starts with it ("_").
	ExcludePrefix string `json:"exclude_prefix" yaml:"exclude_prefix"`
}

// FormatterBackend identifies the external code formatter.
type FormatterBackend string

const (
	FormatterClang     FormatterBackend = "clang-format"
	FormatterContainer FormatterBackend = "container"
	FormatterNone      FormatterBackend = "none"
)

// FormatterConfig holds settings for the external code formatter.
type FormatterConfig struct {
	// Backend selects the formatter: clang-format, container, or none.
	Backend FormatterBackend `json:"backend" yaml:"backend"`

	// Binary is the clang-format executable looked up on PATH.
	Binary string `json:"binary" yaml:"binary"`

	// Image is the container image used by the container backend. Its
	// entrypoint must be clang-format.
	Image string `json:"image" yaml:"image"`

	// Style is passed as --style when set. Empty means clang-format
	// discovers the project's .clang-format file.
	Style string `json:"style,omitempty" yaml:"style,omitempty"`
}

// ComparisonConfig holds settings for the library-to-library comparison
// category.
type ComparisonConfig struct {
	// LocalDir holds the concise project examples (e.g. "examples/thrust").
	LocalDir string `json:"local_dir" yaml:"local_dir"`

	// OutputFile is the generated comparison document.
	OutputFile string `json:"output_file" yaml:"output_file"`

	// ProjectName labels the local side ("Parrot").
	ProjectName string `json:"project_name" yaml:"project_name"`

	// LibraryName labels the remote side ("Thrust").
	LibraryName string `json:"library_name" yaml:"library_name"`

	// Intro is appended to the comparison page's opening paragraph. Empty
	// selects a generic sentence naming both sides.
	Intro string `json:"intro,omitempty" yaml:"intro,omitempty"`
}

// ExamplesConfig holds settings for the standalone and real-world categories,
// which share one output document.
type ExamplesConfig struct {
	// GettingStartedDir holds standalone examples.
	GettingStartedDir string `json:"getting_started_dir" yaml:"getting_started_dir"`

	// RealWorldDir holds one subdirectory per before/after transformation.
	RealWorldDir string `json:"real_world_dir" yaml:"real_world_dir"`

	// RealWorldExtensions lists the file extensions scanned inside each
	// real-world subdirectory.
	RealWorldExtensions []string `json:"real_world_extensions" yaml:"real_world_extensions"`

	// OutputFile is the generated examples document.
	OutputFile string `json:"output_file" yaml:"output_file"`
}

// OutputFormat selects the document markup.
type OutputFormat string

const (
	OutputRST      OutputFormat = "rst"
	OutputMarkdown OutputFormat = "markdown"
)

// OutputConfig holds settings shared by every generated document.
type OutputConfig struct {
	// Format selects the markup: rst or markdown.
	Format OutputFormat `json:"format" yaml:"format"`

	// Language tags code blocks ("cpp").
	Language string `json:"language" yaml:"language"`

	// Manifest, when set, receives a YAML or JSON dump of every harvested
	// record. The extension selects the encoding.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`
}

// Config groups everything one generation run needs. It is built once by
// the CLI and passed explicitly to the harvester.
type Config struct {
	Remote     RemoteConfig     `json:"remote" yaml:"remote"`
	Formatter  FormatterConfig  `json:"formatter" yaml:"formatter"`
	Comparison ComparisonConfig `json:"comparison" yaml:"comparison"`
	Examples   ExamplesConfig   `json:"examples" yaml:"examples"`
	Output     OutputConfig     `json:"output" yaml:"output"`

	// Titles maps a file stem to a display title, overriding the derived
	// one (e.g. "minmax" -> "Min Max").
	Titles map[string]string `json:"titles,omitempty" yaml:"titles,omitempty"`

	// HistoryDB, when set, is the SQLite file that records per-run ratios.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty"`

	// MetricsFile, when set, receives a Prometheus textfile snapshot of the run.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
}
