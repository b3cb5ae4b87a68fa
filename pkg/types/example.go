// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Status records whether both sides of a paired example were obtained.
type Status string

const (
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
)

// ReferenceDescriptor locates the remote origin of a "before" example: a
// file at a specific commit plus a 1-indexed line range.
type ReferenceDescriptor struct {
	// URL is the annotation URL as written, including the #L suffix.
	URL string `json:"url" yaml:"url"`

	Owner  string `json:"owner" yaml:"owner"`
	Repo   string `json:"repo" yaml:"repo"`
	Commit string `json:"commit" yaml:"commit"`

	// Path is the file path inside the repository.
	Path string `json:"path" yaml:"path"`

	// StartLine is the first line of interest (1-based).
	StartLine int `json:"start_line" yaml:"start_line"`

	// EndLine is the last line of interest (1-based, inclusive). Zero means
	// the annotation carried no "to" line.
	EndLine int `json:"end_line,omitempty" yaml:"end_line,omitempty"`
}

// HasEndLine reports whether the descriptor carries a line range.
func (d ReferenceDescriptor) HasEndLine() bool {
	return d.EndLine > 0
}

// ComparisonExample pairs a local project example with the same-named
// example of the compared library.
type ComparisonExample struct {
	Title string `json:"title" yaml:"title"`

	// ComparisonFilename is the remote file stem (same as the local stem).
	ComparisonFilename string `json:"comparison_filename" yaml:"comparison_filename"`

	Status Status `json:"status" yaml:"status"`

	// ProjectCode is the local example, header-stripped for display.
	ProjectCode string `json:"project_code,omitempty" yaml:"project_code,omitempty"`

	// ComparisonCode is the formatted remote example, or a placeholder when
	// it could not be fetched.
	ComparisonCode string `json:"comparison_code,omitempty" yaml:"comparison_code,omitempty"`

	// CodeRatio is comparison lines / project lines. Zero means not computed.
	CodeRatio float64 `json:"code_ratio,omitempty" yaml:"code_ratio,omitempty"`
}

// HasRatio reports whether a ratio was computed.
func (e ComparisonExample) HasRatio() bool { return e.CodeRatio > 0 }

// StandaloneExample is a local example with no remote counterpart.
type StandaloneExample struct {
	Title    string `json:"title" yaml:"title"`
	Filename string `json:"filename" yaml:"filename"`
	Code     string `json:"code" yaml:"code"`
}

// RealWorldExample pairs a local "after" file with the remote "before" code
// its annotation points at.
type RealWorldExample struct {
	Title    string `json:"title" yaml:"title"`
	Subdir   string `json:"subdir" yaml:"subdir"`
	Filename string `json:"filename" yaml:"filename"`
	Status   Status `json:"status" yaml:"status"`

	// OriginalCode is the fetched, sliced, and formatted remote code. Empty
	// when the fetch or the slice failed.
	OriginalCode string `json:"original_code,omitempty" yaml:"original_code,omitempty"`

	// DisplayedCode is the local file, header-stripped for display.
	DisplayedCode string `json:"displayed_code" yaml:"displayed_code"`

	SourceURL string              `json:"source_url" yaml:"source_url"`
	Reference ReferenceDescriptor `json:"reference" yaml:"reference"`

	// CodeRatio is original lines / local lines. Zero means not computed.
	CodeRatio float64 `json:"code_ratio,omitempty" yaml:"code_ratio,omitempty"`
}

// HasRatio reports whether a ratio was computed.
func (e RealWorldExample) HasRatio() bool { return e.CodeRatio > 0 }
