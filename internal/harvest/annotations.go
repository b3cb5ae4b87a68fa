// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"fmt"
	"path/filepath"

	"github.com/pdiddy/example-docs/internal/annotation"
	"github.com/pdiddy/example-docs/pkg/types"
)

// AnnotatedFile is one real-world file and what its annotation parsed to.
type AnnotatedFile struct {
	Subdir    string
	Filename  string
	Reference *types.ReferenceDescriptor
	Err       error
}

// Kind classifies the file's annotation problem, if any.
func (a AnnotatedFile) Kind() Kind {
	return Classify(a.Err)
}

// ScanAnnotations parses the annotation of every real-world file under root
// without touching the network. Per-file problems are returned in Err.
func ScanAnnotations(root string, exts []string) ([]AnnotatedFile, error) {
	subdirs, err := listDirs(root)
	if err != nil {
		return nil, fmt.Errorf("listing real world examples in %s: %w", root, err)
	}

	var out []AnnotatedFile
	for _, subdir := range subdirs {
		files, err := listFiles(filepath.Join(root, subdir), exts)
		if err != nil {
			out = append(out, AnnotatedFile{Subdir: subdir, Err: fmt.Errorf("%w: %v", ErrLocalRead, err)})
			continue
		}
		for _, name := range files {
			af := AnnotatedFile{Subdir: subdir, Filename: name}
			code, err := readLocal(filepath.Join(root, subdir, name))
			if err != nil {
				af.Err = err
				out = append(out, af)
				continue
			}
			af.Reference, af.Err = annotation.Parse(code)
			if af.Reference == nil && af.Err == nil {
				af.Err = annotation.ErrMissingAnnotation
			}
			out = append(out, af)
		}
	}
	return out, nil
}
