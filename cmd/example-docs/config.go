// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/example-docs/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "example-docs/0.1"
)

// setDefaults registers a default for every configuration key so that
// AutomaticEnv can override any of them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("remote.timeout", defaultTimeout)
	v.SetDefault("remote.user_agent", defaultUserAgent)
	v.SetDefault("remote.listing_url", "https://api.github.com/repos/NVIDIA/cccl/contents/thrust/examples")
	v.SetDefault("remote.raw_examples_url", "https://raw.githubusercontent.com/NVIDIA/cccl/main/thrust/examples")
	v.SetDefault("remote.browse_url", "https://github.com/NVIDIA/cccl/blob/main/thrust/examples")
	v.SetDefault("remote.raw_base_url", "https://raw.githubusercontent.com")
	v.SetDefault("remote.extension", ".cu")
	v.SetDefault("remote.exclude_prefix", "_")

	v.SetDefault("formatter.backend", string(types.FormatterClang))
	v.SetDefault("formatter.binary", "clang-format")
	v.SetDefault("formatter.image", "ghcr.io/jidicula/clang-format:18")
	v.SetDefault("formatter.style", "")

	v.SetDefault("comparison.local_dir", "examples/thrust")
	v.SetDefault("comparison.output_file", "docs/parrot_v_thrust.rst")
	v.SetDefault("comparison.project_name", "Parrot")
	v.SetDefault("comparison.library_name", "Thrust")
	v.SetDefault("comparison.intro", "Parrot is built on top of Thrust but provides a more concise and expressive API.")

	v.SetDefault("examples.getting_started_dir", "examples/getting_started")
	v.SetDefault("examples.real_world_dir", "examples/real_world")
	v.SetDefault("examples.real_world_extensions", []string{".cu", ".h"})
	v.SetDefault("examples.output_file", "docs/examples.rst")

	v.SetDefault("output.format", string(types.OutputRST))
	v.SetDefault("output.language", "cpp")
	v.SetDefault("output.manifest", "")

	v.SetDefault("titles", map[string]string{"minmax": "Min Max"})
	v.SetDefault("history_db", "")
	v.SetDefault("metrics_file", "")
}

// loadConfig reads the run configuration out of v.
func loadConfig(v *viper.Viper) types.Config {
	return types.Config{
		Remote: types.RemoteConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("remote.timeout"),
				UserAgent: v.GetString("remote.user_agent"),
			},
			ListingURL:     v.GetString("remote.listing_url"),
			RawExamplesURL: v.GetString("remote.raw_examples_url"),
			BrowseURL:      v.GetString("remote.browse_url"),
			RawBaseURL:     v.GetString("remote.raw_base_url"),
			Extension:      v.GetString("remote.extension"),
			ExcludePrefix:  v.GetString("remote.exclude_prefix"),
		},
		Formatter: types.FormatterConfig{
			Backend: types.FormatterBackend(v.GetString("formatter.backend")),
			Binary:  v.GetString("formatter.binary"),
			Image:   v.GetString("formatter.image"),
			Style:   v.GetString("formatter.style"),
		},
		Comparison: types.ComparisonConfig{
			LocalDir:    v.GetString("comparison.local_dir"),
			OutputFile:  v.GetString("comparison.output_file"),
			ProjectName: v.GetString("comparison.project_name"),
			LibraryName: v.GetString("comparison.library_name"),
			Intro:       v.GetString("comparison.intro"),
		},
		Examples: types.ExamplesConfig{
			GettingStartedDir:   v.GetString("examples.getting_started_dir"),
			RealWorldDir:        v.GetString("examples.real_world_dir"),
			RealWorldExtensions: v.GetStringSlice("examples.real_world_extensions"),
			OutputFile:          v.GetString("examples.output_file"),
		},
		Output: types.OutputConfig{
			Format:   types.OutputFormat(v.GetString("output.format")),
			Language: v.GetString("output.language"),
			Manifest: v.GetString("output.manifest"),
		},
		Titles:      v.GetStringMapString("titles"),
		HistoryDB:   v.GetString("history_db"),
		MetricsFile: v.GetString("metrics_file"),
	}
}
