// Package stage implements the end-to-end staging pipeline: locate the
// newest completed build of the native dependency, copy its shared
// libraries next to the executable, and patch the executable's rpath on
// macOS.
package stage

import (
	"path/filepath"

	"github.com/naoTimesdev/stagehand/pkg/filesystem"
	"github.com/naoTimesdev/stagehand/pkg/locator"
	"github.com/naoTimesdev/stagehand/pkg/logging"
	"github.com/naoTimesdev/stagehand/pkg/platform"
	"github.com/naoTimesdev/stagehand/pkg/rpath"
	"github.com/naoTimesdev/stagehand/pkg/staging"
	"github.com/naoTimesdev/stagehand/pkg/types"
)

// Options defines the options for the StageArtifacts command.
type Options struct {
	// Root is the build checkout root
	Root string
	// Prefix is the dependency directory-name prefix to match
	Prefix string
	// Executable is the binary that receives the rpath patch on macOS
	Executable string
	// BuildDir is the build directory relative to Root
	BuildDir string
	// Platform overrides OS detection; empty means detect
	Platform platform.Family
	// DryRun reports planned work without writing
	DryRun bool
	// FS overrides the filesystem, for tests; nil means the OS filesystem
	FS types.FS
	// Runner overrides the subprocess runner, for tests
	Runner rpath.Runner
}

// StageArtifacts runs the staging pipeline. On OS families that need no
// staged libraries it is a successful no-op with zero writes.
func StageArtifacts(opts Options) (*types.Result, error) {
	log := logging.GetLogger("commands.stage")

	family := opts.Platform
	if family == "" {
		family = platform.Detect()
	}

	if !family.NeedsStaging() {
		log.Debug().Str("platform", string(family)).Msg("Platform needs no staged libraries")
		return &types.Result{}, nil
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	baseDir := filepath.Join(opts.Root, filepath.FromSlash(opts.BuildDir))
	targetDir := filepath.Dir(baseDir)

	log.Debug().
		Str("buildDir", baseDir).
		Str("targetDir", targetDir).
		Str("prefix", opts.Prefix).
		Bool("dryRun", opts.DryRun).
		Msg("Starting staging run")

	candidates, err := locator.FindCandidates(locator.Options{
		FS:       fsys,
		BuildDir: baseDir,
		Prefix:   opts.Prefix,
	})
	if err != nil {
		return nil, err
	}

	selected := candidates[0]
	log.Info().
		Str("candidate", selected.Name).
		Time("modTime", selected.ModTime).
		Msg("Selected newest build candidate")

	artifacts, err := locator.Artifacts(fsys, selected, family.LibraryExt())
	if err != nil {
		return nil, err
	}

	copied, skipped, err := staging.New(fsys, opts.DryRun).Stage(artifacts, targetDir)
	result := &types.Result{Copied: copied, Skipped: skipped}
	if err != nil {
		return result, err
	}

	if family.NeedsRpathPatch() {
		executable := filepath.Join(targetDir, opts.Executable)
		if opts.DryRun {
			log.Info().Str("executable", executable).Msg("Would ensure loader path")
			return result, nil
		}

		runner := opts.Runner
		if runner == nil {
			runner = rpath.NewRunner()
		}

		patched, err := rpath.NewPatcher(runner).EnsureLoaderPath(executable)
		if err != nil {
			return result, err
		}
		result.Patched = patched
		result.Executable = executable
	}

	return result, nil
}
