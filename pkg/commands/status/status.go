// Package status reports what a staging run would work with: the build
// candidates on disk, which one selection would pick, and which artifacts
// are already staged. It never writes.
package status

import (
	"path/filepath"
	"time"

	"github.com/naoTimesdev/stagehand/pkg/errors"
	"github.com/naoTimesdev/stagehand/pkg/filesystem"
	"github.com/naoTimesdev/stagehand/pkg/locator"
	"github.com/naoTimesdev/stagehand/pkg/logging"
	"github.com/naoTimesdev/stagehand/pkg/platform"
	"github.com/naoTimesdev/stagehand/pkg/types"
)

// Options defines the options for the BuildReport command.
type Options struct {
	// Root is the build checkout root
	Root string
	// Prefix is the dependency directory-name prefix to match
	Prefix string
	// BuildDir is the build directory relative to Root
	BuildDir string
	// Platform overrides OS detection; empty means detect
	Platform platform.Family
	// FS overrides the filesystem, for tests; nil means the OS filesystem
	FS types.FS
}

// CandidateInfo describes one build candidate in the report
type CandidateInfo struct {
	Name     string
	ModTime  time.Time
	Selected bool
}

// ArtifactInfo describes one artifact of the selected candidate
type ArtifactInfo struct {
	Name   string
	Staged bool
}

// Report is the read-only view of the staging state
type Report struct {
	Platform   platform.Family
	BuildDir   string
	TargetDir  string
	Candidates []CandidateInfo
	Artifacts  []ArtifactInfo
}

// BuildReport inspects the build tree without modifying it. An empty or
// missing build directory yields an empty report, not an error; only
// genuine access failures are returned.
func BuildReport(opts Options) (*Report, error) {
	log := logging.GetLogger("commands.status")

	family := opts.Platform
	if family == "" {
		family = platform.Detect()
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	baseDir := filepath.Join(opts.Root, filepath.FromSlash(opts.BuildDir))
	report := &Report{
		Platform:  family,
		BuildDir:  baseDir,
		TargetDir: filepath.Dir(baseDir),
	}

	if !family.NeedsStaging() {
		return report, nil
	}

	candidates, err := locator.FindCandidates(locator.Options{
		FS:       fsys,
		BuildDir: baseDir,
		Prefix:   opts.Prefix,
	})
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNoCandidates) {
			log.Debug().Str("buildDir", baseDir).Msg("No candidates to report")
			return report, nil
		}
		return nil, err
	}

	for i, candidate := range candidates {
		report.Candidates = append(report.Candidates, CandidateInfo{
			Name:     candidate.Name,
			ModTime:  candidate.ModTime,
			Selected: i == 0,
		})
	}

	artifacts, err := locator.Artifacts(fsys, candidates[0], family.LibraryExt())
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNoArtifacts) {
			return report, nil
		}
		return nil, err
	}

	for _, artifact := range artifacts {
		_, statErr := fsys.Stat(filepath.Join(report.TargetDir, artifact.Name))
		report.Artifacts = append(report.Artifacts, ArtifactInfo{
			Name:   artifact.Name,
			Staged: statErr == nil,
		})
	}

	return report, nil
}
