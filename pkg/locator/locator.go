// Package locator finds completed native-dependency build directories and
// enumerates the shared-library artifacts inside them.
//
// A build directory qualifies as a candidate when its name carries the
// dependency prefix and it contains an "output" subdirectory, which the
// native build only creates once it has finished. The newest candidate wins;
// equal timestamps fall back to the directory name so selection stays
// deterministic across runs.
package locator

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/naoTimesdev/stagehand/pkg/errors"
	"github.com/naoTimesdev/stagehand/pkg/logging"
	"github.com/naoTimesdev/stagehand/pkg/types"
)

const (
	// CompletionMarker is the subdirectory whose presence marks a finished build
	CompletionMarker = "output"

	// artifactsSubdir is where the native build places its shared libraries,
	// relative to the candidate directory
	artifactsSubdir = "out/build/artifacts"
)

// Options configures candidate discovery
type Options struct {
	// FS is the filesystem to search
	FS types.FS
	// BuildDir is the directory whose immediate children are examined
	BuildDir string
	// Prefix filters children by directory-name prefix
	Prefix string
}

// FindCandidates returns every completed build directory under opts.BuildDir,
// sorted newest first. Ties on modification time are broken by name,
// descending. Returns a NO_CANDIDATES error when nothing qualifies.
func FindCandidates(opts Options) ([]types.Candidate, error) {
	log := logging.GetLogger("locator")

	entries, err := opts.FS.ReadDir(opts.BuildDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNoCandidates,
			"failed to read build directory %s", opts.BuildDir)
	}

	var candidates []types.Candidate
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), opts.Prefix) {
			continue
		}

		dir := filepath.Join(opts.BuildDir, entry.Name())

		// An in-progress or stale build has no completion marker yet
		if marker, err := opts.FS.Stat(filepath.Join(dir, CompletionMarker)); err != nil || !marker.IsDir() {
			log.Debug().Str("dir", dir).Msg("Skipping candidate without completion marker")
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", dir)
		}

		candidates = append(candidates, types.Candidate{
			Path:    dir,
			Name:    entry.Name(),
			ModTime: info.ModTime(),
		})
	}

	if len(candidates) == 0 {
		return nil, errors.Newf(errors.ErrNoCandidates,
			"no %s* build candidates under %s", opts.Prefix, opts.BuildDir)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].ModTime.Equal(candidates[j].ModTime) {
			return candidates[i].ModTime.After(candidates[j].ModTime)
		}
		return candidates[i].Name > candidates[j].Name
	})

	log.Debug().
		Int("count", len(candidates)).
		Str("selected", candidates[0].Name).
		Msg("Found build candidates")

	return candidates, nil
}

// ArtifactsDir returns the artifacts directory for a candidate
func ArtifactsDir(candidate types.Candidate) string {
	return filepath.Join(candidate.Path, filepath.FromSlash(artifactsSubdir))
}

// Artifacts lists the files in the candidate's artifacts directory whose
// extension matches ext (e.g. ".dylib"). Returns a NO_ARTIFACTS error when
// the artifacts directory does not exist.
func Artifacts(fsys types.FS, candidate types.Candidate, ext string) ([]types.Artifact, error) {
	dir := ArtifactsDir(candidate)

	if _, err := fsys.Stat(dir); err != nil {
		return nil, errors.Wrapf(err, errors.ErrNoArtifacts,
			"no artifacts produced by %s", candidate.Name)
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir)
	}

	var artifacts []types.Artifact
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		artifacts = append(artifacts, types.Artifact{
			Path: filepath.Join(dir, entry.Name()),
			Name: entry.Name(),
		})
	}

	return artifacts, nil
}
