// Package staging copies build artifacts into the directory the final
// executable runs from. Copies are idempotent: an artifact already present
// at the destination is skipped, so repeated runs are cheap. New copies go
// through a temporary sibling file and a rename, so a racing reader never
// observes a partially written library.
package staging

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/naoTimesdev/stagehand/pkg/errors"
	"github.com/naoTimesdev/stagehand/pkg/logging"
	"github.com/naoTimesdev/stagehand/pkg/types"
)

// tmpSuffix marks in-flight copies; a leftover one means a copy died mid-write
const tmpSuffix = ".stagehand-tmp"

// Stager copies artifacts into a target directory
type Stager struct {
	fs     types.FS
	dryRun bool
	logger zerolog.Logger
}

// New creates a Stager. With dryRun set, Stage only reports what it would do.
func New(fs types.FS, dryRun bool) *Stager {
	return &Stager{
		fs:     fs,
		dryRun: dryRun,
		logger: logging.GetLogger("staging"),
	}
}

// Stage copies each artifact into targetDir unless a file of the same name
// already exists there. It returns the base names of copied and skipped
// artifacts. The first copy failure aborts the run.
func (s *Stager) Stage(artifacts []types.Artifact, targetDir string) (copied, skipped []string, err error) {
	for _, artifact := range artifacts {
		dest := filepath.Join(targetDir, artifact.Name)

		if _, statErr := s.fs.Stat(dest); statErr == nil {
			s.logger.Info().Str("artifact", artifact.Name).Msg("Already copied")
			skipped = append(skipped, artifact.Name)
			continue
		}

		if s.dryRun {
			s.logger.Info().Str("artifact", artifact.Name).Str("dest", dest).Msg("Would copy")
			copied = append(copied, artifact.Name)
			continue
		}

		s.logger.Info().Str("artifact", artifact.Name).Str("dest", dest).Msg("Copying")
		if err := s.copyFile(artifact.Path, dest); err != nil {
			return copied, skipped, err
		}
		copied = append(copied, artifact.Name)
	}

	return copied, skipped, nil
}

// copyFile writes src's contents to a temporary sibling of dest and renames
// it into place.
func (s *Stager) copyFile(src, dest string) error {
	data, err := s.fs.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read artifact %s", src)
	}

	tmp := dest + tmpSuffix
	if err := s.fs.WriteFile(tmp, data, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to write %s", tmp)
	}

	if err := s.fs.Rename(tmp, dest); err != nil {
		// Leaving the temp file behind would pollute the target dir
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to move %s into place", dest)
	}

	return nil
}
