// Package rpath manages the loader-relative search path of a macOS
// executable via install_name_tool, so the binary finds shared libraries
// staged next to it.
package rpath

import (
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/naoTimesdev/stagehand/pkg/errors"
	"github.com/naoTimesdev/stagehand/pkg/logging"
)

// LoaderPath is the rpath entry that resolves relative to the executable
const LoaderPath = "@loader_path"

// Runner executes an external command and returns its combined output
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

// execRunner shells out via os/exec
type execRunner struct{}

func (execRunner) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// NewRunner returns a Runner backed by os/exec
func NewRunner() Runner {
	return execRunner{}
}

// Patcher adds and inspects rpath entries on executables
type Patcher struct {
	runner Runner
	logger zerolog.Logger
}

// NewPatcher creates a Patcher using the given runner
func NewPatcher(runner Runner) *Patcher {
	return &Patcher{
		runner: runner,
		logger: logging.GetLogger("rpath"),
	}
}

// EnsureLoaderPath adds the @loader_path rpath entry to the executable
// unless it is already present. It reports whether an entry was added and
// surfaces tool failures instead of swallowing them, since a silently
// unpatched binary fails at load time with no pointer back here.
func (p *Patcher) EnsureLoaderPath(executable string) (bool, error) {
	if paths, err := p.ListPaths(executable); err == nil {
		for _, path := range paths {
			if path == LoaderPath {
				p.logger.Debug().Str("executable", executable).Msg("Loader path already present")
				return false, nil
			}
		}
	}

	p.logger.Info().Str("executable", executable).Msg("Adding loader path")
	out, err := p.runner.Run("install_name_tool", "-add_rpath", LoaderPath, executable)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrPatchFailed,
			"install_name_tool failed for %s", executable).
			WithDetail("output", strings.TrimSpace(string(out)))
	}

	return true, nil
}

// ListPaths returns the executable's current rpath entries, parsed from
// `otool -l` load-command output.
func (p *Patcher) ListPaths(executable string) ([]string, error) {
	out, err := p.runner.Run("otool", "-l", executable)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatchFailed,
			"otool failed for %s", executable)
	}
	return parseRpaths(string(out)), nil
}

// parseRpaths extracts rpath entries from otool -l output. Each LC_RPATH
// load command is followed by a "path <entry> (offset N)" line.
func parseRpaths(out string) []string {
	var paths []string
	inRpath := false
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "cmd" {
			inRpath = fields[1] == "LC_RPATH"
			continue
		}
		if inRpath && len(fields) >= 2 && fields[0] == "path" {
			paths = append(paths, fields[1])
			inRpath = false
		}
	}
	return paths
}
