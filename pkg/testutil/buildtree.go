package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/naoTimesdev/stagehand/pkg/filesystem"
	"github.com/naoTimesdev/stagehand/pkg/types"
)

// BuildTree is an in-memory checkout with the target/production/build layout
// the staging pipeline expects.
type BuildTree struct {
	// Afero is the raw afero filesystem, for helpers like Chtimes
	Afero afero.Fs
	// FS is the types.FS view handed to production code
	FS types.FS
	// Root is the checkout root
	Root string
}

// NewBuildTree creates an empty in-memory checkout rooted at /checkout
func NewBuildTree(t *testing.T) *BuildTree {
	t.Helper()

	memFs := afero.NewMemMapFs()
	tree := &BuildTree{
		Afero: memFs,
		FS:    filesystem.NewAferoFS(memFs),
		Root:  "/checkout",
	}
	require.NoError(t, memFs.MkdirAll(tree.BuildDir(), 0755))
	return tree
}

// BuildDir returns the cargo-style build directory
func (bt *BuildTree) BuildDir() string {
	return filepath.Join(bt.Root, "target", "production", "build")
}

// TargetDir returns the staging destination, the build directory's parent
func (bt *BuildTree) TargetDir() string {
	return filepath.Join(bt.Root, "target", "production")
}

// AddCandidate creates a build directory under BuildDir. When complete is
// true it gets the "output" completion marker. Artifacts maps file names to
// contents and lands under out/build/artifacts. The candidate directory's
// mtime is forced to mtime after all children exist.
func (bt *BuildTree) AddCandidate(t *testing.T, name string, mtime time.Time, complete bool, artifacts map[string][]byte) string {
	t.Helper()

	dir := filepath.Join(bt.BuildDir(), name)
	require.NoError(t, bt.Afero.MkdirAll(dir, 0755))

	if complete {
		require.NoError(t, bt.Afero.MkdirAll(filepath.Join(dir, "output"), 0755))
	}

	if len(artifacts) > 0 {
		artifactsDir := filepath.Join(dir, "out", "build", "artifacts")
		require.NoError(t, bt.Afero.MkdirAll(artifactsDir, 0755))
		for artifactName, data := range artifacts {
			require.NoError(t, afero.WriteFile(bt.Afero, filepath.Join(artifactsDir, artifactName), data, 0644))
		}
	}

	// Children creation bumps the directory mtime, so pin it last
	require.NoError(t, bt.Afero.Chtimes(dir, mtime, mtime))
	return dir
}

// AddArtifactsDir creates an empty out/build/artifacts under an existing
// candidate directory.
func (bt *BuildTree) AddArtifactsDir(t *testing.T, candidateName string) string {
	t.Helper()

	dir := filepath.Join(bt.BuildDir(), candidateName, "out", "build", "artifacts")
	require.NoError(t, bt.Afero.MkdirAll(dir, 0755))
	return dir
}

// AddTarget places a file directly in the staging destination, simulating a
// previously staged artifact or the final executable.
func (bt *BuildTree) AddTarget(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(bt.TargetDir(), name)
	require.NoError(t, afero.WriteFile(bt.Afero, path, data, 0755))
	return path
}

// ReadTarget reads a file from the staging destination
func (bt *BuildTree) ReadTarget(t *testing.T, name string) []byte {
	t.Helper()

	data, err := afero.ReadFile(bt.Afero, filepath.Join(bt.TargetDir(), name))
	require.NoError(t, err)
	return data
}

// TargetExists reports whether a file exists in the staging destination
func (bt *BuildTree) TargetExists(name string) bool {
	ok, _ := afero.Exists(bt.Afero, filepath.Join(bt.TargetDir(), name))
	return ok
}

// ListTargets returns the base names of all regular files in the staging
// destination, for leftover-temp-file assertions.
func (bt *BuildTree) ListTargets(t *testing.T) []string {
	t.Helper()

	infos, err := afero.ReadDir(bt.Afero, bt.TargetDir())
	require.NoError(t, err)

	var names []string
	for _, info := range infos {
		if !info.IsDir() {
			names = append(names, info.Name())
		}
	}
	return names
}
