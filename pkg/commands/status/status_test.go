// pkg/commands/status/status_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Memory FS
// PURPOSE: Test the read-only staging report

package status_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naoTimesdev/stagehand/pkg/commands/status"
	"github.com/naoTimesdev/stagehand/pkg/platform"
	"github.com/naoTimesdev/stagehand/pkg/testutil"
)

const prefix = "aws-lc-fips-sys-"

func baseOptions(tree *testutil.BuildTree, family platform.Family) status.Options {
	return status.Options{
		Root:     tree.Root,
		Prefix:   prefix,
		BuildDir: "target/production/build",
		Platform: family,
		FS:       tree.FS,
	}
}

func TestBuildReportEmptyTree(t *testing.T) {
	tree := testutil.NewBuildTree(t)

	report, err := status.BuildReport(baseOptions(tree, platform.FamilyDarwin))
	require.NoError(t, err)

	assert.Empty(t, report.Candidates)
	assert.Empty(t, report.Artifacts)
}

func TestBuildReportMarksSelected(t *testing.T) {
	tree := testutil.NewBuildTree(t)
	older := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	tree.AddCandidate(t, prefix+"0.12.3", older, true, nil)
	tree.AddCandidate(t, prefix+"0.12.4", newer, true, map[string][]byte{
		"libcrypto.dylib": []byte("crypto"),
		"libssl.dylib":    []byte("ssl"),
	})
	tree.AddTarget(t, "libcrypto.dylib", []byte("crypto"))

	report, err := status.BuildReport(baseOptions(tree, platform.FamilyDarwin))
	require.NoError(t, err)

	require.Len(t, report.Candidates, 2)
	assert.Equal(t, prefix+"0.12.4", report.Candidates[0].Name)
	assert.True(t, report.Candidates[0].Selected)
	assert.False(t, report.Candidates[1].Selected)

	require.Len(t, report.Artifacts, 2)
	staged := map[string]bool{}
	for _, artifact := range report.Artifacts {
		staged[artifact.Name] = artifact.Staged
	}
	assert.True(t, staged["libcrypto.dylib"])
	assert.False(t, staged["libssl.dylib"])
}

func TestBuildReportSelectedWithoutArtifactsDir(t *testing.T) {
	tree := testutil.NewBuildTree(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tree.AddCandidate(t, prefix+"0.12.4", now, true, nil)

	report, err := status.BuildReport(baseOptions(tree, platform.FamilyDarwin))
	require.NoError(t, err)

	require.Len(t, report.Candidates, 1)
	assert.Empty(t, report.Artifacts)
}

func TestBuildReportUnsupportedPlatform(t *testing.T) {
	tree := testutil.NewBuildTree(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tree.AddCandidate(t, prefix+"0.12.4", now, true, nil)

	report, err := status.BuildReport(baseOptions(tree, platform.FamilyOther))
	require.NoError(t, err)

	assert.Equal(t, platform.FamilyOther, report.Platform)
	assert.Empty(t, report.Candidates)
}
