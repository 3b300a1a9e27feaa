package stagehand

// User-facing command descriptions and flag help
const (
	MsgRootShort = "Stage native shared libraries next to your executable"
	MsgRootLong  = `stagehand is a build-support tool. It finds the most recently built
output directory of a native dependency under the cargo build tree, copies
the shared-library artifacts next to the final executable, and on macOS
adds a loader-relative rpath entry so the binary finds them at load time.`

	MsgStageShort = "Locate and copy shared-library artifacts"
	MsgStageLong  = `Stage finds the newest completed build directory matching the configured
dependency prefix, copies any dynamic libraries not yet present into the
target directory, and on macOS ensures the executable carries a
@loader_path rpath entry.

Artifacts already present at the target are skipped, so repeated runs are
cheap and idempotent. On platforms that need no staged libraries this is a
no-op.`

	MsgStatusShort = "Show build candidates and staging state"
	MsgStatusLong  = `Status lists every completed build candidate, marks the one staging would
select, and shows which of its artifacts are already staged. It never
modifies anything.`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagRoot    = "Build checkout root (overrides config)"
)
