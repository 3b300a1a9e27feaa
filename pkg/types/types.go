// Package types holds the shared interfaces and value types for stagehand.
package types

import (
	"io/fs"
	"time"
)

// FS is the filesystem interface used by all staging operations.
// It exists so tests can run against an in-memory filesystem.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

// Candidate is a completed build directory matching the dependency prefix.
type Candidate struct {
	// Path is the absolute (or root-relative) path of the directory
	Path string
	// Name is the directory's base name, e.g. "aws-lc-fips-sys-0.12.4"
	Name string
	// ModTime is the directory's modification time, used for newest-wins selection
	ModTime time.Time
}

// Artifact is a dynamic-library file produced by the dependency's build.
type Artifact struct {
	// Path is the full path of the source file inside the artifacts directory
	Path string
	// Name is the file's base name, e.g. "libcrypto.dylib"
	Name string
}

// Result is the outcome of a staging run.
type Result struct {
	// Copied holds the base names of artifacts copied on this run
	Copied []string
	// Skipped holds the base names of artifacts already present at the target
	Skipped []string
	// Patched reports whether the executable's rpath was modified
	Patched bool
	// Executable is the path of the patched executable, when Patched is true
	Executable string
}
