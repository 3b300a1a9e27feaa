// Package platform decides whether the current OS family needs staged
// shared libraries and which dynamic-library extension it uses.
package platform

import "runtime"

// Family is a coarse operating-system family for staging purposes
type Family string

const (
	// FamilyDarwin builds link against .dylib artifacts and need an rpath patch
	FamilyDarwin Family = "darwin"
	// FamilyWindows builds link against .dll artifacts placed next to the exe
	FamilyWindows Family = "windows"
	// FamilyOther covers statically linked or same-directory-linked platforms
	FamilyOther Family = "other"
)

// Detect returns the family of the running OS
func Detect() Family {
	switch runtime.GOOS {
	case "darwin":
		return FamilyDarwin
	case "windows":
		return FamilyWindows
	default:
		return FamilyOther
	}
}

// NeedsStaging reports whether the family requires shared libraries
// to be copied next to the executable at all.
func (f Family) NeedsStaging() bool {
	return f == FamilyDarwin || f == FamilyWindows
}

// LibraryExt returns the dynamic-library file extension for the family,
// including the leading dot, or "" when the family needs no staging.
func (f Family) LibraryExt() string {
	switch f {
	case FamilyDarwin:
		return ".dylib"
	case FamilyWindows:
		return ".dll"
	default:
		return ""
	}
}

// NeedsRpathPatch reports whether staged executables on this family need
// a loader-relative search path added after copying.
func (f Family) NeedsRpathPatch() bool {
	return f == FamilyDarwin
}
