// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code inspection helpers

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/naoTimesdev/stagehand/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "no_candidates_error",
			code:    errors.ErrNoCandidates,
			message: "no build candidates",
			wantStr: "[NO_CANDIDATES] no build candidates",
		},
		{
			name:    "no_artifacts_error",
			code:    errors.ErrNoArtifacts,
			message: "no artifacts produced",
			wantStr: "[NO_ARTIFACTS] no artifacts produced",
		},
		{
			name:    "patch_failed_error",
			code:    errors.ErrPatchFailed,
			message: "install_name_tool exited nonzero",
			wantStr: "[PATCH_FAILED] install_name_tool exited nonzero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := errors.Wrap(cause, errors.ErrFileCopy, "copying libcrypto.dylib")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match errors.Is on the cause")
	}

	want := "[FILE_COPY] copying libcrypto.dylib: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if errors.Wrap(nil, errors.ErrFileCopy, "nothing") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrapf(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.Wrapf(cause, errors.ErrFileCopy, "copying %s", "libssl.dylib")

	want := "[FILE_COPY] copying libssl.dylib: disk full"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsErrorCode(t *testing.T) {
	err := errors.New(errors.ErrNoCandidates, "nothing under build dir")

	if !errors.IsErrorCode(err, errors.ErrNoCandidates) {
		t.Error("IsErrorCode should match the error's own code")
	}
	if errors.IsErrorCode(err, errors.ErrNoArtifacts) {
		t.Error("IsErrorCode should not match a different code")
	}

	// Matching through wrapping layers
	wrapped := fmt.Errorf("staging failed: %w", err)
	if !errors.IsErrorCode(wrapped, errors.ErrNoCandidates) {
		t.Error("IsErrorCode should see through fmt.Errorf wrapping")
	}

	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrNoCandidates) {
		t.Error("IsErrorCode should be false for plain errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrConfigLoad, "bad toml")); got != errors.ErrConfigLoad {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrConfigLoad)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrPatchFailed, "patch failed").
		WithDetail("executable", "showtimes").
		WithDetail("output", "no such file")

	if err.Details["executable"] != "showtimes" {
		t.Errorf("Details[executable] = %v, want showtimes", err.Details["executable"])
	}
	if err.Details["output"] != "no such file" {
		t.Errorf("Details[output] = %v, want 'no such file'", err.Details["output"])
	}
}
