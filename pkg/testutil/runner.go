package testutil

import "fmt"

// FakeRunner records subprocess invocations and serves canned responses,
// keyed by command name.
type FakeRunner struct {
	// Calls holds each invocation as [name, args...]
	Calls [][]string
	// Outputs maps a command name to its combined output
	Outputs map[string]string
	// Errs maps a command name to the error its invocation returns
	Errs map[string]error
}

// NewFakeRunner creates a FakeRunner with empty response tables
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Outputs: make(map[string]string),
		Errs:    make(map[string]error),
	}
}

// Run implements rpath.Runner
func (r *FakeRunner) Run(name string, args ...string) ([]byte, error) {
	r.Calls = append(r.Calls, append([]string{name}, args...))
	return []byte(r.Outputs[name]), r.Errs[name]
}

// CalledWith reports whether any recorded call matches the given
// command name and full argument list.
func (r *FakeRunner) CalledWith(name string, args ...string) bool {
	want := append([]string{name}, args...)
	for _, call := range r.Calls {
		if len(call) != len(want) {
			continue
		}
		match := true
		for i := range call {
			if call[i] != want[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// String renders the recorded calls, for failure messages
func (r *FakeRunner) String() string {
	return fmt.Sprintf("%v", r.Calls)
}
