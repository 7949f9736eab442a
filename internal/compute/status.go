package compute

// Status is the overall outcome of a run. It is mapped to a process exit
// code only by the command layer.
type Status int

const (
	// StatusOK means the result was computed and written. Record-level
	// warnings do not change the status.
	StatusOK Status = iota

	// StatusLoadFailure means an input document could not be loaded; the
	// accumulator was not run.
	StatusLoadFailure

	// StatusUsage means the invocation itself was wrong (arguments, flags,
	// configuration).
	StatusUsage

	// StatusWriteFailure means the result was computed but an artifact
	// could not be written.
	StatusWriteFailure

	// StatusInterrupted means the context was cancelled before the run
	// started.
	StatusInterrupted
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusLoadFailure:
		return "load_failure"
	case StatusUsage:
		return "usage"
	case StatusWriteFailure:
		return "write_failure"
	case StatusInterrupted:
		return "interrupted"
	}
	return "unknown"
}

// ExitCode returns the process exit code for the status.
func (s Status) ExitCode() int {
	switch s {
	case StatusOK:
		return 0
	case StatusLoadFailure:
		return 1
	case StatusUsage:
		return 2
	case StatusInterrupted:
		return 130
	default:
		return 3
	}
}
