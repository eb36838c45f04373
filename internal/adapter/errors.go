package adapter

import "fmt"

// FailureKind classifies how a tool invocation failed.
type FailureKind int

const (
	FailSpawn FailureKind = iota
	FailExit
	FailTimeout
	FailDecode
)

func (k FailureKind) String() string {
	switch k {
	case FailSpawn:
		return "spawn"
	case FailExit:
		return "exit"
	case FailTimeout:
		return "timeout"
	case FailDecode:
		return "decode"
	default:
		return fmt.Sprintf("failure(%d)", int(k))
	}
}

// ToolError is the typed failure of one tool on one input file.
type ToolError struct {
	Tool     string
	File     string
	Kind     FailureKind
	ExitCode int
	Err      error
}

func (e *ToolError) Error() string {
	switch e.Kind {
	case FailExit:
		return fmt.Sprintf("%s on %s: exited with status %d", e.Tool, e.File, e.ExitCode)
	case FailTimeout:
		return fmt.Sprintf("%s on %s: timed out", e.Tool, e.File)
	default:
		return fmt.Sprintf("%s on %s: %s failure: %v", e.Tool, e.File, e.Kind, e.Err)
	}
}

func (e *ToolError) Unwrap() error { return e.Err }
