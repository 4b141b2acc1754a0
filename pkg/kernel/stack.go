package kernel

import (
	"strings"

	"github.com/leapstack-labs/leapscript/pkg/display"
)

// defaultStackMarkers identify frames added by the compilation wrapper
// rather than user code. The first line mentioning one truncates the trace.
var defaultStackMarkers = []string{
	"AsyncFunction",
	"leapscript",
}

// SanitizeStack truncates a captured stack trace at the first internal
// frame, preserving every preceding line verbatim.
func (k *Kernel) SanitizeStack(stack string) string {
	lines := strings.Split(stack, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if containsMarker(line, k.markers) {
			break
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// SanitizeError sanitizes the stack carried by err, falling back to the
// error text when no stack is attached.
func (k *Kernel) SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	if st, ok := err.(display.StackTracer); ok {
		return k.SanitizeStack(st.Stack())
	}
	return err.Error()
}

func containsMarker(line string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
