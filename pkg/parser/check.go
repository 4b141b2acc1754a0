package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// CompletenessStatus classifies a snippet for interactive input handling.
type CompletenessStatus string

// Completeness status values.
const (
	StatusComplete   CompletenessStatus = "complete"
	StatusIncomplete CompletenessStatus = "incomplete"
	StatusInvalid    CompletenessStatus = "invalid"
)

// Completeness is the result of a completeness check. Indent is the suggested
// leading whitespace for the next line when Status is incomplete.
type Completeness struct {
	Status CompletenessStatus
	Indent string
}

// incompletePatterns match parse error messages that indicate the input was
// cut short rather than genuinely malformed.
var incompletePatterns = []*regexp.Regexp{
	regexp.MustCompile(`Unexpected end of file`),
	regexp.MustCompile(`Unterminated string literal`),
	regexp.MustCompile(`Unterminated template literal`),
	regexp.MustCompile(`Unterminated regular expression`),
	regexp.MustCompile(`but found end of file`),
	regexp.MustCompile(`Expected .+ but found (end of file|"EOF")`),
}

// Validate runs a full syntax parse of src in module mode and returns the
// first parse error, or nil when the source is syntactically valid.
func Validate(src string) error {
	result := api.Transform(src, api.TransformOptions{
		Loader:   api.LoaderJS,
		Format:   api.FormatESModule,
		LogLevel: api.LogLevelSilent,
	})
	if len(result.Errors) == 0 {
		return nil
	}
	msg := result.Errors[0]
	if msg.Location != nil {
		return fmt.Errorf("%s (line %d)", msg.Text, msg.Location.Line)
	}
	return fmt.Errorf("%s", msg.Text)
}

// CheckCompleteness classifies src as complete, incomplete, or invalid.
//
// Empty or whitespace-only input is complete. Input that parses is complete.
// A parse error whose message matches one of the known truncation patterns is
// incomplete; the suggested indent is the last line's leading whitespace,
// plus two extra spaces when that line's trimmed form ends with an opening
// bracket. Any other parse error is a genuine syntax error.
func CheckCompleteness(src string) Completeness {
	if strings.TrimSpace(src) == "" {
		return Completeness{Status: StatusComplete}
	}

	err := Validate(src)
	if err == nil {
		return Completeness{Status: StatusComplete}
	}

	text := err.Error()
	for _, pat := range incompletePatterns {
		if pat.MatchString(text) {
			return Completeness{
				Status: StatusIncomplete,
				Indent: nextIndent(src),
			}
		}
	}
	return Completeness{Status: StatusInvalid}
}

// nextIndent computes the continuation indent from the last line of src.
func nextIndent(src string) string {
	lines := strings.Split(src, "\n")
	last := lines[len(lines)-1]
	// A trailing newline makes the last split element empty; use the line
	// before it so the indent reflects actual content.
	if last == "" && len(lines) > 1 {
		last = lines[len(lines)-2]
	}

	indent := last[:len(last)-len(strings.TrimLeft(last, " \t"))]
	trimmed := strings.TrimSpace(last)
	if strings.HasSuffix(trimmed, "{") || strings.HasSuffix(trimmed, "(") || strings.HasSuffix(trimmed, "[") {
		indent += "  "
	}
	return indent
}
