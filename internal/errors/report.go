package errors

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"golang.org/x/text/unicode/norm"

	"github.com/mlhm-lang/mlhm/internal/ast"
	"github.com/mlhm-lang/mlhm/internal/types"
)

// Report is the canonical structured error type: the typed errors returned
// by the inference and elimination passes are converted into one by
// FromTypeError (cmd/ailang does so before printing), so tooling can
// inspect Code/Phase/Data without string-matching Error() text.
type Report struct {
	Schema  string         `json:"schema"` // Always "ailang.error/v1"
	Code    string         `json:"code"`
	Phase   string         `json:"phase"` // "typecheck" or "elaborate"
	Message string         `json:"message"`
	Pos     *ast.Pos       `json:"pos,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// Fix represents a suggested fix with a confidence score in [0, 1].
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// ReportError wraps a Report as an error so it survives errors.As
// unwrapping across call boundaries.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain, if one is present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps r as an error.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON renders r as JSON, indented unless compact is set.
func (r *Report) ToJSON(compact bool) (string, error) {
	if compact {
		data, err := json.Marshal(r)
		return string(data), err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	return string(data), err
}

// Render prints a human-readable, colorized one-line diagnostic in the
// style `<code> [<phase>] <message> (<pos>)`, the position part only when
// Pos is set; used by cmd/ailang.
func (r *Report) Render() string {
	codeLabel := color.New(color.FgRed, color.Bold).Sprint(r.Code)
	phaseLabel := color.New(color.FgYellow).Sprintf("[%s]", r.Phase)
	if r.Pos != nil {
		return fmt.Sprintf("%s %s %s (%s)", codeLabel, phaseLabel, r.Message, r.Pos.String())
	}
	return fmt.Sprintf("%s %s %s", codeLabel, phaseLabel, r.Message)
}

// FromTypeError converts one of the typed errors produced by internal/types
// (or internal/elaborate's reuse of types.NotImplementedError) into a
// Report, attaching the stable code taxonomy of codes.go. phase is either
// "typecheck" or "elaborate": the two passes share the NotImplementedError
// type for the same underlying limitation (a non-variable recursive
// binding), but are reported under different codes, TC005 and PE001
// respectively, so tooling can tell which pass actually rejected the input.
func FromTypeError(err error, phase string) *Report {
	var rep *Report
	switch e := err.(type) {
	case *types.OccursCheckError:
		rep = &Report{
			Schema: "ailang.error/v1", Code: TC001, Phase: phase,
			Message: e.Error(),
			Data:    map[string]any{"var": e.Var, "in": e.In.String()},
		}
	case *types.NoVariableError:
		rep = &Report{
			Schema: "ailang.error/v1", Code: TC002, Phase: phase,
			Message: e.Error(),
			Data:    map[string]any{"name": e.Name},
			Fix:     &Fix{Suggestion: fmt.Sprintf("define %q before this use or check for a typo", e.Name), Confidence: 0.4},
		}
	case *types.UnificationError:
		rep = &Report{
			Schema: "ailang.error/v1", Code: TC003, Phase: phase,
			Message: e.Error(),
			Data:    map[string]any{"left": e.L.String(), "right": e.R.String()},
		}
	case *types.PatternMatchingError:
		rep = &Report{Schema: "ailang.error/v1", Code: TC004, Phase: phase, Message: e.Error()}
	case *types.NotImplementedError:
		code := TC005
		if phase == "elaborate" {
			code = PE001
		}
		rep = &Report{Schema: "ailang.error/v1", Code: code, Phase: phase, Message: e.Error()}
	case *types.EmptyLetError:
		rep = &Report{Schema: "ailang.error/v1", Code: TC006, Phase: phase, Message: e.Error()}
	default:
		rep = NewGeneric(phase, err)
	}
	rep.Message = norm.NFC.String(rep.Message)
	return rep
}

// NewGeneric creates a catch-all report for an error with no dedicated code.
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:  "ailang.error/v1",
		Code:    "RUNTIME",
		Phase:   phase,
		Message: norm.NFC.String(err.Error()),
		Data:    map[string]any{},
	}
}
