package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/thenoetrevino/countwave/internal/actions"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Human reports whether the command should print its own styled output
func (f *OutputFormatter) Human() bool {
	return !f.JSON && !f.Quiet
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			fmt.Printf("%d\n", idGetter.GetID())
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// PrintIDs writes one ID per line, for quiet list output
func PrintIDs[T interface{ GetID() int }](items []T) {
	for _, item := range items {
		fmt.Printf("%d\n", item.GetID())
	}
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	return f.writeError(code, message, suggestion, nil)
}

// Fail reports the error and returns it wrapped with exitCode, ready to be
// returned from RunE.
func (f *OutputFormatter) Fail(exitCode int, code, message string) error {
	return f.FailWithSuggestion(exitCode, code, message, "")
}

// FailWithSuggestion is Fail with a hint for the user
func (f *OutputFormatter) FailWithSuggestion(exitCode int, code, message, suggestion string) error {
	if err := f.ErrorWithSuggestion(code, message, suggestion); err != nil {
		return err
	}
	return &exitError{code: exitCode, err: errors.New(message), reported: true}
}

// FailResult reports a failed action and picks the exit code from its message
func (f *OutputFormatter) FailResult(res actions.Outcome) error {
	code, exitCode := classify(res.Message())
	if err := f.writeError(code, res.Message(), "", res.Fields()); err != nil {
		return err
	}
	return &exitError{code: exitCode, err: errors.New(res.Message()), reported: true}
}

func classify(msg string) (string, int) {
	switch msg {
	case actions.MsgUnauthorized, actions.MsgNotFound:
		// a workspace owned by someone else looks missing from here
		return "NOT_FOUND", ExitNotFound
	case actions.MsgInvalidInput, actions.MsgAlreadyFirst, actions.MsgAlreadyLast:
		return "VALIDATION_ERROR", ExitValidation
	default:
		return "ACTION_FAILED", ExitError
	}
}

func (f *OutputFormatter) writeError(code, message, suggestion string, fields map[string][]string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		if len(fields) > 0 {
			errData["fieldErrors"] = fields
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintf(os.Stderr, "❌ Error: %s\n", message)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, msg := range fields[name] {
			fmt.Fprintf(os.Stderr, "   %s: %s\n", name, msg)
		}
	}
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	fmt.Printf("%+v\n", data)
	return nil
}
