// Package render assembles the fixed-format video description from the
// canonical names, the content bundle and the raw metadata.
package render

import "fmt"

// TemplateError represents an error parsing or executing the description template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
