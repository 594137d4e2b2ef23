package rendering

import "fmt"

// TemplateError represents an error loading or parsing the HTML templates
type TemplateError struct {
	Name    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	msg := e.Message
	if e.Name != "" {
		msg = fmt.Sprintf("%s (%s)", e.Message, e.Name)
	}
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("template error: %s", msg)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure executing a template for a region or page
type RenderError struct {
	Target  string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s %s: %v", e.Message, e.Target, e.Cause)
	}
	return fmt.Sprintf("render error: %s %s", e.Message, e.Target)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
