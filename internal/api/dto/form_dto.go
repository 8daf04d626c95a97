package dto

// StartFormRequest optionally names the record an edit-mode form loads.
type StartFormRequest struct {
	RecordID string `json:"recordId,omitempty"`
}

// SetFieldRequest updates one top-level form field.
type SetFieldRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// EntryFieldRequest updates one field of a repeated-group record.
type EntryFieldRequest struct {
	Index int    `json:"index"`
	Field string `json:"field"`
	Value any    `json:"value"`
}

// ListItemRequest updates one element of a string-list section.
type ListItemRequest struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

// FormStateResponse is the wizard's visible state.
type FormStateResponse struct {
	Form            string         `json:"form"`
	Steps           []string       `json:"steps"`
	ActiveStep      int            `json:"activeStep"`
	CompletedSteps  []int          `json:"completedSteps"`
	Fields          map[string]any `json:"fields"`
	ValidationError string         `json:"validationError,omitempty"`
	Done            bool           `json:"done"`
}

// SubmitFormResponse reports a successful submission. The redirect
// takes effect after delaySeconds; discarding the form first cancels it.
type SubmitFormResponse struct {
	Redirect     string  `json:"redirect"`
	DelaySeconds float64 `json:"delaySeconds"`
}
