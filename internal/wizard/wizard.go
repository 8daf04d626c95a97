// Package wizard implements the single step-form engine shared by every
// multi-step form in the portal. Forms differ only in their step
// descriptor lists and final submit adapter.
package wizard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/mustakbalak/portal/pkg/util"
)

var validate = validator.New()

// Fields is the accumulated form record. Values follow JSON conventions:
// strings, bools, numbers, []string, []Entry.
type Fields map[string]any

// Entry is one record inside a repeated-group section.
type Entry map[string]any

// StepDef declares one step: which fields must be non-empty before Next
// is allowed and any step-local validation beyond presence.
type StepDef struct {
	Name string
	// RequiredFields are top-level scalar fields that must be non-empty.
	RequiredFields []string
	// Rules maps a field to a validator tag (e.g. "email", "min=8")
	// evaluated only when the field is non-empty or required.
	Rules map[string]string
	// RequiredEntryFields maps a repeated-group section to the fields
	// every record in it must fill.
	RequiredEntryFields map[string][]string
	// RequiredLists are []string sections where every element must be
	// non-empty.
	RequiredLists []string
	// Validate runs after presence checks for cross-field step rules.
	Validate func(fields Fields) error
}

// FieldGuard vets a single field value at change time. On error the
// value is rejected and the previous value kept, so an invalid date
// never enters the record.
type FieldGuard func(fields Fields, value any) error

// SubmitFunc performs the single create/update request for the form and
// returns the post-success redirect target.
type SubmitFunc func(ctx context.Context, payload Fields) (redirect string, err error)

// Config parameterizes one form.
type Config struct {
	Name  string
	Steps []StepDef
	// Templates provides the blank record appended by AddEntry.
	Templates map[string]Entry
	// FieldGuards run on SetField / SetEntryField for the named field.
	FieldGuards map[string]FieldGuard
	// CrossValidate runs once at submission over the full record.
	CrossValidate func(fields Fields) error
	// DiffOnly switches submission to a changed-fields-only payload
	// against the seeded snapshot.
	DiffOnly bool
	Submit   SubmitFunc
}

// Wizard drives a linear sequence of field groups to one submission.
type Wizard struct {
	cfg Config

	mu            sync.Mutex
	active        int
	maxVisited    int
	completed     map[int]bool
	fields        Fields
	original      Fields
	validationErr string
	done          bool
}

// New creates a wizard with the given default field values.
func New(cfg Config, defaults Fields) *Wizard {
	if defaults == nil {
		defaults = Fields{}
	}
	return &Wizard{
		cfg:       cfg,
		completed: make(map[int]bool),
		fields:    cloneFields(defaults),
	}
}

// NewSeeded creates an edit-mode wizard pre-filled from a fetched record.
// The seed is snapshotted so submission can diff against it.
func NewSeeded(cfg Config, seed Fields) *Wizard {
	w := New(cfg, seed)
	w.original = cloneFields(seed)
	return w
}

// Name returns the form name.
func (w *Wizard) Name() string { return w.cfg.Name }

// ActiveStep returns the current 0-based step index.
func (w *Wizard) ActiveStep() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// StepCount returns the number of declared steps.
func (w *Wizard) StepCount() int { return len(w.cfg.Steps) }

// StepNames returns the declared step names in order.
func (w *Wizard) StepNames() []string {
	out := make([]string, len(w.cfg.Steps))
	for i, step := range w.cfg.Steps {
		out[i] = step.Name
	}
	return out
}

// CompletedSteps returns the indices marked completed, in order.
func (w *Wizard) CompletedSteps() []int {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]int, 0, len(w.completed))
	for i := 0; i < len(w.cfg.Steps); i++ {
		if w.completed[i] {
			out = append(out, i)
		}
	}
	return out
}

// ValidationError returns the message attached by the last rejected
// transition or submission, empty when none.
func (w *Wizard) ValidationError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.validationErr
}

// Fields returns a copy of the accumulated record.
func (w *Wizard) Fields() Fields {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneFields(w.fields)
}

// Done reports whether the form was successfully submitted.
func (w *Wizard) Done() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

// SetField stores a top-level field value after running its guard.
func (w *Wizard) SetField(name string, value any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if guard, ok := w.cfg.FieldGuards[name]; ok {
		if err := guard(w.fields, value); err != nil {
			w.validationErr = err.Error()
			return apperrors.NewValidationError(err.Error(), map[string]any{"field": name})
		}
	}
	w.fields[name] = value
	w.validationErr = ""
	return nil
}

// AddEntry appends the blank template record to a repeated-group section.
func (w *Wizard) AddEntry(section string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	template, ok := w.cfg.Templates[section]
	if !ok {
		return apperrors.NewValidationError(fmt.Sprintf("unknown section %q", section), nil)
	}
	entries := w.entries(section)
	entries = append(entries, cloneEntry(template))
	w.fields[section] = entries
	return nil
}

// RemoveEntry deletes the record at index. Removing the last remaining
// record is disallowed so every section keeps at least one entry.
func (w *Wizard) RemoveEntry(section string, index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	entries := w.entries(section)
	if index < 0 || index >= len(entries) {
		return apperrors.NewValidationError("entry index out of range", map[string]any{"section": section, "index": index})
	}
	if len(entries) == 1 {
		return apperrors.NewValidationError("at least one entry is required", map[string]any{"section": section})
	}
	w.fields[section] = append(entries[:index], entries[index+1:]...)
	return nil
}

// SetEntryField stores a value at a (recordIndex, fieldName) pair.
func (w *Wizard) SetEntryField(section string, index int, field string, value any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	entries := w.entries(section)
	if index < 0 || index >= len(entries) {
		return apperrors.NewValidationError("entry index out of range", map[string]any{"section": section, "index": index})
	}
	if guard, ok := w.cfg.FieldGuards[section+"."+field]; ok {
		// Guards on entry fields see the entry, not the whole record.
		if err := guard(Fields(entries[index]), value); err != nil {
			w.validationErr = err.Error()
			return apperrors.NewValidationError(err.Error(), map[string]any{"section": section, "index": index, "field": field})
		}
	}
	entries[index][field] = value
	w.validationErr = ""
	return nil
}

// SetListItem stores a value at index within a []string section.
func (w *Wizard) SetListItem(section string, index int, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	list := w.list(section)
	if index < 0 || index >= len(list) {
		return apperrors.NewValidationError("list index out of range", map[string]any{"section": section, "index": index})
	}
	list[index] = value
	w.fields[section] = list
	return nil
}

// AddListItem appends an empty element to a []string section.
func (w *Wizard) AddListItem(section string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	list := w.list(section)
	w.fields[section] = append(list, "")
	return nil
}

// RemoveListItem deletes the element at index; the last one stays.
func (w *Wizard) RemoveListItem(section string, index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	list := w.list(section)
	if index < 0 || index >= len(list) {
		return apperrors.NewValidationError("list index out of range", map[string]any{"section": section, "index": index})
	}
	if len(list) == 1 {
		return apperrors.NewValidationError("at least one entry is required", map[string]any{"section": section})
	}
	w.fields[section] = append(list[:index], list[index+1:]...)
	return nil
}

// Next advances to the following step when the current step's declared
// required fields are present and individually valid. Otherwise the
// transition is rejected and a validation message attached instead.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.validateStep(w.active); err != nil {
		w.validationErr = err.Error()
		return err
	}
	w.completed[w.active] = true
	w.validationErr = ""
	if w.active < len(w.cfg.Steps)-1 {
		w.active++
		if w.active > w.maxVisited {
			w.maxVisited = w.active
		}
	}
	return nil
}

// Back moves to the previous step; always allowed.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active > 0 {
		w.active--
	}
	w.validationErr = ""
	return nil
}

// Goto jumps to a previously visited step. Jumping past the furthest
// visited step is rejected.
func (w *Wizard) Goto(step int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if step < 0 || step >= len(w.cfg.Steps) {
		return apperrors.NewValidationError("step index out of range", map[string]any{"step": step})
	}
	if step > w.maxVisited {
		return apperrors.NewValidationError("cannot jump past the current step", map[string]any{"step": step})
	}
	w.active = step
	w.validationErr = ""
	return nil
}

// Submit validates the final step plus cross-field rules, builds the
// payload (full record, or changed fields only in diff mode) and issues
// exactly one request. Success clears the wizard; failure leaves state
// intact with the server's message attached verbatim.
func (w *Wizard) Submit(ctx context.Context) (string, error) {
	w.mu.Lock()
	if w.active != len(w.cfg.Steps)-1 {
		w.mu.Unlock()
		return "", apperrors.NewValidationError("submission is only allowed from the last step", nil)
	}
	if err := w.validateStep(w.active); err != nil {
		w.validationErr = err.Error()
		w.mu.Unlock()
		return "", err
	}
	if w.cfg.CrossValidate != nil {
		if err := w.cfg.CrossValidate(w.fields); err != nil {
			w.validationErr = err.Error()
			w.mu.Unlock()
			return "", apperrors.NewValidationError(err.Error(), nil)
		}
	}

	payload := cloneFields(w.fields)
	if w.cfg.DiffOnly {
		payload = Diff(w.original, w.fields)
		if len(payload) == 0 {
			msg := "please edit at least one field before saving"
			w.validationErr = msg
			w.mu.Unlock()
			return "", apperrors.NewValidationError(msg, nil)
		}
	}
	w.mu.Unlock()

	redirect, err := w.cfg.Submit(ctx, payload)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.validationErr = submitErrorMessage(err)
		return "", err
	}
	w.completed[w.active] = true
	w.validationErr = ""
	w.done = true
	return redirect, nil
}

func (w *Wizard) validateStep(index int) error {
	step := w.cfg.Steps[index]
	for _, field := range step.RequiredFields {
		if isEmpty(w.fields[field]) {
			return fmt.Errorf("please fill in all required fields in %s", step.Name)
		}
	}
	for field, rule := range step.Rules {
		val, ok := w.fields[field]
		if !ok || isEmpty(val) {
			continue
		}
		if err := validate.Var(val, rule); err != nil {
			return fmt.Errorf("invalid value for %s", field)
		}
	}
	for section, required := range step.RequiredEntryFields {
		for _, entry := range w.entries(section) {
			for _, field := range required {
				if isEmpty(entry[field]) {
					return fmt.Errorf("please fill in all required fields in %s", step.Name)
				}
			}
		}
	}
	for _, section := range step.RequiredLists {
		list := w.list(section)
		if len(list) == 0 {
			return fmt.Errorf("please fill in all required fields in %s", step.Name)
		}
		for _, item := range list {
			if strings.TrimSpace(item) == "" {
				return fmt.Errorf("please fill in all required fields in %s", step.Name)
			}
		}
	}
	if step.Validate != nil {
		if err := step.Validate(w.fields); err != nil {
			return err
		}
	}
	return nil
}

func (w *Wizard) entries(section string) []Entry {
	switch v := w.fields[section].(type) {
	case []Entry:
		return v
	case []any:
		out := make([]Entry, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, Entry(m))
			}
		}
		return out
	default:
		return nil
	}
}

func (w *Wizard) list(section string) []string {
	switch v := w.fields[section].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func submitErrorMessage(err error) string {
	if de := apperrors.ToDomainError(err); de != nil {
		return de.Message
	}
	return "submission failed, please try again"
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []Entry:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}
