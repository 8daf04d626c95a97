package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mustakbalak/portal/internal/api/dto"
	"github.com/mustakbalak/portal/internal/forms"
	"github.com/mustakbalak/portal/internal/guard"
	"github.com/mustakbalak/portal/internal/wizard"
	apperrors "github.com/mustakbalak/portal/pkg/util"
)

// FormsHandler drives the step-form lifecycle over HTTP.
type FormsHandler struct {
	manager       *forms.Manager
	navigateDelay time.Duration
}

// NewFormsHandler constructs handler.
func NewFormsHandler(manager *forms.Manager, navigateDelay time.Duration) *FormsHandler {
	return &FormsHandler{manager: manager, navigateDelay: navigateDelay}
}

// Start POST /portal/forms/:form/start.
func (h *FormsHandler) Start(c *fiber.Ctx) error {
	var req dto.StartFormRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	w, err := h.manager.Start(c.UserContext(), guard.SessionID(c), c.Params("form"), req.RecordID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(formState(w))
}

// State GET /portal/forms/:form.
func (h *FormsHandler) State(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	return c.JSON(formState(w))
}

// SetField PUT /portal/forms/:form/fields.
func (h *FormsHandler) SetField(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	var req dto.SetFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Field == "" {
		return apperrors.NewValidationError("field required", nil)
	}
	if err := w.SetField(req.Field, req.Value); err != nil {
		return err
	}
	return c.JSON(formState(w))
}

// Next POST /portal/forms/:form/next.
func (h *FormsHandler) Next(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	if err := w.Next(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return c.JSON(formState(w))
}

// Back POST /portal/forms/:form/back.
func (h *FormsHandler) Back(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	if err := w.Back(); err != nil {
		return err
	}
	return c.JSON(formState(w))
}

// Goto POST /portal/forms/:form/goto/:step.
func (h *FormsHandler) Goto(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	step, err := c.ParamsInt("step")
	if err != nil {
		return apperrors.NewValidationError("invalid step", nil)
	}
	if err := w.Goto(step); err != nil {
		return err
	}
	return c.JSON(formState(w))
}

// AddEntry POST /portal/forms/:form/entries/:section.
func (h *FormsHandler) AddEntry(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	if err := w.AddEntry(c.Params("section")); err != nil {
		return err
	}
	return c.JSON(formState(w))
}

// RemoveEntry DELETE /portal/forms/:form/entries/:section/:index.
func (h *FormsHandler) RemoveEntry(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return apperrors.NewValidationError("invalid index", nil)
	}
	if err := w.RemoveEntry(c.Params("section"), index); err != nil {
		return err
	}
	return c.JSON(formState(w))
}

// SetEntryField PUT /portal/forms/:form/entries/:section.
func (h *FormsHandler) SetEntryField(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	var req dto.EntryFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Field == "" {
		return apperrors.NewValidationError("field required", nil)
	}
	if err := w.SetEntryField(c.Params("section"), req.Index, req.Field, req.Value); err != nil {
		return err
	}
	return c.JSON(formState(w))
}

// AddListItem POST /portal/forms/:form/items/:section.
func (h *FormsHandler) AddListItem(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	if err := w.AddListItem(c.Params("section")); err != nil {
		return err
	}
	return c.JSON(formState(w))
}

// SetListItem PUT /portal/forms/:form/items/:section.
func (h *FormsHandler) SetListItem(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	var req dto.ListItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := w.SetListItem(c.Params("section"), req.Index, req.Value); err != nil {
		return err
	}
	return c.JSON(formState(w))
}

// RemoveListItem DELETE /portal/forms/:form/items/:section/:index.
func (h *FormsHandler) RemoveListItem(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return apperrors.NewValidationError("invalid index", nil)
	}
	if err := w.RemoveListItem(c.Params("section"), index); err != nil {
		return err
	}
	return c.JSON(formState(w))
}

// Submit POST /portal/forms/:form/submit.
func (h *FormsHandler) Submit(c *fiber.Ctx) error {
	redirect, err := h.manager.Submit(c.UserContext(), guard.SessionID(c), c.Params("form"))
	if err != nil {
		return err
	}
	return c.JSON(dto.SubmitFormResponse{
		Redirect:     redirect,
		DelaySeconds: h.navigateDelay.Seconds(),
	})
}

// Discard DELETE /portal/forms/:form.
func (h *FormsHandler) Discard(c *fiber.Ctx) error {
	h.manager.Discard(guard.SessionID(c), c.Params("form"))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FormsHandler) wizard(c *fiber.Ctx) (*wizard.Wizard, error) {
	return h.manager.Get(guard.SessionID(c), c.Params("form"))
}

func formState(w *wizard.Wizard) dto.FormStateResponse {
	return dto.FormStateResponse{
		Form:            w.Name(),
		Steps:           w.StepNames(),
		ActiveStep:      w.ActiveStep(),
		CompletedSteps:  w.CompletedSteps(),
		Fields:          w.Fields(),
		ValidationError: w.ValidationError(),
		Done:            w.Done(),
	}
}
