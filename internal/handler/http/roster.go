package http

import (
	"net/http"

	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/handler/http/response"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/go-chi/chi/v5"
)

type RosterHandler interface {
	ListTemplates(w http.ResponseWriter, r *http.Request)
	GetTemplate(w http.ResponseWriter, r *http.Request)
	CreateTemplate(w http.ResponseWriter, r *http.Request)
	EditTemplate(w http.ResponseWriter, r *http.Request)
	DeleteTemplate(w http.ResponseWriter, r *http.Request)

	Calendar(w http.ResponseWriter, r *http.Request)
	DayDetails(w http.ResponseWriter, r *http.Request)
	DayManagement(w http.ResponseWriter, r *http.Request)
	ApplyTemplate(w http.ResponseWriter, r *http.Request)
	AcknowledgeDay(w http.ResponseWriter, r *http.Request)
	DeleteSchedule(w http.ResponseWriter, r *http.Request)

	AddStaffToDay(w http.ResponseWriter, r *http.Request)
	DeleteAllocation(w http.ResponseWriter, r *http.Request)
	EditTaskName(w http.ResponseWriter, r *http.Request)
	ReassignTask(w http.ResponseWriter, r *http.Request)
}

type RosterHandlerImpl struct {
	rosterService roster.RosterService
	clock         clock.Clock
}

// ListTemplates implements RosterHandler.
func (h *RosterHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}

	templates, err := h.rosterService.ListTemplates(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, templates)
}

// GetTemplate implements RosterHandler.
func (h *RosterHandlerImpl) GetTemplate(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}

	template, err := h.rosterService.GetTemplate(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, template)
}

// CreateTemplate implements RosterHandler.
func (h *RosterHandlerImpl) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}

	var req roster.TemplateRequest
	if !decodeJSON(w, r, "CreateTemplate", &req) {
		return
	}

	template, err := h.rosterService.CreateTemplate(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Template created successfully", template)
}

// EditTemplate implements RosterHandler.
func (h *RosterHandlerImpl) EditTemplate(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}

	var req roster.TemplateRequest
	if !decodeJSON(w, r, "EditTemplate", &req) {
		return
	}

	template, err := h.rosterService.EditTemplate(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Template updated successfully", template)
}

// DeleteTemplate implements RosterHandler.
func (h *RosterHandlerImpl) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}

	if err := h.rosterService.DeleteTemplate(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Template deleted successfully", nil)
}

// Calendar implements RosterHandler.
func (h *RosterHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}
	year, month, ok := monthQuery(w, r, h.clock)
	if !ok {
		return
	}

	calendar, err := h.rosterService.Calendar(r.Context(), caller, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, calendar)
}

// DayDetails implements RosterHandler.
func (h *RosterHandlerImpl) DayDetails(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	details, err := h.rosterService.DayDetails(r.Context(), caller, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, details)
}

// DayManagement implements RosterHandler.
func (h *RosterHandlerImpl) DayManagement(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	management, err := h.rosterService.DayManagement(r.Context(), caller, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, management)
}

// ApplyTemplate implements RosterHandler.
func (h *RosterHandlerImpl) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req roster.ApplyTemplateRequest
	if !decodeJSON(w, r, "ApplyTemplate", &req) {
		return
	}

	applied, err := h.rosterService.ApplyTemplate(r.Context(), caller, date, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.RosterOutcome(w, http.StatusCreated, applied.Outcome, "Template applied successfully", applied)
}

// AcknowledgeDay implements RosterHandler.
func (h *RosterHandlerImpl) AcknowledgeDay(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	if err := h.rosterService.AcknowledgeDay(r.Context(), caller, date); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day acknowledged", nil)
}

// DeleteSchedule implements RosterHandler.
func (h *RosterHandlerImpl) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	if err := h.rosterService.DeleteSchedule(r.Context(), caller, date); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule deleted successfully", nil)
}

// AddStaffToDay implements RosterHandler.
func (h *RosterHandlerImpl) AddStaffToDay(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req roster.AddStaffRequest
	if !decodeJSON(w, r, "AddStaffToDay", &req) {
		return
	}

	edit, err := h.rosterService.AddStaffToDay(r.Context(), caller, date, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.RosterOutcome(w, http.StatusCreated, edit.Outcome, "Staff added successfully", edit)
}

// DeleteAllocation implements RosterHandler.
func (h *RosterHandlerImpl) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}

	edit, err := h.rosterService.DeleteStaffAllocation(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.RosterOutcome(w, http.StatusOK, edit.Outcome, "Allocation removed successfully", edit)
}

// EditTaskName implements RosterHandler.
func (h *RosterHandlerImpl) EditTaskName(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}

	var req roster.EditTaskNameRequest
	if !decodeJSON(w, r, "EditTaskName", &req) {
		return
	}

	edit, err := h.rosterService.EditTaskName(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.RosterOutcome(w, http.StatusOK, edit.Outcome, "Task renamed successfully", edit)
}

// ReassignTask implements RosterHandler.
func (h *RosterHandlerImpl) ReassignTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}

	var req roster.ReassignRequest
	if !decodeJSON(w, r, "ReassignTask", &req) {
		return
	}

	edit, err := h.rosterService.ReassignTask(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.RosterOutcome(w, http.StatusOK, edit.Outcome, "Task reassigned successfully", edit)
}

func NewRosterHandler(rosterService roster.RosterService, clk clock.Clock) RosterHandler {
	return &RosterHandlerImpl{rosterService: rosterService, clock: clk}
}
