package http

import (
	"net/http"

	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/handler/http/response"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/go-chi/chi/v5"
)

// MyTaskHandler serves staff members their own schedule and task progress.
type MyTaskHandler interface {
	MySchedule(w http.ResponseWriter, r *http.Request)
	MyDayTask(w http.ResponseWriter, r *http.Request)
	StartTask(w http.ResponseWriter, r *http.Request)
	CompleteTask(w http.ResponseWriter, r *http.Request)
}

type MyTaskHandlerImpl struct {
	allocationService roster.AllocationService
	clock             clock.Clock
}

// MySchedule implements MyTaskHandler.
func (h *MyTaskHandlerImpl) MySchedule(w http.ResponseWriter, r *http.Request) {
	caller, ok := memberOf(w, r)
	if !ok {
		return
	}
	year, month, ok := monthQuery(w, r, h.clock)
	if !ok {
		return
	}

	schedule, err := h.allocationService.MySchedule(r.Context(), caller, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedule)
}

// MyDayTask implements MyTaskHandler.
func (h *MyTaskHandlerImpl) MyDayTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := memberOf(w, r)
	if !ok {
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	task, err := h.allocationService.MyDayTask(r.Context(), caller, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, task)
}

// StartTask implements MyTaskHandler.
func (h *MyTaskHandlerImpl) StartTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := memberOf(w, r)
	if !ok {
		return
	}

	task, err := h.allocationService.StartTask(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task started", task)
}

// CompleteTask implements MyTaskHandler.
func (h *MyTaskHandlerImpl) CompleteTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := memberOf(w, r)
	if !ok {
		return
	}

	// The body is optional; a missing comment keeps the existing notes.
	var req roster.CompleteTaskRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, "CompleteTask", &req) {
		return
	}

	task, err := h.allocationService.CompleteTask(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task completed", task)
}

func NewMyTaskHandler(allocationService roster.AllocationService, clk clock.Clock) MyTaskHandler {
	return &MyTaskHandlerImpl{allocationService: allocationService, clock: clk}
}
