package http

import (
	"net/http"
	"strconv"

	"github.com/grocerymart/backoffice-go/internal/domain/tasktype"
	"github.com/grocerymart/backoffice-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TaskTypeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Add(w http.ResponseWriter, r *http.Request)
	Toggle(w http.ResponseWriter, r *http.Request)
}

type TaskTypeHandlerImpl struct {
	taskTypeService tasktype.TaskTypeService
}

// List implements TaskTypeHandler.
func (h *TaskTypeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	taskTypes, err := h.taskTypeService.List(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, taskTypes)
}

// Add implements TaskTypeHandler.
func (h *TaskTypeHandlerImpl) Add(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}

	var req tasktype.CreateTaskTypeRequest
	if !decodeJSON(w, r, "AddTaskType", &req) {
		return
	}

	created, err := h.taskTypeService.Add(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task type created successfully", created)
}

// Toggle implements TaskTypeHandler.
func (h *TaskTypeHandlerImpl) Toggle(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid task type ID", nil)
		return
	}

	updated, err := h.taskTypeService.Toggle(r.Context(), caller, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task type updated successfully", updated)
}

func NewTaskTypeHandler(taskTypeService tasktype.TaskTypeService) TaskTypeHandler {
	return &TaskTypeHandlerImpl{taskTypeService: taskTypeService}
}
