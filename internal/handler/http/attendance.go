package http

import (
	"net/http"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/handler/http/response"
	"github.com/grocerymart/backoffice-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	MarkStatus(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// checkRequest decodes the optional date/time overrides of a check-in or check-out.
func checkRequest(w http.ResponseWriter, r *http.Request, op string) (attendance.CheckRequest, bool) {
	var req attendance.CheckRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, op, &req) {
		return req, false
	}
	return req, true
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	caller, ok := memberOf(w, r)
	if !ok {
		return
	}
	req, ok := checkRequest(w, r, "CheckIn")
	if !ok {
		return
	}

	record, err := h.attendanceService.CheckIn(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", record)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	caller, ok := memberOf(w, r)
	if !ok {
		return
	}
	req, ok := checkRequest(w, r, "CheckOut")
	if !ok {
		return
	}

	record, err := h.attendanceService.CheckOut(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Checked out successfully"
	if record.PreviousCheckOut != nil {
		message = "Check-out time updated"
	}
	response.SuccessWithMessage(w, message, record)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	caller, ok := memberOf(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := attendance.HistoryFilter{Status: query.Get("status")}

	if raw := query.Get("date"); raw != "" {
		date, valid := validator.IsValidDate(raw)
		if !valid {
			response.HandleError(w, validator.Single("date", "date must be in YYYY-MM-DD format"))
			return
		}
		filter.Date = &date
	}

	var err error
	if filter.Page, err = intQuery(r, "page"); err != nil {
		response.HandleError(w, err)
		return
	}
	if filter.PageSize, err = intQuery(r, "page_size"); err != nil {
		response.HandleError(w, err)
		return
	}

	history, err := h.attendanceService.History(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// MarkStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}

	var req attendance.MarkStatusRequest
	if !decodeJSON(w, r, "MarkStatus", &req) {
		return
	}

	record, err := h.attendanceService.MarkStatus(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance status recorded", record)
}
