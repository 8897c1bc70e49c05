package http

import (
	"net/http"

	"github.com/grocerymart/backoffice-go/internal/domain/payroll"
	"github.com/grocerymart/backoffice-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	PayRun(w http.ResponseWriter, r *http.Request)
	PayDetails(w http.ResponseWriter, r *http.Request)
	ListExpenses(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// periodQuery reads month and year; zero values fall back to the current month in the service.
func periodQuery(w http.ResponseWriter, r *http.Request) (payroll.Period, bool) {
	month, err := intQuery(r, "month")
	if err != nil {
		response.HandleError(w, err)
		return payroll.Period{}, false
	}
	year, err := intQuery(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return payroll.Period{}, false
	}
	return payroll.Period{Month: month, Year: year}, true
}

func (h *payrollHandlerImpl) PayRun(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}
	period, ok := periodQuery(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.PayRun(r.Context(), caller, period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) PayDetails(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}
	period, ok := periodQuery(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.PayDetails(r.Context(), caller, chi.URLParam(r, "staffId"), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListExpenses(w http.ResponseWriter, r *http.Request) {
	caller, ok := managerOf(w, r)
	if !ok {
		return
	}
	period, ok := periodQuery(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.ListExpenses(r.Context(), caller, payroll.ExpenseFilter{
		Period: period,
		Type:   r.URL.Query().Get("type"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
