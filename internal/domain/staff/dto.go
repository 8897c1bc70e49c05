package staff

import (
	"strings"

	"github.com/grocerymart/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RegisterStaffRequest struct {
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	PhoneNum           string          `json:"phone_num"`
	Password           string          `json:"password"`
	Role               string          `json:"role"`
	AuthorizationLevel *string         `json:"authorization_level"`
	Salary             decimal.Decimal `json:"salary"`
}

func (r *RegisterStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !validator.IsValidEmail(strings.TrimSpace(r.Email)) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}
	if !validator.IsValidPhoneNumber(r.PhoneNum) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_num",
			Message: "phone_num must be a Malaysian mobile number",
		})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}
	if !validator.IsInSlice(r.Role, RoleValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: " + strings.Join(RoleValues, ", "),
		})
	}
	if r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StaffResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	PhoneNum           string          `json:"phone_num"`
	Role               Role            `json:"role"`
	AuthorizationLevel *string         `json:"authorization_level,omitempty"`
	Salary             decimal.Decimal `json:"salary"`
	ManagerID          *string         `json:"manager_id,omitempty"`
}

func NewStaffResponse(s Staff) StaffResponse {
	return StaffResponse{
		ID:                 s.ID,
		Name:               s.Name,
		Email:              s.Email,
		PhoneNum:           s.PhoneNum,
		Role:               s.Role,
		AuthorizationLevel: s.AuthorizationLevel,
		Salary:             s.Salary,
		ManagerID:          s.ManagerID,
	}
}
