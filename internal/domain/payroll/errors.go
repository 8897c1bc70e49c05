package payroll

import "errors"

var (
	ErrInvalidPeriod  = errors.New("invalid payroll period")
	ErrPayRunConflict = errors.New("salary expenses were recorded concurrently, please retry the pay run")
)
