package staff

import "errors"

var (
	ErrStaffNotFound         = errors.New("staff not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrUnknownRole           = errors.New("unknown role")
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrStaffAccessRequired   = errors.New("staff access required")
)
