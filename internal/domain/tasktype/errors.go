package tasktype

import "errors"

var (
	ErrTaskTypeNotFound   = errors.New("task type not found")
	ErrTaskTypeNameExists = errors.New("task type name already exists")
)
