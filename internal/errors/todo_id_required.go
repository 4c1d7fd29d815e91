package errors

import "net/http"

var ErrTodoIDRequired = &Exception{
	Message:    "todo id is required",
	StatusCode: http.StatusBadRequest,
}
