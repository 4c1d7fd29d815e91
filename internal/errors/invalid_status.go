package errors

import "net/http"

var ErrInvalidStatus = &Exception{
	Message:    "status must be one of TODO, DOING, DONE",
	StatusCode: http.StatusUnprocessableEntity,
}
