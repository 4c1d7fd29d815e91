package errors

import "net/http"

var ErrUpstreamUnavailable = &Exception{
	Message:    "ai provider is unavailable",
	StatusCode: http.StatusBadGateway,
}
