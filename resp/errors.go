package resp

import (
	"net/http"

	"github.com/tablekit/tablekit/ecode"
)

func newResponse(status, code int, message string, data ...any) *Exception {
	r := &Exception{Status: status, Code: code, Message: message}
	if len(data) > 0 {
		r.Data = data[0]
	}
	return r
}

// BadRequest indicates a bad request.
func BadRequest(message string, data ...any) *Exception {
	return newResponse(http.StatusBadRequest, ecode.RequestErr, message, data...)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string, data ...any) *Exception {
	return newResponse(http.StatusNotFound, ecode.NothingFound, message, data...)
}

// DBQuery indicates a database query error.
func DBQuery(message string, data ...any) *Exception {
	return newResponse(http.StatusInternalServerError, ecode.ServerErr, message, data...)
}

// InternalServer indicates a server error.
func InternalServer(message string, data ...any) *Exception {
	return newResponse(http.StatusInternalServerError, ecode.ServerErr, message, data...)
}
