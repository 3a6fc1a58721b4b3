package ecode

// Business codes.
const (
	OK               = 0
	RequestErr       = -400
	Unauthorized     = -401
	AccessDenied     = -403
	NothingFound     = -404
	MethodNotAllowed = -405
	Conflict         = -409
	ServerErr        = -500
)

var messages = map[int]string{
	OK:               "success",
	RequestErr:       "invalid request",
	Unauthorized:     "unauthorized",
	AccessDenied:     "access denied",
	NothingFound:     "nothing found",
	MethodNotAllowed: "method not allowed",
	Conflict:         "conflict",
	ServerErr:        "internal server error",
}

// Text returns the message for a code, or the generic failure text for
// unknown codes.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return Failed()
}
