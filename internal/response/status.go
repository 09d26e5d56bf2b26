package response

// StatusCode represents HTTP status codes
type StatusCode int

const (
	StatusOK                  StatusCode = 200
	StatusNoContent           StatusCode = 204
	StatusNotModified         StatusCode = 304
	StatusBadRequest          StatusCode = 400
	StatusNotFound            StatusCode = 404
	StatusMethodNotAllowed    StatusCode = 405
	StatusRequestTimeout      StatusCode = 408
	StatusRequestURITooLong   StatusCode = 414
	StatusHeaderTooLarge      StatusCode = 431
	StatusInternalServerError StatusCode = 500
	StatusNotImplemented      StatusCode = 501
	StatusServiceUnavailable  StatusCode = 503
)

var statusText = map[StatusCode]string{
	StatusOK:                  "OK",
	StatusNoContent:           "No Content",
	StatusNotModified:         "Not Modified",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "Not Found",
	StatusMethodNotAllowed:    "Method Not Allowed",
	StatusRequestTimeout:      "Request Timeout",
	StatusRequestURITooLong:   "URI Too Long",
	StatusHeaderTooLarge:      "Request Header Fields Too Large",
	StatusInternalServerError: "Internal Server Error",
	StatusNotImplemented:      "Not Implemented",
	StatusServiceUnavailable:  "Service Unavailable",
}

// StatusText returns the reason phrase for a status code
func StatusText(code StatusCode) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return "Unknown"
}

// IsSuccess returns true for 2xx status codes
func (code StatusCode) IsSuccess() bool {
	return code >= 200 && code < 300
}

// IsClientError returns true for 4xx status codes
func (code StatusCode) IsClientError() bool {
	return code >= 400 && code < 500
}

// IsServerError returns true for 5xx status codes
func (code StatusCode) IsServerError() bool {
	return code >= 500 && code < 600
}
