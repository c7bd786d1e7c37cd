package httputil

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool { return code >= 200 && code < 300 }

// IsRedirect reports whether code is a 3xx status.
func IsRedirect(code int) bool { return code >= 300 && code < 400 }

// IsClientError reports whether code is a 4xx status.
func IsClientError(code int) bool { return code >= 400 && code < 500 }

// IsServerError reports whether code is a 5xx status.
func IsServerError(code int) bool { return code >= 500 && code < 600 }

// IsError reports whether code is a 4xx or 5xx status.
func IsError(code int) bool { return IsClientError(code) || IsServerError(code) }
