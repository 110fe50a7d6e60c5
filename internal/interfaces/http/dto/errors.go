package dto

import "net/http"

// statusByCode maps domain error codes to HTTP status codes. Codes not listed
// map to 400.
var statusByCode = map[string]int{
	"NOT_FOUND":               http.StatusNotFound,
	"ALREADY_EXISTS":          http.StatusConflict,
	"UNAUTHORIZED":            http.StatusUnauthorized,
	"INVALID_CREDENTIALS":     http.StatusUnauthorized,
	"INVALID_TOKEN":           http.StatusUnauthorized,
	"ACCOUNT_DISABLED":        http.StatusForbidden,
	"FORBIDDEN":               http.StatusForbidden,
	"INVALID_STATE":           http.StatusConflict,
	"NOT_DRAFT":               http.StatusConflict,
	"NOT_ISSUED":              http.StatusConflict,
	"COMPANY_SUSPENDED":       http.StatusForbidden,
	"DEPENDENCY_UNAVAILABLE":  http.StatusServiceUnavailable,
	"VALIDATION_ERROR":        http.StatusBadRequest,
	"SCENARIO_NOT_APPLICABLE": http.StatusUnprocessableEntity,
	"INVALID_COMBINATION":     http.StatusUnprocessableEntity,
	"INVALID_SCENARIO_CODE":   http.StatusBadRequest,
	"INTERNAL_ERROR":          http.StatusInternalServerError,
}

// StatusForCode returns the HTTP status for a domain error code
func StatusForCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
