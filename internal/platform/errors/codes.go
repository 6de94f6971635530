package errors

import "net/http"

// ErrorCode classifies an error for callers and for the HTTP layer.
// Values travel in API envelopes, so the order is fixed
type ErrorCode uint16

const (
	ErrorCodeUnknown         ErrorCode = iota // anything unclassified
	ErrorCodePanic                            // recovered by middleware
	ErrorCodeUnavailable                      // unsupported rule construct, dead backend
	ErrorCodeConflict                         // table key mapped to two values
	ErrorCodeUnauthorized                     // missing or unknown bearer token
	ErrorCodeForbidden                        // authenticated but not allowed
	ErrorCodeInvalidArgument                  // bad parameter, e.g. a rule path that is a directory
	ErrorCodeValidation                       // malformed tables, LDML or request bodies
	ErrorCodeJSON                             // request body that does not decode
	ErrorCodeNotFound                         // missing file, transform or row
	ErrorCodeDuplicateKey                     // language or table declared twice
	ErrorCodeDB                               // storage failure
)

var codeInfo = map[ErrorCode]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeConflict:        {"conflict", http.StatusConflict},
	ErrorCodeUnauthorized:    {"unauthorized", http.StatusUnauthorized},
	ErrorCodeForbidden:       {"forbidden", http.StatusForbidden},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"json", http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound},
	ErrorCodeDuplicateKey:    {"duplicate_key", http.StatusConflict},
	ErrorCodeDB:              {"db", http.StatusInternalServerError},
}

func (c ErrorCode) String() string {
	if i, ok := codeInfo[c]; ok {
		return i.name
	}
	return "unknown"
}

// HTTPStatusCode maps a code onto the status the API answers with;
// codes outside the table are 500
func HTTPStatusCode(c ErrorCode) int {
	if i, ok := codeInfo[c]; ok {
		return i.status
	}
	return http.StatusInternalServerError
}
