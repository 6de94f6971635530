package net

import (
	"net/http"

	perr "eltranslit/internal/platform/errors"
)

// Wire is the envelope middleware writes before a handler runs
// It matches the JSON shape of the http package Envelope
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
}

// Error builds the envelope for a rejected request; a nil err reads as 200
func Error(err error, reqID string) (int, Wire) {
	status := http.StatusOK
	var w perr.Wire
	if err != nil {
		status = perr.HTTPStatus(err)
		w = perr.WireFrom(err)
	}
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  reqID,
	}
}
