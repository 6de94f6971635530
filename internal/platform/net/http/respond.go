// Package http holds the API's response envelope, handler adapters, router and server
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "eltranslit/internal/platform/errors"
	pnet "eltranslit/internal/platform/net"
)

// Envelope wraps every API body. Data is set on success; Code, Error and
// Field on failure
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return-style handlers hand back. A zero Status means 200;
// an error Body overrides Status with the error's mapped code
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK wraps data in a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error wraps err; the status comes from its code
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, pnet.RequestID(r.Context()))
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, reqID string) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	env := Envelope{StatusCode: resp.Status, RequestID: reqID, Data: resp.Body}
	if env.StatusCode == 0 {
		env.StatusCode = stdhttp.StatusOK
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		wire := perr.WireFrom(err)
		env.StatusCode = perr.HTTPStatus(err)
		env.Code, env.Error, env.Field, env.Data = wire.Code, wire.Message, wire.Field, nil
	}
	if env.StatusCode == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}
	env.Status = stdhttp.StatusText(env.StatusCode)
	JSON(w, env.StatusCode, env)
}
