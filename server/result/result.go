// Package result contains the results used to write out brickgrammar API
// responses.
package result

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// OK returns a Result containing an HTTP-200 along with a more detailed
// message (if desired; if none is provided it defaults to a generic one)
// that is not displayed to the caller.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	return response(http.StatusOK, respObj, "OK", internalMsg...)
}

// NoContent returns a Result containing an HTTP-204.
func NoContent(internalMsg ...interface{}) Result {
	return response(http.StatusNoContent, nil, "no content", internalMsg...)
}

// Created returns a Result containing an HTTP-201.
func Created(respObj interface{}, internalMsg ...interface{}) Result {
	return response(http.StatusCreated, respObj, "created", internalMsg...)
}

// Conflict returns a Result containing an HTTP-409.
func Conflict(userMsg string, internalMsg ...interface{}) Result {
	return errResult(http.StatusConflict, userMsg, "conflict", internalMsg...)
}

// BadRequest returns a Result containing an HTTP-400.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	return errResult(http.StatusBadRequest, userMsg, "bad request", internalMsg...)
}

// NotFound returns a Result containing an HTTP-404.
func NotFound(internalMsg ...interface{}) Result {
	return errResult(http.StatusNotFound, "The requested resource was not found", "not found", internalMsg...)
}

// Forbidden returns a Result containing an HTTP-403.
func Forbidden(internalMsg ...interface{}) Result {
	return errResult(http.StatusForbidden, "You don't have permission to do that", "forbidden", internalMsg...)
}

// Unauthorized returns a Result containing an HTTP-401 along with the
// WWW-Authenticate header.
func Unauthorized(userMsg string, internalMsg ...interface{}) Result {
	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}
	return errResult(http.StatusUnauthorized, userMsg, "unauthorized", internalMsg...).
		WithHeader("WWW-Authenticate", `Bearer realm="brickgrammar server"`)
}

// InternalServerError returns a Result containing an HTTP-500.
func InternalServerError(internalMsg ...interface{}) Result {
	return errResult(http.StatusInternalServerError, "An internal server error occurred", "internal server error", internalMsg...)
}

// TextErr is like an error Result but avoids JSON encoding and writes the
// output as plain text.
func TextErr(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		isJSON:      false,
		isErr:       true,
		status:      status,
		internalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        userMsg,
	}
}

func response(status int, respObj interface{}, defaultMsg string, internalMsg ...interface{}) Result {
	msg, args := splitMsg(defaultMsg, internalMsg)
	return Result{
		isJSON:      true,
		status:      status,
		internalMsg: fmt.Sprintf(msg, args...),
		resp:        respObj,
	}
}

func errResult(status int, userMsg, defaultMsg string, internalMsg ...interface{}) Result {
	msg, args := splitMsg(defaultMsg, internalMsg)
	return Result{
		isJSON:      true,
		isErr:       true,
		status:      status,
		internalMsg: fmt.Sprintf(msg, args...),
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

func splitMsg(defaultMsg string, internalMsg []interface{}) (string, []interface{}) {
	if len(internalMsg) >= 1 {
		return internalMsg[0].(string), internalMsg[1:]
	}
	return defaultMsg, nil
}

// Result is a pending HTTP response, carrying both what will be sent to the
// caller and a message for the server's own log.
type Result struct {
	status      int
	isErr       bool
	isJSON      bool
	internalMsg string

	resp interface{}
	hdrs [][2]string
}

// IsUnauthLike reports whether r represents an HTTP-401, HTTP-403, or
// HTTP-500, the statuses that warrant an anti-flood delay before responding.
func (r Result) IsUnauthLike() bool {
	return r.status == http.StatusUnauthorized || r.status == http.StatusForbidden || r.status == http.StatusInternalServerError
}

func (r Result) WithHeader(name, val string) Result {
	cp := r
	cp.hdrs = append(append([][2]string{}, r.hdrs...), [2]string{name, val})
	return cp
}

// WriteResponse marshals and writes r to w. It panics if r was never
// populated via one of the constructor functions.
func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.status == 0 {
		panic("result not populated")
	}

	var respBytes []byte
	if r.isJSON {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if r.status != http.StatusNoContent {
			js, err := json.Marshal(r.resp)
			if err != nil {
				panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
			}
			respBytes = js
		}
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if r.status != http.StatusNoContent {
			respBytes = []byte(fmt.Sprintf("%v", r.resp))
		}
	}

	for _, h := range r.hdrs {
		w.Header().Set(h[0], h[1])
	}

	w.WriteHeader(r.status)
	if r.status != http.StatusNoContent {
		w.Write(respBytes)
	}
}

// Log writes a one-line record of r's outcome for req to the standard
// logger.
func (r Result) Log(req *http.Request) {
	level := "INFO "
	if r.isErr {
		level = "ERROR"
	}

	remoteIP := strings.SplitN(req.RemoteAddr, ":", 2)[0]
	log.Printf("%s %s %s %s: HTTP-%d %s", level, remoteIP, req.Method, req.URL.Path, r.status, r.internalMsg)
}
