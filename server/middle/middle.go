// Package middle contains middleware for use with the brickgrammar server.
package middle

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/dekarrin/brickgrammar/server/result"
	"github.com/dekarrin/brickgrammar/server/token"
)

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// Middleware is a function that takes a handler and returns a new handler
// which wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by an AuthHandler.
type AuthKey int64

const (
	AuthLoggedIn AuthKey = iota
)

// AuthHandler is middleware that accepts a request, extracts the bearer
// token, and validates it against the server's configured secret. There is
// no per-user lookup; a valid token simply proves the caller is the
// administrative principal.
//
// AuthLoggedIn is added to the request context before the request is passed
// to the next step in the chain (only meaningful when auth is optional; for
// required auth, a missing/invalid token results in an HTTP error being
// returned before the request reaches the next handler).
type AuthHandler struct {
	secret        []byte
	required      bool
	unauthedDelay time.Duration
	next          http.Handler
}

func (ah *AuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var loggedIn bool

	tok, err := token.Get(req)
	if err != nil {
		if ah.required {
			r := result.Unauthorized("", err.Error())
			time.Sleep(ah.unauthedDelay)
			r.WriteResponse(w)
			r.Log(req)
			return
		}
	} else if err := token.Validate(tok, ah.secret); err != nil {
		if ah.required {
			r := result.Unauthorized("", err.Error())
			time.Sleep(ah.unauthedDelay)
			r.WriteResponse(w)
			r.Log(req)
			return
		}
	} else {
		loggedIn = true
	}

	ctx := context.WithValue(req.Context(), AuthLoggedIn, loggedIn)
	req = req.WithContext(ctx)
	ah.next.ServeHTTP(w, req)
}

// RequireAuth returns middleware that rejects requests without a valid
// bearer token, signed with secret, with an HTTP-401.
func RequireAuth(secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			secret:        secret,
			unauthedDelay: unauthDelay,
			required:      true,
			next:          next,
		}
	}
}

// OptionalAuth returns middleware that validates a bearer token if present
// but allows the request through regardless, recording the outcome in
// AuthLoggedIn.
func OptionalAuth(secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			secret:        secret,
			unauthedDelay: unauthDelay,
			required:      false,
			next:          next,
		}
	}
}

// DontPanic returns a Middleware that performs a panic check as it exits. If
// the wrapped handler panics, it writes an HTTP-500 with a generic message
// to the client and logs the panic and stack trace.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w)
		r.Log(req)
		return true
	}
	return false
}
