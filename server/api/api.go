// Package api provides HTTP API endpoints for the brickgrammar server.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dekarrin/brickgrammar/server/dao"
	"github.com/dekarrin/brickgrammar/server/result"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PathPrefix is the prefix of all paths in the API. Routers should mount a
// sub-router that routes all requests to the API at this path.
const PathPrefix = "/api/v1"

// API holds parameters for endpoints needed to run. Create one and assign
// the result of its HTTP* methods as handlers to a router.
type API struct {
	// DB is the persistence layer backing the API.
	DB dao.Store

	// Secret is the secret used to sign and verify JWT tokens.
	Secret []byte

	// AdminPassphraseHash is the bcrypt hash of the configured admin
	// passphrase, checked at login time.
	AdminPassphraseHash []byte

	// UnauthDelay is the amount of time a request pauses before responding
	// with an HTTP-401, HTTP-403, or HTTP-500, to deprioritize such requests.
	UnauthDelay time.Duration
}

// EndpointFunc performs the logic of a single API endpoint and returns the
// Result to send back to the caller.
type EndpointFunc func(req *http.Request) result.Result

// Endpoint wraps an EndpointFunc into an http.HandlerFunc: it recovers from
// panics, writes and logs the Result, and applies the unauth delay.
func (api API) Endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req, api.UnauthDelay)

		r := ep(req)

		if r.IsUnauthLike() {
			time.Sleep(api.UnauthDelay)
		}

		r.WriteResponse(w)
		r.Log(req)
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request, unauthDelay time.Duration) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w)
		r.Log(req)
	}
}

// requireIDParam gets the "id" URL param and parses it as a UUID. It panics
// if the key is not there or is not parsable, which is turned into an
// HTTP-500 by the recover in Endpoint; routes that use this must only be
// reachable when chi's router guarantees the param is present.
func requireIDParam(r *http.Request) uuid.UUID {
	valStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(valStr)
	if err != nil {
		panic(fmt.Sprintf("id param: %s", err.Error()))
	}
	return id
}

// parseJSON decodes the JSON body of req into v, which must be a pointer.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if strings.ToLower(contentType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return fmt.Errorf("malformed JSON in request: %w", err)
	}
	return nil
}
