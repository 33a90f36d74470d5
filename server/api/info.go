package api

import (
	"net/http"

	"github.com/dekarrin/brickgrammar/internal/version"
	"github.com/dekarrin/brickgrammar/server/middle"
	"github.com/dekarrin/brickgrammar/server/result"
)

// HTTPGetInfo returns a HandlerFunc that reports version information on the
// API and server.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return api.Endpoint(api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	loggedIn, _ := req.Context().Value(middle.AuthLoggedIn).(bool)

	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Brickgrammar = version.Current

	callerStr := "unauthed client"
	if loggedIn {
		callerStr = "admin"
	}
	return result.OK(resp, "%s got API info", callerStr)
}
