package api

import (
	"net/http"

	"github.com/dekarrin/brickgrammar/server/result"
	"github.com/dekarrin/brickgrammar/server/token"
	"golang.org/x/crypto/bcrypt"
)

// HTTPCreateLogin returns a HandlerFunc that checks the admin passphrase and
// returns a signed JWT if it is correct.
func (api API) HTTPCreateLogin() http.HandlerFunc {
	return api.Endpoint(api.epCreateLogin)
}

func (api API) epCreateLogin(req *http.Request) result.Result {
	loginData := LoginRequest{}
	if err := parseJSON(req, &loginData); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if loginData.Passphrase == "" {
		return result.BadRequest("passphrase: property is empty or missing from request", "empty passphrase")
	}

	err := bcrypt.CompareHashAndPassword(api.AdminPassphraseHash, []byte(loginData.Passphrase))
	if err != nil {
		return result.Unauthorized("Incorrect passphrase", "admin login: %s", err.Error())
	}

	tok, err := token.Generate(api.Secret)
	if err != nil {
		return result.InternalServerError("could not generate JWT: " + err.Error())
	}

	return result.Created(LoginResponse{Token: tok}, "admin successfully logged in")
}
