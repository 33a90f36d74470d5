// Package token issues and validates the JWTs used to authorize mutating
// requests to the brickgrammar server. There is a single administrative
// principal (there is no multi-user account system); possession of a valid
// token proves the holder authenticated with the server's configured
// secret.
package token

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Subject is the JWT subject claim used for the single administrative
// principal.
const Subject = "admin"

const issuer = "brickgrammar"

// Generate returns a signed JWT good for one hour, authorizing the bearer as
// the administrative principal.
func Generate(secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"iss": issuer,
		"sub": Subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies tok against secret, returning an error if it
// is missing, malformed, expired, or signed with a different secret.
func Validate(tok string, secret []byte) error {
	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(issuer), jwt.WithLeeway(time.Minute))
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	subj, err := parsed.Claims.GetSubject()
	if err != nil || subj != Subject {
		return fmt.Errorf("invalid token subject")
	}

	return nil
}

// Get extracts the bearer token from the Authorization header of req. It
// returns an error if the header is missing or not in the expected
// "Bearer TOKEN" form.
func Get(req *http.Request) (string, error) {
	hdr := req.Header.Get("Authorization")
	if hdr == "" {
		return "", fmt.Errorf("no Authorization header present")
	}

	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("Authorization header is not in 'Bearer TOKEN' form")
	}

	return strings.TrimSpace(parts[1]), nil
}
