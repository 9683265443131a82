package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// companyID extracts the caller's company from verified JWT claims. AuthRequired
// guarantees presence on protected routes; the error path covers misuse.
func companyID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}

	id, ok := claims["company_id"].(string)
	if !ok || id == "" {
		return "", errors.New("company_id not found in claims")
	}
	return id, nil
}
