package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxEmail extracts the owner email injected by the Auth middleware and
// fast-fails before any service call: an empty value means the middleware
// did not run on this route, which would leave the operation unscoped.
func ctxEmail(c echo.Context) (string, error) {
	email, _ := c.Get("email").(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, nil
}
