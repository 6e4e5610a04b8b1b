package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "pantry/internal/errors"
	"pantry/internal/model"
	"pantry/internal/service"
)

// usernameFromToken reads the authenticated username out of the JWT that the
// echo-jwt middleware stored on the request context.
func usernameFromToken(c echo.Context) (string, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return username, nil
}

// currentUser resolves the full domain user for the authenticated request.
// Handlers re-fetch the user per request so mutations always start from
// persisted state.
func currentUser(c echo.Context, authService service.AuthService) (*model.User, error) {
	username, err := usernameFromToken(c)
	if err != nil {
		return nil, err
	}
	user, err := authService.CurrentUser(c.Request().Context(), username)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	return user, nil
}

// domainError translates a service error into an echo HTTP error with the
// standard response body.
func domainError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
