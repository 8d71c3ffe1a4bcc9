package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "alemsite/internal/errors"
	"alemsite/internal/model"
)

// RequireRoles guards a route behind a set of allowed roles. It must run
// after Required(); a request with no identity attached is answered with 401,
// a disallowed role with 403.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrForbidden.Error())
			}
			return next(c)
		}
	}
}

// AdminOnly allows only admins.
func AdminOnly() echo.MiddlewareFunc {
	return RequireRoles(model.RoleAdmin)
}

// AdminOrModerator allows admins and moderators.
func AdminOrModerator() echo.MiddlewareFunc {
	return RequireRoles(model.RoleAdmin, model.RoleModerator)
}
