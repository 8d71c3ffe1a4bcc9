package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"alemsite/internal/auth"
	apperrors "alemsite/internal/errors"
	"alemsite/internal/model"
	"alemsite/internal/repository"
)

// identityKey is the context key the resolved user record is stored under.
const identityKey = "identity"

// tokenLookup prefers the Authorization bearer header and falls back to the
// "token" cookie.
const tokenLookup = "header:Authorization:Bearer ,cookie:token"

// Authenticator resolves request identity from a session token: verify the
// token, load the current user record, attach it to the request context.
type Authenticator struct {
	tokens *auth.TokenService
	users  repository.UserRepository
}

// NewAuthenticator creates an identity resolver.
func NewAuthenticator(tokens *auth.TokenService, users repository.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// parseToken verifies the token and loads the subject's current user record.
// A valid token whose subject no longer exists fails like a bad token.
func (a *Authenticator) parseToken(c echo.Context, tokenString string) (interface{}, error) {
	claims, err := a.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	subject, err := claims.Subject()
	if err != nil {
		return nil, err
	}
	user, err := a.users.FindByID(c.Request().Context(), subject)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	// The token's role wins over the stored one until re-login; a role
	// change after issuance is not reflected in the open session.
	user.Role = claims.Role
	return user, nil
}

// Required rejects requests without a resolvable identity. A missing token,
// a bad token and a vanished subject all answer with 401.
func (a *Authenticator) Required() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:     identityKey,
		TokenLookup:    tokenLookup,
		ParseTokenFunc: a.parseToken,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
		},
	})
}

// Optional resolves identity when a usable token is present and silently
// continues without one otherwise. It never fails the request.
func (a *Authenticator) Optional() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:             identityKey,
		TokenLookup:            tokenLookup,
		ParseTokenFunc:         a.parseToken,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

// CurrentUser returns the identity attached to the request, if any.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(identityKey).(*model.User)
	return user, ok
}
