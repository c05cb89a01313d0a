package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/household-market/internal/service"
	"github.com/iliyamo/household-market/internal/utils"
)

// Authenticator verifies a raw bearer token.  *service.TokenService
// implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*utils.Claims, error)
}

const (
	msgTokenRequired = "Token inaitajika uhakiki"
	msgTokenInvalid  = "Token si sahii"
	msgTokenRevoked  = "Token imebatilishwa, tafadhali ingia tena"
	msgServerError   = "Tatizo la server"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores its claims in the context.  A missing token is answered with
// 403; an invalid, expired or revoked one with 401.  The specific cause is
// logged, not returned.
func JWTAuth(auth Authenticator, log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			claims, err := auth.Authenticate(c.Request().Context(), raw)
			if err != nil {
				entry := log.WithFields(logrus.Fields{"path": c.Path(), "cause": err.Error()})
				switch {
				case errors.Is(err, service.ErrTokenRequired):
					entry.Debug("auth: token missing")
					return c.JSON(http.StatusForbidden, echo.Map{"message": msgTokenRequired})
				case errors.Is(err, service.ErrTokenRevoked):
					entry.Debug("auth: token revoked")
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgTokenRevoked})
				case errors.Is(err, service.ErrTokenExpired), errors.Is(err, service.ErrTokenInvalid):
					entry.Debug("auth: token rejected")
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgTokenInvalid})
				default:
					entry.Error("auth: revocation lookup failed")
					return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
				}
			}

			uid, _ := claims.UserID()
			c.Set(ctxUserID, uid)
			c.Set(ctxRole, claims.Role)
			c.Set(ctxEmail, claims.Email)
			c.Set(ctxToken, raw)
			c.Set(ctxClaims, claims)
			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.  The scheme is matched case-insensitively.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
