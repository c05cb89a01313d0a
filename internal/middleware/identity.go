package middleware

// identity.go exposes what JWTAuth stored in the echo context to handlers.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/household-market/internal/utils"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxEmail  = "email"
	ctxToken  = "token"
	ctxClaims = "claims"
)

// ClaimsFrom returns the verified claims and raw token of the current
// request.  ok is false on routes that are not behind JWTAuth.
func ClaimsFrom(c echo.Context) (claims *utils.Claims, raw string, ok bool) {
	claims, ok = c.Get(ctxClaims).(*utils.Claims)
	if !ok {
		return nil, "", false
	}
	raw, _ = c.Get(ctxToken).(string)
	return claims, raw, true
}

// UserID returns the authenticated user id, or 0 for anonymous requests.
func UserID(c echo.Context) uint64 {
	id, _ := c.Get(ctxUserID).(uint64)
	return id
}
