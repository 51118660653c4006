package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listingdesk/cmd/internal/domain/entity"
	"listingdesk/cmd/internal/utils"
	"listingdesk/cmd/internal/utils/apierror"
)

// ActorResolver maps a verified token onto a local user row.
type ActorResolver interface {
	ResolveActor(data *utils.TokenData) (*entity.User, error)
}

type AuthMiddlewareConfig struct {
	Resolver ActorResolver
}

// NewAuthMiddleware creates the handler with dependencies injected
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := utils.ParseTokenDataCtx(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			user, err := cfg.Resolver.ResolveActor(tokenData)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if user == nil {
				return c.JSON(http.StatusUnauthorized, apierror.UnauthorizedError)
			}

			if user.Suspended || !user.Active {
				return c.JSON(http.StatusForbidden, apierror.NewForbiddenError("Missing access"))
			}

			c.Set("user", user)
			c.Set("sub", tokenData.Sub)
			return next(c)
		}
	}
}
