package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"agenticWallet/pkg/logger"
	jsonres "agenticWallet/pkg/response"
	"agenticWallet/pkg/utils"

	"github.com/labstack/echo/v4"
)

// TokenValidator checks a token against the redis session store.
type TokenValidator interface {
	ValidateTokenFromRedis(ctx context.Context, token string) (uint, error)
}

// AuthMiddleware validates the bearer JWT without touching redis.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, tokenString, errResp := parseBearer(c)
			if errResp != nil {
				return errResp
			}

			userID, err := subjectID(claims)
			if err != nil {
				logger.Error("Invalid user ID in token", err)
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid user ID in token", nil,
				))
			}

			c.Set("user_id", userID)
			c.Set("role", claims["role"])
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// AuthMiddlewareWithRedis validates the bearer JWT and requires a live
// session in redis, so logout takes effect immediately.
func AuthMiddlewareWithRedis(tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, tokenString, errResp := parseBearer(c)
			if errResp != nil {
				return errResp
			}

			userID, err := subjectID(claims)
			if err != nil {
				logger.Error("Invalid user ID in token", err)
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid user ID in token", nil,
				))
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			sessionUserID, err := tokenValidator.ValidateTokenFromRedis(ctx, tokenString)
			if err != nil {
				logger.Error("Token not found in Redis", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Token expired or invalid", nil,
				))
			}

			if sessionUserID != userID {
				logger.Error("UserID mismatch between JWT and Redis")
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			c.Set("user_id", userID)
			c.Set("role", claims["role"])
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

func parseBearer(c echo.Context) (claims map[string]any, token string, errResp error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, "", c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Missing authorization header", nil,
		))
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, "", c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Invalid authorization format", nil,
		))
	}

	tokenString := tokenParts[1]

	parsed, err := utils.ParseJWT(tokenString)
	if err != nil {
		logger.Error("Failed to parse JWT", err)
		return nil, "", c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Invalid token", nil,
		))
	}

	expAt, err := parsed.GetExpirationTime()
	if err != nil || expAt == nil {
		return nil, "", c.JSON(http.StatusForbidden, jsonres.Error(
			"FORBIDDEN", "Status Forbidden", nil,
		))
	}

	if time.Now().After(expAt.Time) {
		return nil, "", c.JSON(http.StatusForbidden, jsonres.Error(
			"FORBIDDEN", "Token expired", nil,
		))
	}

	return parsed, tokenString, nil
}

func subjectID(claims map[string]any) (uint, error) {
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, err
	}

	return uint(id), nil
}

func SelfOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			loggedInUserID, ok := c.Get("user_id").(uint)
			if !ok {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "User not authenticated", nil,
				))
			}

			role, _ := c.Get("role").(string)
			if strings.EqualFold(role, "admin") {
				return next(c)
			}

			requestedID, err := strconv.ParseUint(c.Param("id"), 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, jsonres.Error(
					"BAD_REQUEST", "Invalid user ID", nil,
				))
			}

			if uint(requestedID) != loggedInUserID {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "You can only access your own data", nil,
				))
			}

			return next(c)
		}
	}
}
