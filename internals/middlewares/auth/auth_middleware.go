// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"absenta_backend/internals/configs"
	"absenta_backend/internals/constants"
	helper "absenta_backend/internals/helpers"
)

// AuthMiddleware vérifie le token Bearer et dépose l'identité dans les
// Locals (userEmail, userRole, userName, userFullName).
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		secret := configs.JWTSecret
		if secret == "" {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Secret JWT manquant")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("méthode de signature inattendue")
			}
			return []byte(secret), nil
		}); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token invalide")
		}

		if err := validateTokenExpiry(claims); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token expiré")
		}

		// Un token signé avec un rôle hors nomenclature ne passe pas,
		// même si la table d'accès le refuserait plus loin.
		if role, ok := claims["role"].(string); !ok || !constants.IsKnownRole(role) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Rôle inconnu")
		}

		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("Authorization header manquant")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("format Authorization invalide")
	}
	return parts[1], nil
}

func validateTokenExpiry(claims jwt.MapClaims) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return errors.New("claim exp manquant")
	}
	if time.Now().After(time.Unix(int64(exp), 0)) {
		return errors.New("token expiré")
	}
	return nil
}

func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if v, ok := claims["sub"].(string); ok {
		c.Locals("userEmail", v)
	}
	if v, ok := claims["role"].(string); ok {
		c.Locals("userRole", v)
	}
	if v, ok := claims["user_name"].(string); ok {
		c.Locals("userName", v)
	}
	if v, ok := claims["full_name"].(string); ok {
		c.Locals("userFullName", v)
	}
}
