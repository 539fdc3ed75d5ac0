package middleware

import (
	"errors"
	"strings"

	"exp_commerce/internal/common"
	"exp_commerce/internal/global"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActorClaims chứa data được mã hóa trong JWT token
type ActorClaims struct {
	ActorID string `json:"actorId"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware xác thực JWT bearer token và lưu thông tin actor vào context.
// Sau khi xác thực thành công, các handler phía sau đọc actor qua
// c.Locals("actorID") và c.Locals("actorRole").
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		claims := &ActorClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(global.ServerConfig.JwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				HandleErrorResponse(c, common.ErrTokenExpired)
				return nil
			}
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}
		if !token.Valid {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		actorID, err := primitive.ObjectIDFromHex(claims.ActorID)
		if err != nil {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}
		if claims.Role != common.RoleVendor && claims.Role != common.RoleAdmin {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		c.Locals("actorID", actorID)
		c.Locals("actorRole", claims.Role)
		return c.Next()
	}
}

// RequireRole chỉ cho phép các actor có role nằm trong danh sách đi tiếp.
// Phải đặt sau AuthMiddleware trên cùng một route.
func RequireRole(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals("actorRole").(string)
		if !ok || role == "" {
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		HandleErrorResponse(c, common.ErrForbidden)
		return nil
	}
}

// extractBearerToken lấy token từ header Authorization dạng "Bearer <token>"
func extractBearerToken(c fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
