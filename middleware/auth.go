package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/asharbutt0314/foodexpress/config"
	"github.com/asharbutt0314/foodexpress/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	AccountID string             `json:"id"`
	Email     string             `json:"email"`
	Kind      models.AccountKind `json:"kind"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a given account, valid for a day
func GenerateToken(account *models.Account) (string, error) {
	claims := Claims{
		AccountID: account.ID,
		Email:     account.Email,
		Kind:      account.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

// AuthRequired validates the JWT and injects claims into context
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return config.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Set("accountID", claims.AccountID)
		c.Set("email", claims.Email)
		c.Set("kind", string(claims.Kind))
		c.Next()
	}
}

// GetAccountID extracts the caller's account id from context
func GetAccountID(c *gin.Context) string {
	val, _ := c.Get("accountID")
	id, _ := val.(string)
	return id
}
