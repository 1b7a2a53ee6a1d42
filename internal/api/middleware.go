package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"stromvalg/server/internal/models"
)

// Ключи контекста запроса
const (
	ctxUserID  = "userID"
	ctxUserRole = "userRole"
	ctxTokenID = "tokenID"
)

// sessionClaims полезная нагрузка токена сессии
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth guard-функция: пропускает только запросы с валидной сессией
// Проверка идет ДО любого обращения к данным: подпись и срок JWT,
// затем whitelist в Redis. Идентичность кладется в контекст запроса
func RequireAuth(sessions *SessionStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Du må være innlogget"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims := &sessionClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Ugyldig eller utløpt sesjon"})
			return
		}

		active, err := sessions.Exists(c.Request.Context(), claims.ID)
		if err != nil || !active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Ugyldig eller utløpt sesjon"})
			return
		}

		c.Set(ctxUserID, claims.Subject)
		c.Set(ctxUserRole, claims.Role)
		c.Set(ctxTokenID, claims.ID)
		c.Next()
	}
}

// RequireAdmin guard-функция поверх RequireAuth: роль читается из БД,
// а не из токена — понижение роли действует сразу, без ожидания
// истечения старого токена
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ctxUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Du må være innlogget"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Du må være innlogget"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Krever administratorrettigheter"})
			return
		}

		c.Next()
	}
}

// CurrentUserID возвращает идентификатор аутентифицированного пользователя
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
