package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stromvalg/server/internal/models"
)

// AuthController управляет API endpoints для авторизации
type AuthController struct {
	db        *gorm.DB
	sessions  *SessionStore
	jwtSecret string
	ttl       time.Duration
}

// NewAuthController создает новый контроллер авторизации
func NewAuthController(db *gorm.DB, sessions *SessionStore, jwtSecret string, ttl time.Duration) *AuthController {
	return &AuthController{db: db, sessions: sessions, jwtSecret: jwtSecret, ttl: ttl}
}

// RegisterRequest представляет запрос на регистрацию
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse представляет ответ на вход
type LoginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expires_at"`
}

// Register регистрирует нового пользователя
// POST /api/v1/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Ugyldige data",
			"details": err.Error(),
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Noe gikk galt"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := ac.db.Create(&user).Error; err != nil {
		// Уникальный индекс по email: повторная регистрация
		c.JSON(http.StatusConflict, gin.H{"error": "E-postadressen er allerede registrert"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login обрабатывает вход пользователя и выдает токен сессии
// POST /api/v1/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Ugyldige data",
			"details": err.Error(),
		})
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Feil e-post eller passord"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Feil e-post eller passord"})
		return
	}

	jti := uuid.New().String()
	expiresAt := time.Now().Add(ac.ttl)
	claims := sessionClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ac.jwtSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Noe gikk galt"})
		return
	}

	if err := ac.sessions.Save(c.Request.Context(), jti, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Noe gikk galt"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ExpiresAt: expiresAt.Unix(),
	})
}

// Logout отзывает текущую сессию
// POST /api/v1/auth/logout (защищен RequireAuth)
func (ac *AuthController) Logout(c *gin.Context) {
	jti := c.GetString(ctxTokenID)
	if err := ac.sessions.Delete(c.Request.Context(), jti); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Noe gikk galt"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
