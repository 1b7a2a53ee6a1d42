package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthRouter(db *gorm.DB) *gin.Engine {
	sessions := NewSessionStore(nil, time.Hour)
	controller := NewAuthController(db, sessions, testJWTSecret, time.Hour)

	r := gin.New()
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", controller.Register)
		auth.POST("/login", controller.Login)
		auth.POST("/logout", RequireAuth(sessions, testJWTSecret), controller.Logout)
	}
	r.GET("/api/v1/consumption/hours", RequireAuth(sessions, testJWTSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c)})
	})
	return r
}

func postJSON(r *gin.Engine, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	r := newAuthRouter(newTestDB(t))

	// Регистрация
	w := postJSON(r, "/api/v1/auth/register",
		`{"name":"Kari Nordmann","email":"kari@example.com","password":"passord123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "passord123", "хэш пароля не должен утекать в ответ")
	assert.NotContains(t, w.Body.String(), "password_hash")

	// Вход
	w = postJSON(r, "/api/v1/auth/login",
		`{"email":"kari@example.com","password":"passord123"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "kari@example.com", resp.Email)

	// Токен открывает защищенные маршруты
	req := httptest.NewRequest(http.MethodGet, "/api/v1/consumption/hours", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), resp.UserID)

	// Выход
	w = postJSON(r, "/api/v1/auth/logout", "", resp.Token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	r := newAuthRouter(newTestDB(t))

	body := `{"name":"Kari","email":"kari@example.com","password":"passord123"}`
	w := postJSON(r, "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	r := newAuthRouter(newTestDB(t))

	w := postJSON(r, "/api/v1/auth/register",
		`{"name":"Kari","email":"kari@example.com","password":"kort"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := newTestDB(t)
	newTestUser(t, db, "kari@example.com", "USER")
	r := newAuthRouter(db)

	w := postJSON(r, "/api/v1/auth/login",
		`{"email":"kari@example.com","password":"feil-passord"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	r := newAuthRouter(newTestDB(t))

	w := postJSON(r, "/api/v1/auth/login",
		`{"email":"ingen@example.com","password":"passord123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
