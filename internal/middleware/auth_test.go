package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"leadgate/internal/config"
	"leadgate/internal/domain"
	"leadgate/internal/middleware"
	"leadgate/internal/service"
	"leadgate/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authFixture(t *testing.T) (service.AuthService, *domain.Partner, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	partner := &domain.Partner{
		ID:           uuid.New(),
		Email:        "partner@example.com",
		PasswordHash: string(hash),
		FullName:     "Partner One",
		IsActive:     true,
	}

	partnerRepo := new(mocks.MockPartnerRepo)
	partnerRepo.On("GetByEmail", mock.Anything, partner.Email).Return(partner, nil)

	svc := service.NewAuthService(partnerRepo, config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  time.Minute,
		RefreshTokenExpiry: time.Hour,
		Issuer:             "leadgate-test",
	})
	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    partner.Email,
		Password: "password123",
	})
	require.NoError(t, err)
	return svc, partner, pair.AccessToken
}

func protectedRouter(svc service.AuthService) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(svc), func(c *gin.Context) {
		id, ok := middleware.PartnerID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"partner_id": id.String()})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	svc, partner, token := authFixture(t)
	r := protectedRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), partner.ID.String())
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	svc, _, _ := authFixture(t)
	r := protectedRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	svc, _, _ := authFixture(t)
	r := protectedRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", http.NoBody)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
