package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"storefront-api/internal/config"
	"storefront-api/internal/middleware"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
)

// AuthHandler handles member authentication
type AuthHandler struct {
	config   *config.Config
	userRepo *repository.UserRepository
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(cfg *config.Config, userRepo *repository.UserRepository) *AuthHandler {
	return &AuthHandler{
		config:   cfg,
		userRepo: userRepo,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "Invalid request body")
		return
	}

	member, err := h.userRepo.GetByUsername(r.Context(), req.Username)
	if err != nil {
		log.Printf("Error getting member: %v", err)
		InternalError(w, "Internal server error")
		return
	}

	if member == nil {
		Unauthorized(w, "Invalid username or password")
		return
	}

	if member.Status != model.MemberStatusActive {
		Error(w, http.StatusForbidden, "Your account has been suspended")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(req.Password)); err != nil {
		Unauthorized(w, "Invalid username or password")
		return
	}

	// Generate JWT token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       member.Username,
		"member_id": member.ID,
		"role":      member.Role,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(h.config.JWTSecret))
	if err != nil {
		log.Printf("Error signing token: %v", err)
		InternalError(w, "Internal server error")
		return
	}

	// Set HTTP-only cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    tokenString,
		Expires:  time.Now().Add(24 * time.Hour),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.config.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})

	JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   tokenString,
		"user":    member.ToResponse(),
	})
}

// GetProfile handles GET /api/v1/auth/me
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		Unauthorized(w, "Not authenticated")
		return
	}

	member, err := h.userRepo.GetByID(r.Context(), memberID)
	if err != nil || member == nil {
		NotFound(w, "Member not found")
		return
	}

	Success(w, "", member.ToResponse())
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
	})

	Success(w, "Logged out", nil)
}
