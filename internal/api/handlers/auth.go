package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/models"
	"github.com/shivamgupta1319/EasyShare/internal/utils"
)

// Claims is the JWT session payload.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

const sessionValidity = 24 * time.Hour

// POST /auth/sign-up
// RegisterUser godoc
// @Summary Create an account
// @Description Registers a new user with email and password.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/auth/sign-up [post]
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	_, err := h.users.ByEmail(r.Context(), input.Email)
	switch {
	case err == nil:
		utils.Fail(w, http.StatusBadRequest, "User already exists with this email")
		return
	case errors.Is(err, common.ErrNotFound):
		// New account.
	default:
		utils.Fail(w, http.StatusInternalServerError, "Database query failed")
		return
	}

	// Stored as plaintext: this product's auth is deliberately minimal
	// and hardening it is out of scope.
	newUser := models.User{
		ID:        utils.NewID(),
		Email:     input.Email,
		Password:  input.Password,
		CreatedAt: time.Now(),
	}
	if err := h.users.Append(r.Context(), &newUser); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Database insert failed")
		return
	}

	utils.OK(w, http.StatusCreated, "User registered successfully", map[string]any{
		"id":    newUser.ID,
		"email": newUser.Email,
	})
}

// POST /auth/login
// LoginUser godoc
// @Summary Log in
// @Description Verifies credentials and sets the session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /api/v1/auth/login [post]
func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := h.users.ByEmail(r.Context(), input.Email)
	switch {
	case err == nil:
		// user found
	case errors.Is(err, common.ErrNotFound):
		utils.Fail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	default:
		utils.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Plaintext compare, constant-time to avoid the cheapest oracle.
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(input.Password)) != 1 {
		utils.Fail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	expiration := time.Now().Add(sessionValidity)
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	sameSite := http.SameSiteLaxMode
	if h.isProd {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(sessionValidity.Seconds()),
		Secure:   h.isProd,
		HttpOnly: true,
		SameSite: sameSite,
	})

	utils.OK(w, http.StatusOK, "Login successful", map[string]any{
		"id":    user.ID,
		"email": user.Email,
	})
}

// POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // maxAge < 0 deletes the cookie
		Secure:   h.isProd,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.OK(w, http.StatusOK, "Logged out successfully", nil)
}
