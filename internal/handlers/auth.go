package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/George-coder-ai/MarkIt-Up1/internal/identity"
	"github.com/George-coder-ai/MarkIt-Up1/internal/services"
	"github.com/George-coder-ai/MarkIt-Up1/internal/store"
	"github.com/George-coder-ai/MarkIt-Up1/types"
)

const defaultTokenTTL = 24 * time.Hour

const providerRefPrefix = "firebase:"

// AuthHandler provides the authentication endpoints.
type AuthHandler struct {
	users    *services.UserService
	gateway  identity.Gateway
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(users *services.UserService, gateway identity.Gateway, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		users:    users,
		gateway:  gateway,
		secret:   []byte(jwtSecret),
		tokenTTL: defaultTokenTTL,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, users *services.UserService, gateway identity.Gateway, jwtSecret string) {
	handler := NewAuthHandler(users, gateway, jwtSecret)

	r.Post("/signup", handler.Signup)
	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Post("/logout", handler.Logout)
	r.Get("/me", handler.Me)
	r.Delete("/me", handler.DeleteAccount)
	r.Get("/me/settings", handler.GetSettings)
	r.Put("/me/settings", handler.UpdateSettings)
}

// Signup creates a credential set with the identity provider and a local
// profile record referencing it.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := services.NormalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	// The duplicate check runs before any gateway call so a rejected
	// signup never leaves an orphaned remote identity.
	if _, err := h.users.GetByEmail(r.Context(), email); err == nil {
		writeError(w, http.StatusBadRequest, "Email already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "Signup failed: "+err.Error())
		return
	}

	providerID, err := h.gateway.CreateIdentity(r.Context(), email, req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Create(r.Context(), types.User{
		Name:        name,
		Email:       email,
		PasswordRef: providerRefPrefix + providerID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create user profile")
		return
	}

	writeJSON(w, http.StatusCreated, SignupResponse{
		Message: "User created successfully",
		User:    user,
		UID:     providerID,
	})
}

// Register creates an account with a locally hashed password, without
// involving the identity provider.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := services.NormalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if _, err := h.users.GetByEmail(r.Context(), email); err == nil {
		writeError(w, http.StatusBadRequest, "Email already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "Registration failed: "+err.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create user profile")
		return
	}

	user, err := h.users.Create(r.Context(), types.User{
		Name:        name,
		Email:       email,
		PasswordRef: string(hashed),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create user profile")
		return
	}

	token, err := issueToken(user.ID, h.secret, h.tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	writeJSON(w, http.StatusCreated, LoginResponse{
		Message:     "User created successfully",
		AccessToken: token,
		User:        user,
	})
}

// Login exchanges either a provider id token or a local password for a
// session token bound to the local user id.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	email := services.NormalizeEmail(req.Email)
	if email == "" || (req.IDToken == "" && req.Password == "") {
		writeError(w, http.StatusBadRequest, "Missing email or idToken")
		return
	}

	if req.IDToken != "" {
		if _, err := h.gateway.VerifyToken(r.Context(), req.IDToken); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Login failed: "+err.Error())
		return
	}

	if req.IDToken == "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordRef), []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
	}

	token, err := issueToken(user.ID, h.secret, h.tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message:     "Login successful",
		AccessToken: token,
		User:        user,
	})
}

// Me returns the profile of the user identified by the bearer token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout acknowledges the request. There is no server-side session to
// invalidate; discarding the provider session is the client's job.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// DeleteAccount removes the remote identity and then the local record.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	remote, err := h.gateway.LookupByEmail(r.Context(), user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete account: "+err.Error())
		return
	}
	if remote != nil {
		if err := h.gateway.DeleteIdentity(r.Context(), remote.ProviderID); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to delete account: "+err.Error())
			return
		}
	}

	if err := h.users.Delete(r.Context(), user.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "Failed to delete account: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Account deleted"})
}

// GetSettings returns the current user's settings record, or an empty
// record when none exists yet.
func (h *AuthHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	settings, err := h.users.Settings(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusOK, types.Settings{UserID: user.ID, Values: map[string]any{}})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load settings: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings merges the request body's fields into the current
// user's settings record, creating it on first use.
func (h *AuthHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := h.users.UpdateSettings(r.Context(), user.ID, fields); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update settings: "+err.Error())
		return
	}

	settings, err := h.users.Settings(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// currentUser resolves the bearer token in the Authorization header to a
// local user. It writes the error response itself and reports success
// through the second return value. A missing header is reported
// distinctly from a token the provider rejects.
func (h *AuthHandler) currentUser(w http.ResponseWriter, r *http.Request) (types.User, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		writeError(w, http.StatusUnauthorized, "Missing authorization header")
		return types.User{}, false
	}

	token := header
	if i := strings.IndexByte(header, ' '); i >= 0 {
		token = strings.TrimSpace(header[i+1:])
	}

	claims, err := h.gateway.VerifyToken(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return types.User{}, false
	}

	user, err := h.users.GetByEmail(r.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return types.User{}, false
		}
		writeError(w, http.StatusInternalServerError, "Failed to get user: "+err.Error())
		return types.User{}, false
	}
	return user, true
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	IDToken  string `json:"idToken"`
	Password string `json:"password"`
}

type SignupResponse struct {
	Message string     `json:"message"`
	User    types.User `json:"user"`
	UID     string     `json:"uid"`
}

type LoginResponse struct {
	Message     string     `json:"message"`
	AccessToken string     `json:"access_token"`
	User        types.User `json:"user"`
}

func issueToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
