package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/mail"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/rohits-web03/sharevault/internal/api/services"
	"github.com/rohits-web03/sharevault/internal/models"
	"github.com/rohits-web03/sharevault/internal/repositories"
	"github.com/rohits-web03/sharevault/internal/utils"
)

const (
	stateCookie       = "oauth_state"
	minPasswordLength = 6
	flowLogin         = "login"
	flowRegister      = "register"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

type TokenIssuer interface {
	Issue(u *models.User) (string, error)
}

// GoogleProfileFunc resolves an authorization code to a Google profile.
type GoogleProfileFunc func(ctx context.Context, conf *oauth2.Config, code string) (*services.GoogleUser, error)

type AuthHandler struct {
	users         UserStore
	tokens        TokenIssuer
	google        *oauth2.Config
	googleProfile GoogleProfileFunc
	secureCookies bool
	l             *log.Entry
}

// NewAuthHandler builds the auth endpoints. google may be nil, in which case
// the Google endpoints answer 503.
func NewAuthHandler(users UserStore, tokens TokenIssuer, google *oauth2.Config, secureCookies bool, l *log.Entry) *AuthHandler {
	return &AuthHandler{
		users:         users,
		tokens:        tokens,
		google:        google,
		googleProfile: services.FetchGoogleUser,
		secureCookies: secureCookies,
		l:             l.WithField("component", "auth_handler"),
	}
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type TokenResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// RegisterUser godoc
// @Summary Register a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body Credentials true "Email and password"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} utils.Payload
// @Failure 500 {object} utils.Payload
// @Router /auth/register [post]
func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	if addr, err := mail.ParseAddress(input.Email); err != nil || addr.Address != input.Email {
		badRequest(w, "Invalid email address")
		return
	}
	if len(input.Password) < minPasswordLength {
		badRequest(w, "Password must be at least 6 characters")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalError(w, err, "Failed to hash password")
		return
	}

	u := &models.User{Email: input.Email, Password: string(hashedPassword)}
	if err := h.users.Create(r.Context(), u); err != nil {
		if errors.Is(err, repositories.ErrUserExists) {
			badRequest(w, "User already exists with this email")
			return
		}
		h.internalError(w, err, "Database insert failed")
		return
	}

	h.l.WithField("user", u.Email).Info("user registered")
	utils.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Success: true,
		Message: "User registered successfully",
		ID:      u.ID,
	})
}

// LoginUser godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body Credentials true "Email and password"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Failure 500 {object} utils.Payload
// @Router /auth/login [post]
func (h *AuthHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	u, err := h.users.FindByEmail(r.Context(), input.Email)
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		invalidCredentials(w)
		return
	case err != nil:
		h.internalError(w, err, "Database error")
		return
	}

	// Google-only accounts have no password and can't log in this way.
	if u.Password == "" || bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(input.Password)) != nil {
		invalidCredentials(w)
		return
	}

	h.issueToken(w, u, "Login successful")
}

// HandleGoogleLogin godoc
// @Summary Start Google sign-in
// @Tags Auth
// @Param redirect query string false "login or register"
// @Success 307
// @Failure 503 {object} utils.Payload
// @Router /auth/google/login [get]
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.googleEnabled(w) {
		return
	}

	flow := r.URL.Query().Get("redirect")
	if flow != flowRegister {
		flow = flowLogin
	}

	state, err := GenerateState(map[string]string{"flow": flow})
	if err != nil {
		h.internalError(w, err, "Failed to generate OAuth state")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// HandleGoogleCallback godoc
// @Summary Finish Google sign-in
// @Tags Auth
// @Produce json
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Failure 500 {object} utils.Payload
// @Router /auth/google/callback [get]
func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if !h.googleEnabled(w) {
		return
	}

	state := r.FormValue("state")
	cookie, err := r.Cookie(stateCookie)
	if err != nil || state == "" || cookie.Value != state {
		badRequest(w, "Invalid OAuth state")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/auth/google", MaxAge: -1})

	stateData, err := DecodeState(state)
	if err != nil {
		badRequest(w, "Invalid OAuth state")
		return
	}

	profile, err := h.googleProfile(r.Context(), h.google, r.FormValue("code"))
	if err != nil {
		h.internalError(w, err, "Google sign-in failed")
		return
	}

	existing, err := h.users.FindByEmail(r.Context(), profile.Email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		h.internalError(w, err, "Database error")
		return
	}

	switch stateData["flow"] {
	case flowRegister:
		if existing != nil {
			badRequest(w, "User already exists with this email")
			return
		}
		u := &models.User{Email: profile.Email}
		if err := h.users.Create(r.Context(), u); err != nil {
			h.internalError(w, err, "Failed to create user")
			return
		}
		h.l.WithField("user", u.Email).Info("user registered with google")
		h.issueToken(w, u, "Registration successful")
	default:
		if existing == nil {
			utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
				Success: false,
				Kind:    "unauthorized",
				Message: "User not found",
			})
			return
		}
		h.issueToken(w, existing, "Login successful")
	}
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, u *models.User, message string) {
	token, err := h.tokens.Issue(u)
	if err != nil {
		h.internalError(w, err, "Failed to create token")
		return
	}
	utils.WriteJSON(w, http.StatusOK, TokenResponse{Success: true, Message: message, Token: token})
}

func (h *AuthHandler) googleEnabled(w http.ResponseWriter) bool {
	if h.google != nil {
		return true
	}
	utils.JSONResponse(w, http.StatusServiceUnavailable, utils.Payload{
		Success: false,
		Message: "Google sign-in is not configured",
	})
	return false
}

func (h *AuthHandler) internalError(w http.ResponseWriter, err error, message string) {
	h.l.WithError(err).Error(message)
	utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
		Success: false,
		Kind:    "internal",
		Message: message,
	})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (Credentials, bool) {
	var input Credentials
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		badRequest(w, "Invalid input")
		return input, false
	}
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || input.Password == "" {
		badRequest(w, "Email and password are required")
		return input, false
	}
	return input, true
}

func invalidCredentials(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
		Success: false,
		Kind:    "unauthorized",
		Message: "Invalid credentials",
	})
}
