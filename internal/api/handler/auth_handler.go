package handler

import (
	"encoding/json"
	"net/http"

	"quizhub/internal/app/service"
	"quizhub/internal/common"
	"quizhub/internal/common/security"
	"quizhub/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		respondError(w, err, "An error occurred during registration")
		return
	}

	security.SetAuthCookie(w, result.Token)
	common.RespondWithJSON(w, http.StatusOK, struct {
		Success string `json:"success"`
		UserID  string `json:"userId"`
	}{"Registration successful.", result.UserID})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if common.HTTPStatusFromError(err) == http.StatusUnauthorized {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		respondError(w, err, "An error occurred during authentication.")
		return
	}

	security.SetAuthCookie(w, result.Token)
	common.RespondWithJSON(w, http.StatusOK, struct {
		Success string `json:"success"`
		UserID  string `json:"userId"`
	}{"Login successful.", result.UserID})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	security.ClearAuthCookie(w)
	http.Redirect(w, r, config.AppConfig.FrontendHost+"/", http.StatusFound)
}
