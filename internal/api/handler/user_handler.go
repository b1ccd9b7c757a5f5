package handler

import (
	"net/http"

	"quizhub/internal/app/service"
	"quizhub/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/getUserDetails/{id}", h.getUserDetails)
}

func (h *UserHandler) getUserDetails(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUserDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err, "An error occurred while fetching user details")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
