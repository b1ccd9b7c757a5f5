package handler

import (
	"encoding/json"
	"net/http"

	"quizhub/internal/api/middleware"
	"quizhub/internal/app/service"
	"quizhub/internal/common"

	"github.com/go-chi/chi/v5"
)

type SocialHandler struct {
	socialService *service.SocialService
}

func NewSocialHandler(socialService *service.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

func (h *SocialHandler) RegisterRoutes(r chi.Router) {
	r.Get("/getFriends/{userId}", h.getFriends)
	r.Get("/getFriendRequests/{userId}", h.getFriendRequests)
	r.Get("/getFriendSuggestions/{userId}", h.getFriendSuggestions)
	r.Get("/getFriendsActivities/{userId}", h.getFriendsActivities)

	// Mutations require a signed-in caller
	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Post("/sendFriendRequestByUsername", h.sendFriendRequest)
		authed.Post("/acceptFriendRequest", h.acceptFriendRequest)
	})
}

func (h *SocialHandler) sendFriendRequest(w http.ResponseWriter, r *http.Request) {
	// The sender is whoever holds the verified token, never a body field.
	senderID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	receiver, err := h.socialService.SendFriendRequest(r.Context(), senderID, req.Username)
	if err != nil {
		respondError(w, err, "An error occurred while sending the friend request")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, struct {
		Success  string `json:"success"`
		Fullname string `json:"fullname"`
	}{"Friend request sent", receiver.Fullname})
}

func (h *SocialHandler) acceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	// Only the receiver of a request can accept it.
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	var req struct {
		FriendID string `json:"friendId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.socialService.AcceptFriendRequest(r.Context(), userID, req.FriendID); err != nil {
		respondError(w, err, "An error occurred while accepting the friend request")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.SuccessResponse{Success: "Friend request accepted"})
}

func (h *SocialHandler) getFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.socialService.GetFriends(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, err, "An error occurred while fetching friends")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, friends)
}

func (h *SocialHandler) getFriendRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.socialService.GetFriendRequests(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, err, "An error occurred while fetching friend requests")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, requests)
}

func (h *SocialHandler) getFriendSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.socialService.GetFriendSuggestions(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, err, "An error occurred while fetching friend suggestions")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, suggestions)
}

func (h *SocialHandler) getFriendsActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.socialService.GetFriendsActivities(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, err, "An error occurred while fetching friends' activities")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, activities)
}
