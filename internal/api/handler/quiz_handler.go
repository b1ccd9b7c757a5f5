package handler

import (
	"encoding/json"
	"net/http"

	"quizhub/internal/app/service"
	"quizhub/internal/common"

	"github.com/go-chi/chi/v5"
)

type QuizHandler struct {
	quizService       *service.QuizService
	generationService *service.GenerationService
}

func NewQuizHandler(quizService *service.QuizService, generationService *service.GenerationService) *QuizHandler {
	return &QuizHandler{quizService: quizService, generationService: generationService}
}

func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Post("/createQuiz/{userId}", h.createQuiz)
	r.Get("/getQuiz/{id}", h.getQuiz)
	r.Get("/getQuizzes/{userId}", h.getQuizzes)
	r.Post("/submitQuiz", h.submitQuiz)
	r.Get("/getQuizResults/{userId}", h.getQuizResults)
	r.Get("/getQuizResult/{id}", h.getQuizResult)
	r.Get("/getQuizzesTaken/{userId}", h.getQuizzesTaken)
	r.Post("/generateQuiz", h.generateQuiz)
}

func (h *QuizHandler) createQuiz(w http.ResponseWriter, r *http.Request) {
	creatorID := chi.URLParam(r, "userId")

	var req service.CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	quiz, err := h.quizService.CreateQuiz(r.Context(), creatorID, req)
	if err != nil {
		respondError(w, err, "An error occurred while creating the quiz")
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, struct {
		Success string `json:"success"`
		QuizID  string `json:"quizId"`
	}{"Quiz created successfully", quiz.ID})
}

func (h *QuizHandler) getQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizService.GetQuiz(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err, "An error occurred while fetching the quiz")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) getQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizService.GetQuizzesByCreator(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, err, "An error occurred while fetching quizzes")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, quizzes)
}

func (h *QuizHandler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.quizService.SubmitQuiz(r.Context(), req)
	if err != nil {
		respondError(w, err, "An error occurred while submitting the quiz")
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, struct {
		Success  string `json:"success"`
		ResultID string `json:"resultId"`
	}{"Quiz result submitted successfully", result.ID})
}

func (h *QuizHandler) getQuizResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.quizService.GetQuizResults(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, err, "An error occurred while fetching quiz results")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, results)
}

func (h *QuizHandler) getQuizResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.quizService.GetQuizResult(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err, "An error occurred while fetching the quiz result")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *QuizHandler) getQuizzesTaken(w http.ResponseWriter, r *http.Request) {
	count, err := h.quizService.GetQuizzesTakenCount(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, err, "An error occurred while fetching the quizzes taken count")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, struct {
		QuizzesTaken int `json:"quizzesTaken"`
	}{count})
}

func (h *QuizHandler) generateQuiz(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	quizID, err := h.generationService.GenerateQuiz(r.Context(), req)
	if err != nil {
		respondError(w, err, "An error occurred while generating the quiz")
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, struct {
		Success string `json:"success"`
		QuizID  string `json:"quizId"`
	}{"Quiz generated successfully", quizID})
}
