package service

import (
	"context"
	"fmt"
	"log"
)

// ContentGenerator is the outbound text-model call. Satisfied by genai.Client.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GenerationService builds the quiz prompt and invokes the external model.
// The model's output is logged and then discarded: the parse-and-persist step
// was never finished upstream, and the endpoint's contract today is to report
// success with a placeholder id regardless of what the model returned.
// Completing it is a product decision, not a port detail.
type GenerationService struct {
	generator ContentGenerator
}

func NewGenerationService(generator ContentGenerator) *GenerationService {
	return &GenerationService{generator: generator}
}

// PlaceholderQuizID is the fixed id the generate endpoint has always returned.
const PlaceholderQuizID = "8322058215"

type GenerateQuizRequest struct {
	Topic             string `json:"topic"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
	Difficulty        string `json:"difficulty"`
	UserID            string `json:"userId"`
}

func (s *GenerationService) GenerateQuiz(ctx context.Context, req GenerateQuizRequest) (string, error) {
	prompt := BuildQuizPrompt(req)

	text, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("quiz generation failed: %w", err)
	}
	log.Printf("generateQuiz: model returned %d bytes (discarded)", len(text))

	return PlaceholderQuizID, nil
}

// BuildQuizPrompt describes the desired quiz and an example JSON shape to the
// model, wording kept byte-compatible with what the platform has always sent.
func BuildQuizPrompt(req GenerateQuizRequest) string {
	return fmt.Sprintf(`Generate a quiz with the following details:
    Topic: %s
    Number of Questions: %d
    Difficulty: %s
    Format: Each question should have an id, question text, options (with ids and text), and a correct option id. The quiz should also have a title, description, category, difficulty, duration, tags, isPublic, and createdBy fields.
    Example:
    {
      title: "Sample Quiz",
      description: "This is a sample quiz",
      category: "%s",
      difficulty: "%s",
      duration: 10,
      tags: ["sample", "quiz"],
      isPublic: true,
      questions: [
        {
          id: "1",
          question: "Sample question?",
          options: [
            { id: "a", text: "Option A" },
            { id: "b", text: "Option B" },
            { id: "c", text: "Option C" },
            { id: "d", text: "Option D" }
          ],
          correctOptionId: "a"
        }
      ],
      createdBy: "%s"
    }`, req.Topic, req.NumberOfQuestions, req.Difficulty, req.Topic, req.Difficulty, req.UserID)
}
