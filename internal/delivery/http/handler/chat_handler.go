package handler

import (
	"github.com/gofiber/fiber/v2"

	"studyrobo-api/internal/delivery/http/dto"
	"studyrobo-api/internal/usecase/document"
)

type ChatHandler struct {
	docUsecase *document.DocumentUsecase
}

func NewChatHandler(docUsecase *document.DocumentUsecase) *ChatHandler {
	return &ChatHandler{docUsecase: docUsecase}
}

// Ask godoc
// @Summary      Ask a study question
// @Description  Answer a question from the user's ingested course documents
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  dto.ChatRequest  true  "Question"
// @Success      200  {object}  dto.ChatResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/chat [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "message is required"})
	}

	answer, matches, err := h.docUsecase.QueryDocuments(c.Context(), req.Message)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	sources := make([]dto.DocumentSource, 0, len(matches))
	for _, m := range matches {
		sources = append(sources, dto.DocumentSource{
			DocumentID: m.ID,
			CourseName: m.CourseName,
			Similarity: m.Similarity,
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.ChatResponse{
		Reply:   answer,
		Sources: sources,
	})
}
