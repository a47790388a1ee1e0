package handler

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"studyrobo-api/internal/delivery/http/dto"
	"studyrobo-api/internal/usecase/document"
)

type DocumentHandler struct {
	docUsecase *document.DocumentUsecase
}

func NewDocumentHandler(docUsecase *document.DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{docUsecase: docUsecase}
}

// Process godoc
// @Summary      Process a document
// @Description  Run the ingestion pipeline for an uploaded document
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        request  body  dto.ProcessDocumentRequest  true  "Document to process"
// @Success      200  {object}  dto.ProcessDocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents/process [post]
func (h *DocumentHandler) Process(c *fiber.Ctx) error {
	var req dto.ProcessDocumentRequest
	if err := c.BodyParser(&req); err != nil || req.DocumentID == "" || req.FilePath == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Missing required parameters: documentId, filePath",
		})
	}

	if err := h.docUsecase.ProcessDocument(c.Context(), req.DocumentID, req.FilePath); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(dto.ProcessDocumentResponse{
		Success: true,
		Message: "Document processed successfully",
	})
}

// ProcessPreflight answers CORS preflight for the processing endpoint,
// which is also invoked browser-side by the upload flow.
func (h *DocumentHandler) ProcessPreflight(c *fiber.Ctx) error {
	c.Set("Access-Control-Allow-Origin", "*")
	c.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
	c.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	return c.SendStatus(fiber.StatusOK)
}

// Upload godoc
// @Summary      Upload a document
// @Description  Store a PDF or DOCX file and ingest it in the background
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file        formData  file    true   "File to upload"
// @Param        courseName  formData  string  false  "Course label"
// @Success      201  {object}  dto.UploadDocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/documents/upload [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Failed to get file"})
	}

	courseName := c.FormValue("courseName")
	if courseName == "" {
		courseName = "General"
	}

	fileData, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to open file"})
	}
	defer fileData.Close()

	buf, err := io.ReadAll(fileData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to read file"})
	}

	doc, err := h.docUsecase.UploadDocument(
		c.Context(),
		userID,
		file.Filename,
		buf,
		file.Header.Get("Content-Type"),
		courseName,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UploadDocumentResponse{
		DocumentID: doc.ID,
		Filename:   doc.OriginalFileName,
		FilePath:   doc.FilePath,
		Status:     string(doc.ProcessingStatus),
		Message:    "Document uploaded successfully. Processing in background.",
	})
}

// List godoc
// @Summary      List documents
// @Description  Get the documents of the authenticated user
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number" default(1)
// @Param        limit  query  int  false  "Items per page" default(10)
// @Success      200  {object}  dto.ListDocumentsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	docs, total, err := h.docUsecase.ListDocuments(c.Context(), userID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	docInfos := make([]dto.DocumentInfo, 0, len(docs))
	for _, doc := range docs {
		docInfos = append(docInfos, dto.DocumentInfo{
			ID:               doc.ID,
			OriginalFileName: doc.OriginalFileName,
			FileType:         doc.FileType,
			CourseName:       doc.CourseName,
			ProcessingStatus: string(doc.ProcessingStatus),
			CreatedAt:        doc.CreatedAt,
		})
	}

	totalPages := (total + limit - 1) / limit

	return c.Status(fiber.StatusOK).JSON(dto.ListDocumentsResponse{
		Data: docInfos,
		Meta: dto.PaginationMeta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	})
}

// GetByID godoc
// @Summary      Get document by ID
// @Description  Get a single document's details
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Document ID"
// @Success      200  {object}  dto.DocumentInfo
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	documentID := c.Params("id")

	doc, err := h.docUsecase.GetDocumentByID(c.Context(), documentID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	if doc == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Document not found"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.DocumentInfo{
		ID:               doc.ID,
		OriginalFileName: doc.OriginalFileName,
		FileType:         doc.FileType,
		CourseName:       doc.CourseName,
		ProcessingStatus: string(doc.ProcessingStatus),
		CreatedAt:        doc.CreatedAt,
	})
}

// Delete godoc
// @Summary      Delete a document
// @Description  Delete a document and its stored file
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Document ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	documentID := c.Params("id")

	if err := h.docUsecase.DeleteDocument(c.Context(), documentID, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Document deleted successfully"})
}
