package dto

import "time"

type ProcessDocumentRequest struct {
	DocumentID string `json:"documentId"`
	FilePath   string `json:"filePath"`
}

type ProcessDocumentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type UploadDocumentResponse struct {
	DocumentID string `json:"documentId"`
	Filename   string `json:"filename"`
	FilePath   string `json:"filePath"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

type DocumentInfo struct {
	ID               string    `json:"id"`
	OriginalFileName string    `json:"originalFileName"`
	FileType         string    `json:"fileType"`
	CourseName       string    `json:"courseName"`
	ProcessingStatus string    `json:"processingStatus"`
	CreatedAt        time.Time `json:"createdAt"`
}

type ListDocumentsResponse struct {
	Data []DocumentInfo `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

type PaginationMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
