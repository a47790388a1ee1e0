package dto

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply   string           `json:"reply"`
	Sources []DocumentSource `json:"sources"`
}

type DocumentSource struct {
	DocumentID string  `json:"documentId"`
	CourseName string  `json:"courseName"`
	Similarity float64 `json:"similarity"`
}
