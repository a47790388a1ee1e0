package entity

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type ProcessingStatus string

const (
	StatusPending   ProcessingStatus = "pending"
	StatusCompleted ProcessingStatus = "completed"
)

// EmbeddingDimension matches the output size of the embedding model
// (text-embedding-3-small); the documents.embedding column is declared
// vector(1536) to match.
const EmbeddingDimension = 1536

// Document is one unit of ingested knowledge. Content and Embedding stay
// empty until the ingestion pipeline completes; the pipeline is the only
// writer of those fields.
type Document struct {
	ID               string           `db:"id" json:"id"`
	UserID           string           `db:"user_id" json:"userId"`
	FilePath         string           `db:"file_path" json:"filePath"`
	OriginalFileName string           `db:"original_file_name" json:"originalFileName"`
	FileType         string           `db:"file_type" json:"fileType"`
	CourseName       string           `db:"course_name" json:"courseName"`
	Content          string           `db:"content" json:"content"`
	Embedding        *pgvector.Vector `db:"embedding" json:"-"`
	ProcessingStatus ProcessingStatus `db:"processing_status" json:"processingStatus"`
	CreatedAt        time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updatedAt"`
}

// SimilarDocument is one hit from the document-level vector search.
type SimilarDocument struct {
	ID         string  `db:"id" json:"id"`
	Content    string  `db:"content" json:"content"`
	CourseName string  `db:"course_name" json:"courseName"`
	Similarity float64 `db:"similarity" json:"similarity"`
}
