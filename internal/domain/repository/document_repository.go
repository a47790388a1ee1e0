package repository

import (
	"context"

	"studyrobo-api/internal/domain/entity"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	FindByID(ctx context.Context, id string) (*entity.Document, error)
	FindByIDAndUserID(ctx context.Context, id, userID string) (*entity.Document, error)
	List(ctx context.Context, userID string, page, limit int) ([]entity.Document, int, error)
	// UpdateProcessed is the ingestion pipeline's single write: content,
	// embedding (nil leaves the column NULL) and the completed status.
	UpdateProcessed(ctx context.Context, id string, content string, embedding []float32) error
	SearchSimilar(ctx context.Context, embedding []float32, topK int, threshold float64) ([]entity.SimilarDocument, error)
	Delete(ctx context.Context, id string) error
}
