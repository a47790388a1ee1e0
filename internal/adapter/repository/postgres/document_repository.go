package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"studyrobo-api/internal/domain/entity"
	"studyrobo-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
)

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

// columns selected on reads; embedding is left out because rows are
// read for listing and ownership checks, never for the raw vector.
const documentColumns = `id, user_id, file_path, original_file_name, file_type, course_name, content, processing_status, created_at, updated_at`

// create document
func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()

	query := `
		INSERT INTO documents (id, user_id, file_path, original_file_name, file_type, course_name, content, processing_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.UserID, doc.FilePath, doc.OriginalFileName, doc.FileType,
		doc.CourseName, doc.Content, doc.ProcessingStatus, doc.CreatedAt, doc.UpdatedAt,
	)
	return err
}

// find document by id
func (r *documentRepository) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	var doc entity.Document
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	err := r.db.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// find document by id and user id
func (r *documentRepository) FindByIDAndUserID(ctx context.Context, id, userID string) (*entity.Document, error) {
	var doc entity.Document
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &doc, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// list documents for a user
func (r *documentRepository) List(ctx context.Context, userID string, page, limit int) ([]entity.Document, int, error) {
	offset := (page - 1) * limit

	var docs []entity.Document
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &docs, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int
	query = `SELECT COUNT(*) FROM documents WHERE user_id = $1`
	err = r.db.GetContext(ctx, &total, query, userID)
	if err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// UpdateProcessed writes the ingestion result in one statement. A nil
// embedding leaves the column NULL (no chunk embedded successfully).
func (r *documentRepository) UpdateProcessed(ctx context.Context, id string, content string, embedding []float32) error {
	query := `UPDATE documents SET content = $1, embedding = $2, processing_status = $3, updated_at = NOW() WHERE id = $4`

	var vec interface{}
	if embedding != nil {
		vec = pgvector.NewVector(embedding)
	}

	_, err := r.db.ExecContext(ctx, query, content, vec, entity.StatusCompleted, id)
	return err
}

// SearchSimilar ranks completed documents by cosine similarity against
// the query embedding.
func (r *documentRepository) SearchSimilar(ctx context.Context, embedding []float32, topK int, threshold float64) ([]entity.SimilarDocument, error) {
	query := `
		SELECT
			id,
			content,
			course_name,
			1 - (embedding <=> $1) AS similarity
		FROM documents
		WHERE embedding IS NOT NULL
		AND processing_status = $2
		AND (1 - (embedding <=> $1)) >= $3
		ORDER BY embedding <=> $1
		LIMIT $4
	`

	rows, err := r.db.QueryContext(ctx, query, pgvector.NewVector(embedding), entity.StatusCompleted, threshold, topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []entity.SimilarDocument
	for rows.Next() {
		var m entity.SimilarDocument
		if err := rows.Scan(&m.ID, &m.Content, &m.CourseName, &m.Similarity); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}

// delete document
func (r *documentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
