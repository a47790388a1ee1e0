package document

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"studyrobo-api/internal/domain/entity"
	"studyrobo-api/internal/domain/repository"
	"studyrobo-api/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// embedTimeout bounds each individual embedding call; expiry means that
// chunk is skipped like any other embedding failure.
const embedTimeout = 30 * time.Second

type ObjectStore interface {
	Download(ctx context.Context, path string) ([]byte, error)
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	Remove(ctx context.Context, path string) error
}

type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type ChatService interface {
	GenerateAnswer(ctx context.Context, query, context string) (string, error)
}

type DocumentUsecase struct {
	docRepo     repository.DocumentRepository
	store       ObjectStore
	embedder    EmbeddingService
	chatService ChatService
	extractor   *TextExtractor
	chunker     *Chunker
	log         *logger.Logger

	embedConcurrency int
	matchThreshold   float64
	matchCount       int
}

func NewDocumentUsecase(
	docRepo repository.DocumentRepository,
	store ObjectStore,
	embedder EmbeddingService,
	chatService ChatService,
	chunker *Chunker,
	log *logger.Logger,
	embedConcurrency int,
	matchThreshold float64,
	matchCount int,
) *DocumentUsecase {
	if embedConcurrency < 1 {
		embedConcurrency = 1
	}
	return &DocumentUsecase{
		docRepo:          docRepo,
		store:            store,
		embedder:         embedder,
		chatService:      chatService,
		extractor:        NewTextExtractor(),
		chunker:          chunker,
		log:              log,
		embedConcurrency: embedConcurrency,
		matchThreshold:   matchThreshold,
		matchCount:       matchCount,
	}
}

// ProcessDocument runs the ingestion pipeline for one document: fetch,
// extract, chunk, embed, persist. Fetch and persist failures abort with
// no row written; extraction and embedding failures degrade into
// diagnostic content or a NULL embedding, so the document always
// converges to completed.
func (uc *DocumentUsecase) ProcessDocument(ctx context.Context, documentID, filePath string) error {
	uc.log.Info("processing document", "documentId", documentID, "filePath", filePath)

	// 1 fetch
	data, err := uc.store.Download(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}

	name := path.Base(filePath)
	kind, ext := ClassifyFile(filePath)

	var content string
	var embedding []float32

	if kind == KindUnsupported {
		// no extraction attempted and nothing worth embedding; the row
		// still completes so search never silently skips it
		content = fmt.Sprintf("[Document: %s] - Unsupported file type: %s", name, ext)
	} else {
		// 2 extract
		content = uc.extractText(name, kind, data)
		uc.log.Info("extracted text", "documentId", documentID, "chars", len(content))

		// 3 chunk
		chunks := uc.chunker.Split(content)

		// 4 embed and mean-pool
		if len(chunks) > 0 {
			vectors := uc.embedChunks(ctx, chunks)
			uc.log.Info("embedded chunks", "documentId", documentID, "total", len(chunks), "embedded", len(vectors))

			if len(vectors) > 0 {
				embedding, err = MeanPool(vectors)
				if err != nil {
					// mixed dimensionality from the embedding service;
					// treat like a total embedding failure
					uc.log.Warn("mean pooling failed", "documentId", documentID, "error", err)
					embedding = nil
				}
			}
		}
	}

	// a cancelled run must not commit a partial update
	if err := ctx.Err(); err != nil {
		return err
	}

	// 5 persist
	if err := uc.docRepo.UpdateProcessed(ctx, documentID, content, embedding); err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	uc.log.Info("document processed", "documentId", documentID, "hasEmbedding", embedding != nil)
	return nil
}

// extractText dispatches on file kind and renders extraction
// diagnostics into placeholder content, so downstream search never sees
// an empty document.
func (uc *DocumentUsecase) extractText(name string, kind FileKind, data []byte) string {
	switch kind {
	case KindPDF:
		text, err := uc.extractor.ExtractFromPDF(data)
		if err != nil {
			uc.log.Warn("PDF extraction failed", "file", name, "error", err)
			return fmt.Sprintf("[Document: %s] - Error extracting text: %s", name, err.Error())
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Sprintf("[PDF Document: %s] - No text content could be extracted from this PDF", name)
		}
		return text

	case KindDOCX:
		text, err := uc.extractor.ExtractFromDOCX(data)
		if err != nil {
			uc.log.Warn("DOCX extraction failed", "file", name, "error", err)
			return fmt.Sprintf("[Document: %s] - Error extracting text: %s", name, err.Error())
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Sprintf("[DOCX Document: %s] - No text content could be extracted from this DOCX", name)
		}
		return text

	default:
		// unreachable: unsupported kinds are handled before extraction
		return fmt.Sprintf("[Document: %s] - Unsupported file type: unknown", name)
	}
}

// embedChunks fans the chunk embedding calls out with bounded
// concurrency and waits for all of them before returning. Failed chunks
// are dropped; the surviving vectors keep chunk order.
func (uc *DocumentUsecase) embedChunks(ctx context.Context, chunks []string) [][]float32 {
	results := make([][]float32, len(chunks))

	var g errgroup.Group
	g.SetLimit(uc.embedConcurrency)

	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, embedTimeout)
			defer cancel()

			vec, err := uc.embedder.Embed(callCtx, chunk)
			if err != nil {
				uc.log.Warn("chunk embedding failed, skipping", "chunk", i, "error", err)
				return nil
			}
			results[i] = vec
			return nil
		})
	}
	// join barrier: reduction must not start with calls in flight
	_ = g.Wait()

	vectors := make([][]float32, 0, len(results))
	for _, v := range results {
		if v != nil {
			vectors = append(vectors, v)
		}
	}
	return vectors
}

// UploadDocument stores the raw file, creates a pending document row
// and kicks ingestion off in the background.
func (uc *DocumentUsecase) UploadDocument(
	ctx context.Context,
	userID string,
	filename string,
	fileData []byte,
	contentType string,
	courseName string,
) (*entity.Document, error) {
	_, ext := ClassifyFile(filename)
	fileType := ext
	if fileType == "" {
		fileType = "unknown"
	}

	filePath := fmt.Sprintf("%s/%s.%s", userID, uuid.New().String(), fileType)

	if err := uc.store.Upload(ctx, filePath, fileData, contentType); err != nil {
		return nil, fmt.Errorf("storage upload failed: %w", err)
	}

	doc := &entity.Document{
		UserID:           userID,
		FilePath:         filePath,
		OriginalFileName: filename,
		FileType:         fileType,
		CourseName:       courseName,
		Content:          "",
		ProcessingStatus: entity.StatusPending,
	}

	if err := uc.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document record: %w", err)
	}

	// process in the background; a failed run leaves the row pending and
	// the same documentId/filePath pair can be re-triggered safely
	go func() {
		defer func() {
			if r := recover(); r != nil {
				uc.log.Error("panic in document processing", "documentId", doc.ID, "panic", r)
			}
		}()

		if err := uc.ProcessDocument(context.Background(), doc.ID, doc.FilePath); err != nil {
			uc.log.Error("document processing failed", "documentId", doc.ID, "error", err)
		}
	}()

	return doc, nil
}

// list documents
func (uc *DocumentUsecase) ListDocuments(ctx context.Context, userID string, page, limit int) ([]entity.Document, int, error) {
	return uc.docRepo.List(ctx, userID, page, limit)
}

// get document by id
func (uc *DocumentUsecase) GetDocumentByID(ctx context.Context, documentID, userID string) (*entity.Document, error) {
	return uc.docRepo.FindByIDAndUserID(ctx, documentID, userID)
}

// DeleteDocument removes the stored object and the row. A storage
// delete failure is logged but does not keep the row alive.
func (uc *DocumentUsecase) DeleteDocument(ctx context.Context, documentID, userID string) error {
	doc, err := uc.docRepo.FindByIDAndUserID(ctx, documentID, userID)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document not found")
	}

	if doc.FilePath != "" {
		if err := uc.store.Remove(ctx, doc.FilePath); err != nil {
			uc.log.Warn("failed to delete stored file", "documentId", documentID, "error", err)
		}
	}

	return uc.docRepo.Delete(ctx, documentID)
}

// QueryDocuments answers a study question from the user's completed
// documents: embed the query, rank documents by cosine similarity and
// let the chat model answer over the retrieved context.
func (uc *DocumentUsecase) QueryDocuments(ctx context.Context, query string) (string, []entity.SimilarDocument, error) {
	callCtx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()

	queryEmbedding, err := uc.embedder.Embed(callCtx, query)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	matches, err := uc.docRepo.SearchSimilar(ctx, queryEmbedding, uc.matchCount, uc.matchThreshold)
	if err != nil {
		return "", nil, fmt.Errorf("failed to search documents: %w", err)
	}

	if len(matches) == 0 {
		return "No relevant study materials found for your query.", nil, nil
	}

	var contextBuilder strings.Builder
	for i, match := range matches {
		contextBuilder.WriteString(fmt.Sprintf("Document %d (Similarity: %.3f):\n%s\n\n", i+1, match.Similarity, match.Content))
	}

	answer, err := uc.chatService.GenerateAnswer(ctx, query, contextBuilder.String())
	if err != nil {
		return "", matches, fmt.Errorf("failed to generate answer: %w", err)
	}

	return answer, matches, nil
}
