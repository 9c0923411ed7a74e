package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/quillhaven/botadmin/internal/domain"
	"github.com/quillhaven/botadmin/internal/telemetry"
)

// TextExtractor produces plain text from raw document bytes.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// KnowledgeWriter persists one chunk with its embedding.
type KnowledgeWriter interface {
	Insert(ctx context.Context, rec *domain.KnowledgeRecord) error
}

// DocumentArchiver stores the raw uploaded document in object storage.
type DocumentArchiver interface {
	Archive(ctx context.Context, key, contentType string, data []byte) error
}

// IngestInput is one uploaded document.
type IngestInput struct {
	Filename string
	Data     []byte
}

// IngestService runs the per-document pipeline: extract, chunk, embed, store.
// Chunk failures are isolated; only a missing document or a failed/empty
// extraction aborts the whole request.
type IngestService struct {
	extractor TextExtractor
	embedder  EmbeddingClient
	writer    KnowledgeWriter
	archiver  DocumentArchiver
	chunkSize int
	progress  func(done, total int)
}

// NewIngestService creates an IngestService with the default chunk size.
func NewIngestService(extractor TextExtractor, embedder EmbeddingClient, writer KnowledgeWriter) *IngestService {
	return &IngestService{
		extractor: extractor,
		embedder:  embedder,
		writer:    writer,
		chunkSize: DefaultChunkSize,
	}
}

// NewIngestServiceWithArchiver additionally archives the raw PDF to object
// storage. Archival is best-effort and never fails an ingestion.
func NewIngestServiceWithArchiver(extractor TextExtractor, embedder EmbeddingClient, writer KnowledgeWriter, archiver DocumentArchiver) *IngestService {
	svc := NewIngestService(extractor, embedder, writer)
	svc.archiver = archiver
	return svc
}

// WithChunkSize overrides the chunk size. Non-positive values keep the default.
func (s *IngestService) WithChunkSize(size int) *IngestService {
	if size > 0 {
		s.chunkSize = size
	}
	return s
}

// WithProgress registers a callback invoked as each chunk is processed,
// successful or not. Used by the CLI to render a progress bar.
func (s *IngestService) WithProgress(fn func(done, total int)) *IngestService {
	s.progress = fn
	return s
}

// Ingest processes one uploaded document and reports how many chunks were
// stored. Individual chunk failures are logged and collected in the report;
// the loop never stops at a failed chunk.
func (s *IngestService) Ingest(ctx context.Context, input IngestInput) (*domain.IngestReport, error) {
	if len(input.Data) == 0 {
		return nil, domain.ErrNoFileUploaded
	}

	text, err := s.extractor.ExtractText(input.Data)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeExtraction, "failed to extract text from PDF", err)
	}
	if text == "" {
		return nil, domain.ErrNoExtractableText
	}

	if s.archiver != nil {
		key := fmt.Sprintf("uploads/%s.pdf", uuid.NewString())
		if err := s.archiver.Archive(ctx, key, "application/pdf", input.Data); err != nil {
			log.Printf("ingest: failed to archive document %q: %v", input.Filename, err)
		}
	}

	chunks := SplitText(text, s.chunkSize)
	report := &domain.IngestReport{TotalChunks: len(chunks)}

	for i, chunk := range chunks {
		if s.progress != nil {
			s.progress(i+1, len(chunks))
		}
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		embedding, err := s.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			chunkErr := domain.NewDomainErrorWithCause(domain.ErrCodeEmbedding, fmt.Sprintf("embedding failed for chunk %d", i), err)
			log.Printf("ingest: %v", chunkErr)
			telemetry.CaptureError(ctx, chunkErr)
			report.Failures = append(report.Failures, domain.ChunkFailure{Index: i, Stage: domain.ChunkStageEmbedding, Err: err})
			continue
		}

		rec := &domain.KnowledgeRecord{Content: chunk, Embedding: embedding}
		if err := s.writer.Insert(ctx, rec); err != nil {
			chunkErr := domain.NewDomainErrorWithCause(domain.ErrCodeStorage, fmt.Sprintf("storage failed for chunk %d", i), err)
			log.Printf("ingest: %v", chunkErr)
			telemetry.CaptureError(ctx, chunkErr)
			report.Failures = append(report.Failures, domain.ChunkFailure{Index: i, Stage: domain.ChunkStageStorage, Err: err})
			continue
		}

		report.Stored++
	}

	if report.Partial() {
		log.Printf("ingest: document %q partially ingested: %d/%d chunks stored", input.Filename, report.Stored, report.TotalChunks)
	}

	return report, nil
}
