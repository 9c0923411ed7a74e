package domain

// ChunkStage identifies which pipeline stage a chunk failed at.
type ChunkStage string

const (
	ChunkStageEmbedding ChunkStage = "embedding"
	ChunkStageStorage   ChunkStage = "storage"
)

// ChunkFailure records one chunk that could not be stored. Failures are
// absorbed during ingestion; callers of the HTTP API only see the stored
// count, so this is the internal record that makes partial failure debuggable.
type ChunkFailure struct {
	Index int
	Stage ChunkStage
	Err   error
}

// IngestReport is the aggregate result of ingesting one document.
type IngestReport struct {
	// TotalChunks is the number of chunks produced from the extracted text,
	// including whitespace-only chunks that are never sent for embedding.
	TotalChunks int

	// Stored is the number of chunks that were embedded and written to the
	// knowledge store. This is what the upload endpoint reports.
	Stored int

	// Failures lists chunks that hit an embedding or storage error.
	Failures []ChunkFailure
}

// Partial reports whether some but not all attempted chunks failed.
func (r *IngestReport) Partial() bool {
	return len(r.Failures) > 0 && r.Stored > 0
}
