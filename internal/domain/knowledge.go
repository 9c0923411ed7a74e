package domain

import "time"

// KnowledgeRecord is one stored chunk of an ingested document: the chunk text
// plus its embedding vector. Records are append-only; the bot queries them at
// runtime for similarity search, and nothing in this service updates or
// deletes them.
type KnowledgeRecord struct {
	ID        int64
	Content   string
	Embedding []float32
	CreatedAt time.Time
}
