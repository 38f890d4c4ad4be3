package ports

import (
	"context"

	"leetcode-export/internal/domain/model"
)

// RecordSink persists the complete export in a single write.
type RecordSink interface {
	Write(ctx context.Context, records []model.ProblemRecord) error
	Location() string
}
