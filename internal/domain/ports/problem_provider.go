package ports

import (
	"context"

	"leetcode-export/internal/domain/model"
)

// ProblemLister enumerates problem slugs from the problemset listing.
type ProblemLister interface {
	ListSlugs(ctx context.Context, target int) ([]string, error)
}

// ProblemFetcher retrieves the full record for a single slug.
// A nil record with a nil error means the problem had no usable data.
type ProblemFetcher interface {
	FetchProblem(ctx context.Context, slug string) (*model.ProblemRecord, error)
}
