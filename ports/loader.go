package ports

import (
	"context"

	"gosurvey/domain/survey"
)

// DatasetLoader produces an immutable survey snapshot from an external
// source. Load reads the source fully before returning and releases any
// underlying file handle; there is no partial or streaming contract.
//
// Implementations fail with core.ErrEmptyDataset when zero respondents were
// found, core.ErrParsing when a required sheet or header row is missing, and
// wrap any underlying I/O problem with core.ErrLoadFailed.
type DatasetLoader interface {
	Load(ctx context.Context, source string) (*survey.Dataset, error)
}
