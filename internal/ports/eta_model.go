package ports

import (
	"context"
	"eta-service/internal/domain"
)

// Contract for the pre-trained regression model. Implementations are loaded
// or constructed once at startup and are read-only afterwards.
type ETAModel interface {
	// Predict travel time in minutes for one feature row. The predicted
	// value is passed through unvalidated; plausibility is a training-time
	// concern.
	Predict(ctx context.Context, row domain.FeatureRow) (float64, error)

	// Version identifies the loaded artifact for response metadata.
	Version() string
}
