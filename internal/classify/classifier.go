// Package classify wraps the external image classifier. The model itself is
// a black box behind HTTP; this package only normalizes its output into the
// ordered prediction sequence the decision engine consumes.
package classify

import (
	"context"

	"github.com/fieldlab/crop-advisor/internal/pestinfer"
)

// DefaultTopK is how many competing disease hypotheses the engine considers.
const DefaultTopK = 3

type Classifier interface {
	// Classify returns predictions in descending confidence order,
	// truncated to top-K, with confidences in [0,1].
	Classify(ctx context.Context, image []byte, filename string) ([]pestinfer.DiseasePrediction, error)
}

// StaticClassifier answers every request with a fixed prediction sequence.
// Used in tests and in the CLI demo path.
type StaticClassifier struct {
	Predictions []pestinfer.DiseasePrediction
}

func (s *StaticClassifier) Classify(ctx context.Context, image []byte, filename string) ([]pestinfer.DiseasePrediction, error) {
	return append([]pestinfer.DiseasePrediction(nil), s.Predictions...), nil
}
