package cluster

import (
	"fmt"

	"go.uber.org/zap"
)

// Clusterer is implemented by every clustering engine. Fit partitions data
// (one row per point) and returns the resulting Report.
type Clusterer interface {
	Fit(data [][]float64) (*Report, error)
}

var (
	_ Clusterer = (*HAC)(nil)
	_ Clusterer = (*KMeans)(nil)
)

// validateK checks 1 <= k <= n.
func validateK(k, n int) error {
	if k < 1 || k > n {
		return &InvalidParameterError{
			Param:  "k",
			Value:  k,
			Reason: fmt.Sprintf("must be between 1 and the number of points (%d)", n),
		}
	}
	return nil
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
