package tableread

import (
	"fmt"

	"github.com/gyeh/apptbill/internal/model"
)

// ValidateHeader checks that the export carries the columns the transform cannot
// default. Column names are matched exactly.
func ValidateHeader(header []string) error {
	for _, h := range header {
		if h == model.ColClientName {
			return nil
		}
	}
	return fmt.Errorf("header: %w", model.ErrMissingClientName)
}

// MissingRecommended returns the columns the transform reads that are absent
// from header. Their values default to "" in every billing row.
func MissingRecommended(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range model.RecommendedColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
