package domain

import (
	"reflect"
	"strings"

	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

// Fields every product returned with skip_pagination must carry.
var requiredProductFields = []string{"id", "name", "company_id", "list_price", "currency"}

const (
	relevanceSampleSize = 5
	relevanceThreshold  = 60.0

	categorySampleSize = 3

	// minimumStructureFields of requiredProductFields is enough for the structure check on a limited request.
	minimumStructureFields = 4

	maxPaginatedLimit = 50
)

// relevancePercent is the share of the first sampled products whose name,
// description or brand contains term, case-insensitively.
func relevancePercent(products []m.Record, term string) float64 {
	if len(products) == 0 {
		return 0
	}

	sample := products
	if len(sample) > relevanceSampleSize {
		sample = sample[:relevanceSampleSize]
	}

	needle := strings.ToLower(term)
	relevant := 0

	for _, product := range sample {
		text := strings.Join([]string{
			product.Text("name", ""),
			product.Text("description", ""),
			product.Text("brand", ""),
		}, " ")

		if strings.Contains(strings.ToLower(text), needle) {
			relevant++
		}
	}

	return float64(relevant) / float64(len(sample)) * 100
}

// categoryMatches counts how many of the first sampled products carry categoryID.
func categoryMatches(products []m.Record, categoryID any) (matched, sampled int) {
	sample := products
	if len(sample) > categorySampleSize {
		sample = sample[:categorySampleSize]
	}

	for _, product := range sample {
		if reflect.DeepEqual(product.Get("category_id"), categoryID) {
			matched++
		}
	}

	return matched, len(sample)
}

// presentFields returns the fields of want that the record carries.
func presentFields(record m.Record, want []string) []string {
	var present []string

	for _, field := range want {
		if record.Has(field) {
			present = append(present, field)
		}
	}

	return present
}

// limitIgnored judges a skip_pagination request sent with a limit.
// Exactly limit items is reported as a failure even though the catalogue may
// simply hold that many products.
func limitIgnored(count, limit int) bool {
	return count != limit
}
