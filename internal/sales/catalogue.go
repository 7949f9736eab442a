package sales

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ginjaninja78/compute-sales/internal/types"
)

// =============================================================================
// DUPLICATE POLICY
// =============================================================================

// DuplicatePolicy decides what happens when a title appears more than once
// in the catalogue.
type DuplicatePolicy string

const (
	// DuplicateOverride keeps the last entry for a title. This is the default.
	DuplicateOverride DuplicatePolicy = "override"

	// DuplicateKeepFirst keeps the first entry for a title.
	DuplicateKeepFirst DuplicatePolicy = "keep_first"

	// DuplicateReject refuses a catalogue with repeated titles.
	DuplicateReject DuplicatePolicy = "reject"
)

// ErrDuplicateTitle is matched by errors returned under DuplicateReject.
var ErrDuplicateTitle = errors.New("duplicate catalogue title")

// DuplicateTitleError lists the titles that appear more than once.
type DuplicateTitleError struct {
	Titles []string
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicateTitle, strings.Join(e.Titles, ", "))
}

func (e *DuplicateTitleError) Unwrap() error { return ErrDuplicateTitle }

// ParseDuplicatePolicy converts a config or flag value into a policy.
// An empty string selects DuplicateOverride.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", DuplicateOverride:
		return DuplicateOverride, nil
	case DuplicateKeepFirst, "first":
		return DuplicateKeepFirst, nil
	case DuplicateReject:
		return DuplicateReject, nil
	}
	return "", fmt.Errorf("unknown duplicate policy %q (want override, keep_first or reject)", s)
}

// =============================================================================
// PRICE INDEX
// =============================================================================

// PriceIndex maps product titles to unit prices. It is read-only once built.
type PriceIndex struct {
	prices     map[string]types.Number
	duplicates []string
}

// NewPriceIndex builds an index with last-write-wins semantics.
func NewPriceIndex(entries []types.CatalogueEntry) *PriceIndex {
	// DuplicateOverride never fails.
	index, _ := BuildPriceIndex(entries, DuplicateOverride)
	return index
}

// BuildPriceIndex builds an index applying the given duplicate policy.
// Only DuplicateReject can return an error.
func BuildPriceIndex(entries []types.CatalogueEntry, policy DuplicatePolicy) (*PriceIndex, error) {
	index := &PriceIndex{prices: make(map[string]types.Number, len(entries))}
	seen := make(map[string]bool)

	for _, entry := range entries {
		if _, exists := index.prices[entry.Title]; exists {
			if !seen[entry.Title] {
				index.duplicates = append(index.duplicates, entry.Title)
				seen[entry.Title] = true
			}
			if policy == DuplicateKeepFirst {
				continue
			}
		}
		index.prices[entry.Title] = entry.Price
	}

	if policy == DuplicateReject && len(index.duplicates) > 0 {
		return nil, &DuplicateTitleError{Titles: index.duplicates}
	}

	return index, nil
}

// Lookup returns the price for a title.
func (p *PriceIndex) Lookup(title string) (types.Number, bool) {
	price, ok := p.prices[title]
	return price, ok
}

// Len returns the number of distinct titles.
func (p *PriceIndex) Len() int {
	return len(p.prices)
}

// Duplicates returns the titles that appeared more than once, in the order
// their first repeat was seen.
func (p *PriceIndex) Duplicates() []string {
	return append([]string(nil), p.duplicates...)
}
