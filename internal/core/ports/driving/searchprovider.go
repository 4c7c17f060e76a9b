package driving

import (
	"context"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
)

// SearchProvider answers the requests of the GNOME Shell search protocol.
// None of the methods fail: store errors degrade to empty results.
type SearchProvider interface {
	// InitialResultSet returns the identifiers matching terms.
	// Empty terms return every document.
	InitialResultSet(ctx context.Context, terms domain.SearchTerms) []string

	// SubsearchResultSet refines a previous result set with new terms.
	SubsearchResultSet(ctx context.Context, previous []string, terms domain.SearchTerms) []string

	// ResultMetas returns one meta per identifier, in input order.
	ResultMetas(ctx context.Context, ids []string) []domain.ResultMeta

	// ActivateResult opens the first file of the identified document.
	ActivateResult(ctx context.Context, id string, terms domain.SearchTerms, timestamp uint32)

	// LaunchSearch is accepted for protocol compliance and does nothing.
	LaunchSearch(ctx context.Context, terms domain.SearchTerms, timestamp uint32)
}
