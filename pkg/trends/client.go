package trends

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrNoData means the service answered but had nothing for the request.
	ErrNoData = errors.New("no data returned")
	// ErrKeywordNotFound means a keyed result lacks the requested keyword.
	ErrKeywordNotFound = errors.New("keyword not found")
)

// maxErrorBody caps how much of a response body an error message repeats.
const maxErrorBody = 200

// StatusError is a non-200 answer from the trends service. The status code is
// part of the message so callers that only see error text can classify it.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut]
	}
	return fmt.Sprintf("trends API returned status %d: %s", e.Code, body)
}

// ResolutionCountry groups interest-by-region results by country.
const ResolutionCountry = "COUNTRY"

// RegionOptions tune an interest-by-region request.
type RegionOptions struct {
	Resolution       string
	IncludeLowVolume bool
	IncludeGeoCode   bool
}

// RelatedResult holds the two related-term rankings for a keyword.
type RelatedResult struct {
	Top    *ResultSet
	Rising *ResultSet
}

// Client is the search-trends service. Every call is one network round trip.
type Client interface {
	InterestOverTime(ctx context.Context, p Payload) (*TimeSeries, error)
	InterestByRegion(ctx context.Context, p Payload, opts RegionOptions) (*ResultSet, error)
	RelatedTopics(ctx context.Context, p Payload) (map[string]RelatedResult, error)
	RelatedQueries(ctx context.Context, p Payload) (map[string]RelatedResult, error)
	Suggestions(ctx context.Context, keyword string) (*ResultSet, error)
	TrendingSearches(ctx context.Context, region string) (*ResultSet, error)
	RealtimeTrendingSearches(ctx context.Context, region string) (*ResultSet, error)
}
