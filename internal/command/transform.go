package command

import (
	"fmt"

	"trends-desk/pkg/trends"
)

// RankRegions keeps the keyword's interest column, orders regions by it from
// highest to lowest (ties keep the service's order), and turns the region
// index into the leading column.
func RankRegions(rs *trends.ResultSet, keyword string) (*trends.ResultSet, error) {
	if rs == nil {
		return nil, fmt.Errorf("%w: interest by region for %q", trends.ErrNoData, keyword)
	}
	interest, err := rs.Select(keyword)
	if err != nil {
		return nil, err
	}
	sorted, err := interest.SortByDesc(keyword)
	if err != nil {
		return nil, err
	}
	return sorted.ResetIndex()
}

// TopRelated picks the "top" ranking for keyword out of a related-terms
// result and numbers its rows.
func TopRelated(related map[string]trends.RelatedResult, keyword, kind string) (*trends.ResultSet, error) {
	rr, ok := related[keyword]
	if !ok {
		return nil, fmt.Errorf("%w: no related %s for %q", trends.ErrKeywordNotFound, kind, keyword)
	}
	if rr.Top == nil {
		return nil, fmt.Errorf("%w: no top related %s for %q", trends.ErrNoData, kind, keyword)
	}
	return rr.Top.ResetIndex()
}
