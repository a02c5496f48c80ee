package command

import (
	"strings"

	"trends-desk/pkg/trends"
)

// ParseKeywords splits the keyword field on commas. Whitespace around the
// commas is kept and an empty field yields one empty keyword; whatever the
// trends service makes of that is reported like any other failure.
func ParseKeywords(raw string) []string {
	return strings.Split(raw, ",")
}

// ParseQuery builds the query for the current contents of the two input
// fields. An empty timeframe means all available history.
func ParseQuery(keywords, timeframe string) trends.Query {
	return trends.NewQuery(ParseKeywords(keywords), timeframe)
}

// singleKeyword narrows q to its first keyword over the full history, the
// shape every per-keyword action asks for.
func singleKeyword(q trends.Query) trends.Query {
	return trends.NewQuery([]string{q.First()}, trends.DefaultTimeframe)
}
