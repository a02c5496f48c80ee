package trends

import (
	"net/url"
	"strconv"
)

// DefaultTimeframe asks for all available history.
const DefaultTimeframe = "all"

// Query is the keyword/timeframe pair for one request. It cannot be changed
// once built.
type Query struct {
	keywords  []string
	timeframe string
}

// NewQuery copies keywords as given and substitutes DefaultTimeframe for an
// empty timeframe. Keywords are not trimmed or deduplicated.
func NewQuery(keywords []string, timeframe string) Query {
	if timeframe == "" {
		timeframe = DefaultTimeframe
	}
	return Query{keywords: copyStrings(keywords), timeframe: timeframe}
}

// Keywords returns a copy of the query's keywords in input order.
func (q Query) Keywords() []string {
	return copyStrings(q.keywords)
}

// Timeframe returns the requested time range, e.g. "today 5-y".
func (q Query) Timeframe() string {
	return q.timeframe
}

// First returns the leading keyword, or "" for a query without keywords.
func (q Query) First() string {
	if len(q.keywords) == 0 {
		return ""
	}
	return q.keywords[0]
}

// PayloadOptions are the session-wide request settings.
type PayloadOptions struct {
	Language string
	TZOffset int
	Geo      string
	Category int
	Property string
}

// Payload is an encoded, immutable trends request.
type Payload struct {
	query Query
	opts  PayloadOptions
}

// BuildPayload combines a query with the session options.
func BuildPayload(q Query, opts PayloadOptions) Payload {
	return Payload{query: NewQuery(q.keywords, q.timeframe), opts: opts}
}

// Keywords returns a copy of the payload's keywords.
func (p Payload) Keywords() []string {
	return p.query.Keywords()
}

// Timeframe returns the payload's time range.
func (p Payload) Timeframe() string { return p.query.timeframe }

// Params encodes the payload as URL query parameters. Each keyword is sent as
// its own kw parameter, so empty or space-padded keywords survive intact.
func (p Payload) Params() url.Values {
	v := url.Values{}
	for _, kw := range p.query.keywords {
		v.Add("kw", kw)
	}
	v.Set("timeframe", p.query.timeframe)
	v.Set("hl", p.opts.Language)
	v.Set("tz", strconv.Itoa(p.opts.TZOffset))
	v.Set("geo", p.opts.Geo)
	v.Set("cat", strconv.Itoa(p.opts.Category))
	v.Set("gprop", p.opts.Property)
	return v
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
