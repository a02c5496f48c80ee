package command

import "fmt"

// Action is one of the user-triggerable requests.
type Action int

const (
	ActionInterestOverTime Action = iota
	ActionInterestByRegion
	ActionRelatedTopics
	ActionRelatedQueries
	ActionSuggestions
	ActionTrendingSearches
	ActionRealtimeTrendingSearches
)

var actionNames = map[Action]string{
	ActionInterestOverTime:         "interest_over_time",
	ActionInterestByRegion:         "interest_by_region",
	ActionRelatedTopics:            "related_topics",
	ActionRelatedQueries:           "related_queries",
	ActionSuggestions:              "suggestions",
	ActionTrendingSearches:         "trending_searches",
	ActionRealtimeTrendingSearches: "realtime_trending_searches",
}

var actionLabels = map[Action]string{
	ActionInterestOverTime:         "Get Interest Over Time",
	ActionInterestByRegion:         "Get Interest by Region",
	ActionRelatedTopics:            "Get Related Topics",
	ActionRelatedQueries:           "Get Related Queries",
	ActionSuggestions:              "Get Suggestions",
	ActionTrendingSearches:         "Get Trending Searches",
	ActionRealtimeTrendingSearches: "Get Real-Time Trending Searches",
}

// Actions lists every action in button order.
func Actions() []Action {
	return []Action{
		ActionInterestOverTime,
		ActionInterestByRegion,
		ActionRelatedTopics,
		ActionRelatedQueries,
		ActionSuggestions,
		ActionTrendingSearches,
		ActionRealtimeTrendingSearches,
	}
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Label is the button caption for the action.
func (a Action) Label() string {
	return actionLabels[a]
}

// UsesKeywords reports whether the action reads the keyword field.
func (a Action) UsesKeywords() bool {
	return a != ActionTrendingSearches && a != ActionRealtimeTrendingSearches
}
