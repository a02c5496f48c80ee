package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trends-desk/internal/dispatch"
	"trends-desk/pkg/logger"
	"trends-desk/pkg/trends"
)

// InterestOverTimeTitle is the chart title for the interest-over-time action.
const InterestOverTimeTitle = "Interest Over Time"

// Presenter shows results to the user.
type Presenter interface {
	DisplayTable(rs *trends.ResultSet)
	DisplayTimeSeries(ts *trends.TimeSeries, title string) error
}

// Settings are the session-wide request parameters.
type Settings struct {
	Payload        trends.PayloadOptions
	TrendingRegion string
	RealtimeRegion string
}

// Surface maps each Action to one dispatched trends call and a display.
type Surface struct {
	client     trends.Client
	dispatcher *dispatch.Dispatcher
	presenter  Presenter
	settings   Settings
	log        *logger.Logger
}

// NewSurface creates a new command surface
func NewSurface(client trends.Client, dispatcher *dispatch.Dispatcher, presenter Presenter, settings Settings) *Surface {
	return &Surface{
		client:     client,
		dispatcher: dispatcher,
		presenter:  presenter,
		settings:   settings,
		log:        logger.GetLogger().WithField("component", "command_surface"),
	}
}

// Run performs action for q. Any returned error has already been shown to
// the user.
func (s *Surface) Run(ctx context.Context, action Action, q trends.Query) error {
	log := s.log.WithFields(map[string]interface{}{
		"action":    action.String(),
		"action_id": uuid.NewString(),
	})
	if action.UsesKeywords() {
		log = log.WithField("keywords", len(q.Keywords()))
	}
	ctx = logger.NewContext(ctx, log)
	start := time.Now()
	log.Info("Action started")

	var err error
	switch action {
	case ActionInterestOverTime:
		err = s.InterestOverTime(ctx, q)
	case ActionInterestByRegion:
		err = s.InterestByRegion(ctx, q)
	case ActionRelatedTopics:
		err = s.RelatedTopics(ctx, q)
	case ActionRelatedQueries:
		err = s.RelatedQueries(ctx, q)
	case ActionSuggestions:
		err = s.Suggestions(ctx, q)
	case ActionTrendingSearches:
		err = s.TrendingSearches(ctx)
	case ActionRealtimeTrendingSearches:
		err = s.RealtimeTrendingSearches(ctx)
	default:
		err = s.report(fmt.Errorf("unknown action %d", int(action)))
	}

	log = log.WithField("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		log.WithError(err).Warn("Action did not complete")
		return err
	}
	log.Info("Action completed")
	return nil
}

// InterestOverTime charts every keyword of q over q's timeframe.
func (s *Surface) InterestOverTime(ctx context.Context, q trends.Query) error {
	p := trends.BuildPayload(q, s.settings.Payload)
	ts, err := dispatch.Run(ctx, s.dispatcher, func(ctx context.Context) (*trends.TimeSeries, error) {
		return s.client.InterestOverTime(ctx, p)
	})
	if err != nil {
		return err
	}
	if ts == nil || ts.Len() == 0 || len(ts.KeywordColumns()) == 0 {
		return s.report(fmt.Errorf("%w: no interest over time for %q", trends.ErrNoData, q.Keywords()))
	}
	return s.report(s.presenter.DisplayTimeSeries(ts, InterestOverTimeTitle))
}

// InterestByRegion ranks countries by interest in the first keyword.
func (s *Surface) InterestByRegion(ctx context.Context, q trends.Query) error {
	single := singleKeyword(q)
	keyword := single.First()
	p := trends.BuildPayload(single, s.settings.Payload)
	opts := trends.RegionOptions{
		Resolution:       trends.ResolutionCountry,
		IncludeLowVolume: true,
		IncludeGeoCode:   true,
	}

	rs, err := dispatch.Run(ctx, s.dispatcher, func(ctx context.Context) (*trends.ResultSet, error) {
		return s.client.InterestByRegion(ctx, p, opts)
	})
	if err != nil {
		return err
	}

	ranked, err := RankRegions(rs, keyword)
	if err != nil {
		return s.report(err)
	}
	s.presenter.DisplayTable(ranked)
	return nil
}

// RelatedTopics shows the top related topics for the first keyword.
func (s *Surface) RelatedTopics(ctx context.Context, q trends.Query) error {
	return s.related(ctx, q, "topics", s.client.RelatedTopics)
}

// RelatedQueries shows the top related queries for the first keyword.
func (s *Surface) RelatedQueries(ctx context.Context, q trends.Query) error {
	return s.related(ctx, q, "queries", s.client.RelatedQueries)
}

// Suggestions lists the service's suggestions for the first keyword.
func (s *Surface) Suggestions(ctx context.Context, q trends.Query) error {
	keyword := q.First()
	rs, err := dispatch.Run(ctx, s.dispatcher, func(ctx context.Context) (*trends.ResultSet, error) {
		return s.client.Suggestions(ctx, keyword)
	})
	if err != nil {
		return err
	}
	if rs == nil {
		rs = &trends.ResultSet{}
	}
	s.presenter.DisplayTable(rs)
	return nil
}

// TrendingSearches lists today's trending searches for the configured region.
func (s *Surface) TrendingSearches(ctx context.Context) error {
	region := s.settings.TrendingRegion
	return s.trending(ctx, func(ctx context.Context) (*trends.ResultSet, error) {
		return s.client.TrendingSearches(ctx, region)
	})
}

// RealtimeTrendingSearches lists real-time trending stories.
func (s *Surface) RealtimeTrendingSearches(ctx context.Context) error {
	region := s.settings.RealtimeRegion
	return s.trending(ctx, func(ctx context.Context) (*trends.ResultSet, error) {
		return s.client.RealtimeTrendingSearches(ctx, region)
	})
}

type relatedFetch func(ctx context.Context, p trends.Payload) (map[string]trends.RelatedResult, error)

func (s *Surface) related(ctx context.Context, q trends.Query, kind string, fetch relatedFetch) error {
	single := singleKeyword(q)
	keyword := single.First()
	p := trends.BuildPayload(single, s.settings.Payload)

	related, err := dispatch.Run(ctx, s.dispatcher, func(ctx context.Context) (map[string]trends.RelatedResult, error) {
		return fetch(ctx, p)
	})
	if err != nil {
		return err
	}

	top, err := TopRelated(related, keyword, kind)
	if err != nil {
		return s.report(err)
	}
	s.presenter.DisplayTable(top)
	return nil
}

func (s *Surface) trending(ctx context.Context, op dispatch.Operation[*trends.ResultSet]) error {
	rs, err := dispatch.Run(ctx, s.dispatcher, op)
	if err != nil {
		return err
	}
	if rs == nil {
		return s.report(fmt.Errorf("%w: trending searches", trends.ErrNoData))
	}
	out, err := rs.ResetIndex()
	if err != nil {
		return s.report(err)
	}
	s.presenter.DisplayTable(out)
	return nil
}

// report shows a failure that happened after the dispatched call returned.
func (s *Surface) report(err error) error {
	if err != nil {
		s.dispatcher.Notifier().Failed(err)
	}
	return err
}
