package services

import (
	"context"
	"errors"
	"fmt"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/platform/obs"
	"meetup-point-service/internal/ports"
	"meetup-point-service/internal/render"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrency = 8

// Pipeline runs one meetup update: resolve both origins, find candidates
// around their midpoint, score them and select the winner.
type Pipeline struct {
	provider       ports.MapsProvider
	policy         ScoringPolicy
	maxConcurrency int
}

func NewPipeline(provider ports.MapsProvider, policy ScoringPolicy, maxConcurrency int) *Pipeline {
	if policy == "" {
		policy = PolicyStrict
	}
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}
	return &Pipeline{provider: provider, policy: policy, maxConcurrency: maxConcurrency}
}

// Run executes the pipeline and renders its artifacts onto act.Surface as it goes.
// On error the surface keeps whatever was rendered before the failing step.
func (p *Pipeline) Run(ctx context.Context, act Action) (_ *domain.Meetup, err error) {
	defer obs.Time(ctx, "pipeline.Run")(&err)

	req := act.Request
	if err := req.Validate(); err != nil {
		return nil, err
	}
	surface := act.Surface

	origins, err := p.resolveOrigins(ctx, req.Origins)
	if err != nil {
		return nil, fmt.Errorf("run meetup: %w", err)
	}
	for _, o := range origins {
		info, err := render.OriginInfo(o)
		if err != nil {
			return nil, fmt.Errorf("run meetup: %w", err)
		}
		surface.RenderMarker(o.Location, domain.IconOrigin, o.Address, info)
	}

	midpoint := domain.Midpoint(origins[0].Location, origins[1].Location)
	radius := req.Radius.Meters()
	surface.RenderCircle(midpoint, radius)

	found, err := p.provider.NearbySearch(ctx, midpoint, req.Keyword, radius)
	if err != nil {
		return nil, fmt.Errorf("run meetup: search %q: %w", req.Keyword, err)
	}

	open := FilterOpen(found)
	if len(open) == 0 {
		return nil, fmt.Errorf("run meetup: %w", &domain.ProviderError{
			Kind:    domain.KindSearch,
			Subject: req.Keyword,
			Status:  "ZERO_RESULTS",
		})
	}

	scored, err := p.scoreCandidates(ctx, req, open)
	if err != nil {
		return nil, fmt.Errorf("run meetup: %w", err)
	}

	winner, err := SelectClosest(scored)
	if err != nil {
		return nil, fmt.Errorf("run meetup: %w", err)
	}

	for i := range scored {
		c := &scored[i]
		info, err := render.CandidateInfo(c, req.Origins)
		if err != nil {
			return nil, fmt.Errorf("run meetup: %w", err)
		}
		c.Marker = surface.RenderMarker(c.Location, domain.IconCandidate, c.Name, info)
	}
	surface.Restyle(scored[winner].Marker, domain.IconWinner)

	dest := scored[winner].ResolvedAddress()
	m := &domain.Meetup{
		SessionID:    act.SessionID,
		Generation:   act.Generation,
		Request:      req,
		Origins:      origins,
		Midpoint:     midpoint,
		RadiusMeters: radius,
		Candidates:   scored,
		Winner:       winner,
	}
	for i := range m.Directions {
		m.Directions[i] = domain.DirectionsAction{
			Origin:      req.Origins[i],
			Destination: dest,
			Travel:      req.Travel,
		}
	}

	return m, nil
}

// resolveOrigins geocodes both addresses concurrently; either failure aborts both.
func (p *Pipeline) resolveOrigins(ctx context.Context, addresses [2]string) ([2]domain.Origin, error) {
	var out [2]domain.Origin

	g, gctx := errgroup.WithContext(ctx)
	for i, addr := range addresses {
		i, addr := i, addr
		g.Go(func() error {
			loc, err := p.provider.Geocode(gctx, addr)
			if err != nil {
				return fmt.Errorf("resolve origin %d: %w", i+1, err)
			}
			out[i] = domain.Origin{Address: addr, Location: loc}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

// scoreCandidates enriches and scores every candidate concurrently. Results
// land in index-addressed slots so provider order is preserved.
func (p *Pipeline) scoreCandidates(
	ctx context.Context,
	req domain.MeetupRequest,
	candidates []domain.Candidate,
) ([]domain.Candidate, error) {
	slots := make([]domain.Candidate, len(candidates))
	copy(slots, candidates)
	failed := make([]error, len(slots))

	var g *errgroup.Group
	gctx := ctx
	if p.policy == PolicyStrict {
		g, gctx = errgroup.WithContext(ctx)
	} else {
		g = new(errgroup.Group)
	}
	g.SetLimit(p.maxConcurrency)

	for i := range slots {
		i := i
		g.Go(func() error {
			c := &slots[i]
			c.Details = p.enrich(gctx, c.PlaceID)

			d, err := p.provider.TravelDurations(gctx, req.Origins, c.Location, req.Travel)
			if err != nil {
				err = fmt.Errorf("score candidate %q: %w", c.Name, err)
				if p.policy == PolicySkip {
					zap.L().Warn("candidate skipped",
						zap.String("req_id", obs.RequestID(ctx)),
						zap.String("place_id", c.PlaceID),
						zap.Error(err),
					)
					failed[i] = err
					return nil
				}
				return err
			}

			c.Durations = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if p.policy == PolicyStrict {
		return slots, nil
	}

	out := make([]domain.Candidate, 0, len(slots))
	var firstErr error
	for i, c := range slots {
		if failed[i] != nil {
			if firstErr == nil {
				firstErr = failed[i]
			}
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, firstErr
	}

	return out, nil
}

// enrich fetches optional details; any failure degrades to nil.
func (p *Pipeline) enrich(ctx context.Context, placeID string) *domain.Details {
	d, err := p.provider.PlaceDetails(ctx, placeID)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			zap.L().Warn("place details unavailable",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.String("place_id", placeID),
				zap.Error(err),
			)
		}
		return nil
	}
	return d
}
