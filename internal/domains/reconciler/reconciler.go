package reconciler

//go:generate go run go.uber.org/mock/mockgen -source=./reconciler.go -destination=./mocks/reconciler_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"studyhall/config"
	"studyhall/infras/metrics"
	"studyhall/infras/otel"
	cabinModel "studyhall/internal/domains/cabin/model"
	cabinRepo "studyhall/internal/domains/cabin/repository"
	layoutModel "studyhall/internal/domains/layout/model"
	layoutRepo "studyhall/internal/domains/layout/repository"
	"studyhall/shared/constant"
	"studyhall/shared/logger"
	"time"

	"golang.org/x/sync/errgroup"
)

// Mapping maps logical cabin ids to physical cabin ids.
type Mapping map[string]string

// Inverse groups logical ids by the physical id they claim, each group sorted.
func (m Mapping) Inverse() map[string][]string {
	inverse := make(map[string][]string, len(m))
	for logicalID, physicalID := range m {
		inverse[physicalID] = append(inverse[physicalID], logicalID)
	}

	for _, logicalIDs := range inverse {
		slices.Sort(logicalIDs)
	}

	return inverse
}

type Result struct {
	Mapping          Mapping
	UnmappedLogical  []layoutModel.LogicalCabin
	UnmappedPhysical []cabinModel.Cabin
}

type Reconciler interface {
	// Reconcile loads the venue layout and directory and maps one onto the other.
	// On a load failure the result carries an empty mapping, which means unknown.
	Reconcile(ctx context.Context, venueID string) (Result, error)
}

type reconcilerImpl struct {
	layouts    layoutRepo.Layout
	cabins     cabinRepo.Cabin
	strategies []Strategy
	otel       otel.Otel
	metrics    *metrics.Metrics
}

func New(layouts layoutRepo.Layout, cabins cabinRepo.Cabin, cfg *config.Config, otel otel.Otel, metrics *metrics.Metrics) Reconciler {
	strategies := []Strategy{ExactName()}
	if cfg.Availability.ResolverEnabled {
		strategies = append(strategies, ServerLookup(cabins))
	}

	strategies = append(strategies, Positional())

	return NewWithStrategies(layouts, cabins, otel, metrics, strategies...)
}

func NewWithStrategies(
	layouts layoutRepo.Layout,
	cabins cabinRepo.Cabin,
	otel otel.Otel,
	metrics *metrics.Metrics,
	strategies ...Strategy,
) Reconciler {
	return &reconcilerImpl{
		layouts:    layouts,
		cabins:     cabins,
		strategies: strategies,
		otel:       otel,
		metrics:    metrics,
	}
}

func (r *reconcilerImpl) Reconcile(ctx context.Context, venueID string) (res Result, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reconciler.Reconcile")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(constant.OtelVenueAttributeKey, venueID)

	started := time.Now()
	defer func() {
		r.metrics.StageDuration.WithLabelValues(metrics.StageReconcile).Observe(time.Since(started).Seconds())
	}()

	res.Mapping = Mapping{}

	var (
		layout    layoutModel.Layout
		directory []cabinModel.Cabin
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var loadErr error

		layout, loadErr = r.layouts.Get(groupCtx, venueID)
		if loadErr != nil {
			return fmt.Errorf("failed to load layout: %w", loadErr)
		}

		return nil
	})

	group.Go(func() error {
		var loadErr error

		directory, loadErr = r.cabins.ListByVenue(groupCtx, venueID)
		if loadErr != nil {
			return fmt.Errorf("failed to load cabin directory: %w", loadErr)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		log := logger.ForVenue(venueID)
		log.Error().Err(err).Msg("reconciliation aborted")

		r.metrics.ReconcilePasses.WithLabelValues(metrics.ResultError).Inc()

		return res, err
	}

	res = r.match(ctx, venueID, layout.Cabins, directory)

	scope.SetAttributes(map[string]any{
		"mapped":            len(res.Mapping),
		"unmapped.logical":  len(res.UnmappedLogical),
		"unmapped.physical": len(res.UnmappedPhysical),
	})

	r.metrics.ReconcilePasses.WithLabelValues(metrics.ResultSuccess).Inc()

	return res, nil
}

func (r *reconcilerImpl) match(ctx context.Context, venueID string, logical []layoutModel.LogicalCabin, directory []cabinModel.Cabin) Result {
	log := logger.ForVenue(venueID)

	res := Result{Mapping: make(Mapping, len(logical))}

	for _, cabin := range logical {
		physicalID, strategy := r.first(ctx, venueID, cabin, directory)
		if physicalID == constant.Empty {
			log.Warn().Str("logical_id", cabin.ID).Str("name", cabin.Name).Msg("logical cabin has no physical counterpart")

			res.UnmappedLogical = append(res.UnmappedLogical, cabin)

			continue
		}

		res.Mapping[cabin.ID] = physicalID
		r.metrics.StrategyMatches.WithLabelValues(strategy).Inc()
	}

	inverse := res.Mapping.Inverse()

	for _, cabin := range directory {
		claims, ok := inverse[cabin.ID]
		if !ok {
			log.Warn().Str("physical_id", cabin.ID).Str("name", cabin.CabinName).Msg("physical cabin is not drawn in the layout")

			res.UnmappedPhysical = append(res.UnmappedPhysical, cabin)

			continue
		}

		if len(claims) > 1 {
			log.Warn().Str("physical_id", cabin.ID).Strs("logical_ids", claims).Msg("physical cabin claimed by several logical cabins")
		}
	}

	r.metrics.UnmappedCabins.WithLabelValues(metrics.SideLogical).Add(float64(len(res.UnmappedLogical)))
	r.metrics.UnmappedCabins.WithLabelValues(metrics.SidePhysical).Add(float64(len(res.UnmappedPhysical)))

	return res
}

// first runs the strategies in order. A strategy error counts as a miss.
func (r *reconcilerImpl) first(ctx context.Context, venueID string, cabin layoutModel.LogicalCabin, directory []cabinModel.Cabin) (string, string) {
	for _, strategy := range r.strategies {
		physicalID, err := strategy.Match(ctx, venueID, cabin, directory)
		if err != nil {
			log := logger.ForVenue(venueID)
			log.Error().Err(err).Str("strategy", strategy.Name).Str("logical_id", cabin.ID).Msg("matching strategy failed")

			continue
		}

		if physicalID != constant.Empty {
			return physicalID, strategy.Name
		}
	}

	return constant.Empty, constant.Empty
}
