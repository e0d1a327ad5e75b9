package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/reports"
	"github.com/aquafarm-erp/aquafarm-erp/internal/farm"
)

const warmupDateLayout = "2006-01-02"

// PondLister is the slice of the farm repository the warmup job needs.
type PondLister interface {
	ListPonds(ctx context.Context) ([]farm.Pond, error)
}

// ReportsWarmupJob pre-computes the balance sheet for the whole farm and for
// each active pond, caching the rendered view model in Redis so the report
// endpoint can serve it without touching the aggregation pipeline.
type ReportsWarmupJob struct {
	Assembler *reports.Assembler
	Ponds     PondLister
	Cache     *redis.Client
	Logger    *slog.Logger
	TTL       time.Duration
	clock     func() time.Time
}

// NewReportsWarmupJob wires dependencies for the warmup handler.
func NewReportsWarmupJob(assembler *reports.Assembler, ponds PondLister, cache *redis.Client, logger *slog.Logger, ttl time.Duration) *ReportsWarmupJob {
	return &ReportsWarmupJob{
		Assembler: assembler,
		Ponds:     ponds,
		Cache:     cache,
		Logger:    logger,
		TTL:       ttl,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// CacheKey names the Redis entry for one warmed balance sheet.
func CacheKey(asOf time.Time, pond string) string {
	return "reports:balance-sheet:" + asOf.Format(warmupDateLayout) + ":" + pond
}

// Handle processes reports:warmup tasks.
func (j *ReportsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Assembler == nil || j.Cache == nil {
		return errors.New("reports warmup: handler not configured")
	}
	var payload ReportsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	asOf, err := j.resolveAsOf(payload.AsOf)
	if err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger().With(slog.String("as_of", asOf.Format(warmupDateLayout)))
	logger.Info("starting reports warmup")

	warmed := 0
	if err := j.warm(ctx, asOf, reports.AllPonds(), "all"); err != nil {
		logger.Error("warm balance sheet", slog.String("pond", "all"), slog.Any("error", err))
		return err
	}
	warmed++

	if j.Ponds != nil {
		ponds, err := j.Ponds.ListPonds(ctx)
		if err != nil {
			logger.Error("list ponds", slog.Any("error", err))
			return err
		}
		for _, pond := range ponds {
			if !pond.Active {
				continue
			}
			key := strconv.FormatInt(pond.ID, 10)
			if err := j.warm(ctx, asOf, reports.OnePond(pond.ID), key); err != nil {
				logger.Error("warm balance sheet", slog.String("pond", key), slog.Any("error", err))
				return err
			}
			warmed++
		}
	}

	logger.Info("completed reports warmup", slog.Int("sheets", warmed))
	return nil
}

func (j *ReportsWarmupJob) warm(ctx context.Context, asOf time.Time, filter reports.PondFilter, pond string) error {
	warmCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	snap, err := j.Assembler.Assemble(warmCtx, asOf, filter)
	if err != nil {
		return err
	}
	vm := reports.NewBalanceSheetVM(snap, reports.Check(snap), reports.Ratios(snap))
	data, err := json.Marshal(vm)
	if err != nil {
		return fmt.Errorf("reports warmup: encode view model: %w", err)
	}
	return j.Cache.Set(warmCtx, CacheKey(asOf, pond), data, j.TTL).Err()
}

func (j *ReportsWarmupJob) resolveAsOf(raw string) (time.Time, error) {
	if raw == "" {
		now := j.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(warmupDateLayout, raw)
}

func (j *ReportsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskReportsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskReportsWarmup))
}

func (j *ReportsWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
