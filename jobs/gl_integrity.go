package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/reports"
)

// GLIntegrityJob re-derives the accounting identity from the source modules
// and logs any drift between assets and liabilities plus equity.
type GLIntegrityJob struct {
	Assembler *reports.Assembler
	Logger    *slog.Logger
	clock     func() time.Time
}

// NewGLIntegrityJob wires dependencies for the integrity handler.
func NewGLIntegrityJob(assembler *reports.Assembler, logger *slog.Logger) *GLIntegrityJob {
	return &GLIntegrityJob{
		Assembler: assembler,
		Logger:    logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes gl:integrity tasks.
func (j *GLIntegrityJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Assembler == nil {
		return errors.New("gl integrity: handler not configured")
	}
	var payload GLIntegrityPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	asOf := j.now()
	if payload.AsOf != "" {
		parsed, err := time.Parse(warmupDateLayout, payload.AsOf)
		if err != nil {
			return asynq.SkipRetry
		}
		asOf = parsed
	}

	checkCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	snap, err := j.Assembler.Assemble(checkCtx, asOf, reports.AllPonds())
	if err != nil {
		j.logger().Error("assemble snapshot", slog.Any("error", err))
		return err
	}

	check := reports.Check(snap)
	logger := j.logger().With(
		slog.String("as_of", asOf.Format(warmupDateLayout)),
		slog.String("delta", check.Delta.StringFixed(2)),
		slog.Int("missing_amounts", snap.MissingAmounts),
	)
	if !check.Balanced {
		logger.Warn("general ledger out of balance")
		return nil
	}
	logger.Info("general ledger balanced")
	return nil
}

func (j *GLIntegrityJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskGLIntegrity))
	}
	return slog.Default().With(slog.String("job", TaskGLIntegrity))
}

func (j *GLIntegrityJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
