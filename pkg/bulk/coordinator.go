// Package bulk runs one mutation per id concurrently and reports every id
// as either succeeded or failed. There is no ordering between ids and no
// rollback: one failure never affects another id.
package bulk

import (
	"context"
	"errors"
	"fmt"

	"portfolio-cms-be/internal/pkg/logger"
	"portfolio-cms-be/internal/repository/contract"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

const (
	logModule = "BULK"

	DefaultConcurrency = 8
)

// Action mutates a single record.
type Action func(ctx context.Context, id string) error

type Failure struct {
	Id     string `json:"id"`
	Reason string `json:"reason"`
}

// Result partitions the distinct input ids: each appears in exactly one
// of Succeeded or Failed, in input order.
type Result struct {
	Succeeded []string  `json:"succeeded"`
	Failed    []Failure `json:"failed"`
}

func (r Result) Total() int {
	return len(r.Succeeded) + len(r.Failed)
}

func (r Result) FailedIds() []string {
	out := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		out[i] = f.Id
	}
	return out
}

type Config struct {
	// Concurrency bounds in-flight actions; <= 0 uses DefaultConcurrency.
	Concurrency int
	Logger      logger.ILogger
}

type Coordinator struct {
	concurrency int
	logger      logger.ILogger
}

func NewCoordinator(cfg Config) *Coordinator {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	l := cfg.Logger
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Coordinator{concurrency: cfg.Concurrency, logger: l}
}

type outcome struct {
	err error
}

// Run executes action for every distinct id. It never returns early: a
// cancelled context turns the ids not yet started into failures.
func (c *Coordinator) Run(ctx context.Context, ids []string, action Action) Result {
	ctx, span := otel.Tracer("portfolio-cms-be/bulk").Start(ctx, "bulk.Run")
	defer span.End()

	unique := dedupe(ids)
	span.SetAttributes(attribute.Int("bulk.ids", len(unique)))

	outcomes := make([]outcome, len(unique))
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, id := range unique {
		g.Go(func() error {
			outcomes[i] = outcome{err: runOne(ctx, id, action)}
			return nil
		})
	}
	_ = g.Wait()

	result := Result{Succeeded: []string{}, Failed: []Failure{}}
	for i, id := range unique {
		if err := outcomes[i].err; err != nil {
			reason := reasonOf(err)
			result.Failed = append(result.Failed, Failure{Id: id, Reason: reason})
			c.logger.Warn(logModule, "bulk item failed", map[string]interface{}{"id": id, "reason": reason})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}

	span.SetAttributes(
		attribute.Int("bulk.succeeded", len(result.Succeeded)),
		attribute.Int("bulk.failed", len(result.Failed)),
	)
	if len(result.Failed) > 0 {
		span.SetStatus(codes.Error, "partial failure")
	}
	c.logger.Info(logModule, "bulk run finished", map[string]interface{}{
		"total":     len(unique),
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failed),
	})
	return result
}

func runOne(ctx context.Context, id string, action Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return err
	}
	return action(ctx, id)
}

func reasonOf(err error) string {
	var merr *contract.MutationError
	if errors.As(err, &merr) && merr.Reason != "" {
		return merr.Reason
	}
	return err.Error()
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
