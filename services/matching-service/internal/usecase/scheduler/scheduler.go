package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/util"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/exchange/services/matching-service/pkg/config"
	"github.com/robfig/cron/v3"
)

const submitTimeout = 10 * time.Second

// Submitter accepts actions into the serialized command stream.
type Submitter interface {
	Submit(ctx context.Context, action orderbookv1.Action) error
}

// Scheduler submits UpdateStatus actions at the configured times of day.
type Scheduler struct {
	cron      *cron.Cron
	symbol    string
	submitter Submitter
	logger    logger.Interface

	ctx context.Context
}

// NewScheduler registers one cron entry per non-empty spec in cfg. Specs use
// the standard five field format and are evaluated in cfg.Timezone.
func NewScheduler(cfg config.ScheduleConfig, symbol string, submitter Submitter, log logger.Interface) (*Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, errors.NewErrorDetails(fmt.Sprintf("unknown timezone %q", cfg.Timezone), errors.SchedulerConfigError, "timezone").WithCause(err)
	}

	cronLog := cronLogger{logger: log}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog)),
		),
		symbol:    symbol,
		submitter: submitter,
		logger:    log,
		ctx:       context.Background(),
	}

	entries := []struct {
		field  string
		spec   string
		status orderbookv1.MarketStatus
	}{
		{field: "pre_open", spec: cfg.PreOpen, status: orderbookv1.MarketStatusPreOpen},
		{field: "open", spec: cfg.Open, status: orderbookv1.MarketStatusOpen},
		{field: "close", spec: cfg.Close, status: orderbookv1.MarketStatusClosed},
	}
	for _, entry := range entries {
		if entry.spec == "" {
			continue
		}
		if _, err := s.cron.AddFunc(entry.spec, s.job(entry.status)); err != nil {
			return nil, errors.NewErrorDetails(fmt.Sprintf("invalid %s schedule %q", entry.field, entry.spec), errors.SchedulerConfigError, entry.field).WithCause(err)
		}
	}

	return s, nil
}

// Start runs the cron loop in its own goroutine. Jobs submit with ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	s.logger.Info("Session scheduler started", logger.NewField("entries", len(s.cron.Entries())))
}

// Stop stops scheduling and returns a context done when running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Next returns the next activation time of each registered transition.
func (s *Scheduler) Next() []time.Time {
	entries := s.cron.Entries()
	next := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		next = append(next, entry.Next)
	}
	return next
}

func (s *Scheduler) job(status orderbookv1.MarketStatus) func() {
	return func() {
		ctx := util.WithCommandSource(util.WithRequestID(s.ctx, ""), "scheduler")
		ctx, cancel := context.WithTimeout(ctx, submitTimeout)
		defer cancel()

		action := orderbookv1.UpdateStatus{Symbol: s.symbol, Status: status}
		if err := s.submitter.Submit(ctx, action); err != nil {
			s.logger.ErrorContext(ctx, errors.TracerFromError(err), logger.NewField("status", status))
			return
		}
		s.logger.InfoContext(ctx, "Scheduled status change submitted", logger.NewField("status", status))
	}
}

// cronLogger adapts logger.Interface to cron.Logger.
type cronLogger struct {
	logger logger.Interface
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, toFields(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(errors.NewTracer(msg).Wrap(err), toFields(keysAndValues)...)
}

func toFields(keysAndValues []any) []logger.Field {
	fields := make([]logger.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields = append(fields, logger.NewField(fmt.Sprint(keysAndValues[i]), keysAndValues[i+1]))
	}
	return fields
}
