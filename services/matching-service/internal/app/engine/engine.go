package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/util"
	orderreaderv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/order-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/snapshot/v1"
	"github.com/segmentio/kafka-go"
)

const (
	sourceKafka     = "kafka"
	sourceSubmitted = "submitted"

	finalSnapshotTimeout = 10 * time.Second
)

// Dispatcher applies one action to the book and publishes its events.
type Dispatcher interface {
	Dispatch(ctx context.Context, action orderbookv1.Action) ([]orderbookv1.Event, error)
}

// command is one unit of work for the processor. offset is -1 for actions that
// did not come from the order topic; action is nil for an undecodable message
// whose offset still has to advance.
type command struct {
	ctx    context.Context
	action orderbookv1.Action
	offset int64
	done   chan error
}

// Engine serializes commands from the order topic and from Submit into a
// single goroutine that owns the book, and snapshots the book periodically.
type Engine struct {
	// Core components
	orderbook     orderbookv1.Orderbook
	orderReader   orderreaderv1.OrderReader
	snapshotStore snapshotv1.Store
	dispatcher    Dispatcher
	logger        logger.Interface

	mu                 sync.RWMutex
	orderOffset        int64
	lastSnapshotOffset int64

	commands chan command
	running  atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Configuration
	snapshotInterval    time.Duration
	snapshotOffsetDelta int64
	readBackoff         time.Duration
}

// NewEngine creates a new Engine with default options and restores the book
// from the latest snapshot.
func NewEngine(
	ctx context.Context,
	orderbook orderbookv1.Orderbook,
	orderReader orderreaderv1.OrderReader,
	snapshotStore snapshotv1.Store,
	dispatcher Dispatcher,
	logger logger.Interface,
) (*Engine, error) {
	return NewEngineWithOptions(ctx, orderbook, orderReader, snapshotStore, dispatcher, logger, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options
func NewEngineWithOptions(
	ctx context.Context,
	orderbook orderbookv1.Orderbook,
	orderReader orderreaderv1.OrderReader,
	snapshotStore snapshotv1.Store,
	dispatcher Dispatcher,
	logger logger.Interface,
	options *Options,
) (*Engine, error) {
	e := &Engine{
		orderbook:     orderbook,
		orderReader:   orderReader,
		snapshotStore: snapshotStore,
		dispatcher:    dispatcher,
		logger:        logger,

		commands:            make(chan command, options.CommandBuffer),
		snapshotInterval:    options.SnapshotInterval,
		snapshotOffsetDelta: options.SnapshotOffsetDelta,
		readBackoff:         options.ReadBackoff,
		orderOffset:         -1,
		lastSnapshotOffset:  -1,
	}

	if err := e.loadSnapshot(ctx); err != nil {
		return nil, err
	}

	return e, nil
}

// Start positions the reader after the restored offset and starts the intake
// and processor goroutines.
func (e *Engine) Start(ctx context.Context) error {
	next := int64(kafka.FirstOffset)
	if offset := e.getOrderOffset(); offset >= 0 {
		next = offset + 1
	}

	if err := e.orderReader.SetOffset(next); err != nil {
		return err
	}

	e.ctx, e.cancel = context.WithCancel(ctx)
	e.running.Store(true)

	e.wg.Add(2)
	go e.runOrderReader()
	go e.runProcessor()

	e.logger.Info("Engine started",
		logger.NewField("symbol", e.orderbook.Security().Symbol),
		logger.NewField("offset", next),
		logger.NewField("status", e.orderbook.Status()),
	)

	return nil
}

// Stop gracefully shuts down the engine
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	// Wait for goroutines to finish with timeout
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// Submit queues action behind every command already accepted and waits for it
// to be applied. The returned error is the dispatch error, if any.
func (e *Engine) Submit(ctx context.Context, action orderbookv1.Action) error {
	if !e.running.Load() {
		return errors.NewErrorDetails("engine is not running", errors.GeneralInternalServerError, "engine")
	}

	cmd := command{ctx: ctx, action: action, offset: -1, done: make(chan error, 1)}
	select {
	case e.commands <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-e.ctx.Done():
		return errors.NewErrorDetails("engine is stopping", errors.GeneralInternalServerError, "engine")
	}

	select {
	case err := <-cmd.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-e.ctx.Done():
		return errors.NewErrorDetails("engine stopped before the action was confirmed", errors.GeneralInternalServerError, "engine")
	}
}

// Ready reports an error unless the processor is running.
func (e *Engine) Ready(ctx context.Context) error {
	if !e.running.Load() {
		return errors.NewErrorDetails("engine is not running", errors.GeneralInternalServerError, "engine")
	}
	return nil
}

// runOrderReader feeds decoded commands from the order topic to the processor.
func (e *Engine) runOrderReader() {
	defer e.wg.Done()
	defer e.orderReader.Close()

	for {
		msg, action, err := e.orderReader.ReadMessage(e.ctx)
		if e.ctx.Err() != nil {
			return
		}

		if err != nil {
			if !isUndecodable(err) {
				// the reader already logged the failure
				select {
				case <-e.ctx.Done():
					return
				case <-time.After(e.readBackoff):
				}
				continue
			}
			action = nil
		}

		ctx := util.WithCommandSource(util.WithCommandOffset(util.WithRequestID(e.ctx, ""), msg.Offset), sourceKafka)
		select {
		case e.commands <- command{ctx: ctx, action: action, offset: msg.Offset}:
		case <-e.ctx.Done():
			return
		}
	}
}

func isUndecodable(err error) bool {
	return errors.ErrorCodeEquals(err, errors.CommandDecodeError) || errors.ErrorCodeEquals(err, errors.UnknownActionError)
}

// runProcessor owns the book: it applies commands one at a time and takes
// snapshots between them.
func (e *Engine) runProcessor() {
	defer e.wg.Done()
	defer e.running.Store(false)

	ticker := time.NewTicker(e.snapshotInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Processor shutting down")
			if e.getOrderOffset() != e.getLastSnapshotOffset() {
				ctx, cancel := context.WithTimeout(context.Background(), finalSnapshotTimeout)
				e.createAndStoreSnapshot(ctx)
				cancel()
			}
			return
		case cmd := <-e.commands:
			e.process(cmd)
		case <-ticker.C:
			if e.shouldCreateSnapshot() {
				e.createAndStoreSnapshot(e.ctx)
			}
		}
	}
}

// process applies a single command
func (e *Engine) process(cmd command) {
	var err error
	if cmd.action == nil {
		e.logger.WarnContext(cmd.ctx, "Skipping undecodable command")
	} else {
		ctx := util.WithSymbol(cmd.ctx, cmd.action.Instrument())
		if cmd.offset < 0 {
			ctx = util.WithCommandSource(ctx, sourceSubmitted)
		}

		var events []orderbookv1.Event
		events, err = e.dispatcher.Dispatch(ctx, cmd.action)
		if err != nil {
			e.logger.ErrorContext(ctx, err, logger.NewField("action", cmd.action.Type()))
		}

		// Submitted commands never reach the order topic, so a replay would
		// miss them: persist their effect right away.
		if cmd.offset < 0 && len(events) > 0 {
			e.createAndStoreSnapshot(ctx)
		}
	}

	if cmd.offset >= 0 {
		e.setOrderOffset(cmd.offset)
	}
	if cmd.done != nil {
		cmd.done <- err
	}
}

// shouldCreateSnapshot checks if a snapshot should be created
func (e *Engine) shouldCreateSnapshot() bool {
	e.mu.RLock()
	currentOffset := e.orderOffset
	lastSnapshotOffset := e.lastSnapshotOffset
	e.mu.RUnlock()

	if currentOffset < 0 {
		return false
	}

	return currentOffset-lastSnapshotOffset >= e.snapshotOffsetDelta
}

// createAndStoreSnapshot creates and stores a snapshot
func (e *Engine) createAndStoreSnapshot(ctx context.Context) {
	currentOffset := e.getOrderOffset()
	snapshot := &snapshotv1.Snapshot{
		OrderOffset: currentOffset,
		Book:        e.orderbook.CreateSnapshot(),
	}

	if err := e.snapshotStore.Store(ctx, snapshot); err != nil {
		e.logger.ErrorContext(ctx, err, logger.NewField("action", "store_snapshot"))
		return
	}
	e.setLastSnapshotOffset(currentOffset)
}

// Thread-safe getters and setters
func (e *Engine) getOrderOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.orderOffset
}

func (e *Engine) setOrderOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orderOffset = offset
}

func (e *Engine) getLastSnapshotOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastSnapshotOffset
}

func (e *Engine) setLastSnapshotOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSnapshotOffset = offset
}

// loadSnapshot loads and restores the orderbook from snapshot
func (e *Engine) loadSnapshot(ctx context.Context) error {
	snapshot, err := e.snapshotStore.LoadStore(ctx)
	if err != nil {
		return err
	}

	if snapshot == nil {
		return nil
	}

	if err := e.orderbook.RestoreOrderbook(snapshot.Book); err != nil {
		return errors.NewErrorDetails("snapshot rejected by orderbook", errors.SnapshotRestoreError, "book").WithCause(err)
	}

	e.mu.Lock()
	e.orderOffset = snapshot.OrderOffset
	e.lastSnapshotOffset = snapshot.OrderOffset
	e.mu.Unlock()

	e.logger.Info("Orderbook restored from snapshot",
		logger.NewField("orderOffset", snapshot.OrderOffset),
		logger.NewField("orders", len(snapshot.Book.Orders)),
		logger.NewField("completed", len(snapshot.Book.Completed)),
		logger.NewField("status", snapshot.Book.Status),
	)

	return nil
}

// GetOrderOffset returns the offset of the last applied order topic message.
func (e *Engine) GetOrderOffset() int64 {
	return e.getOrderOffset()
}

// GetLastSnapshotOffset returns the last snapshot offset
func (e *Engine) GetLastSnapshotOffset() int64 {
	return e.getLastSnapshotOffset()
}
