package beacon

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/Tap30/beacon-go/adapters"
	"github.com/hashicorp/go-multierror"
)

// ErrDispatcherStopped is returned by Enqueue after the dispatcher stopped.
var ErrDispatcherStopped = errors.New("dispatcher stopped")

// Dispatcher batches queued messages and uploads them through the transport.
//
// Every upload attempt, including each retry, stamps sentAt on all messages
// of the batch immediately before the transport is called. timestamp is
// never modified. Flushes are serialized, so a message is never part of two
// sends at once.
type Dispatcher struct {
	config    DispatcherConfig
	queue     *Queue
	transport TransportAdapter
	storage   StorageAdapter
	logger    LoggerAdapter
	metrics   *Metrics
	headers   map[string]string
	now       func() time.Time
	sleep     func(time.Duration)

	ticker       *time.Ticker
	stopChan     chan struct{}
	stopOnce     sync.Once
	stopped      bool
	flushMu      sync.Mutex
	wg           sync.WaitGroup
	timerStarted bool
	timerMu      sync.Mutex
}

func NewDispatcher(config DispatcherConfig, transport TransportAdapter, storage StorageAdapter, headers map[string]string) *Dispatcher {
	if config.MaxBatchSize <= 0 {
		config.MaxBatchSize = 10
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = 5 * time.Second
	}
	if config.RetryBaseDelay <= 0 {
		config.RetryBaseDelay = time.Second
	}
	return &Dispatcher{
		config:    config,
		queue:     NewQueue(),
		transport: transport,
		storage:   storage,
		logger:    adapters.NewPrintLoggerAdapter(adapters.LogLevelWarn),
		metrics:   NewMetrics(nil),
		headers:   headers,
		now:       time.Now,
		sleep:     time.Sleep,
		stopChan:  make(chan struct{}),
	}
}

// SetLoggerAdapter sets a custom logger adapter
func (d *Dispatcher) SetLoggerAdapter(logger LoggerAdapter) {
	d.logger = logger
}

// SetMetrics replaces the dispatcher metrics.
func (d *Dispatcher) SetMetrics(metrics *Metrics) {
	d.metrics = metrics
}

// Start restores messages persisted by a previous run.
func (d *Dispatcher) Start() error {
	messages, err := d.storage.Load()
	if err != nil {
		return err
	}
	d.queue.LoadFromSlice(messages)
	if len(messages) > 0 {
		d.logger.Info("Restored %d persisted messages", len(messages))
	}

	// Don't start timer yet - wait for first new message
	return nil
}

// Enqueue adds m to the queue. It returns ErrDispatcherStopped once Stop or
// StopWithoutFlush has begun.
func (d *Dispatcher) Enqueue(m Message) error {
	d.timerMu.Lock()
	defer d.timerMu.Unlock()

	if d.stopped {
		return ErrDispatcherStopped
	}
	d.queue.Enqueue(m)
	d.metrics.Enqueued.Inc()

	// Start timer on first new message
	d.startTimerLocked()

	if d.queue.Len() >= d.config.MaxBatchSize {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			_ = d.Flush()
		}()
	}
	return nil
}

func (d *Dispatcher) startTimerLocked() {
	if d.timerStarted {
		return
	}
	d.ticker = time.NewTicker(d.config.FlushInterval)
	d.timerStarted = true
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case <-d.ticker.C:
				_ = d.Flush()
			case <-d.stopChan:
				return
			}
		}
	}()
}

// Flush uploads everything currently queued, in batches of MaxBatchSize.
// Batches that still fail after retries are re-queued at the front in their
// original order and persisted once; their errors are returned together.
func (d *Dispatcher) Flush() error {
	d.flushMu.Lock()
	defer d.flushMu.Unlock()

	messages := d.queue.Drain()
	if len(messages) == 0 {
		return nil
	}

	d.logger.Debug("Starting flush operation")

	var result *multierror.Error
	var failed []Message
	for i := 0; i < len(messages); i += d.config.MaxBatchSize {
		end := i + d.config.MaxBatchSize
		if end > len(messages) {
			end = len(messages)
		}
		batch := messages[i:end]

		d.logger.Debug("Sending batch of %d messages", len(batch))
		if err := d.sendWithRetry(batch); err != nil {
			d.logger.Error("Failed to send batch: %v", err)
			result = multierror.Append(result, err)
			failed = append(failed, batch...)
		} else {
			d.logger.Debug("Successfully sent batch of %d messages", len(batch))
		}
	}

	if len(failed) > 0 {
		d.persist(failed)
	} else {
		d.clearStorage()
	}
	return result.ErrorOrNil()
}

func (d *Dispatcher) sendWithRetry(batch []Message) error {
	for attempt := 0; ; attempt++ {
		d.logger.Debug("Sending HTTP request, attempt %d/%d", attempt+1, d.config.MaxRetries+1)

		resp, err := d.send(batch)
		switch {
		case err == nil && resp.Status >= 200 && resp.Status < 300:
			d.metrics.Sent.Add(float64(len(batch)))
			return nil

		case err == nil && resp.Status >= 400 && resp.Status < 500 && resp.Status != http.StatusTooManyRequests:
			// Retrying a rejected batch cannot succeed. 429 is retried.
			d.logger.Warn("4xx client error, dropping messages", adapters.Fields{
				"status":        resp.Status,
				"messagesCount": len(batch),
			})
			d.metrics.Dropped.Add(float64(len(batch)))
			return nil
		}

		if err == nil {
			err = &HTTPError{Status: resp.Status}
		}
		if attempt >= d.config.MaxRetries {
			d.logger.Error("Send failed, max retries reached", adapters.Fields{
				"maxRetries":    d.config.MaxRetries,
				"messagesCount": len(batch),
				"error":         err.Error(),
			})
			return err
		}

		d.logger.Warn("Send failed, retrying", adapters.Fields{
			"attempt":    attempt + 1,
			"maxRetries": d.config.MaxRetries,
			"error":      err.Error(),
		})
		d.metrics.Retries.Inc()
		delay := d.backoff(attempt)
		d.logger.Debug("Retrying in %v", delay)
		d.sleep(delay)
	}
}

// send stamps sentAt on the batch and hands it to the transport. The stamp
// must be taken here, right before transmission, for the server's clock
// skew estimate to hold.
func (d *Dispatcher) send(batch []Message) (*Response, error) {
	ctx := context.Background()
	if d.config.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.SendTimeout)
		defer cancel()
	}

	sentAt := d.now()
	for _, m := range batch {
		m.SetSentAt(sentAt)
	}
	d.metrics.BatchSize.Observe(float64(len(batch)))

	return d.transport.Send(ctx, d.config.Endpoint, batch, d.headers)
}

func (d *Dispatcher) backoff(attempt int) time.Duration {
	base := d.config.RetryBaseDelay
	jitter := time.Duration(rand.Int63n(int64(base)))
	return base*time.Duration(1<<attempt) + jitter
}

// persist puts the failed messages of a flush back at the front of the
// queue and writes the whole queue to storage.
func (d *Dispatcher) persist(failed []Message) {
	d.queue.Requeue(failed)

	pending := d.queue.ToSlice()
	if err := d.storage.Save(pending); err != nil {
		d.logger.Error("Failed to persist messages: %v", err)
		return
	}
	d.metrics.Persisted.Add(float64(len(failed)))
}

// clearStorage drops persisted messages once nothing is left to resend.
// Messages enqueued during the flush keep storage as is until the next one.
func (d *Dispatcher) clearStorage() {
	if !d.queue.IsEmpty() {
		return
	}
	if err := d.storage.Clear(); err != nil {
		d.logger.Warn("Failed to clear storage: %v", err)
	}
}

func (d *Dispatcher) stopTimer() {
	d.stopOnce.Do(func() {
		d.timerMu.Lock()
		d.stopped = true
		if d.ticker != nil {
			d.ticker.Stop()
		}
		d.timerMu.Unlock()
		close(d.stopChan)
	})
	d.wg.Wait()
}

// Stop flushes the queue and persists whatever could not be sent.
func (d *Dispatcher) Stop() error {
	d.stopTimer()

	var result *multierror.Error
	if err := d.Flush(); err != nil {
		result = multierror.Append(result, err)
	}

	if pending := d.queue.ToSlice(); len(pending) > 0 {
		if err := d.storage.Save(pending); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// StopWithoutFlush stops the dispatcher and persists messages to storage without flushing to server
func (d *Dispatcher) StopWithoutFlush() error {
	d.stopTimer()

	// Skip flush, just save messages to storage
	messages := d.queue.ToSlice()
	if len(messages) > 0 {
		return d.storage.Save(messages)
	}
	return nil
}
