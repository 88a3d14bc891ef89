package beacon

import (
	"errors"
	"sync"
	"time"

	"github.com/Tap30/beacon-go/adapters"
	"github.com/Tap30/beacon-go/payload"
	"github.com/hashicorp/go-multierror"
)

const maxNameLength = 255

var errNotInitialized = errors.New("client not initialized. Call Init() before recording messages")

type Client struct {
	config    ClientConfig
	context   *ContextManager
	identity  *IdentityManager
	dispatch  *Dispatcher
	transport TransportAdapter
	storage   StorageAdapter
	logger    LoggerAdapter
	metrics   *Metrics

	initialized bool
	mu          sync.RWMutex
}

// NewClient creates a new mobile analytics client
func NewClient(config ClientConfig) (*Client, error) {
	// Validate required fields
	if config.APIKey == "" {
		return nil, errors.New("APIKey is required")
	}
	if config.Endpoint == "" {
		return nil, errors.New("Endpoint is required")
	}
	if config.Transport == nil {
		return nil, errors.New("Transport is required")
	}
	if config.Storage == nil {
		return nil, errors.New("Storage is required")
	}

	// Set defaults
	if config.FlushInterval == 0 {
		config.FlushInterval = 5 * time.Second
	}
	if config.MaxBatchSize <= 0 {
		config.MaxBatchSize = 10
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.RetryBaseDelay == 0 {
		config.RetryBaseDelay = time.Second
	}

	client := &Client{
		config:    config,
		context:   NewContextManager(),
		identity:  NewIdentityManager(config.AnonymousID),
		transport: config.Transport,
		storage:   config.Storage,
		metrics:   NewMetrics(config.Registerer),
	}

	// Use provided logger or default
	if config.Logger != nil {
		client.logger = config.Logger
	} else {
		client.logger = adapters.NewPrintLoggerAdapter(adapters.LogLevelWarn)
	}

	return client, nil
}

func (c *Client) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	apiKeyHeader := "X-API-Key"
	if c.config.APIKeyHeader != nil {
		apiKeyHeader = *c.config.APIKeyHeader
	}

	headers := map[string]string{
		apiKeyHeader: c.config.APIKey,
	}

	dispatcherConfig := DispatcherConfig{
		Endpoint:       c.config.Endpoint,
		FlushInterval:  c.config.FlushInterval,
		MaxBatchSize:   c.config.MaxBatchSize,
		MaxRetries:     c.config.MaxRetries,
		RetryBaseDelay: c.config.RetryBaseDelay,
		SendTimeout:    c.config.SendTimeout,
	}

	c.dispatch = NewDispatcher(dispatcherConfig, c.transport, c.storage, headers)
	c.dispatch.SetLoggerAdapter(c.logger)
	c.dispatch.SetMetrics(c.metrics)
	if err := c.dispatch.Start(); err != nil {
		return err
	}

	c.initialized = true
	c.logger.Info("Client initialized successfully")
	return nil
}

// SetContext attaches a value to the context of every following message.
func (c *Client) SetContext(key string, value any) error {
	if err := validateName("context key", key); err != nil {
		return err
	}
	c.context.Set(key, value)
	return nil
}

func (c *Client) GetContext() payload.Context {
	return c.context.Snapshot()
}

// AnonymousID returns the device's current anonymous ID.
func (c *Client) AnonymousID() string {
	anonymousID, _ := c.identity.Get()
	return anonymousID
}

// UserID returns the identified user, if any.
func (c *Client) UserID() string {
	_, userID := c.identity.Get()
	return userID
}

// Identify sets the current user and records their traits.
func (c *Client) Identify(userID string, traits Traits, opts Options) error {
	if err := validateName("user ID", userID); err != nil {
		return err
	}
	if err := c.checkInitialized(); err != nil {
		return err
	}
	c.identity.SetUserID(userID)
	anonymousID, _ := c.identity.Get()
	return c.enqueue(payload.NewIdentify(anonymousID, c.context.Snapshot(), userID, opts, traits))
}

// Track records an action performed by the current user.
func (c *Client) Track(event string, properties Properties, opts Options) error {
	if err := validateName("event name", event); err != nil {
		return err
	}
	anonymousID, userID := c.identity.Get()
	return c.enqueue(payload.NewTrack(anonymousID, c.context.Snapshot(), userID, opts, event, properties))
}

// Screen records a screen view.
func (c *Client) Screen(category, name string, properties Properties, opts Options) error {
	if category == "" && name == "" {
		return errors.New("either category or name must be provided")
	}
	anonymousID, userID := c.identity.Get()
	return c.enqueue(payload.NewScreen(anonymousID, c.context.Snapshot(), userID, opts, category, name, properties))
}

// Page records a page view inside a web view.
func (c *Client) Page(category, name string, properties Properties, opts Options) error {
	if category == "" && name == "" {
		return errors.New("either category or name must be provided")
	}
	anonymousID, userID := c.identity.Get()
	return c.enqueue(payload.NewPage(anonymousID, c.context.Snapshot(), userID, opts, category, name, properties))
}

// Group associates the current user with a group.
func (c *Client) Group(groupID string, traits Traits, opts Options) error {
	if err := validateName("group ID", groupID); err != nil {
		return err
	}
	anonymousID, userID := c.identity.Get()
	return c.enqueue(payload.NewGroup(anonymousID, c.context.Snapshot(), userID, opts, groupID, traits))
}

// Alias links the current identity to newID, which becomes the user ID of
// every following message. previousId is the prior user ID, or the
// anonymous ID if the user was never identified.
func (c *Client) Alias(newID string, opts Options) error {
	if err := validateName("alias ID", newID); err != nil {
		return err
	}
	if err := c.checkInitialized(); err != nil {
		return err
	}
	anonymousID, _ := c.identity.Get()
	previousID := c.identity.SetUserID(newID)
	if previousID == "" {
		previousID = anonymousID
	}
	return c.enqueue(payload.NewAlias(anonymousID, c.context.Snapshot(), newID, opts, previousID))
}

// Reset forgets the current user and rotates the anonymous ID, e.g. on logout.
func (c *Client) Reset() {
	c.identity.Reset()
}

// enqueue holds the read lock until the message is queued so Close cannot
// stop the dispatcher in between.
func (c *Client) enqueue(m Message) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return errNotInitialized
	}
	if !m.Identified() {
		c.logger.Warn("Message has neither anonymousId nor userId and cannot be attributed", adapters.Fields{
			"type": m.Type().String(),
		})
	}

	c.logger.Debug("Recording %s message", m.Type())
	return c.dispatch.Enqueue(m)
}

func (c *Client) checkInitialized() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return errNotInitialized
	}
	return nil
}

func validateName(what, value string) error {
	if len(value) == 0 {
		return errors.New(what + " cannot be empty")
	}
	if len(value) > maxNameLength {
		return errors.New(what + " cannot exceed 255 characters")
	}
	return nil
}

// Flush uploads all queued messages now.
func (c *Client) Flush() error {
	c.mu.RLock()
	initialized := c.initialized
	c.mu.RUnlock()

	if !initialized {
		c.logger.Warn("Flush called before initialization")
		return nil
	}

	c.logger.Debug("Flushing messages")
	return c.dispatch.Flush()
}

// Close flushes pending messages, persists what could not be sent and
// releases the storage adapter.
func (c *Client) Close() error {
	return c.close(true)
}

// CloseWithoutFlush stops the client and persists messages to storage without flushing to server
func (c *Client) CloseWithoutFlush() error {
	return c.close(false)
}

func (c *Client) close(flush bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return nil
	}

	var result *multierror.Error
	if flush {
		c.logger.Info("Closing client")
		if err := c.dispatch.Stop(); err != nil {
			result = multierror.Append(result, err)
		}
	} else {
		c.logger.Info("Closing client without flush")
		if err := c.dispatch.StopWithoutFlush(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	c.initialized = false
	if err := c.storage.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
