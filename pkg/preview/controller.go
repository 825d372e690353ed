// Package preview keeps the server-rendered preview in step with the
// operator's edits. Edits are debounced, requests are tagged with a
// sequence number and only the latest response is ever shown.
package preview

import (
	"context"
	"sync"
	"time"

	"github.com/pluqqy/certadmin/pkg/logger"
	"github.com/pluqqy/certadmin/pkg/request"
)

// Renderer produces a preview image for a payload.
type Renderer interface {
	GeneratePreview(ctx context.Context, payload request.Payload) ([]byte, error)
}

// State is what the console shows about the server preview.
type State struct {
	Loading bool
	Err     string
	Path    string
	Seq     uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) { c.debounce = NewDebouncer(d) }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) { c.log = l.WithComponent("preview") }
}

// WithOnUpdate registers a hook called after every state change. It runs
// outside the controller lock and may be called from timer goroutines.
func WithOnUpdate(fn func(State)) Option {
	return func(c *Controller) { c.onUpdate = fn }
}

// WithStoreDir sets where preview files are written.
func WithStoreDir(dir string) Option {
	return func(c *Controller) { c.store = NewResourceStore(dir) }
}

// Controller debounces edits into preview requests.
type Controller struct {
	mu       sync.Mutex
	renderer Renderer
	debounce *Debouncer
	store    *ResourceStore
	log      logger.Logger
	onUpdate func(State)

	ctx    context.Context
	cancel context.CancelFunc

	latest Snapshot
	key    string
	seq    uint64
	state  State
	closed bool
}

// NewController creates a controller around renderer.
func NewController(renderer Renderer, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		renderer: renderer,
		debounce: NewDebouncer(DefaultDelay),
		store:    NewResourceStore(""),
		log:      logger.NewNoop(),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify records the latest snapshot. When it differs from the previous
// one the quiet period restarts. It reports whether a render was scheduled.
func (c *Controller) Notify(s Snapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	key := s.Key()
	if key == c.key {
		return false
	}
	c.latest = s
	c.key = key
	c.debounce.Trigger(c.fire)
	return true
}

// Refresh cancels any pending run and renders the latest snapshot now.
// It blocks until the response has been handled.
func (c *Controller) Refresh() {
	c.debounce.Stop()
	c.mu.Lock()
	s := c.latest
	c.mu.Unlock()
	c.render(s)
}

// Invalidate releases the live preview and discards in-flight responses.
// Used when the template is replaced.
func (c *Controller) Invalidate() {
	c.debounce.Stop()
	c.mu.Lock()
	c.seq++
	c.key = ""
	c.store.Release()
	c.state = State{Seq: c.seq}
	st := c.state
	c.mu.Unlock()
	c.publish(st)
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close stops timers, cancels in-flight requests and releases the preview.
func (c *Controller) Close() {
	c.debounce.Stop()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	c.store.Close()
	c.state.Path = ""
}

func (c *Controller) fire() {
	c.mu.Lock()
	s := c.latest
	c.mu.Unlock()
	c.render(s)
}

func (c *Controller) render(s Snapshot) {
	c.mu.Lock()
	if c.closed || !s.Ready() {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	c.state.Loading = true
	c.state.Err = ""
	st := c.state
	c.mu.Unlock()
	c.publish(st)

	payload := request.ForPreview(s.Params, s.RowIndex)
	data, err := c.renderer.GeneratePreview(c.ctx, payload)

	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		c.log.Debug("Dropped stale preview response %d", seq)
		return
	}
	c.state.Loading = false
	if err != nil {
		c.state.Err = err.Error()
		c.log.Warn("Preview render failed: %v", err)
	} else if path, swapErr := c.store.Swap(data); swapErr != nil {
		c.state.Err = swapErr.Error()
		c.log.Error("Failed to store preview: %v", swapErr)
	} else {
		c.state.Path = path
		c.state.Seq = seq
	}
	st = c.state
	c.mu.Unlock()
	c.publish(st)
}

func (c *Controller) publish(st State) {
	if c.onUpdate != nil {
		c.onUpdate(st)
	}
}
