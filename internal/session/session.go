// Package session orchestrates the chat exchange lifecycle: input
// validation, the single in-flight request with timeout, outcome handling,
// and transcript/panel bookkeeping.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/chokolattee/avocare/internal/backend"
	"github.com/chokolattee/avocare/internal/locale"
	"github.com/chokolattee/avocare/internal/panel"
	"github.com/chokolattee/avocare/internal/transcript"
)

const (
	// DefaultTimeout bounds one exchange wall-clock time. A request still
	// pending at the bound is actively cancelled.
	DefaultTimeout = 30 * time.Second

	// MaxInputLen caps user input length in runes.
	MaxInputLen = 1000
)

// Generic fallback texts for the three failure outcomes.
const (
	errorTextGeneric = "Sorry, something went wrong while answering. Please try again."
	errorTextOffline = "I can't reach the AvoCare service right now. Check your connection and try again."
	errorTextTimeout = "The answer took too long and the request was cancelled. Please try again."
)

// Backend is the slice of the chat service the controller needs.
type Backend interface {
	Chat(ctx context.Context, req *backend.ChatRequest) (*backend.ChatResponse, error)
}

// Event is emitted whenever the controller appends an assistant message
// asynchronously.
type Event struct {
	Message transcript.Message
}

// Config configures a controller.
type Config struct {
	Backend  Backend
	Language locale.Language
	// Timeout overrides DefaultTimeout; used by tests.
	Timeout time.Duration
}

// exchange is one submitted message and its pending response. Exactly one of
// success, failure, or timeout settles it; anything after that is a no-op.
type exchange struct {
	cancel  context.CancelFunc
	settled bool
}

// Controller owns the conversation state. All mutation happens under one
// lock, so outcome handling and transcript appends are atomic with respect
// to other submissions.
type Controller struct {
	mu sync.Mutex

	backend  Backend
	timeout  time.Duration
	language locale.Language
	cfg      locale.Config

	store   *transcript.Store
	panel   *panel.State
	busy    bool
	current *exchange
	closed  bool

	events chan Event
}

// New creates a controller seeded with the welcome message for
// cfg.Language.
func New(cfg Config) *Controller {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	lang := cfg.Language
	if lang == "" {
		lang = locale.English
	}
	loc := locale.ConfigFor(lang)

	store := transcript.NewStore()
	store.Append(transcript.New(transcript.Assistant, loc.Welcome))

	return &Controller{
		backend:  cfg.Backend,
		timeout:  timeout,
		language: lang,
		cfg:      loc,
		store:    store,
		panel:    panel.New(),
		events:   make(chan Event, 16),
	}
}

// Events delivers assistant messages appended after Submit returns. The
// channel is closed by Close.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Submit accepts one user message and starts its exchange. It reports
// whether the submission was accepted: empty input and submissions while an
// exchange is in flight are silently dropped. The user message is appended
// before Submit returns.
func (c *Controller) Submit(text string) bool {
	text = truncate(strings.TrimSpace(text), MaxInputLen)
	if text == "" {
		return false
	}

	c.mu.Lock()
	if c.busy || c.closed {
		c.mu.Unlock()
		return false
	}

	c.store.Append(transcript.New(transcript.User, text))
	c.busy = true

	// The request carries the configuration captured now; a language
	// switch while in flight does not change it.
	req := &backend.ChatRequest{
		Message:      text,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Language:     string(c.language),
		SystemPrompt: c.cfg.SystemPrompt,
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	ex := &exchange{cancel: cancel}
	c.current = ex
	c.mu.Unlock()

	go c.run(ctx, ex, req)
	return true
}

// run drives one exchange to its single outcome. The request races the
// timeout; the loser's continuation is disabled by the exchange's settled
// flag.
func (c *Controller) run(ctx context.Context, ex *exchange, req *backend.ChatRequest) {
	defer ex.cancel()

	type result struct {
		resp *backend.ChatResponse
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := c.backend.Chat(ctx, req)
		done <- result{resp, err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.resolve(ex, transcript.NewError(errorTextTimeout))
			return
		}
		// Teardown: the widget is gone, settle without touching state.
		c.settle(ex)

	case r := <-done:
		switch {
		case r.err == nil:
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				// Fulfilled after the bound already fired.
				c.resolve(ex, transcript.NewError(errorTextTimeout))
				return
			}
			c.resolve(ex, transcript.New(transcript.Assistant, r.resp.Text))

		case errors.Is(r.err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
			c.resolve(ex, transcript.NewError(errorTextTimeout))

		default:
			c.resolve(ex, failureMessage(r.err))
		}
	}
}

// failureMessage maps a backend error to the error-flagged assistant text.
func failureMessage(err error) transcript.Message {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		reason := apiErr.Reason
		if reason == "" {
			reason = errorTextGeneric
		}
		return transcript.NewError(reason)
	case errors.Is(err, backend.ErrMalformedResponse):
		return transcript.NewError(errorTextGeneric)
	default:
		return transcript.NewError(errorTextOffline)
	}
}

// resolve applies an exchange outcome exactly once: append the assistant
// message, clear the busy flag, and bump the unread count when the panel is
// not effectively open (sampled now, at append time).
func (c *Controller) resolve(ex *exchange, msg transcript.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ex.settled {
		return
	}
	ex.settled = true

	if c.current == ex {
		c.current = nil
		c.busy = false
	}
	if c.closed {
		return
	}

	c.store.Append(msg)
	c.panel.MarkUnread()

	select {
	case c.events <- Event{Message: msg}:
	default:
	}
}

// settle marks an exchange finished without appending anything. Used on
// teardown only.
func (c *Controller) settle(ex *exchange) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ex.settled {
		return
	}
	ex.settled = true
	if c.current == ex {
		c.current = nil
		c.busy = false
	}
}

// SwitchLanguage swaps the session configuration and reseeds the transcript
// with the new language's welcome message. An in-flight exchange is not
// cancelled; it completes with the configuration captured at submit time.
func (c *Controller) SwitchLanguage(lang locale.Language) {
	loc := locale.ConfigFor(lang)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.language = lang
	c.cfg = loc
	c.store.ReplaceAll([]transcript.Message{transcript.New(transcript.Assistant, loc.Welcome)})
}

// Clear resets the transcript to a single welcome message in the current
// language. In-flight exchanges are unaffected.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.ReplaceAll([]transcript.Message{transcript.New(transcript.Assistant, c.cfg.Welcome)})
}

// Close cancels any in-flight exchange and stops event delivery. State is
// never mutated after Close returns.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.current != nil {
		c.current.cancel()
	}
	close(c.events)
}

// Messages returns a snapshot of the transcript.
func (c *Controller) Messages() []transcript.Message {
	return c.store.Snapshot()
}

// Busy reports whether an exchange is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Language returns the active language.
func (c *Controller) Language() locale.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// Locale returns the active language configuration.
func (c *Controller) Locale() locale.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// OpenPanel requests the open transition; accepted only from closed.
func (c *Controller) OpenPanel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel.RequestOpen()
}

// ClosePanel requests the close transition; accepted only from open.
func (c *Controller) ClosePanel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel.RequestClose()
}

// FinishPanelTransition resolves an opening/closing transient.
func (c *Controller) FinishPanelTransition() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panel.FinishTransition()
}

// PanelVisibility returns the panel state.
func (c *Controller) PanelVisibility() panel.Visibility {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel.Visibility()
}

// PanelEffectivelyOpen reports whether the panel counts as open.
func (c *Controller) PanelEffectivelyOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel.EffectivelyOpen()
}

// Unread returns the unread assistant message count.
func (c *Controller) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel.Unread()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
