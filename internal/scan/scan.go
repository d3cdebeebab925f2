// Package scan owns the request lifecycle for a single address scan: one
// in-flight GET, a busy flag scoped to the call, and ordered delivery of
// results to the sink.
package scan

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/addrsentry/addrsentry/internal/api/riskapi"
	"github.com/addrsentry/addrsentry/internal/config"
	"github.com/addrsentry/addrsentry/internal/history"
	"github.com/addrsentry/addrsentry/internal/model"
	"github.com/addrsentry/addrsentry/internal/render"
	"github.com/addrsentry/addrsentry/internal/settings"
)

// AssessmentClient fetches a risk assessment for one address from the
// given backend base URL.
type AssessmentClient interface {
	Analyze(ctx context.Context, base, address string) (*model.RiskAssessment, error)
}

// Sink receives each built panel. The previous panel is replaced wholesale.
type Sink interface {
	Show(p render.Panel)
}

// Recorder persists completed scans. Optional.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) error
}

// Outcome is the result of one scan attempt. Exactly one of Assessment and
// Err is set; Stale marks a completion that was superseded by a newer scan
// and therefore not rendered.
type Outcome struct {
	Address    string
	Assessment *model.RiskAssessment
	Err        error
	Stale      bool
}

// Session is the state of the scan currently owned by the controller. A
// new scan supersedes it.
type Session struct {
	Address string
	Seq     uint64
}

// Controller orchestrates scans. All collaborators are injected so the
// flow is testable without a live backend or filesystem.
type Controller struct {
	store    settings.Store
	client   AssessmentClient
	sink     Sink
	recorder Recorder
	logger   zerolog.Logger

	seq      atomic.Uint64 // latest issued scan id
	inFlight atomic.Int32

	mu      sync.Mutex
	session Session
}

// Options configures a Controller. Store, Client and Sink are required;
// Recorder is optional.
type Options struct {
	Store    settings.Store
	Client   AssessmentClient
	Sink     Sink
	Recorder Recorder
}

// NewController creates a scan controller.
func NewController(opts Options) *Controller {
	return &Controller{
		store:    opts.Store,
		client:   opts.Client,
		sink:     opts.Sink,
		recorder: opts.Recorder,
		logger:   log.With().Str("component", "scan_controller").Logger(),
	}
}

// Session returns the scan the controller currently owns.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Busy reports whether a request is outstanding. The caller uses it to
// disable its scan trigger; the controller itself stays callable so that
// ordering is still enforced if a trigger slips through.
func (c *Controller) Busy() bool {
	return c.inFlight.Load() > 0
}

// Scan runs one scan attempt to completion. Empty or whitespace-only input
// is a silent no-op: nothing is rendered, no request is made, nil is
// returned. Every other path renders exactly one panel (unless superseded)
// and releases the busy state.
func (c *Controller) Scan(ctx context.Context, addr string) *Outcome {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}

	// Each scan gets a monotonically increasing id. A completion whose id
	// is no longer the latest issued is discarded instead of overwriting a
	// newer result.
	seq := c.seq.Add(1)

	c.mu.Lock()
	c.session = Session{Address: addr, Seq: seq}
	c.mu.Unlock()

	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	base := c.resolveBase()
	c.sink.Show(render.Loading(addr))

	assessment, err := c.client.Analyze(ctx, base, addr)

	if seq != c.seq.Load() {
		c.logger.Debug().Uint64("seq", seq).Str("address", addr).Msg("discarding superseded scan result")
		return &Outcome{Address: addr, Assessment: assessment, Err: err, Stale: true}
	}

	if err != nil {
		c.logger.Warn().Err(err).Str("address", addr).Str("base", base).Msg("scan failed")
		c.sink.Show(render.Error(summarize(err), base))
		return &Outcome{Address: addr, Err: err}
	}

	c.sink.Show(render.Assessment(assessment))
	c.record(ctx, assessment)
	return &Outcome{Address: addr, Assessment: assessment}
}

// resolveBase picks the effective backend: the configured apiUrl when
// non-empty, else the built-in default. A failing settings store is worth
// a warning, not a failed scan.
func (c *Controller) resolveBase() string {
	s, err := c.store.Load()
	if err != nil {
		c.logger.Warn().Err(err).Msg("settings load failed, using defaults")
		return config.DefaultAPIURL
	}
	if s.APIURL == "" {
		return config.DefaultAPIURL
	}
	return s.APIURL
}

func (c *Controller) record(ctx context.Context, a *model.RiskAssessment) {
	if c.recorder == nil {
		return
	}
	e := history.Entry{
		Address:    a.Address,
		RiskScore:  a.RiskScore,
		RiskLabel:  a.RiskLabel,
		Sanctioned: a.IsSanctioned,
	}
	if err := c.recorder.Record(ctx, e); err != nil {
		c.logger.Warn().Err(err).Msg("recording scan history failed")
	}
}

// summarize folds the error taxonomy into the human-readable line shown in
// the error panel. The panel shape is identical for all failure kinds.
func summarize(err error) string {
	var statusErr *riskapi.HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}
	var decodeErr *riskapi.DecodeError
	if errors.As(err, &decodeErr) {
		return "backend response could not be decoded: " + decodeErr.Err.Error()
	}
	return "backend unreachable: " + err.Error()
}
