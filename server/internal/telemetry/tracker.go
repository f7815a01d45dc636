package telemetry

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bpcalc/bpcalc/pkg/bp"
	"github.com/bpcalc/bpcalc/server/internal/config"
)

// EventBloodPressureCalculated is the name of the only event the form
// handler emits.
const EventBloodPressureCalculated = "BloodPressureCalculated"

// Reason labels why a submission was turned away.
type Reason string

const (
	ReasonParse      Reason = "parse"
	ReasonOutOfRange Reason = "out_of_range"
	ReasonCrossField Reason = "cross_field"
)

var reasons = []Reason{ReasonParse, ReasonOutOfRange, ReasonCrossField}

// Event is one evaluated submission.
type Event struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Systolic  int         `json:"systolic"`
	Diastolic int         `json:"diastolic"`
	Category  bp.Category `json:"category"`
	Band      bp.Band     `json:"cardiovascular_risk"`
	Valid     bool        `json:"valid"`
	At        time.Time   `json:"at"`
}

// NewEvent builds the event for r. valid reports whether r passed both the
// range checks and the cross-field rule; the category is derived either way.
func NewEvent(r bp.Reading, valid bool) Event {
	a := bp.Assess(r)
	return Event{
		ID:        uuid.NewString(),
		Name:      EventBloodPressureCalculated,
		Systolic:  r.Systolic,
		Diastolic: r.Diastolic,
		Category:  a.Category,
		Band:      a.CardiovascularRisk,
		Valid:     valid,
	}
}

// Properties returns the string-keyed properties attached to the event,
// keyed by Systolic, Diastolic and Category.
func (e Event) Properties() map[string]string {
	return map[string]string{
		"Systolic":  strconv.Itoa(e.Systolic),
		"Diastolic": strconv.Itoa(e.Diastolic),
		"Category":  e.Category.String(),
	}
}

type readingKey struct {
	cat   bp.Category
	valid bool
}

// Tracker counts and forwards events. Tracker is safe for concurrent use.
type Tracker struct {
	mu         sync.Mutex
	enabled    bool
	webhooks   []config.WebhookConfig
	readings   map[readingKey]uint64
	bands      map[bp.Band]uint64
	rejections map[Reason]uint64

	client   *http.Client
	inflight sync.WaitGroup
	now      func() time.Time // injectable for deterministic tests
}

// New creates a Tracker from the telemetry configuration.
func New(cfg config.TelemetryConfig) *Tracker {
	return &Tracker{
		enabled:    cfg.Enabled,
		webhooks:   cfg.Webhooks,
		readings:   make(map[readingKey]uint64),
		bands:      make(map[bp.Band]uint64),
		rejections: make(map[Reason]uint64),
		client:     &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

// Configure replaces the enabled flag and webhook targets. Counters are kept.
func (t *Tracker) Configure(cfg config.TelemetryConfig) {
	t.mu.Lock()
	t.enabled = cfg.Enabled
	t.webhooks = cfg.Webhooks
	t.mu.Unlock()
}

// Enabled reports whether events are currently emitted.
func (t *Tracker) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

// Track records ev. It stamps ev.At when unset and returns false if the
// tracker is disabled and the event was dropped.
func (t *Tracker) Track(ev Event) bool {
	t.mu.Lock()
	if !t.enabled {
		t.mu.Unlock()
		return false
	}
	if ev.At.IsZero() {
		ev.At = t.now().UTC()
	}
	t.readings[readingKey{ev.Category, ev.Valid}]++
	if ev.Valid {
		t.bands[ev.Band]++
	}
	hooks := t.webhooks
	t.mu.Unlock()

	slog.Info("telemetry: event",
		"event", ev.Name,
		"id", ev.ID,
		"systolic", ev.Systolic,
		"diastolic", ev.Diastolic,
		"category", ev.Category.String(),
		"valid", ev.Valid,
	)

	if len(hooks) > 0 {
		t.inflight.Add(1)
		go func() {
			defer t.inflight.Done()
			t.deliver(hooks, ev)
		}()
	}
	return true
}

// Reject counts a submission turned away for reason.
func (t *Tracker) Reject(reason Reason) {
	t.mu.Lock()
	t.rejections[reason]++
	t.mu.Unlock()
	slog.Debug("telemetry: submission rejected", "reason", string(reason))
}

// Wait blocks until every webhook delivery started so far has finished.
func (t *Tracker) Wait() {
	t.inflight.Wait()
}

// Summary is the running totals pushed to stream clients.
type Summary struct {
	Assessed    uint64            `json:"assessed"`
	Invalid     uint64            `json:"invalid"`
	Categories  map[string]uint64 `json:"categories"`
	Bands       map[string]uint64 `json:"cardiovascular_risk"`
	Rejections  map[string]uint64 `json:"rejections"`
	GeneratedAt string            `json:"generated_at"` // RFC3339
}

// Summary returns a copy of the current totals. Categories and bands count
// valid readings only; every known key is present, zero or not.
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Summary{
		Categories:  make(map[string]uint64, 4),
		Bands:       make(map[string]uint64, 3),
		Rejections:  make(map[string]uint64, len(reasons)),
		GeneratedAt: t.now().UTC().Format(time.RFC3339),
	}
	for _, c := range bp.Categories() {
		n := t.readings[readingKey{c, true}]
		s.Categories[c.String()] = n
		s.Assessed += n
		s.Invalid += t.readings[readingKey{c, false}]
	}
	for _, b := range bp.Bands() {
		s.Bands[b.String()] = t.bands[b]
	}
	for _, r := range reasons {
		s.Rejections[string(r)] = t.rejections[r]
	}
	return s
}
