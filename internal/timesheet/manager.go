package timesheet

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/username/timesheet/internal/holiday"
	"github.com/username/timesheet/internal/settings"
	"github.com/username/timesheet/pkg/clock"
)

// ErrDiscardDeclined is returned when a destructive settings change is
// abandoned because the user kept their unsaved edits.
var ErrDiscardDeclined = errors.New("unsaved edits kept")

// DiscardConfirmer is the capability consulted before a destructive change
// throws away unsaved row edits.
type DiscardConfirmer interface {
	ConfirmDiscard() bool
}

// Manager owns the resolved configuration, the holiday resolution and the
// editable row set, and serializes every mutation. Settings changes persist
// through explicit store/share-link writes; a full row rebuild resets the
// dirty flag.
type Manager struct {
	mu       sync.Mutex
	logger   *zap.Logger
	store    *settings.Store
	share    *settings.ShareLink
	resolver *holiday.Resolver
	confirm  DiscardConfirmer

	defaults   settings.Settings
	cfg        settings.Settings
	resolution holiday.Resolution
	rows       []Row
	dirty      bool

	// generation stamps each holiday resolution so a superseded run cannot
	// overwrite state with stale data when it completes late.
	generation uint64
}

// NewManager creates a manager around the given collaborators
func NewManager(defaults settings.Settings, store *settings.Store, share *settings.ShareLink,
	resolver *holiday.Resolver, confirm DiscardConfirmer, logger *zap.Logger) *Manager {
	return &Manager{
		logger:   logger,
		store:    store,
		share:    share,
		resolver: resolver,
		confirm:  confirm,
		defaults: defaults,
	}
}

// Load resolves the active configuration (defaults, then store, then share
// link, then the given one-shot overrides), resolves holidays for it and
// builds the row set.
func (m *Manager) Load(overrides settings.Partial) {
	fromStore := m.store.Load()
	fromShare := m.share.Load()

	m.mu.Lock()
	m.cfg = settings.Resolve(m.defaults, fromStore, fromShare, overrides)
	m.mu.Unlock()

	m.refreshHolidays()
	m.rebuildRows()
}

// UpdateSettings applies a settings change, persists the new snapshot and
// rebuilds state. Destructive changes (period or locale selectors) consult
// the discard confirmer while unsaved row edits exist.
func (m *Manager) UpdateSettings(p settings.Partial) error {
	if p.IsZero() {
		return nil
	}

	m.mu.Lock()
	needsConfirm := destructive(p) && m.dirty
	m.mu.Unlock()

	if needsConfirm && !m.confirm.ConfirmDiscard() {
		return ErrDiscardDeclined
	}

	m.mu.Lock()
	old := m.cfg
	m.cfg = p.Apply(m.cfg)
	cfg := m.cfg
	m.mu.Unlock()

	m.store.Save(cfg)
	m.share.Save(cfg, m.defaults)

	if cfg.Year != old.Year || cfg.Country != old.Country ||
		cfg.Region != old.Region || cfg.ICSURL != old.ICSURL {
		m.refreshHolidays()
	}
	m.rebuildRows()

	return nil
}

// destructive reports whether the overlay touches a key whose change
// rebuilds the sheet from scratch.
func destructive(p settings.Partial) bool {
	return p.Month != nil || p.Year != nil || p.Country != nil || p.Region != nil
}

// MarkDay transitions one day's row to a new mode and marks the sheet dirty
func (m *Manager) MarkDay(day int, mode Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if day < 1 || day > len(m.rows) {
		return fmt.Errorf("no day %d in %s %d", day, m.cfg.Month, m.cfg.Year)
	}

	m.rows[day-1] = ChangeMode(m.rows[day-1], mode, m.cfg)
	m.dirty = true

	return nil
}

// EditRow updates one field of a day's row. Clock fields must parse as
// "HH:MM" or be empty.
func (m *Manager) EditRow(day int, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if day < 1 || day > len(m.rows) {
		return fmt.Errorf("no day %d in %s %d", day, m.cfg.Month, m.cfg.Year)
	}

	row := &m.rows[day-1]

	switch field {
	case "start", "breakStart", "breakEnd", "end":
		if value != "" {
			if _, err := clock.Parse(value); err != nil {
				return fmt.Errorf("%s: %w", field, err)
			}
		}
		switch field {
		case "start":
			row.Start = value
		case "breakStart":
			row.BreakStart = value
		case "breakEnd":
			row.BreakEnd = value
		case "end":
			row.End = value
		}
	case "notes":
		row.Notes = value
	default:
		return fmt.Errorf("unknown row field %q", field)
	}

	m.dirty = true
	return nil
}

// refreshHolidays runs one stamped resolution pass. The resolver performs
// network I/O outside the lock; the completed result is dropped if another
// pass was started meanwhile.
func (m *Manager) refreshHolidays() {
	m.mu.Lock()
	m.generation++
	gen := m.generation
	req := holiday.Request{
		Year:    m.cfg.Year,
		Country: m.cfg.Country,
		Region:  m.cfg.Region,
		FeedURL: m.cfg.ICSURL,
	}
	m.mu.Unlock()

	res := m.resolver.Resolve(req)

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation {
		m.logger.Debug("Discarding stale holiday resolution",
			zap.Uint64("generation", gen),
			zap.Uint64("current", m.generation))
		return
	}
	m.resolution = res
}

// rebuildRows regenerates the full row set and resets the dirty flag
func (m *Manager) rebuildRows() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows = BuildRows(m.cfg.Year, m.cfg.Month, m.cfg, m.resolution.Holidays)
	m.dirty = false
}

// Settings returns the active configuration snapshot
func (m *Manager) Settings() settings.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// Defaults returns the computed default configuration
func (m *Manager) Defaults() settings.Settings {
	return m.defaults
}

// Rows returns a copy of the current row set
func (m *Manager) Rows() []Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := make([]Row, len(m.rows))
	copy(rows, m.rows)
	return rows
}

// Regions returns the region codes available for the active country/year
func (m *Manager) Regions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolution.Regions
}

// Warning returns the feed warning from the last resolution, if any
func (m *Manager) Warning() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolution.Warning
}

// Dirty reports whether unsaved row edits exist
func (m *Manager) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// Totals returns the aggregate worked/break/overtime hours for the sheet
func (m *Manager) Totals() Totals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Sum(m.rows, m.cfg.WorkdayHours)
}
