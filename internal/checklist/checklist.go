// Package checklist tracks which catalog items are done and derives
// progress and cost from that state.
package checklist

import (
	"io"
	"maps"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/farah/internal/model"
	"github.com/idilsaglam/farah/internal/store"
)

// DefaultKey is the storage key the completion state lives under.
const DefaultKey = "wedding-checked"

// State maps completion keys ("<section>-<index>") to done flags.
// A missing key means not done.
type State map[string]bool

// EmptyState is the default for a fresh or unreadable store.
func EmptyState() State { return State{} }

// Key builds the completion key for an item.
func Key(section string, index int) string {
	return section + "-" + strconv.Itoa(index)
}

// NewStore binds a State store to key on m, validating stored snapshots
// before they are decoded.
func NewStore(m store.Medium, key string, logger *log.Logger) *store.Store[State] {
	opts := []store.Option{store.WithValidator(ValidateSnapshot)}
	if logger != nil {
		opts = append(opts, store.WithLogger(logger))
	}
	return store.New(m, key, EmptyState, opts...)
}

// Checklist owns the completion state for one catalog. Not safe for
// concurrent use; callers serialize access.
type Checklist struct {
	catalog model.Catalog
	store   *store.Store[State]
	state   State
	logger  *log.Logger
}

// New loads the persisted state once and returns a controller over cat.
func New(cat model.Catalog, st *store.Store[State], logger *log.Logger) *Checklist {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	state := st.Load()
	if state == nil {
		state = EmptyState()
	}
	logger.Debug("state loaded", "key", st.Key(), "entries", len(state))
	return &Checklist{
		catalog: cat,
		store:   st,
		state:   state,
		logger:  logger,
	}
}

// Catalog returns the static catalog.
func (c *Checklist) Catalog() model.Catalog { return c.catalog }

// Section looks a catalog section up by name.
func (c *Checklist) Section(name string) (model.Section, bool) {
	return c.catalog.Section(name)
}

// Toggle flips the done flag of (section, index) and persists the new
// snapshot. Indices are not validated.
func (c *Checklist) Toggle(section string, index int) {
	k := Key(section, index)
	next := maps.Clone(c.state)
	next[k] = !c.state[k]
	c.state = next
	c.logger.Debug("toggled", "item", k, "done", next[k])
	c.store.Save(c.state)
}

// IsDone reports whether (section, index) is marked done.
func (c *Checklist) IsDone(section string, index int) bool {
	return c.state[Key(section, index)]
}

// CompletionPercentage is round(100*done/len(items)) for the items of
// section, or 0 when items is empty.
func (c *Checklist) CompletionPercentage(items []model.Item, section string) int {
	if len(items) == 0 {
		return 0
	}
	done := c.countDone(len(items), section)
	n := len(items)
	return (200*done + n) / (2 * n)
}

func (c *Checklist) countDone(n int, section string) int {
	done := 0
	for i := 0; i < n; i++ {
		if c.IsDone(section, i) {
			done++
		}
	}
	return done
}

// Done counts finished items of a catalog section.
func (c *Checklist) Done(name string) int {
	s, ok := c.catalog.Section(name)
	if !ok {
		return 0
	}
	return c.countDone(len(s.Items), name)
}

// Progress is the completion percentage of a catalog section; 0 for an
// unknown name.
func (c *Checklist) Progress(name string) int {
	s, ok := c.catalog.Section(name)
	if !ok {
		return 0
	}
	return c.CompletionPercentage(s.Items, s.Name)
}

// Snapshot returns a copy of the current state.
func (c *Checklist) Snapshot() State {
	return maps.Clone(c.state)
}

// Reset forgets every done flag and clears the persisted copy.
func (c *Checklist) Reset() {
	c.state = EmptyState()
	c.store.Clear()
	c.logger.Debug("state reset", "key", c.store.Key())
}

// TotalCost sums the valid prices of items. Missing or unparseable prices
// contribute nothing.
func TotalCost(items []model.Item) int64 {
	var sum int64
	for _, it := range items {
		if it.Price.Valid {
			sum += it.Price.Amount
		}
	}
	return sum
}
