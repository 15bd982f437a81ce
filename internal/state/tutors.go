package state

import (
	"context"
	"sync"
	"time"

	"github.com/rainditya/tutor-backoffice/internal/model"
)

// TutorStore is the slice of the repository the tutor container
// depends on. *repository.TutorRepo satisfies it; tests substitute
// fakes.
type TutorStore interface {
	CreateTutor(ctx context.Context, in model.TutorInput) (model.Tutor, error)
	AllTutors(ctx context.Context) ([]model.Tutor, error)
	UpdateTutor(ctx context.Context, id string, p model.TutorPatch) (string, error)
	DeleteTutor(ctx context.Context, id string) (string, error)
}

// TutorsView is a point-in-time copy of the container for rendering.
type TutorsView struct {
	Tutors         []model.Tutor
	Loading        bool
	InitialLoading bool
	Err            string
}

// Tutors caches the tutor collection. One boolean loading flag is
// shared by all in-flight operations: a second mutation started while
// the first is pending resets the flag when either settles. That
// coarseness is a known limitation carried over deliberately.
type Tutors struct {
	mu            sync.Mutex
	store         TutorStore
	minFetchDelay time.Duration

	tutors         []model.Tutor
	loading        bool
	initialLoading bool
	lastErr        string
}

// NewTutors returns an empty container in its initial-loading state.
func NewTutors(store TutorStore, minFetchDelay time.Duration) *Tutors {
	return &Tutors{store: store, minFetchDelay: minFetchDelay, initialLoading: true}
}

// View returns a copy of the current state.
func (c *Tutors) View() TutorsView {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Tutor, len(c.tutors))
	copy(out, c.tutors)
	return TutorsView{Tutors: out, Loading: c.loading, InitialLoading: c.initialLoading, Err: c.lastErr}
}

// ClearError resets the last stored error message.
func (c *Tutors) ClearError() {
	c.mu.Lock()
	c.lastErr = ""
	c.mu.Unlock()
}

// Fetch replaces the cached collection with a full read, holding the
// loading flag for at least the configured floor. A fetch clears any
// previous error before starting.
func (c *Tutors) Fetch(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.lastErr = ""
	c.mu.Unlock()

	started := time.Now()
	tutors, err := c.store.AllTutors(ctx)
	holdFloor(ctx, started, c.minFetchDelay)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.initialLoading = false
	if err != nil {
		c.lastErr = err.Error()
		return err
	}
	c.tutors = tutors
	return nil
}

// Add creates a tutor and appends it to the cached collection in the
// order the store confirmed it; there is no re-fetch for server order.
func (c *Tutors) Add(ctx context.Context, in model.TutorInput) (model.Tutor, error) {
	c.setLoading()
	created, err := c.store.CreateTutor(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.lastErr = err.Error()
		return model.Tutor{}, err
	}
	c.tutors = append(c.tutors, created)
	return created, nil
}

// Edit updates a tutor and shallow-merges the patch into the cached
// record. The merged view is returned; when the record is not cached
// (e.g. never fetched) the patch is applied to a bare record instead.
func (c *Tutors) Edit(ctx context.Context, id string, p model.TutorPatch) (model.Tutor, error) {
	c.setLoading()
	updatedAt, err := c.store.UpdateTutor(ctx, id, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.lastErr = err.Error()
		return model.Tutor{}, err
	}
	for i := range c.tutors {
		if c.tutors[i].ID == id {
			c.tutors[i] = p.Apply(c.tutors[i])
			c.tutors[i].UpdatedAt = updatedAt
			return c.tutors[i], nil
		}
	}
	merged := p.Apply(model.Tutor{ID: id})
	merged.UpdatedAt = updatedAt
	return merged, nil
}

// Remove deletes a tutor and filters it out of the cache. Filtering
// an id that is already gone is a harmless no-op.
func (c *Tutors) Remove(ctx context.Context, id string) error {
	c.setLoading()
	_, err := c.store.DeleteTutor(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.lastErr = err.Error()
		return err
	}
	kept := c.tutors[:0]
	for _, t := range c.tutors {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.tutors = kept
	return nil
}

func (c *Tutors) setLoading() {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()
}
