package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	emodels "giveaway-engine/internal/features/entry/models"
	entryrepo "giveaway-engine/internal/features/entry/repository"
	"giveaway-engine/internal/features/giveaway/models"
	"giveaway-engine/internal/features/giveaway/repository"
	umodels "giveaway-engine/internal/features/user/models"
	userrepo "giveaway-engine/internal/features/user/repository"
)

// In-memory fakes. They store value copies so a test observes what was
// persisted, not the pointer the service keeps mutating.

type fakeGiveawayRepo struct {
	giveaways map[models.GiveawayID]*models.Giveaway
	updateErr error
	deleteErr error
	casErr    error
}

func newFakeGiveawayRepo() *fakeGiveawayRepo {
	return &fakeGiveawayRepo{giveaways: make(map[models.GiveawayID]*models.Giveaway)}
}

func (r *fakeGiveawayRepo) Create(_ context.Context, g *models.Giveaway) error {
	stored := *g
	r.giveaways[g.ID] = &stored
	return nil
}

func (r *fakeGiveawayRepo) GetByID(_ context.Context, id models.GiveawayID) (*models.Giveaway, error) {
	g, ok := r.giveaways[id]
	if !ok {
		return nil, repository.ErrGiveawayNotFound
	}
	copied := *g
	return &copied, nil
}

func (r *fakeGiveawayRepo) GetMany(_ context.Context, ids []models.GiveawayID) ([]*models.Giveaway, error) {
	result := make([]*models.Giveaway, 0, len(ids))
	for _, id := range ids {
		if g, ok := r.giveaways[id]; ok {
			copied := *g
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeGiveawayRepo) Update(_ context.Context, g *models.Giveaway) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.giveaways[g.ID]; !ok {
		return repository.ErrGiveawayNotFound
	}
	stored := *g
	r.giveaways[g.ID] = &stored
	return nil
}

func (r *fakeGiveawayRepo) Delete(_ context.Context, id models.GiveawayID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.giveaways, id)
	return nil
}

func (r *fakeGiveawayRepo) ListByStatus(_ context.Context, status models.GiveawayStatus) ([]*models.Giveaway, error) {
	var result []*models.Giveaway
	for _, g := range r.giveaways {
		if g.Status == status {
			copied := *g
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeGiveawayRepo) UpdateDrawCAS(_ context.Context, g *models.Giveaway, prev *models.Giveaway) error {
	if r.casErr != nil {
		return r.casErr
	}
	stored, ok := r.giveaways[g.ID]
	if !ok {
		return repository.ErrGiveawayNotFound
	}
	if !equalTimePtr(stored.DrawAt, prev.DrawAt) {
		return repository.ErrDrawConflict
	}
	copied := *g
	r.giveaways[g.ID] = &copied
	return nil
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

type fakeEntryRepo struct {
	entries      map[models.EntryID]*emodels.Entry
	deleteAllErr error
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[models.EntryID]*emodels.Entry)}
}

func (r *fakeEntryRepo) Create(_ context.Context, e *emodels.Entry) error {
	stored := *e
	r.entries[e.ID] = &stored
	return nil
}

func (r *fakeEntryRepo) GetByID(_ context.Context, id models.EntryID) (*emodels.Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, entryrepo.ErrEntryNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEntryRepo) List(_ context.Context, giveawayID models.GiveawayID) ([]*emodels.Entry, error) {
	var result []*emodels.Entry
	for _, e := range r.entries {
		if e.GiveawayID == giveawayID {
			copied := *e
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *fakeEntryRepo) Count(ctx context.Context, giveawayID models.GiveawayID) (int64, error) {
	entries, _ := r.List(ctx, giveawayID)
	return int64(len(entries)), nil
}

func (r *fakeEntryRepo) Disqualify(_ context.Context, id models.EntryID) error {
	e, ok := r.entries[id]
	if !ok {
		return entryrepo.ErrEntryNotFound
	}
	e.Disqualified = true
	return nil
}

func (r *fakeEntryRepo) DeleteAllForGiveaway(_ context.Context, giveawayID models.GiveawayID) error {
	if r.deleteAllErr != nil {
		return r.deleteAllErr
	}
	for id, e := range r.entries {
		if e.GiveawayID == giveawayID {
			delete(r.entries, id)
		}
	}
	return nil
}

func (r *fakeEntryRepo) ListByParticipant(_ context.Context, participant emodels.ParticipantIdentity) ([]*emodels.Entry, error) {
	var result []*emodels.Entry
	for _, e := range r.entries {
		if e.Participant.Key() == participant.Key() {
			copied := *e
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type fakeUserDirectory struct {
	users      map[string]*umodels.User
	getManyErr error
}

func newFakeUserDirectory() *fakeUserDirectory {
	return &fakeUserDirectory{users: make(map[string]*umodels.User)}
}

func (d *fakeUserDirectory) GetByID(_ context.Context, id string) (*umodels.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, userrepo.ErrUserNotFound
	}
	return u, nil
}

func (d *fakeUserDirectory) GetMany(_ context.Context, ids []string) (map[string]*umodels.User, error) {
	if d.getManyErr != nil {
		return nil, d.getManyErr
	}
	result := make(map[string]*umodels.User)
	for _, id := range ids {
		if u, ok := d.users[id]; ok {
			result[id] = u
		}
	}
	return result, nil
}

func (d *fakeUserDirectory) Upsert(_ context.Context, u *umodels.User) error {
	d.users[u.ID] = u
	return nil
}

// testHarness bundles the service and its fakes with a controllable clock.
type testHarness struct {
	svc     *giveawayService
	repo    *fakeGiveawayRepo
	entries *fakeEntryRepo
	users   *fakeUserDirectory
	clock   time.Time
}

func newHarness() *testHarness {
	h := &testHarness{
		repo:    newFakeGiveawayRepo(),
		entries: newFakeEntryRepo(),
		users:   newFakeUserDirectory(),
		clock:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	h.svc = NewGiveawayService(h.repo, h.entries, h.users, zerolog.Nop()).(*giveawayService)
	h.svc.now = func() time.Time { return h.clock }
	return h
}

func (h *testHarness) advance(d time.Duration) {
	h.clock = h.clock.Add(d)
}
