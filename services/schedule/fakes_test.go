package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	scheduleRepo "shiffy/database/repository/schedule"
	"shiffy/models"
	ai "shiffy/services/intelligence"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeScheduleRepo struct {
	mu          sync.Mutex
	byKey       map[string]models.Schedule
	weeksCalls  [][]string
	upsertCount int
	// beforeUpsert runs once inside Upsert, standing in for a concurrent writer.
	beforeUpsert func()
}

func newFakeScheduleRepo(schedules ...models.Schedule) *fakeScheduleRepo {
	r := &fakeScheduleRepo{byKey: map[string]models.Schedule{}}
	for _, s := range schedules {
		r.byKey[s.ShopID+"|"+s.WeekStart] = s
	}
	return r
}

func (r *fakeScheduleRepo) GetByWeek(_ context.Context, shopID, weekStart string) (*models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byKey[shopID+"|"+weekStart]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &s, nil
}

func (r *fakeScheduleRepo) GetByWeeks(_ context.Context, shopID string, weekStarts []string) ([]models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weeksCalls = append(r.weeksCalls, append([]string(nil), weekStarts...))
	var out []models.Schedule
	for _, w := range weekStarts {
		if s, ok := r.byKey[shopID+"|"+w]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) Upsert(_ context.Context, s *models.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := s.ShopID + "|" + s.WeekStart
	if r.beforeUpsert != nil {
		hook := r.beforeUpsert
		r.beforeUpsert = nil
		r.mu.Unlock()
		hook()
		r.mu.Lock()
	}
	if existing, ok := r.byKey[key]; ok && existing.Status == models.ScheduleStatusPublished {
		return scheduleRepo.ErrPublished
	}
	if s.ID == "" {
		if existing, ok := r.byKey[key]; ok {
			s.ID = existing.ID
		} else {
			s.ID = "sched-" + s.WeekStart
		}
	}
	r.byKey[key] = *s
	r.upsertCount++
	return nil
}

func (r *fakeScheduleRepo) MarkPublished(_ context.Context, shopID, weekStart string, at time.Time) (*models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := shopID + "|" + weekStart
	s, ok := r.byKey[key]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	s.Status = models.ScheduleStatusPublished
	s.PublishedAt = &at
	r.byKey[key] = s
	return &s, nil
}

func (r *fakeScheduleRepo) ShopIDsWithSchedule(_ context.Context, weekStart string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, s := range r.byKey {
		if s.WeekStart == weekStart {
			out = append(out, s.ShopID)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) EnsureIndexes(context.Context) error { return nil }

type fakePreferenceRepo struct {
	mu    sync.Mutex
	prefs []models.ShiftPreference
}

func (r *fakePreferenceRepo) ReplaceForEmployee(_ context.Context, shopID, employeeID, weekStart string, prefs []models.ShiftPreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.prefs[:0]
	for _, p := range r.prefs {
		if p.ShopID == shopID && p.EmployeeID == employeeID && p.WeekStart == weekStart {
			continue
		}
		kept = append(kept, p)
	}
	r.prefs = append(kept, prefs...)
	return nil
}

func (r *fakePreferenceRepo) GetByWeek(_ context.Context, shopID, weekStart string) ([]models.ShiftPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ShiftPreference
	for _, p := range r.prefs {
		if p.ShopID == shopID && p.WeekStart == weekStart {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePreferenceRepo) ShopIDsForWeek(_ context.Context, weekStart string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, p := range r.prefs {
		if p.WeekStart == weekStart && !seen[p.ShopID] {
			seen[p.ShopID] = true
			out = append(out, p.ShopID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakePreferenceRepo) EnsureIndexes(context.Context) error { return nil }

type cacheEntry struct {
	schedule *models.Schedule
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	err     error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]cacheEntry{}}
}

func (c *fakeCache) Get(_ context.Context, shopID, weekStart string) (*models.Schedule, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	e, ok := c.entries[shopID+"|"+weekStart]
	return e.schedule, ok, nil
}

func (c *fakeCache) Set(_ context.Context, shopID, weekStart string, s *models.Schedule) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.entries[shopID+"|"+weekStart] = cacheEntry{schedule: s}
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, shopID, weekStart string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, shopID+"|"+weekStart)
	return nil
}

type fakeGenerator struct {
	assignments []models.ShiftAssignment
	err         error
	lastReq     ai.GenerationRequest
}

func (g *fakeGenerator) Generate(_ context.Context, req ai.GenerationRequest) ([]models.ShiftAssignment, error) {
	g.lastReq = req
	return g.assignments, g.err
}

func (g *fakeGenerator) Model() string { return "fake-model" }

type fakeNotifier struct {
	published []*models.Schedule
	err       error
}

func (n *fakeNotifier) NotifySchedulePublished(_ context.Context, s *models.Schedule) error {
	n.published = append(n.published, s)
	return n.err
}

// fakeQueue honours asynq.Unique the way the broker does: a pending task
// blocks an identical one until it finishes.
type fakeQueue struct {
	tasks   []*asynq.Task
	pending map[string]bool
	err     error
}

func uniqueKey(task *asynq.Task) string {
	return task.Type() + "|" + string(task.Payload())
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	for _, o := range opts {
		if o.Type() != asynq.UniqueOpt {
			continue
		}
		if q.pending == nil {
			q.pending = map[string]bool{}
		}
		if q.pending[uniqueKey(task)] {
			return nil, asynq.ErrDuplicateTask
		}
		q.pending[uniqueKey(task)] = true
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default", Type: task.Type()}, nil
}

// finish marks every pending task as processed successfully.
func (q *fakeQueue) finish() {
	q.pending = nil
}
