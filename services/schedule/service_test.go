package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"shiffy/models"
	"shiffy/services/weekwindow"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 10, 26, 9, 0, 0, 0, time.UTC)

type harness struct {
	svc       *DefaultScheduleService
	schedules *fakeScheduleRepo
	prefs     *fakePreferenceRepo
	cache     *fakeCache
	gen       *fakeGenerator
	notifier  *fakeNotifier
	queue     *fakeQueue
}

func newHarness(schedules ...models.Schedule) *harness {
	h := &harness{
		schedules: newFakeScheduleRepo(schedules...),
		prefs:     &fakePreferenceRepo{},
		cache:     newFakeCache(),
		gen:       &fakeGenerator{},
		notifier:  &fakeNotifier{},
		queue:     &fakeQueue{},
	}
	h.svc = &DefaultScheduleService{
		Schedules:   h.schedules,
		Preferences: h.prefs,
		Cache:       h.cache,
		Generator:   h.gen,
		Notifier:    h.notifier,
		Queue:       h.queue,
		StartsOn:    weekwindow.Monday,
		Clock:       func() time.Time { return fixedNow },
	}
	return h
}

func TestLoadWindow(t *testing.T) {
	h := newHarness(
		models.Schedule{ID: "a", ShopID: "shop", WeekStart: "2025-10-13", Status: models.ScheduleStatusPublished},
		models.Schedule{ID: "b", ShopID: "shop", WeekStart: "2025-10-27", Status: models.ScheduleStatusDraft},
		models.Schedule{ID: "c", ShopID: "other", WeekStart: "2025-10-20"},
	)
	ctx := context.Background()
	cfg := weekwindow.Config{WeeksBack: 1, WeeksForward: 1}

	window, err := h.svc.LoadWindow(ctx, "shop", fixedNow, cfg)
	require.NoError(t, err)

	require.Len(t, window, 3)
	assert.Equal(t, "2025-10-13", window[0].WeekStart)
	assert.Equal(t, "a", window[0].Schedule.ID)
	assert.Equal(t, "2025-10-20", window[1].WeekStart)
	assert.Nil(t, window[1].Schedule)
	assert.Equal(t, "2025-10-27", window[2].WeekStart)
	assert.Equal(t, "b", window[2].Schedule.ID)

	// Second load is served from cache, including the empty week.
	_, err = h.svc.LoadWindow(ctx, "shop", fixedNow, cfg)
	require.NoError(t, err)
	assert.Len(t, h.schedules.weeksCalls, 1)
	assert.Equal(t, []string{"2025-10-13", "2025-10-20", "2025-10-27"}, h.schedules.weeksCalls[0])
}

func TestLoadWindowCacheFailureFallsBackToRepository(t *testing.T) {
	h := newHarness(models.Schedule{ID: "a", ShopID: "shop", WeekStart: "2025-10-20"})
	h.cache.err = errors.New("redis down")

	window, err := h.svc.LoadWindow(context.Background(), "shop", fixedNow, weekwindow.Config{})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "a", window[0].Schedule.ID)
}

func TestLoadWindowRejectsNegativeCounts(t *testing.T) {
	h := newHarness()
	_, err := h.svc.LoadWindow(context.Background(), "shop", fixedNow, weekwindow.Config{WeeksBack: -1})
	assert.ErrorIs(t, err, weekwindow.ErrInvalidArgument)
	assert.Empty(t, h.schedules.weeksCalls)
}

func TestGetSchedule(t *testing.T) {
	h := newHarness(models.Schedule{ID: "a", ShopID: "shop", WeekStart: "2025-10-20"})
	ctx := context.Background()

	got, err := h.svc.GetSchedule(ctx, "shop", "2025-10-20")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	_, err = h.svc.GetSchedule(ctx, "shop", "2025-10-27")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = h.svc.GetSchedule(ctx, "shop", "2025-10-22")
	assert.ErrorIs(t, err, weekwindow.ErrInvalidArgument)
}

func validRequest() models.SubmitPreferencesRequest {
	return models.SubmitPreferencesRequest{
		WeekStart:    "2025-10-27",
		EmployeeName: "Ana",
		Entries: []models.PreferenceEntry{
			{Date: "2025-10-27", Shift: models.ShiftMorning, Availability: models.AvailabilityPreferred},
			{Date: "2025-11-02", Shift: models.ShiftEvening, Availability: models.AvailabilityUnavailable, Note: "family"},
		},
	}
}

func TestSubmitPreferences(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	prefs, err := h.svc.SubmitPreferences(ctx, "shop", "emp-1", validRequest())
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, "2025-10-27", prefs[1].WeekStart)
	assert.Equal(t, fixedNow, prefs[0].CreatedAt)

	// Resubmitting replaces rather than appends.
	req := validRequest()
	req.Entries = req.Entries[:1]
	_, err = h.svc.SubmitPreferences(ctx, "shop", "emp-1", req)
	require.NoError(t, err)

	stored, err := h.svc.ListPreferences(ctx, "shop", "2025-10-27")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestSubmitPreferencesValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.SubmitPreferencesRequest)
	}{
		{"week start not a monday", func(r *models.SubmitPreferencesRequest) { r.WeekStart = "2025-10-28" }},
		{"date outside week", func(r *models.SubmitPreferencesRequest) { r.Entries[0].Date = "2025-11-03" }},
		{"malformed date", func(r *models.SubmitPreferencesRequest) { r.Entries[0].Date = "27/10/2025" }},
		{"unknown shift", func(r *models.SubmitPreferencesRequest) { r.Entries[0].Shift = "brunch" }},
		{"unknown availability", func(r *models.SubmitPreferencesRequest) { r.Entries[0].Availability = "maybe" }},
		{"duplicate entry", func(r *models.SubmitPreferencesRequest) { r.Entries[1] = r.Entries[0] }},
		{"no entries", func(r *models.SubmitPreferencesRequest) { r.Entries = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			req := validRequest()
			tt.mutate(&req)

			_, err := h.svc.SubmitPreferences(context.Background(), "shop", "emp-1", req)
			assert.ErrorIs(t, err, weekwindow.ErrInvalidArgument)
			assert.Empty(t, h.prefs.prefs)
		})
	}
}

func TestSubmitPreferencesAfterPublishIsRejected(t *testing.T) {
	h := newHarness(models.Schedule{ShopID: "shop", WeekStart: "2025-10-27", Status: models.ScheduleStatusPublished})

	_, err := h.svc.SubmitPreferences(context.Background(), "shop", "emp-1", validRequest())
	assert.ErrorIs(t, err, ErrScheduleLocked)
}

func seedPreferences(t *testing.T, h *harness) {
	t.Helper()
	ctx := context.Background()
	_, err := h.svc.SubmitPreferences(ctx, "shop", "emp-1", validRequest())
	require.NoError(t, err)
	_, err = h.svc.SubmitPreferences(ctx, "shop", "emp-2", models.SubmitPreferencesRequest{
		WeekStart: "2025-10-27",
		Entries: []models.PreferenceEntry{
			{Date: "2025-10-27", Shift: models.ShiftMorning, Availability: models.AvailabilityAvailable},
			{Date: "2025-10-28", Shift: models.ShiftNight, Availability: models.AvailabilityPreferred},
		},
	})
	require.NoError(t, err)
}

func TestGenerateSchedule(t *testing.T) {
	h := newHarness()
	seedPreferences(t, h)
	h.gen.assignments = []models.ShiftAssignment{
		{Date: "2025-10-28", Shift: models.ShiftNight, EmployeeIDs: []string{"emp-2"}},
		{Date: "2025-10-27", Shift: models.ShiftMorning, EmployeeIDs: []string{"emp-1", "emp-2", "emp-1"}},
		{Date: "2025-11-02", Shift: models.ShiftEvening, EmployeeIDs: []string{"emp-1"}}, // emp-1 is unavailable
		{Date: "2025-11-05", Shift: models.ShiftMorning, EmployeeIDs: []string{"emp-1"}}, // outside week
		{Date: "2025-10-29", Shift: "brunch", EmployeeIDs: []string{"emp-1"}},
	}

	// Warm the cache with "no schedule" so invalidation is observable.
	_, err := h.svc.GetSchedule(context.Background(), "shop", "2025-10-27")
	require.ErrorIs(t, err, ErrNotFound)

	schedule, err := h.svc.GenerateSchedule(context.Background(), "shop", "2025-10-27")
	require.NoError(t, err)

	assert.Equal(t, models.ScheduleStatusDraft, schedule.Status)
	assert.Equal(t, "fake-model", schedule.Model)
	assert.NotEmpty(t, schedule.ID)
	assert.Equal(t, []models.ShiftAssignment{
		{Date: "2025-10-27", Shift: models.ShiftMorning, EmployeeIDs: []string{"emp-1", "emp-2"}},
		{Date: "2025-10-28", Shift: models.ShiftNight, EmployeeIDs: []string{"emp-2"}},
	}, schedule.Assignments)
	assert.Len(t, h.gen.lastReq.Days, 7)
	assert.Equal(t, "2025-11-02", h.gen.lastReq.Days[6])

	got, err := h.svc.GetSchedule(context.Background(), "shop", "2025-10-27")
	require.NoError(t, err)
	assert.Equal(t, schedule.ID, got.ID)
}

func TestGenerateScheduleKeepsConcurrentPublish(t *testing.T) {
	h := newHarness(models.Schedule{ID: "draft-1", ShopID: "shop", WeekStart: "2025-10-27", Status: models.ScheduleStatusDraft})
	seedPreferences(t, h)
	h.gen.assignments = []models.ShiftAssignment{
		{Date: "2025-10-27", Shift: models.ShiftMorning, EmployeeIDs: []string{"emp-1"}},
	}
	h.schedules.beforeUpsert = func() {
		_, err := h.svc.PublishSchedule(context.Background(), "shop", "2025-10-27")
		require.NoError(t, err)
	}

	_, err := h.svc.GenerateSchedule(context.Background(), "shop", "2025-10-27")
	assert.ErrorIs(t, err, ErrScheduleLocked)

	stored, err := h.schedules.GetByWeek(context.Background(), "shop", "2025-10-27")
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusPublished, stored.Status)
	assert.Equal(t, "draft-1", stored.ID)
}

func TestGenerateScheduleErrors(t *testing.T) {
	t.Run("no preferences", func(t *testing.T) {
		h := newHarness()
		_, err := h.svc.GenerateSchedule(context.Background(), "shop", "2025-10-27")
		assert.ErrorIs(t, err, ErrNoPreferences)
	})

	t.Run("no generator", func(t *testing.T) {
		h := newHarness()
		h.svc.Generator = nil
		_, err := h.svc.GenerateSchedule(context.Background(), "shop", "2025-10-27")
		assert.ErrorIs(t, err, ErrGeneratorUnavailable)
	})

	t.Run("generator failure", func(t *testing.T) {
		h := newHarness()
		seedPreferences(t, h)
		h.gen.err = errors.New("quota exceeded")
		_, err := h.svc.GenerateSchedule(context.Background(), "shop", "2025-10-27")
		assert.ErrorContains(t, err, "quota exceeded")
		assert.Zero(t, h.schedules.upsertCount)
	})

	t.Run("already published", func(t *testing.T) {
		h := newHarness()
		seedPreferences(t, h)
		h.schedules.byKey["shop|2025-10-27"] = models.Schedule{ShopID: "shop", WeekStart: "2025-10-27", Status: models.ScheduleStatusPublished}
		_, err := h.svc.GenerateSchedule(context.Background(), "shop", "2025-10-27")
		assert.ErrorIs(t, err, ErrScheduleLocked)
	})
}

func TestPublishSchedule(t *testing.T) {
	h := newHarness(models.Schedule{ID: "a", ShopID: "shop", WeekStart: "2025-10-27", Status: models.ScheduleStatusDraft})
	h.notifier.err = errors.New("fcm down")

	got, err := h.svc.PublishSchedule(context.Background(), "shop", "2025-10-27")
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusPublished, got.Status)
	require.NotNil(t, got.PublishedAt)
	assert.Equal(t, fixedNow, *got.PublishedAt)
	require.Len(t, h.notifier.published, 1)

	_, err = h.svc.PublishSchedule(context.Background(), "shop", "2025-11-03")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnqueueGeneration(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.svc.EnqueueGeneration(context.Background(), "shop", "2025-10-27"))
	require.Len(t, h.queue.tasks, 1)

	// Still pending: deduplicated, nothing new queued.
	assert.NoError(t, h.svc.EnqueueGeneration(context.Background(), "shop", "2025-10-27"))
	assert.Len(t, h.queue.tasks, 1)

	// Another shop or week is independent.
	require.NoError(t, h.svc.EnqueueGeneration(context.Background(), "other", "2025-10-27"))
	assert.Len(t, h.queue.tasks, 2)

	h.queue.err = asynq.ErrTaskIDConflict
	assert.Error(t, h.svc.EnqueueGeneration(context.Background(), "shop", "2025-10-27"))

	h.queue.err = errors.New("redis down")
	assert.Error(t, h.svc.EnqueueGeneration(context.Background(), "shop", "2025-10-27"))

	assert.ErrorIs(t, h.svc.EnqueueGeneration(context.Background(), "shop", "2025-10-29"), weekwindow.ErrInvalidArgument)
}

func TestEnqueueGenerationAfterFinishedRun(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.svc.EnqueueGeneration(context.Background(), "shop", "2025-10-27"))
	h.queue.finish()

	require.NoError(t, h.svc.EnqueueGeneration(context.Background(), "shop", "2025-10-27"))
	assert.Len(t, h.queue.tasks, 2, "a finished generation must not block regeneration")
}

func TestShopsAwaitingSchedule(t *testing.T) {
	h := newHarness(models.Schedule{ShopID: "b", WeekStart: "2025-10-27"})
	h.prefs.prefs = []models.ShiftPreference{
		{ShopID: "c", WeekStart: "2025-10-27"},
		{ShopID: "b", WeekStart: "2025-10-27"},
		{ShopID: "a", WeekStart: "2025-10-27"},
		{ShopID: "d", WeekStart: "2025-11-03"},
	}

	got, err := h.svc.ShopsAwaitingSchedule(context.Background(), "2025-10-27")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, got)
}
