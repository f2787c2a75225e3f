package services

import (
	"context"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/recapd/recapd-backend/internal/apperr"
	"github.com/recapd/recapd-backend/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeEmailLogRepo is an in-memory repository.EmailLogRepository.
type fakeEmailLogRepo struct {
	mu      sync.Mutex
	entries []*models.EmailLog
	nextID  int
	err     error
}

func newFakeEmailLogRepo() *fakeEmailLogRepo {
	return &fakeEmailLogRepo{nextID: 1}
}

func (f *fakeEmailLogRepo) Insert(ctx context.Context, entry *models.EmailLog) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	entry.ID = f.nextID
	f.nextID++
	entry.SentAt = time.Now()
	if entry.Status == "" {
		entry.Status = models.EmailStatusSent
	}
	stored := *entry
	f.entries = append(f.entries, &stored)
	return entry.ID, nil
}

func (f *fakeEmailLogRepo) ListBySummary(ctx context.Context, summaryID int) ([]*models.EmailLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.EmailLog
	for _, e := range f.entries {
		if e.SummaryID != nil && *e.SummaryID == summaryID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeSummaryRepo is an in-memory repository.SummaryRepository. It shares
// the email log store so DeleteWithLogs behaves like the real transaction.
type fakeSummaryRepo struct {
	mu        sync.Mutex
	summaries map[int]*models.Summary
	logs      *fakeEmailLogRepo
	nextID    int
	err       error
}

func newFakeSummaryRepo(logs *fakeEmailLogRepo) *fakeSummaryRepo {
	return &fakeSummaryRepo{
		summaries: make(map[int]*models.Summary),
		logs:      logs,
		nextID:    1,
	}
}

func (f *fakeSummaryRepo) List(ctx context.Context) ([]*models.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.Summary{}
	for _, s := range f.summaries {
		copied := *s
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeSummaryRepo) Get(ctx context.Context, id int) (*models.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.summaries[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSummaryRepo) Create(ctx context.Context, summary *models.Summary) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	summary.ID = f.nextID
	f.nextID++
	now := time.Now()
	summary.CreatedAt = now
	summary.UpdatedAt = now
	stored := *summary
	f.summaries[summary.ID] = &stored
	return summary.ID, nil
}

func (f *fakeSummaryRepo) Update(ctx context.Context, id int, updates map[string]interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	s, ok := f.summaries[id]
	if !ok {
		return 0, nil
	}
	if v, ok := updates["title"].(string); ok {
		s.Title = v
	}
	if v, ok := updates["edited_summary"].(string); ok {
		s.EditedSummary = v
	}
	s.UpdatedAt = time.Now()
	return 1, nil
}

func (f *fakeSummaryRepo) DeleteWithLogs(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.logs.mu.Lock()
	kept := f.logs.entries[:0]
	for _, e := range f.logs.entries {
		if e.SummaryID == nil || *e.SummaryID != id {
			kept = append(kept, e)
		}
	}
	f.logs.entries = kept
	f.logs.mu.Unlock()
	delete(f.summaries, id)
	return nil
}

func newSummaryServiceForTest() (*SummaryService, *fakeSummaryRepo, *fakeEmailLogRepo) {
	logs := newFakeEmailLogRepo()
	repo := newFakeSummaryRepo(logs)
	return NewSummaryService(repo, testLogger()), repo, logs
}

func TestSummaryService_CreateDefaultsEditedSummary(t *testing.T) {
	svc, _, _ := newSummaryServiceForTest()
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateSummaryInput{
		Title:            "Standup",
		OriginalText:     "we discussed X",
		GeneratedSummary: "X was discussed",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "X was discussed", summaries[0].EditedSummary)
	assert.Equal(t, summaries[0].GeneratedSummary, summaries[0].EditedSummary)
}

func TestSummaryService_CreateRequiresFields(t *testing.T) {
	svc, repo, _ := newSummaryServiceForTest()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateSummaryInput{
		Title:        "Standup",
		OriginalText: "we discussed X",
	})
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	assert.Empty(t, repo.summaries)
}

func TestSummaryService_CreateKeepsProvidedEditedSummary(t *testing.T) {
	svc, _, _ := newSummaryServiceForTest()
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateSummaryInput{
		Title:            "Standup",
		OriginalText:     "we discussed X",
		GeneratedSummary: "X was discussed",
		EditedSummary:    "X, with edits",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "X, with edits", got.EditedSummary)
	assert.Equal(t, "X was discussed", got.GeneratedSummary)
}

func TestSummaryService_GetNotFound(t *testing.T) {
	svc, _, _ := newSummaryServiceForTest()

	_, err := svc.Get(context.Background(), 42)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSummaryService_UpdateTitleLeavesEditedSummary(t *testing.T) {
	svc, _, _ := newSummaryServiceForTest()
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateSummaryInput{
		Title:            "Standup",
		OriginalText:     "we discussed X",
		GeneratedSummary: "X was discussed",
	})
	require.NoError(t, err)

	before, err := svc.Get(ctx, id)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	title := "Renamed"
	require.NoError(t, svc.Update(ctx, id, &title, nil))

	after, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", after.Title)
	assert.Equal(t, before.EditedSummary, after.EditedSummary)
	assert.True(t, after.UpdatedAt.After(after.CreatedAt))
}

func TestSummaryService_UpdateEditedSummary(t *testing.T) {
	svc, _, _ := newSummaryServiceForTest()
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateSummaryInput{
		Title:            "Standup",
		OriginalText:     "we discussed X",
		GeneratedSummary: "X was discussed",
	})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	edited := "X was discussed further"
	require.NoError(t, svc.Update(ctx, id, nil, &edited))

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "X was discussed further", got.EditedSummary)
	assert.Equal(t, "Standup", got.Title)
	assert.Equal(t, "X was discussed", got.GeneratedSummary)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestSummaryService_UpdateWithNoFields(t *testing.T) {
	svc, _, _ := newSummaryServiceForTest()
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateSummaryInput{
		Title:            "Standup",
		OriginalText:     "we discussed X",
		GeneratedSummary: "X was discussed",
	})
	require.NoError(t, err)

	before, err := svc.Get(ctx, id)
	require.NoError(t, err)

	err = svc.Update(ctx, id, nil, nil)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

	// No write happened
	after, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestSummaryService_UpdateRejectsEmptyValues(t *testing.T) {
	svc, _, _ := newSummaryServiceForTest()
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateSummaryInput{
		Title:            "Standup",
		OriginalText:     "we discussed X",
		GeneratedSummary: "X was discussed",
	})
	require.NoError(t, err)

	empty := ""
	err = svc.Update(ctx, id, &empty, nil)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

	err = svc.Update(ctx, id, nil, &empty)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "X was discussed", got.EditedSummary)
}

func TestSummaryService_UpdateNotFound(t *testing.T) {
	svc, _, _ := newSummaryServiceForTest()

	title := "Renamed"
	err := svc.Update(context.Background(), 42, &title, nil)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSummaryService_DeleteNotFound(t *testing.T) {
	svc, _, _ := newSummaryServiceForTest()

	err := svc.Delete(context.Background(), 42)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSummaryService_DeleteRemovesEmailLogs(t *testing.T) {
	svc, _, logs := newSummaryServiceForTest()
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateSummaryInput{
		Title:            "Standup",
		OriginalText:     "we discussed X",
		GeneratedSummary: "X was discussed",
	})
	require.NoError(t, err)

	_, err = logs.Insert(ctx, &models.EmailLog{
		SummaryID:  &id,
		Recipients: "a@example.com",
		Subject:    "Meeting Summary Shared",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.Get(ctx, id)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	remaining, err := logs.ListBySummary(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestSummaryService_ListNewestFirst(t *testing.T) {
	svc, repo, _ := newSummaryServiceForTest()
	ctx := context.Background()

	for i, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, CreateSummaryInput{
			Title:            title,
			OriginalText:     "text",
			GeneratedSummary: "summary",
		})
		require.NoError(t, err)
		// Spread createdAt so ordering is deterministic
		repo.summaries[i+1].CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
	}

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "third", summaries[0].Title)
	assert.Equal(t, "first", summaries[2].Title)
}
