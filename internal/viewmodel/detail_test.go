package viewmodel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayk98/mini-crm/internal/logging"
	"github.com/vinayk98/mini-crm/internal/model"
)

// Late evening, so a timestamp comparison would reject "today".
var testNow = time.Date(2026, 10, 19, 23, 30, 0, 0, time.Local)

func newTestDetail(f *fakeBackend) *Detail {
	return NewDetail(f, f, f,
		WithLogger(logging.Discard()),
		WithClock(func() time.Time { return testNow }),
	)
}

func seededBackend() *fakeBackend {
	f := newFakeBackend()
	f.leads = []model.Lead{
		{ID: "1", Name: "Rahul Sharma", Phone: "9000000001"},
		{ID: "2", Name: "Priya Verma", Phone: "9000000002"},
	}
	f.notes = []model.Note{
		{ID: "n1", LeadID: "1", Content: "first"},
		{ID: "n2", LeadID: "2", Content: "other lead"},
		{ID: "n3", LeadID: "1", Content: "second"},
	}
	f.followUps = []model.FollowUp{
		{ID: "f1", LeadID: "2", Date: model.Date{Year: 2026, Month: 11, Day: 1}, Status: model.FollowUpPending},
		{ID: "f2", LeadID: "1", Date: model.Date{Year: 2026, Month: 10, Day: 25}, Status: model.FollowUpPending},
	}
	return f
}

func TestDetail_Load(t *testing.T) {
	d := newTestDetail(seededBackend())

	require.NoError(t, d.Load(context.Background(), "1"))

	assert.Equal(t, DetailReady, d.State())
	lead, ok := d.Lead()
	require.True(t, ok)
	assert.Equal(t, "Rahul Sharma", lead.Name)

	notes := d.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, "first", notes[0].Content)
	assert.Equal(t, "second", notes[1].Content)

	followUps := d.FollowUps()
	require.Len(t, followUps, 1)
	assert.Equal(t, "f2", followUps[0].ID)
	assert.False(t, d.Loading())
}

func TestDetail_NotFoundIsATerminalState(t *testing.T) {
	f := seededBackend()
	d := newTestDetail(f)

	require.NoError(t, d.Load(context.Background(), "999"))

	assert.Equal(t, DetailNotFound, d.State())
	assert.Empty(t, d.Err())
	_, ok := d.Lead()
	assert.False(t, ok)
	assert.Zero(t, f.callCount("ListNotes"))
}

func TestDetail_LeadFetchFailure(t *testing.T) {
	f := seededBackend()
	f.failOn("GetLead", &model.NetworkError{Op: "GET /leads/1", Err: errors.New("timeout")})
	d := newTestDetail(f)

	err := d.Load(context.Background(), "1")

	assert.True(t, model.IsNetwork(err))
	assert.Equal(t, DetailError, d.State())
	assert.Equal(t, "Failed to fetch lead", d.Err())
}

func TestDetail_FiltersWhenBackendIgnoresLeadID(t *testing.T) {
	f := seededBackend()
	f.ignoreFilter = true
	d := newTestDetail(f)

	require.NoError(t, d.Load(context.Background(), "1"))

	assert.Len(t, d.Notes(), 2)
	assert.Len(t, d.FollowUps(), 1)
}

func TestDetail_AddNote(t *testing.T) {
	f := seededBackend()
	d := newTestDetail(f)
	ctx := context.Background()
	require.NoError(t, d.Load(ctx, "1"))

	require.NoError(t, d.AddNote(ctx, "1", "  left voicemail  ", 2))

	notes := d.Notes()
	require.Len(t, notes, 3)
	assert.Equal(t, "left voicemail", notes[2].Content)
	assert.Equal(t, 2, notes[2].CreatedBy)
}

func TestDetail_AddBlankNoteMakesNoCall(t *testing.T) {
	f := seededBackend()
	d := newTestDetail(f)

	err := d.AddNote(context.Background(), "1", "   ", 2)

	assert.True(t, model.IsValidation(err))
	assert.Zero(t, f.callCount("CreateNote"))
}

func TestDetail_AddNoteFailure(t *testing.T) {
	f := seededBackend()
	d := newTestDetail(f)
	ctx := context.Background()
	require.NoError(t, d.Load(ctx, "1"))

	f.failOn("CreateNote", &model.NetworkError{Op: "POST /notes", Err: errors.New("refused")})
	require.Error(t, d.AddNote(ctx, "1", "hello", 2))

	assert.Equal(t, "Failed to add note", d.Err())
	assert.Len(t, d.Notes(), 2)
}

func TestDetail_ScheduleFollowUp(t *testing.T) {
	f := seededBackend()
	d := newTestDetail(f)
	ctx := context.Background()
	require.NoError(t, d.Load(ctx, "1"))

	require.NoError(t, d.ScheduleFollowUp(ctx, "1", "2026-10-19"))

	followUps := d.FollowUps()
	require.Len(t, followUps, 2)
	assert.Equal(t, model.Date{Year: 2026, Month: 10, Day: 19}, followUps[1].Date)
	assert.Equal(t, model.FollowUpPending, followUps[1].Status)
}

func TestDetail_ScheduleFollowUpRejectsBadDates(t *testing.T) {
	f := seededBackend()
	d := newTestDetail(f)
	ctx := context.Background()

	for _, date := range []string{"", "2026-10-18", "19/10/2026"} {
		err := d.ScheduleFollowUp(ctx, "1", date)
		assert.True(t, model.IsValidation(err), "date %q", date)
	}
	assert.Zero(t, f.callCount("CreateFollowUp"))
}

func TestDetail_MarkFollowUpDoneIsIdempotent(t *testing.T) {
	f := seededBackend()
	d := newTestDetail(f)
	ctx := context.Background()
	require.NoError(t, d.Load(ctx, "1"))

	require.NoError(t, d.MarkFollowUpDone(ctx, "f2", "1"))
	require.NoError(t, d.MarkFollowUpDone(ctx, "f2", "1"))

	followUps := d.FollowUps()
	require.Len(t, followUps, 1)
	assert.True(t, followUps[0].IsCompleted())
	assert.Empty(t, d.Err())
}

func TestDetail_MarkFollowUpDoneFailure(t *testing.T) {
	f := seededBackend()
	d := newTestDetail(f)
	ctx := context.Background()
	require.NoError(t, d.Load(ctx, "1"))

	f.failOn("SetFollowUpStatus", &model.NetworkError{Op: "PATCH /followups/f2", Err: errors.New("refused")})
	require.Error(t, d.MarkFollowUpDone(ctx, "f2", "1"))

	assert.Equal(t, "Failed to update followup", d.Err())
	assert.False(t, d.FollowUps()[0].IsCompleted())
}

func TestDetail_Clear(t *testing.T) {
	d := newTestDetail(seededBackend())
	require.NoError(t, d.Load(context.Background(), "1"))

	d.Clear()

	assert.Equal(t, DetailIdle, d.State())
	assert.Empty(t, d.LeadID())
	assert.Empty(t, d.Notes())
	assert.Empty(t, d.FollowUps())
	_, ok := d.Lead()
	assert.False(t, ok)
}

func TestDetail_DropsResultsForAnotherLead(t *testing.T) {
	f := seededBackend()
	d := newTestDetail(f)
	ctx := context.Background()
	require.NoError(t, d.Load(ctx, "1"))

	// Switching leads forgets the previous lead's records.
	require.NoError(t, d.LoadLead(ctx, "2"))
	assert.Empty(t, d.Notes())

	// A late notes response for lead 1 is ignored.
	require.NoError(t, d.LoadNotes(ctx, "1"))
	assert.Empty(t, d.Notes())
}

// slowFollowUps answers after a short delay unless its context is cancelled
// first, like a real HTTP call.
type slowFollowUps struct {
	*fakeBackend
}

func (s slowFollowUps) ListFollowUps(ctx context.Context, leadID string) ([]model.FollowUp, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(50 * time.Millisecond):
	}
	return s.fakeBackend.ListFollowUps(ctx, leadID)
}

func TestDetail_LoadKeepsFollowUpsWhenNotesFail(t *testing.T) {
	f := seededBackend()
	f.failOn("ListNotes", errors.New("boom"))
	d := NewDetail(f, f, slowFollowUps{f},
		WithLogger(logging.Discard()),
		WithClock(func() time.Time { return testNow }),
	)

	err := d.Load(context.Background(), "1")
	require.Error(t, err)

	assert.Equal(t, msgFetchNotes, d.Err())
	followUps := d.FollowUps()
	require.Len(t, followUps, 1)
	assert.Equal(t, "f2", followUps[0].ID)
	assert.Equal(t, 1, f.callCount("ListFollowUps"))
}
