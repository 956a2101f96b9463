package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayk98/mini-crm/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second)
}

func TestListLeadsDecodesCamelCase(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/leads", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":"1","name":"Rahul Sharma","phone":"9123456789",
			"status":"New","source":"Website","assignedTo":2,"createdAt":"2026-01-02T03:04:05Z"}]`)
	})

	leads, err := c.ListLeads(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Rahul Sharma", leads[0].Name)
	assert.Equal(t, 2, leads[0].AssignedTo)
	assert.Equal(t, 2026, leads[0].CreatedAt.Year())
}

func TestCreateLeadSendsDraft(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "id")
		assert.Equal(t, "Test User", body["name"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"abc","name":"Test User"}`)
	})

	lead, err := c.CreateLead(context.Background(), model.LeadDraft{Name: "Test User"})
	require.NoError(t, err)
	assert.Equal(t, "abc", lead.ID)
}

func TestNotFoundMapsToErrNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"lead missing","code":"not_found"}`)
	})

	_, err := c.GetLead(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.False(t, model.IsNetwork(err))
}

func TestServerErrorIsNetworkFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"db locked","code":"internal_error"}`)
	})

	err := c.DeleteLead(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, model.IsNetwork(err))
	assert.Contains(t, err.Error(), "db locked")
}

func TestUnreachableBackendIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	_, err := c.ListLeads(context.Background())
	require.Error(t, err)
	assert.True(t, model.IsNetwork(err))
}

func TestValidationEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"invalid lead","code":"validation_failed","fields":{"phone":"Phone must be 10 digits."}}`)
	})

	_, err := c.CreateLead(context.Background(), model.LeadDraft{})
	var v *model.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Equal(t, "Phone must be 10 digits.", v.Field("phone"))
}

func TestListNotesPushesLeadFilter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notes", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("leadId"))
		_, _ = io.WriteString(w, `[{"id":"n1","leadId":"42","content":"hi","createdBy":1}]`)
	})

	notes, err := c.ListNotes(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "hi", notes[0].Content)
}

func TestSetFollowUpStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/followups/f1", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"status": "completed"}, body)
		_, _ = io.WriteString(w, `{"id":"f1","leadId":"1","date":"2026-11-01","status":"completed"}`)
	})

	f, err := c.SetFollowUpStatus(context.Background(), "f1", model.FollowUpCompleted)
	require.NoError(t, err)
	assert.True(t, f.IsCompleted())
	assert.Equal(t, "2026-11-01", f.Date.String())
}

func TestFindUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("password") == "Admin@123" {
			_, _ = io.WriteString(w, `[{"id":1,"email":"admin@gmail.com","role":"admin"}]`)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	})

	u, err := c.FindUser(context.Background(), "admin@gmail.com", "Admin@123")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)

	_, err = c.FindUser(context.Background(), "admin@gmail.com", "wrong")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestContextCancellation(t *testing.T) {
	block := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-block
	})
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.ListLeads(ctx)
	require.Error(t, err)
	assert.True(t, model.IsNetwork(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
