package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayk98/mini-crm/internal/model"
)

func validDraft() model.LeadDraft {
	return model.LeadDraft{
		Name:       "Test User",
		Phone:      "9123456789",
		Status:     model.StatusNew,
		Source:     model.SourceWebsite,
		AssignedTo: 1,
	}
}

func fieldError(t *testing.T, err error, field string) string {
	t.Helper()
	var v *model.ValidationError
	require.True(t, errors.As(err, &v), "expected a validation error, got %v", err)
	return v.Field(field)
}

func TestLeadAcceptsValidDraft(t *testing.T) {
	assert.NoError(t, Lead(validDraft()))
}

func TestLeadRejectsShortPhone(t *testing.T) {
	d := validDraft()
	d.Phone = "12345"
	err := Lead(d)
	assert.Equal(t, "Phone must be 10 digits.", fieldError(t, err, FieldPhone))
}

func TestLeadCollectsEveryField(t *testing.T) {
	err := Lead(model.LeadDraft{Email: "not-an-email"})

	var v *model.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "Name is required.", v.Field(FieldName))
	assert.Equal(t, "Phone is required.", v.Field(FieldPhone))
	assert.Equal(t, "Enter a valid email address.", v.Field(FieldEmail))
	assert.Equal(t, "Status is required.", v.Field(FieldStatus))
	assert.Equal(t, "Source is required.", v.Field(FieldSource))
	assert.Equal(t, "Assigned To is required.", v.Field(FieldAssignedTo))
}

func TestEmailOptional(t *testing.T) {
	assert.NoError(t, Email(""))
	assert.NoError(t, Email("  "))
	assert.NoError(t, Email("lead1@gmail.com"))
	assert.Error(t, Email("lead1@gmail"))
	assert.Error(t, Email("lead 1@gmail.com"))
}

func TestPhone(t *testing.T) {
	assert.NoError(t, Phone("9876543210"))
	assert.NoError(t, Phone(" 9876543210 "))
	assert.Error(t, Phone("98765432101"))
	assert.Error(t, Phone("98765-4321"))
}

func TestStatusAndSourceAreCaseInsensitive(t *testing.T) {
	assert.NoError(t, Status("lost"))
	assert.NoError(t, Source("social media"))
	assert.Error(t, Status("Won"))
	assert.Error(t, Source("Billboard"))
}

func TestAssignedTo(t *testing.T) {
	assert.NoError(t, AssignedTo("2"))
	assert.Error(t, AssignedTo("Admin User"))
	assert.Error(t, AssignedTo("0"))
	assert.Error(t, AssignedTo(""))
}

func TestLeadPatchChecksOnlySetFields(t *testing.T) {
	assert.NoError(t, LeadPatch(model.LeadPatch{}))

	status := model.StatusLost
	assert.NoError(t, LeadPatch(model.LeadPatch{Status: &status}))

	phone := "123"
	err := LeadPatch(model.LeadPatch{Phone: &phone, Status: &status})
	assert.Equal(t, "Phone must be 10 digits.", fieldError(t, err, FieldPhone))
}

func TestNoteContent(t *testing.T) {
	assert.NoError(t, NoteContent("called, no answer"))
	assert.Error(t, NoteContent("   \n"))
}

func TestFollowUpDate(t *testing.T) {
	now := time.Date(2026, 10, 19, 23, 30, 0, 0, time.Local)

	d, err := FollowUpDate("2026-10-19", now)
	require.NoError(t, err, "same-day scheduling is accepted")
	assert.Equal(t, "2026-10-19", d.String())

	_, err = FollowUpDate("2026-10-25", now)
	assert.NoError(t, err)

	_, err = FollowUpDate("2026-10-18", now)
	assert.Equal(t, "Date cannot be in the past.", fieldError(t, err, FieldDate))

	_, err = FollowUpDate("", now)
	assert.Equal(t, "Date is required.", fieldError(t, err, FieldDate))

	_, err = FollowUpDate("19/10/2026", now)
	assert.Equal(t, "Use the YYYY-MM-DD format.", fieldError(t, err, FieldDate))
}
