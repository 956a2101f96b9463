// Package validate holds the client-side field checks shared by the lead
// form and the view-models. Every check runs before any network call.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vinayk98/mini-crm/internal/model"
)

// Field names used as keys in model.ValidationError.
const (
	FieldName       = "name"
	FieldPhone      = "phone"
	FieldEmail      = "email"
	FieldStatus     = "status"
	FieldSource     = "source"
	FieldAssignedTo = "assignedTo"
	FieldContent    = "content"
	FieldDate       = "date"
)

var (
	phoneRe = regexp.MustCompile(`^\d{10}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Name checks that a lead name is present.
func Name(s string) error {
	if strings.TrimSpace(s) == "" {
		return model.NewValidationError(FieldName, "Name is required.")
	}
	return nil
}

// Phone checks that a phone number is exactly ten digits.
func Phone(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.NewValidationError(FieldPhone, "Phone is required.")
	}
	if !phoneRe.MatchString(s) {
		return model.NewValidationError(FieldPhone, "Phone must be 10 digits.")
	}
	return nil
}

// Email accepts an empty value; anything else must look like an address.
func Email(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !emailRe.MatchString(s) {
		return model.NewValidationError(FieldEmail, "Enter a valid email address.")
	}
	return nil
}

// Status checks that s names a known lead status.
func Status(s string) error {
	if strings.TrimSpace(s) == "" {
		return model.NewValidationError(FieldStatus, "Status is required.")
	}
	if _, err := model.ParseLeadStatus(s); err != nil {
		return model.NewValidationError(FieldStatus, "Unknown status.")
	}
	return nil
}

// Source checks that s names a known lead source.
func Source(s string) error {
	if strings.TrimSpace(s) == "" {
		return model.NewValidationError(FieldSource, "Source is required.")
	}
	if _, err := model.ParseLeadSource(s); err != nil {
		return model.NewValidationError(FieldSource, "Unknown source.")
	}
	return nil
}

// AssignedTo checks the raw assignee input from a form: required and a
// positive user number.
func AssignedTo(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.NewValidationError(FieldAssignedTo, "Assigned To is required.")
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return model.NewValidationError(FieldAssignedTo, "Assigned To must be a user number.")
	}
	return nil
}

// Lead runs every lead check and collects all failing fields into one
// error.
func Lead(d model.LeadDraft) error {
	assignee := ""
	if d.AssignedTo != 0 {
		assignee = strconv.Itoa(d.AssignedTo)
	}
	return collect(
		Name(d.Name),
		Phone(d.Phone),
		Email(d.Email),
		Status(string(d.Status)),
		Source(string(d.Source)),
		AssignedTo(assignee),
	)
}

// LeadPatch checks only the fields the patch sets.
func LeadPatch(p model.LeadPatch) error {
	var errs []error
	if p.Name != nil {
		errs = append(errs, Name(*p.Name))
	}
	if p.Phone != nil {
		errs = append(errs, Phone(*p.Phone))
	}
	if p.Email != nil {
		errs = append(errs, Email(*p.Email))
	}
	if p.Status != nil {
		errs = append(errs, Status(string(*p.Status)))
	}
	if p.Source != nil {
		errs = append(errs, Source(string(*p.Source)))
	}
	if p.AssignedTo != nil {
		errs = append(errs, AssignedTo(strconv.Itoa(*p.AssignedTo)))
	}
	return collect(errs...)
}

// NoteContent checks that a note has text after trimming.
func NoteContent(s string) error {
	if strings.TrimSpace(s) == "" {
		return model.NewValidationError(FieldContent, "Note cannot be empty.")
	}
	return nil
}

// FollowUpDate parses s and checks that it is not before today's date.
// Only calendar dates are compared, so scheduling for today is accepted
// whatever the time of day.
func FollowUpDate(s string, now time.Time) (model.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Date{}, model.NewValidationError(FieldDate, "Date is required.")
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, model.NewValidationError(FieldDate, "Use the YYYY-MM-DD format.")
	}
	if err := FollowUpDay(d, now); err != nil {
		return model.Date{}, err
	}
	return d, nil
}

// FollowUpDay checks an already-parsed date against today.
func FollowUpDay(d model.Date, now time.Time) error {
	if d.IsZero() {
		return model.NewValidationError(FieldDate, "Date is required.")
	}
	if d.Before(model.DateOf(now)) {
		return model.NewValidationError(FieldDate, "Date cannot be in the past.")
	}
	return nil
}

// collect merges the field maps of every non-nil ValidationError.
func collect(errs ...error) error {
	fields := make(map[string]string)
	for _, err := range errs {
		if err == nil {
			continue
		}
		if v, ok := err.(*model.ValidationError); ok {
			for k, msg := range v.Fields {
				fields[k] = msg
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &model.ValidationError{Fields: fields}
}
