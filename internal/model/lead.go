package model

import (
	"fmt"
	"strings"
	"time"
)

// LeadStatus is the position of a lead in the sales pipeline.
type LeadStatus string

const (
	StatusNew       LeadStatus = "New"
	StatusContacted LeadStatus = "Contacted"
	StatusQualified LeadStatus = "Qualified"
	StatusLost      LeadStatus = "Lost"
)

// LeadStatuses lists every valid status in pipeline order.
var LeadStatuses = []LeadStatus{StatusNew, StatusContacted, StatusQualified, StatusLost}

// LeadSource identifies the channel a lead came in through.
type LeadSource string

const (
	SourceWebsite     LeadSource = "Website"
	SourceReferral    LeadSource = "Referral"
	SourceSocialMedia LeadSource = "Social Media"
	SourceColdCall    LeadSource = "Cold Call"
)

// LeadSources lists every valid source.
var LeadSources = []LeadSource{SourceWebsite, SourceReferral, SourceSocialMedia, SourceColdCall}

// ParseLeadStatus matches s case-insensitively against the known statuses
// and returns the canonical form.
func ParseLeadStatus(s string) (LeadStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range LeadStatuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown lead status %q", s)
}

// ParseLeadSource matches s case-insensitively against the known sources
// and returns the canonical form.
func ParseLeadSource(s string) (LeadSource, error) {
	s = strings.TrimSpace(s)
	for _, src := range LeadSources {
		if strings.EqualFold(string(src), s) {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown lead source %q", s)
}

// Lead is a sales prospect tracked through the status pipeline.
type Lead struct {
	ID         string     `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Email      string     `json:"email" db:"email"`
	Phone      string     `json:"phone" db:"phone"`
	Status     LeadStatus `json:"status" db:"status"`
	Source     LeadSource `json:"source" db:"source"`
	Company    string     `json:"company" db:"company"`
	AssignedTo int        `json:"assignedTo" db:"assigned_to"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}

// LeadDraft is a lead that has not been stored yet. The identifier and
// creation time are assigned by the collection.
type LeadDraft struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Status     LeadStatus `json:"status"`
	Source     LeadSource `json:"source"`
	Company    string     `json:"company"`
	AssignedTo int        `json:"assignedTo"`
}

// LeadPatch is a partial update. Nil fields are left untouched.
type LeadPatch struct {
	Name       *string     `json:"name,omitempty"`
	Email      *string     `json:"email,omitempty"`
	Phone      *string     `json:"phone,omitempty"`
	Status     *LeadStatus `json:"status,omitempty"`
	Source     *LeadSource `json:"source,omitempty"`
	Company    *string     `json:"company,omitempty"`
	AssignedTo *int        `json:"assignedTo,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p LeadPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Status == nil && p.Source == nil && p.Company == nil &&
		p.AssignedTo == nil
}

// Apply returns a copy of l with the patch applied. CreatedAt and ID are
// never changed.
func (p LeadPatch) Apply(l Lead) Lead {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Email != nil {
		l.Email = *p.Email
	}
	if p.Phone != nil {
		l.Phone = *p.Phone
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.Source != nil {
		l.Source = *p.Source
	}
	if p.Company != nil {
		l.Company = *p.Company
	}
	if p.AssignedTo != nil {
		l.AssignedTo = *p.AssignedTo
	}
	return l
}

// Draft returns the mutable fields of l as a draft.
func (l Lead) Draft() LeadDraft {
	return LeadDraft{
		Name:       l.Name,
		Email:      l.Email,
		Phone:      l.Phone,
		Status:     l.Status,
		Source:     l.Source,
		Company:    l.Company,
		AssignedTo: l.AssignedTo,
	}
}

// PatchFromDraft builds a patch that overwrites every mutable field.
func PatchFromDraft(d LeadDraft) LeadPatch {
	return LeadPatch{
		Name:       &d.Name,
		Email:      &d.Email,
		Phone:      &d.Phone,
		Status:     &d.Status,
		Source:     &d.Source,
		Company:    &d.Company,
		AssignedTo: &d.AssignedTo,
	}
}
