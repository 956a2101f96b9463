package model

import "time"

// Note is a free-text annotation on a lead. Notes are append-only.
type Note struct {
	ID        string    `json:"id" db:"id"`
	LeadID    string    `json:"leadId" db:"lead_id"`
	Content   string    `json:"content" db:"content"`
	CreatedBy int       `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// NoteDraft is a note that has not been stored yet.
type NoteDraft struct {
	LeadID    string `json:"leadId"`
	Content   string `json:"content"`
	CreatedBy int    `json:"createdBy"`
}
