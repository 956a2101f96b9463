package testutil

import (
	"context"
	"testing"

	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// SeedLead inserts a lead with the given name and phone and returns it.
func SeedLead(t *testing.T, s *store.SQLiteStore, name, phone string) *model.Lead {
	t.Helper()

	lead, err := s.CreateLead(context.Background(), model.LeadDraft{
		Name:       name,
		Phone:      phone,
		Status:     model.StatusNew,
		Source:     model.SourceWebsite,
		AssignedTo: 2,
	})
	if err != nil {
		t.Fatalf("seeding lead %s: %v", name, err)
	}
	return lead
}
