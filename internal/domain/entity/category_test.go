package entity

import (
	"testing"

	"github.com/google/uuid"
)

func TestCategory_IsVisibleTo(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	owned := NewCategory(owner, "Coffee", CategoryTypeExpense)
	system := &Category{ID: uuid.New(), Name: "Transport", Type: CategoryTypeExpense, IsDefault: true}

	tests := []struct {
		name     string
		category *Category
		userID   uuid.UUID
		visible  bool
		owned    bool
	}{
		{"owner sees own category", owned, owner, true, true},
		{"stranger cannot see it", owned, stranger, false, false},
		{"system default is visible to all", system, stranger, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.category.IsVisibleTo(tt.userID); got != tt.visible {
				t.Errorf("IsVisibleTo = %v, want %v", got, tt.visible)
			}
			if got := tt.category.IsOwnedBy(tt.userID); got != tt.owned {
				t.Errorf("IsOwnedBy = %v, want %v", got, tt.owned)
			}
		})
	}
}

func TestEmailJob_MarkFailed(t *testing.T) {
	job := NewEmailJob(TemplateWelcome, "a@example.com", "A", "Welcome", nil)

	job.MarkFailed(errTest("temporary"), false)
	if job.Status != EmailStatusPending {
		t.Fatalf("expected pending after first failure, got %s", job.Status)
	}
	if job.Attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", job.Attempts)
	}

	job.MarkFailed(errTest("permanent"), true)
	if job.Status != EmailStatusFailed {
		t.Errorf("expected failed after permanent error, got %s", job.Status)
	}
	if job.LastError != "permanent" {
		t.Errorf("unexpected last error %q", job.LastError)
	}
	if job.ProcessedAt == nil {
		t.Error("expected processed_at to be set")
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
