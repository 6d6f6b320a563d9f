package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/arogyalabs/cardioscope/internal/domain"
)

func TestAuditService_PersistsAsync(t *testing.T) {
	svc, repo := newTestAuditService()

	userID := uuid.New()
	svc.LogAsync(context.Background(), AuditEntry{
		UserID:       &userID,
		UserRole:     string(domain.RoleClinician),
		Action:       domain.ActionAssess,
		ResourceType: "prediction",
		RequestID:    "req-42",
	})
	svc.LogAsync(context.Background(), AuditEntry{
		Action:       domain.ActionParse,
		ResourceType: "report",
	})

	svc.Shutdown() // drains the buffer

	if got := repo.count(); got != 2 {
		t.Fatalf("persisted %d entries, want 2", got)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	first := repo.entries[0]
	if first.UserID == nil || *first.UserID != userID {
		t.Errorf("user id = %v", first.UserID)
	}
	if first.Action != domain.ActionAssess || first.ResourceType != "prediction" {
		t.Errorf("entry = %+v", first)
	}
	if repo.entries[1].UserID != nil {
		t.Error("anonymous entry must carry a nil user id")
	}
}

func TestAuditService_ShutdownIdle(t *testing.T) {
	svc, _ := newTestAuditService()

	done := make(chan struct{})
	go func() {
		svc.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return for an idle service")
	}
}
