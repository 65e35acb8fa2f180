package core

import (
	"context"
	"testing"
	"time"
)

func TestService_PruneAuditLog(t *testing.T) {
	now := testNow
	svc := NewService(WithClock(func() time.Time { return now }))
	ctx := context.Background()

	svc.LogAudit(ctx, AuditLogParams{Action: ActionLogin, Entity: "usuario", EntityID: "1"})
	now = now.Add(48 * time.Hour)
	svc.LogAudit(ctx, AuditLogParams{Action: ActionLogin, Entity: "usuario", EntityID: "2"})
	svc.LogAudit(ctx, AuditLogParams{Action: ActionLogin, Entity: "usuario", EntityID: "3"})
	svc.LogAudit(ctx, AuditLogParams{Action: ActionLogin, Entity: "usuario", EntityID: "4"})

	if got := svc.PruneAuditLog(0, 0); got != 0 {
		t.Fatalf("no-op prune removed %d", got)
	}
	if got := svc.PruneAuditLog(24*time.Hour, 0); got != 1 {
		t.Fatalf("age prune removed %d, want 1", got)
	}
	if got := svc.PruneAuditLog(0, 2); got != 1 {
		t.Fatalf("cap prune removed %d, want 1", got)
	}

	left := svc.AuditLog(AuditLogFilter{})
	if len(left) != 2 || left[0].EntityID != "4" || left[1].EntityID != "3" {
		t.Errorf("remaining = %+v", left)
	}
}

func TestService_RetentionSchedulerStops(t *testing.T) {
	svc := newTestService()
	svc.LogAudit(context.Background(), AuditLogParams{Action: ActionLogin})
	svc.LogAudit(context.Background(), AuditLogParams{Action: ActionLogin})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.StartRetentionScheduler(ctx, RetentionConfig{MaxEntries: 1, CheckInterval: time.Hour})
		close(done)
	}()

	// The first cycle runs before the loop waits.
	deadline := time.After(time.Second)
	for len(svc.AuditLog(AuditLogFilter{})) != 1 {
		select {
		case <-deadline:
			t.Fatal("initial prune did not run")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
