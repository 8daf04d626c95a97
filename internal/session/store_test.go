package session

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/events"
)

func testStore() *Store {
	return NewStore(NewMemoryStorage(), zap.NewNop())
}

func testUser() domain.User {
	return domain.User{
		ID:       "u1",
		Username: "amira",
		UserType: domain.UserTypeJobSeeker,
	}
}

func TestLoginThenRestore(t *testing.T) {
	store := testStore()
	ctx := context.Background()

	if err := store.Login(ctx, "sid", "tok-123", testUser()); err != nil {
		t.Fatalf("login: %v", err)
	}

	sess, err := store.Restore(ctx, "sid")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if sess == nil {
		t.Fatal("expected a session after login")
	}
	if sess.Token != "tok-123" {
		t.Fatalf("expected token tok-123, got %q", sess.Token)
	}
	if sess.User.Username != "amira" {
		t.Fatalf("expected cached user, got %+v", sess.User)
	}
}

func TestRestoreWithoutLogin(t *testing.T) {
	sess, err := testStore().Restore(context.Background(), "sid")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected nil session, got %+v", sess)
	}
}

func TestRestoreWipesHalfPair(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, zap.NewNop())
	ctx := context.Background()

	// Token without a user snapshot must not count as logged in.
	if err := storage.Set(ctx, "sid", map[string]string{fieldToken: "tok"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sess, err := store.Restore(ctx, "sid")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if sess != nil {
		t.Fatal("expected nil session for token-only state")
	}
	if _, ok, _ := storage.Get(ctx, "sid", fieldToken); ok {
		t.Fatal("expected half pair to be wiped")
	}
}

func TestRestoreWipesMalformedUser(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, zap.NewNop())
	ctx := context.Background()

	if err := storage.Set(ctx, "sid", map[string]string{
		fieldToken: "tok",
		fieldUser:  "{not json",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sess, err := store.Restore(ctx, "sid")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if sess != nil {
		t.Fatal("expected nil session for malformed user state")
	}
	if _, ok, _ := storage.Get(ctx, "sid", fieldUser); ok {
		t.Fatal("expected malformed state to be wiped")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	store := testStore()
	ctx := context.Background()

	if err := store.Login(ctx, "sid", "tok", testUser()); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := store.Logout(ctx, "sid"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	sess, err := store.Restore(ctx, "sid")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if sess != nil {
		t.Fatal("expected nil session after logout")
	}
}

func TestAppliedJobs(t *testing.T) {
	store := testStore()
	ctx := context.Background()

	if err := store.AddAppliedJob(ctx, "sid", "job-1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddAppliedJob(ctx, "sid", "job-1"); err != nil {
		t.Fatalf("add duplicate: %v", err)
	}
	if err := store.AddAppliedJob(ctx, "sid", "job-2"); err != nil {
		t.Fatalf("add second: %v", err)
	}

	ids, err := store.AppliedJobs(ctx, "sid")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 applied jobs, got %v", ids)
	}

	applied, err := store.HasApplied(ctx, "sid", "job-1")
	if err != nil {
		t.Fatalf("has applied: %v", err)
	}
	if !applied {
		t.Fatal("expected job-1 to be applied")
	}
	applied, err = store.HasApplied(ctx, "sid", "job-9")
	if err != nil {
		t.Fatalf("has applied: %v", err)
	}
	if applied {
		t.Fatal("expected job-9 to not be applied")
	}
}

func TestInvalidationEventForcesLogout(t *testing.T) {
	store := testStore()
	ctx := context.Background()
	dispatcher := events.NewInMemoryDispatcher()
	store.BindInvalidation(dispatcher)

	if err := store.Login(ctx, "sid", "tok", testUser()); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := dispatcher.Publish(ctx, events.Event{
		Type:      events.EventSessionInvalidated,
		SessionID: "sid",
		Payload:   events.SessionInvalidatedPayload{Status: 401, Path: "/api/jobs"},
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	sess, err := store.Restore(ctx, "sid")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if sess != nil {
		t.Fatal("expected session to be gone after a 401 event")
	}
}
