package pos

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/application/cart"
)

func newTestStore() *Store {
	// Long intervals so the cleanup goroutine stays quiet during tests
	return NewStore(StoreConfig{SessionTTL: time.Hour, CleanupInterval: time.Hour})
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore()

	sess := store.Create()
	if sess.Cart == nil {
		t.Fatal("new session should carry an empty cart")
	}

	got, err := store.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != sess.ID {
		t.Errorf("ID = %v, want %v", got.ID, sess.ID)
	}

	if _, err := store.Get(uuid.New()); err != ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore()
	sess := store.Create()

	store.Delete(sess.ID)
	if _, err := store.Get(sess.ID); err != ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound after delete", err)
	}
	if store.Count() != 0 {
		t.Errorf("Count = %d, want 0", store.Count())
	}
}

func TestCheckoutGuard(t *testing.T) {
	store := newTestStore()
	sess := store.Create()

	c, err := sess.BeginCheckout()
	if err != nil {
		t.Fatalf("BeginCheckout: %v", err)
	}
	if c == nil {
		t.Fatal("BeginCheckout should return the session cart")
	}
	if _, err := sess.BeginCheckout(); err != ErrCheckoutInFlight {
		t.Errorf("second BeginCheckout = %v, want ErrCheckoutInFlight", err)
	}
	if err := sess.WithCart(func(c *cart.Cart) error { return nil }); err != ErrCheckoutInFlight {
		t.Errorf("WithCart during checkout = %v, want ErrCheckoutInFlight", err)
	}

	sess.EndCheckout()
	if _, err := sess.BeginCheckout(); err != nil {
		t.Errorf("BeginCheckout after EndCheckout: %v", err)
	}
}

func TestCleanupRemovesIdleSessions(t *testing.T) {
	store := newTestStore()
	sess := store.Create()

	sess.mu.Lock()
	sess.lastSeen = time.Now().Add(-2 * time.Hour)
	sess.mu.Unlock()

	store.cleanup()
	if _, err := store.Get(sess.ID); err != ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound after cleanup", err)
	}
}

func TestCleanupSparesSubmittingSessions(t *testing.T) {
	store := newTestStore()
	sess := store.Create()

	if _, err := sess.BeginCheckout(); err != nil {
		t.Fatalf("BeginCheckout: %v", err)
	}
	sess.mu.Lock()
	sess.lastSeen = time.Now().Add(-2 * time.Hour)
	sess.mu.Unlock()

	store.cleanup()
	if _, err := store.Get(sess.ID); err != nil {
		t.Errorf("submitting session should survive cleanup, got %v", err)
	}
}
