package orchestrator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_InitialStateIsIdle(t *testing.T) {
	n := NewNotifier(0, 0)
	assert.Equal(t, StateIdle, n.Current().State)
}

func TestNotifier_PendingDoesNotTimeOut(t *testing.T) {
	n := NewNotifier(10*time.Millisecond, 10*time.Millisecond)

	n.Pending("working...")
	time.Sleep(50 * time.Millisecond)

	got := n.Current()
	assert.Equal(t, StatePending, got.State)
	assert.Equal(t, "working...", got.Message)
}

func TestNotifier_SuccessAutoDismisses(t *testing.T) {
	n := NewNotifier(10*time.Millisecond, time.Minute)

	n.Success("done!")
	assert.Equal(t, StateSuccess, n.Current().State)

	require.Eventually(t, func() bool {
		return n.Current().State == StateIdle
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, n.Current().Message)
}

func TestNotifier_ErrorAutoDismisses(t *testing.T) {
	n := NewNotifier(time.Minute, 10*time.Millisecond)

	n.Fail("broke")
	assert.Equal(t, StateError, n.Current().State)

	require.Eventually(t, func() bool {
		return n.Current().State == StateIdle
	}, time.Second, 5*time.Millisecond)
}

func TestNotifier_NewerNoticeSupersedesScheduledDismissal(t *testing.T) {
	n := NewNotifier(20*time.Millisecond, time.Minute)

	n.Success("first")
	n.Pending("second operation running")

	// The first notice's timer firing must not clear the newer pending one
	time.Sleep(100 * time.Millisecond)
	got := n.Current()
	assert.Equal(t, StatePending, got.State)
	assert.Equal(t, "second operation running", got.Message)
}

func TestNotifier_SubscriberSeesEveryTransition(t *testing.T) {
	n := NewNotifier(10*time.Millisecond, time.Minute)

	notices := make(chan Notice, 8)
	n.Subscribe(func(notice Notice) { notices <- notice })

	n.Pending("working...")
	n.Success("done!")

	assert.Equal(t, StatePending, (<-notices).State)
	assert.Equal(t, StateSuccess, (<-notices).State)

	select {
	case got := <-notices:
		assert.Equal(t, StateIdle, got.State)
	case <-time.After(time.Second):
		t.Fatal("auto-dismiss notice never arrived")
	}
}
