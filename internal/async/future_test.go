package async

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type adder struct {
	mu    sync.Mutex
	calls [][]int
	fail  error
}

func (a *adder) Add(x, y, z int, cb Callback[int]) {
	a.mu.Lock()
	a.calls = append(a.calls, []int{x, y, z})
	a.mu.Unlock()
	if a.fail != nil {
		cb(0, a.fail)
		return
	}
	cb(x+y+z, nil)
}

func TestWrap3_ResolvesWithData(t *testing.T) {
	a := &adder{}
	add := Wrap3(a.Add)
	v, err := add(2, 3, 4).Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 9, v)
	require.Equal(t, [][]int{{2, 3, 4}}, a.calls)
}

func TestWrap3_RejectsWithError(t *testing.T) {
	boom := errors.New("boom")
	a := &adder{fail: boom}
	_, err := Wrap3(a.Add)(1, 1, 1).Await(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestWrap3_ForwardsArgumentsAndReceiver(t *testing.T) {
	type rec struct{ prefix string }
	r := &rec{prefix: "p-"}
	join := func(a, b, c string, cb Callback[string]) {
		cb(r.prefix+a+b+c, nil)
	}
	v, err := Wrap3(join)("a", "b", "c").Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "p-abc", v)
}

func TestCall_SettlesOnce(t *testing.T) {
	f := Call(func(cb Callback[string]) {
		cb("first", nil)
		cb("second", nil)
		cb("", errors.New("late"))
	})
	v, err := f.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "first", v)
}

func TestCall_AsyncCallback(t *testing.T) {
	f := Call(func(cb Callback[int]) {
		Go(func() (int, error) {
			time.Sleep(10 * time.Millisecond)
			return 42, nil
		}, cb)
	})
	select {
	case <-f.Done():
		t.Fatal("future settled before callback fired")
	default:
	}
	v, err := f.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestAwait_ContextCancelled(t *testing.T) {
	f := Call(func(cb Callback[int]) {})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Await(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestResolved(t *testing.T) {
	v, err := Resolved("x", nil).Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "x", v)
}
