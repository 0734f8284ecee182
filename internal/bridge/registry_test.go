package bridge

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSession(id string) *Session {
	return newSession(id, httptest.NewRecorder(), nil, zap.NewNop(), 1)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(testSession("b")))
	require.NoError(t, r.Add(testSession("a")))

	err := r.Add(testSession("a"))
	require.ErrorIs(t, err, ErrDuplicateSession)

	s, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", s.ID())
	assert.Equal(t, "/messages?sessionId=a", s.Endpoint())
	assert.Equal(t, []string{"a", "b"}, r.IDs())

	assert.True(t, r.Remove("a"))
	assert.False(t, r.Remove("a"))
	_, ok = r.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s-%d", i)
			assert.NoError(t, r.Add(testSession(id)))
			_, ok := r.Get(id)
			assert.True(t, ok)
			r.IDs()
			if i%2 == 0 {
				assert.True(t, r.Remove(id))
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 25, r.Len())
}

func TestSessionSend(t *testing.T) {
	s := testSession("x")
	assert.Equal(t, StateOpening, s.State())
	assert.False(t, s.Send([]byte("early")), "opening sessions do not accept events")

	s.setState(StateConnected)
	assert.True(t, s.Send([]byte("one")))
	assert.False(t, s.Send([]byte("two")), "full buffer drops the event")

	s.close()
	s.close()
	assert.Equal(t, StateClosed, s.State())
	assert.Equal(t, "closed", s.State().String())
	assert.False(t, s.Send([]byte("late")))
}
