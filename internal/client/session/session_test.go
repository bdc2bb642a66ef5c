package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Empty(t *testing.T) {
	s := New()
	id, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, Identity{}, id)
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Token())
	assert.Empty(t, s.Username())
}

func TestAdopt(t *testing.T) {
	tests := []struct {
		name    string
		id      Identity
		wantErr bool
	}{
		{name: "complete", id: Identity{Username: "alice", Role: "user", Token: "tok1"}},
		{name: "no username", id: Identity{Role: "user", Token: "tok1"}, wantErr: true},
		{name: "no role", id: Identity{Username: "alice", Token: "tok1"}, wantErr: true},
		{name: "no token", id: Identity{Username: "alice", Role: "user"}, wantErr: true},
		{name: "zero", id: Identity{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			err := s.Adopt(tt.id)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrIncomplete)
				assert.False(t, s.LoggedIn())
				return
			}
			require.NoError(t, err)
			got, ok := s.Current()
			assert.True(t, ok)
			assert.Equal(t, tt.id, got)
			assert.Equal(t, "tok1", s.Token())
			assert.Equal(t, "alice", s.Username())
		})
	}
}

func TestAdopt_IncompleteKeepsPrevious(t *testing.T) {
	s := New()
	prev := Identity{Username: "bob", Role: "admin", Token: "t"}
	require.NoError(t, s.Adopt(prev))

	require.Error(t, s.Adopt(Identity{Username: "mallory"}))

	got, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, prev, got)
}

func TestClear(t *testing.T) {
	s := New()
	require.NoError(t, s.Adopt(Identity{Username: "alice", Role: "user", Token: "tok1"}))
	s.Clear()

	_, ok := s.Current()
	assert.False(t, ok)
	assert.Empty(t, s.Token())
}

func TestConcurrentAdoptNeverTorn(t *testing.T) {
	s := New()
	a := Identity{Username: "a", Role: "ra", Token: "ta"}
	b := Identity{Username: "b", Role: "rb", Token: "tb"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); _ = s.Adopt(a) }()
		go func() { defer wg.Done(); _ = s.Adopt(b) }()
		go func() {
			defer wg.Done()
			id, ok := s.Current()
			if ok {
				assert.Contains(t, []Identity{a, b}, id)
			}
		}()
	}
	wg.Wait()
}
