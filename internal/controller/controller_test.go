package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/labyrinth/internal/db"
	"github.com/udisondev/labyrinth/internal/gameserver"
	"github.com/udisondev/labyrinth/internal/protocol"
	"github.com/udisondev/labyrinth/internal/testutil"
)

type fakeListener struct {
	mu    sync.Mutex
	conns map[int]*testutil.FakePacketConn
	fail  bool
}

func (l *fakeListener) listen(port int) (net.PacketConn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return nil, errors.New("address already in use")
	}
	if l.conns == nil {
		l.conns = map[int]*testutil.FakePacketConn{}
	}
	c := testutil.NewFakePacketConn("127.0.0.1:" + strconv.Itoa(port))
	l.conns[port] = c
	return c, nil
}

func (l *fakeListener) conn(port int) *testutil.FakePacketConn {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conns[port]
}

type memoryStore struct {
	mu      sync.Mutex
	matches []db.Match
}

func (s *memoryStore) Save(_ context.Context, m db.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = append(s.matches, m)
	return nil
}

func (s *memoryStore) saved() []db.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]db.Match(nil), s.matches...)
}

type harness struct {
	ctrl     *Controller
	ports    *PortPool
	listener *fakeListener
	store    *memoryStore
	cancel   context.CancelFunc
	done     chan error
}

func newHarness(t *testing.T, players, workers, ports int, idle time.Duration) *harness {
	t.Helper()

	session := gameserver.DefaultConfig()
	session.TickInterval = 5 * time.Millisecond
	session.IdleTimeout = idle

	h := &harness{
		ports:    NewPortPool(2000, ports),
		listener: &fakeListener{},
		store:    &memoryStore{},
		done:     make(chan error, 1),
	}
	h.ctrl = New(Config{
		PlayersPerSession: players,
		MaxSessions:       workers,
		Session:           session,
		SeedSource:        7,
	}, h.ports, h.listener.listen, h.store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := testutil.ContextWithCancel(t)
	h.cancel = cancel
	go func() { h.done <- h.ctrl.Run(ctx) }()
	testutil.Eventually(t, time.Second, func() bool {
		h.ctrl.mu.Lock()
		defer h.ctrl.mu.Unlock()
		return h.ctrl.ctx != nil
	}, "controller running")
	return h
}

func (h *harness) stop(t *testing.T) {
	t.Helper()
	h.cancel()
	select {
	case err := <-h.done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("controller did not stop")
	}
}

func TestFindSession_ReusesFormingLobby(t *testing.T) {
	h := newHarness(t, 2, 4, 4, time.Minute)
	defer h.stop(t)

	first, err := h.ctrl.FindSession()
	require.NoError(t, err)
	second, err := h.ctrl.FindSession()
	require.NoError(t, err)
	third, err := h.ctrl.FindSession()
	require.NoError(t, err)

	assert.Equal(t, 2000, first)
	assert.Equal(t, first, second, "lobby with room is reused")
	assert.Equal(t, 2001, third, "full lobby spawns a new session")
	assert.Len(t, h.ctrl.Sessions(), 2)
	assert.Equal(t, 2, h.ports.Available())
}

func TestFindSession_ResourceExhaustion(t *testing.T) {
	t.Run("no free ports", func(t *testing.T) {
		h := newHarness(t, 1, 4, 1, time.Minute)
		defer h.stop(t)

		_, err := h.ctrl.FindSession()
		require.NoError(t, err)
		_, err = h.ctrl.FindSession()
		assert.ErrorIs(t, err, ErrNoFreePorts)
	})

	t.Run("no free workers", func(t *testing.T) {
		h := newHarness(t, 1, 1, 4, time.Minute)
		defer h.stop(t)

		_, err := h.ctrl.FindSession()
		require.NoError(t, err)
		_, err = h.ctrl.FindSession()
		assert.ErrorIs(t, err, ErrNoWorkers)
		assert.Equal(t, 3, h.ports.Available(), "port of the rejected session is returned")
	})

	t.Run("bind failure", func(t *testing.T) {
		h := newHarness(t, 1, 1, 4, time.Minute)
		defer h.stop(t)
		h.listener.mu.Lock()
		h.listener.fail = true
		h.listener.mu.Unlock()

		_, err := h.ctrl.FindSession()
		assert.Error(t, err)
		assert.Equal(t, 4, h.ports.Available())
	})
}

func TestFindSession_AbandonedLobbyIsOfferedAgain(t *testing.T) {
	h := newHarness(t, 1, 1, 4, 50*time.Millisecond)
	defer h.stop(t)

	first, err := h.ctrl.FindSession()
	require.NoError(t, err)

	// nobody connects, the slot stays reserved until the claim expires
	_, err = h.ctrl.FindSession()
	assert.ErrorIs(t, err, ErrNoWorkers)

	time.Sleep(100 * time.Millisecond)

	again, err := h.ctrl.FindSession()
	require.NoError(t, err)
	assert.Equal(t, first, again, "the only worker serves the next player")

	sessions := h.ctrl.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].Assigned)
	assert.Equal(t, gameserver.StageLobbyForming, sessions[0].Stage)
}

func TestFindSession_ConnectedPlayersKeepTheirSlots(t *testing.T) {
	h := newHarness(t, 3, 1, 4, 50*time.Millisecond)
	defer h.stop(t)

	port, err := h.ctrl.FindSession()
	require.NoError(t, err)
	_, err = h.ctrl.FindSession()
	require.NoError(t, err)
	_, err = h.ctrl.FindSession()
	require.NoError(t, err)

	conn := h.listener.conn(port)
	conn.Deliver(protocol.Encode(protocol.Connect{UID: 1, Nickname: "alice"}), testutil.UDPAddr("10.0.0.1:5000"))
	conn.WaitSent(t, 2, time.Second)

	time.Sleep(100 * time.Millisecond)

	// two of three slots expire, alice keeps hers
	for range 2 {
		got, err := h.ctrl.FindSession()
		require.NoError(t, err)
		assert.Equal(t, port, got)
	}
	_, err = h.ctrl.FindSession()
	assert.ErrorIs(t, err, ErrNoWorkers)
}

func TestFindSession_NotRunning(t *testing.T) {
	c := New(Config{}, NewPortPool(2000, 1), (&fakeListener{}).listen, nil, nil)
	_, err := c.FindSession()
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestShutdown_ReclaimsAndPersists(t *testing.T) {
	h := newHarness(t, 2, 4, 4, time.Minute)

	port, err := h.ctrl.FindSession()
	require.NoError(t, err)
	conn := h.listener.conn(port)
	require.NotNil(t, conn)

	conn.Deliver(protocol.Encode(protocol.Connect{UID: 1, Nickname: "alice"}), testutil.UDPAddr("10.0.0.1:5000"))
	conn.WaitSent(t, 2, time.Second)

	h.stop(t)

	assert.Empty(t, h.ctrl.Sessions())
	assert.Equal(t, 4, h.ports.Available())
	assert.True(t, conn.Closed())

	saved := h.store.saved()
	require.Len(t, saved, 1)
	assert.Equal(t, port, saved[0].Port)
	assert.Equal(t, []string{"alice"}, saved[0].Players)
	assert.Equal(t, gameserver.ReasonShutdown, saved[0].Reason)
}

func TestFinishedSessionIsReclaimed(t *testing.T) {
	h := newHarness(t, 1, 4, 1, 20*time.Millisecond)
	defer h.stop(t)

	port, err := h.ctrl.FindSession()
	require.NoError(t, err)
	conn := h.listener.conn(port)
	conn.Deliver(protocol.Encode(protocol.Connect{UID: 1, Nickname: "alice"}), testutil.UDPAddr("10.0.0.1:5000"))

	// one player moves the session to HERO_PICK where idling counts
	testutil.Eventually(t, 2*time.Second, func() bool { return len(h.ctrl.Sessions()) == 0 }, "session reclaimed")
	assert.Equal(t, 1, h.ports.Available())

	saved := h.store.saved()
	require.Len(t, saved, 1)
	assert.Equal(t, gameserver.ReasonIdleTimeout, saved[0].Reason)

	again, err := h.ctrl.FindSession()
	require.NoError(t, err)
	assert.Equal(t, port, again, "port is reused")
}

func TestSeedsAreDeterministic(t *testing.T) {
	a := New(Config{SeedSource: 99}, NewPortPool(1, 1), nil, nil, nil)
	b := New(Config{SeedSource: 99}, NewPortPool(1, 1), nil, nil, nil)
	for range 5 {
		assert.Equal(t, a.seeds.Uint32(), b.seeds.Uint32())
	}
}
