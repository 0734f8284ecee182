package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gitmcp/server/internal/jsonrpc"
	"gitmcp/server/internal/mcp"
	"gitmcp/server/internal/middleware"
	"gitmcp/server/internal/modules"
	"gitmcp/server/internal/modules/github"
	"gitmcp/server/pkg/githubapi"
)

// echo replies with the method and params it received.
var echo = middleware.ProcessorFunc(func(ctx context.Context, req *jsonrpc.Request) (interface{}, *jsonrpc.Error) {
	if strings.HasPrefix(req.Method, "notifications/") {
		return nil, nil
	}
	return map[string]interface{}{
		"method":  req.Method,
		"params":  req.Params,
		"session": middleware.GetSessionID(ctx),
	}, nil
})

func newTestServer(t *testing.T, processor middleware.RequestProcessor) (*Bridge, *httptest.Server) {
	t.Helper()
	b := New(processor, NewRegistry(), zap.NewNop(), Options{Version: "test"})
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return b, srv
}

type sseEvent struct {
	name string
	data string
}

type stream struct {
	events chan sseEvent
	cancel context.CancelFunc
}

func openStream(t *testing.T, baseURL string) *stream {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/sse", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	require.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))

	st := &stream{events: make(chan sseEvent, 64), cancel: cancel}
	go func() {
		defer close(st.events)
		defer resp.Body.Close()
		reader := bufio.NewReader(resp.Body)
		var ev sseEvent
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimSuffix(line, "\n")
			switch {
			case line == "":
				st.events <- ev
				ev = sseEvent{}
			case strings.HasPrefix(line, "event: "):
				ev.name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				if ev.data != "" {
					ev.data += "\n"
				}
				ev.data += strings.TrimPrefix(line, "data: ")
			}
		}
	}()
	t.Cleanup(cancel)
	return st
}

func (s *stream) next(t *testing.T) sseEvent {
	t.Helper()
	select {
	case ev, ok := <-s.events:
		require.True(t, ok, "stream ended")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return sseEvent{}
}

func (s *stream) none(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case ev, ok := <-s.events:
		if ok {
			t.Fatalf("unexpected event %q: %s", ev.name, ev.data)
		}
	case <-time.After(wait):
	}
}

func (s *stream) endpoint(t *testing.T) string {
	t.Helper()
	ev := s.next(t)
	require.Equal(t, "endpoint", ev.name)
	return ev.data
}

func post(t *testing.T, url, body string) (int, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func decode(t *testing.T, b []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m), "body: %s", b)
	return m
}

func TestOpenStreamAnnouncesEndpoint(t *testing.T) {
	b, srv := newTestServer(t, echo)
	st := openStream(t, srv.URL)

	endpoint := st.endpoint(t)
	require.True(t, strings.HasPrefix(endpoint, "/messages?sessionId="), endpoint)
	id := strings.TrimPrefix(endpoint, "/messages?sessionId=")
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "session id should be a UUID")

	s, ok := b.Registry().Get(id)
	require.True(t, ok)
	assert.True(t, s.Connected())
}

func TestOpenStreamIgnoresClientSessionHint(t *testing.T) {
	b, srv := newTestServer(t, echo)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sse?sessionId=chosen-by-client", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: endpoint\n", line)
	_, ok := b.Registry().Get("chosen-by-client")
	assert.False(t, ok)
}

func TestOpenStreamRegistrationFailure(t *testing.T) {
	b, srv := newTestServer(t, echo)
	b.newID = func() string { return "fixed" }

	first := openStream(t, srv.URL)
	assert.Equal(t, "/messages?sessionId=fixed", first.endpoint(t))

	second := openStream(t, srv.URL)
	ev := second.next(t)
	assert.Equal(t, "error", ev.name)
	assert.Equal(t, "session registration failed", ev.data)

	// The stream ends and the original session is untouched.
	select {
	case _, ok := <-second.events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("stream still open after registration failure")
	}
	s, ok := b.Registry().Get("fixed")
	require.True(t, ok)
	assert.True(t, s.Connected())
}

// Scenario: a tool call by method name against a stubbed upstream.
func TestListRepositoriesOverStream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"repo-a","language":"Go"},{"name":"repo-b","language":"Rust"}]`))
	}))
	defer upstream.Close()

	client, err := githubapi.NewClient(upstream.URL, "token")
	require.NoError(t, err)
	reg := modules.NewRegistry(zap.NewNop())
	require.NoError(t, reg.Register(github.New(client)))
	handler := mcp.NewHandler(reg, mcp.ServerInfo{Name: "gitmcp", Version: "test"}, "en-US", nil)

	_, srv := newTestServer(t, handler)
	st := openStream(t, srv.URL)
	endpoint := st.endpoint(t)

	status, body := post(t, srv.URL+endpoint, `{"method":"list-repositories","params":{"owner":"octocat"}}`)
	require.Equal(t, http.StatusOK, status)

	resp := decode(t, body)
	assert.Equal(t, "2.0", resp["jsonrpc"])
	assert.EqualValues(t, 1, resp["id"])
	assert.Nil(t, resp["error"])

	result := resp["result"].(map[string]interface{})
	assert.Nil(t, result["isError"])
	text := result["content"].([]interface{})[0].(map[string]interface{})["text"].(string)
	assert.Contains(t, text, "repo-a")
	assert.Contains(t, text, "repo-b")

	ev := st.next(t)
	assert.Equal(t, "message", ev.name)
	assert.JSONEq(t, string(body), ev.data)
}

func TestPostMissingSessionID(t *testing.T) {
	_, srv := newTestServer(t, echo)
	for _, path := range []string{"/messages", "/messages?sessionId=", "/messages?other=1"} {
		status, body := post(t, srv.URL+path, `{"jsonrpc":"2.0","id":1,"method":"ping"}`)
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.JSONEq(t, `{"jsonrpc":"2.0","id":null,"error":{"code":-32600,"message":"session id required"}}`, string(body))
	}
}

func TestPostSessionIDInBodyIgnored(t *testing.T) {
	_, srv := newTestServer(t, echo)
	st := openStream(t, srv.URL)
	id := strings.TrimPrefix(st.endpoint(t), "/messages?sessionId=")

	status, _ := post(t, srv.URL+"/messages", fmt.Sprintf(`{"method":"ping","sessionId":%q}`, id))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPostInvalidBody(t *testing.T) {
	_, srv := newTestServer(t, echo)
	st := openStream(t, srv.URL)
	endpoint := st.endpoint(t)

	for _, body := range []string{``, `not json`, `[]`, `{"id":1}`, `{"method":7}`} {
		status, resp := post(t, srv.URL+endpoint, body)
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.JSONEq(t, `{"jsonrpc":"2.0","id":null,"error":{"code":-32600,"message":"invalid request"}}`, string(resp))
	}

	// Body validation comes before session lookup.
	status, _ := post(t, srv.URL+"/messages?sessionId=unknown", `nope`)
	assert.Equal(t, http.StatusBadRequest, status)
}

// Scenario: posting to a session id that was never issued.
func TestPostUnknownSession(t *testing.T) {
	_, srv := newTestServer(t, echo)
	status, body := post(t, srv.URL+"/messages?sessionId=does-not-exist", `{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"session not found"}}`, string(body))
}

// Scenario: the stream closes, then a message arrives for it.
func TestPostAfterStreamClosed(t *testing.T) {
	b, srv := newTestServer(t, echo)
	st := openStream(t, srv.URL)
	endpoint := st.endpoint(t)
	require.Equal(t, 1, b.Registry().Len())

	st.cancel()
	require.Eventually(t, func() bool { return b.Registry().Len() == 0 }, 5*time.Second, 10*time.Millisecond)

	status, body := post(t, srv.URL+endpoint, `{"method":"ping"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, float64(jsonrpc.ErrSessionNotFound), decode(t, body)["error"].(map[string]interface{})["code"])
}

func TestPostSessionNotConnected(t *testing.T) {
	b, srv := newTestServer(t, echo)

	opening := newSession("opening", httptest.NewRecorder(), echo, zap.NewNop(), 1)
	require.NoError(t, b.Registry().Add(opening))
	closed := newSession("closed", httptest.NewRecorder(), echo, zap.NewNop(), 1)
	closed.close()
	require.NoError(t, b.Registry().Add(closed))

	for _, id := range []string{"opening", "closed"} {
		status, body := post(t, srv.URL+"/messages?sessionId="+id, `{"id":"x","method":"ping"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, `{"jsonrpc":"2.0","id":"x","error":{"code":-32001,"message":"connection closed"}}`, string(body))
	}
}

func TestSessionIDFrom(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"/messages?sessionId=abc123", "abc123"},
		{"/messages?sessionId=abc123?extra=1", "abc123"},
		{"/messages?sessionId=abc123&extra=1", "abc123"},
		{"/messages?sessionId=abc123%26x", "abc123"},
		{"/messages?sessionId=abc123%23frag", "abc123"},
		{"/messages?sessionId=first&sessionId=second", "first"},
		{"/messages?sessionid=abc123", ""},
		{"/messages", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodPost, tt.target, nil)
		assert.Equal(t, tt.want, sessionIDFrom(r), tt.target)
	}
}

func TestPostWithTrailingQueryNoise(t *testing.T) {
	_, srv := newTestServer(t, echo)
	st := openStream(t, srv.URL)
	endpoint := st.endpoint(t)

	status, _ := post(t, srv.URL+endpoint+"?extra=1", `{"method":"ping"}`)
	assert.Equal(t, http.StatusOK, status)
}

func TestPostNormalizesRequest(t *testing.T) {
	_, srv := newTestServer(t, echo)
	st := openStream(t, srv.URL)
	endpoint := st.endpoint(t)

	_, first := post(t, srv.URL+endpoint, `{"method":"tools/list"}`)
	_, second := post(t, srv.URL+endpoint, `{"method":"tools/list"}`)
	_, explicit := post(t, srv.URL+endpoint, `{"jsonrpc":"2.0","id":"keep","method":"tools/list","params":{"a":1}}`)

	r1, r2, r3 := decode(t, first), decode(t, second), decode(t, explicit)
	assert.EqualValues(t, 1, r1["id"])
	assert.EqualValues(t, 2, r2["id"])
	assert.Equal(t, "keep", r3["id"])
	assert.Equal(t, "2.0", r1["jsonrpc"])

	res := r1["result"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{}, res["params"], "missing params default to {}")
	assert.Equal(t, strings.TrimPrefix(endpoint, "/messages?sessionId="), res["session"])
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, r3["result"].(map[string]interface{})["params"])
}

func TestPostNotificationAccepted(t *testing.T) {
	_, srv := newTestServer(t, echo)
	st := openStream(t, srv.URL)
	endpoint := st.endpoint(t)

	status, body := post(t, srv.URL+endpoint, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	assert.Equal(t, http.StatusAccepted, status)
	assert.Empty(t, body)
	st.none(t, 100*time.Millisecond)
}

func TestPostRPCError(t *testing.T) {
	failing := middleware.ProcessorFunc(func(ctx context.Context, req *jsonrpc.Request) (interface{}, *jsonrpc.Error) {
		return nil, jsonrpc.NewError(jsonrpc.MethodNotFound, "Method not found: "+req.Method)
	})
	_, srv := newTestServer(t, failing)
	st := openStream(t, srv.URL)

	status, body := post(t, srv.URL+st.endpoint(t), `{"id":9,"method":"nope"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":9,"error":{"code":-32601,"message":"Method not found: nope"}}`, string(body))
	assert.JSONEq(t, string(body), st.next(t).data)
}

func TestPostProcessorPanic(t *testing.T) {
	panicking := middleware.ProcessorFunc(func(ctx context.Context, req *jsonrpc.Request) (interface{}, *jsonrpc.Error) {
		panic("tool exploded")
	})
	b, srv := newTestServer(t, panicking)
	st := openStream(t, srv.URL)
	endpoint := st.endpoint(t)

	tests := []struct {
		body string
		want string
	}{
		{`{"method":"boom"}`, `{"jsonrpc":"2.0","id":1,"error":{"code":-32603,"message":"internal error"}}`},
		{`{"id":7,"method":"boom"}`, `{"jsonrpc":"2.0","id":7,"error":{"code":-32603,"message":"internal error"}}`},
		{`{"id":"req-9","method":"boom"}`, `{"jsonrpc":"2.0","id":"req-9","error":{"code":-32603,"message":"internal error"}}`},
	}
	for _, tt := range tests {
		status, body := post(t, srv.URL+endpoint, tt.body)
		assert.Equal(t, http.StatusInternalServerError, status, tt.body)
		assert.JSONEq(t, tt.want, string(body))

		ev := st.next(t)
		assert.Equal(t, "message", ev.name)
		assert.JSONEq(t, tt.want, ev.data)
	}

	// The session survives.
	assert.Equal(t, 1, b.Registry().Len())
}

// Scenario: concurrent sessions are isolated from each other.
func TestSessionsAreIsolated(t *testing.T) {
	_, srv := newTestServer(t, echo)
	a := openStream(t, srv.URL)
	bStream := openStream(t, srv.URL)
	endpointA := a.endpoint(t)
	endpointB := bStream.endpoint(t)
	require.NotEqual(t, endpointA, endpointB)

	var wg sync.WaitGroup
	for _, target := range []struct {
		endpoint string
		id       string
	}{{endpointA, "a1"}, {endpointB, "b1"}} {
		wg.Add(1)
		go func(endpoint, id string) {
			defer wg.Done()
			status, _ := post(t, srv.URL+endpoint, fmt.Sprintf(`{"id":%q,"method":"tools/list"}`, id))
			assert.Equal(t, http.StatusOK, status)
		}(target.endpoint, target.id)
	}
	wg.Wait()

	assert.Equal(t, "a1", decode(t, []byte(a.next(t).data))["id"])
	assert.Equal(t, "b1", decode(t, []byte(bStream.next(t).data))["id"])
	a.none(t, 100*time.Millisecond)
	bStream.none(t, 10*time.Millisecond)
}

func TestSessionIDsUnique(t *testing.T) {
	b, srv := newTestServer(t, echo)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		endpoint := openStream(t, srv.URL).endpoint(t)
		require.False(t, seen[endpoint], "duplicate endpoint %s", endpoint)
		seen[endpoint] = true
	}
	assert.Len(t, b.Registry().IDs(), 20)
}

func TestMessagesDeliveredInOrder(t *testing.T) {
	_, srv := newTestServer(t, echo)
	st := openStream(t, srv.URL)
	endpoint := st.endpoint(t)

	for i := 0; i < 10; i++ {
		status, _ := post(t, srv.URL+endpoint, fmt.Sprintf(`{"id":%d,"method":"ping"}`, i))
		require.Equal(t, http.StatusOK, status)
	}
	for i := 0; i < 10; i++ {
		assert.EqualValues(t, i, decode(t, []byte(st.next(t).data))["id"])
	}
}

func TestConcurrentPosts(t *testing.T) {
	_, srv := newTestServer(t, echo)
	st := openStream(t, srv.URL)
	endpoint := st.endpoint(t)

	const n = 30
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status, _ := post(t, srv.URL+endpoint, fmt.Sprintf(`{"id":%d,"method":"ping"}`, i))
			assert.Equal(t, http.StatusOK, status)
		}(i)
	}
	wg.Wait()

	got := map[float64]bool{}
	for i := 0; i < n; i++ {
		got[decode(t, []byte(st.next(t).data))["id"].(float64)] = true
	}
	assert.Len(t, got, n)
}

func TestHealth(t *testing.T) {
	_, srv := newTestServer(t, echo)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.JSONEq(t, `{"status":"ok","server":"gitmcp","version":"test","sessions":0}`, string(body))

	openStream(t, srv.URL).endpoint(t)
	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.EqualValues(t, 1, decode(t, body)["sessions"])
}

func TestMetricsEndpoint(t *testing.T) {
	_, srv := newTestServer(t, echo)
	openStream(t, srv.URL).endpoint(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "gitmcp_sessions_active")
}

type nonFlusher struct {
	header http.Header
	code   int
	body   bytes.Buffer
}

func (w *nonFlusher) Header() http.Header         { return w.header }
func (w *nonFlusher) Write(b []byte) (int, error) { return w.body.Write(b) }
func (w *nonFlusher) WriteHeader(code int)        { w.code = code }

func TestStreamRequiresFlusher(t *testing.T) {
	b := New(echo, NewRegistry(), zap.NewNop(), Options{})
	w := &nonFlusher{header: http.Header{}}
	b.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sse", nil))

	assert.Equal(t, http.StatusInternalServerError, w.code)
	assert.NotContains(t, w.header.Get("Content-Type"), "text/event-stream")
	assert.Zero(t, b.Registry().Len())
}

// =============================================================================
// Port fallback
// =============================================================================

func addrInUse() error {
	return &net.OpError{Op: "listen", Net: "tcp", Err: &os.SyscallError{Syscall: "bind", Err: syscall.EADDRINUSE}}
}

func fakeListen(t *testing.T, busy map[string]bool, attempts *[]string) func(string, string) (net.Listener, error) {
	return func(network, address string) (net.Listener, error) {
		*attempts = append(*attempts, address)
		if busy[address] {
			return nil, addrInUse()
		}
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		t.Cleanup(func() { ln.Close() })
		return ln, nil
	}
}

// Scenario: the configured port is taken, so the next free one is used.
func TestListenFallsBackToNextPort(t *testing.T) {
	var attempts []string
	b := New(echo, nil, zap.NewNop(), Options{Host: "127.0.0.1", Port: 4000})
	b.listenFn = fakeListen(t, map[string]bool{"127.0.0.1:4000": true, "127.0.0.1:4001": true}, &attempts)

	ln, err := b.Listen()
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1:4000", "127.0.0.1:4001", "127.0.0.1:4002"}, attempts)
	assert.Equal(t, ln.Addr(), b.Addr())

	again, err := b.Listen()
	require.NoError(t, err)
	assert.Same(t, ln, again)
	assert.Len(t, attempts, 3)
}

func TestListenGivesUpAfterMaxAttempts(t *testing.T) {
	var attempts []string
	busy := map[string]bool{}
	for p := 5000; p < 5010; p++ {
		busy[fmt.Sprintf("127.0.0.1:%d", p)] = true
	}
	b := New(echo, nil, zap.NewNop(), Options{Host: "127.0.0.1", Port: 5000, MaxPortAttempts: 3})
	b.listenFn = fakeListen(t, busy, &attempts)

	_, err := b.Listen()
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EADDRINUSE)
	assert.Contains(t, err.Error(), "no free port in 5000..5002")
	assert.Len(t, attempts, 3)
	assert.Nil(t, b.Addr())
}

func TestListenOtherErrorIsFatal(t *testing.T) {
	attempts := 0
	b := New(echo, nil, zap.NewNop(), Options{Host: "127.0.0.1", Port: 80})
	b.listenFn = func(network, address string) (net.Listener, error) {
		attempts++
		return nil, &net.OpError{Op: "listen", Net: "tcp", Err: &os.SyscallError{Syscall: "bind", Err: syscall.EACCES}}
	}

	_, err := b.Listen()
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EACCES)
	assert.Equal(t, 1, attempts)
}

func TestListenRealPortInUse(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()
	port := occupied.Addr().(*net.TCPAddr).Port
	if port+DefaultMaxPortAttempts > 65535 {
		t.Skip("ephemeral port too close to the top of the range")
	}

	b := New(echo, nil, zap.NewNop(), Options{Host: "127.0.0.1", Port: port})
	ln, err := b.Listen()
	require.NoError(t, err)
	defer ln.Close()

	bound := ln.Addr().(*net.TCPAddr).Port
	assert.Greater(t, bound, port)
	assert.Less(t, bound, port+DefaultMaxPortAttempts)
}

func TestServeStopsOnCancel(t *testing.T) {
	b := New(echo, nil, zap.NewNop(), Options{Host: "127.0.0.1", Port: 0})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- b.Serve(ctx) }()
	require.Eventually(t, func() bool { return b.Addr() != nil }, 5*time.Second, 10*time.Millisecond)

	st := openStream(t, "http://"+b.Addr().String())
	st.endpoint(t)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	// Open streams are dropped, not drained.
	select {
	case _, ok := <-st.events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("stream still open after shutdown")
	}
	require.Eventually(t, func() bool { return b.Registry().Len() == 0 }, 5*time.Second, 10*time.Millisecond)
}
