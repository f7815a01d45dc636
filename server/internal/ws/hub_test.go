package ws_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bpcalc/bpcalc/pkg/bp"
	"github.com/bpcalc/bpcalc/server/internal/config"
	"github.com/bpcalc/bpcalc/server/internal/telemetry"
	wsHub "github.com/bpcalc/bpcalc/server/internal/ws"
)

const testInterval = 20 * time.Millisecond

// --- helpers ----------------------------------------------------------------

func newTracker(readings ...bp.Reading) *telemetry.Tracker {
	tr := telemetry.New(config.TelemetryConfig{Enabled: true})
	for _, r := range readings {
		tr.Track(telemetry.NewEvent(r, true))
	}
	return tr
}

// startHub starts a test HTTP server with the hub as its handler and runs
// the hub loop with a cancellable context.
func startHub(t *testing.T, src wsHub.SummarySource) (wsURL string, hub *wsHub.Hub, cancel func()) {
	t.Helper()

	hub = wsHub.New(src, testInterval)
	ctx, cancelFn := context.WithCancel(context.Background())

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	go hub.Run(ctx)

	t.Cleanup(func() {
		cancelFn()
		srv.Close()
	})

	wsURL = "ws" + strings.TrimPrefix(srv.URL, "http")
	return wsURL, hub, cancelFn
}

func dial(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) wsHub.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var m wsHub.Message
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v (%s)", err, raw)
	}
	return m
}

// --- tests ------------------------------------------------------------------

func TestHub_Connect_ReceivesImmediateSummary(t *testing.T) {
	src := newTracker(bp.Reading{Systolic: 150, Diastolic: 95}, bp.Reading{Systolic: 110, Diastolic: 70})
	wsURL, _, _ := startHub(t, src)

	m := readMessage(t, dial(t, wsURL))
	if m.Event != "summary" {
		t.Errorf("event: got %q, want summary", m.Event)
	}
	if m.Data.Assessed != 2 {
		t.Errorf("assessed: got %d, want 2", m.Data.Assessed)
	}
	if m.Data.Categories["High"] != 1 || m.Data.Categories["Ideal"] != 1 {
		t.Errorf("categories: got %v", m.Data.Categories)
	}
	if m.Data.GeneratedAt == "" {
		t.Error("generated_at: missing")
	}
}

func TestHub_ReceivesBroadcastOnTick(t *testing.T) {
	src := newTracker()
	wsURL, _, _ := startHub(t, src)

	conn := dial(t, wsURL)
	if m := readMessage(t, conn); m.Data.Assessed != 0 {
		t.Fatalf("initial assessed: got %d, want 0", m.Data.Assessed)
	}

	src.Track(telemetry.NewEvent(bp.Reading{Systolic: 135, Diastolic: 85}, true))

	// Ticks may land before the Track call; keep reading until it shows up.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		m := readMessage(t, conn)
		if m.Data.Assessed == 1 {
			if m.Data.Categories["PreHigh"] != 1 || m.Data.Bands["High"] != 1 {
				t.Errorf("tick summary: got %+v", m.Data)
			}
			return
		}
	}
	t.Fatal("no broadcast reflected the new reading")
}

func TestHub_CountClients(t *testing.T) {
	wsURL, hub, _ := startHub(t, newTracker())

	for i := 0; i < 3; i++ {
		readMessage(t, dial(t, wsURL))
	}

	time.Sleep(10 * time.Millisecond)
	if n := hub.Count(); n != 3 {
		t.Errorf("Count: got %d, want 3", n)
	}
}

func TestHub_CountClients_DecreasesOnDisconnect(t *testing.T) {
	wsURL, hub, _ := startHub(t, newTracker())

	conn := dial(t, wsURL)
	readMessage(t, conn)
	time.Sleep(10 * time.Millisecond)

	if n := hub.Count(); n != 1 {
		t.Errorf("Count before disconnect: got %d, want 1", n)
	}

	conn.Close()
	time.Sleep(50 * time.Millisecond)

	if n := hub.Count(); n != 0 {
		t.Errorf("Count after disconnect: got %d, want 0", n)
	}
}

func TestHub_CancelContextClosesConnections(t *testing.T) {
	wsURL, hub, cancel := startHub(t, newTracker())

	conn := dial(t, wsURL)
	readMessage(t, conn)
	time.Sleep(10 * time.Millisecond)

	cancel()

	time.Sleep(50 * time.Millisecond)
	if n := hub.Count(); n != 0 {
		t.Errorf("Count after cancel: got %d, want 0", n)
	}
}

func TestHub_NonWebSocketRequest_Returns400(t *testing.T) {
	hub := wsHub.New(newTracker(), testInterval)
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
}
