package websocket

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

func quietHub() *Hub {
	hub := NewHub()
	hub.SetLogger(log.New(io.Discard))
	return hub
}

func testFrame(number int) t2048.Frame {
	return t2048.Frame{
		Number:   number,
		Rows:     4,
		Cols:     4,
		CellSize: 200,
		Tiles: []t2048.TileView{
			{Value: 2, Row: 0, Col: 1, X: 180, Y: 0},
		},
	}
}

func TestHubRegisterReplaysLastFrame(t *testing.T) {
	hub := quietHub()
	hub.last = []byte(`{"event":"frame"}`)

	client := &Client{hub: hub, send: make(chan []byte, sendBuffer)}
	hub.registerClient(client)

	if hub.Clients() != 1 {
		t.Errorf("Clients() = %d, want 1", hub.Clients())
	}
	select {
	case got := <-client.send:
		if string(got) != `{"event":"frame"}` {
			t.Errorf("replayed %s", got)
		}
	default:
		t.Error("new client should receive the last frame")
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := quietHub()
	client := &Client{hub: hub, send: make(chan []byte, sendBuffer)}

	hub.registerClient(client)
	hub.unregisterClient(client)
	hub.unregisterClient(client)

	if hub.Clients() != 0 {
		t.Errorf("Clients() = %d, want 0", hub.Clients())
	}
	if _, ok := <-client.send; ok {
		t.Error("send channel should be closed")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := quietHub()
	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.registerClient(client)

	hub.deliver(client, []byte("a"))
	hub.deliver(client, []byte("b"))

	if hub.Clients() != 0 {
		t.Errorf("Clients() = %d, want slow client dropped", hub.Clients())
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := quietHub()

	for i := range sendBuffer + 10 {
		hub.Publish(testFrame(i))
	}

	if hub.Dropped() != 10 {
		t.Errorf("Dropped() = %d, want 10", hub.Dropped())
	}
}

func TestHubStreamsFrames(t *testing.T) {
	hub := quietHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	server := httptest.NewServer(hub)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for hub.Clients() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client was never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Publish(testFrame(3))
	hub.PublishResult(t2048.Result{
		Direction: t2048.DirLeft,
		Outcome:   t2048.OutcomeContinue,
		Frames:    10,
		Merges:    1,
		Changed:   true,
	}, 4)

	//nolint:errcheck // Test deadline
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var frameMsg Message
	if err := conn.ReadJSON(&frameMsg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if frameMsg.Event != EventFrame || frameMsg.Frame == nil {
		t.Fatalf("got %+v, want a frame", frameMsg)
	}
	if frameMsg.Frame.Number != 3 || len(frameMsg.Frame.Tiles) != 1 {
		t.Errorf("frame = %+v", frameMsg.Frame)
	}
	if tile := frameMsg.Frame.Tiles[0]; tile.X != 180 || tile.Value != 2 {
		t.Errorf("tile = %+v, want value 2 at x=180", tile)
	}

	var resultMsg Message
	if err := conn.ReadJSON(&resultMsg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if resultMsg.Event != EventResult || resultMsg.Result == nil {
		t.Fatalf("got %+v, want a result", resultMsg)
	}
	if resultMsg.Result.Merges != 1 || resultMsg.Result.MaxTile != 4 || !resultMsg.Result.Changed {
		t.Errorf("result = %+v", resultMsg.Result)
	}
}

func TestMessageJSON(t *testing.T) {
	f := testFrame(1)
	data, err := json.Marshal(Message{Event: EventFrame, Frame: &f})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(data)
	for _, want := range []string{`"event":"frame"`, `"cell_size":200`, `"x":180`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s missing %s", s, want)
		}
	}
	if strings.Contains(s, `"result"`) {
		t.Errorf("JSON %s should omit an empty result", s)
	}
}
