package graphql

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fd1az/minaview/internal/logger"
	"github.com/fd1az/minaview/internal/wsconn"
)

// BlockEvent is one new-block notification.
type BlockEvent struct {
	StateHash string
	Height    uint64
}

// graphql-transport-ws frames.
type wsFrame struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type newBlockPayload struct {
	Data struct {
		NewBlock struct {
			StateHash     string `json:"stateHash"`
			ProtocolState struct {
				ConsensusState struct {
					BlockHeight uint64 `json:"blockHeight"`
				} `json:"consensusState"`
			} `json:"protocolState"`
		} `json:"newBlock"`
	} `json:"data"`
}

// BlockFeed streams new-block events. The primary source is a
// graphql-transport-ws subscription against the daemon; when the socket
// cannot be established the feed degrades to polling the archive's best
// height. Subscription replay after a reconnect is handled by the wsconn
// reconnect hook.
type BlockFeed struct {
	archive      *ArchiveClient
	log          logger.LoggerInterface
	pollInterval time.Duration

	events chan BlockEvent

	mu     sync.Mutex
	ws     *wsconn.Client
	cancel context.CancelFunc
}

// NewBlockFeed builds a feed polling at pollInterval when the socket is down.
func NewBlockFeed(archive *ArchiveClient, pollInterval time.Duration, log logger.LoggerInterface) *BlockFeed {
	return &BlockFeed{
		archive:      archive,
		log:          log,
		pollInterval: pollInterval,
		events:       make(chan BlockEvent, 16),
	}
}

// Events is the stream of new-block notifications. Slow consumers drop
// events rather than stalling the feed.
func (f *BlockFeed) Events() <-chan BlockEvent {
	return f.events
}

// Start begins streaming from daemonURL until ctx is cancelled or Close is
// called. It returns immediately; connection setup runs in the background.
func (f *BlockFeed) Start(ctx context.Context, daemonURL string) error {
	wsURL, err := websocketURL(daemonURL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)

	cfg := wsconn.DefaultConfig(wsURL, "block-feed")
	cfg.Subprotocols = []string{"graphql-transport-ws"}

	ws, err := wsconn.New(cfg)
	if err != nil {
		cancel()
		return err
	}

	ws.OnMessage(func(msgCtx context.Context, data []byte) {
		f.handleFrame(msgCtx, ws, data)
	})
	ws.OnReconnect(func() {
		// The server forgets subscriptions with the old socket.
		f.handshake(ctx, ws)
	})

	f.mu.Lock()
	f.ws = ws
	f.cancel = cancel
	f.mu.Unlock()

	go func() {
		if err := ws.ConnectWithRetry(ctx); err != nil {
			f.log.Warn(ctx, "block feed socket unavailable, polling instead", "error", err)
			f.poll(ctx)
			return
		}
		f.handshake(ctx, ws)
	}()
	return nil
}

// Close shuts the feed down.
func (f *BlockFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
	}
	if f.ws != nil {
		_ = f.ws.Close()
	}
}

// handshake performs connection_init; the subscribe frame follows on ack.
func (f *BlockFeed) handshake(ctx context.Context, ws *wsconn.Client) {
	if err := ws.SendJSON(ctx, wsFrame{Type: "connection_init"}); err != nil {
		f.log.Warn(ctx, "block feed handshake failed", "error", err)
	}
}

func (f *BlockFeed) handleFrame(ctx context.Context, ws *wsconn.Client, data []byte) {
	var frame wsFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return
	}

	switch frame.Type {
	case "connection_ack":
		payload, _ := json.Marshal(map[string]string{"query": subscriptionNewBlock})
		if err := ws.SendJSON(ctx, wsFrame{ID: "1", Type: "subscribe", Payload: payload}); err != nil {
			f.log.Warn(ctx, "block feed subscribe failed", "error", err)
		}
	case "next":
		var payload newBlockPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			return
		}
		f.emit(BlockEvent{
			StateHash: payload.Data.NewBlock.StateHash,
			Height:    payload.Data.NewBlock.ProtocolState.ConsensusState.BlockHeight,
		})
	case "error":
		f.log.Warn(ctx, "block feed subscription error", "payload", string(frame.Payload))
	case "ping":
		_ = ws.SendJSON(ctx, wsFrame{Type: "pong"})
	}
}

// poll watches the archive best height as the degraded source.
func (f *BlockFeed) poll(ctx context.Context) {
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	var lastHeight uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			height, err := f.archive.BestHeight(ctx)
			if err != nil {
				f.log.Debug(ctx, "block feed poll failed", "error", err)
				continue
			}
			if height > lastHeight {
				lastHeight = height
				f.emit(BlockEvent{Height: height})
			}
		}
	}
}

func (f *BlockFeed) emit(ev BlockEvent) {
	select {
	case f.events <- ev:
	default:
	}
}

// websocketURL converts a daemon HTTP endpoint to its ws equivalent.
func websocketURL(httpURL string) (string, error) {
	u, err := url.Parse(httpURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	case "ws", "wss":
		// already websocket
	default:
		u.Scheme = strings.Replace(u.Scheme, "http", "ws", 1)
	}
	return u.String(), nil
}
