package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/models"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/services"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/utils"
)

// FeedHandler serves live collection views over websocket. Each subscription
// delivers the full current result set immediately, then re-delivers the full
// set whenever the backing collection changes (snapshot semantics, no deltas).
type FeedHandler struct {
	jobs     services.JobService
	apps     services.ApplicationService
	walkins  services.WalkInService
	redis    *redis.Client
	logger   *logrus.Logger
	upgrader websocket.Upgrader
}

func NewFeedHandler(
	jobs services.JobService,
	apps services.ApplicationService,
	walkins services.WalkInService,
	rdb *redis.Client,
	l *logrus.Logger,
) *FeedHandler {
	return &FeedHandler{
		jobs:    jobs,
		apps:    apps,
		walkins: walkins,
		redis:   rdb,
		logger:  l,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type feedClientMsg struct {
	Type string `json:"type"` // subscribe|unsubscribe
	Feed string `json:"feed"`
}

type feedSnapshotMsg struct {
	Type string `json:"type"` // snapshot
	Feed string `json:"feed"`
	Data any    `json:"data"`
}

type feedDef struct {
	channel  string
	role     models.Role // empty = any authenticated user
	snapshot func(ctx context.Context, userID string) (any, error)
}

func (h *FeedHandler) feeds() map[string]feedDef {
	return map[string]feedDef{
		"open_jobs": {
			channel: "feed:jobs",
			snapshot: func(ctx context.Context, _ string) (any, error) {
				return h.jobs.ListOpen(ctx)
			},
		},
		"recruiter_jobs": {
			channel: "feed:jobs",
			role:    models.RoleRecruiter,
			snapshot: func(ctx context.Context, userID string) (any, error) {
				return h.jobs.ListForRecruiter(ctx, userID)
			},
		},
		"my_applications": {
			channel: "feed:applications",
			role:    models.RoleCandidate,
			snapshot: func(ctx context.Context, userID string) (any, error) {
				return h.apps.ListForCandidate(ctx, userID)
			},
		},
		"recruiter_applications": {
			channel: "feed:applications",
			role:    models.RoleRecruiter,
			snapshot: func(ctx context.Context, userID string) (any, error) {
				return h.apps.ListForRecruiter(ctx, userID)
			},
		},
		"open_drives": {
			channel: "feed:walk-ins",
			snapshot: func(ctx context.Context, _ string) (any, error) {
				return h.walkins.ListOpenDrives(ctx)
			},
		},
		"recruiter_drives": {
			channel: "feed:walk-ins",
			role:    models.RoleRecruiter,
			snapshot: func(ctx context.Context, userID string) (any, error) {
				return h.walkins.ListDrivesForRecruiter(ctx, userID)
			},
		},
		"my_attendance": {
			channel: "feed:walk-in-attendees",
			role:    models.RoleCandidate,
			snapshot: func(ctx context.Context, userID string) (any, error) {
				return h.walkins.ListAttendanceForCandidate(ctx, userID)
			},
		},
	}
}

type feedConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *feedConn) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (h *FeedHandler) FeedWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	roleVal, _ := c.Get("role")
	role, _ := roleVal.(string)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &feedConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	var (
		streamMu     sync.Mutex
		cancelStream context.CancelFunc
	)
	stopStream := func() {
		streamMu.Lock()
		if cancelStream != nil {
			cancelStream()
			cancelStream = nil
		}
		streamMu.Unlock()
	}
	defer stopStream()

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg feedClientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = wc.writeJSON(APIError{Code: utils.CodeInvalidArgument, Message: "invalid json"})
			continue
		}

		switch msg.Type {
		case "subscribe":
			def, ok := h.feeds()[msg.Feed]
			if !ok {
				_ = wc.writeJSON(APIError{Code: utils.CodeInvalidArgument, Message: "unknown feed"})
				continue
			}
			if def.role != "" && string(def.role) != role {
				_ = wc.writeJSON(APIError{Code: utils.CodeForbidden, Message: "feed not allowed for role"})
				continue
			}

			// one active feed per connection; a new subscribe replaces it
			stopStream()
			streamCtx, sc := context.WithCancel(ctx)
			streamMu.Lock()
			cancelStream = sc
			streamMu.Unlock()
			go h.stream(streamCtx, wc, msg.Feed, def, userID)

		case "unsubscribe":
			stopStream()

		default:
			_ = wc.writeJSON(APIError{Code: utils.CodeInvalidArgument, Message: "unknown message type"})
		}
	}
}

// stream pushes the current snapshot, then re-queries on every change ping.
// The redis subscription is re-established with backoff on transient failure.
func (h *FeedHandler) stream(ctx context.Context, wc *feedConn, name string, def feedDef, userID string) {
	push := func() bool {
		data, err := def.snapshot(ctx, userID)
		if err != nil {
			h.logger.WithError(err).WithField("feed", name).Warn("feed snapshot failed")
			_ = wc.writeJSON(APIError{Code: utils.CodeUnavailable, Message: "snapshot failed"})
			return true
		}
		return wc.writeJSON(feedSnapshotMsg{Type: "snapshot", Feed: name, Data: data}) == nil
	}

	if !push() {
		return
	}

	for {
		if ctx.Err() != nil {
			return
		}

		pubsub := h.redis.Subscribe(ctx, def.channel)
		for {
			m, err := pubsub.ReceiveMessage(ctx)
			if err != nil {
				break
			}
			_ = m
			if !push() {
				pubsub.Close()
				return
			}
		}
		pubsub.Close()

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}
