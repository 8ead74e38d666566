package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/hirestage/hirestage/internal/services"
	"github.com/hirestage/hirestage/internal/utils"
)

// WSHandler streams interview room events (answer acks, evaluation
// progress, summary chunks) to the browser over a websocket.
type WSHandler struct {
	interviews services.InterviewService
	rooms      services.RoomService
	redis      *redis.Client
	upgrader   websocket.Upgrader
}

func NewWSHandler(interviews services.InterviewService, rooms services.RoomService, rdb *redis.Client) *WSHandler {
	return &WSHandler{
		interviews: interviews,
		rooms:      rooms,
		redis:      rdb,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type   string `json:"type"`
	Answer string `json:"answer"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (w *wsConn) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.writeText(b)
}

func (h *WSHandler) RoomWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	interviewID := c.Param("interview_id")
	if interviewID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WSHandler.RoomWS", "missing interview_id", nil))
		return
	}

	iv, err := h.interviews.Get(c.Request.Context(), interviewID)
	if err != nil {
		writeError(c, err)
		return
	}
	if iv.CandidateID != userID && !isAdmin(c) {
		writeError(c, utils.E(utils.CodeForbidden, "WSHandler.RoomWS", "forbidden", nil))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pubsub := h.redis.Subscribe(ctx, services.InterviewEventsChannel(interviewID))
	defer pubsub.Close()

	// reader: WS -> question loop
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
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

			var msg wsClientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"invalid json"}`))
				continue
			}

			switch msg.Type {
			case "answer":
				res, aerr := h.rooms.SubmitAnswer(ctx, interviewID, msg.Answer)
				if aerr != nil {
					var ae *utils.AppError
					code := utils.CodeInternal
					message := "failed to record answer"
					if errors.As(aerr, &ae) {
						code = ae.Code
						message = ae.Message
					}
					_ = wc.writeJSON(map[string]any{
						"type":    "error",
						"code":    code,
						"message": message,
					})
					continue
				}
				_ = wc.writeJSON(map[string]any{
					"type":             "answer_recorded",
					"completed":        res.Completed,
					"current_question": res.Question,
					"question_index":   res.QuestionIndex,
					"total_questions":  res.TotalQuestions,
				})

			case "ping":
				_ = wc.writeText([]byte(`{"type":"pong"}`))

			default:
				_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"unknown message type"}`))
			}
		}
	}()

	// writer: Redis Pub/Sub -> WS
	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		default:
			m, err := pubsub.ReceiveMessage(ctx)
			if err != nil {
				return
			}
			// forward as-is (payload expected JSON string)
			if werr := wc.writeText([]byte(m.Payload)); werr != nil {
				return
			}
		}
	}
}
