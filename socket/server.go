package socket

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	socketio "github.com/googollee/go-socket.io"
	"go.uber.org/zap"

	"cupidwave/middleware"
	"cupidwave/models"
)

const (
	namespace   = "/"
	joinTimeout = 5 * time.Second
)

// TokenValidator is implemented by *middleware.Authenticator.
type TokenValidator interface {
	ValidateToken(tokenString string) (middleware.User, error)
}

// Membership is implemented by the conversation store.
type Membership interface {
	GetParticipant(ctx context.Context, userID, conversationID string) (*models.Participant, error)
}

var errNotParticipant = errors.New("not a participant of this conversation")

// Hub is the Socket.IO server. Every conversation is a room; every user also
// has a personal room, UserRoom(id).
type Hub struct {
	server  *socketio.Server
	auth    TokenValidator
	members Membership
	log     *zap.SugaredLogger
}

// UserRoom is the personal room of userID.
func UserRoom(userID string) string {
	return "user:" + userID
}

// NewSocketServer initializes the Socket.IO server and its handlers
func NewSocketServer(auth TokenValidator, members Membership, log *zap.SugaredLogger) *Hub {
	h := &Hub{
		server:  socketio.NewServer(nil),
		auth:    auth,
		members: members,
		log:     log,
	}

	h.server.OnConnect(namespace, func(c socketio.Conn) error {
		user, err := h.authenticate(c.URL(), c.RemoteHeader())
		if err != nil {
			h.log.Debugw("socket rejected", "socketId", c.ID(), "error", err)
			return err
		}
		c.SetContext(user)
		c.Join(UserRoom(user.ID))
		h.log.Debugw("socket connected", "socketId", c.ID(), "userId", user.ID)
		return nil
	})

	h.server.OnEvent(namespace, "join", func(c socketio.Conn, conversationID string) {
		user, ok := c.Context().(middleware.User)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), joinTimeout)
		defer cancel()
		if err := h.canJoin(ctx, user.ID, conversationID); err != nil {
			h.log.Infow("socket join refused", "userId", user.ID, "conversationId", conversationID, "error", err)
			c.Emit("joinError", map[string]string{"conversationId": conversationID, "message": "Conversation not found"})
			return
		}
		c.Join(conversationID)
		c.Emit("joined", map[string]string{"conversationId": conversationID})
	})

	h.server.OnEvent(namespace, "leave", func(c socketio.Conn, conversationID string) {
		c.Leave(conversationID)
	})

	h.server.OnError(namespace, func(c socketio.Conn, err error) {
		h.log.Debugw("socket error", "error", err)
	})

	h.server.OnDisconnect(namespace, func(c socketio.Conn, reason string) {
		h.log.Debugw("socket disconnected", "socketId", c.ID(), "reason", reason)
	})

	return h
}

// authenticate reads the token from ?token= or from the Authorization header.
func (h *Hub) authenticate(u url.URL, header http.Header) (middleware.User, error) {
	token := u.Query().Get("token")
	if token == "" {
		token, _ = strings.CutPrefix(header.Get("Authorization"), "Bearer ")
	}
	if token == "" {
		return middleware.User{}, errors.New("missing token")
	}
	return h.auth.ValidateToken(token)
}

func (h *Hub) canJoin(ctx context.Context, userID, conversationID string) error {
	if conversationID == "" {
		return errNotParticipant
	}
	p, err := h.members.GetParticipant(ctx, userID, conversationID)
	if err != nil {
		return err
	}
	if p == nil {
		return errNotParticipant
	}
	return nil
}

// Publish emits event to everyone in room.
func (h *Hub) Publish(room, event string, payload interface{}) {
	if !h.server.BroadcastToRoom(namespace, room, event, payload) {
		h.log.Debugw("nobody listening", "room", room, "event", event)
	}
}

// Serve runs the server loop until Close.
func (h *Hub) Serve() error {
	return h.server.Serve()
}

func (h *Hub) Close() error {
	return h.server.Close()
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.server.ServeHTTP(w, r)
}
