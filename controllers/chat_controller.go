package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/models"
	"cupidwave/utils"
)

// ChatService is implemented by *services.ChatService.
type ChatService interface {
	ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error)
	ListMessages(ctx context.Context, userID, conversationID string, limit int) ([]models.Message, error)
	Send(ctx context.Context, userID, conversationID string, in models.SendMessageInput) (*models.Message, error)
	MarkRead(ctx context.Context, userID, conversationID string) error
	React(ctx context.Context, userID, conversationID, messageID, emoji string) (*models.Reaction, error)
	Unread(ctx context.Context, userID string) (*models.UnreadSummary, error)
}

// ChatController struct
type ChatController struct {
	Service ChatService
	Log     *zap.SugaredLogger
}

// NewChatController initializes the chat controller
func NewChatController(service ChatService, log *zap.SugaredLogger) *ChatController {
	return &ChatController{Service: service, Log: log}
}

// GetConversations lists the caller's conversations, most recent first
func (c *ChatController) GetConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := c.Service.ListConversations(r.Context(), callerID(r))
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, conversations)
}

// GetMessages returns the latest messages of a conversation, oldest first
func (c *ChatController) GetMessages(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	messages, err := c.Service.ListMessages(r.Context(), callerID(r), mux.Vars(r)["id"], limit)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, messages)
}

func (c *ChatController) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var in models.SendMessageInput
	if err := decodeJSON(w, r, &in); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	msg, err := c.Service.Send(r.Context(), callerID(r), mux.Vars(r)["id"], in)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, msg)
}

// MarkMessagesAsRead moves the caller's read marker to now
func (c *ChatController) MarkMessagesAsRead(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.MarkRead(r.Context(), callerID(r), mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReactToMessage sets the caller's reaction; an empty emoji removes it
func (c *ChatController) ReactToMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Emoji string `json:"emoji"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	vars := mux.Vars(r)
	reaction, err := c.Service.React(r.Context(), callerID(r), vars["id"], vars["messageId"], payload.Emoji)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	if reaction == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, reaction)
}

// GetUnread backs the badge the client polls every 30 seconds
func (c *ChatController) GetUnread(w http.ResponseWriter, r *http.Request) {
	summary, err := c.Service.Unread(r.Context(), callerID(r))
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, summary)
}
