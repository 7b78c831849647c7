package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cupidwave/models"
	"cupidwave/utils"
)

const (
	maxMessageLength = 2000
	maxEmojiLength   = 8
	fanOutLimit      = 8
)

// Realtime events
const (
	EventNewMessage   = "newMessage"
	EventReaction     = "messageReaction"
	EventNotification = "notification"
)

// Publisher pushes an event to everyone in a realtime room.
type Publisher interface {
	Publish(room, event string, payload interface{})
}

// MessagePoster stores a message that did not come from a participant's composer.
type MessagePoster interface {
	Post(ctx context.Context, msg *models.Message) error
}

type ChatService struct {
	Conversations ConversationStore
	Messages      MessageStore
	Reactions     ReactionStore
	Profiles      ProfileStore
	Blocks        BlockStore
	Notifications NotificationStore
	Publisher     Publisher
	Log           *zap.SugaredLogger
	Now           func() time.Time
}

// ListConversations returns the caller's inbox, most recent activity first.
func (s *ChatService) ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	participations, err := s.Conversations.ListParticipations(ctx, userID)
	if err != nil {
		return nil, dbError("load conversations", err)
	}

	summaries := make([]*models.ConversationSummary, len(participations))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	for i := range participations {
		i, p := i, participations[i]
		g.Go(func() error {
			conv, err := s.Conversations.Get(gctx, p.ConversationID)
			if err != nil {
				return dbError("load conversation", err)
			}
			if conv == nil {
				return nil
			}
			unread, err := s.Messages.CountUnread(gctx, conv.ConversationID, userID, p.LastReadAt)
			if err != nil {
				return dbError("count unread messages", err)
			}
			members := make([]models.ProfileCard, 0, len(conv.Participants))
			for _, memberID := range conv.Participants {
				if memberID == userID {
					continue
				}
				profile, err := s.Profiles.Get(gctx, memberID)
				if err != nil {
					return dbError("load profile", err)
				}
				if profile != nil {
					members = append(members, profile.Card())
				}
			}
			summaries[i] = &models.ConversationSummary{Conversation: *conv, Members: members, UnreadCount: unread}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.ConversationSummary, 0, len(summaries))
	for _, summary := range summaries {
		if summary != nil {
			out = append(out, *summary)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastMessageAt > out[j].LastMessageAt })
	return out, nil
}

// Messages returns the latest messages, oldest first, with their reactions.
func (s *ChatService) ListMessages(ctx context.Context, userID, conversationID string, limit int) ([]models.Message, error) {
	if err := s.EnsureParticipant(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	messages, err := s.Messages.Latest(ctx, conversationID, clampLimit(limit, 50, 200))
	if err != nil {
		return nil, dbError("load messages", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	reactions, err := s.Reactions.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, dbError("load reactions", err)
	}
	byMessage := map[string][]models.Reaction{}
	for _, r := range reactions {
		byMessage[r.MessageID] = append(byMessage[r.MessageID], r)
	}
	for i := range messages {
		messages[i].Reactions = byMessage[messages[i].MessageID]
	}
	return messages, nil
}

// Send posts a participant's message. Blocked pairs cannot talk in their direct conversation.
func (s *ChatService) Send(ctx context.Context, userID, conversationID string, in models.SendMessageInput) (*models.Message, error) {
	if in.Kind == "" {
		in.Kind = models.MessageText
	}
	in.Body = strings.TrimSpace(in.Body)
	switch in.Kind {
	case models.MessageText:
		if in.Body == "" {
			return nil, utils.InvalidInput("Message cannot be empty")
		}
		in.MediaKey = ""
	case models.MessageImage:
		if !strings.HasPrefix(in.MediaKey, PhotoPrefix+userID+"/") {
			return nil, utils.InvalidInput("mediaKey must reference an uploaded photo")
		}
	case models.MessageVoice:
		if !strings.HasPrefix(in.MediaKey, VoicePrefix+conversationID+"/") {
			return nil, utils.InvalidInput("mediaKey must reference an uploaded voice message")
		}
	default:
		return nil, utils.InvalidInput("kind must be text, image or voice")
	}
	if runeLen(in.Body) > maxMessageLength {
		return nil, utils.InvalidInput("Message is too long")
	}

	if err := s.EnsureParticipant(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	conv, err := s.Conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, dbError("load conversation", err)
	}
	if conv == nil {
		return nil, utils.NotFound("Conversation not found")
	}
	if conv.Kind == models.ConversationDirect {
		for _, other := range conv.Participants {
			if other == userID {
				continue
			}
			blocked, err := blockedEitherWay(ctx, s.Blocks, userID, other)
			if err != nil {
				return nil, err
			}
			if blocked {
				return nil, utils.Forbidden("You can no longer message this member")
			}
		}
	}

	msg := &models.Message{
		ConversationID: conversationID,
		MessageID:      newMessageID(),
		SenderID:       userID,
		Kind:           in.Kind,
		Body:           in.Body,
		MediaKey:       in.MediaKey,
		CreatedAt:      utils.Timestamp(now(s.Now)),
	}
	if err := s.Post(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.Conversations.MarkRead(ctx, userID, conversationID, msg.CreatedAt); err != nil {
		s.Log.Warnw("failed to move sender read marker", "conversationId", conversationID, "error", err)
	}
	return msg, nil
}

// Post stores msg, refreshes the inbox preview and publishes it to the conversation room.
func (s *ChatService) Post(ctx context.Context, msg *models.Message) error {
	if msg.MessageID == "" {
		msg.MessageID = newMessageID()
	}
	if msg.CreatedAt == "" {
		msg.CreatedAt = utils.Timestamp(now(s.Now))
	}
	if err := s.Messages.Put(ctx, msg); err != nil {
		return dbError("send message", err)
	}
	if err := s.Conversations.Touch(ctx, msg.ConversationID, msg.CreatedAt, msg.Preview()); err != nil {
		s.Log.Warnw("failed to update conversation preview", "conversationId", msg.ConversationID, "error", err)
	}
	if s.Publisher != nil {
		s.Publisher.Publish(msg.ConversationID, EventNewMessage, msg)
	}
	return nil
}

// MarkRead moves the caller's read marker to now.
func (s *ChatService) MarkRead(ctx context.Context, userID, conversationID string) error {
	if err := s.EnsureParticipant(ctx, userID, conversationID); err != nil {
		return err
	}
	if err := s.Conversations.MarkRead(ctx, userID, conversationID, utils.Timestamp(now(s.Now))); err != nil {
		return dbError("mark conversation read", err)
	}
	return nil
}

// React sets the caller's reaction on a message. An empty emoji removes it.
func (s *ChatService) React(ctx context.Context, userID, conversationID, messageID, emoji string) (*models.Reaction, error) {
	emoji = strings.TrimSpace(emoji)
	if runeLen(emoji) > maxEmojiLength {
		return nil, utils.InvalidInput("Invalid reaction")
	}
	if err := s.EnsureParticipant(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	msg, err := s.Messages.Get(ctx, conversationID, messageID)
	if err != nil {
		return nil, dbError("load message", err)
	}
	if msg == nil {
		return nil, utils.NotFound("Message not found")
	}

	if emoji == "" {
		if err := s.Reactions.Delete(ctx, conversationID, messageID, userID); err != nil {
			return nil, dbError("remove reaction", err)
		}
		if s.Publisher != nil {
			s.Publisher.Publish(conversationID, EventReaction, map[string]string{
				"messageId": messageID, "userId": userID, "emoji": "",
			})
		}
		return nil, nil
	}

	reaction := &models.Reaction{
		ConversationID: conversationID,
		MessageID:      messageID,
		UserID:         userID,
		Emoji:          emoji,
		CreatedAt:      utils.Timestamp(now(s.Now)),
	}
	if err := s.Reactions.Put(ctx, reaction); err != nil {
		return nil, dbError("save reaction", err)
	}
	if s.Publisher != nil {
		s.Publisher.Publish(conversationID, EventReaction, reaction)
	}
	return reaction, nil
}

// Unread totals unread messages across conversations and unread notifications.
func (s *ChatService) Unread(ctx context.Context, userID string) (*models.UnreadSummary, error) {
	participations, err := s.Conversations.ListParticipations(ctx, userID)
	if err != nil {
		return nil, dbError("load conversations", err)
	}

	var (
		mu       sync.Mutex
		messages int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	for _, p := range participations {
		p := p
		g.Go(func() error {
			n, err := s.Messages.CountUnread(gctx, p.ConversationID, userID, p.LastReadAt)
			if err != nil {
				return dbError("count unread messages", err)
			}
			mu.Lock()
			messages += n
			mu.Unlock()
			return nil
		})
	}
	var notifications int
	g.Go(func() error {
		n, err := s.Notifications.CountUnread(gctx, userID)
		if err != nil {
			return dbError("count unread notifications", err)
		}
		notifications = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &models.UnreadSummary{
		Messages:      messages,
		Notifications: notifications,
		Total:         messages + notifications,
	}, nil
}

// EnsureParticipant fails with NOT_FOUND when userID is not part of the conversation.
func (s *ChatService) EnsureParticipant(ctx context.Context, userID, conversationID string) error {
	p, err := s.Conversations.GetParticipant(ctx, userID, conversationID)
	if err != nil {
		return dbError("load conversation", err)
	}
	if p == nil {
		return utils.NotFound("Conversation not found")
	}
	return nil
}
