package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cupidwave/models"
	"cupidwave/utils"
)

type chatFixture struct {
	svc       *ChatService
	convs     *mockConversationStore
	messages  *mockMessageStore
	reactions *mockReactionStore
	profiles  *mockProfileStore
	notes     *mockNotificationStore
	publisher *mockPublisher
}

func newChatFixture(blocks *mockBlockStore) *chatFixture {
	f := &chatFixture{
		convs:     &mockConversationStore{},
		messages:  &mockMessageStore{},
		reactions: &mockReactionStore{},
		profiles:  &mockProfileStore{},
		notes:     &mockNotificationStore{},
		publisher: &mockPublisher{},
	}
	f.svc = &ChatService{
		Conversations: f.convs,
		Messages:      f.messages,
		Reactions:     f.reactions,
		Profiles:      f.profiles,
		Blocks:        blocks,
		Notifications: f.notes,
		Publisher:     f.publisher,
		Log:           nopLog(),
		Now:           clock,
	}
	return f
}

func (f *chatFixture) member(userID, conversationID string) {
	f.convs.On("GetParticipant", mock.Anything, userID, conversationID).
		Return(&models.Participant{UserID: userID, ConversationID: conversationID}, nil)
}

func TestSend_TextMessage(t *testing.T) {
	f := newChatFixture(noBlocks())
	f.member("a", "c1")
	f.convs.On("Get", mock.Anything, "c1").Return(&models.Conversation{
		ConversationID: "c1", Kind: models.ConversationDirect, Participants: []string{"a", "b"},
	}, nil)
	f.messages.On("Put", mock.Anything, mock.Anything).Return(nil)
	f.convs.On("Touch", mock.Anything, "c1", "2026-10-18T10:00:00.000000Z", "hello there").Return(nil)
	f.convs.On("MarkRead", mock.Anything, "a", "c1", "2026-10-18T10:00:00.000000Z").Return(nil)
	f.publisher.On("Publish", "c1", EventNewMessage, mock.Anything).Return()

	msg, err := f.svc.Send(context.Background(), "a", "c1", models.SendMessageInput{Body: "  hello there "})
	require.NoError(t, err)
	assert.Equal(t, models.MessageText, msg.Kind)
	assert.Equal(t, "hello there", msg.Body)
	assert.NotEmpty(t, msg.MessageID)
	f.convs.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestSend_Validation(t *testing.T) {
	f := newChatFixture(noBlocks())

	_, err := f.svc.Send(context.Background(), "a", "c1", models.SendMessageInput{Body: "   "})
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))

	_, err = f.svc.Send(context.Background(), "a", "c1", models.SendMessageInput{Kind: models.MessageVoice, MediaKey: "voice-messages/other/x.m4a"})
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))

	_, err = f.svc.Send(context.Background(), "a", "c1", models.SendMessageInput{Kind: models.MessageSystem, Body: "hi"})
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
}

func TestSend_NotAParticipant(t *testing.T) {
	f := newChatFixture(noBlocks())
	f.convs.On("GetParticipant", mock.Anything, "z", "c1").Return(nil, nil)

	_, err := f.svc.Send(context.Background(), "z", "c1", models.SendMessageInput{Body: "hi"})
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
	f.messages.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSend_BlockedDirectConversation(t *testing.T) {
	blocks := &mockBlockStore{}
	blocks.On("Exists", mock.Anything, "a", "b").Return(true, nil)
	f := newChatFixture(blocks)
	f.member("a", "c1")
	f.convs.On("Get", mock.Anything, "c1").Return(&models.Conversation{
		ConversationID: "c1", Kind: models.ConversationDirect, Participants: []string{"a", "b"},
	}, nil)

	_, err := f.svc.Send(context.Background(), "a", "c1", models.SendMessageInput{Body: "hi"})
	assert.True(t, utils.IsErrorCode(err, utils.ErrForbidden))
	f.messages.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestMessages_OldestFirstWithReactions(t *testing.T) {
	f := newChatFixture(noBlocks())
	f.member("a", "c1")
	f.messages.On("Latest", mock.Anything, "c1", 50).Return([]models.Message{
		{MessageID: "m3", Body: "third"},
		{MessageID: "m2", Body: "second"},
		{MessageID: "m1", Body: "first"},
	}, nil)
	f.reactions.On("ListByConversation", mock.Anything, "c1").Return([]models.Reaction{
		{MessageID: "m2", UserID: "b", Emoji: "❤️"},
	}, nil)

	messages, err := f.svc.ListMessages(context.Background(), "a", "c1", 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "m1", messages[0].MessageID)
	assert.Equal(t, "m3", messages[2].MessageID)
	require.Len(t, messages[1].Reactions, 1)
	assert.Equal(t, "❤️", messages[1].Reactions[0].Emoji)
	assert.Empty(t, messages[0].Reactions)
}

func TestListConversations_SortedWithUnread(t *testing.T) {
	f := newChatFixture(noBlocks())
	f.convs.On("ListParticipations", mock.Anything, "a").Return([]models.Participant{
		{UserID: "a", ConversationID: "old", LastReadAt: "2026-10-01T00:00:00.000000Z"},
		{UserID: "a", ConversationID: "new"},
		{UserID: "a", ConversationID: "gone"},
	}, nil)
	f.convs.On("Get", mock.Anything, "old").Return(&models.Conversation{
		ConversationID: "old", Participants: []string{"a", "b"}, LastMessageAt: "2026-10-02T00:00:00.000000Z",
	}, nil)
	f.convs.On("Get", mock.Anything, "new").Return(&models.Conversation{
		ConversationID: "new", Participants: []string{"a", "c"}, LastMessageAt: "2026-10-17T00:00:00.000000Z",
	}, nil)
	f.convs.On("Get", mock.Anything, "gone").Return(nil, nil)
	f.messages.On("CountUnread", mock.Anything, "old", "a", "2026-10-01T00:00:00.000000Z").Return(1, nil)
	f.messages.On("CountUnread", mock.Anything, "new", "a", "").Return(4, nil)
	f.profiles.On("Get", mock.Anything, "b").Return(person("b", 0, 0, ""), nil)
	f.profiles.On("Get", mock.Anything, "c").Return(person("c", 0, 0, ""), nil)

	list, err := f.svc.ListConversations(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ConversationID)
	assert.Equal(t, 4, list[0].UnreadCount)
	assert.Equal(t, []string{"c"}, ids(list[0].Members))
	assert.Equal(t, 1, list[1].UnreadCount)
}

func TestUnread_SumsMessagesAndNotifications(t *testing.T) {
	f := newChatFixture(noBlocks())
	f.convs.On("ListParticipations", mock.Anything, "a").Return([]models.Participant{
		{ConversationID: "c1"}, {ConversationID: "c2", LastReadAt: "x"},
	}, nil)
	f.messages.On("CountUnread", mock.Anything, "c1", "a", "").Return(2, nil)
	f.messages.On("CountUnread", mock.Anything, "c2", "a", "x").Return(3, nil)
	f.notes.On("CountUnread", mock.Anything, "a").Return(4, nil)

	summary, err := f.svc.Unread(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, models.UnreadSummary{Messages: 5, Notifications: 4, Total: 9}, *summary)
}

func TestReact_EmptyEmojiRemoves(t *testing.T) {
	f := newChatFixture(noBlocks())
	f.member("a", "c1")
	f.messages.On("Get", mock.Anything, "c1", "m1").Return(&models.Message{MessageID: "m1"}, nil)
	f.reactions.On("Delete", mock.Anything, "c1", "m1", "a").Return(nil)
	f.publisher.On("Publish", "c1", EventReaction, mock.Anything).Return()

	reaction, err := f.svc.React(context.Background(), "a", "c1", "m1", " ")
	require.NoError(t, err)
	assert.Nil(t, reaction)
	f.reactions.AssertExpectations(t)
	f.reactions.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestReact_UnknownMessage(t *testing.T) {
	f := newChatFixture(noBlocks())
	f.member("a", "c1")
	f.messages.On("Get", mock.Anything, "c1", "nope").Return(nil, nil)

	_, err := f.svc.React(context.Background(), "a", "c1", "nope", "🔥")
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}
