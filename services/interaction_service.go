package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"cupidwave/compat"
	"cupidwave/models"
	"cupidwave/store"
	"cupidwave/utils"
)

const matchOpening = "It's a match! 💘 Say hello."

// TornadoService runs the swipe deck: bounded daily swipes and mutual-match detection.
type TornadoService struct {
	Profiles      ProfileStore
	Swipes        SwipeStore
	Conversations ConversationStore
	Notifications NotificationStore
	Blocks        BlockStore
	Answers       AnswerStore
	Table         *compat.Table
	DailyLimit    int
	Log           *zap.SugaredLogger
	Now           func() time.Time
}

// Swipe records a like or pass on target. A like answering an earlier like creates
// the pair's direct conversation; repeating it returns the same conversation.
func (ts *TornadoService) Swipe(ctx context.Context, swiperID, targetID, direction string) (*models.SwipeResult, error) {
	if swiperID == targetID {
		return nil, utils.InvalidInput("You cannot swipe on yourself")
	}
	if direction != models.SwipeLike && direction != models.SwipePass {
		return nil, utils.InvalidInput("direction must be like or pass")
	}
	target, err := ts.Profiles.Get(ctx, targetID)
	if err != nil {
		return nil, dbError("load profile", err)
	}
	if target == nil || target.Suspended {
		return nil, utils.NotFound("Profile not found")
	}
	blocked, err := blockedEitherWay(ctx, ts.Blocks, swiperID, targetID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, utils.NotFound("Profile not found")
	}

	at := now(ts.Now)
	used, err := ts.Swipes.IncrementQuota(ctx, swiperID, utils.Day(at), ts.DailyLimit)
	if err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return nil, utils.QuotaExceeded("You have used all your swipes for today, come back tomorrow")
		}
		return nil, dbError("update swipe quota", err)
	}

	swipe := &models.Swipe{
		SwiperID:  swiperID,
		TargetID:  targetID,
		Direction: direction,
		CreatedAt: utils.Timestamp(at),
	}
	if err := ts.Swipes.Put(ctx, swipe); err != nil {
		return nil, dbError("record swipe", err)
	}

	result := &models.SwipeResult{Direction: direction, Remaining: remaining(ts.DailyLimit, used)}
	if direction != models.SwipeLike {
		return result, nil
	}

	reciprocal, err := ts.Swipes.Get(ctx, targetID, swiperID)
	if err != nil {
		return nil, dbError("load swipe", err)
	}
	if reciprocal == nil || reciprocal.Direction != models.SwipeLike {
		return result, nil
	}

	conversationID, err := ts.createMatch(ctx, swiperID, targetID, at)
	if err != nil {
		return nil, err
	}
	result.Matched = true
	result.ConversationID = conversationID
	return result, nil
}

// createMatch opens the direct conversation of a mutual like. The conversation,
// both participants and the opening message are written in one transaction.
func (ts *TornadoService) createMatch(ctx context.Context, a, b string, at time.Time) (string, error) {
	conversationID := DirectConversationID(a, b)
	ts.Log.Infow("mutual match", "users", []string{a, b}, "conversationId", conversationID)

	pair := []string{a, b}
	sort.Strings(pair)
	stamp := utils.Timestamp(at)
	conv := &models.Conversation{
		ConversationID:     conversationID,
		Kind:               models.ConversationDirect,
		Participants:       pair,
		CreatedAt:          stamp,
		LastMessageAt:      stamp,
		LastMessagePreview: matchOpening,
	}
	participants := []models.Participant{
		{UserID: pair[0], ConversationID: conversationID, JoinedAt: stamp},
		{UserID: pair[1], ConversationID: conversationID, JoinedAt: stamp},
	}
	opening := &models.Message{
		ConversationID: conversationID,
		MessageID:      newMessageID(),
		Kind:           models.MessageSystem,
		Body:           matchOpening,
		CreatedAt:      stamp,
	}

	err := ts.Conversations.Create(ctx, conv, participants, opening)
	if errors.Is(err, store.ErrConditionFailed) {
		return conversationID, nil
	}
	if err != nil {
		return "", dbError("create conversation", err)
	}

	for _, pairing := range [][2]string{{a, b}, {b, a}} {
		n := newNotification(pairing[0], models.NotificationMatch, pairing[1],
			map[string]string{"conversationId": conversationID}, at)
		if err := ts.Notifications.Put(ctx, n); err != nil {
			ts.Log.Warnw("failed to store match notification", "userId", pairing[0], "error", err)
		}
	}
	return conversationID, nil
}

// Remaining returns how many swipes the user has left today.
func (ts *TornadoService) Remaining(ctx context.Context, userID string) (int, error) {
	used, err := ts.Swipes.QuotaUsed(ctx, userID, utils.Day(now(ts.Now)))
	if err != nil {
		return 0, dbError("load swipe quota", err)
	}
	return remaining(ts.DailyLimit, used), nil
}

// Deck returns candidates the user has not swiped yet, best compatibility first.
func (ts *TornadoService) Deck(ctx context.Context, userID string, limit int) ([]models.DeckCard, error) {
	viewer, err := ts.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, dbError("load profile", err)
	}
	if viewer == nil {
		return nil, utils.NotFound("Create your profile first")
	}
	swiped, err := ts.Swipes.ListBySwiper(ctx, userID)
	if err != nil {
		return nil, dbError("load swipes", err)
	}
	seen := make(map[string]bool, len(swiped))
	for _, s := range swiped {
		seen[s.TargetID] = true
	}
	hidden, err := hiddenUsers(ctx, ts.Blocks, userID)
	if err != nil {
		return nil, err
	}
	candidates, err := ts.Profiles.ListActive(ctx)
	if err != nil {
		return nil, dbError("list profiles", err)
	}
	answers, err := ts.Answers.All(ctx)
	if err != nil {
		return nil, dbError("load answers", err)
	}

	table := ts.Table
	if table == nil {
		table = compat.DefaultTable()
	}
	ranked := rankCandidates(table, viewer, candidates, answers, func(p *models.Profile) bool {
		return seen[p.UserID] || hidden[p.UserID]
	})
	limit = clampLimit(limit, 20, 50)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	deck := make([]models.DeckCard, 0, len(ranked))
	for _, r := range ranked {
		deck = append(deck, models.DeckCard{Profile: r.card, Score: r.score})
	}
	return deck, nil
}

// LikesReceived lists members who liked the user and are still waiting for an answer.
func (ts *TornadoService) LikesReceived(ctx context.Context, userID string) ([]models.ProfileCard, error) {
	likes, err := ts.Swipes.ListLikesReceived(ctx, userID)
	if err != nil {
		return nil, dbError("load likes", err)
	}
	swiped, err := ts.Swipes.ListBySwiper(ctx, userID)
	if err != nil {
		return nil, dbError("load swipes", err)
	}
	answered := make(map[string]bool, len(swiped))
	for _, s := range swiped {
		answered[s.TargetID] = true
	}
	hidden, err := hiddenUsers(ctx, ts.Blocks, userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(likes, func(i, j int) bool { return likes[i].CreatedAt > likes[j].CreatedAt })
	out := make([]models.ProfileCard, 0, len(likes))
	for _, like := range likes {
		if answered[like.SwiperID] || hidden[like.SwiperID] {
			continue
		}
		p, err := ts.Profiles.Get(ctx, like.SwiperID)
		if err != nil {
			return nil, dbError("load profile", err)
		}
		if p == nil || p.Suspended {
			continue
		}
		out = append(out, p.Card())
	}
	return out, nil
}

func remaining(limit, used int) int {
	if used >= limit {
		return 0
	}
	return limit - used
}
