package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"cupidwave/compat"
	"cupidwave/models"
	"cupidwave/utils"
)

// CompatibilityResult is the score between the caller and one member.
type CompatibilityResult struct {
	UserID    string           `json:"userId"`
	Score     int              `json:"score"`
	Breakdown compat.Breakdown `json:"breakdown"`
}

// MatchmakingService stores questionnaire answers and ranks members by compatibility.
type MatchmakingService struct {
	Profiles ProfileStore
	Answers  AnswerStore
	Blocks   BlockStore
	Table    *compat.Table
	Log      *zap.SugaredLogger
	Now      func() time.Time
}

func (ms *MatchmakingService) table() *compat.Table {
	if ms.Table == nil {
		return compat.DefaultTable()
	}
	return ms.Table
}

// SaveAnswers replaces the caller's answers. Unknown questions or values are rejected.
func (ms *MatchmakingService) SaveAnswers(ctx context.Context, userID string, answers map[string]string) (*models.MatchmakingAnswers, error) {
	if len(answers) == 0 {
		return nil, utils.InvalidInput("answers are required")
	}
	if err := ms.table().ValidateAnswers(answers); err != nil {
		return nil, utils.InvalidInput(err.Error())
	}
	row := &models.MatchmakingAnswers{
		UserID:    userID,
		Answers:   answers,
		UpdatedAt: utils.Timestamp(now(ms.Now)),
	}
	if err := ms.Answers.Put(ctx, row); err != nil {
		return nil, dbError("save answers", err)
	}
	return row, nil
}

// GetAnswers returns the caller's answers, empty when the questionnaire was never filled.
func (ms *MatchmakingService) GetAnswers(ctx context.Context, userID string) (*models.MatchmakingAnswers, error) {
	row, err := ms.Answers.Get(ctx, userID)
	if err != nil {
		return nil, dbError("load answers", err)
	}
	if row == nil {
		return &models.MatchmakingAnswers{UserID: userID, Answers: map[string]string{}}, nil
	}
	return row, nil
}

// Suggestions returns the best scoring visible members.
func (ms *MatchmakingService) Suggestions(ctx context.Context, userID string, limit int) ([]models.Suggestion, error) {
	viewer, err := ms.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, dbError("load profile", err)
	}
	if viewer == nil {
		return nil, utils.NotFound("Create your profile first")
	}
	hidden, err := hiddenUsers(ctx, ms.Blocks, userID)
	if err != nil {
		return nil, err
	}
	candidates, err := ms.Profiles.ListActive(ctx)
	if err != nil {
		return nil, dbError("list profiles", err)
	}
	answers, err := ms.Answers.All(ctx)
	if err != nil {
		return nil, dbError("load answers", err)
	}
	if len(answers[userID]) == 0 {
		return []models.Suggestion{}, nil
	}

	ranked := rankCandidates(ms.table(), viewer, candidates, answers, func(p *models.Profile) bool {
		return hidden[p.UserID] || len(answers[p.UserID]) == 0
	})
	limit = clampLimit(limit, 20, 100)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]models.Suggestion, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, models.Suggestion{Profile: r.card, Score: r.score})
	}
	return out, nil
}

// Compatibility scores the caller against one member.
func (ms *MatchmakingService) Compatibility(ctx context.Context, userID, otherID string) (*CompatibilityResult, error) {
	if userID == otherID {
		return nil, utils.InvalidInput("Pick another member")
	}
	me, err := ms.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, dbError("load profile", err)
	}
	other, err := ms.Profiles.Get(ctx, otherID)
	if err != nil {
		return nil, dbError("load profile", err)
	}
	if me == nil || other == nil || other.Suspended {
		return nil, utils.NotFound("Profile not found")
	}
	blocked, err := blockedEitherWay(ctx, ms.Blocks, userID, otherID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, utils.NotFound("Profile not found")
	}

	mine, err := ms.GetAnswers(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := ms.GetAnswers(ctx, otherID)
	if err != nil {
		return nil, err
	}
	breakdown := ms.table().Breakdown(mine.Answers, theirs.Answers, profileInfo(me), profileInfo(other))
	return &CompatibilityResult{UserID: otherID, Score: breakdown.Total, Breakdown: breakdown}, nil
}

type rankedProfile struct {
	card  models.ProfileCard
	score int
}

// rankCandidates scores every candidate against viewer, best first.
// Ties keep the newest profile first. skip excludes candidates; the viewer
// and suspended profiles are always excluded.
func rankCandidates(
	table *compat.Table,
	viewer *models.Profile,
	candidates []models.Profile,
	answers map[string]map[string]string,
	skip func(*models.Profile) bool,
) []rankedProfile {
	type scored struct {
		rankedProfile
		createdAt string
	}
	mine := compat.Answers(answers[viewer.UserID])
	viewerInfo := profileInfo(viewer)

	list := make([]scored, 0, len(candidates))
	for i := range candidates {
		p := &candidates[i]
		if p.UserID == viewer.UserID || p.Suspended || skip(p) {
			continue
		}
		score := table.Score(mine, compat.Answers(answers[p.UserID]), viewerInfo, profileInfo(p))
		located := withDistance(viewer, p)
		list = append(list, scored{
			rankedProfile: rankedProfile{card: located.Card(), score: score},
			createdAt:     p.CreatedAt,
		})
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].createdAt > list[j].createdAt
	})

	out := make([]rankedProfile, len(list))
	for i := range list {
		out[i] = list[i].rankedProfile
	}
	return out
}
