package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"cupidwave/compat"
	"cupidwave/models"
	"cupidwave/utils"
)

// directNamespace seeds the name-based ids of direct conversations.
var directNamespace = uuid.MustParse("6f1c5a0e-1b7e-4d8a-9c35-5b0f6e2d4a11")

// DirectConversationID returns the same id for a pair of users in either order.
func DirectConversationID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return uuid.NewSHA1(directNamespace, []byte(a+":"+b)).String()
}

func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock()
}

func dbError(action string, err error) error {
	return utils.Internal("failed to "+action, err)
}

func newMessageID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func newNotification(userID, kind, actorID string, payload map[string]string, at time.Time) *models.Notification {
	ts := utils.Timestamp(at)
	return &models.Notification{
		UserID:    userID,
		SK:        ts + "#" + uuid.NewString(),
		Kind:      kind,
		ActorID:   actorID,
		Payload:   payload,
		CreatedAt: ts,
	}
}

func profileInfo(p *models.Profile) compat.ProfileInfo {
	return compat.ProfileInfo{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		City:      p.City,
		Intent:    p.LookingFor,
	}
}

// withDistance returns a copy of target carrying its distance from viewer, when both are located.
func withDistance(viewer, target *models.Profile) models.Profile {
	out := *target
	out.DistanceKm = nil
	if viewer != nil && viewer.HasLocation() && target.HasLocation() {
		d := utils.RoundKm(utils.CalculateDistance(viewer.Latitude, viewer.Longitude, target.Latitude, target.Longitude))
		out.DistanceKm = &d
	}
	return out
}

// publicView is target as another member sees it: a distance instead of
// coordinates, and none of the account fields.
func publicView(viewer, target *models.Profile) models.Profile {
	out := withDistance(viewer, target)
	out.Latitude, out.Longitude = 0, 0
	out.PushCredits = 0
	out.Role = ""
	out.Suspended = false
	return out
}

// hiddenUsers returns everyone userID blocked or was blocked by.
func hiddenUsers(ctx context.Context, blocks BlockStore, userID string) (map[string]bool, error) {
	hidden := map[string]bool{}
	mine, err := blocks.ListByBlocker(ctx, userID)
	if err != nil {
		return nil, dbError("load blocks", err)
	}
	for _, b := range mine {
		hidden[b.BlockedID] = true
	}
	theirs, err := blocks.ListByBlocked(ctx, userID)
	if err != nil {
		return nil, dbError("load blocks", err)
	}
	for _, b := range theirs {
		hidden[b.BlockerID] = true
	}
	return hidden, nil
}

func blockedEitherWay(ctx context.Context, blocks BlockStore, a, b string) (bool, error) {
	blocked, err := blocks.Exists(ctx, a, b)
	if err != nil {
		return false, dbError("check blocks", err)
	}
	if blocked {
		return true, nil
	}
	blocked, err = blocks.Exists(ctx, b, a)
	if err != nil {
		return false, dbError("check blocks", err)
	}
	return blocked, nil
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func runeLen(s string) int {
	return len([]rune(s))
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
