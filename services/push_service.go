package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cupidwave/models"
	"cupidwave/store"
	"cupidwave/utils"
)

const maxCaptionLength = 200

// PushInput is a Push Éclair broadcast.
type PushInput struct {
	ImageKey string `json:"imageKey"`
	Caption  string `json:"caption"`
}

// PushResult reports how many members received the broadcast.
type PushResult struct {
	Recipients       int `json:"recipients"`
	RemainingCredits int `json:"remainingCredits"`
}

// PushService broadcasts a Push Éclair to members around the sender, one credit each.
type PushService struct {
	Profiles      ProfileStore
	Blocks        BlockStore
	Notifications NotificationStore
	RadiusKm      float64
	MaxRecipients int
	Log           *zap.SugaredLogger
	Now           func() time.Time
}

func (ps *PushService) Broadcast(ctx context.Context, senderID string, in PushInput) (*PushResult, error) {
	in.Caption = strings.TrimSpace(in.Caption)
	if in.ImageKey == "" && in.Caption == "" {
		return nil, utils.InvalidInput("Add a photo or a caption")
	}
	if runeLen(in.Caption) > maxCaptionLength {
		return nil, utils.InvalidInput("caption is too long")
	}
	if in.ImageKey != "" && !strings.HasPrefix(in.ImageKey, PhotoPrefix+senderID+"/") {
		return nil, utils.InvalidInput("imageKey must reference an uploaded photo")
	}

	sender, err := ps.Profiles.Get(ctx, senderID)
	if err != nil {
		return nil, dbError("load profile", err)
	}
	if sender == nil {
		return nil, utils.NotFound("Create your profile first")
	}
	if sender.PushCredits < 1 {
		return nil, utils.PaymentRequired("You need a Push Éclair credit")
	}
	if !sender.HasLocation() {
		return nil, utils.InvalidInput("Set your location before sending a Push Éclair")
	}

	recipients, err := ps.recipients(ctx, sender)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, utils.InvalidInput("Nobody is around you right now")
	}

	balance, err := ps.Profiles.ConsumePushCredit(ctx, senderID)
	if err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return nil, utils.PaymentRequired("You need a Push Éclair credit")
		}
		return nil, dbError("consume push credit", err)
	}

	at := now(ps.Now)
	payload := map[string]string{"caption": in.Caption}
	if in.ImageKey != "" {
		payload["imageKey"] = in.ImageKey
	}
	delivered := ps.deliver(ctx, senderID, recipients, payload, at)
	if delivered == 0 {
		if _, err := ps.Profiles.AddPushCredits(ctx, senderID, 1); err != nil {
			ps.Log.Errorw("failed to refund push credit", "senderId", senderID, "error", err)
		}
		return nil, utils.Internal("failed to deliver push", nil)
	}
	ps.Log.Infow("push éclair sent", "senderId", senderID, "recipients", delivered, "failed", len(recipients)-delivered)
	return &PushResult{Recipients: delivered, RemainingCredits: balance}, nil
}

// deliver notifies every recipient and returns how many notifications were stored.
// A failed delivery does not stop the others.
func (ps *PushService) deliver(ctx context.Context, senderID string, recipients []string, payload map[string]string, at time.Time) int {
	var (
		g         errgroup.Group
		mu        sync.Mutex
		delivered int
	)
	g.SetLimit(fanOutLimit)
	for _, recipientID := range recipients {
		recipientID := recipientID
		g.Go(func() error {
			n := newNotification(recipientID, models.NotificationPushEclair, senderID, payload, at)
			if err := ps.Notifications.Put(ctx, n); err != nil {
				ps.Log.Warnw("push delivery failed", "senderId", senderID, "recipientId", recipientID, "error", err)
				return nil
			}
			mu.Lock()
			delivered++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return delivered
}

// recipients returns visible members within the radius, nearest first, capped.
func (ps *PushService) recipients(ctx context.Context, sender *models.Profile) ([]string, error) {
	hidden, err := hiddenUsers(ctx, ps.Blocks, sender.UserID)
	if err != nil {
		return nil, err
	}
	all, err := ps.Profiles.ListActive(ctx)
	if err != nil {
		return nil, dbError("list profiles", err)
	}

	type nearby struct {
		id       string
		distance float64
	}
	var found []nearby
	for i := range all {
		p := &all[i]
		if p.UserID == sender.UserID || p.Suspended || hidden[p.UserID] || !p.HasLocation() {
			continue
		}
		d := utils.CalculateDistance(sender.Latitude, sender.Longitude, p.Latitude, p.Longitude)
		if d <= ps.RadiusKm {
			found = append(found, nearby{id: p.UserID, distance: d})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].distance < found[j].distance })
	if ps.MaxRecipients > 0 && len(found) > ps.MaxRecipients {
		found = found[:ps.MaxRecipients]
	}
	ids := make([]string, len(found))
	for i, f := range found {
		ids[i] = f.id
	}
	return ids, nil
}
