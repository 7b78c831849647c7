package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cupidwave/models"
	"cupidwave/utils"
)

const maxReportDetails = 1000

// ReportInput is what a member submits when reporting a profile.
type ReportInput struct {
	TargetID string `json:"targetId"`
	Reason   string `json:"reason"`
	Details  string `json:"details"`
}

// ModerationService handles blocks and reports.
type ModerationService struct {
	Blocks   BlockStore
	Reports  ReportStore
	Profiles ProfileStore
	Log      *zap.SugaredLogger
	Now      func() time.Time
}

func (ms *ModerationService) Block(ctx context.Context, blockerID, blockedID string) (*models.Block, error) {
	if blockedID == "" || blockerID == blockedID {
		return nil, utils.InvalidInput("Pick another member to block")
	}
	target, err := ms.Profiles.Get(ctx, blockedID)
	if err != nil {
		return nil, dbError("load profile", err)
	}
	if target == nil {
		return nil, utils.NotFound("Profile not found")
	}
	b := &models.Block{BlockerID: blockerID, BlockedID: blockedID, CreatedAt: utils.Timestamp(now(ms.Now))}
	if err := ms.Blocks.Put(ctx, b); err != nil {
		return nil, dbError("block member", err)
	}
	ms.Log.Infow("member blocked", "blockerId", blockerID, "blockedId", blockedID)
	return b, nil
}

func (ms *ModerationService) Unblock(ctx context.Context, blockerID, blockedID string) error {
	if err := ms.Blocks.Delete(ctx, blockerID, blockedID); err != nil {
		return dbError("unblock member", err)
	}
	return nil
}

// ListBlocks returns the members the caller blocked.
func (ms *ModerationService) ListBlocks(ctx context.Context, blockerID string) ([]models.Block, error) {
	blocks, err := ms.Blocks.ListByBlocker(ctx, blockerID)
	if err != nil {
		return nil, dbError("load blocks", err)
	}
	return blocks, nil
}

// Report files an open report for the admins.
func (ms *ModerationService) Report(ctx context.Context, reporterID string, in ReportInput) (*models.Report, error) {
	if in.TargetID == "" || in.TargetID == reporterID {
		return nil, utils.InvalidInput("Pick another member to report")
	}
	if !models.Contains(models.ReportReasons, in.Reason) {
		return nil, utils.InvalidInput("reason must be one of " + strings.Join(models.ReportReasons, ", "))
	}
	in.Details = strings.TrimSpace(in.Details)
	if runeLen(in.Details) > maxReportDetails {
		return nil, utils.InvalidInput("details are too long")
	}
	target, err := ms.Profiles.Get(ctx, in.TargetID)
	if err != nil {
		return nil, dbError("load profile", err)
	}
	if target == nil {
		return nil, utils.NotFound("Profile not found")
	}

	ts := utils.Timestamp(now(ms.Now))
	r := &models.Report{
		ReportID:   uuid.NewString(),
		ReporterID: reporterID,
		TargetID:   in.TargetID,
		Reason:     in.Reason,
		Details:    in.Details,
		Status:     models.StatusOpen,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := ms.Reports.Put(ctx, r); err != nil {
		return nil, dbError("save report", err)
	}
	ms.Log.Infow("report filed", "reportId", r.ReportID, "targetId", r.TargetID, "reason", r.Reason)
	return r, nil
}
