package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"cupidwave/models"
	"cupidwave/store"
	"cupidwave/utils"
)

const maxAdminNote = 1000

// AdminService backs the moderation views.
type AdminService struct {
	Reports  ReportStore
	Profiles *UserProfileService
	Tables   StatsStore
	Log      *zap.SugaredLogger
	Now      func() time.Time
}

// ListReports returns reports in status, newest first. The default is open.
func (as *AdminService) ListReports(ctx context.Context, status string) ([]models.Report, error) {
	if status == "" {
		status = models.StatusOpen
	}
	if status != models.StatusOpen && status != models.StatusResolved && status != models.StatusDismissed {
		return nil, utils.InvalidInput("status must be open, resolved or dismissed")
	}
	reports, err := as.Reports.ListByStatus(ctx, status)
	if err != nil {
		return nil, dbError("load reports", err)
	}
	return reports, nil
}

// ResolveReport closes an open report as resolved or dismissed.
func (as *AdminService) ResolveReport(ctx context.Context, adminID, reportID, status, note string) (*models.Report, error) {
	if status != models.StatusResolved && status != models.StatusDismissed {
		return nil, utils.InvalidInput("status must be resolved or dismissed")
	}
	note = strings.TrimSpace(note)
	if runeLen(note) > maxAdminNote {
		return nil, utils.InvalidInput("note is too long")
	}
	report, err := as.Reports.Resolve(ctx, reportID, status, note, adminID, utils.Timestamp(now(as.Now)))
	if err == nil {
		as.Log.Infow("report closed", "reportId", reportID, "status", status, "adminId", adminID)
		return report, nil
	}
	if !errors.Is(err, store.ErrConditionFailed) {
		return nil, dbError("resolve report", err)
	}
	existing, getErr := as.Reports.Get(ctx, reportID)
	if getErr != nil {
		return nil, dbError("load report", getErr)
	}
	if existing == nil {
		return nil, utils.NotFound("Report not found")
	}
	return nil, utils.Conflict("This report is already closed")
}

// SetSuspended hides or restores a profile everywhere but for its owner.
func (as *AdminService) SetSuspended(ctx context.Context, adminID, userID string, suspended bool) (*models.Profile, error) {
	profile, err := as.Profiles.SetSuspended(ctx, userID, suspended)
	if err != nil {
		return nil, err
	}
	as.Log.Infow("profile suspension changed", "userId", userID, "suspended", suspended, "adminId", adminID)
	return profile, nil
}

// Stats returns approximate item counts per table.
func (as *AdminService) Stats(ctx context.Context) (map[string]int64, error) {
	counts, err := as.Tables.Counts(ctx)
	if err != nil {
		return nil, dbError("load stats", err)
	}
	return counts, nil
}
