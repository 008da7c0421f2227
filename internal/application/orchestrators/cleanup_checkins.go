package orchestrators

import (
	"context"
	"log/slog"

	"gymdesk/internal/domain/checkin"
)

// CheckinSweepStore defines the check-in store interface needed by the cleanup sweep.
type CheckinSweepStore interface {
	ListAll(ctx context.Context) ([]checkin.Checkin, error)
	Delete(ctx context.Context, id string) error
}

// CleanupRecorder counts check-ins removed by the sweep.
type CleanupRecorder interface {
	CleanupRemoved(n int)
}

// CleanupCheckinsDeps holds dependencies for CleanupCheckins.
type CleanupCheckinsDeps struct {
	CheckinStore CheckinSweepStore
	MemberStore  MemberLookupStore
	Recorder     CleanupRecorder // optional
}

// ExecuteCleanupCheckins deletes check-ins whose member reference is empty or no longer resolves.
// PRE: none
// POST: Returns the number of check-ins deleted; valid check-ins are untouched
func ExecuteCleanupCheckins(ctx context.Context, deps CleanupCheckinsDeps) (int, error) {
	all, err := deps.CheckinStore.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	// Each member is looked up once even when they have many check-ins.
	exists := make(map[string]bool)
	removed := 0
	for _, c := range all {
		known, seen := exists[c.MemberID]
		if !seen && c.MemberID != "" {
			_, err := deps.MemberStore.GetByID(ctx, c.MemberID)
			switch {
			case err == nil:
				known = true
			case isNotFound(err):
				known = false
			default:
				return removed, err
			}
			exists[c.MemberID] = known
		}
		if !c.IsOrphaned(known) {
			continue
		}
		if err := deps.CheckinStore.Delete(ctx, c.ID); err != nil {
			return removed, err
		}
		removed++
	}

	if deps.Recorder != nil {
		deps.Recorder.CleanupRemoved(removed)
	}
	slog.Info("checkin_event", "event", "orphans_cleaned", "removed", removed, "scanned", len(all))
	return removed, nil
}
