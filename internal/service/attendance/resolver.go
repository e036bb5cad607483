package attendance

import (
	"time"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/attendance"
	"github.com/talenthub-id/ess-gateway-go/internal/domain/leave"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

// ResolveStatus derives the canonical status for one day. The official
// record wins only for non-routine statuses (on leave, half day, work from
// home) and only while punches are zero- or two-sided; a partial punch
// degrades even an official leave-type day to incomplete. Present and absent
// official statuses are re-derived from punches rather than trusted.
func ResolveStatus(day *attendance.DayRecord) attendance.Status {
	nonRoutine := day.Official == attendance.StatusOnLeave ||
		day.Official == attendance.StatusHalfDay ||
		day.Official == attendance.StatusWorkFromHome

	if nonRoutine {
		if day.IsPartial() {
			return attendance.StatusIncomplete
		}
		return day.Official
	}

	switch {
	case day.IsComplete() && len(day.PunchesOut) >= len(day.PunchesIn):
		return attendance.StatusPresent
	case day.IsComplete():
		// more INs than OUTs means an unfinished pair somewhere
		return attendance.StatusIncomplete
	case day.IsPartial():
		return attendance.StatusIncomplete
	default:
		return attendance.StatusAbsent
	}
}

// BuildMonth merges the month's punches, official records and WFH/OD
// coverage into one DayRecord per calendar date. Every date of the month
// gets a record; days without any signal resolve to absent.
func BuildMonth(year int, month time.Month, punches []attendance.Punch, records []attendance.Record, cov leave.Coverage) map[dateutil.Date]*attendance.DayRecord {
	days := make(map[dateutil.Date]*attendance.DayRecord, dateutil.DaysInMonth(year, month))
	for d := dateutil.MonthStart(year, month); !d.After(dateutil.MonthEnd(year, month)); d = d.AddDays(1) {
		days[d] = &attendance.DayRecord{Date: d}
	}

	for _, p := range punches {
		day, ok := days[dateutil.FromTime(p.Timestamp)]
		if !ok {
			continue
		}
		switch p.Direction {
		case attendance.DirectionIn:
			day.PunchesIn = append(day.PunchesIn, p.Timestamp)
		case attendance.DirectionOut:
			day.PunchesOut = append(day.PunchesOut, p.Timestamp)
		}
		if p.IsManualBackfill {
			day.HasManualPunch = true
		}
	}

	for _, rec := range records {
		if day, ok := days[rec.Date]; ok {
			day.Official = rec.Status
		}
	}

	for d, day := range days {
		if c, ok := cov[d]; ok {
			day.IsWFH = c.WFH
			day.IsOD = c.OD
		}
		day.Resolved = ResolveStatus(day)
	}
	return days
}

// CountBackfilledDates counts the distinct dates carrying at least one
// manual backfill punch. A date needing both IN and OUT backfilled still
// counts once.
func CountBackfilledDates(days map[dateutil.Date]*attendance.DayRecord) int {
	count := 0
	for _, day := range days {
		if day.HasManualPunch {
			count++
		}
	}
	return count
}
