package attendance

import (
	"time"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/attendance"
	"github.com/talenthub-id/ess-gateway-go/internal/domain/leave"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

const clockLayout = "15:04"

// ProjectMonth lays the month out week by week, Sunday first. Leading cells
// before day 1 and trailing cells after the last day are nil so every week
// row holds exactly seven entries.
func ProjectMonth(year int, month time.Month, days map[dateutil.Date]*attendance.DayRecord, cov leave.Coverage, today dateutil.Date) attendance.MonthGrid {
	total := dateutil.DaysInMonth(year, month)
	lead := int(dateutil.MonthStart(year, month).Weekday())

	cells := make([]*attendance.DayCell, lead, lead+total)
	for dayNum := 1; dayNum <= total; dayNum++ {
		d := dateutil.New(year, month, dayNum)
		cells = append(cells, buildCell(d, days[d], cov[d], today))
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}

	grid := attendance.MonthGrid{
		Year:  year,
		Month: int(month),
		Weeks: make([][]*attendance.DayCell, 0, len(cells)/7),
	}
	for i := 0; i < len(cells); i += 7 {
		grid.Weeks = append(grid.Weeks, cells[i:i+7])
	}
	return grid
}

func buildCell(d dateutil.Date, rec *attendance.DayRecord, cov leave.DayCoverage, today dateutil.Date) *attendance.DayCell {
	cell := &attendance.DayCell{
		Day:      d.Day,
		Date:     d,
		IsWFH:    cov.WFH,
		IsOD:     cov.OD,
		Badge:    cov.Badge,
		Emphasis: attendance.EmphasisNone,
	}

	if rec != nil {
		if rec.HasSignal() {
			cell.Status = rec.Resolved
		}
		cell.HasManualPunch = rec.HasManualPunch
		cell.PunchesIn = formatClocks(rec.PunchesIn)
		cell.PunchesOut = formatClocks(rec.PunchesOut)
	}

	switch {
	case cell.Status != attendance.StatusNone:
		cell.Emphasis = attendance.EmphasisStatus
	case cov.WFH || cov.OD:
		cell.Emphasis = attendance.EmphasisCoverage
	case d == today:
		cell.Emphasis = attendance.EmphasisToday
	}
	return cell
}

func formatClocks(ts []time.Time) []string {
	if len(ts) == 0 {
		return nil
	}
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Format(clockLayout)
	}
	return out
}
