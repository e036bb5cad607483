package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/attendance"
	"github.com/talenthub-id/ess-gateway-go/internal/domain/leave"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

func punchAt(d dateutil.Date, hour, min int) time.Time {
	return d.At(hour, min, time.UTC)
}

func TestResolveStatus(t *testing.T) {
	day := dateutil.New(2025, time.June, 10)

	tests := []struct {
		name string
		rec  attendance.DayRecord
		want attendance.Status
	}{
		{
			name: "official leave with no punches stays on leave",
			rec: attendance.DayRecord{
				Date:     day,
				Official: attendance.StatusOnLeave,
			},
			want: attendance.StatusOnLeave,
		},
		{
			name: "official half day with both punches keeps half day",
			rec: attendance.DayRecord{
				Date:       day,
				Official:   attendance.StatusHalfDay,
				PunchesIn:  []time.Time{punchAt(day, 9, 0)},
				PunchesOut: []time.Time{punchAt(day, 13, 0)},
			},
			want: attendance.StatusHalfDay,
		},
		{
			name: "official leave with stray IN degrades to incomplete",
			rec: attendance.DayRecord{
				Date:      day,
				Official:  attendance.StatusOnLeave,
				PunchesIn: []time.Time{punchAt(day, 9, 0)},
			},
			want: attendance.StatusIncomplete,
		},
		{
			name: "official WFH with only OUT degrades to incomplete",
			rec: attendance.DayRecord{
				Date:       day,
				Official:   attendance.StatusWorkFromHome,
				PunchesOut: []time.Time{punchAt(day, 18, 0)},
			},
			want: attendance.StatusIncomplete,
		},
		{
			name: "both sides present derives present",
			rec: attendance.DayRecord{
				Date:       day,
				PunchesIn:  []time.Time{punchAt(day, 9, 0)},
				PunchesOut: []time.Time{punchAt(day, 18, 0)},
			},
			want: attendance.StatusPresent,
		},
		{
			name: "official present is re-derived, not trusted",
			rec: attendance.DayRecord{
				Date:      day,
				Official:  attendance.StatusPresent,
				PunchesIn: []time.Time{punchAt(day, 9, 0)},
			},
			want: attendance.StatusIncomplete,
		},
		{
			name: "two INs one OUT is incomplete",
			rec: attendance.DayRecord{
				Date:       day,
				PunchesIn:  []time.Time{punchAt(day, 9, 0), punchAt(day, 14, 0)},
				PunchesOut: []time.Time{punchAt(day, 12, 0)},
			},
			want: attendance.StatusIncomplete,
		},
		{
			name: "only OUT is incomplete",
			rec: attendance.DayRecord{
				Date:       day,
				PunchesOut: []time.Time{punchAt(day, 18, 0)},
			},
			want: attendance.StatusIncomplete,
		},
		{
			name: "no signal at all is absent",
			rec:  attendance.DayRecord{Date: day},
			want: attendance.StatusAbsent,
		},
		{
			name: "official absent with both punches derives present",
			rec: attendance.DayRecord{
				Date:       day,
				Official:   attendance.StatusAbsent,
				PunchesIn:  []time.Time{punchAt(day, 9, 0)},
				PunchesOut: []time.Time{punchAt(day, 18, 0)},
			},
			want: attendance.StatusPresent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.rec
			assert.Equal(t, tt.want, ResolveStatus(&rec))
		})
	}
}

func TestBuildMonth(t *testing.T) {
	d10 := dateutil.New(2025, time.June, 10)
	d11 := dateutil.New(2025, time.June, 11)
	d12 := dateutil.New(2025, time.June, 12)

	punches := []attendance.Punch{
		{EmployeeID: "EMP-001", Timestamp: punchAt(d10, 9, 0), Direction: attendance.DirectionIn},
		{EmployeeID: "EMP-001", Timestamp: punchAt(d10, 18, 0), Direction: attendance.DirectionOut},
		{EmployeeID: "EMP-001", Timestamp: punchAt(d11, 9, 30), Direction: attendance.DirectionIn, IsManualBackfill: true},
	}
	records := []attendance.Record{
		{EmployeeID: "EMP-001", Date: d12, Status: attendance.StatusOnLeave},
	}
	cov := leave.Coverage{
		d11: {WFH: true, Badge: leave.KindWFH},
	}

	days := BuildMonth(2025, time.June, punches, records, cov)
	require.Len(t, days, 30)

	assert.Equal(t, attendance.StatusPresent, days[d10].Resolved)
	assert.False(t, days[d10].HasManualPunch)

	assert.Equal(t, attendance.StatusIncomplete, days[d11].Resolved)
	assert.True(t, days[d11].HasManualPunch)
	assert.True(t, days[d11].IsWFH)

	assert.Equal(t, attendance.StatusOnLeave, days[d12].Resolved)

	// untouched days resolve to absent
	assert.Equal(t, attendance.StatusAbsent, days[dateutil.New(2025, time.June, 1)].Resolved)

	assert.Equal(t, 1, CountBackfilledDates(days))
}

func TestBuildMonth_PunchOutsideMonthIgnored(t *testing.T) {
	stray := dateutil.New(2025, time.May, 31)
	days := BuildMonth(2025, time.June, []attendance.Punch{
		{EmployeeID: "EMP-001", Timestamp: punchAt(stray, 9, 0), Direction: attendance.DirectionIn},
	}, nil, nil)

	for _, day := range days {
		assert.False(t, day.HasIn())
	}
}
