package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

func TestExpandRange(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		d := dateutil.New(2025, time.June, 10)
		assert.Equal(t, []dateutil.Date{d}, ExpandRange(d, d))
	})

	t.Run("inclusive span", func(t *testing.T) {
		got := ExpandRange(dateutil.New(2025, time.June, 29), dateutil.New(2025, time.July, 2))
		assert.Equal(t, []dateutil.Date{
			dateutil.New(2025, time.June, 29),
			dateutil.New(2025, time.June, 30),
			dateutil.New(2025, time.July, 1),
			dateutil.New(2025, time.July, 2),
		}, got)
	})

	t.Run("reversed range is empty", func(t *testing.T) {
		assert.Empty(t, ExpandRange(dateutil.New(2025, time.June, 10), dateutil.New(2025, time.June, 9)))
	})
}

func TestBuildCoverage(t *testing.T) {
	d := dateutil.New(2025, time.June, 10)

	t.Run("independent flags when both kinds cover a date", func(t *testing.T) {
		cov := BuildCoverage([]Application{
			{Kind: KindWFH, StartDate: d, EndDate: d, CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
			{Kind: KindOD, StartDate: d, EndDate: d, CreatedAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)},
		})
		day, ok := cov[d]
		require.True(t, ok)
		assert.True(t, day.WFH)
		assert.True(t, day.OD)
	})

	t.Run("badge goes to the most recently created application", func(t *testing.T) {
		cov := BuildCoverage([]Application{
			{Kind: KindOD, StartDate: d, EndDate: d, CreatedAt: time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)},
			{Kind: KindWFH, StartDate: d, EndDate: d, CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		})
		assert.Equal(t, KindOD, cov[d].Badge)
	})

	t.Run("non-coverage kinds are ignored", func(t *testing.T) {
		cov := BuildCoverage([]Application{
			{Kind: KindLeave, StartDate: d, EndDate: d, CreatedAt: time.Now()},
			{Kind: KindGatepass, StartDate: d, EndDate: d, CreatedAt: time.Now()},
		})
		assert.Empty(t, cov)
	})

	t.Run("multi-day application covers every date", func(t *testing.T) {
		cov := BuildCoverage([]Application{
			{Kind: KindWFH, StartDate: d, EndDate: d.AddDays(2), CreatedAt: time.Now()},
		})
		assert.Len(t, cov, 3)
		assert.True(t, cov[d.AddDays(2)].WFH)
	})
}
