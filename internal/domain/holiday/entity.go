package holiday

import (
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

// Holiday is one entry of the employee's holiday list.
type Holiday struct {
	Date        dateutil.Date
	Description string
	IsWeeklyOff bool
}
