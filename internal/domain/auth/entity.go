package auth

import "time"

// EmployeeAccount is the slice of the backend Employee document the gateway
// needs for login and device binding.
type EmployeeAccount struct {
	EmployeeID           string
	EmployeeName         string
	UserID               string
	AppID                string
	AllowESS             bool
	Role                 string
	DeviceID             string
	DeviceModel          string
	DeviceBrand          string
	DeviceRegisteredOn   *time.Time
	RequirePasswordReset bool
}

// DeviceInfo identifies the handset a login request comes from. An account
// is bound to the first device that logs in; later logins must match.
type DeviceInfo struct {
	DeviceID    string
	DeviceModel string
	DeviceBrand string
}

func (d DeviceInfo) Matches(acct EmployeeAccount) bool {
	return acct.DeviceID == d.DeviceID &&
		acct.DeviceModel == d.DeviceModel &&
		acct.DeviceBrand == d.DeviceBrand
}
