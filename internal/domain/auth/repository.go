package auth

import "context"

// EmployeeDirectory is the backend's view of employee accounts, app
// passwords and device bindings.
type EmployeeDirectory interface {
	// GetByAppID looks an account up by its app id.
	GetByAppID(ctx context.Context, appID string) (EmployeeAccount, error)

	// GetByEmployeeID looks an account up by employee id.
	GetByEmployeeID(ctx context.Context, employeeID string) (EmployeeAccount, error)

	// VerifyAppPassword checks the app password against the backend.
	VerifyAppPassword(ctx context.Context, employeeID string, password string) (bool, error)

	// BindDevice registers the device on first login.
	BindDevice(ctx context.Context, employeeID string, device DeviceInfo) error

	// ClearDevice removes the binding so a new device can log in.
	ClearDevice(ctx context.Context, employeeID string) error

	// SetAppPassword stores a new app password and clears the forced-reset
	// flag when clearResetFlag is set.
	SetAppPassword(ctx context.Context, employeeID string, password string, clearResetFlag bool) error
}
