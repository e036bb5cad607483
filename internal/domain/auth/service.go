package auth

import "context"

// AuthService implements device-bound login against the backend directory
// and manages gateway session tokens.
type AuthService interface {
	// Login authenticates an app id + app password pair, enforces the
	// device binding and issues a token pair.
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (LoginResponse, error)

	// Refresh rotates a refresh token into a new token pair.
	Refresh(ctx context.Context, req RefreshRequest, session SessionTrackingRequest) (TokenResponse, error)

	// Logout revokes the presented refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// ResetPassword sets a new app password on first login and clears the
	// forced-reset flag.
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// ChangePassword verifies the old app password and stores the new one.
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error

	// ResetDevice clears an employee's device binding. HR role only.
	ResetDevice(ctx context.Context, employeeID string) error
}
