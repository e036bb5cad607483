package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid app id or password")
	ErrESSDisabled         = errors.New("employee self service is not enabled for this account")
	ErrPasswordNotSet      = errors.New("app password not set")
	ErrDeviceMismatch      = errors.New("account is registered to a different device")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrEmployeeNotFound    = errors.New("employee record not found")
	ErrNotPermitted        = errors.New("insufficient permissions")
)
