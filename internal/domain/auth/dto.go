package auth

import (
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/validator"
)

type LoginRequest struct {
	AppID       string `json:"app_id"`
	AppPassword string `json:"app_password"`
	DeviceID    string `json:"device_id"`
	DeviceModel string `json:"device_model"`
	DeviceBrand string `json:"device_brand"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AppID) {
		errs = append(errs, validator.ValidationError{
			Field:   "app_id",
			Message: "app_id is required",
		})
	}
	if validator.IsEmpty(r.AppPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "app_password",
			Message: "app_password is required",
		})
	}
	if validator.IsEmpty(r.DeviceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_id",
			Message: "device_id is required",
		})
	}
	if validator.IsEmpty(r.DeviceModel) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_model",
			Message: "device_model is required",
		})
	}
	if validator.IsEmpty(r.DeviceBrand) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_brand",
			Message: "device_brand is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	EmployeeID            string `json:"employee_id"`
	EmployeeName          string `json:"employee_name"`
	AppID                 string `json:"app_id"`
	DeviceID              string `json:"device_id"`
	RequirePasswordReset  bool   `json:"require_password_reset"`
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresAt  int64  `json:"access_token_expires_at"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresAt int64  `json:"refresh_token_expires_at"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshRequest) Validate() error {
	if validator.IsEmpty(r.RefreshToken) {
		return validator.ValidationErrors{{
			Field:   "refresh_token",
			Message: "refresh_token is required",
		}}
	}
	return nil
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresAt  int64  `json:"access_token_expires_at"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresAt int64  `json:"refresh_token_expires_at"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.NewPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password is required",
		})
	} else if len(r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OldPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "old_password",
			Message: "old_password is required",
		})
	}
	if validator.IsEmpty(r.NewPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password is required",
		})
	} else if len(r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SessionTrackingRequest carries request metadata stored with each refresh
// token.
type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}
