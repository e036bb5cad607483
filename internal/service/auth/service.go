package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/auth"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/jwt"
	"github.com/talenthub-id/ess-gateway-go/internal/repository/postgresql"

	"github.com/go-chi/jwtauth/v5"
)

// RoleHR may clear device bindings for other employees.
const RoleHR = "hr"

type authServiceImpl struct {
	directory  auth.EmployeeDirectory
	sessions   postgresql.SessionRepository
	jwtService jwt.Service
}

func NewAuthService(directory auth.EmployeeDirectory, sessions postgresql.SessionRepository, jwtService jwt.Service) auth.AuthService {
	return &authServiceImpl{
		directory:  directory,
		sessions:   sessions,
		jwtService: jwtService,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	acct, err := s.directory.GetByAppID(ctx, req.AppID)
	if err != nil {
		if errors.Is(err, auth.ErrEmployeeNotFound) {
			// do not reveal whether the app id exists
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if !acct.AllowESS {
		return auth.LoginResponse{}, auth.ErrESSDisabled
	}

	valid, err := s.directory.VerifyAppPassword(ctx, acct.EmployeeID, req.AppPassword)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	if !valid {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	device := auth.DeviceInfo{
		DeviceID:    req.DeviceID,
		DeviceModel: req.DeviceModel,
		DeviceBrand: req.DeviceBrand,
	}
	if acct.DeviceID == "" {
		// first login binds the account to this device
		if err := s.directory.BindDevice(ctx, acct.EmployeeID, device); err != nil {
			return auth.LoginResponse{}, err
		}
	} else if !device.Matches(acct) {
		return auth.LoginResponse{}, auth.ErrDeviceMismatch
	}

	tokens, err := s.issueTokens(ctx, acct, device.DeviceID, session)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	if err := s.sessions.TouchSession(ctx, acct.EmployeeID, device.DeviceID); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to record device session: %w", err)
	}

	return auth.LoginResponse{
		EmployeeID:            acct.EmployeeID,
		EmployeeName:          acct.EmployeeName,
		AppID:                 acct.AppID,
		DeviceID:              device.DeviceID,
		RequirePasswordReset:  acct.RequirePasswordReset,
		AccessToken:           tokens.AccessToken,
		AccessTokenExpiresAt:  tokens.AccessTokenExpiresAt,
		RefreshToken:          tokens.RefreshToken,
		RefreshTokenExpiresAt: tokens.RefreshTokenExpiresAt,
	}, nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, acct auth.EmployeeAccount, deviceID string, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(acct.EmployeeID, acct.AppID, deviceID, acct.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(acct.EmployeeID, deviceID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.sessions.CreateRefreshToken(ctx, acct.EmployeeID, deviceID, refreshToken, refreshExp, session); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}

func (s *authServiceImpl) Refresh(ctx context.Context, req auth.RefreshRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	employeeID, deviceID, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := s.sessions.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// a token we never issued
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, err
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	acct, err := s.directory.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if !acct.AllowESS {
		return auth.TokenResponse{}, auth.ErrESSDisabled
	}
	// a device reset since issuance invalidates the token's device claim
	if acct.DeviceID != deviceID {
		return auth.TokenResponse{}, auth.ErrDeviceMismatch
	}

	// rotate: the presented token dies with this exchange
	if err := s.sessions.RevokeRefreshToken(ctx, req.RefreshToken); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueTokens(ctx, acct, deviceID, session)
}

func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, _, err := s.jwtService.ValidateRefreshToken(refreshToken); err != nil {
		return auth.ErrInvalidToken
	}
	return s.sessions.RevokeRefreshToken(ctx, refreshToken)
}

func claimsFromContext(ctx context.Context) (employeeID string, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id not found in token")
	}
	role, _ = claims["role"].(string)
	return employeeID, role, nil
}

func (s *authServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}
	return s.directory.SetAppPassword(ctx, employeeID, req.NewPassword, true)
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	valid, err := s.directory.VerifyAppPassword(ctx, employeeID, req.OldPassword)
	if err != nil {
		return err
	}
	if !valid {
		return auth.ErrInvalidCredentials
	}
	return s.directory.SetAppPassword(ctx, employeeID, req.NewPassword, false)
}

func (s *authServiceImpl) ResetDevice(ctx context.Context, employeeID string) error {
	_, role, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}
	if role != RoleHR {
		return auth.ErrNotPermitted
	}

	if _, err := s.directory.GetByEmployeeID(ctx, employeeID); err != nil {
		return err
	}
	if err := s.directory.ClearDevice(ctx, employeeID); err != nil {
		return err
	}
	// kill every live session for the old device
	return s.sessions.RevokeEmployeeTokens(ctx, employeeID)
}
