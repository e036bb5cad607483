package auth

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/auth"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/jwt"
)

type stubDirectory struct {
	accounts  map[string]*auth.EmployeeAccount // by employee id
	passwords map[string]string                // employee id -> plaintext

	boundDevice  *auth.DeviceInfo
	clearedFor   string
	setPasswords map[string]string
}

func newStubDirectory(accounts ...*auth.EmployeeAccount) *stubDirectory {
	d := &stubDirectory{
		accounts:     map[string]*auth.EmployeeAccount{},
		passwords:    map[string]string{},
		setPasswords: map[string]string{},
	}
	for _, acct := range accounts {
		d.accounts[acct.EmployeeID] = acct
	}
	return d
}

func (d *stubDirectory) GetByAppID(_ context.Context, appID string) (auth.EmployeeAccount, error) {
	for _, acct := range d.accounts {
		if acct.AppID == appID {
			return *acct, nil
		}
	}
	return auth.EmployeeAccount{}, auth.ErrEmployeeNotFound
}

func (d *stubDirectory) GetByEmployeeID(_ context.Context, employeeID string) (auth.EmployeeAccount, error) {
	if acct, ok := d.accounts[employeeID]; ok {
		return *acct, nil
	}
	return auth.EmployeeAccount{}, auth.ErrEmployeeNotFound
}

func (d *stubDirectory) VerifyAppPassword(_ context.Context, employeeID string, password string) (bool, error) {
	stored, ok := d.passwords[employeeID]
	if !ok {
		return false, auth.ErrPasswordNotSet
	}
	return stored == password, nil
}

func (d *stubDirectory) BindDevice(_ context.Context, employeeID string, device auth.DeviceInfo) error {
	d.boundDevice = &device
	acct := d.accounts[employeeID]
	acct.DeviceID = device.DeviceID
	acct.DeviceModel = device.DeviceModel
	acct.DeviceBrand = device.DeviceBrand
	return nil
}

func (d *stubDirectory) ClearDevice(_ context.Context, employeeID string) error {
	d.clearedFor = employeeID
	acct := d.accounts[employeeID]
	acct.DeviceID = ""
	acct.DeviceModel = ""
	acct.DeviceBrand = ""
	return nil
}

func (d *stubDirectory) SetAppPassword(_ context.Context, employeeID string, password string, clearResetFlag bool) error {
	d.setPasswords[employeeID] = password
	d.passwords[employeeID] = password
	if clearResetFlag {
		d.accounts[employeeID].RequirePasswordReset = false
	}
	return nil
}

type stubSessions struct {
	created    []string
	revoked    map[string]bool
	revokedAll []string
	touched    int
	missing    bool
}

func newStubSessions() *stubSessions {
	return &stubSessions{revoked: map[string]bool{}}
}

func (s *stubSessions) CreateRefreshToken(_ context.Context, _, _, token string, _ int64, _ auth.SessionTrackingRequest) error {
	s.created = append(s.created, token)
	return nil
}

func (s *stubSessions) IsRefreshTokenRevoked(_ context.Context, token string) (bool, error) {
	return s.revoked[token], nil
}

func (s *stubSessions) RevokeRefreshToken(_ context.Context, token string) error {
	s.revoked[token] = true
	return nil
}

func (s *stubSessions) RevokeEmployeeTokens(_ context.Context, employeeID string) error {
	s.revokedAll = append(s.revokedAll, employeeID)
	return nil
}

func (s *stubSessions) TouchSession(_ context.Context, _, _ string) error {
	s.touched++
	return nil
}

const testJWTSecret = "test-secret-key-for-jwt"

func testAccount() *auth.EmployeeAccount {
	return &auth.EmployeeAccount{
		EmployeeID:   "EMP-001",
		EmployeeName: "Asha Nair",
		AppID:        "asha.nair",
		AllowESS:     true,
		Role:         "employee",
	}
}

func testDevice() auth.DeviceInfo {
	return auth.DeviceInfo{DeviceID: "dev-123", DeviceModel: "Pixel 8", DeviceBrand: "Google"}
}

func loginRequest() auth.LoginRequest {
	return auth.LoginRequest{
		AppID:       "asha.nair",
		AppPassword: "password123",
		DeviceID:    "dev-123",
		DeviceModel: "Pixel 8",
		DeviceBrand: "Google",
	}
}

func newTestService(dir *stubDirectory, sessions *stubSessions) auth.AuthService {
	return NewAuthService(dir, sessions, jwt.NewJWTService(testJWTSecret, "1h", "24h"))
}

func TestAuthService_Login_FirstLoginBindsDevice(t *testing.T) {
	dir := newStubDirectory(testAccount())
	dir.passwords["EMP-001"] = "password123"
	sessions := newStubSessions()
	svc := newTestService(dir, sessions)

	resp, err := svc.Login(context.Background(), loginRequest(), auth.SessionTrackingRequest{})
	require.NoError(t, err)

	assert.Equal(t, "EMP-001", resp.EmployeeID)
	assert.Equal(t, "dev-123", resp.DeviceID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	require.NotNil(t, dir.boundDevice)
	assert.Equal(t, testDevice(), *dir.boundDevice)
	assert.Equal(t, 1, sessions.touched)
	assert.Len(t, sessions.created, 1)
}

func TestAuthService_Login_BoundDeviceMustMatch(t *testing.T) {
	acct := testAccount()
	acct.DeviceID = "other-device"
	acct.DeviceModel = "Galaxy S24"
	acct.DeviceBrand = "Samsung"
	dir := newStubDirectory(acct)
	dir.passwords["EMP-001"] = "password123"
	svc := newTestService(dir, newStubSessions())

	_, err := svc.Login(context.Background(), loginRequest(), auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrDeviceMismatch)
}

func TestAuthService_Login_SameDeviceLogsInAgain(t *testing.T) {
	acct := testAccount()
	acct.DeviceID = "dev-123"
	acct.DeviceModel = "Pixel 8"
	acct.DeviceBrand = "Google"
	dir := newStubDirectory(acct)
	dir.passwords["EMP-001"] = "password123"
	svc := newTestService(dir, newStubSessions())

	resp, err := svc.Login(context.Background(), loginRequest(), auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.Nil(t, dir.boundDevice)
	assert.Equal(t, "dev-123", resp.DeviceID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	dir := newStubDirectory(testAccount())
	dir.passwords["EMP-001"] = "password123"
	svc := newTestService(dir, newStubSessions())

	req := loginRequest()
	req.AppPassword = "wrong"
	_, err := svc.Login(context.Background(), req, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownAppIDHidesExistence(t *testing.T) {
	svc := newTestService(newStubDirectory(), newStubSessions())

	req := loginRequest()
	req.AppID = "nobody"
	_, err := svc.Login(context.Background(), req, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_ESSDisabled(t *testing.T) {
	acct := testAccount()
	acct.AllowESS = false
	dir := newStubDirectory(acct)
	dir.passwords["EMP-001"] = "password123"
	svc := newTestService(dir, newStubSessions())

	_, err := svc.Login(context.Background(), loginRequest(), auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrESSDisabled)
}

func TestAuthService_Login_SurfacesPasswordResetFlag(t *testing.T) {
	acct := testAccount()
	acct.RequirePasswordReset = true
	dir := newStubDirectory(acct)
	dir.passwords["EMP-001"] = "password123"
	svc := newTestService(dir, newStubSessions())

	resp, err := svc.Login(context.Background(), loginRequest(), auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.True(t, resp.RequirePasswordReset)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	acct := testAccount()
	acct.DeviceID = "dev-123"
	acct.DeviceModel = "Pixel 8"
	acct.DeviceBrand = "Google"
	dir := newStubDirectory(acct)
	dir.passwords["EMP-001"] = "password123"
	sessions := newStubSessions()
	svc := newTestService(dir, sessions)

	login, err := svc.Login(context.Background(), loginRequest(), auth.SessionTrackingRequest{})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: login.RefreshToken}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// the old token was revoked by the rotation
	assert.True(t, sessions.revoked[login.RefreshToken])
	_, err = svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: login.RefreshToken}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_Refresh_DeviceResetInvalidates(t *testing.T) {
	acct := testAccount()
	acct.DeviceID = "dev-123"
	acct.DeviceModel = "Pixel 8"
	acct.DeviceBrand = "Google"
	dir := newStubDirectory(acct)
	dir.passwords["EMP-001"] = "password123"
	svc := newTestService(dir, newStubSessions())

	login, err := svc.Login(context.Background(), loginRequest(), auth.SessionTrackingRequest{})
	require.NoError(t, err)

	acct.DeviceID = ""
	_, err = svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: login.RefreshToken}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrDeviceMismatch)
}

func TestAuthService_Refresh_GarbageToken(t *testing.T) {
	svc := newTestService(newStubDirectory(), newStubSessions())
	_, err := svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: "not-a-jwt"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Logout(t *testing.T) {
	dir := newStubDirectory(testAccount())
	dir.passwords["EMP-001"] = "password123"
	sessions := newStubSessions()
	svc := newTestService(dir, sessions)

	login, err := svc.Login(context.Background(), loginRequest(), auth.SessionTrackingRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))
	assert.True(t, sessions.revoked[login.RefreshToken])

	assert.ErrorIs(t, svc.Logout(context.Background(), "not-a-jwt"), auth.ErrInvalidToken)
}

func authedContext(t *testing.T, employeeID, role string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte(testJWTSecret), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        role,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestAuthService_ResetPassword_ClearsFlag(t *testing.T) {
	acct := testAccount()
	acct.RequirePasswordReset = true
	dir := newStubDirectory(acct)
	svc := newTestService(dir, newStubSessions())

	err := svc.ResetPassword(authedContext(t, "EMP-001", "employee"), auth.ResetPasswordRequest{NewPassword: "new-password-1"})
	require.NoError(t, err)

	assert.Equal(t, "new-password-1", dir.setPasswords["EMP-001"])
	assert.False(t, acct.RequirePasswordReset)
}

func TestAuthService_ChangePassword(t *testing.T) {
	acct := testAccount()
	dir := newStubDirectory(acct)
	dir.passwords["EMP-001"] = "old-password"
	svc := newTestService(dir, newStubSessions())

	t.Run("wrong old password", func(t *testing.T) {
		err := svc.ChangePassword(authedContext(t, "EMP-001", "employee"), auth.ChangePasswordRequest{
			OldPassword: "guess",
			NewPassword: "new-password-1",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("correct old password", func(t *testing.T) {
		err := svc.ChangePassword(authedContext(t, "EMP-001", "employee"), auth.ChangePasswordRequest{
			OldPassword: "old-password",
			NewPassword: "new-password-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "new-password-1", dir.setPasswords["EMP-001"])
	})
}

func TestAuthService_ResetDevice(t *testing.T) {
	acct := testAccount()
	acct.DeviceID = "dev-123"
	dir := newStubDirectory(acct)
	sessions := newStubSessions()
	svc := newTestService(dir, sessions)

	t.Run("employee role is rejected", func(t *testing.T) {
		err := svc.ResetDevice(authedContext(t, "EMP-002", "employee"), "EMP-001")
		assert.ErrorIs(t, err, auth.ErrNotPermitted)
	})

	t.Run("hr role clears binding and sessions", func(t *testing.T) {
		err := svc.ResetDevice(authedContext(t, "EMP-HR", RoleHR), "EMP-001")
		require.NoError(t, err)
		assert.Equal(t, "EMP-001", dir.clearedFor)
		assert.Empty(t, acct.DeviceID)
		assert.Contains(t, sessions.revokedAll, "EMP-001")
	})

	t.Run("unknown employee", func(t *testing.T) {
		err := svc.ResetDevice(authedContext(t, "EMP-HR", RoleHR), "EMP-404")
		assert.ErrorIs(t, err, auth.ErrEmployeeNotFound)
	})
}
