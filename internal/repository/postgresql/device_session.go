package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/google/uuid"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/auth"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/database"
)

// SessionRepository persists refresh tokens and their device sessions.
// Tokens are stored hashed; plaintext never reaches the database.
type SessionRepository interface {
	CreateRefreshToken(ctx context.Context, employeeID, deviceID, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeEmployeeTokens(ctx context.Context, employeeID string) error
	TouchSession(ctx context.Context, employeeID, deviceID string) error
}

type sessionRepositoryImpl struct {
	db *database.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *database.DB) SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

// hashToken hashes the input string using SHA256 and encodes the result in base64.
func (r *sessionRepositoryImpl) hashToken(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (r *sessionRepositoryImpl) CreateRefreshToken(ctx context.Context, employeeID, deviceID, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO refresh_tokens (id, employee_id, device_id, token_hash, expires_at, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	tokenHash := r.hashToken(token)
	_, err := q.Exec(ctx, query, uuid.New().String(), employeeID, deviceID, tokenHash, time.Unix(expiresAt, 0).UTC(), sessionReq.UserAgent, sessionReq.IPAddress)
	return err
}

func (r *sessionRepositoryImpl) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT revoked_at, expires_at
		FROM refresh_tokens
		WHERE token_hash = $1
		ORDER BY expires_at DESC
		LIMIT 1
	`
	tokenHash := r.hashToken(token)

	var revokedAt *time.Time
	var expiresAt time.Time

	err := q.QueryRow(ctx, query, tokenHash).Scan(&revokedAt, &expiresAt)
	if err != nil {
		return false, err
	}

	if revokedAt != nil || !expiresAt.After(time.Now()) {
		return true, nil
	}
	return false, nil
}

func (r *sessionRepositoryImpl) RevokeRefreshToken(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`
	tokenHash := r.hashToken(token)
	_, err := q.Exec(ctx, query, tokenHash)
	return err
}

// RevokeEmployeeTokens invalidates every live session for an employee. Used
// when a device binding is reset by HR.
func (r *sessionRepositoryImpl) RevokeEmployeeTokens(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE employee_id = $1 AND revoked_at IS NULL
	`
	_, err := q.Exec(ctx, query, employeeID)
	return err
}

// TouchSession records login activity for the employee's device session row.
func (r *sessionRepositoryImpl) TouchSession(ctx context.Context, employeeID, deviceID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO device_sessions (id, employee_id, device_id, last_login_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (employee_id, device_id)
		DO UPDATE SET last_login_at = NOW()
	`
	_, err := q.Exec(ctx, query, uuid.New().String(), employeeID, deviceID)
	return err
}
