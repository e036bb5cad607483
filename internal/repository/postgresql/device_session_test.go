package postgresql

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/auth"
)

// recordingTx satisfies pgx.Tx so repository writes can be inspected
// without a live database.
type recordingTx struct {
	sqls []string
	args [][]any
}

func (t *recordingTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	t.sqls = append(t.sqls, sql)
	t.args = append(t.args, arguments)
	return pgconn.CommandTag{}, nil
}

func (t *recordingTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *recordingTx) Commit(ctx context.Context) error          { return nil }
func (t *recordingTx) Rollback(ctx context.Context) error        { return nil }
func (t *recordingTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *recordingTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *recordingTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *recordingTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *recordingTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *recordingTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *recordingTx) Conn() *pgx.Conn                                               { return nil }

func txContext(tx pgx.Tx) context.Context {
	return context.WithValue(context.Background(), "tx", tx)
}

func TestCreateRefreshToken_GeneratesRowID(t *testing.T) {
	tx := &recordingTx{}
	repo := NewSessionRepository(nil)

	err := repo.CreateRefreshToken(txContext(tx), "EMP-001", "device-1", "plain-refresh-token",
		time.Now().Add(24*time.Hour).Unix(), auth.SessionTrackingRequest{UserAgent: "ess-app", IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	require.Len(t, tx.args, 1)

	args := tx.args[0]
	require.Len(t, args, 7)

	id, ok := args[0].(string)
	require.True(t, ok)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "row id should be a generated uuid")

	assert.Equal(t, "EMP-001", args[1])
	assert.Equal(t, "device-1", args[2])
	assert.NotEqual(t, "plain-refresh-token", args[3], "token must be stored hashed")
}

func TestTouchSession_GeneratesRowID(t *testing.T) {
	tx := &recordingTx{}
	repo := NewSessionRepository(nil)

	err := repo.TouchSession(txContext(tx), "EMP-001", "device-1")
	require.NoError(t, err)
	require.Len(t, tx.args, 1)

	args := tx.args[0]
	require.Len(t, args, 3)

	id, ok := args[0].(string)
	require.True(t, ok)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	assert.True(t, strings.Contains(tx.sqls[0], "ON CONFLICT (employee_id, device_id)"))
}

func TestRefreshTokenWrites_NeverStorePlaintext(t *testing.T) {
	tx := &recordingTx{}
	repo := NewSessionRepository(nil)
	ctx := txContext(tx)

	require.NoError(t, repo.RevokeRefreshToken(ctx, "plain-refresh-token"))
	require.Len(t, tx.args, 1)
	assert.NotContains(t, tx.args[0], "plain-refresh-token")
}
