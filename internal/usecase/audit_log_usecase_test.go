package usecase

import (
	"context"
	"testing"

	"clinic-records-api/internal/delivery/dto"
	"clinic-records-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogsAreOwnedByCaller(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	cardiology := app.createDepartment(t, "Cardiology")
	houseUserID, houseID := app.registerDoctor(t, "dr_house", cardiology)
	alice := app.registerPatient(t, "alice", houseID)

	_, err := app.auth.Login(ctx, &dto.LoginRequest{Username: "dr_house", Password: "secret123"})
	require.NoError(t, err)

	logs, err := app.auditLogs.GetAuditLogs(ctx, houseUserID)
	require.NoError(t, err)
	require.Equal(t, 2, logs.Total)
	assert.Equal(t, entity.AuditActionUserLogin, logs.Logs[0].Action)
	assert.Equal(t, entity.AuditActionUserRegister, logs.Logs[1].Action)
	require.NotNil(t, logs.Logs[0].User)
	assert.Equal(t, "dr_house", logs.Logs[0].User.Username)

	own, err := app.auditLogs.GetAuditLog(ctx, houseUserID, logs.Logs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditActionUserLogin, own.Action)

	_, err = app.auditLogs.GetAuditLog(ctx, alice, logs.Logs[0].ID)
	assert.Equal(t, ErrAuditLogNotFound, err)
}
