package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReassignOwnershipPrimaryPath(t *testing.T) {
	contacts := newFakeContactRepo()
	contacts.add("old-owner", nil)
	contacts.add("old-owner", nil)
	svc := NewMaintenanceService(contacts, zap.NewNop())

	result, err := svc.ReassignOwnership(context.Background(), "new-owner")
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.ReassignedRows)
	assert.Empty(t, result.PrimaryError)
	assert.True(t, result.Succeeded())
	for _, c := range contacts.contacts {
		assert.Equal(t, "new-owner", c.OwnerID)
	}
}

func TestReassignOwnershipFallsBackWhenBulkFails(t *testing.T) {
	contacts := newFakeContactRepo()
	contacts.add("old-owner", nil)
	contacts.add("new-owner", nil)
	contacts.reassignAllErr = errStorageDown
	svc := NewMaintenanceService(contacts, zap.NewNop())

	result, err := svc.ReassignOwnership(context.Background(), "new-owner")
	require.NoError(t, err)

	assert.Equal(t, errStorageDown.Error(), result.PrimaryError)
	assert.Equal(t, int64(1), result.FallbackRows)
	assert.Empty(t, result.FallbackError)
	assert.True(t, result.Succeeded())
}

func TestReassignOwnershipReportsBothFailures(t *testing.T) {
	contacts := newFakeContactRepo()
	contacts.reassignAllErr = errStorageDown
	contacts.reassignFgnErr = errStorageDown
	svc := NewMaintenanceService(contacts, zap.NewNop())

	result, err := svc.ReassignOwnership(context.Background(), "new-owner")
	require.Error(t, err)

	assert.NotEmpty(t, result.PrimaryError)
	assert.NotEmpty(t, result.FallbackError)
	assert.False(t, result.Succeeded())
}
