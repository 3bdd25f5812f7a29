package riverkit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTransactionMonitor tests the metric aggregation
func TestTransactionMonitor(t *testing.T) {
	t.Run("Records successes and failures", func(t *testing.T) {
		monitor := newTransactionMonitor()
		monitor.recordTransaction(10*time.Millisecond, true)
		monitor.recordTransaction(30*time.Millisecond, false)

		metrics := monitor.getMetrics()
		assert.Equal(t, int64(2), metrics.TotalTransactions)
		assert.Equal(t, int64(1), metrics.SuccessfulTransactions)
		assert.Equal(t, int64(1), metrics.FailedTransactions)
		assert.Equal(t, 20*time.Millisecond, metrics.AverageDuration)
		assert.Equal(t, 30*time.Millisecond, metrics.MaxDuration)
		assert.Equal(t, 10*time.Millisecond, metrics.MinDuration)
	})

	t.Run("Empty monitor", func(t *testing.T) {
		metrics := newTransactionMonitor().getMetrics()
		assert.Zero(t, metrics.TotalTransactions)
		assert.Zero(t, metrics.AverageDuration)
	})

	t.Run("Reset clears the counters", func(t *testing.T) {
		monitor := newTransactionMonitor()
		monitor.recordTransaction(time.Millisecond, true)
		before := monitor.getMetrics().LastReset

		time.Sleep(time.Millisecond)
		monitor.reset()

		metrics := monitor.getMetrics()
		assert.Zero(t, metrics.TotalTransactions)
		assert.True(t, metrics.LastReset.After(before))
	})
}

// TestTransactions tests commit, rollback and metrics against the store
func TestTransactions(t *testing.T) {
	helper := NewTestDataHelper(t)
	if helper == nil {
		return
	}

	service := helper.GetService()
	ctx := helper.GetContext()
	service.ResetTransactionMetrics()

	supervisor := helper.CreateSupervisor("Tx Supervisor")

	t.Run("Commit persists the work", func(t *testing.T) {
		name := uniqueEmail("tx-zone")
		err := service.Transaction(ctx, func(ctx context.Context) error {
			_, err := service.CreateZone(ctx, supervisor, name)
			return err
		})
		require.NoError(t, err)

		metrics := service.GetTransactionMetrics()
		assert.Equal(t, int64(1), metrics.SuccessfulTransactions)
	})

	t.Run("Error rolls back and counts as failure", func(t *testing.T) {
		sentinel := errors.New("abort")
		err := service.Transaction(ctx, func(ctx context.Context) error {
			return sentinel
		})
		assert.Error(t, err)

		metrics := service.GetTransactionMetrics()
		assert.Equal(t, int64(1), metrics.FailedTransactions)
	})

	t.Run("Read-only transaction serves listings", func(t *testing.T) {
		err := service.ReadOnlyTransaction(ctx, func(ctx context.Context) error {
			if _, err := service.Occurrences(ctx, supervisor, ""); err != nil {
				return err
			}
			_, err := service.UnreadCount(ctx, supervisor.ID)
			return err
		})
		assert.NoError(t, err)
	})

	t.Run("Transaction on an unsupported handle fails", func(t *testing.T) {
		bare := NewService(nil)
		err := bare.Transaction(ctx, func(ctx context.Context) error { return nil })
		assert.Error(t, err)
	})
}
