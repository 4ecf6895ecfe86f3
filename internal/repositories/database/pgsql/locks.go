package pgsql

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5"
)

// tenantPeriodLockKey derives the advisory lock key guarding period state for
// one tenant. Postings hold it shared, period closes hold it exclusive, so a
// close never interleaves with an in-flight posting for the same tenant.
func tenantPeriodLockKey(tenantID string) int64 {
	h := fnv.New64a()
	h.Write([]byte("period:" + tenantID))
	return int64(h.Sum64())
}

// acquireSharedPeriodLock takes the tenant period lock in shared mode for the
// lifetime of the transaction.
func acquireSharedPeriodLock(ctx context.Context, tx pgx.Tx, tenantID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock_shared($1);`, tenantPeriodLockKey(tenantID)); err != nil {
		return fmt.Errorf("failed to acquire shared period lock for tenant %s: %w", tenantID, err)
	}
	return nil
}

// acquireExclusivePeriodLock takes the tenant period lock exclusively for the
// lifetime of the transaction.
func acquireExclusivePeriodLock(ctx context.Context, tx pgx.Tx, tenantID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, tenantPeriodLockKey(tenantID)); err != nil {
		return fmt.Errorf("failed to acquire exclusive period lock for tenant %s: %w", tenantID, err)
	}
	return nil
}
