package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/microfarm/internal/adapters/sqlite"
	"github.com/example/microfarm/internal/ports/secondary"
)

func TestTxRunner_Commit(t *testing.T) {
	database := setupTestDB(t)
	runner := sqlite.NewTxRunner(database)
	customers := sqlite.NewCustomerRepository(database)

	err := runner.InTx(context.Background(), func(ctx context.Context) error {
		return customers.Create(ctx, &secondary.CustomerRecord{Name: "Inside"})
	})
	if err != nil {
		t.Fatalf("InTx failed: %v", err)
	}

	if _, err := customers.GetByName(context.Background(), "Inside"); err != nil {
		t.Errorf("committed row not visible: %v", err)
	}
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	database := setupTestDB(t)
	runner := sqlite.NewTxRunner(database)
	customers := sqlite.NewCustomerRepository(database)

	wantErr := errors.New("boom")
	err := runner.InTx(context.Background(), func(ctx context.Context) error {
		if err := customers.Create(ctx, &secondary.CustomerRecord{Name: "Ghost"}); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("InTx error = %v, want %v", err, wantErr)
	}

	if _, err := customers.GetByName(context.Background(), "Ghost"); err == nil {
		t.Error("rolled-back row still visible")
	}
}

func TestTxRunner_NestedJoinsOuter(t *testing.T) {
	database := setupTestDB(t)
	runner := sqlite.NewTxRunner(database)
	customers := sqlite.NewCustomerRepository(database)

	wantErr := errors.New("outer failure")
	err := runner.InTx(context.Background(), func(ctx context.Context) error {
		inner := runner.InTx(ctx, func(ctx context.Context) error {
			return customers.Create(ctx, &secondary.CustomerRecord{Name: "Nested"})
		})
		if inner != nil {
			return inner
		}
		// The nested call must not have committed on its own.
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("InTx error = %v, want %v", err, wantErr)
	}

	if _, err := customers.GetByName(context.Background(), "Nested"); err == nil {
		t.Error("nested write survived outer rollback")
	}
}
