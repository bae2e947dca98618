package budget

import (
	"log/slog"
	"testing"

	"nations-server/internal/shared/database"
)

func TestGetExecutorPrefersTransaction(t *testing.T) {
	repo := NewRepository(&database.DB{}, slog.Default())

	if got := repo.getExecutor(nil); got != database.Executor(repo.db) {
		t.Error("nil transaction must read through the pool")
	}

	tx := &database.Tx{}
	if got := repo.getExecutor(tx); got != database.Executor(tx) {
		t.Error("an open transaction must carry the read")
	}
}
