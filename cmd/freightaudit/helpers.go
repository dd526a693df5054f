package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/freight-audit/internal/common"
	"github.com/Veraticus/freight-audit/internal/config"
	"github.com/Veraticus/freight-audit/internal/fields"
	"github.com/Veraticus/freight-audit/internal/storage"
)

func databasePath() string {
	if p := viper.GetString("database.path"); p != "" {
		return config.ExpandPath(p)
	}
	return config.DefaultDatabasePath()
}

// openStorage opens and migrates the audit history database.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(databasePath())
	if err != nil {
		return nil, common.NewUserError("could not open audit history", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate audit history: %w", err)
	}
	return store, nil
}

// parseToday reads a --today override, defaulting to the current date.
func parseToday(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	t, ok := fields.ParseDate(raw)
	if !ok {
		return time.Time{}, common.NewUserError(fmt.Sprintf("invalid --today date %q, expected YYYY-MM-DD", raw), common.ErrInvalidConfig)
	}
	return t, nil
}
