// Package testutil provides an in-memory database with the production
// schema for repository and end-to-end tests.
package testutil

import (
	"fmt"
	"testing"

	authdomain "notespace-backend/internal/auth/domain"
	notedomain "notespace-backend/internal/note/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with foreign keys enabled
// and the users/notes schema migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&authdomain.User{}, &notedomain.Note{}))
	return db
}

// CreateUser inserts a user row directly, bypassing password hashing.
func CreateUser(t *testing.T, db *gorm.DB, username string) *authdomain.User {
	t.Helper()
	user := &authdomain.User{ID: uuid.NewString(), Username: username, Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}
