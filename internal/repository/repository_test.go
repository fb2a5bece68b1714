package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an isolated in-memory database and migrates every aggregate,
// single connection so transactions serialize the way postgres row locks do.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, NewUserRepo(gdb).Migrate())
	require.NoError(t, NewSupplierRepo(gdb).Migrate())
	require.NoError(t, NewExcursionRepo(gdb).Migrate())
	require.NoError(t, NewCarRepo(gdb).Migrate())
	require.NoError(t, NewBookingRepo(gdb).Migrate())
	return gdb
}
