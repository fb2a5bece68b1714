package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/excursion-booking/internal/repository"
)

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

	require.NoError(t, repository.NewUserRepo(gdb).Migrate())
	require.NoError(t, repository.NewSupplierRepo(gdb).Migrate())
	require.NoError(t, repository.NewExcursionRepo(gdb).Migrate())
	require.NoError(t, repository.NewCarRepo(gdb).Migrate())
	require.NoError(t, repository.NewBookingRepo(gdb).Migrate())
	return gdb
}

// fakePublisher records published events; optionally fails every publish.
type fakePublisher struct {
	mu     sync.Mutex
	keys   []string
	bodies []any
	fail   bool
}

func (f *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("broker down")
	}
	f.keys = append(f.keys, key)
	f.bodies = append(f.bodies, v)
	return nil
}

func (f *fakePublisher) published() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.keys)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
