//go:build integration
// +build integration

package sweeper_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/giastylez/image-board/backend/internal/database"
	"github.com/giastylez/image-board/backend/internal/models"
	"github.com/giastylez/image-board/backend/internal/sweeper"
)

var testDB database.Service

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Failed to get connection string: %v", err)
	}

	testDB, err = database.NewWithDSN(connStr)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}

	code := m.Run()

	_ = testDB.Close()
	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate container: %v", err)
	}
	os.Exit(code)
}

func resetDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testDB.GetDB()
	for _, model := range []interface{}{
		&models.Like{}, &models.Vote{}, &models.Comment{}, &models.Image{}, &models.User{},
	} {
		require.NoError(t, db.Where("1 = 1").Delete(model).Error)
	}
	return db
}

func seedImage(t *testing.T, db *gorm.DB, age time.Duration) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, db.Create(&models.Image{
		ID:        id,
		Title:     "seeded",
		ImageData: "aGVsbG8=",
		UserID:    uuid.NewString(),
		CreatedAt: time.Now().UTC().Add(-age),
	}).Error)
	return id
}

func countWhere(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestSweep_DeletesExpiredImagesWithChildren(t *testing.T) {
	db := resetDB(t)

	oldID := seedImage(t, db, 72*time.Hour)
	freshID := seedImage(t, db, time.Hour)

	require.NoError(t, db.Create(&models.Comment{
		ID: uuid.NewString(), ImageID: oldID, UserID: uuid.NewString(), Content: "stale",
	}).Error)
	require.NoError(t, db.Create(&models.Vote{
		ID: uuid.NewString(), ImageID: oldID, UserID: uuid.NewString(), VoteType: models.VoteUp,
	}).Error)
	require.NoError(t, db.Create(&models.Like{
		ID: uuid.NewString(), ImageID: oldID, UserID: uuid.NewString(),
	}).Error)
	require.NoError(t, db.Create(&models.Comment{
		ID: uuid.NewString(), ImageID: freshID, UserID: uuid.NewString(), Content: "fresh",
	}).Error)

	require.NoError(t, sweeper.NewWithWindow(db, 48*time.Hour, time.Hour).Sweep())

	assert.EqualValues(t, 0, countWhere(t, db, &models.Image{}, "id = ?", oldID))
	assert.EqualValues(t, 0, countWhere(t, db, &models.Comment{}, "image_id = ?", oldID))
	assert.EqualValues(t, 0, countWhere(t, db, &models.Vote{}, "image_id = ?", oldID))
	assert.EqualValues(t, 0, countWhere(t, db, &models.Like{}, "image_id = ?", oldID))

	assert.EqualValues(t, 1, countWhere(t, db, &models.Image{}, "id = ?", freshID))
	assert.EqualValues(t, 1, countWhere(t, db, &models.Comment{}, "image_id = ?", freshID))
}

func TestSweep_ExactlyAtCutoffSurvives(t *testing.T) {
	db := resetDB(t)

	// Only strictly-older-than-cutoff images are removed.
	boundaryID := seedImage(t, db, 48*time.Hour-time.Second)
	require.NoError(t, sweeper.NewWithWindow(db, 48*time.Hour, time.Hour).Sweep())

	assert.EqualValues(t, 1, countWhere(t, db, &models.Image{}, "id = ?", boundaryID))
}

func TestRun_SweepsImmediatelyAndStopsOnCancel(t *testing.T) {
	db := resetDB(t)
	oldID := seedImage(t, db, 72*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.NewWithWindow(db, 48*time.Hour, time.Hour).Run(ctx)
		close(done)
	}()

	// The first sweep happens before the first tick.
	require.Eventually(t, func() bool {
		return countWhere(t, db, &models.Image{}, "id = ?", oldID) == 0
	}, 10*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
