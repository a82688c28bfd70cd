package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"blogpress-backend/database"
	"blogpress-backend/models"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "open db")
	require.NoError(t, db.AutoMigrate(&models.Post{}, &models.Media{}), "migrate")

	server := httptest.NewServer(newRouter(database.New(db)))
	t.Cleanup(server.Close)
	return server
}
