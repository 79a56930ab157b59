package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/subseadata/ifdocatalog/database"
	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/validation"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))
	return db
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func mustCreateImageSet(t *testing.T, repo *ImageSetRepository, name string) *models.ImageSet {
	t.Helper()
	set, err := repo.Create(&models.ImageSetInput{Name: &name})
	require.NoError(t, err)
	return set
}

func validationFields(t *testing.T, err error) validation.Errors {
	t.Helper()
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}
