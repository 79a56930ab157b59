package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/subseadata/ifdocatalog/models"
)

func TestGetImageSetSummary(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrateModels(db))

	set := models.ImageSet{Name: "summary-set"}
	require.NoError(t, db.Create(&set).Error)

	imgA := models.Image{ImageSetID: set.ID, Filename: "a.jpg"}
	imgB := models.Image{ImageSetID: set.ID, Filename: "b.jpg"}
	require.NoError(t, db.Create(&imgA).Error)
	require.NoError(t, db.Create(&imgB).Error)

	annSet := models.AnnotationSet{Name: "coverage"}
	require.NoError(t, db.Create(&annSet).Error)
	link := models.AnnotationSetImageSet{AnnotationSetID: annSet.ID, ImageSetID: set.ID}
	require.NoError(t, db.Create(&link).Error)

	ann := models.Annotation{ImageID: imgA.ID, AnnotationSetID: annSet.ID, Shape: models.ShapeWholeImage}
	require.NoError(t, db.Create(&ann).Error)

	summary, err := GetImageSetSummary(db, set.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.ImageCount)
	assert.Equal(t, int64(1), summary.AnnotationSetCount)
	assert.Equal(t, int64(1), summary.AnnotationCount)

	// an unknown set reports zeros rather than an error
	other := models.ImageSet{Name: "empty-set"}
	require.NoError(t, db.Create(&other).Error)
	summary, err = GetImageSetSummary(db, other.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.ImageCount)
	assert.Zero(t, summary.AnnotationSetCount)
	assert.Zero(t, summary.AnnotationCount)
}
