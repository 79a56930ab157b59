package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/subseadata/ifdocatalog/models"
)

// InitGormDB initializes and returns a GORM database instance
func InitGormDB(dataSourceName string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("GORM Database initialized successfully at", dataSourceName)
	return db, nil
}

// AutoMigrateModels can be called after InitGormDB to migrate schemas
// It's placed here for convenience but should be called selectively
func AutoMigrateModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Creator{},
		&models.Context{},
		&models.Project{},
		&models.PI{},
		&models.License{},
		&models.Event{},
		&models.Platform{},
		&models.Sensor{},
		&models.RelatedMaterial{},
		&models.ImageCameraPose{},
		&models.ImageCameraHousingViewport{},
		&models.ImageFlatportParameter{},
		&models.ImageDomeportParameter{},
		&models.ImagePhotometricCalibration{},
		&models.ImageCameraCalibrationModel{},
		&models.ImageSet{},
		&models.ImageSetCreator{},
		&models.ImageSetRelatedMaterial{},
		&models.Image{},
		&models.ImageCreator{},
		&models.AnnotationSet{},
		&models.AnnotationSetCreator{},
		&models.AnnotationSetImageSet{},
		&models.Label{},
		&models.Annotator{},
		&models.Annotation{},
		&models.AnnotationLabel{},
	)
	if err != nil {
		return fmt.Errorf("GORM AutoMigrate failed: %w", err)
	}
	log.Println("GORM AutoMigrate completed successfully.")
	return nil
}
