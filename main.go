package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/subseadata/ifdocatalog/config"
	"github.com/subseadata/ifdocatalog/database"
	"github.com/subseadata/ifdocatalog/handlers"
	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/repository"
	"github.com/subseadata/ifdocatalog/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("WoRMS cached endpoint: %s", cfg.WormsCachedBaseURL)

	imageSetRepo := repository.NewImageSetRepository(db)
	imageRepo := repository.NewImageRepository(db)
	annotationSetRepo := repository.NewAnnotationSetRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	annotationRepo := repository.NewAnnotationRepository(db)
	relatedMaterialRepo := repository.NewRelatedMaterialRepository(db)

	wormsService := services.NewWormsService(cfg.WormsCachedBaseURL, cfg.WormsLiveBaseURL, cfg.WormsTimeout)
	ingestService := services.NewIngestService(db, imageSetRepo, imageRepo)

	imageSetHandler := &handlers.ImageSetHandler{DB: db, Repo: imageSetRepo, Images: imageRepo}
	imageHandler := &handlers.ImageHandler{Repo: imageRepo}
	annotationSetHandler := &handlers.AnnotationSetHandler{Repo: annotationSetRepo}
	labelHandler := &handlers.LabelHandler{Repo: labelRepo, Worms: wormsService}
	annotationHandler := &handlers.AnnotationHandler{Repo: annotationRepo}
	relatedMaterialHandler := &handlers.RelatedMaterialHandler{Repo: relatedMaterialRepo}
	ingestHandler := &handlers.IngestHandler{Service: ingestService}

	creatorHandler := &handlers.NamedHandler[models.Creator, *models.Creator]{
		Repo: repository.NewNamedRepository[models.Creator, *models.Creator](db, "Creator"),
	}
	contextHandler := &handlers.NamedHandler[models.Context, *models.Context]{
		Repo: repository.NewNamedRepository[models.Context, *models.Context](db, "Context"),
	}
	projectHandler := &handlers.NamedHandler[models.Project, *models.Project]{
		Repo: repository.NewNamedRepository[models.Project, *models.Project](db, "Project"),
	}
	piHandler := &handlers.NamedHandler[models.PI, *models.PI]{
		Repo: repository.NewNamedRepository[models.PI, *models.PI](db, "PI"),
	}
	licenseHandler := &handlers.NamedHandler[models.License, *models.License]{
		Repo: repository.NewNamedRepository[models.License, *models.License](db, "License"),
	}
	eventHandler := &handlers.NamedHandler[models.Event, *models.Event]{
		Repo: repository.NewNamedRepository[models.Event, *models.Event](db, "Event"),
	}
	platformHandler := &handlers.NamedHandler[models.Platform, *models.Platform]{
		Repo: repository.NewNamedRepository[models.Platform, *models.Platform](db, "Platform"),
	}
	sensorHandler := &handlers.NamedHandler[models.Sensor, *models.Sensor]{
		Repo: repository.NewNamedRepository[models.Sensor, *models.Sensor](db, "Sensor"),
	}

	cameraPoseHandler := &handlers.CalibrationHandler[models.ImageCameraPose]{
		Repo: repository.NewCalibrationRepository[models.ImageCameraPose](db, "camera pose", "camera_pose_id"),
	}
	housingViewportHandler := &handlers.CalibrationHandler[models.ImageCameraHousingViewport]{
		Repo: repository.NewCalibrationRepository[models.ImageCameraHousingViewport](db, "camera housing viewport", "camera_housing_viewport_id"),
	}
	flatportHandler := &handlers.CalibrationHandler[models.ImageFlatportParameter]{
		Repo: repository.NewCalibrationRepository[models.ImageFlatportParameter](db, "flatport parameter", "flatport_parameter_id"),
	}
	domeportHandler := &handlers.CalibrationHandler[models.ImageDomeportParameter]{
		Repo: repository.NewCalibrationRepository[models.ImageDomeportParameter](db, "domeport parameter", "domeport_parameter_id"),
	}
	photometricHandler := &handlers.CalibrationHandler[models.ImagePhotometricCalibration]{
		Repo: repository.NewCalibrationRepository[models.ImagePhotometricCalibration](db, "photometric calibration", "photometric_calibration_id"),
	}
	cameraCalibrationHandler := &handlers.CalibrationHandler[models.ImageCameraCalibrationModel]{
		Repo: repository.NewCalibrationRepository[models.ImageCameraCalibrationModel](db, "camera calibration model", "camera_calibration_model_id"),
	}

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{cfg.CORSAllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/ingest/image-set", ingestHandler.IngestImageSet)

		r.Route("/image_sets", func(r chi.Router) {
			r.Post("/", imageSetHandler.Create)
			r.Get("/", imageSetHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", imageSetHandler.Get)
				r.Put("/", imageSetHandler.Update)
				r.Delete("/", imageSetHandler.Delete)
				r.Get("/images", imageSetHandler.ListImages)
				r.Get("/summary", imageSetHandler.Summary)
			})
		})

		r.Route("/images", func(r chi.Router) {
			r.Post("/", imageHandler.Create)
			r.Get("/", imageHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", imageHandler.Get)
				r.Put("/", imageHandler.Update)
				r.Delete("/", imageHandler.Delete)
			})
		})

		r.Route("/annotation_sets", func(r chi.Router) {
			r.Post("/", annotationSetHandler.Create)
			r.Get("/", annotationSetHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", annotationSetHandler.Get)
				r.Put("/", annotationSetHandler.Update)
				r.Delete("/", annotationSetHandler.Delete)
			})
		})

		r.Route("/labels", func(r chi.Router) {
			r.Post("/", labelHandler.Create)
			r.Get("/", labelHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", labelHandler.Get)
				r.Put("/", labelHandler.Update)
				r.Delete("/", labelHandler.Delete)
			})
		})

		r.Route("/annotations", func(r chi.Router) {
			r.Post("/", annotationHandler.Create)
			r.Get("/", annotationHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", annotationHandler.Get)
				r.Put("/", annotationHandler.Update)
				r.Delete("/", annotationHandler.Delete)
			})
		})

		r.Route("/annotation_labels", func(r chi.Router) {
			r.Post("/", annotationHandler.CreateLabel)
			r.Get("/", annotationHandler.ListLabels)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", annotationHandler.GetLabel)
				r.Put("/", annotationHandler.UpdateLabel)
				r.Delete("/", annotationHandler.DeleteLabel)
			})
		})

		r.Route("/annotators", func(r chi.Router) {
			r.Post("/", annotationHandler.CreateAnnotator)
			r.Get("/", annotationHandler.ListAnnotators)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", annotationHandler.GetAnnotator)
				r.Put("/", annotationHandler.UpdateAnnotator)
				r.Delete("/", annotationHandler.DeleteAnnotator)
			})
		})

		r.Route("/related_materials", func(r chi.Router) {
			r.Post("/", relatedMaterialHandler.Create)
			r.Get("/", relatedMaterialHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", relatedMaterialHandler.Get)
				r.Put("/", relatedMaterialHandler.Update)
				r.Delete("/", relatedMaterialHandler.Delete)
			})
		})

		registerNamed := func(r chi.Router, path string, h interface {
			Create(http.ResponseWriter, *http.Request)
			List(http.ResponseWriter, *http.Request)
			Get(http.ResponseWriter, *http.Request)
			Update(http.ResponseWriter, *http.Request)
			Delete(http.ResponseWriter, *http.Request)
		}) {
			r.Route(path, func(r chi.Router) {
				r.Post("/", h.Create)
				r.Get("/", h.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Get)
					r.Put("/", h.Update)
					r.Delete("/", h.Delete)
				})
			})
		}

		registerNamed(r, "/creators", creatorHandler)
		registerNamed(r, "/contexts", contextHandler)
		registerNamed(r, "/projects", projectHandler)
		registerNamed(r, "/pis", piHandler)
		registerNamed(r, "/licenses", licenseHandler)
		registerNamed(r, "/events", eventHandler)
		registerNamed(r, "/platforms", platformHandler)
		registerNamed(r, "/sensors", sensorHandler)

		registerNamed(r, "/camera_poses", cameraPoseHandler)
		registerNamed(r, "/camera_housing_viewports", housingViewportHandler)
		registerNamed(r, "/flatport_parameters", flatportHandler)
		registerNamed(r, "/domeport_parameters", domeportHandler)
		registerNamed(r, "/photometric_calibrations", photometricHandler)
		registerNamed(r, "/camera_calibration_models", cameraCalibrationHandler)
	})

	serverAddr := ":" + cfg.Port
	fmt.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
