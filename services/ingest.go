package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subseadata/ifdocatalog/ifdo"
	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/repository"
	"github.com/subseadata/ifdocatalog/validation"
)

// IngestService turns a whole iFDO document into one image set plus its
// images. Everything is validated first; nothing is persisted unless every
// record passes, and the writes happen in a single transaction.
type IngestService struct {
	DB        *gorm.DB
	ImageSets *repository.ImageSetRepository
	Images    *repository.ImageRepository
}

// NewIngestService creates a new IngestService.
func NewIngestService(db *gorm.DB, imageSets *repository.ImageSetRepository, images *repository.ImageRepository) *IngestService {
	return &IngestService{DB: db, ImageSets: imageSets, Images: images}
}

// IngestError carries the HTTP status and response body of a failed ingest.
type IngestError struct {
	Status int
	Body   map[string]any
}

func (e *IngestError) Error() string {
	if detail, ok := e.Body["detail"].(string); ok {
		return detail
	}
	return "ingest failed"
}

func ingestDetail(status int, detail string) *IngestError {
	return &IngestError{Status: status, Body: map[string]any{"detail": detail}}
}

// IngestImageSet runs the four-stage pipeline: validate header, validate
// every item, persist, report. Item validation never short-circuits; the
// caller sees every problem in one round trip, keyed by 1-based index.
func (s *IngestService) IngestImageSet(body map[string]any) (map[string]any, *IngestError) {
	ifdoDoc, ok := body["ifdo"].(map[string]any)
	if !ok {
		return nil, ingestDetail(400, "Missing or invalid 'ifdo' object")
	}

	headerIn, err := ifdo.MapImageSetHeader(ifdoDoc)
	if err != nil {
		return nil, ingestDetail(400, err.Error())
	}

	itemsRaw := ifdoDoc["image-set-items"]
	if itemsRaw == nil {
		itemsRaw = []any{}
	}
	items, ok := itemsRaw.([]any)
	if !ok {
		return nil, ingestDetail(400, "ifdo.image-set-items must be a list")
	}

	headerErrs := validateImageSetInput(headerIn)
	if headerIn.Name != nil && *headerIn.Name != "" {
		_, err := s.ImageSets.GetByName(*headerIn.Name)
		if err == nil {
			headerErrs.Add("name", "This field must be unique.")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("ingest: failed to check image set name: %v", err)
			return nil, ingestDetail(500, "Failed to ingest iFDO payload")
		}
	}
	if headerErrs.Any() {
		return nil, &IngestError{Status: 400, Body: map[string]any{"image_set": headerErrs}}
	}

	itemInputs := make([]*models.ImageInput, len(items))
	itemErrors := map[string]any{}
	seenFilenames := map[string]bool{}
	seenHashes := map[string]bool{}
	for i, raw := range items {
		key := strconv.Itoa(i + 1)
		obj, ok := raw.(map[string]any)
		if !ok {
			itemErrors[key] = map[string]any{"detail": "Item must be an object"}
			continue
		}
		in, err := ifdo.MapImageSetItem(obj, uuid.Nil)
		if err != nil {
			itemErrors[key] = map[string]any{"detail": err.Error()}
			continue
		}
		errs := validation.Errors{}
		validation.CheckCommonImageFields(&in.CommonImageFields, errs)
		if seenFilenames[*in.Filename] {
			errs.Add("filename", "Image with this filename already exists in this image set.")
		}
		seenFilenames[*in.Filename] = true
		if in.SHA256Hash != nil && *in.SHA256Hash != "" {
			hash := *in.SHA256Hash
			if seenHashes[hash] {
				errs.Add("sha256_hash", "This field must be unique.")
			} else {
				var count int64
				err := s.DB.Model(&models.Image{}).Where("sha256_hash = ?", hash).Count(&count).Error
				if err != nil {
					log.Printf("ingest: failed to check sha256_hash: %v", err)
					return nil, ingestDetail(500, "Failed to ingest iFDO payload")
				}
				if count > 0 {
					errs.Add("sha256_hash", "This field must be unique.")
				}
			}
			seenHashes[hash] = true
		}
		if errs.Any() {
			itemErrors[key] = errs
			continue
		}
		itemInputs[i] = in
	}

	if len(itemErrors) > 0 {
		return nil, &IngestError{Status: 400, Body: map[string]any{
			"detail":    "One or more image items failed validation",
			"image_set": map[string]any{"name": *headerIn.Name},
			"items":     itemErrors,
		}}
	}

	var set *models.ImageSet
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		created, err := s.ImageSets.CreateTx(tx, headerIn)
		if err != nil {
			return err
		}
		for i, in := range itemInputs {
			setID := created.ID
			in.ImageSetID = &setID
			if _, err := s.Images.CreateTx(tx, in); err != nil {
				return &itemPersistError{index: i + 1, err: err}
			}
		}
		set = created
		return nil
	})
	if txErr != nil {
		return nil, s.persistError(txErr, headerIn)
	}

	return map[string]any{
		"message":      "Ingested iFDO payload successfully",
		"image_set_id": set.ID,
		"image_count":  len(itemInputs),
	}, nil
}

// itemPersistError remembers which item a persistence-stage failure
// belongs to, so the response can key it by index like validation errors.
type itemPersistError struct {
	index int
	err   error
}

func (e *itemPersistError) Error() string { return e.err.Error() }
func (e *itemPersistError) Unwrap() error { return e.err }

func (s *IngestService) persistError(err error, headerIn *models.ImageSetInput) *IngestError {
	var itemErr *itemPersistError
	if errors.As(err, &itemErr) {
		if fields := fieldErrors(itemErr.err); fields != nil {
			return &IngestError{Status: 400, Body: map[string]any{
				"detail":    "One or more image items failed validation",
				"image_set": map[string]any{"name": *headerIn.Name},
				"items":     map[string]any{strconv.Itoa(itemErr.index): fields},
			}}
		}
		log.Printf("ingest: failed to persist image %d: %v", itemErr.index, itemErr.err)
		return ingestDetail(500, "Failed to ingest iFDO payload")
	}
	if fields := fieldErrors(err); fields != nil {
		return &IngestError{Status: 400, Body: map[string]any{"image_set": fields}}
	}
	log.Printf("ingest: failed to persist image set: %v", err)
	return ingestDetail(500, "Failed to ingest iFDO payload")
}

// fieldErrors extracts the field map from validation and conflict errors.
func fieldErrors(err error) validation.Errors {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return vErr.Fields
	}
	var cErr *validation.ConflictError
	if errors.As(err, &cErr) {
		return cErr.Fields
	}
	return nil
}

// validateImageSetInput applies the image set creation rules to a mapped
// header payload.
func validateImageSetInput(in *models.ImageSetInput) validation.Errors {
	errs := validation.Errors{}
	if in.Name == nil || *in.Name == "" {
		errs.Add("name", validation.Required)
	}
	validation.CheckCommonImageFields(&in.CommonImageFields, errs)
	validation.CheckBoundingBox(in, nil, errs)
	for i, c := range in.Creators {
		if c.Name == "" {
			errs.Add("creators", fmt.Sprintf("creators[%d].name is required", i))
		}
	}
	return errs
}
