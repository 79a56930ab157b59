package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/validation"
)

type annotationFixture struct {
	repo       *AnnotationRepository
	labels     *LabelRepository
	image      *models.Image
	set        *models.AnnotationSet
	label      *models.Label
	annotation *models.Annotation
}

func newAnnotationFixture(t *testing.T, db *gorm.DB) *annotationFixture {
	t.Helper()
	setRepo := NewImageSetRepository(db)
	imgRepo := NewImageRepository(db)
	annSetRepo := NewAnnotationSetRepository(db)
	labelRepo := NewLabelRepository(db)
	repo := NewAnnotationRepository(db)

	imageSet := mustCreateImageSet(t, setRepo, "fixture-set")
	fn := "a.jpg"
	image, err := imgRepo.Create(&models.ImageInput{ImageSetID: &imageSet.ID, Filename: &fn})
	require.NoError(t, err)

	setName := "fixture-annotations"
	annSet, err := annSetRepo.Create(&models.AnnotationSetInput{Name: &setName})
	require.NoError(t, err)

	label, err := labelRepo.Create(&models.LabelInput{
		Name:            strPtr("Porifera"),
		ParentLabelName: strPtr("Animalia"),
		AnnotationSetID: &annSet.ID,
	})
	require.NoError(t, err)

	shape := models.ShapeSinglePixel
	annotation, err := repo.Create(&models.AnnotationInput{
		ImageID:         &image.ID,
		AnnotationSetID: &annSet.ID,
		Shape:           &shape,
		Coordinates:     models.Coordinates{{4, 5}},
	})
	require.NoError(t, err)

	return &annotationFixture{
		repo:       repo,
		labels:     labelRepo,
		image:      image,
		set:        annSet,
		label:      label,
		annotation: annotation,
	}
}

func TestAnnotationCreateRequirements(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnnotationRepository(db)

	_, err := repo.Create(&models.AnnotationInput{})
	require.Error(t, err)
	fields := validationFields(t, err)
	assert.Contains(t, fields, "image_id")
	assert.Contains(t, fields, "annotation_set_id")
	assert.Contains(t, fields, "shape")
}

func TestAnnotationLabelUniqueTriple(t *testing.T) {
	db := setupTestDB(t)
	f := newAnnotationFixture(t, db)

	in := &models.AnnotationLabelInput{
		LabelID:          &f.label.ID,
		AnnotationID:     &f.annotation.ID,
		Annotator:        &models.NamedRefInput{Name: "Alice"},
		CreationDatetime: strPtr("2021-01-01T00:00:00Z"),
	}
	first, err := f.repo.CreateAnnotationLabel(in)
	require.NoError(t, err)
	require.NotNil(t, first.AnnotatorID)

	_, err = f.repo.CreateAnnotationLabel(in)
	require.Error(t, err)
	fields := validationFields(t, err)
	assert.Equal(t, []string{"The fields label, annotation, annotator must make a unique set."},
		fields[validation.NonFieldErrors])

	// a different annotator makes a new triple
	in.Annotator = &models.NamedRefInput{Name: "Bob"}
	_, err = f.repo.CreateAnnotationLabel(in)
	require.NoError(t, err)
}

func TestAnnotationLabelNilAnnotatorTriple(t *testing.T) {
	db := setupTestDB(t)
	f := newAnnotationFixture(t, db)

	in := &models.AnnotationLabelInput{
		LabelID:          &f.label.ID,
		AnnotationID:     &f.annotation.ID,
		CreationDatetime: strPtr("2021-01-01T00:00:00Z"),
	}
	_, err := f.repo.CreateAnnotationLabel(in)
	require.NoError(t, err)

	_, err = f.repo.CreateAnnotationLabel(in)
	require.Error(t, err)
	fields := validationFields(t, err)
	assert.Contains(t, fields, validation.NonFieldErrors)
}

func TestAnnotationLabelAnnotatorReuse(t *testing.T) {
	db := setupTestDB(t)
	f := newAnnotationFixture(t, db)

	shape := models.ShapeCircle
	second, err := f.repo.Create(&models.AnnotationInput{
		ImageID:         &f.image.ID,
		AnnotationSetID: &f.set.ID,
		Shape:           &shape,
		Coordinates:     models.Coordinates{{4, 5, 2}},
	})
	require.NoError(t, err)

	mk := func(annID uuid.UUID) *models.AnnotationLabelInput {
		return &models.AnnotationLabelInput{
			LabelID:          &f.label.ID,
			AnnotationID:     &annID,
			Annotator:        &models.NamedRefInput{Name: "Alice"},
			CreationDatetime: strPtr("2021-01-01T00:00:00Z"),
		}
	}
	a, err := f.repo.CreateAnnotationLabel(mk(f.annotation.ID))
	require.NoError(t, err)
	b, err := f.repo.CreateAnnotationLabel(mk(second.ID))
	require.NoError(t, err)
	assert.Equal(t, *a.AnnotatorID, *b.AnnotatorID)

	var count int64
	require.NoError(t, db.Model(&models.Annotator{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteAnnotatorClearsReferences(t *testing.T) {
	db := setupTestDB(t)
	f := newAnnotationFixture(t, db)

	row, err := f.repo.CreateAnnotationLabel(&models.AnnotationLabelInput{
		LabelID:          &f.label.ID,
		AnnotationID:     &f.annotation.ID,
		Annotator:        &models.NamedRefInput{Name: "Alice"},
		CreationDatetime: strPtr("2021-01-01T00:00:00Z"),
	})
	require.NoError(t, err)
	require.NotNil(t, row.AnnotatorID)

	require.NoError(t, f.repo.DeleteAnnotator(*row.AnnotatorID))

	reloaded, err := f.repo.GetAnnotationLabelByID(row.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.AnnotatorID)
}

func TestUpdateAnnotationLabel(t *testing.T) {
	db := setupTestDB(t)
	f := newAnnotationFixture(t, db)

	row, err := f.repo.CreateAnnotationLabel(&models.AnnotationLabelInput{
		LabelID:          &f.label.ID,
		AnnotationID:     &f.annotation.ID,
		Annotator:        &models.NamedRefInput{Name: "Alice"},
		CreationDatetime: strPtr("2021-01-01T00:00:00Z"),
	})
	require.NoError(t, err)

	updated, err := f.repo.UpdateAnnotationLabel(row.ID, &models.AnnotationLabelInput{
		Annotator:        &models.NamedRefInput{Name: "Bob"},
		CreationDatetime: strPtr("2022-02-02T00:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2022-02-02T00:00:00Z", updated.CreationDatetime)
	assert.NotEqual(t, *row.AnnotatorID, *updated.AnnotatorID)

	// the untouched relations survive the partial update
	assert.Equal(t, f.label.ID, updated.LabelID)
	assert.Equal(t, f.annotation.ID, updated.AnnotationID)
}

func TestUpdateAnnotationLabelDuplicateTriple(t *testing.T) {
	db := setupTestDB(t)
	f := newAnnotationFixture(t, db)

	mk := func(name string) *models.AnnotationLabelInput {
		return &models.AnnotationLabelInput{
			LabelID:          &f.label.ID,
			AnnotationID:     &f.annotation.ID,
			Annotator:        &models.NamedRefInput{Name: name},
			CreationDatetime: strPtr("2021-01-01T00:00:00Z"),
		}
	}
	_, err := f.repo.CreateAnnotationLabel(mk("Alice"))
	require.NoError(t, err)
	second, err := f.repo.CreateAnnotationLabel(mk("Bob"))
	require.NoError(t, err)

	// moving Bob's row onto Alice's triple collides
	_, err = f.repo.UpdateAnnotationLabel(second.ID, &models.AnnotationLabelInput{
		Annotator: &models.NamedRefInput{Name: "Alice"},
	})
	require.Error(t, err)
	fields := validationFields(t, err)
	assert.Equal(t, []string{"The fields label, annotation, annotator must make a unique set."},
		fields[validation.NonFieldErrors])

	// re-saving the same triple onto itself is fine
	_, err = f.repo.UpdateAnnotationLabel(second.ID, &models.AnnotationLabelInput{
		Annotator: &models.NamedRefInput{Name: "Bob"},
	})
	require.NoError(t, err)
}

func TestUpdateAnnotator(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnnotationRepository(db)

	a, err := repo.CreateAnnotator("Alice")
	require.NoError(t, err)
	_, err = repo.CreateAnnotator("Bob")
	require.NoError(t, err)

	renamed, err := repo.UpdateAnnotator(a.ID, "Alicia")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", renamed.Name)

	_, err = repo.UpdateAnnotator(a.ID, "Bob")
	require.Error(t, err)
	fields := validationFields(t, err)
	assert.Equal(t, []string{"This field must be unique."}, fields["name"])

	_, err = repo.UpdateAnnotator(a.ID, "")
	require.Error(t, err)
	fields = validationFields(t, err)
	assert.Equal(t, []string{validation.Required}, fields["name"])

	_, err = repo.UpdateAnnotator(uuid.New(), "Carol")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
