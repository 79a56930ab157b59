package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subseadata/ifdocatalog/models"
)

func newLabelFixture(t *testing.T) (*LabelRepository, *models.AnnotationSet) {
	t.Helper()
	db := setupTestDB(t)
	annSetRepo := NewAnnotationSetRepository(db)
	name := "label-fixture"
	annSet, err := annSetRepo.Create(&models.AnnotationSetInput{Name: &name})
	require.NoError(t, err)
	return NewLabelRepository(db), annSet
}

func TestLabelCreateRequirements(t *testing.T) {
	repo, _ := newLabelFixture(t)

	_, err := repo.Create(&models.LabelInput{})
	require.Error(t, err)
	fields := validationFields(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "parent_label_name")
	assert.Contains(t, fields, "annotation_set_id")
}

func TestLabelCreateAndDefaults(t *testing.T) {
	repo, annSet := newLabelFixture(t)

	label, err := repo.Create(&models.LabelInput{
		Name:            strPtr("Porifera"),
		ParentLabelName: strPtr("Animalia"),
		LowestAphiaID:   strPtr("558"),
		AnnotationSetID: &annSet.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Porifera", label.Name)
	assert.False(t, label.NameIsLowest)
	require.NotNil(t, label.LowestAphiaID)
	assert.Equal(t, "558", *label.LowestAphiaID)
}

func TestLabelDuplicateName(t *testing.T) {
	repo, annSet := newLabelFixture(t)

	in := &models.LabelInput{
		Name:            strPtr("Porifera"),
		ParentLabelName: strPtr("Animalia"),
		AnnotationSetID: &annSet.ID,
	}
	_, err := repo.Create(in)
	require.NoError(t, err)

	_, err = repo.Create(in)
	require.Error(t, err)
	assert.Equal(t, []string{"This field must be unique."}, validationFields(t, err)["name"])
}

func TestLabelUpdate(t *testing.T) {
	repo, annSet := newLabelFixture(t)

	label, err := repo.Create(&models.LabelInput{
		Name:            strPtr("Porifera"),
		ParentLabelName: strPtr("Animalia"),
		AnnotationSetID: &annSet.ID,
	})
	require.NoError(t, err)

	isLowest := true
	updated, err := repo.Update(label.ID, &models.LabelInput{
		LowestTaxonomicName: strPtr("Porifera"),
		NameIsLowest:        &isLowest,
	})
	require.NoError(t, err)
	assert.Equal(t, "Porifera", updated.Name)
	assert.True(t, updated.NameIsLowest)
	require.NotNil(t, updated.LowestTaxonomicName)
}

func TestLabelListByAnnotationSet(t *testing.T) {
	repo, annSet := newLabelFixture(t)

	for _, name := range []string{"Porifera", "Cnidaria"} {
		n := name
		_, err := repo.Create(&models.LabelInput{
			Name:            &n,
			ParentLabelName: strPtr("Animalia"),
			AnnotationSetID: &annSet.ID,
		})
		require.NoError(t, err)
	}

	labels, err := repo.ListByAnnotationSet(annSet.ID)
	require.NoError(t, err)
	assert.Len(t, labels, 2)
}
