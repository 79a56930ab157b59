package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subseadata/ifdocatalog/database"
	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/validation"
)

// NamedPtr constrains a pointer to one of the named-reference models.
type NamedPtr[T any] interface {
	*T
	NamedFields() (string, *string)
	SetNamedFields(string, *string)
	PK() uuid.UUID
}

// GetOrCreateNamed creates a named-reference row, or returns the existing
// row with that name. When the existing row's URI differs from a supplied
// one, a ConflictError keyed by field is returned instead. entity is the
// human-readable type name used in messages.
func GetOrCreateNamed[T any, PT NamedPtr[T]](tx *gorm.DB, entity, field string, in models.NamedRefInput) (PT, error) {
	rec := PT(new(T))
	rec.SetNamedFields(in.Name, in.URI)

	err := tx.Create(rec).Error
	if err == nil {
		return rec, nil
	}
	if !database.IsDuplicateKey(err) {
		return nil, fmt.Errorf("failed to create %s %s: %w", entity, in.Name, err)
	}

	existing := PT(new(T))
	if err := tx.Where("name = ?", in.Name).First(existing).Error; err != nil {
		return nil, fmt.Errorf("failed to look up %s %s: %w", entity, in.Name, err)
	}

	_, existingURI := existing.NamedFields()
	if in.URI != nil && (existingURI == nil || *existingURI != *in.URI) {
		return nil, validation.NewConflictError(field,
			fmt.Sprintf("%s with name=%q already exists but differs.", entity, in.Name))
	}
	return existing, nil
}

// NamedRepository handles database operations for one named-reference
// entity type (creators, contexts, projects, ...).
type NamedRepository[T any, PT NamedPtr[T]] struct {
	DB     *gorm.DB
	Entity string
}

// NewNamedRepository creates a repository for one named-reference entity.
// entity is the human-readable type name used in error messages.
func NewNamedRepository[T any, PT NamedPtr[T]](db *gorm.DB, entity string) *NamedRepository[T, PT] {
	return &NamedRepository[T, PT]{DB: db, Entity: entity}
}

// Create inserts a new row. Unlike nested ingestion, direct creation of a
// duplicate name is a validation error rather than a silent reuse.
func (r *NamedRepository[T, PT]) Create(in models.NamedRefInput) (PT, error) {
	if in.Name == "" {
		return nil, validation.NewError("name", validation.Required)
	}
	rec := PT(new(T))
	rec.SetNamedFields(in.Name, in.URI)
	err := r.DB.Create(rec).Error
	if database.IsDuplicateKey(err) {
		return nil, validation.NewError("name", "This field must be unique.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %s: %w", r.Entity, in.Name, err)
	}
	return rec, nil
}

// ListAll retrieves all rows ordered by name.
func (r *NamedRepository[T, PT]) ListAll() ([]T, error) {
	var rows []T
	if err := r.DB.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", r.Entity, err)
	}
	return rows, nil
}

// GetByID retrieves one row by its ID.
func (r *NamedRepository[T, PT]) GetByID(id uuid.UUID) (PT, error) {
	rec := PT(new(T))
	err := r.DB.First(rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get %s by ID %s: %w", r.Entity, id, err)
	}
	return rec, nil
}

// Update overwrites the name and URI of an existing row.
func (r *NamedRepository[T, PT]) Update(id uuid.UUID, in models.NamedRefInput) (PT, error) {
	rec, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	name, uri := rec.NamedFields()
	if in.Name != "" {
		name = in.Name
	}
	if in.URI != nil {
		uri = in.URI
	}
	rec.SetNamedFields(name, uri)
	err = r.DB.Save(rec).Error
	if database.IsDuplicateKey(err) {
		return nil, validation.NewError("name", "This field must be unique.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s %s: %w", r.Entity, id, err)
	}
	return rec, nil
}

// Delete removes a row. Foreign keys referencing it are set to null by the
// schema.
func (r *NamedRepository[T, PT]) Delete(id uuid.UUID) error {
	rec := PT(new(T))
	result := r.DB.Delete(rec, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s %s: %w", r.Entity, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// resolveNamedRef turns an object-or-id relation into the id to store.
// Inline objects are created idempotently by name; ids must reference an
// existing row.
func resolveNamedRef[T any, PT NamedPtr[T]](tx *gorm.DB, entity, field string, id *uuid.UUID, obj *models.NamedRefInput) (*uuid.UUID, error) {
	if obj != nil {
		rec, err := GetOrCreateNamed[T, PT](tx, entity, field, *obj)
		if err != nil {
			return nil, err
		}
		pk := rec.PK()
		return &pk, nil
	}
	if id != nil {
		if err := requireExists[T](tx, fieldToIDKey(field), *id); err != nil {
			return nil, err
		}
		return id, nil
	}
	return nil, nil
}

// requireExists checks that a referenced row exists, surfacing a
// field-keyed validation error when it does not.
func requireExists[T any](tx *gorm.DB, field string, id uuid.UUID) error {
	var count int64
	var zero T
	if err := tx.Model(&zero).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check %s: %w", field, err)
	}
	if count == 0 {
		return validation.NewError(field, fmt.Sprintf("Invalid pk %q - object does not exist.", id))
	}
	return nil
}

func fieldToIDKey(field string) string { return field + "_id" }
