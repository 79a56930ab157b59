package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base holds the default columns shared by every table.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PK returns the primary key, for code generic over model types.
func (b *Base) PK() uuid.UUID { return b.ID }

// BeforeCreate assigns a UUID primary key when none was set by the caller.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// FloatList is a numeric feature vector stored as a JSON column.
type FloatList []float64

// JSONMap is a free-form JSON object column.
type JSONMap map[string]any

// Coordinates holds annotation pixel coordinates as a list of flat
// per-frame lists: [[p1.x, p1.y, p2.x, p2.y, ...], ...].
type Coordinates [][]float64

// Point is a WGS84 longitude/latitude pair derived from the latitude and
// longitude columns. It is stored as JSON; no geospatial engine is involved.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Polygon is a closed ring of [longitude, latitude] pairs.
type Polygon struct {
	Ring [][2]float64 `json:"ring"`
}

// PolygonFromBBox builds a closed bounding-box ring from min/max longitude
// and latitude, starting at the south-west corner.
func PolygonFromBBox(minLon, minLat, maxLon, maxLat float64) *Polygon {
	return &Polygon{Ring: [][2]float64{
		{minLon, minLat},
		{maxLon, minLat},
		{maxLon, maxLat},
		{minLon, maxLat},
		{minLon, minLat},
	}}
}
