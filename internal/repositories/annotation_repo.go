package repositories

import (
	"radarboard/internal/models"

	"gorm.io/gorm"
)

// ===========================================================================
// Annotation Repository GORM Implementation
// ===========================================================================

// annotationRepo implements AnnotationRepository
type annotationRepo struct {
	recordRepo[models.Annotation]
}

// NewAnnotationRepository creates an AnnotationRepository backed by GORM.
func NewAnnotationRepository(db *gorm.DB) AnnotationRepository {
	return &annotationRepo{recordRepo: newRecordRepo[models.Annotation](db)}
}
