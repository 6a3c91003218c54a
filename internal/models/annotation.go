package models

// ===========================================================================
// Annotation (free-standing shared annotation)
// Lightweight shared record for stoppages, links and general observations.
// Visible to all departments; soft-deletable like Note.
// ===========================================================================

// AnnotationType classifies an annotation.
type AnnotationType string

const (
	// AnnotationParada equipment or flow stoppage
	AnnotationParada AnnotationType = "parada"

	// AnnotationLink external link worth sharing
	AnnotationLink AnnotationType = "link"

	// AnnotationObservacao operational observation
	AnnotationObservacao AnnotationType = "observacao"

	// AnnotationGeral anything else
	AnnotationGeral AnnotationType = "geral"
)

// Valid reports whether t is a known annotation type.
func (t AnnotationType) Valid() bool {
	switch t {
	case AnnotationParada, AnnotationLink, AnnotationObservacao, AnnotationGeral:
		return true
	}
	return false
}

// Annotation is a free-standing shared annotation.
type Annotation struct {
	RecordBase

	// Title short heading
	Title string `gorm:"size:255;not null" json:"title"`

	// Content free-form body
	Content string `gorm:"type:text;not null" json:"content"`

	// Type classification
	Type AnnotationType `gorm:"size:20;not null;default:'geral'" json:"type"`

	// URL target address, only meaningful for type "link"
	URL *string `gorm:"size:1024" json:"url,omitempty"`
}

// TableName keeps the original collection name.
func (Annotation) TableName() string {
	return "anotacoes_gerais"
}
