package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldType enumerates the input types a template field may declare.
// Values are validated client-side only; the server stores them as-is.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multiselect"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeFile        FieldType = "file"
)

// FieldDefinition describes one question within a template section.
type FieldDefinition struct {
	Name     string    `bson:"name" json:"name"`
	Label    string    `bson:"label" json:"label"`
	Type     FieldType `bson:"type" json:"type"`
	Required bool      `bson:"required" json:"required"`
	Hint     string    `bson:"hint,omitempty" json:"hint,omitempty"`
	Options  []string  `bson:"options" json:"options"`
}

// SectionDefinition describes one wizard section of a template.
type SectionDefinition struct {
	ID          string            `bson:"id" json:"id"`
	Title       string            `bson:"title" json:"title"`
	Description string            `bson:"description" json:"description"`
	Fields      []FieldDefinition `bson:"fields" json:"fields"`
}

// Template is a stored questionnaire schema. Deleting a template only
// flips IsActive; rows are never removed.
type Template struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description" json:"description"`
	Sections    []SectionDefinition `bson:"sections" json:"sections"`
	CreatedBy   string              `bson:"created_by" json:"created_by"`
	IsActive    bool                `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}
