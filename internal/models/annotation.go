package models

import "encoding/json"

// Annotation is stored as the client sent it; its shape belongs to the labeling UI.
type Annotation = json.RawMessage

type AnnotationList struct {
	Annotations []Annotation `json:"annotations" validate:"required"`
}

type SavedAnnotations struct {
	Saved int `json:"saved"`
}
