package models

// Faculty represents a school house students can belong to
type Faculty struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Gryffindor"`
	Color string `json:"color" example:"red"`

	// Students referencing this faculty, populated only when explicitly loaded
	Students []*Student `json:"students,omitempty"`
}

// Equal reports whether both faculties share the same identifier
func (f *Faculty) Equal(other *Faculty) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.ID == other.ID
}
