package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"Harry Potter"`
	Age  int    `json:"age" db:"age" example:"15"`

	// Faculty is optional; only the ID matters when the student is written
	Faculty *Faculty `json:"faculty,omitempty"`
}

// Equal reports whether both students share the same identifier
func (s *Student) Equal(other *Student) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID
}

// FacultyID returns the referenced faculty ID, or nil when the student has no faculty
func (s *Student) FacultyID() *int64 {
	if s.Faculty == nil || s.Faculty.ID == 0 {
		return nil
	}
	id := s.Faculty.ID
	return &id
}
