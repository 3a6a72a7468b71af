package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	Name      string `json:"name" db:"name" example:"Harry Potter"`
	Age       int    `json:"age" db:"age" example:"17"`
	FacultyID *int64 `json:"-" db:"faculty_id"`

	// Populated from faculty_id on reads
	Faculty *Faculty `json:"faculty"`
}

// AssignFaculty points the student at f, or clears the link when f is nil
func (s *Student) AssignFaculty(f *Faculty) {
	if f == nil {
		s.FacultyID = nil
		s.Faculty = nil
		return
	}
	id := f.ID
	s.FacultyID = &id
	s.Faculty = f
}
