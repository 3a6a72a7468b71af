package dto

import "github.com/yigit/hogwarts/internal/app/models"

// FacultyRef references an existing faculty by id
type FacultyRef struct {
	ID int64 `json:"id" binding:"required,gt=0" example:"1"`
}

// StudentRequest is the body of create and full-replace update
type StudentRequest struct {
	Name    string      `json:"name" binding:"required,notblank,maxrunes=255" example:"Harry Potter"`
	Age     int         `json:"age" binding:"min=0" example:"17"`
	Faculty *FacultyRef `json:"faculty,omitempty"`
}

// ToModel converts the request into a Student without an id
func (r *StudentRequest) ToModel() *models.Student {
	student := &models.Student{
		Name: r.Name,
		Age:  r.Age,
	}
	if r.Faculty != nil {
		id := r.Faculty.ID
		student.FacultyID = &id
	}
	return student
}
