package dto

import "github.com/yigit/hogwarts/internal/app/models"

// FacultyRequest is the body of faculty create and full-replace update
type FacultyRequest struct {
	Name  string `json:"name" binding:"required,notblank,maxrunes=255" example:"Gryffindor"`
	Color string `json:"color" binding:"required,notblank,maxrunes=64" example:"red"`
}

// ToModel converts the request into a Faculty without an id
func (r *FacultyRequest) ToModel() *models.Faculty {
	return &models.Faculty{
		Name:  r.Name,
		Color: r.Color,
	}
}
