// Package services holds the business rules between controllers and repositories.
//
// Services defined in this package:
//   - StudentService: student CRUD, age/name queries, aggregates and the roster demo
//   - FacultyService: faculty CRUD, color/name search and the reverse student view
//   - AvatarService: avatar upload with the disk + database dual write, retrieval and paging
//   - UtilService: arithmetic series demo
package services

import (
	"errors"

	"github.com/yigit/hogwarts/internal/app/repositories"
)

// translate maps a repository ErrNotFound onto the given domain error
func translate(err, notFound error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return err
}
