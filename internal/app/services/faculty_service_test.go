package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/pkg/apperrors"
)

func facultyNames(faculties []*models.Faculty) []string {
	out := make([]string, 0, len(faculties))
	for _, f := range faculties {
		out = append(out, f.Name)
	}
	return out
}

func TestFacultyLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created := f.createFaculty(t, "Gryffindor", "red")
	require.NotZero(t, created.ID)

	got, err := f.faculty.GetFacultyByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := f.faculty.UpdateFaculty(ctx, &models.Faculty{ID: created.ID, Name: "Slytherin", Color: "green"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Slytherin", updated.Name)

	require.NoError(t, f.faculty.DeleteFaculty(ctx, created.ID))

	_, err = f.faculty.GetFacultyByID(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)
}

func TestFacultyMissing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.faculty.UpdateFaculty(ctx, &models.Faculty{ID: 3, Name: "Nope", Color: "grey"})
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)

	err = f.faculty.DeleteFaculty(ctx, 3)
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)

	_, err = f.faculty.GetFacultyStudents(ctx, 3)
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)
}

func TestGetFacultiesByColor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createFaculty(t, "Gryffindor", "red")
	f.createFaculty(t, "Slytherin", "green")

	red, err := f.faculty.GetFacultiesByColor(ctx, "red")
	require.NoError(t, err)
	assert.Equal(t, []string{"Gryffindor"}, facultyNames(red))

	upper, err := f.faculty.GetFacultiesByColor(ctx, "GREEN")
	require.NoError(t, err)
	assert.Equal(t, []string{"Slytherin"}, facultyNames(upper))

	// exact match, not substring
	partial, err := f.faculty.GetFacultiesByColor(ctx, "re")
	require.NoError(t, err)
	assert.Empty(t, partial)
}

func TestSearchFacultiesMatchesNameOrColor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createFaculty(t, "Gryffindor", "red")
	f.createFaculty(t, "Ravenclaw", "blue")
	f.createFaculty(t, "Hufflepuff", "yellow")

	byName, err := f.faculty.SearchFaculties(ctx, "CLAW")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ravenclaw"}, facultyNames(byName))

	byColor, err := f.faculty.SearchFaculties(ctx, "ell")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hufflepuff"}, facultyNames(byColor))

	all, err := f.faculty.SearchFaculties(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetFacultyStudents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	gryffindor := f.createFaculty(t, "Gryffindor", "red")
	slytherin := f.createFaculty(t, "Slytherin", "green")

	for _, s := range []struct {
		name    string
		faculty int64
	}{{"Harry", gryffindor.ID}, {"Draco", slytherin.ID}, {"Ron", gryffindor.ID}} {
		id := s.faculty
		_, err := f.students.CreateStudent(ctx, &models.Student{Name: s.name, Age: 11, FacultyID: &id})
		require.NoError(t, err)
	}

	students, err := f.faculty.GetFacultyStudents(ctx, gryffindor.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Harry", "Ron"}, names(students))

	empty := f.createFaculty(t, "Hufflepuff", "yellow")
	students, err = f.faculty.GetFacultyStudents(ctx, empty.ID)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestDeleteFacultyDetachesStudents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	gryffindor := f.createFaculty(t, "Gryffindor", "red")

	student, err := f.students.CreateStudent(ctx, &models.Student{Name: "Harry", Age: 11, FacultyID: &gryffindor.ID})
	require.NoError(t, err)

	require.NoError(t, f.faculty.DeleteFaculty(ctx, gryffindor.ID))

	stored, err := f.students.GetStudentByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Faculty)
}

func TestGetLongestFacultyName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.faculty.GetLongestFacultyName(ctx)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	f.createFaculty(t, "Ravenclaw", "blue")
	f.createFaculty(t, "Hufflepuff", "yellow")
	f.createFaculty(t, "Gryffindor", "red")

	name, err := f.faculty.GetLongestFacultyName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hufflepuff", name)
}
