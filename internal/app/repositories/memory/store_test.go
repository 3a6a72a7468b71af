package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/app/repositories"
	"github.com/yigit/hogwarts/internal/app/repositories/memory"
)

func TestStudentReferencesFaculty(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	missing := int64(12)
	_, err := repos.Students.Create(ctx, &models.Student{Name: "Harry", FacultyID: &missing})
	assert.ErrorIs(t, err, repositories.ErrInvalidReference)

	facultyID, err := repos.Faculties.Create(ctx, &models.Faculty{Name: "Gryffindor", Color: "red"})
	require.NoError(t, err)

	id, err := repos.Students.Create(ctx, &models.Student{Name: "Harry", FacultyID: &facultyID})
	require.NoError(t, err)

	err = repos.Students.Update(ctx, &models.Student{ID: id, Name: "Harry", FacultyID: &missing})
	assert.ErrorIs(t, err, repositories.ErrInvalidReference)

	student, err := repos.Students.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, student.Faculty)
	assert.Equal(t, "Gryffindor", student.Faculty.Name)
}

func TestReturnedRecordsAreDetached(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	id, err := repos.Students.Create(ctx, &models.Student{Name: "Harry", Age: 11})
	require.NoError(t, err)

	student, err := repos.Students.GetByID(ctx, id)
	require.NoError(t, err)
	student.Name = "Voldemort"

	again, err := repos.Students.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Harry", again.Name)
}

func TestStudentDeleteCascadesAvatar(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	studentID, err := repos.Students.Create(ctx, &models.Student{Name: "Cedric", Age: 17})
	require.NoError(t, err)

	avatar := &models.Avatar{StudentID: studentID, FilePath: "a.png", Data: []byte("x")}
	require.NoError(t, repos.Avatars.Save(ctx, avatar, nil))

	require.NoError(t, repos.Students.Delete(ctx, studentID))

	_, err = repos.Avatars.GetByID(ctx, avatar.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repos.Avatars.GetByStudentID(ctx, studentID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestAvatarSave(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	err := repos.Avatars.Save(ctx, &models.Avatar{StudentID: 1}, nil)
	assert.ErrorIs(t, err, repositories.ErrInvalidReference)

	studentID, err := repos.Students.Create(ctx, &models.Student{Name: "Luna"})
	require.NoError(t, err)

	hookErr := errors.New("hook failed")
	err = repos.Avatars.Save(ctx, &models.Avatar{StudentID: studentID}, func(context.Context) error { return hookErr })
	assert.ErrorIs(t, err, hookErr)
	_, err = repos.Avatars.GetByStudentID(ctx, studentID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	first := &models.Avatar{StudentID: studentID, MediaType: "image/png", Data: []byte("one")}
	require.NoError(t, repos.Avatars.Save(ctx, first, nil))

	second := &models.Avatar{StudentID: studentID, MediaType: "image/gif", Data: []byte("two")}
	require.NoError(t, repos.Avatars.Save(ctx, second, nil))
	assert.Equal(t, first.ID, second.ID)

	stored, err := repos.Avatars.GetByStudentID(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, "image/gif", stored.MediaType)
	assert.Equal(t, []byte("two"), stored.Data)
}

func TestAvatarList(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	for i := 0; i < 5; i++ {
		studentID, err := repos.Students.Create(ctx, &models.Student{Name: "S"})
		require.NoError(t, err)
		require.NoError(t, repos.Avatars.Save(ctx, &models.Avatar{StudentID: studentID, Data: []byte("x")}, nil))
	}

	page, total, err := repos.Avatars.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.EqualValues(t, 3, page[0].ID)
	assert.EqualValues(t, 4, page[1].ID)
	assert.Nil(t, page[0].Data)
}

func TestFacultyDeleteDetachesStudents(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	facultyID, err := repos.Faculties.Create(ctx, &models.Faculty{Name: "Hufflepuff", Color: "yellow"})
	require.NoError(t, err)
	studentID, err := repos.Students.Create(ctx, &models.Student{Name: "Cedric", FacultyID: &facultyID})
	require.NoError(t, err)

	require.NoError(t, repos.Faculties.Delete(ctx, facultyID))
	assert.ErrorIs(t, repos.Faculties.Delete(ctx, facultyID), repositories.ErrNotFound)

	student, err := repos.Students.GetByID(ctx, studentID)
	require.NoError(t, err)
	assert.Nil(t, student.FacultyID)
	assert.Nil(t, student.Faculty)
}

func TestConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repos.Students.Create(ctx, &models.Student{Name: "S", Age: 11})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := repos.Students.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 50, count)
}
