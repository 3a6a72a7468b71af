package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/yigit/hogwarts/internal/app/migrations"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/app/repositories"
	"github.com/yigit/hogwarts/internal/db"
)

const migrationsDir = "../../../migrations"

type PostgresSuite struct {
	suite.Suite

	container testcontainers.Container
	pool      *pgxpool.Pool
	repos     *repositories.Repositories
}

func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "hogwarts",
		},
		// the server restarts once after initdb
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(2 * time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(ctx, "5432")
	s.Require().NoError(err)

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/hogwarts?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	s.Require().NoError(err)
	s.Require().Eventually(func() bool { return pool.Ping(ctx) == nil }, 30*time.Second, 500*time.Millisecond)
	s.pool = pool

	migrator := migrations.NewMigrator(pool, zerolog.Nop())
	applied, err := migrator.Apply(ctx, os.DirFS(migrationsDir))
	s.Require().NoError(err)
	s.Positive(applied)

	applied, err = migrator.Apply(ctx, os.DirFS(migrationsDir))
	s.Require().NoError(err)
	s.Zero(applied)

	s.repos = repositories.NewRepositories(db.NewFromPool(pool))
}

func (s *PostgresSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PostgresSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE avatars, students, faculties RESTART IDENTITY CASCADE")
	s.Require().NoError(err)
}

func (s *PostgresSuite) createFaculty(name, color string) *models.Faculty {
	faculty := &models.Faculty{Name: name, Color: color}
	id, err := s.repos.Faculties.Create(context.Background(), faculty)
	s.Require().NoError(err)
	faculty.ID = id
	return faculty
}

func (s *PostgresSuite) createStudent(name string, age int, facultyID *int64) int64 {
	id, err := s.repos.Students.Create(context.Background(), &models.Student{Name: name, Age: age, FacultyID: facultyID})
	s.Require().NoError(err)
	return id
}

func (s *PostgresSuite) TestStudentLifecycle() {
	ctx := context.Background()
	gryffindor := s.createFaculty("Gryffindor", "red")

	id := s.createStudent("Harry", 17, &gryffindor.ID)

	got, err := s.repos.Students.GetByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("Harry", got.Name)
	s.Require().NotNil(got.Faculty)
	s.Equal(*gryffindor, *got.Faculty)

	got.Name = "Harry Potter"
	got.Age = 18
	got.FacultyID = nil
	s.Require().NoError(s.repos.Students.Update(ctx, got))

	got, err = s.repos.Students.GetByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("Harry Potter", got.Name)
	s.Nil(got.Faculty)

	s.Require().NoError(s.repos.Students.Delete(ctx, id))
	_, err = s.repos.Students.GetByID(ctx, id)
	s.ErrorIs(err, repositories.ErrNotFound)
	s.ErrorIs(s.repos.Students.Delete(ctx, id), repositories.ErrNotFound)
	s.ErrorIs(s.repos.Students.Update(ctx, &models.Student{ID: id, Name: "x"}), repositories.ErrNotFound)
}

func (s *PostgresSuite) TestStudentUnknownFaculty() {
	missing := int64(999)
	_, err := s.repos.Students.Create(context.Background(), &models.Student{Name: "Ghost", Age: 100, FacultyID: &missing})
	s.ErrorIs(err, repositories.ErrInvalidReference)
}

func (s *PostgresSuite) TestStudentQueries() {
	ctx := context.Background()
	ravenclaw := s.createFaculty("Ravenclaw", "blue")
	s.createStudent("Luna", 14, &ravenclaw.ID)
	s.createStudent("Cho", 16, &ravenclaw.ID)
	s.createStudent("Neville", 14, nil)
	s.createStudent("Ginny", 15, nil)
	s.createStudent("100%_real", 30, nil)

	age := 14
	byAge, err := s.repos.Students.List(ctx, repositories.StudentFilter{Age: &age})
	s.Require().NoError(err)
	s.Equal([]string{"Luna", "Neville"}, studentNames(byAge))

	minAge, maxAge := 15, 16
	between, err := s.repos.Students.List(ctx, repositories.StudentFilter{MinAge: &minAge, MaxAge: &maxAge})
	s.Require().NoError(err)
	s.Equal([]string{"Cho", "Ginny"}, studentNames(between))

	byName, err := s.repos.Students.List(ctx, repositories.StudentFilter{NameContains: "LU"})
	s.Require().NoError(err)
	s.Equal([]string{"Luna"}, studentNames(byName))

	// LIKE metacharacters are matched literally
	literal, err := s.repos.Students.List(ctx, repositories.StudentFilter{NameContains: "%_"})
	s.Require().NoError(err)
	s.Equal([]string{"100%_real"}, studentNames(literal))

	inHouse, err := s.repos.Students.List(ctx, repositories.StudentFilter{FacultyID: &ravenclaw.ID})
	s.Require().NoError(err)
	s.Equal([]string{"Luna", "Cho"}, studentNames(inHouse))

	ordered, err := s.repos.Students.List(ctx, repositories.StudentFilter{OrderByAge: true})
	s.Require().NoError(err)
	s.Equal([]string{"Luna", "Neville", "Ginny", "Cho", "100%_real"}, studentNames(ordered))

	count, err := s.repos.Students.Count(ctx)
	s.Require().NoError(err)
	s.EqualValues(5, count)

	avg, err := s.repos.Students.AverageAge(ctx)
	s.Require().NoError(err)
	s.InDelta(17.8, avg, 1e-9)

	last, err := s.repos.Students.LastN(ctx, 2)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"Ginny", "100%_real"}, studentNames(last))
}

func (s *PostgresSuite) TestAverageAgeEmpty() {
	avg, err := s.repos.Students.AverageAge(context.Background())
	s.Require().NoError(err)
	s.Zero(avg)
}

func (s *PostgresSuite) TestFacultyFiltersAndDelete() {
	ctx := context.Background()
	gryffindor := s.createFaculty("Gryffindor", "Red")
	s.createFaculty("Slytherin", "green")
	studentID := s.createStudent("Harry", 17, &gryffindor.ID)

	byColor, err := s.repos.Faculties.List(ctx, repositories.FacultyFilter{Color: "RED"})
	s.Require().NoError(err)
	s.Require().Len(byColor, 1)
	s.Equal("Gryffindor", byColor[0].Name)

	partial, err := s.repos.Faculties.List(ctx, repositories.FacultyFilter{Color: "re"})
	s.Require().NoError(err)
	s.Empty(partial)

	search, err := s.repos.Faculties.List(ctx, repositories.FacultyFilter{Search: "ee"})
	s.Require().NoError(err)
	s.Require().Len(search, 1)
	s.Equal("Slytherin", search[0].Name)

	gryffindor.Color = "scarlet"
	s.Require().NoError(s.repos.Faculties.Update(ctx, gryffindor))
	got, err := s.repos.Faculties.GetByID(ctx, gryffindor.ID)
	s.Require().NoError(err)
	s.Equal("scarlet", got.Color)

	s.Require().NoError(s.repos.Faculties.Delete(ctx, gryffindor.ID))
	_, err = s.repos.Faculties.GetByID(ctx, gryffindor.ID)
	s.ErrorIs(err, repositories.ErrNotFound)

	student, err := s.repos.Students.GetByID(ctx, studentID)
	s.Require().NoError(err)
	s.Nil(student.FacultyID)
	s.Nil(student.Faculty)
}

func (s *PostgresSuite) TestAvatarSave() {
	ctx := context.Background()
	studentID := s.createStudent("Luna", 14, nil)

	avatar := &models.Avatar{StudentID: studentID, FilePath: "avatars/avatar_1.png", FileSize: 3, MediaType: "image/png", Data: []byte{1, 2, 3}}
	s.Require().NoError(s.repos.Avatars.Save(ctx, avatar, nil))
	s.NotZero(avatar.ID)
	firstID := avatar.ID

	replacement := &models.Avatar{StudentID: studentID, FilePath: "avatars/avatar_1.jpg", FileSize: 2, MediaType: "image/jpeg", Data: []byte{9, 9}}
	s.Require().NoError(s.repos.Avatars.Save(ctx, replacement, nil))
	s.Equal(firstID, replacement.ID)

	got, err := s.repos.Avatars.GetByStudentID(ctx, studentID)
	s.Require().NoError(err)
	s.Equal("image/jpeg", got.MediaType)
	s.Equal([]byte{9, 9}, got.Data)

	items, total, err := s.repos.Avatars.List(ctx, 0, 10)
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Require().Len(items, 1)
	s.Nil(items[0].Data)
}

func (s *PostgresSuite) TestAvatarSaveRollsBack() {
	ctx := context.Background()
	studentID := s.createStudent("Neville", 14, nil)

	hookErr := errors.New("disk full")
	avatar := &models.Avatar{StudentID: studentID, FilePath: "p", FileSize: 1, MediaType: "image/png", Data: []byte{1}}
	err := s.repos.Avatars.Save(ctx, avatar, func(context.Context) error { return hookErr })
	s.ErrorIs(err, hookErr)

	_, err = s.repos.Avatars.GetByStudentID(ctx, studentID)
	s.ErrorIs(err, repositories.ErrNotFound)

	err = s.repos.Avatars.Save(ctx, &models.Avatar{StudentID: 999, FilePath: "p", MediaType: "image/png", Data: []byte{1}}, nil)
	s.ErrorIs(err, repositories.ErrInvalidReference)
}

func (s *PostgresSuite) TestStudentDeleteCascadesAvatar() {
	ctx := context.Background()
	studentID := s.createStudent("Cedric", 17, nil)
	avatar := &models.Avatar{StudentID: studentID, FilePath: "p", FileSize: 1, MediaType: "image/png", Data: []byte{1}}
	s.Require().NoError(s.repos.Avatars.Save(ctx, avatar, nil))

	s.Require().NoError(s.repos.Students.Delete(ctx, studentID))

	_, err := s.repos.Avatars.GetByID(ctx, avatar.ID)
	s.ErrorIs(err, repositories.ErrNotFound)
}

func studentNames(students []*models.Student) []string {
	names := make([]string, 0, len(students))
	for _, student := range students {
		names = append(names, student.Name)
	}
	return names
}
