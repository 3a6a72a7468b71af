package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/hogwarts/internal/app/repositories/memory"
	"github.com/yigit/hogwarts/internal/app/services"
	"github.com/yigit/hogwarts/internal/pkg/filestorage"
)

var rosterNames = []string{"Harry", "Ron", "Hermione", "Neville", "Luna", "Ginny", "Draco"}

func seedRoster(t *testing.T, f *fixture, n int) {
	t.Helper()
	for _, name := range rosterNames[:n] {
		f.createStudent(t, name, 11)
	}
}

func TestPrintStudentsSynchronizedIsChunkSequential(t *testing.T) {
	f := newFixture(t)
	seedRoster(t, f, 7)

	printed, err := f.students.PrintStudentsSynchronized(context.Background())
	require.NoError(t, err)

	// only the first six are printed, in id order
	want := rosterNames[:6]
	assert.Equal(t, want, printed)
	assert.Equal(t, strings.Join(want, "\n")+"\n", f.out.String())
}

func TestPrintStudentsParallelPrintsEveryName(t *testing.T) {
	f := newFixture(t)
	seedRoster(t, f, 6)

	printed, err := f.students.PrintStudentsParallel(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, rosterNames[:6], printed)

	// within a chunk the order is kept
	index := func(name string) int {
		for i, p := range printed {
			if p == name {
				return i
			}
		}
		return -1
	}
	for i := 0; i < 6; i += 2 {
		assert.Less(t, index(rosterNames[i]), index(rosterNames[i+1]))
	}
}

func TestPrintStudentsNeedsSixStudents(t *testing.T) {
	f := newFixture(t)
	seedRoster(t, f, 5)

	printed, err := f.students.PrintStudentsParallel(context.Background())
	require.NoError(t, err)
	assert.Empty(t, printed)

	printed, err = f.students.PrintStudentsSynchronized(context.Background())
	require.NoError(t, err)
	assert.Empty(t, printed)
	assert.Empty(t, f.out.String())
}

func TestPrintStudentsStopsOnCancel(t *testing.T) {
	storage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repos := memory.NewRepositories()

	var out strings.Builder
	students := services.NewStudentService(repos, storage, services.RosterConfig{Out: &out, Delay: time.Hour})
	f := &fixture{students: students}
	seedRoster(t, f, 6)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	printed, err := students.PrintStudentsSynchronized(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []string{"Harry"}, printed)
}
