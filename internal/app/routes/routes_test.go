package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/hogwarts/internal/app/controllers"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/app/models/dto"
	"github.com/yigit/hogwarts/internal/app/repositories/memory"
	"github.com/yigit/hogwarts/internal/app/routes"
	"github.com/yigit/hogwarts/internal/app/services"
	"github.com/yigit/hogwarts/internal/pkg/filestorage"
)

type api struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	store := memory.NewStore()
	repos := store.Repositories()

	router := gin.New()
	routes.SetupRouter(router, routes.Controllers{
		Student: controllers.NewStudentController(services.NewStudentService(repos, storage, services.RosterConfig{Out: io.Discard})),
		Faculty: controllers.NewFacultyController(services.NewFacultyService(repos)),
		Avatar:  controllers.NewAvatarController(services.NewAvatarService(repos, storage)),
		Util:    controllers.NewUtilController(services.NewUtilService()),
		Info:    controllers.NewInfoController(8080, store),
	})
	return &api{t: t, router: router}
}

func (a *api) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *api) upload(studentID int64, fileName, contentType string, data []byte) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(header)
	require.NoError(a.t, err)
	_, err = part.Write(data)
	require.NoError(a.t, err)
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/avatar/%d/upload", studentID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestFacultyScenario(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/faculty", dto.FacultyRequest{Name: "Gryffindor", Color: "red"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Faculty](t, w)
	require.NotZero(t, created.ID)
	path := fmt.Sprintf("/faculty/%d", created.ID)

	w = a.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[models.Faculty](t, w))

	w = a.do(http.MethodPut, path, dto.FacultyRequest{Name: "Slytherin", Color: "green"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.Faculty](t, w)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Slytherin", updated.Name)
	assert.Equal(t, "green", updated.Color)

	w = a.do(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, decode[dto.ErrorResponse](t, w).Error.Code)

	w = a.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFacultyByColor(t *testing.T) {
	a := newAPI(t)
	a.do(http.MethodPost, "/faculty", dto.FacultyRequest{Name: "Gryffindor", Color: "red"})
	a.do(http.MethodPost, "/faculty", dto.FacultyRequest{Name: "Slytherin", Color: "green"})

	w := a.do(http.MethodGet, "/faculty/by-color?color=red", nil)
	require.Equal(t, http.StatusOK, w.Code)
	faculties := decode[[]models.Faculty](t, w)
	require.Len(t, faculties, 1)
	assert.Equal(t, "Gryffindor", faculties[0].Name)

	w = a.do(http.MethodGet, "/faculty/by-color?color=purple", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = a.do(http.MethodGet, "/faculty/longest-name", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Gryffindor", decode[string](t, w))
}

func TestStudentEndpoints(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/faculty", dto.FacultyRequest{Name: "Gryffindor", Color: "red"})
	faculty := decode[models.Faculty](t, w)

	for _, s := range []dto.StudentRequest{
		{Name: "Harry", Age: 17, Faculty: &dto.FacultyRef{ID: faculty.ID}},
		{Name: "Ron", Age: 18},
		{Name: "Hermione", Age: 19, Faculty: &dto.FacultyRef{ID: faculty.ID}},
	} {
		w := a.do(http.MethodPost, "/student", s)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = a.do(http.MethodGet, "/student/average-age", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 18.0, decode[float64](t, w), 1e-9)

	w = a.do(http.MethodGet, "/student/count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, decode[int64](t, w))

	w = a.do(http.MethodGet, "/student/by-age-between?min=18&max=19", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Student](t, w), 2)

	w = a.do(http.MethodGet, "/student/by-name?name=her", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Student](t, w), 1)

	w = a.do(http.MethodGet, "/student/1/faculty", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Gryffindor", decode[models.Faculty](t, w).Name)

	w = a.do(http.MethodGet, fmt.Sprintf("/faculty/%d/students", faculty.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Student](t, w), 2)

	w = a.do(http.MethodGet, "/student/names-starting-with?letter=h", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"HARRY", "HERMIONE"}, decode[[]string](t, w))

	w = a.do(http.MethodPut, "/student/2", dto.StudentRequest{Name: "Ronald", Age: 18})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ronald", decode[models.Student](t, w).Name)

	w = a.do(http.MethodPut, "/student/99", dto.StudentRequest{Name: "Ghost", Age: 500})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodDelete, "/student/2", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(http.MethodGet, "/student/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentBadRequests(t *testing.T) {
	a := newAPI(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"non numeric id", http.MethodGet, "/student/abc", nil},
		{"negative id", http.MethodGet, "/student/-1", nil},
		{"negative faculty id", http.MethodDelete, "/faculty/-3", nil},
		{"negative avatar student id", http.MethodGet, "/avatar/-2/from-file", nil},
		{"missing age", http.MethodGet, "/student/by-age", nil},
		{"bad age", http.MethodGet, "/student/age-less-than?age=old", nil},
		{"negative age", http.MethodPost, "/student", dto.StudentRequest{Name: "Baby", Age: -1}},
		{"missing name", http.MethodPost, "/student", map[string]int{"age": 11}},
		{"blank name", http.MethodPost, "/student", dto.StudentRequest{Name: "   ", Age: 11}},
		{"blank color", http.MethodPost, "/faculty", dto.FacultyRequest{Name: "Gryffindor", Color: " "}},
		{"unknown faculty", http.MethodPost, "/student", dto.StudentRequest{Name: "Harry", Faculty: &dto.FacultyRef{ID: 77}}},
		{"bad n", http.MethodGet, "/util/sum-million?n=-5", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.False(t, decode[dto.ErrorResponse](t, w).Success)
		})
	}
}

func TestAvatarEndpoints(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodPost, "/student", dto.StudentRequest{Name: "Luna", Age: 14})
	require.Equal(t, http.StatusCreated, w.Code)
	student := decode[models.Student](t, w)

	data := []byte("\x89PNG\r\n\x1a\nfake image payload")
	w = a.upload(student.ID, "luna.png", "image/png", data)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	avatarID := decode[int64](t, w)
	require.NotZero(t, avatarID)

	w = a.do(http.MethodGet, fmt.Sprintf("/avatar/%d/from-db", avatarID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, fmt.Sprint(len(data)), w.Header().Get("Content-Length"))
	assert.Equal(t, data, w.Body.Bytes())

	w = a.do(http.MethodGet, fmt.Sprintf("/avatar/%d/from-file", student.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, data, w.Body.Bytes())

	w = a.do(http.MethodGet, fmt.Sprintf("/avatar/student/%d", student.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	meta := decode[models.Avatar](t, w)
	assert.Equal(t, avatarID, meta.ID)
	assert.True(t, strings.HasSuffix(meta.FilePath, fmt.Sprintf("avatar_%d.png", student.ID)))
	assert.NotContains(t, w.Body.String(), `"data"`)

	w = a.do(http.MethodGet, "/avatar?page=0&size=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items      []models.Avatar    `json:"items"`
		Pagination dto.PaginationInfo `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, page.Pagination.TotalItems)
}

func TestAvatarUploadErrors(t *testing.T) {
	a := newAPI(t)

	w := a.upload(404, "ghost.png", "image/png", []byte("boo"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodPost, "/avatar/1/upload", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodGet, "/avatar/1/from-db", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodGet, "/avatar/1/from-file", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvatarUploadSniffsContentType(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodPost, "/student", dto.StudentRequest{Name: "Neville", Age: 14})
	student := decode[models.Student](t, w)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	w = a.upload(student.ID, "toad", "application/octet-stream", png)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodGet, fmt.Sprintf("/avatar/student/%d", student.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	meta := decode[models.Avatar](t, w)
	assert.Equal(t, "image/png", meta.MediaType)
	assert.True(t, strings.HasSuffix(meta.FilePath, ".dat"))
}

func TestUtilAndInfo(t *testing.T) {
	a := newAPI(t)

	for _, path := range []string{"/util/sum-million", "/util/sum-million-slow"} {
		w := a.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 500000500000, decode[int64](t, w))
	}

	w := a.do(http.MethodGet, "/util/sum-million?n=10", nil)
	assert.EqualValues(t, 55, decode[int64](t, w))

	w = a.do(http.MethodGet, "/util/sum-million?n=4294967295", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, int64(9223372034707292160), decode[int64](t, w))

	for _, path := range []string{"/util/sum-million?n=4294967296", "/util/sum-million-slow?n=9000000000000000000"} {
		w = a.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, dto.ErrorCodeValidationFailed, decode[dto.ErrorResponse](t, w).Error.Code, path)
	}

	w = a.do(http.MethodGet, "/port", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 8080, decode[int](t, w))

	w = a.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.HealthResponse{Status: "ok", Database: "memory"}, decode[dto.HealthResponse](t, w))
}
