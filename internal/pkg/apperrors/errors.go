package apperrors

import "errors"

// Error kinds. HTTP status mapping happens in middleware.HandleAPIError.
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrResourceGone     = errors.New("resource gone")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Student errors
var (
	ErrStudentNotFound = NewResourceNotFoundError("student not found")
)

// Faculty errors
var (
	ErrFacultyNotFound    = NewResourceNotFoundError("faculty not found")
	ErrFacultyReference   = &CustomError{Err: ErrBadRequest, Message: "referenced faculty does not exist"}
	ErrNoFacultiesExist   = NewResourceNotFoundError("no faculties found")
	ErrFacultyNotAssigned = NewResourceNotFoundError("student has no faculty")
)

// Avatar errors
var (
	ErrAvatarNotFound = NewResourceNotFoundError("avatar not found in database")

	// ErrAvatarFileMissing means the row exists but the file it points at is gone.
	ErrAvatarFileMissing = &CustomError{Err: ErrResourceGone, Message: "avatar file not found"}
)

// Util errors
var (
	ErrSeriesTooLarge = &CustomError{Err: ErrValidationFailed, Message: "n is too large, the sum would overflow"}
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// FacultyReferenceError reports a student pointing at a missing faculty
func FacultyReferenceError(facultyID int64) error {
	return ErrFacultyReference.WithDetails(map[string]interface{}{"facultyId": facultyID})
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy of the error carrying the given details.
// The receiver is often a package-level sentinel, so it is never mutated.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	return &CustomError{
		Err:     e,
		Message: e.Message,
		Details: details,
	}
}
