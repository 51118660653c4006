package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

// StructuredError carries field-level problems keyed by field path. The
// validator's full error list is returned in one of these, never piecemeal.
type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedBodyError  = NewSimple(400, "Malformed request body")
	InternalServerError = NewSimple(500, "Internal server error")

	NotFoundError         = NewSimple(404, "Resource not found")
	UnauthorizedError     = NewSimple(401, "Missing or invalid credentials")
	InvalidAuthTokenError = NewSimple(401, "Invalid auth token")

	// PermissionDeniedError: the actor is neither the owner nor elevated.
	// Raised before any mutating call reaches the store.
	PermissionDeniedError = NewSimple(403, "You do not have permission to modify this listing")

	// PersistenceError wraps document-store failures. The store error is
	// logged, not leaked; no retry happens on this side.
	PersistenceError = NewSimple(http.StatusBadGateway, "Failed to persist the listing, please try again")

	// UploadFailedError aborts a single upload; other uploads are unaffected.
	UploadFailedError = NewSimple(http.StatusBadGateway, "Failed to store the uploaded file")

	InvalidMediaTypeError = NewSimple(415, "Unsupported media type")
	FormJSONRequiredError = NewSimple(400, "Missing 'json_payload' form field")
	MissingFileError      = NewSimple(400, "Missing file in form data")
	MissingFileNameError  = NewSimple(400, "Uploaded file has no name")
	UnknownListingType    = NewSimple(400, "Unknown listing type")

	// Lifecycle transition conflicts. The state machine only allows submit
	// from draft/pending and archive from published/rejected.
	DraftStateError    = NewSimple(http.StatusConflict, "Only draft listings can be saved as drafts")
	SubmitStateError   = NewSimple(http.StatusConflict, "Only draft or pending listings can be submitted")
	ArchiveStateError  = NewSimple(http.StatusConflict, "Only published or rejected listings can be archived")
	TypeImmutableError = NewSimple(http.StatusConflict, "The listing type cannot change after creation")
)

// FromFieldErrors folds the validation error list into a structured 422
// response, one bucket per field path.
func FromFieldErrors(byPath map[string][]string) *StructuredError {
	return &StructuredError{
		Errors: byPath,
		Status: http.StatusUnprocessableEntity,
	}
}

// FromValidationError converts contract-level validator violations into the
// same structured shape the schema engine produces.
func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+fe.Param())
		case "nodupes":
			problems[field] = append(problems[field], "Value must not contain duplicates")
		case "nospaces":
			problems[field] = append(problems[field], "Value must not contain whitespace")
		case "listingtype":
			problems[field] = append(problems[field], "Value must be a known listing type")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewForbiddenError(msg string) *APIError {
	return NewSimple(http.StatusForbidden, msg)
}

func NewFileTooLargeError(limit int64) *APIError {
	return NewSimple(http.StatusRequestEntityTooLarge, "File exceeds the %d byte limit", limit)
}

func NewInvalidFileExtError(ext string) *APIError {
	return NewSimple(http.StatusBadRequest, "Unsupported file extension: %s", ext)
}

func NewMissingParamError(name string) *APIError {
	return NewSimple(http.StatusBadRequest, "Missing required parameter: %s", name)
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}
