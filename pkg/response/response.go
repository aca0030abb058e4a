package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-clinic-booking/pkg/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// ErrorBody is the error payload of a failed response.
type ErrorBody struct {
	Kind   apperror.Kind     `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
}

var statusByKind = map[apperror.Kind]int{
	apperror.KindValidation:         http.StatusBadRequest,
	apperror.KindReference:          http.StatusBadRequest,
	apperror.KindUniqueness:         http.StatusConflict,
	apperror.KindNotFound:           http.StatusNotFound,
	apperror.KindInvalidTransition:  http.StatusConflict,
	apperror.KindConflict:           http.StatusConflict,
	apperror.KindDependencyExists:   http.StatusConflict,
	apperror.KindForbidden:          http.StatusForbidden,
	apperror.KindConfiguration:      http.StatusInternalServerError,
	apperror.KindStorageUnavailable: http.StatusServiceUnavailable,
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(w http.ResponseWriter, statusCode int, message string, err interface{}) {
	JSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Error:   err,
	})
}

// FromError writes err with the status code of its kind. Errors outside the
// store taxonomy become a generic 500 so internals never leak.
func FromError(w http.ResponseWriter, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		InternalServerError(w, "")
		return
	}

	statusCode, ok := statusByKind[appErr.Kind]
	if !ok {
		statusCode = http.StatusInternalServerError
	}

	message := appErr.Message
	if message == "" {
		message = string(appErr.Kind)
	}
	Error(w, statusCode, message, ErrorBody{Kind: appErr.Kind, Fields: appErr.Fields})
}

func BadRequest(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Bad request"
	}
	Error(w, http.StatusBadRequest, message, ErrorBody{Kind: apperror.KindValidation})
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message, ErrorBody{Kind: apperror.KindForbidden})
}
