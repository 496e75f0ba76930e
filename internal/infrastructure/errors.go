package infra

import (
	"net/http"

	"github.com/pot-code/regform/internal/domain"
)

// RESTStandardError response error
type RESTStandardError struct {
	Type    string `json:"type,omitempty"`
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewRESTStandardError titled after the HTTP status of code
func NewRESTStandardError(code int, detail string) *RESTStandardError {
	return &RESTStandardError{
		Code:   code,
		Title:  http.StatusText(code),
		Detail: detail,
	}
}

func (re RESTStandardError) Error() string {
	return re.Detail
}

func (re RESTStandardError) SetTraceID(traceID string) RESTStandardError {
	re.TraceID = traceID
	return re
}

// RESTValidationError standard validation error
//
// Fields carries every evaluated field, valid ones included, when the
// failure comes from a form pass
type RESTValidationError struct {
	RESTStandardError
	InvalidParams []*domain.FieldError `json:"invalid_params"`
	Fields        []*domain.Result     `json:"fields,omitempty"`
}

func NewRESTValidationError(code int, detail string, internal []*domain.FieldError) *RESTValidationError {
	return &RESTValidationError{
		RESTStandardError: RESTStandardError{
			Code:   code,
			Title:  http.StatusText(code),
			Detail: detail,
		},
		InvalidParams: internal,
	}
}

func (rve RESTValidationError) Error() string {
	return rve.Detail
}

func (rve RESTValidationError) SetTraceID(traceID string) RESTValidationError {
	rve.RESTStandardError.TraceID = traceID
	return rve
}

func (rve RESTValidationError) SetFields(fields []*domain.Result) RESTValidationError {
	rve.Fields = fields
	return rve
}
