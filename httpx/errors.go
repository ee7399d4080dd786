package httpx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mbolis/quick-forms/forms"
	"github.com/mbolis/quick-forms/log"
)

// RenderError maps a service error to its HTTP outcome: validation errors
// are passed through verbatim, not-found errors become 404 and anything else
// is logged and hidden behind a 500.
func RenderError(w http.ResponseWriter, r *http.Request, code string, err error) {
	if ve, ok := forms.AsValidationError(err); ok {
		log.Debugf("%s: %s", code, ve)
		renderFailure(w, r, http.StatusBadRequest, ve.Message, &ErrorBody{
			Code:    string(ve.Code),
			Field:   ve.Field,
			Details: ve.Details,
		})
		return
	}

	var nf *forms.NotFoundError
	if errors.As(err, &nf) {
		log.Debugf("%s: %s", code, nf)
		renderFailure(w, r, http.StatusNotFound, nf.Error(), &ErrorBody{
			Code:  "not_found",
			Field: nf.Entity,
		})
		return
	}

	LogInternalError(w, r, code, err)
}

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.WithError(err).Error(code)
	renderFailure(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
}

// Will log an error code at the given level, and send
// an HTTP response with status and default text
func LogStatus(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string) {
	log.Log(level, code)
	renderFailure(w, r, status, http.StatusText(status), nil)
}

// Will log a bad input at DEBUG level, and send a 400 response naming the
// offending field
func LogBadInput(w http.ResponseWriter, r *http.Request, code string, field string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Debugf("%s: %s", code, errMsg)
	renderFailure(w, r, http.StatusBadRequest, errMsg, &ErrorBody{
		Code:  string(forms.CodeInvalidInput),
		Field: field,
	})
}
