package httpx

import (
	"net/http"

	"github.com/go-chi/render"
)

// Envelope wraps every JSON body the API sends.
type Envelope struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Data    any        `json:"data"`
	Message *string    `json:"message"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string         `json:"code"`
	Field   string         `json:"field,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func Render(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, Envelope{
		Success: true,
		Code:    status,
		Data:    data,
	})
}

func renderFailure(w http.ResponseWriter, r *http.Request, status int, msg string, body *ErrorBody) {
	render.Status(r, status)
	render.JSON(w, r, Envelope{
		Success: false,
		Code:    status,
		Message: &msg,
		Error:   body,
	})
}
