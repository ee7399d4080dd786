package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// ResponseBuffer records what a handler writes so it can be inspected and
// re-sent in the API envelope.
type ResponseBuffer struct {
	status int
	header http.Header
	body   bytes.Buffer
}

func NewResponseBuffer() *ResponseBuffer {
	return &ResponseBuffer{}
}

// Status defaults to 200, as for a real ResponseWriter.
func (resp *ResponseBuffer) Status() int {
	if resp.status == 0 {
		return http.StatusOK
	}
	return resp.status
}

func (resp *ResponseBuffer) Header() http.Header {
	if resp.header == nil {
		resp.header = http.Header{}
	}
	return resp.header
}

func (resp *ResponseBuffer) Body() []byte {
	return resp.body.Bytes()
}

func (resp *ResponseBuffer) Write(body []byte) (int, error) {
	return resp.body.Write(body)
}

func (resp *ResponseBuffer) WriteHeader(statusCode int) {
	resp.status = statusCode
}

// Relay sends the recorded response through the envelope. A JSON body
// becomes the data of a success, or the message of a failure.
func (resp *ResponseBuffer) Relay(w http.ResponseWriter, r *http.Request) {
	var payload any
	if resp.body.Len() > 0 {
		if err := json.Unmarshal(resp.body.Bytes(), &payload); err != nil {
			payload = resp.body.String()
		}
	}

	status := resp.Status()
	if status < http.StatusBadRequest {
		Render(w, r, status, payload)
		return
	}

	msg, ok := payload.(string)
	if !ok || msg == "" {
		msg = http.StatusText(status)
	}
	renderFailure(w, r, status, msg, nil)
}
