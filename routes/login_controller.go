package routes

import (
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/log"
)

var reRefresh = regexp.MustCompile(`(?i)^refresh\s+(.*)`)

func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			httpx.LogStatus(w, r, http.StatusUnauthorized, log.DebugLevel, "login.basic_auth")
			return
		}

		body := url.Values{
			"grant_type": {"password"},
			"username":   {user},
			"password":   {pass},
		}
		r.Body = io.NopCloser(strings.NewReader(body.Encode()))
		setFormHeaders(r, body)

		resp := httpx.NewResponseBuffer()
		app.UserCredentials(resp, r)
		resp.Relay(w, r)
	}
}

func Refresh(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match := reRefresh.FindStringSubmatch(r.Header.Get("authorization"))
		if len(match) == 0 {
			httpx.LogStatus(w, r, http.StatusUnauthorized, log.DebugLevel, "refresh.token")
			return
		}
		token := match[1]

		body := url.Values{
			"grant_type":    {"refresh_token"},
			"refresh_token": {token},
		}

		req, err := http.NewRequestWithContext(r.Context(), "POST", "/", strings.NewReader(body.Encode()))
		if err != nil {
			httpx.LogInternalError(w, r, "refresh.new_request", err)
			return
		}
		setFormHeaders(req, body)

		resp := httpx.NewResponseBuffer()
		app.UserCredentials(resp, req)
		resp.Relay(w, r)
	}
}

func setFormHeaders(r *http.Request, body url.Values) {
	r.Header.Set("content-type", "application/x-www-form-urlencoded")
	r.Header.Set("content-length", strconv.Itoa(len(body.Encode())))
}
