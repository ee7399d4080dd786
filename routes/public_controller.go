package routes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/model"
)

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.Forms.ListForms(r.Context(), model.FormFilter{})
		if err != nil {
			httpx.RenderError(w, r, "list_forms", err)
			return
		}

		httpx.Render(w, r, http.StatusOK, forms)
	}
}

func GetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, ok := urlID(w, r, "id")
		if !ok {
			return
		}

		form, err := app.Forms.GetForm(r.Context(), formId)
		if err != nil {
			httpx.RenderError(w, r, "get_form", err)
			return
		}

		httpx.Render(w, r, http.StatusOK, form)
	}
}

func GetFormQuestions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, ok := urlID(w, r, "id")
		if !ok {
			return
		}

		questions, err := app.Forms.GetQuestions(r.Context(), formId)
		if err != nil {
			httpx.RenderError(w, r, "get_questions", err)
			return
		}

		httpx.Render(w, r, http.StatusOK, questions)
	}
}

func CreateResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, ok := urlID(w, r, "id")
		if !ok {
			return
		}

		item := model.AnswerItem{}
		if !decodeBody(w, r, &item) {
			return
		}

		resp, err := app.Forms.SubmitOne(r.Context(), formId, item.QuestionID, item.Answer)
		if err != nil {
			httpx.RenderError(w, r, "create_response", err)
			return
		}

		httpx.Render(w, r, http.StatusCreated, resp)
	}
}

type submission struct {
	Answers []model.AnswerItem `json:"answers"`
}

func SubmitForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, ok := urlID(w, r, "id")
		if !ok {
			return
		}

		body := submission{}
		if !decodeBody(w, r, &body) {
			return
		}

		n, err := app.Forms.Submit(r.Context(), formId, body.Answers)
		if err != nil {
			httpx.RenderError(w, r, "submit_form", err)
			return
		}

		httpx.Render(w, r, http.StatusCreated, map[string]any{
			"accepted_count": n,
		})
	}
}

func urlID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		httpx.LogBadInput(w, r, "request.get_url_param."+name, name, "%s is not a valid id.", name)
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		httpx.LogBadInput(w, r, "request.parse_body", "", "Malformed request body: %s", err)
		return false
	}
	return true
}
