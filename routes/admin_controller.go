package routes

import (
	"net/http"
	"strconv"

	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/model"
)

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := model.FormInput{}
		if !decodeBody(w, r, &in) {
			return
		}

		form, err := app.Forms.CreateForm(r.Context(), in)
		if err != nil {
			httpx.RenderError(w, r, "create_form", err)
			return
		}

		httpx.Render(w, r, http.StatusCreated, form)
	}
}

// AdminListForms lists forms newest first, optionally searching titles.
func AdminListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := model.FormFilter{Search: r.URL.Query().Get("search")}

		forms, err := app.Forms.ListForms(r.Context(), filter)
		if err != nil {
			httpx.RenderError(w, r, "admin.list_forms", err)
			return
		}

		httpx.Render(w, r, http.StatusOK, forms)
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, ok := urlID(w, r, "id")
		if !ok {
			return
		}

		in := model.FormInput{}
		if !decodeBody(w, r, &in) {
			return
		}

		form, err := app.Forms.UpdateForm(r.Context(), formId, in)
		if err != nil {
			httpx.RenderError(w, r, "update_form", err)
			return
		}

		httpx.Render(w, r, http.StatusOK, form)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, ok := urlID(w, r, "id")
		if !ok {
			return
		}

		err := app.Forms.DeleteForm(r.Context(), formId)
		if err != nil {
			httpx.RenderError(w, r, "delete_form", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func CreateQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, ok := urlID(w, r, "id")
		if !ok {
			return
		}

		in := model.QuestionInput{}
		if !decodeBody(w, r, &in) {
			return
		}

		q, err := app.Forms.CreateQuestion(r.Context(), formId, in)
		if err != nil {
			httpx.RenderError(w, r, "create_question", err)
			return
		}

		httpx.Render(w, r, http.StatusCreated, q)
	}
}

func UpdateQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		questionId, ok := urlID(w, r, "qid")
		if !ok {
			return
		}

		in := model.QuestionInput{}
		if !decodeBody(w, r, &in) {
			return
		}

		q, err := app.Forms.UpdateQuestion(r.Context(), formId, questionId, in)
		if err != nil {
			httpx.RenderError(w, r, "update_question", err)
			return
		}

		httpx.Render(w, r, http.StatusOK, q)
	}
}

func DeleteQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		questionId, ok := urlID(w, r, "qid")
		if !ok {
			return
		}

		err := app.Forms.DeleteQuestion(r.Context(), formId, questionId)
		if err != nil {
			httpx.RenderError(w, r, "delete_question", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListQuestions filters on ?form=, ?type=, ?required= and searches ?search=
// in the question text.
func ListQuestions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filter := model.QuestionFilter{
			Type:   model.QuestionType(query.Get("type")),
			Search: query.Get("search"),
		}
		var ok bool
		if filter.FormID, ok = queryID(w, r, "form"); !ok {
			return
		}
		if v := query.Get("required"); v != "" {
			required, err := strconv.ParseBool(v)
			if err != nil {
				httpx.LogBadInput(w, r, "request.get_query_param.required", "required", "required must be true or false.")
				return
			}
			filter.Required = &required
		}

		questions, err := app.Forms.ListQuestions(r.Context(), filter)
		if err != nil {
			httpx.RenderError(w, r, "admin.list_questions", err)
			return
		}

		httpx.Render(w, r, http.StatusOK, questions)
	}
}

// ListResponses filters on ?form= and ?question= and searches ?search= in
// the answers.
func ListResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := model.ResponseFilter{Search: r.URL.Query().Get("search")}
		var ok bool
		if filter.FormID, ok = queryID(w, r, "form"); !ok {
			return
		}
		if filter.QuestionID, ok = queryID(w, r, "question"); !ok {
			return
		}

		responses, err := app.Forms.ListResponses(r.Context(), filter)
		if err != nil {
			httpx.RenderError(w, r, "admin.list_responses", err)
			return
		}

		httpx.Render(w, r, http.StatusOK, responses)
	}
}

func GetResponseById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responseId, ok := urlID(w, r, "id")
		if !ok {
			return
		}

		resp, err := app.Forms.GetResponse(r.Context(), responseId)
		if err != nil {
			httpx.RenderError(w, r, "get_response", err)
			return
		}

		httpx.Render(w, r, http.StatusOK, resp)
	}
}

// queryID reads an optional id from the query string; absent is 0.
func queryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		httpx.LogBadInput(w, r, "request.get_query_param."+name, name, "%s is not a valid id.", name)
		return 0, false
	}
	return id, true
}
