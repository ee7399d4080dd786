package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.RequestID, middleware.RealIP, middlewares.RequestLogger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()
	api.Use(render.SetContentType(render.ContentTypeJSON))

	api.Get("/forms", ListForms(app))
	api.Get(`/forms/{id:^\d+$}`, GetFormById(app))
	api.Get(`/forms/{id:^\d+$}/questions`, GetFormQuestions(app))
	api.Post(`/forms/{id:^\d+$}/responses`, CreateResponse(app))
	api.Post(`/forms/{id:^\d+$}/submissions`, SubmitForm(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		// CRUD form
		r.Post("/forms", CreateForm(app))
		r.Get("/forms", AdminListForms(app))
		r.Get(`/forms/{id:^\d+$}`, GetFormById(app))
		r.Put(`/forms/{id:^\d+$}`, UpdateForm(app))
		r.Delete(`/forms/{id:^\d+$}`, DeleteForm(app))

		// CRUD question
		r.Post(`/forms/{id:^\d+$}/questions`, CreateQuestion(app))
		r.Put(`/forms/{id:^\d+$}/questions/{qid:^\d+$}`, UpdateQuestion(app))
		r.Delete(`/forms/{id:^\d+$}/questions/{qid:^\d+$}`, DeleteQuestion(app))

		r.Get("/questions", ListQuestions(app))
		r.Get("/responses", ListResponses(app))
		r.Get(`/responses/{id:^\d+$}`, GetResponseById(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}
