// Routes:
//
//	GET    /                      HATEOAS links
//	GET    /api                   HATEOAS links (api key)
//	*      /api/users/...         users (api key)
//	*      /api/posts/...         posts (api key)
//	GET    /comments              ?userId= | ?postId=
//	POST   /comments
//	GET    /comments/{id}
//	PATCH  /comments/{id}
//	DELETE /comments/{id}
//	GET    /posts/{id}/comments   ?userId=
//	GET    /users/{id}/comments   ?postId=
//
// Anything else is 404 "Resource Not Found". Errors are always
// {"error": "<message>"}.
package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"miniblog/pkg/store"
)

type Server struct {
	Comments store.CommentStore
	Users    store.UserStore
	Posts    store.PostStore
	APIKeys  []string
	Logger   *zerolog.Logger

	// usersMu serializes user writes so a username uniqueness check and the
	// write that follows it see the same store state.
	usersMu sync.Mutex
}

// Routes builds the request pipeline: panic recovery, body decoding,
// request logging, the /api key gate, resource routers, the not-found
// fallback. Handler errors go to the error renderer.
func (s *Server) Routes() http.Handler {
	keys := make(map[string]struct{}, len(s.APIKeys))
	for _, k := range s.APIKeys {
		keys[k] = struct{}{}
	}

	r := s.newRouter()
	r.Use(middleware.StripSlashes)
	r.Use(s.recoverPanics)
	r.Use(s.decodeBody)
	r.Use(s.logRequests)

	r.Get("/", s.handle(s.rootLinks))

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireAPIKey(keys))
		r.Get("/", s.handle(s.apiLinks))
		r.Mount("/users", s.userRoutes())
		r.Mount("/posts", s.postRoutes())
	})

	r.Mount("/comments", s.commentRoutes())
	r.Get("/posts/{id}/comments", s.handle(s.listPostComments))
	r.Get("/users/{id}/comments", s.handle(s.listUserComments))

	return r
}

// newRouter returns a router whose unmatched paths and methods both render
// 404 "Resource Not Found".
func (s *Server) newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.notFound)
	return r
}

func (s *Server) logger() *zerolog.Logger {
	if s.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return s.Logger
}
