package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"miniblog/pkg/types"
)

const postNotFound = "Post not found"

func (s *Server) postRoutes() chi.Router {
	r := s.newRouter()
	r.Get("/", s.handle(s.listPosts))
	r.Post("/", s.handle(s.createPost))
	r.Get("/{id}", s.handle(s.getPost))
	r.Patch("/{id}", s.handle(s.patchPost))
	r.Delete("/{id}", s.handle(s.deletePost))
	r.Get("/{id}/comments", s.handle(s.listPostComments))
	return r
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) error {
	user := queryFilter(r, "userId")
	return s.writePosts(w, func(p types.Post) bool { return user.match(p.UserID) })
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) error {
	payload := PayloadFrom(r)
	userID, okUser := payload.Int("userId")
	title, okTitle := payload.String("title")
	content, okContent := payload.String("content")
	if !okUser || !okTitle || !okContent {
		return BadRequest("Insufficient Data")
	}

	post, err := s.Posts.Create(types.Post{UserID: userID, Title: title, Content: content})
	if err != nil {
		return fmt.Errorf("creating post: %w", err)
	}
	writeJSON(w, http.StatusCreated, post)
	return nil
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) error {
	id, ok := pathID(r)
	if !ok {
		return NotFound(postNotFound)
	}
	post, found, err := s.Posts.Get(id)
	if err != nil {
		return fmt.Errorf("getting post %d: %w", id, err)
	}
	if !found {
		return NotFound(postNotFound)
	}
	writeJSON(w, http.StatusOK, post)
	return nil
}

func (s *Server) patchPost(w http.ResponseWriter, r *http.Request) error {
	id, ok := pathID(r)
	if !ok {
		return NotFound(postNotFound)
	}
	payload := PayloadFrom(r)
	title, hasTitle := payload.String("title")
	content, hasContent := payload.String("content")

	post, err := s.Posts.Update(id, func(p types.Post) (types.Post, error) {
		if hasTitle {
			p.Title = title
		}
		if hasContent {
			p.Content = content
		}
		return p, nil
	})
	if err != nil {
		return storeError(err, postNotFound)
	}
	writeJSON(w, http.StatusOK, post)
	return nil
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) error {
	id, ok := pathID(r)
	if !ok {
		return NotFound(postNotFound)
	}
	removed, err := s.Posts.Delete(id)
	if err != nil {
		return storeError(err, postNotFound)
	}
	writeJSON(w, http.StatusOK, removed)
	return nil
}

func (s *Server) writePosts(w http.ResponseWriter, pred func(types.Post) bool) error {
	posts, err := s.Posts.Filter(pred)
	if err != nil {
		return fmt.Errorf("listing posts: %w", err)
	}
	writeJSON(w, http.StatusOK, posts)
	return nil
}
