package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"miniblog/pkg/types"
)

const commentNotFound = "Comment not found"

func (s *Server) commentRoutes() chi.Router {
	r := s.newRouter()
	r.Get("/", s.handle(s.listComments))
	r.Post("/", s.handle(s.createComment))
	r.Get("/{id}", s.handle(s.getComment))
	r.Patch("/{id}", s.handle(s.patchComment))
	r.Delete("/{id}", s.handle(s.deleteComment))
	return r
}

// listComments filters by userId when given, otherwise by postId.
func (s *Server) listComments(w http.ResponseWriter, r *http.Request) error {
	byUser := queryFilter(r, "userId")
	byPost := queryFilter(r, "postId")

	var pred func(types.Comment) bool
	switch {
	case byUser.set:
		pred = func(c types.Comment) bool { return byUser.match(c.UserID) }
	case byPost.set:
		pred = func(c types.Comment) bool { return byPost.match(c.PostID) }
	default:
		pred = func(types.Comment) bool { return true }
	}
	return s.writeComments(w, pred)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) error {
	payload := PayloadFrom(r)
	userID, okUser := payload.Int("userId")
	postID, okPost := payload.Int("postId")
	body, okBody := payload.String("body")
	if !okUser || !okPost || !okBody {
		return BadRequest("Insufficient data to create comment")
	}

	comment, err := s.Comments.Create(types.Comment{UserID: userID, PostID: postID, Body: body})
	if err != nil {
		return fmt.Errorf("creating comment: %w", err)
	}
	writeJSON(w, http.StatusCreated, comment)
	return nil
}

func (s *Server) getComment(w http.ResponseWriter, r *http.Request) error {
	id, ok := pathID(r)
	if !ok {
		return NotFound(commentNotFound)
	}
	comment, found, err := s.Comments.Get(id)
	if err != nil {
		return fmt.Errorf("getting comment %d: %w", id, err)
	}
	if !found {
		return NotFound(commentNotFound)
	}
	writeJSON(w, http.StatusOK, comment)
	return nil
}

// patchComment only ever rewrites body.
func (s *Server) patchComment(w http.ResponseWriter, r *http.Request) error {
	id, ok := pathID(r)
	if !ok {
		return NotFound(commentNotFound)
	}
	body, hasBody := PayloadFrom(r).String("body")

	comment, err := s.Comments.Update(id, func(c types.Comment) (types.Comment, error) {
		if !hasBody {
			return c, BadRequest("Missing 'body' in request")
		}
		c.Body = body
		return c, nil
	})
	if err != nil {
		return storeError(err, commentNotFound)
	}
	writeJSON(w, http.StatusOK, comment)
	return nil
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) error {
	id, ok := pathID(r)
	if !ok {
		return NotFound(commentNotFound)
	}
	removed, err := s.Comments.Delete(id)
	if err != nil {
		return storeError(err, commentNotFound)
	}
	writeJSON(w, http.StatusOK, removed)
	return nil
}

// listPostComments serves /posts/{id}/comments, optionally narrowed by
// ?userId=. A userId that is not a number is ignored.
func (s *Server) listPostComments(w http.ResponseWriter, r *http.Request) error {
	post := pathFilter(r, "id")
	user := queryFilter(r, "userId").orAll()
	return s.writeComments(w, func(c types.Comment) bool {
		return post.match(c.PostID) && user.match(c.UserID)
	})
}

// listUserComments serves /users/{id}/comments, optionally narrowed by
// ?postId=. A postId that is not a number is ignored.
func (s *Server) listUserComments(w http.ResponseWriter, r *http.Request) error {
	user := pathFilter(r, "id")
	post := queryFilter(r, "postId").orAll()
	return s.writeComments(w, func(c types.Comment) bool {
		return user.match(c.UserID) && post.match(c.PostID)
	})
}

func (s *Server) writeComments(w http.ResponseWriter, pred func(types.Comment) bool) error {
	comments, err := s.Comments.Filter(pred)
	if err != nil {
		return fmt.Errorf("listing comments: %w", err)
	}
	writeJSON(w, http.StatusOK, comments)
	return nil
}
