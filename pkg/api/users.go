package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"miniblog/pkg/types"
)

const userNotFound = "User not found"

func (s *Server) userRoutes() chi.Router {
	r := s.newRouter()
	r.Get("/", s.handle(s.listUsers))
	r.Post("/", s.handle(s.createUser))
	r.Get("/{id}", s.handle(s.getUser))
	r.Patch("/{id}", s.handle(s.patchUser))
	r.Delete("/{id}", s.handle(s.deleteUser))
	r.Get("/{id}/posts", s.handle(s.listUserPosts))
	r.Get("/{id}/comments", s.handle(s.listUserComments))
	return r
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := s.Users.List()
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}
	writeJSON(w, http.StatusOK, users)
	return nil
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) error {
	payload := PayloadFrom(r)
	name, okName := payload.String("name")
	username, okUsername := payload.String("username")
	email, okEmail := payload.String("email")
	if !okName || !okUsername || !okEmail {
		return BadRequest("Insufficient Data")
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if err := s.checkUsername(username, 0); err != nil {
		return err
	}
	user, err := s.Users.Create(types.User{Name: name, Username: username, Email: email})
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	writeJSON(w, http.StatusCreated, user)
	return nil
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) error {
	id, ok := pathID(r)
	if !ok {
		return NotFound(userNotFound)
	}
	user, found, err := s.Users.Get(id)
	if err != nil {
		return fmt.Errorf("getting user %d: %w", id, err)
	}
	if !found {
		return NotFound(userNotFound)
	}
	writeJSON(w, http.StatusOK, user)
	return nil
}

// patchUser overwrites whichever of name, username and email are present.
func (s *Server) patchUser(w http.ResponseWriter, r *http.Request) error {
	id, ok := pathID(r)
	if !ok {
		return NotFound(userNotFound)
	}
	payload := PayloadFrom(r)
	name, hasName := payload.String("name")
	username, hasUsername := payload.String("username")
	email, hasEmail := payload.String("email")

	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if hasUsername {
		if err := s.checkUsername(username, id); err != nil {
			return err
		}
	}
	user, err := s.Users.Update(id, func(u types.User) (types.User, error) {
		if hasName {
			u.Name = name
		}
		if hasUsername {
			u.Username = username
		}
		if hasEmail {
			u.Email = email
		}
		return u, nil
	})
	if err != nil {
		return storeError(err, userNotFound)
	}
	writeJSON(w, http.StatusOK, user)
	return nil
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) error {
	id, ok := pathID(r)
	if !ok {
		return NotFound(userNotFound)
	}
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	removed, err := s.Users.Delete(id)
	if err != nil {
		return storeError(err, userNotFound)
	}
	writeJSON(w, http.StatusOK, removed)
	return nil
}

func (s *Server) listUserPosts(w http.ResponseWriter, r *http.Request) error {
	user := pathFilter(r, "id")
	return s.writePosts(w, func(p types.Post) bool { return user.match(p.UserID) })
}

// checkUsername fails with 409 when another user (not self) has username.
func (s *Server) checkUsername(username string, self int) error {
	taken, err := s.Users.Filter(func(u types.User) bool {
		return u.Username == username && u.ID != self
	})
	if err != nil {
		return fmt.Errorf("checking username: %w", err)
	}
	if len(taken) > 0 {
		return Conflict("Username Already Taken")
	}
	return nil
}
