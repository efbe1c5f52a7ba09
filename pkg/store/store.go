package store

import (
	"errors"

	"miniblog/pkg/types"
)

var ErrNotFound = errors.New("record not found")

// Entity is a record that carries its own integer id. WithID returns a copy
// with the id replaced, so stores can assign ids without reflection.
type Entity[T any] interface {
	EntityID() int
	WithID(id int) T
}

// Store is an ordered collection of records. Ids are assigned on Create as
// max(existing)+1, or 1 when the store is empty, so ids freed by deleting the
// highest record are handed out again.
type Store[T Entity[T]] interface {
	List() ([]T, error)
	Get(id int) (T, bool, error)
	Filter(pred func(T) bool) ([]T, error)
	Create(t T) (T, error)
	Update(id int, fn func(T) (T, error)) (T, error)
	Delete(id int) (T, error)
}

type CommentStore = Store[types.Comment]
type UserStore = Store[types.User]
type PostStore = Store[types.Post]
