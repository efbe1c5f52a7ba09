package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"miniblog/pkg/types"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(apiServerURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(apiServerURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// Error is a non-success response. Message is the server's "error" field
// when the body carried one.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusNotFound
}

// Links

func (c *Client) Links() (types.LinkList, error) {
	var links types.LinkList
	err := c.do(http.MethodGet, "/", nil, nil, http.StatusOK, &links)
	return links, err
}

func (c *Client) APILinks() (types.LinkList, error) {
	var links types.LinkList
	err := c.do(http.MethodGet, "/api", c.keyed(nil), nil, http.StatusOK, &links)
	return links, err
}

// Comments

// CommentFilter narrows ListComments. Zero fields are not sent; UserID wins
// when both are set.
type CommentFilter struct {
	UserID int
	PostID int
}

func (c *Client) ListComments(f CommentFilter) ([]types.Comment, error) {
	q := url.Values{}
	setInt(q, "userId", f.UserID)
	setInt(q, "postId", f.PostID)
	var comments []types.Comment
	if err := c.do(http.MethodGet, "/comments", q, nil, http.StatusOK, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) GetComment(id int) (types.Comment, bool, error) {
	var comment types.Comment
	found, err := c.get(commentPath(id), nil, &comment)
	return comment, found, err
}

func (c *Client) CreateComment(comment types.Comment) (types.Comment, error) {
	var created types.Comment
	err := c.do(http.MethodPost, "/comments", nil, comment, http.StatusCreated, &created)
	return created, err
}

func (c *Client) UpdateCommentBody(id int, body string) (types.Comment, error) {
	var updated types.Comment
	err := c.do(http.MethodPatch, commentPath(id), nil, map[string]string{"body": body}, http.StatusOK, &updated)
	return updated, err
}

func (c *Client) DeleteComment(id int) (types.Comment, error) {
	var removed types.Comment
	err := c.do(http.MethodDelete, commentPath(id), nil, nil, http.StatusOK, &removed)
	return removed, err
}

// PostComments lists comments on a post, optionally only those by userID.
func (c *Client) PostComments(postID, userID int) ([]types.Comment, error) {
	q := url.Values{}
	setInt(q, "userId", userID)
	var comments []types.Comment
	if err := c.do(http.MethodGet, "/posts/"+strconv.Itoa(postID)+"/comments", q, nil, http.StatusOK, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// UserComments lists comments by a user, optionally only those on postID.
func (c *Client) UserComments(userID, postID int) ([]types.Comment, error) {
	q := url.Values{}
	setInt(q, "postId", postID)
	var comments []types.Comment
	if err := c.do(http.MethodGet, "/users/"+strconv.Itoa(userID)+"/comments", q, nil, http.StatusOK, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Users

func (c *Client) ListUsers() ([]types.User, error) {
	var users []types.User
	if err := c.do(http.MethodGet, "/api/users", c.keyed(nil), nil, http.StatusOK, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(id int) (types.User, bool, error) {
	var user types.User
	found, err := c.get(userPath(id), c.keyed(nil), &user)
	return user, found, err
}

func (c *Client) CreateUser(user types.User) (types.User, error) {
	var created types.User
	err := c.do(http.MethodPost, "/api/users", c.keyed(nil), user, http.StatusCreated, &created)
	return created, err
}

// UpdateUser sends only the non-empty fields of user.
func (c *Client) UpdateUser(id int, user types.User) (types.User, error) {
	patch := map[string]string{}
	setString(patch, "name", user.Name)
	setString(patch, "username", user.Username)
	setString(patch, "email", user.Email)
	var updated types.User
	err := c.do(http.MethodPatch, userPath(id), c.keyed(nil), patch, http.StatusOK, &updated)
	return updated, err
}

func (c *Client) DeleteUser(id int) (types.User, error) {
	var removed types.User
	err := c.do(http.MethodDelete, userPath(id), c.keyed(nil), nil, http.StatusOK, &removed)
	return removed, err
}

func (c *Client) UserPosts(id int) ([]types.Post, error) {
	var posts []types.Post
	if err := c.do(http.MethodGet, userPath(id)+"/posts", c.keyed(nil), nil, http.StatusOK, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Posts

// ListPosts lists all posts, or only those by userID when it is non-zero.
func (c *Client) ListPosts(userID int) ([]types.Post, error) {
	q := url.Values{}
	setInt(q, "userId", userID)
	var posts []types.Post
	if err := c.do(http.MethodGet, "/api/posts", c.keyed(q), nil, http.StatusOK, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(id int) (types.Post, bool, error) {
	var post types.Post
	found, err := c.get(postPath(id), c.keyed(nil), &post)
	return post, found, err
}

func (c *Client) CreatePost(post types.Post) (types.Post, error) {
	var created types.Post
	err := c.do(http.MethodPost, "/api/posts", c.keyed(nil), post, http.StatusCreated, &created)
	return created, err
}

// UpdatePost sends only the non-empty title and content of post.
func (c *Client) UpdatePost(id int, post types.Post) (types.Post, error) {
	patch := map[string]string{}
	setString(patch, "title", post.Title)
	setString(patch, "content", post.Content)
	var updated types.Post
	err := c.do(http.MethodPatch, postPath(id), c.keyed(nil), patch, http.StatusOK, &updated)
	return updated, err
}

func (c *Client) DeletePost(id int) (types.Post, error) {
	var removed types.Post
	err := c.do(http.MethodDelete, postPath(id), c.keyed(nil), nil, http.StatusOK, &removed)
	return removed, err
}

func (c *Client) get(path string, q url.Values, out any) (bool, error) {
	err := c.do(http.MethodGet, path, q, nil, http.StatusOK, out)
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) do(method, path string, q url.Values, body any, want int, out any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		apiErr := &Error{Method: method, Path: path, Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) keyed(q url.Values) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if c.apiKey != "" {
		q.Set("api-key", c.apiKey)
	}
	return q
}

func setInt(q url.Values, key string, v int) {
	if v != 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func setString(m map[string]string, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func commentPath(id int) string { return "/comments/" + strconv.Itoa(id) }
func userPath(id int) string    { return "/api/users/" + strconv.Itoa(id) }
func postPath(id int) string    { return "/api/posts/" + strconv.Itoa(id) }
