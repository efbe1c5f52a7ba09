package types

type Comment struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	PostID int    `json:"postId"`
	Body   string `json:"body"`
}

func (c Comment) EntityID() int { return c.ID }

func (c Comment) WithID(id int) Comment {
	c.ID = id
	return c
}
