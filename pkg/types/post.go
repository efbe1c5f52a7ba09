package types

type Post struct {
	ID      int    `json:"id"`
	UserID  int    `json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (p Post) EntityID() int { return p.ID }

func (p Post) WithID(id int) Post {
	p.ID = id
	return p
}
