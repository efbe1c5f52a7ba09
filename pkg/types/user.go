package types

type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) EntityID() int { return u.ID }

func (u User) WithID(id int) User {
	u.ID = id
	return u
}
