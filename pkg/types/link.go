package types

// Link is a single HATEOAS entry returned by the index endpoints.
type Link struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
	Type string `json:"type"`
}

type LinkList struct {
	Links []Link `json:"links"`
}
