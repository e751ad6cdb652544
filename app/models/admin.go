package models

// AdminConfig describes how a model is presented in the admin: which fields
// are listed, which can be filtered on, which are searched and the default
// ordering. A leading "-" in Ordering means descending.
type AdminConfig struct {
	ListDisplay        []string            `json:"list_display"`
	ListFilter         []string            `json:"list_filter"`
	Fields             []string            `json:"fields,omitempty"`
	SearchFields       []string            `json:"search_fields"`
	PrepopulatedFields map[string][]string `json:"prepopulated_fields,omitempty"`
	RawIDFields        []string            `json:"raw_id_fields,omitempty"`
	DateHierarchy      string              `json:"date_hierarchy,omitempty"`
	Ordering           []string            `json:"ordering"`
}

// PostAdmin is the admin configuration for posts.
var PostAdmin = AdminConfig{
	ListDisplay:        []string{"id", "title", "slug", "author", "publish", "status"},
	ListFilter:         []string{"status", "created", "publish", "author"},
	Fields:             []string{"title", "slug", "author", "body", "thumbnail", "tags", "publish", "status"},
	SearchFields:       []string{"title", "body"},
	PrepopulatedFields: map[string][]string{"slug": {"title"}},
	RawIDFields:        []string{"author"},
	DateHierarchy:      "publish",
	Ordering:           []string{"-status", "-publish"},
}

// CommentAdmin is the admin configuration for comments.
var CommentAdmin = AdminConfig{
	ListDisplay:  []string{"name", "email", "post_id", "created", "active"},
	ListFilter:   []string{"active", "created", "updated"},
	SearchFields: []string{"name", "email", "body"},
	Ordering:     []string{"created"},
}

// SearchValues returns the post's values for the configured search fields.
func (p *Post) SearchValues(fields []string) []string {
	values := make([]string, 0, len(fields))
	for _, field := range fields {
		switch field {
		case "title":
			values = append(values, p.Title)
		case "body":
			values = append(values, p.Body)
		case "slug":
			values = append(values, p.Slug)
		case "author":
			values = append(values, p.Author)
		}
	}
	return values
}

// SearchValues returns the comment's values for the configured search fields.
func (c *Comment) SearchValues(fields []string) []string {
	values := make([]string, 0, len(fields))
	for _, field := range fields {
		switch field {
		case "name":
			values = append(values, c.Name)
		case "email":
			values = append(values, c.Email)
		case "body":
			values = append(values, c.Body)
		}
	}
	return values
}
