package controllers

import (
	"net/http"
	"strconv"

	"pressroom/app/models"
	"pressroom/app/services"
)

// AdminController exposes content management to authenticated admins
type AdminController struct {
	postService    *services.PostService
	commentService *services.CommentService
}

// NewAdminController creates a new AdminController
func NewAdminController(postService *services.PostService, commentService *services.CommentService) *AdminController {
	return &AdminController{postService: postService, commentService: commentService}
}

// Config returns the admin configuration of every model.
func (ac *AdminController) Config(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]models.AdminConfig{
		"post":    models.PostAdmin,
		"comment": models.CommentAdmin,
	})
}

// ListPosts lists posts of any status. Supported filters: status, author,
// year, month, day, q and page.
func (ac *AdminController) ListPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := services.AdminPostQuery{
		Status: models.Status(query.Get("status")),
		Author: query.Get("author"),
		Year:   atoiOrZero(query.Get("year")),
		Month:  atoiOrZero(query.Get("month")),
		Day:    atoiOrZero(query.Get("day")),
		Query:  query.Get("q"),
		Page:   query.Get("page"),
	}

	page, err := ac.postService.AdminListPosts(q)
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, page)
}

// CreatePost handles creating a new post
func (ac *AdminController) CreatePost(w http.ResponseWriter, r *http.Request) {
	var form models.PostForm
	if err := decodeJSON(w, r, &form); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := ac.postService.CreatePost(&form)
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// GetPost returns a post of any status by id.
func (ac *AdminController) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := ac.postService.GetPost(id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// UpdatePost handles editing an existing post
func (ac *AdminController) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var form models.PostForm
	if err := decodeJSON(w, r, &form); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := ac.postService.UpdatePost(id, &form)
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// DeletePost handles deleting a post and its comments
func (ac *AdminController) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := ac.postService.DeletePost(id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTags returns every known tag.
func (ac *AdminController) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := ac.postService.ListTags()
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, tags)
}

// ListComments lists comments of any state. Supported filters: active,
// post, q and page.
func (ac *AdminController) ListComments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := services.AdminCommentQuery{
		PostID: atoiOrZero(query.Get("post")),
		Query:  query.Get("q"),
		Page:   query.Get("page"),
	}
	if raw := query.Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			sendError(w, "Invalid active filter", http.StatusBadRequest)
			return
		}
		q.Active = &active
	}

	page, err := ac.commentService.AdminListComments(q)
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, page)
}

// PatchComment activates or deactivates a comment.
func (ac *AdminController) PatchComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		sendError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Active *bool `json:"active"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if body.Active == nil {
		errs := models.ValidationErrors{}
		errs.Add("active", "This field is required.")
		handleError(w, r, errs)
		return
	}

	comment, err := ac.commentService.SetActive(id, *body.Active)
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}

// DeleteComment removes a comment.
func (ac *AdminController) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		sendError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	if err := ac.commentService.DeleteComment(id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
