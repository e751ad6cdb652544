package controllers

import (
	"net/http"

	"pressroom/app/metrics"
	"pressroom/app/models"
	"pressroom/app/services"
)

// CommentController handles reader comment submission
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Create adds a comment to a published post. Only POST is accepted.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowed(w, r)
		return
	}

	postID, ok := pathInt(r, "id")
	if !ok {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var form models.CommentForm
	if err := bindForm(w, r, &form); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := cc.commentService.SubmitComment(postID, &form)
	if err != nil {
		metrics.RecordComment("rejected")
		handleError(w, r, err)
		return
	}
	metrics.RecordComment("created")
	sendJSON(w, http.StatusCreated, map[string]interface{}{"comment": comment})
}
