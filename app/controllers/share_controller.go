package controllers

import (
	"errors"
	"net/http"

	"pressroom/app/metrics"
	"pressroom/app/models"
	"pressroom/app/services"
)

// ShareController handles recommending posts by email
type ShareController struct {
	shareService *services.ShareService
}

// NewShareController creates a new ShareController
func NewShareController(shareService *services.ShareService) *ShareController {
	return &ShareController{shareService: shareService}
}

// Share mails a recommendation. Every response carries "sent"; a transport
// failure is never reported as sent.
func (sc *ShareController) Share(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		shareFailed(w, http.StatusMethodNotAllowed, map[string]interface{}{"error": "Method not allowed"})
		return
	}

	postID, ok := pathInt(r, "id")
	if !ok {
		shareFailed(w, http.StatusBadRequest, map[string]interface{}{"error": "Invalid post ID"})
		return
	}

	var form models.ShareForm
	if err := bindForm(w, r, &form); err != nil {
		shareFailed(w, http.StatusBadRequest, map[string]interface{}{"error": "Invalid request body"})
		return
	}

	err := sc.shareService.SharePost(r.Context(), postID, &form)
	if err == nil {
		metrics.RecordShare("sent")
		sendJSON(w, http.StatusOK, map[string]interface{}{"sent": true})
		return
	}

	var (
		verrs models.ValidationErrors
		derr  *services.DeliveryError
	)
	switch {
	case errors.As(err, &verrs):
		metrics.RecordShare("invalid")
	case errors.As(err, &derr):
		metrics.RecordShare("failed")
	}
	status, body := errorResponse(r, err)
	shareFailed(w, status, body)
}

func shareFailed(w http.ResponseWriter, status int, body map[string]interface{}) {
	body["sent"] = false
	sendJSON(w, status, body)
}
