package controllers

import (
	"net/http"
	"strconv"

	"pressroom/app/metrics"
	"pressroom/app/models"
	"pressroom/app/services"

	"github.com/gorilla/mux"
)

// PostController handles the public read endpoints for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index lists published posts, optionally restricted to the {tag} route
// variable. The page query parameter is never rejected.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	list, err := pc.postService.ListPosts(r.URL.Query().Get("page"), mux.Vars(r)["tag"])
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, list)
}

// Show returns a published post addressed by its publish date and slug.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	year, okY := pathInt(r, "year")
	month, okM := pathInt(r, "month")
	day, okD := pathInt(r, "day")
	if !okY || !okM || !okD {
		sendError(w, "Not found", http.StatusNotFound)
		return
	}

	detail, err := pc.postService.GetPostDetail(year, month, day, mux.Vars(r)["slug"])
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, detail)
}

// Search ranks published posts against the query parameter. A missing or
// blank query yields no results.
func (pc *PostController) Search(w http.ResponseWriter, r *http.Request) {
	form := models.SearchForm{Query: r.URL.Query().Get("query")}
	if err := form.Clean(); err != nil {
		sendJSON(w, http.StatusOK, map[string]interface{}{
			"query":   "",
			"results": []services.SearchResult{},
		})
		return
	}

	metrics.RecordSearch()
	results, err := pc.postService.Search(form.Query)
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"query":   form.Query,
		"results": results,
	})
}

// Stats reports the number of published posts and the most commented ones.
func (pc *PostController) Stats(w http.ResponseWriter, r *http.Request) {
	count := services.MostCommentedDefault
	if raw := r.URL.Query().Get("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			count = n
		}
	}

	total, err := pc.postService.TotalPosts()
	if err != nil {
		handleError(w, r, err)
		return
	}
	most, err := pc.postService.MostCommented(count)
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"total_posts":    total,
		"most_commented": most,
	})
}
