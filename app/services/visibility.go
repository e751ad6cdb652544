package services

import "pressroom/app/models"

// visiblePosts keeps only the posts the public may see.
func visiblePosts(posts []*models.Post) []*models.Post {
	out := make([]*models.Post, 0, len(posts))
	for _, post := range posts {
		if post.IsVisible() {
			out = append(out, post)
		}
	}
	return out
}

// visibleComments keeps only the comments the public may see under post.
func visibleComments(post *models.Post, comments []*models.Comment) []*models.Comment {
	out := make([]*models.Comment, 0, len(comments))
	for _, comment := range comments {
		if comment.IsVisible(post) {
			out = append(out, comment)
		}
	}
	return out
}
