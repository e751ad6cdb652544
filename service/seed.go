package service

import (
	"errors"
	"fmt"

	"pressroom/app/models"
	"pressroom/app/repositories"
	"pressroom/app/services"

	"github.com/spf13/cobra"
)

var samplePosts = []models.PostForm{
	{
		Title:  "Who was Django Reinhardt?",
		Author: "admin",
		Body:   "Django Reinhardt was a Belgian-born jazz guitarist who shaped the sound of gypsy jazz.",
		Status: models.StatusPublished,
		Tags:   []string{"music", "jazz"},
	},
	{
		Title:  "Storing a blog in a key/value store",
		Author: "admin",
		Body:   "Posts, comments and tags live in Badger with secondary indexes kept in the same transaction.",
		Status: models.StatusPublished,
		Tags:   []string{"storage", "go"},
	},
	{
		Title:  "Ranking search results",
		Author: "admin",
		Body:   "Every query term has to match; term frequency is damped by the length of the post.",
		Status: models.StatusPublished,
		Tags:   []string{"search", "go"},
	},
	{
		Title:  "Notes for a future post",
		Author: "admin",
		Body:   "Drafts are never shown publicly.",
		Status: models.StatusDraft,
		Tags:   []string{"go"},
	},
}

// Seed stores the sample posts and returns how many were created. Posts
// whose slug is already taken for the day are skipped.
func Seed(store *repositories.Store) (int, error) {
	svc := services.NewPostService(store.Posts, store.Comments)
	created := 0
	for i := range samplePosts {
		form := samplePosts[i]
		if _, err := svc.CreatePost(&form); err != nil {
			if errors.Is(err, repositories.ErrDuplicateSlug) {
				continue
			}
			return created, fmt.Errorf("seed %q: %w", form.Title, err)
		}
		created++
	}
	return created, nil
}

func (c *cli) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add sample posts to the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := repositories.Open(c.cfg.DBPath, c.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := Seed(store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d sample posts\n", n)
			return nil
		},
	}
}
