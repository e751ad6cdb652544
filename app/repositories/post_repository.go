package repositories

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"pressroom/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if err := claimSlug(txn, post.Publish, post.Slug, 0); err != nil {
			return err
		}

		// Get next ID
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		return writePost(txn, post)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, postKey(id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves the post with slug published on the same UTC day as publish
func (r *BadgerPostRepository) GetBySlug(publish time.Time, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupSlug(txn, publish, slug)
		if err != nil {
			return err
		}
		return getEntity(txn, postKey(id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves every post regardless of status
func (r *BadgerPostRepository) List() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(PostKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByTag retrieves every post carrying the tag, using the tag index
func (r *BadgerPostRepository) ListByTag(tagSlug string) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := tagIndexPrefix(tagSlug)
		for _, key := range keysWithPrefix(txn, prefix) {
			id, err := strconv.Atoi(string(bytes.TrimPrefix(key, prefix)))
			if err != nil {
				return fmt.Errorf("corrupt tag index key %q: %w", key, err)
			}
			var post models.Post
			if err := getEntity(txn, postKey(id), &post); err != nil {
				return fmt.Errorf("tag index points at post %d: %w", id, err)
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetTag retrieves a tag by slug
func (r *BadgerPostRepository) GetTag(slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, tagKey(slug), &tag)
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListTags retrieves every known tag
func (r *BadgerPostRepository) ListTags() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(TagKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(TagKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var tag models.Tag
			if err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &tag)
			}); err != nil {
				return err
			}
			tags = append(tags, &tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// Update updates an existing post and re-points its indexes
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var existing models.Post
		if err := getEntity(txn, postKey(post.ID), &existing); err != nil {
			return err
		}

		if err := claimSlug(txn, post.Publish, post.Slug, post.ID); err != nil {
			return err
		}
		if err := dropIndexes(txn, &existing); err != nil {
			return err
		}
		return writePost(txn, post)
	})
}

// Delete deletes a post by ID along with its comments and index entries
func (r *BadgerPostRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var existing models.Post
		if err := getEntity(txn, postKey(id), &existing); err != nil {
			return err
		}

		for _, key := range keysWithPrefix(txn, commentPrefix(id)) {
			commentID, err := strconv.Atoi(string(bytes.TrimPrefix(key, commentPrefix(id))))
			if err == nil {
				if err := txn.Delete(commentIndexKey(commentID)); err != nil {
					return err
				}
			}
			if err := txn.Delete(key); err != nil {
				return err
			}
		}

		if err := dropIndexes(txn, &existing); err != nil {
			return err
		}
		return txn.Delete(postKey(id))
	})
}

// claimSlug fails with ErrDuplicateSlug when another post already holds the
// slug on that publish date. owner is the post allowed to hold it already.
func claimSlug(txn *badger.Txn, publish time.Time, slug string, owner int) error {
	id, err := lookupSlug(txn, publish, slug)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if id != owner {
		return ErrDuplicateSlug
	}
	return nil
}

func lookupSlug(txn *badger.Txn, publish time.Time, slug string) (int, error) {
	item, err := txn.Get(slugIndexKey(publish, slug))
	if err == badger.ErrKeyNotFound {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	var id int
	err = item.Value(func(val []byte) error {
		id = decodeID(val)
		return nil
	})
	return id, err
}

// writePost stores the post and its slug and tag index entries.
func writePost(txn *badger.Txn, post *models.Post) error {
	data, err := marshalEntity(post)
	if err != nil {
		return err
	}
	if err := txn.Set(postKey(post.ID), data); err != nil {
		return err
	}
	if err := txn.Set(slugIndexKey(post.Publish, post.Slug), encodeID(post.ID)); err != nil {
		return err
	}

	for _, tag := range post.Tags {
		if _, err := txn.Get(tagKey(tag.Slug)); err == badger.ErrKeyNotFound {
			tagData, err := marshalEntity(tag)
			if err != nil {
				return err
			}
			if err := txn.Set(tagKey(tag.Slug), tagData); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		if err := txn.Set(tagIndexKey(tag.Slug, post.ID), nil); err != nil {
			return err
		}
	}
	return nil
}

// dropIndexes removes the slug and tag index entries of a stored post. Tags
// themselves are shared and stay registered.
func dropIndexes(txn *badger.Txn, post *models.Post) error {
	if err := txn.Delete(slugIndexKey(post.Publish, post.Slug)); err != nil {
		return err
	}
	for _, tag := range post.Tags {
		if err := txn.Delete(tagIndexKey(tag.Slug, post.ID)); err != nil {
			return err
		}
	}
	return nil
}
