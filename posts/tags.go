package posts

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"zapiski/common"
	"zapiski/models"
)

// tag text splits on any run of whitespace, commas or periods
var tagDelimiters = regexp.MustCompile(`[\s,.]+`)

// splitTagNames tokenizes free-form tag text into a deduplicated set of
// candidate names. Delimiters at the edges yield empty tokens, which are
// skipped.
func splitTagNames(raw string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range tagDelimiters.Split(raw, -1) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// tagSlug derives a slug from the tag name, appending a numeric suffix when
// a different tag already claimed it ("Go!" and "go" both slugify to "go").
func tagSlug(tx *gorm.DB, name string) (string, error) {
	base := common.Slugify(name)
	if base == "" {
		base = "tag"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := tx.Model(&models.Tag{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// reconcileTags maps each candidate name to an existing tag by exact name
// match, creating missing ones with a slug derived from the name. Meant to
// run inside the caller's transaction so lookup and insert commit together.
func reconcileTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		err := tx.Where("name = ?", name).First(&tag).Error

		if err == gorm.ErrRecordNotFound {
			slug, err := tagSlug(tx, name)
			if err != nil {
				return nil, err
			}
			tag = models.Tag{Name: name, Slug: slug}
			if err := tx.Create(&tag).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}

		tags = append(tags, tag)
	}
	return tags, nil
}

// replacePostTags swaps a post's tag set for the one reconciled from raw
// tag text. Detach and reattach happen in a single transaction, so the post
// never shows a transient empty set to other requests. Empty input leaves
// the post with zero tags; orphaned tags persist.
func replacePostTags(db *gorm.DB, postID int, raw string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}

		tags, err := reconcileTags(tx, splitTagNames(raw))
		if err != nil {
			return err
		}

		for _, tag := range tags {
			postTag := models.PostTag{
				PostID: postID,
				TagID:  int(tag.ID),
			}
			if err := tx.Create(&postTag).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// tagsForPost loads the tags attached to a post.
func tagsForPost(db *gorm.DB, postID int) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.Table("tags").
		Joins("INNER JOIN post_tags ON tags.id = post_tags.tag_id").
		Where("post_tags.post_id = ?", postID).
		Find(&tags).Error
	return tags, err
}

// tagLine joins tag names for prefilling the edit form.
func tagLine(tags []models.Tag) string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return strings.Join(names, ", ")
}
