package posts

import (
	"time"

	"gorm.io/gorm"

	"zapiski/common"
	"zapiski/models"
)

// Repository composes the post queries: ordering, filtering and pagination.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(title, body, author string) (*models.Post, error) {
	post := models.Post{
		Title:   title,
		Body:    body,
		Author:  author,
		Slug:    common.Slugify(title),
		Created: time.Now(),
	}
	if err := r.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update replaces title and body. Author and slug never change after
// creation.
func (r *Repository) Update(post *models.Post, title, body string) error {
	post.Title = title
	post.Body = body
	return r.db.Save(post).Error
}

// FindBySlug returns (nil, nil) when no post carries the slug; callers must
// handle the missing case explicitly.
func (r *Repository) FindBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.Where("slug = ?", slug).First(&post).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// All is the unfiltered listing; ListPage applies the chronological order.
func (r *Repository) All() *gorm.DB {
	return r.db.Model(&models.Post{})
}

// ByTag filters posts carrying the given tag.
func (r *Repository) ByTag(tag *models.Tag) *gorm.DB {
	return r.db.Model(&models.Post{}).
		Joins("INNER JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tag.ID)
}

// Search matches posts whose title or body contains q, or that carry a tag
// named exactly q. A single matching condition suffices.
func (r *Repository) Search(q string) *gorm.DB {
	tagged := r.db.Table("post_tags").
		Select("post_tags.post_id").
		Joins("INNER JOIN tags ON tags.id = post_tags.tag_id").
		Where("tags.name = ?", q)

	return r.db.Model(&models.Post{}).
		Where("posts.title LIKE ? OR posts.body LIKE ? OR posts.id IN (?)",
			"%"+q+"%", "%"+q+"%", tagged)
}

// ListPage orders the query newest first and returns one page of posts.
// maxPerPage caps the page size when positive; zero leaves the caller's
// size uncapped.
func (r *Repository) ListPage(query *gorm.DB, page, perPage, maxPerPage int) ([]models.Post, Pagination, error) {
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}

	q := query.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	var posts []models.Post
	err := q.Order("posts.created DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&posts).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return posts, Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}, nil
}
