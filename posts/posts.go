package posts

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"zapiski/comments"
	"zapiski/models"
)

type PostsModule struct {
	db       *gorm.DB
	repo     *Repository
	comments *comments.Service
}

func NewPostsModule(db *gorm.DB, commentService *comments.Service) *PostsModule {
	return &PostsModule{
		db:       db,
		repo:     NewRepository(db),
		comments: commentService,
	}
}

func (p *PostsModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", p.index)
	router.GET("/create", p.createPage)
	router.POST("/create", p.createPost)
	router.GET("/search/", p.search)
	router.GET("/tag/:slug/", p.tagDetail)
	router.GET("/about/:slug", p.about)
	router.GET("/:slug", p.postContent)
	router.POST("/:slug", p.createComment)
	router.GET("/:slug/edit/", p.editPage)
	router.POST("/:slug/edit/", p.updatePost)
}

// currentUsername reads the session identity. The second return is false
// when no one is logged in.
func currentUsername(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	username, ok := session.Get("username").(string)
	return username, ok && username != ""
}

func (p *PostsModule) index(c *gin.Context) {
	page := parsePage(c.Query("page"))

	posts, pages, err := p.repo.ListPage(p.repo.All(), page, defaultPerPage, defaultPerPage)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load posts"})
		return
	}

	// truncate display copies only; the stored bodies stay intact
	for i := range posts {
		posts[i].Body = feedPreview(posts[i].Body)
	}

	session := sessions.Default(c)
	flashes := session.Flashes()
	session.Save()

	c.HTML(http.StatusOK, "index.html", gin.H{
		"posts":   posts,
		"pages":   pages,
		"flashes": flashes,
	})
}

func (p *PostsModule) createPage(c *gin.Context) {
	if _, ok := currentUsername(c); !ok {
		c.Redirect(http.StatusFound, "/log_in")
		return
	}

	c.HTML(http.StatusOK, "create_post.html", gin.H{})
}

func (p *PostsModule) createPost(c *gin.Context) {
	username, ok := currentUsername(c)
	if !ok {
		c.Redirect(http.StatusFound, "/log_in")
		return
	}

	title := c.PostForm("title")
	body := c.PostForm("body")
	tags := c.PostForm("tags")

	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		c.HTML(http.StatusBadRequest, "create_post.html", gin.H{
			"error": "Title and body are required",
			"title": title,
			"body":  body,
			"tags":  tags,
		})
		return
	}

	post, err := p.repo.Create(title, body, username)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to create post"})
		return
	}

	if err := replacePostTags(p.db, int(post.ID), tags); err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to process tags"})
		return
	}

	session := sessions.Default(c)
	session.AddFlash("Post created")
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

// loadOwnPost resolves the slug and enforces that the session user is the
// post's author. Missing post renders 404, missing session redirects to
// login, a foreign author gets 403.
func (p *PostsModule) loadOwnPost(c *gin.Context) (*models.Post, bool) {
	post, err := p.repo.FindBySlug(c.Param("slug"))
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load post"})
		return nil, false
	}
	if post == nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Post not found"})
		return nil, false
	}

	username, ok := currentUsername(c)
	if !ok {
		c.Redirect(http.StatusFound, "/log_in")
		return nil, false
	}
	if username != post.Author {
		c.HTML(http.StatusForbidden, "error.html", gin.H{"error": "Only the author can edit this post"})
		return nil, false
	}

	return post, true
}

func (p *PostsModule) editPage(c *gin.Context) {
	post, ok := p.loadOwnPost(c)
	if !ok {
		return
	}

	tags, err := tagsForPost(p.db, int(post.ID))
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load tags"})
		return
	}

	c.HTML(http.StatusOK, "edit_post.html", gin.H{
		"post": post,
		"tags": tagLine(tags),
	})
}

func (p *PostsModule) updatePost(c *gin.Context) {
	post, ok := p.loadOwnPost(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	body := c.PostForm("body")
	tags := c.PostForm("tags")

	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		c.HTML(http.StatusBadRequest, "edit_post.html", gin.H{
			"post":  post,
			"tags":  tags,
			"error": "Title and body are required",
		})
		return
	}

	if err := p.repo.Update(post, title, body); err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to save post"})
		return
	}

	if err := replacePostTags(p.db, int(post.ID), tags); err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to process tags"})
		return
	}

	session := sessions.Default(c)
	session.AddFlash("Post saved")
	session.Save()

	c.Redirect(http.StatusFound, "/"+post.Slug)
}

func (p *PostsModule) postContent(c *gin.Context) {
	post, err := p.repo.FindBySlug(c.Param("slug"))
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load post"})
		return
	}
	if post == nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Post not found"})
		return
	}

	p.renderPostPage(c, post, http.StatusOK, "", "")
}

// renderPostPage renders the post view; also used to re-show the page with
// an error when a comment submission fails validation.
func (p *PostsModule) renderPostPage(c *gin.Context, post *models.Post, status int, formError, commentText string) {
	tags, err := tagsForPost(p.db, int(post.ID))
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load tags"})
		return
	}

	// the author profile may be absent: author is a denormalized username,
	// not a foreign key
	var user *models.User
	var u models.User
	if err := p.db.Where("username = ?", post.Author).First(&u).Error; err == nil {
		user = &u
	}

	commentViews, err := p.comments.ViewsFor(post, time.Now())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load comments"})
		return
	}

	session := sessions.Default(c)
	flashes := session.Flashes()
	session.Save()

	c.HTML(status, "post_content.html", gin.H{
		"post":        post,
		"bodyHTML":    template.HTML(renderMarkdown(post.Body)),
		"time":        p.comments.FormatFullDate(post.Created),
		"tags":        tags,
		"author":      post.Author,
		"user":        user,
		"comments":    commentViews,
		"flashes":     flashes,
		"error":       formError,
		"commentText": commentText,
	})
}

func (p *PostsModule) createComment(c *gin.Context) {
	post, err := p.repo.FindBySlug(c.Param("slug"))
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load post"})
		return
	}
	if post == nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Post not found"})
		return
	}

	username, ok := currentUsername(c)
	if !ok {
		c.Redirect(http.StatusFound, "/log_in")
		return
	}

	text := c.PostForm("text")
	if strings.TrimSpace(text) == "" {
		p.renderPostPage(c, post, http.StatusBadRequest, "Comment text is required", text)
		return
	}

	if _, err := p.comments.Create(post, username, text); err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to create comment"})
		return
	}

	session := sessions.Default(c)
	session.AddFlash("Comment created")
	session.Save()

	c.Redirect(http.StatusFound, "/"+post.Slug)
}

func (p *PostsModule) about(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "anonymous" {
		c.Redirect(http.StatusFound, "/log_in")
		return
	}
	if _, ok := currentUsername(c); !ok {
		c.Redirect(http.StatusFound, "/log_in")
		return
	}

	var user models.User
	if err := p.db.Where("slug = ?", slug).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "User not found"})
		} else {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load user"})
		}
		return
	}

	c.HTML(http.StatusOK, "about.html", gin.H{
		"firstName":  user.FirstName,
		"secondName": user.SecondName,
		"username":   user.Username,
		"number":     user.Number,
	})
}

func (p *PostsModule) tagDetail(c *gin.Context) {
	var tag models.Tag
	if err := p.db.Where("slug = ?", c.Param("slug")).First(&tag).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Tag not found"})
		} else {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load tag"})
		}
		return
	}

	page := parsePage(c.Query("page"))
	// tag listings honor a caller-supplied page size with no cap; the feed
	// and search clamp to 5
	perPage := parsePerPage(c.Query("per_page"), 0)

	posts, pages, err := p.repo.ListPage(p.repo.ByTag(&tag), page, perPage, 0)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load posts"})
		return
	}

	c.HTML(http.StatusOK, "tag_detail.html", gin.H{
		"tag":   tag,
		"posts": posts,
		"pages": pages,
	})
}

func (p *PostsModule) search(c *gin.Context) {
	q := c.Query("q")
	page := parsePage(c.Query("page"))

	query := p.repo.All()
	if q != "" {
		query = p.repo.Search(q)
	}

	posts, pages, err := p.repo.ListPage(query, page, defaultPerPage, defaultPerPage)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to search posts"})
		return
	}

	c.HTML(http.StatusOK, "search.html", gin.H{
		"posts": posts,
		"pages": pages,
		"q":     q,
	})
}
