package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"zapiski/common"
	"zapiski/models"
)

type AuthModule struct {
	db *gorm.DB
}

func NewAuthModule(db *gorm.DB) *AuthModule {
	return &AuthModule{db: db}
}

func (a *AuthModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/log_in", a.loginPage)
	router.POST("/log_in", a.loginPost)
	router.GET("/register", a.registerPage)
	router.POST("/register", a.registerPost)
	router.GET("/log_out", a.logout)
}

func (a *AuthModule) loginPage(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("username") != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (a *AuthModule) loginPost(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	var user models.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"error":    "Wrong username or password",
			"username": username,
		})
		return
	}

	if !checkPasswordHash(password, user.PasswordHash) {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"error":    "Wrong username or password",
			"username": username,
		})
		return
	}

	session := sessions.Default(c)
	session.Set("username", user.Username)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (a *AuthModule) registerPage(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("username") != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "register.html", gin.H{})
}

func (a *AuthModule) registerPost(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	firstName := c.PostForm("first_name")
	secondName := c.PostForm("second_name")
	number := c.PostForm("number")

	// values to re-render the form with on error (password excluded)
	formData := gin.H{
		"username":    username,
		"first_name":  firstName,
		"second_name": secondName,
		"number":      number,
	}

	if strings.TrimSpace(username) == "" || password == "" {
		formData["error"] = "Username and password are required"
		c.HTML(http.StatusBadRequest, "register.html", formData)
		return
	}

	var existingUser models.User
	if err := a.db.Where("username = ?", username).First(&existingUser).Error; err == nil {
		formData["error"] = "This username is already taken"
		c.HTML(http.StatusBadRequest, "register.html", formData)
		return
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		formData["error"] = "Failed to create account"
		c.HTML(http.StatusInternalServerError, "register.html", formData)
		return
	}

	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		SecondName:   secondName,
		Number:       number,
		Slug:         common.Slugify(username),
	}

	if err := a.db.Create(&user).Error; err != nil {
		// A concurrent registration can slip past the lookup above and
		// trip the unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			formData["error"] = "This username is already taken"
			c.HTML(http.StatusBadRequest, "register.html", formData)
			return
		}
		formData["error"] = "Failed to create account"
		c.HTML(http.StatusInternalServerError, "register.html", formData)
		return
	}

	session := sessions.Default(c)
	session.Set("username", user.Username)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (a *AuthModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/log_in")
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
