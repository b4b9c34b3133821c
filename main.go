package main

import (
	"log"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"zapiski/auth"
	"zapiski/comments"
	"zapiski/common"
	"zapiski/database"
	"zapiski/posts"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	db := common.ConnectDb()
	if db == nil {
		log.Fatal("Failed to connect to database")
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	router := gin.Default()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET environment variable not set")
	}

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
	})

	router.Use(sessions.Sessions("zapiski-session", store))

	router.LoadHTMLGlob("*/views/*.html")

	router.Static("/public", "./public")

	// locale is resolved once here and handed to the comment service; no
	// process-global locale state
	locale := common.DetectLocale()
	log.Printf("Formatting timestamps for locale %s", locale)

	commentService := comments.NewService(db, locale)

	authModule := auth.NewAuthModule(db)
	authModule.RegisterRoutes(router)

	postsModule := posts.NewPostsModule(db, commentService)
	postsModule.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
