package models

import "time"

type User struct {
	ID           int    `gorm:"primary_key;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null;index" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"` // json:"-" prevents password from being exposed in API
	FirstName    string `json:"first_name"`
	SecondName   string `json:"second_name"`
	Number       string `json:"number"` // contact phone shown on the profile page
	Slug         string `gorm:"unique;not null;index" json:"slug"`
}

type Post struct {
	ID      uint      `gorm:"primary_key"`
	Title   string    `gorm:"not null" json:"title"`
	Body    string    `gorm:"type:text" json:"body"`
	Author  string    `gorm:"not null;index" json:"author"` // denormalized username, not a foreign key
	Created time.Time `gorm:"column:created;index" json:"created"`
	Slug    string    `gorm:"not null;index" json:"slug"` // assigned once at creation, stable afterwards
}

type Tag struct {
	ID   uint   `gorm:"primary_key"`
	Name string `gorm:"size:46;uniqueIndex;not null" json:"name"`
	Slug string `gorm:"size:100;unique;not null" json:"slug"`
}

type Comment struct {
	ID      uint      `gorm:"primary_key"`
	PostID  int       `gorm:"not null;index" json:"post_id"`
	Text    string    `gorm:"type:text;not null" json:"text"`
	Author  string    `gorm:"not null" json:"author"`
	Created time.Time `gorm:"column:created" json:"created"`
}

type PostTag struct {
	ID     uint `gorm:"primary_key"`
	PostID int  `gorm:"not null;index" json:"post_id"`
	TagID  int  `gorm:"not null;index" json:"tag_id"`
}
