package comments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"zapiski/models"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.AutoMigrate(&models.Post{}, &models.Comment{})
	return db
}

func TestFormatCreated_Yesterday(t *testing.T) {
	service := NewService(nil, "en_US")

	now := time.Date(2020, 5, 15, 12, 0, 0, 0, time.UTC)
	created := time.Date(2020, 5, 14, 20, 23, 0, 0, time.UTC)

	assert.Equal(t, "yesterday at 20:23", service.FormatCreated(created, now))
}

func TestFormatCreated_Today(t *testing.T) {
	service := NewService(nil, "en_US")

	now := time.Date(2020, 5, 15, 23, 0, 0, 0, time.UTC)
	created := time.Date(2020, 5, 15, 9, 5, 0, 0, time.UTC)

	assert.Equal(t, "today at 09:05", service.FormatCreated(created, now))
}

func TestFormatCreated_OlderGetsFullDate(t *testing.T) {
	service := NewService(nil, "en_US")

	now := time.Date(2020, 5, 15, 12, 0, 0, 0, time.UTC)
	created := time.Date(2020, 5, 10, 20, 23, 0, 0, time.UTC)

	// 2020-05-10 was a Sunday
	assert.Equal(t, "10 May 2020 (Sunday) 20:23", service.FormatCreated(created, now))
}

func TestFormatCreated_AcrossMonthBoundary(t *testing.T) {
	service := NewService(nil, "en_US")

	// Feb 29 -> Mar 1 is one elapsed calendar day, despite the day-of-month
	// numbers running backwards
	now := time.Date(2020, 3, 1, 10, 0, 0, 0, time.UTC)
	created := time.Date(2020, 2, 29, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "yesterday at 18:30", service.FormatCreated(created, now))
}

func TestFormatCreated_AcrossSpringForward(t *testing.T) {
	service := NewService(nil, "en_US")

	// US spring-forward (Mar 9 2025): local midnight-to-midnight is only 23
	// hours, but it is still one calendar day. The mixed fixed zones stand in
	// for the offsets a real DST zone resolves at each midnight.
	est := time.FixedZone("EST", -5*60*60)
	edt := time.FixedZone("EDT", -4*60*60)
	created := time.Date(2025, 3, 9, 18, 30, 0, 0, est)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, edt)

	assert.Equal(t, "yesterday at 18:30", service.FormatCreated(created, now))
}

func TestFormatCreated_AcrossYearBoundary(t *testing.T) {
	service := NewService(nil, "en_US")

	now := time.Date(2021, 1, 1, 10, 0, 0, 0, time.UTC)
	created := time.Date(2020, 12, 31, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "yesterday at 23:59", service.FormatCreated(created, now))
}

func TestFormatCreated_Russian(t *testing.T) {
	service := NewService(nil, "ru_RU")

	now := time.Date(2020, 5, 15, 12, 0, 0, 0, time.UTC)

	yesterday := time.Date(2020, 5, 14, 20, 23, 0, 0, time.UTC)
	assert.Equal(t, "вчера в 20:23", service.FormatCreated(yesterday, now))

	today := time.Date(2020, 5, 15, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "сегодня в 09:05", service.FormatCreated(today, now))

	older := time.Date(2020, 5, 10, 20, 23, 0, 0, time.UTC)
	assert.Equal(t, "10 мая 2020 (воскресенье) 20:23", service.FormatCreated(older, now))
}

func TestNewService_UnknownLocaleFallsBackToEnglish(t *testing.T) {
	service := NewService(nil, "de_DE")

	now := time.Date(2020, 5, 15, 12, 0, 0, 0, time.UTC)
	created := time.Date(2020, 5, 14, 20, 23, 0, 0, time.UTC)

	assert.Equal(t, "yesterday at 20:23", service.FormatCreated(created, now))
}

func TestFormatFullDate(t *testing.T) {
	service := NewService(nil, "en_US")

	ts := time.Date(2019, 12, 2, 19, 48, 0, 0, time.UTC) // a Monday
	assert.Equal(t, "02 December 2019 (Monday) 19:48", service.FormatFullDate(ts))
}

func TestCreate(t *testing.T) {
	db := setupTestDB()
	service := NewService(db, "en_US")

	post := models.Post{Title: "Post", Body: "body", Author: "alice", Slug: "post", Created: time.Now()}
	db.Create(&post)

	comment, err := service.Create(&post, "bob", "nice post")
	assert.NoError(t, err)
	assert.Equal(t, int(post.ID), comment.PostID)
	assert.Equal(t, "bob", comment.Author)
	assert.False(t, comment.Created.IsZero())
}

func TestViewsFor_OldestFirstAndStoredValueUntouched(t *testing.T) {
	db := setupTestDB()
	service := NewService(db, "en_US")

	post := models.Post{Title: "Post", Body: "body", Author: "alice", Slug: "post", Created: time.Now()}
	db.Create(&post)

	first := models.Comment{PostID: int(post.ID), Text: "first", Author: "bob",
		Created: time.Date(2020, 5, 10, 20, 23, 0, 0, time.UTC)}
	second := models.Comment{PostID: int(post.ID), Text: "second", Author: "carol",
		Created: time.Date(2020, 5, 14, 8, 0, 0, 0, time.UTC)}
	db.Create(&first)
	db.Create(&second)

	now := time.Date(2020, 5, 15, 12, 0, 0, 0, time.UTC)
	views, err := service.ViewsFor(&post, now)

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, "first", views[0].Text)
	assert.Equal(t, "10 May 2020 (Sunday) 20:23", views[0].Created)
	assert.Equal(t, "yesterday at 08:00", views[1].Created)

	// formatting never mutates the stored timestamp
	var stored models.Comment
	db.First(&stored, first.ID)
	assert.True(t, stored.Created.Equal(first.Created))
}
