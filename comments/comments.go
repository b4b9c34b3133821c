package comments

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"zapiski/models"
)

// phrase pair for relative comment timestamps, one entry per supported
// locale
type phrases struct {
	Yesterday string
	Today     string
}

var commentPhrases = map[string]phrases{
	"ru_RU": {"вчера в ", "сегодня в "},
	"en_US": {"yesterday at ", "today at "},
}

// month names as they read inside a date ("19 января 2020")
var monthNames = map[string][12]string{
	"en_US": {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	"ru_RU": {
		"января", "февраля", "марта", "апреля", "мая", "июня",
		"июля", "августа", "сентября", "октября", "ноября", "декабря",
	},
}

// indexed by time.Weekday, Sunday first
var weekdayNames = map[string][7]string{
	"en_US": {
		"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
	},
	"ru_RU": {
		"воскресенье", "понедельник", "вторник", "среда", "четверг", "пятница", "суббота",
	},
}

const fallbackLocale = "en_US"

// Service creates comments and formats their timestamps for display.
// The locale is fixed at construction; nothing here touches process-global
// locale state.
type Service struct {
	db     *gorm.DB
	locale string
}

// NewService builds a comment service for the given locale identifier.
// Unrecognized locales fall back to English phrasing.
func NewService(db *gorm.DB, locale string) *Service {
	if _, ok := commentPhrases[locale]; !ok {
		locale = fallbackLocale
	}
	return &Service{db: db, locale: locale}
}

// Create persists a new comment on a post. The author must already be an
// authenticated identity; that is the caller's concern.
func (s *Service) Create(post *models.Post, author, text string) (*models.Comment, error) {
	comment := models.Comment{
		PostID:  int(post.ID),
		Text:    text,
		Author:  author,
		Created: time.Now(),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// View is the display copy of a comment. The stored Created value stays
// untouched; only this copy carries the formatted timestamp.
type View struct {
	Author  string
	Text    string
	Created string
}

// ViewsFor loads a post's comments, oldest first, with timestamps formatted
// relative to now.
func (s *Service) ViewsFor(post *models.Post, now time.Time) ([]View, error) {
	var list []models.Comment
	err := s.db.Where("post_id = ?", post.ID).Order("created ASC").Find(&list).Error
	if err != nil {
		return nil, err
	}

	views := make([]View, len(list))
	for i, comment := range list {
		views[i] = View{
			Author:  comment.Author,
			Text:    comment.Text,
			Created: s.FormatCreated(comment.Created, now),
		}
	}
	return views, nil
}

// FormatCreated renders a comment timestamp relative to now. A comment from
// the previous calendar day gets the "yesterday" phrase, same-day (or newer)
// the "today" phrase, anything older the full date. The delta is counted in
// whole calendar days, midnight to midnight, so month boundaries behave.
func (s *Service) FormatCreated(created, now time.Time) string {
	p := commentPhrases[s.locale]
	switch delta := calendarDaysBetween(created, now); {
	case delta == 1:
		return p.Yesterday + created.Format("15:04")
	case delta < 1:
		return p.Today + created.Format("15:04")
	default:
		return s.FormatFullDate(created)
	}
}

// FormatFullDate renders "<day> <month> <year> (<weekday>) <HH:MM>" with
// localized month and weekday names.
func (s *Service) FormatFullDate(t time.Time) string {
	months := monthNames[s.locale]
	weekdays := weekdayNames[s.locale]
	return fmt.Sprintf("%02d %s %d (%s) %s",
		t.Day(), months[t.Month()-1], t.Year(), weekdays[t.Weekday()], t.Format("15:04"))
}

// Midnights are rebuilt in UTC so the difference is an exact multiple of
// 24h even when the local zone has a 23- or 25-hour DST day.
func calendarDaysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}
