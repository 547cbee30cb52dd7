// Package dto holds the read models returned by the course use cases.
package dto

import (
	"time"

	"studia/internal/domain/course"
	"studia/internal/shared/biztime"
	"studia/internal/shared/utils"
)

// CourseView is the API-facing representation of a course.
type CourseView struct {
	SID             string     `json:"id"`
	AuthorSID       string     `json:"author_id,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	DescriptionHTML string     `json:"description_html,omitempty"`
	PriceCents      int64      `json:"price_cents"`
	PriceFormatted  string     `json:"price_formatted"`
	Currency        string     `json:"currency"`
	VideoURL        string     `json:"video_url,omitempty"`
	PDFURL          string     `json:"pdf_url,omitempty"`
	Published       bool       `json:"published"`
	Boosted         bool       `json:"boosted"`
	BoostedUntil    *time.Time `json:"boosted_until,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewCourseView builds the public view of a course. Asset URLs are
// omitted; they are only exposed to entitled users and the author.
func NewCourseView(c *course.Course) CourseView {
	now := biztime.NowUTC()
	return CourseView{
		SID:            c.SID(),
		Title:          c.Title(),
		Description:    c.Description(),
		PriceCents:     c.PriceCents(),
		PriceFormatted: utils.FormatPrice(c.PriceCents(), c.Currency()),
		Currency:       c.Currency(),
		Published:      c.IsPublished(),
		Boosted:        c.IsBoostedAt(now),
		BoostedUntil:   c.BoostedUntil(),
		CreatedAt:      c.CreatedAt(),
	}
}

// NewOwnedCourseView builds the view shown to the author or an entitled
// buyer, including the asset locations.
func NewOwnedCourseView(c *course.Course) CourseView {
	view := NewCourseView(c)
	view.VideoURL = c.VideoURL()
	view.PDFURL = c.PDFURL()
	return view
}
