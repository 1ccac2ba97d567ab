package domain

import (
	"strings"
	"time"
)

// FeaturedNewsLimit caps the featured news list.
const FeaturedNewsLimit = 5

// News is a provincial news article.
type News struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Slug        string     `json:"slug" bson:"slug"`
	Content     string     `json:"content" bson:"content"`
	Excerpt     string     `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	BannerImage string     `json:"bannerImage" bson:"banner_image"`
	Category    string     `json:"category,omitempty" bson:"category,omitempty"`
	Featured    bool       `json:"featured" bson:"featured"`
	AuthorID    string     `json:"authorId,omitempty" bson:"author_id,omitempty"`
	AuthorName  string     `json:"authorName,omitempty" bson:"author_name,omitempty"`
	Published   bool       `json:"published" bson:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" bson:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updated_at"`
}

func (n *News) Validate() error {
	if strings.TrimSpace(n.Title) == "" || strings.TrimSpace(n.BannerImage) == "" || strings.TrimSpace(n.Content) == "" {
		return NewValidationError("title", "title, banner image, and content are required")
	}
	return nil
}

// Derive fills the slug and excerpt when they are missing.
func (n *News) Derive() {
	if strings.TrimSpace(n.Slug) == "" {
		n.Slug = Slugify(n.Title, NewsSlugMax)
	} else {
		n.Slug = Slugify(n.Slug, NewsSlugMax)
	}
	if strings.TrimSpace(n.Excerpt) == "" {
		n.Excerpt = Excerpt(n.Content, ExcerptLength)
	}
}
