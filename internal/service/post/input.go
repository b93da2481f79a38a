package post

import (
	"strings"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

const (
	maxTitleLength    = 200
	maxSlugLength     = 200
	maxSummaryLength  = 500
	maxCategoryLength = 100
	maxTagLength      = 50
	maxTags           = 20
)

// CreatePostInput holds the parameters for creating a draft post.
type CreatePostInput struct {
	Title      string
	Slug       string
	Content    string
	Summary    *string
	CoverImage *string
	Category   *string
	Tags       []string
}

// Validate checks all fields and collects all errors.
func (i CreatePostInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateContentFields(i.Title, i.Slug, i.Content, i.Summary, i.Category, i.Tags)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdatePostInput holds the parameters for replacing a post's content.
type UpdatePostInput struct {
	PostID     int64
	Title      string
	Slug       string
	Content    string
	Summary    *string
	CoverImage *string
	Category   *string
	Tags       []string
}

// Validate checks all fields and collects all errors.
func (i UpdatePostInput) Validate() error {
	var errs []domain.FieldError

	if i.PostID <= 0 {
		errs = append(errs, domain.FieldError{Field: "post_id", Message: "required"})
	}
	errs = append(errs, validateContentFields(i.Title, i.Slug, i.Content, i.Summary, i.Category, i.Tags)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListPostsInput holds the parameters for listing posts.
type ListPostsInput struct {
	Category *string
	Tag      *string
	Limit    int
	Offset   int
}

func validateContentFields(title, slug, content string, summary, category *string, tags []string) []domain.FieldError {
	var errs []domain.FieldError

	t := strings.TrimSpace(title)
	if t == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(t) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}

	sl := strings.TrimSpace(slug)
	if sl == "" {
		errs = append(errs, domain.FieldError{Field: "slug", Message: "required"})
	}
	if len(sl) > maxSlugLength {
		errs = append(errs, domain.FieldError{Field: "slug", Message: "max 200 characters"})
	}
	if sl != "" && strings.ContainsAny(sl, " \t\n") {
		errs = append(errs, domain.FieldError{Field: "slug", Message: "must not contain whitespace"})
	}

	if strings.TrimSpace(content) == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}

	if summary != nil && len(strings.TrimSpace(*summary)) > maxSummaryLength {
		errs = append(errs, domain.FieldError{Field: "summary", Message: "max 500 characters"})
	}
	if category != nil && len(strings.TrimSpace(*category)) > maxCategoryLength {
		errs = append(errs, domain.FieldError{Field: "category", Message: "max 100 characters"})
	}

	if len(tags) > maxTags {
		errs = append(errs, domain.FieldError{Field: "tags", Message: "max 20 tags"})
	}
	for _, tag := range tags {
		if len(strings.TrimSpace(tag)) > maxTagLength {
			errs = append(errs, domain.FieldError{Field: "tags", Message: "each tag max 50 characters"})
			break
		}
	}

	return errs
}
