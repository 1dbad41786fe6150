package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/inkwell-labs/inkwell-backend/config"
	"github.com/inkwell-labs/inkwell-backend/database"
	"github.com/inkwell-labs/inkwell-backend/errs"
	"github.com/inkwell-labs/inkwell-backend/models"
)

// Draft is the publish payload. Validation runs against these tags after
// slug/tag normalization.
type Draft struct {
	Title      string   `json:"title" validate:"required,min=3,max=200"`
	Slug       string   `json:"slug" validate:"required,min=3,max=200"`
	Excerpt    string   `json:"excerpt" validate:"required,max=300"`
	Content    string   `json:"content" validate:"required"`
	CategoryID string   `json:"categoryId" validate:"required"`
	Tags       []string `json:"tags" validate:"max=6,dive,min=1,max=40"`
	Image      string   `json:"image" validate:"omitempty,url"`
	ReadTime   int      `json:"readTime" validate:"omitempty,min=1,max=120"`
}

// Outcome records the result of one best-effort notification.
type Outcome struct {
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

// Notifications carries the per-recipient notification outcomes so partial
// failure is visible to the caller instead of collapsing into one boolean.
type Notifications struct {
	AuthorEmail Outcome `json:"authorEmail"`
	AdminEmail  Outcome `json:"adminEmail"`
}

// PublishResult is the workflow output: the persisted post plus the
// notification detail. Notification failures never fail the publish.
type PublishResult struct {
	Post          *models.BlogPost `json:"post"`
	Notifications Notifications    `json:"notifications"`
}

// PublishService drives Draft -> Validated -> Persisted ->
// NotificationAttempted -> Done. Validation failure aborts before
// persistence; notification failure never rolls persistence back.
type PublishService struct {
	users      *database.UserRepo
	authors    *database.AuthorRepo
	categories *database.CategoryRepo
	posts      *database.BlogPostRepo
	gate       *QualityGate
	mailer     Mailer
	cache      PageInvalidator
	validate   *validator.Validate
	adminEmail string
	logger     zerolog.Logger
}

func NewPublishService(db database.Database, gate *QualityGate, mailer Mailer, cache PageInvalidator, cfg map[string]string) *PublishService {
	return &PublishService{
		users:      db.UserRepo(),
		authors:    db.AuthorRepo(),
		categories: db.CategoryRepo(),
		posts:      db.BlogPostRepo(),
		gate:       gate,
		mailer:     mailer,
		cache:      cache,
		validate:   validator.New(),
		adminEmail: config.GetString(cfg, "ADMIN_EMAIL", ""),
		logger:     log.With().Str("serviceName", "publishService").Logger(),
	}
}

// Publish validates the draft, enforces the quality gate, persists the post
// and fires the confirmation emails.
func (s *PublishService) Publish(ctx context.Context, viewerID uuid.UUID, draft Draft) (*PublishResult, error) {
	if viewerID == uuid.Nil {
		return nil, errs.NewUnauthorizedError("must be signed in to publish")
	}

	user, err := s.users.FindByID(viewerID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return nil, errs.NewUnauthorizedError("unknown user")
	}

	author, err := s.resolveAuthor(user)
	if err != nil {
		return nil, err
	}

	draft.Slug = NormalizeSlug(draft.Slug)
	draft.Tags = NormalizeTags(draft.Tags)
	if draft.ReadTime == 0 {
		draft.ReadTime = estimateReadTime(draft.Content)
	}

	if err := s.validateDraft(draft); err != nil {
		return nil, err
	}

	if err := s.resolveCategory(draft.CategoryID); err != nil {
		return nil, err
	}

	existing, err := s.posts.FindBySlug(draft.Slug)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog post", err)
	}
	if existing != nil {
		return nil, errs.NewConflictError("a post with this slug already exists")
	}

	// The gate is a server-side invariant, not UI advice: a draft below the
	// threshold never persists, whatever the client claims.
	assessment := s.gate.AssessQuality(ctx, draft.Content)
	if !assessment.IsPublishable {
		return nil, errs.NewValidationError("content",
			fmt.Sprintf("quality score %d is below the publish threshold: %s", assessment.Score, assessment.Feedback))
	}

	post := &models.BlogPost{
		Title:      draft.Title,
		Slug:       draft.Slug,
		Excerpt:    draft.Excerpt,
		Content:    draft.Content,
		AuthorID:   author.ID,
		CategoryID: draft.CategoryID,
		Tags:       draft.Tags,
		Image:      draft.Image,
		ReadTime:   draft.ReadTime,
	}
	if err := s.posts.Add(post); err != nil {
		return nil, errs.NewDatabaseError("create", "blog post", err)
	}

	s.cache.Invalidate(post.ID)

	return &PublishResult{
		Post:          post,
		Notifications: s.notify(ctx, user, post),
	}, nil
}

func (s *PublishService) resolveAuthor(user *models.User) (*models.Author, error) {
	author, err := s.authors.FindByUserID(user.ID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "author", err)
	}
	if author != nil {
		return author, nil
	}

	userID := user.ID
	author = &models.Author{
		UserID: &userID,
		Name:   user.Name,
		Avatar: user.Image,
	}
	if err := s.authors.Add(author); err != nil {
		return nil, errs.NewDatabaseError("create", "author", err)
	}
	s.logger.Info().Str("authorId", author.ID.String()).Msg("Created author identity for user")
	return author, nil
}

// resolveCategory accepts only allow-listed category ids. Allow-listed
// categories missing from the database are upsert-created; anything else is
// a validation failure, so clients cannot mint categories.
func (s *PublishService) resolveCategory(categoryID string) error {
	allowed := false
	for _, c := range Categories {
		if categoryID == c {
			allowed = true
			break
		}
	}
	if !allowed {
		return errs.NewValidationError("categoryId",
			fmt.Sprintf("category must be one of: %s", strings.Join(Categories, ", ")))
	}

	category, err := s.categories.FindByID(categoryID)
	if err != nil {
		return errs.NewDatabaseError("find", "category", err)
	}
	if category != nil {
		return nil
	}

	return s.categories.Upsert(&models.Category{
		ID:          categoryID,
		Name:        titleCase(categoryID),
		Description: fmt.Sprintf("Posts about %s", categoryID),
	})
}

func (s *PublishService) validateDraft(draft Draft) error {
	err := s.validate.Struct(draft)
	if err == nil {
		return nil
	}

	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		first := validationErrs[0]
		field := strings.ToLower(first.Field()[:1]) + first.Field()[1:]
		return errs.NewValidationError(field, fmt.Sprintf("failed on the '%s' rule", first.Tag()))
	}
	return errs.NewBadRequestError("invalid draft")
}

// notify fires the author and admin emails in parallel. Each failure is
// logged and captured in its own Outcome; neither fails the publish.
func (s *PublishService) notify(ctx context.Context, user *models.User, post *models.BlogPost) Notifications {
	var notifications Notifications

	var g errgroup.Group
	g.Go(func() error {
		subject := fmt.Sprintf("Your post %q is live", post.Title)
		html := fmt.Sprintf("<p>Hi %s,</p><p>Your post <strong>%s</strong> has been published.</p>", user.Name, post.Title)
		if _, err := s.mailer.Send(ctx, []string{user.Email}, subject, html); err != nil {
			s.logger.Error().Err(err).Str("postId", post.ID.String()).Msg("Failed to send author confirmation email")
			notifications.AuthorEmail = Outcome{Error: err.Error()}
			return nil
		}
		notifications.AuthorEmail = Outcome{Sent: true}
		return nil
	})
	g.Go(func() error {
		if s.adminEmail == "" {
			notifications.AdminEmail = Outcome{Error: "admin email not configured"}
			return nil
		}
		subject := fmt.Sprintf("New post published: %s", post.Title)
		html := fmt.Sprintf("<p>%s published <strong>%s</strong> (%s).</p>", user.Name, post.Title, post.Slug)
		if _, err := s.mailer.Send(ctx, []string{s.adminEmail}, subject, html); err != nil {
			s.logger.Error().Err(err).Str("postId", post.ID.String()).Msg("Failed to send admin notification email")
			notifications.AdminEmail = Outcome{Error: err.Error()}
			return nil
		}
		notifications.AdminEmail = Outcome{Sent: true}
		return nil
	})
	g.Wait()

	return notifications
}

func estimateReadTime(content string) int {
	const wordsPerMinute = 200
	words := len(strings.Fields(content))
	minutes := words / wordsPerMinute
	if words%wordsPerMinute != 0 || minutes == 0 {
		minutes++
	}
	return minutes
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
