package service

import (
	"context"
	"regexp"

	"github.com/okarpova/staffhub/internal/apperr"
	"github.com/okarpova/staffhub/internal/media"
	"github.com/okarpova/staffhub/internal/models"
	"github.com/okarpova/staffhub/internal/password"
)

// emailPattern accepts addresses of the usual local@domain.tld shape.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserRepository defines the persistence operations required by the
// user service.
type UserRepository interface {
	Get(ctx context.Context, username string) (*models.User, error)
	GetCredential(ctx context.Context, username string) ([]byte, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, username string, credential []byte) error
	Delete(ctx context.Context, username string) error
}

// AvatarUpload is an inline image attached to a create or update
// request.
type AvatarUpload struct {
	// Format is the image format, e.g. "png" or "jpeg".
	Format string `json:"format"`
	// Data is the base64-encoded image payload.
	Data string `json:"data"`
}

// Users implements user account management.
type Users struct {
	repo   UserRepository
	images *media.Store
}

// NewUsers constructs a Users service using the provided repository and
// image store.
func NewUsers(repo UserRepository, images *media.Store) *Users {
	return &Users{repo: repo, images: images}
}

// Get returns one user by username.
func (u *Users) Get(ctx context.Context, username string) (*models.User, error) {
	return u.repo.Get(ctx, username)
}

// List returns users matching the filter.
func (u *Users) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	return u.repo.List(ctx, filter)
}

// Create validates and stores a new user. The plaintext password is
// hashed before it reaches the repository; an optional avatar is
// decoded and written to the image store first, so a failed upload
// never leaves a half-created account.
func (u *Users) Create(ctx context.Context, user *models.User, plaintext string, avatar *AvatarUpload) (*models.User, error) {
	if user.Username == "" {
		return nil, apperr.New(apperr.KindUnprocessable, "Username has not been provided")
	}
	if plaintext == "" {
		return nil, apperr.New(apperr.KindUnprocessable, "Password has not been provided")
	}
	if user.Email != "" && !emailPattern.MatchString(user.Email) {
		return nil, apperr.New(apperr.KindUnprocessable, "Email is not valid")
	}

	credential, err := password.Hash(plaintext)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	user.Password = credential

	if avatar != nil {
		name, err := u.images.SaveImage("avatar", avatar.Format, avatar.Data)
		if err != nil {
			return nil, err
		}
		// The public URL is stored, matching what clients receive.
		user.Avatar = u.images.URL(name)
	}

	created, err := u.repo.Create(ctx, user)
	if err != nil {
		// The row was rejected, so the stored image is orphaned.
		if user.Avatar != "" {
			_ = u.images.Remove(user.Avatar)
		}
		return nil, err
	}
	return created, nil
}

// Update rewrites a user's profile fields. A new avatar replaces the
// stored image; the previous file is removed after the row is updated.
func (u *Users) Update(ctx context.Context, user *models.User, avatar *AvatarUpload) (*models.User, error) {
	if user.Email != "" && !emailPattern.MatchString(user.Email) {
		return nil, apperr.New(apperr.KindUnprocessable, "Email is not valid")
	}

	previous, err := u.repo.Get(ctx, user.Username)
	if err != nil {
		return nil, err
	}

	// Account flags are managed separately from profile data.
	user.IsStaff = previous.IsStaff
	user.IsActive = previous.IsActive
	user.IsSuperuser = previous.IsSuperuser

	if avatar != nil {
		name, err := u.images.SaveImage("avatar", avatar.Format, avatar.Data)
		if err != nil {
			return nil, err
		}
		user.Avatar = u.images.URL(name)
	} else {
		user.Avatar = previous.Avatar
	}

	updated, err := u.repo.Update(ctx, user)
	if err != nil {
		if avatar != nil {
			_ = u.images.Remove(user.Avatar)
		}
		return nil, err
	}
	if avatar != nil && previous.Avatar != "" {
		_ = u.images.Remove(previous.Avatar)
	}
	return updated, nil
}

// ChangePassword verifies the current password and replaces it with a
// hash of the new one.
func (u *Users) ChangePassword(ctx context.Context, username, current, next string) error {
	if current == "" || next == "" {
		return apperr.New(apperr.KindUnprocessable, "Password data has not been provided")
	}

	credential, err := u.repo.GetCredential(ctx, username)
	if err != nil {
		return err
	}
	ok, err := password.Verify(current, credential)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	if !ok {
		return apperr.New(apperr.KindInvalidPassword, "Password is not valid")
	}

	hashed, err := password.Hash(next)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	return u.repo.UpdatePassword(ctx, username, hashed)
}

// Delete removes a user and their stored avatar.
func (u *Users) Delete(ctx context.Context, username string) error {
	user, err := u.repo.Get(ctx, username)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, username); err != nil {
		return err
	}
	if user.Avatar != "" {
		_ = u.images.Remove(user.Avatar)
	}
	return nil
}
