package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/invoicehero/internal/metrics"
	"github.com/terraincognita07/invoicehero/internal/models"
)

var (
	ErrMissingCredential     = errors.New("missing credential")
	ErrInvalidCredential     = errors.New("invalid credential")
	ErrUserNotProvisioned    = errors.New("user not provisioned")
	ErrUserExists            = errors.New("user already exists")
	ErrResolveIdentityFailed = errors.New("resolve identity failed")
	ErrProvisionUserFailed   = errors.New("provision user failed")
)

type TokenManager interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

type IdentityOptions struct {
	// DefaultUserID serves requests without a credential. Empty rejects them.
	DefaultUserID string
	// AutoProvision creates a user the first time an unknown id is seen.
	AutoProvision bool
	// Tokens switches from opaque user-id credentials to signed tokens.
	Tokens TokenManager
}

type ProvisionInput struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (input *ProvisionInput) UnmarshalJSON(data []byte) error {
	var decoded struct {
		ID    models.Text `json:"id"`
		Email models.Text `json:"email"`
		Name  models.Text `json:"name"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*input = ProvisionInput{
		ID:    decoded.ID.String(),
		Email: decoded.Email.String(),
		Name:  decoded.Name.String(),
	}
	return nil
}

type ProvisionResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token,omitempty"`
}

type IdentityService struct {
	users   UserRepository
	options IdentityOptions
	now     func() time.Time
}

func NewIdentityService(users UserRepository, options IdentityOptions) *IdentityService {
	options.DefaultUserID = strings.TrimSpace(options.DefaultUserID)
	return &IdentityService{users: users, options: options, now: time.Now}
}

func (service *IdentityService) SignedTokens() bool {
	return service.options.Tokens != nil
}

// Resolve maps a bearer credential, possibly empty, to a user record.
func (service *IdentityService) Resolve(ctx context.Context, credential string) (user models.User, err error) {
	userID, err := service.userIDFromCredential(strings.TrimSpace(credential))
	if err != nil {
		return models.User{}, err
	}

	ctx, span := startSpan(ctx, "IdentityService.Resolve", userID)
	defer func() { finishSpan(span, err) }()

	user, err = service.users.FindByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, models.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("%w: %v", ErrResolveIdentityFailed, err)
	}
	if !service.options.AutoProvision {
		return models.User{}, ErrUserNotProvisioned
	}

	user = service.newUser(userID, "", "")
	if err := service.users.Create(ctx, &user); err != nil {
		if errors.Is(err, models.ErrRecordDuplicate) {
			return service.users.FindByID(ctx, userID)
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrResolveIdentityFailed, err)
	}
	metrics.ObserveUserProvisioned("auto")
	return user, nil
}

func (service *IdentityService) userIDFromCredential(credential string) (string, error) {
	if credential == "" {
		if service.options.DefaultUserID == "" {
			return "", ErrMissingCredential
		}
		return service.options.DefaultUserID, nil
	}
	if service.options.Tokens == nil {
		return credential, nil
	}
	userID, err := service.options.Tokens.Verify(credential)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	return userID, nil
}

// Provision registers a user explicitly. In signed mode the result carries a
// bearer token for the new user.
func (service *IdentityService) Provision(ctx context.Context, input ProvisionInput) (result ProvisionResult, err error) {
	userID := strings.TrimSpace(input.ID)
	if userID == "" {
		userID = newRecordID(userIDPrefix)
	}

	ctx, span := startSpan(ctx, "IdentityService.Provision", userID)
	defer func() { finishSpan(span, err) }()

	if _, err := service.users.FindByID(ctx, userID); err == nil {
		return ProvisionResult{}, ErrUserExists
	} else if !errors.Is(err, models.ErrRecordNotFound) {
		return ProvisionResult{}, fmt.Errorf("%w: %v", ErrProvisionUserFailed, err)
	}

	user := service.newUser(userID, input.Email, input.Name)
	if err := service.users.Create(ctx, &user); err != nil {
		if errors.Is(err, models.ErrRecordDuplicate) {
			return ProvisionResult{}, ErrUserExists
		}
		return ProvisionResult{}, fmt.Errorf("%w: %v", ErrProvisionUserFailed, err)
	}
	metrics.ObserveUserProvisioned("explicit")

	result = ProvisionResult{User: user}
	if service.options.Tokens != nil {
		token, err := service.options.Tokens.Issue(user.ID)
		if err != nil {
			return ProvisionResult{}, fmt.Errorf("%w: %v", ErrProvisionUserFailed, err)
		}
		result.Token = token
	}
	return result, nil
}

func (service *IdentityService) newUser(userID string, email string, name string) models.User {
	email = strings.TrimSpace(email)
	if email == "" {
		email = models.DerivedEmail(userID)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = models.PlaceholderUserName
	}
	return models.User{
		ID:        userID,
		Email:     email,
		Name:      name,
		CreatedAt: service.now().UTC(),
	}
}
