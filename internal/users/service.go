package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/agriquote/agriquote-backend/internal/geo"
	"github.com/agriquote/agriquote-backend/pkg/db/models"
	"github.com/agriquote/agriquote-backend/pkg/enums"
	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
	"github.com/agriquote/agriquote-backend/pkg/logger"
	"github.com/agriquote/agriquote-backend/pkg/store"
	"github.com/agriquote/agriquote-backend/pkg/types"
	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is wrapped by every lookup miss.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicatePhone is wrapped when a registration reuses a phone number.
	ErrDuplicatePhone = errors.New("phone already registered")

	phoneRe      = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	phoneCleaner = strings.NewReplacer(" ", "", "-", "", "\t", "")
)

type userCollection interface {
	ReadAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, fn func([]models.User) ([]models.User, error)) error
}

// Service is the identity and dealer registry.
type Service interface {
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	ListDealers(ctx context.Context) ([]models.User, error)
	SetApproval(ctx context.Context, dealerID string, approved bool) error
	SetBrands(ctx context.Context, dealerID string, brands []string) error
}

type service struct {
	users userCollection
	logg  *logger.Logger
	now   func() time.Time
}

// NewService builds the registry over the users collection.
func NewService(users userCollection, logg *logger.Logger) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("users collection required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{users: users, logg: logg, now: time.Now}, nil
}

// RegisterInput captures a new account. Dealer-only fields are dropped for other roles.
type RegisterInput struct {
	Name         string
	Phone        string
	Role         enums.Role
	Address      types.Address
	ShowroomName string
	Brands       []string
}

// NormalizePhone strips whitespace and dashes so "98765 43210" and "98765-43210" match.
func NormalizePhone(phone string) string {
	return phoneCleaner.Replace(strings.TrimSpace(phone))
}

// ValidPhone reports whether an already normalized phone is acceptable as a login.
func ValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// NormalizeBrands trims entries, drops blanks and duplicates, and keeps first-seen order.
func NormalizeBrands(brands []string) []string {
	out := make([]string, 0, len(brands))
	seen := map[string]struct{}{}
	for _, b := range brands {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}

func (s *service) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	phone = NormalizePhone(phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}
	return s.find(ctx, func(u models.User) bool { return NormalizePhone(u.Phone) == phone })
}

func (s *service) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.find(ctx, func(u models.User) bool { return u.ID == id })
}

func (s *service) find(ctx context.Context, match func(models.User) bool) (*models.User, error) {
	all, err := s.users.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if match(u) {
			found := u.Clone()
			return &found, nil
		}
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, ErrUserNotFound, "user not found")
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	user, err := s.buildUser(input)
	if err != nil {
		return nil, err
	}

	err = s.users.Update(ctx, func(items []models.User) ([]models.User, error) {
		for _, existing := range items {
			if NormalizePhone(existing.Phone) == user.Phone {
				return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, ErrDuplicatePhone, "phone already registered")
			}
		}
		return append(items, user), nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"user_id": user.ID, "role": user.Role})
	s.logg.Info(ctx, "user.registered")
	return &user, nil
}

func (s *service) buildUser(input RegisterInput) (models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.User{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	phone := NormalizePhone(input.Phone)
	if phone == "" {
		return models.User{}, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}
	if !ValidPhone(phone) {
		return models.User{}, pkgerrors.New(pkgerrors.CodeValidation, "phone must be 7 to 15 digits")
	}
	if !input.Role.IsValid() {
		return models.User{}, pkgerrors.New(pkgerrors.CodeValidation, "role is required")
	}
	address := input.Address.Normalize()
	if err := geo.Validate(address.District, address.SubDistrict); err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        "usr_" + uuid.NewString(),
		Name:      name,
		Phone:     phone,
		Role:      input.Role,
		Address:   address,
		CreatedAt: s.now().UTC(),
	}
	if user.IsDealer() {
		user.ShowroomName = strings.TrimSpace(input.ShowroomName)
		user.Brands = NormalizeBrands(input.Brands)
		user.IsApproved = false
	}
	return user, nil
}

func (s *service) ListDealers(ctx context.Context) ([]models.User, error) {
	all, err := s.users.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	dealers := make([]models.User, 0)
	for _, u := range all {
		if u.IsDealer() {
			dealers = append(dealers, u.Clone())
		}
	}
	return dealers, nil
}

// SetApproval is idempotent. Unknown ids and non-dealers are ignored.
func (s *service) SetApproval(ctx context.Context, dealerID string, approved bool) error {
	err := s.updateDealer(ctx, dealerID, func(u *models.User) bool {
		if u.IsApproved == approved {
			return false
		}
		u.IsApproved = approved
		return true
	})
	if err != nil {
		return err
	}
	ctx = s.logg.WithFields(ctx, map[string]any{"dealer_id": dealerID, "approved": approved})
	s.logg.Info(ctx, "dealer.approval_set")
	return nil
}

// SetBrands replaces the dealer's brand set. Unknown ids and non-dealers are ignored.
func (s *service) SetBrands(ctx context.Context, dealerID string, brands []string) error {
	next := NormalizeBrands(brands)
	return s.updateDealer(ctx, dealerID, func(u *models.User) bool {
		u.Brands = next
		return true
	})
}

func (s *service) updateDealer(ctx context.Context, dealerID string, mutate func(*models.User) bool) error {
	return s.users.Update(ctx, func(items []models.User) ([]models.User, error) {
		for i := range items {
			if items[i].ID != dealerID {
				continue
			}
			if !items[i].IsDealer() || !mutate(&items[i]) {
				return nil, store.ErrNoChange
			}
			return items, nil
		}
		return nil, store.ErrNoChange
	})
}

var _ userCollection = (*store.Collection[models.User])(nil)
