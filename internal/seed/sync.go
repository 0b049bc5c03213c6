package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/agriquote/agriquote-backend/internal/geo"
	"github.com/agriquote/agriquote-backend/internal/users"
	"github.com/agriquote/agriquote-backend/pkg/db/models"
	"github.com/agriquote/agriquote-backend/pkg/logger"
	"github.com/agriquote/agriquote-backend/pkg/store"
)

// managedPrefixes mark built-in accounts that follow the code on every sync.
var managedPrefixes = []string{"deal", "admin", "cust"}

type userCollection interface {
	Update(ctx context.Context, fn func([]models.User) ([]models.User, error)) error
}

type tractorCollection interface {
	Update(ctx context.Context, fn func([]models.Tractor) ([]models.Tractor, error)) error
}

// Result counts what a sync changed.
type Result struct {
	UsersInserted    int `json:"users_inserted"`
	UsersMerged      int `json:"users_merged"`
	UsersSkipped     int `json:"users_skipped"`
	TractorsInserted int `json:"tractors_inserted"`
}

// Syncer merges the built-in users and tractors into the store.
type Syncer struct {
	users    userCollection
	tractors tractorCollection
	logg     *logger.Logger
	now      func() time.Time

	seedUsers    []models.User
	seedTractors []models.Tractor
}

func NewSyncer(userColl userCollection, tractorColl tractorCollection, logg *logger.Logger) (*Syncer, error) {
	if userColl == nil || tractorColl == nil {
		return nil, fmt.Errorf("users and tractors collections required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Syncer{
		users:        userColl,
		tractors:     tractorColl,
		logg:         logg,
		now:          time.Now,
		seedUsers:    Users(),
		seedTractors: Tractors(),
	}, nil
}

// Sync never touches quotation requests.
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	var res Result
	if err := Validate(s.seedUsers, s.seedTractors); err != nil {
		return res, fmt.Errorf("invalid seed data: %w", err)
	}

	err := s.users.Update(ctx, func(items []models.User) ([]models.User, error) {
		var changed bool
		items, changed = s.mergeUsers(ctx, items, &res)
		if !changed {
			return nil, store.ErrNoChange
		}
		return items, nil
	})
	if err != nil {
		return res, err
	}

	err = s.tractors.Update(ctx, func(items []models.Tractor) ([]models.Tractor, error) {
		known := make(map[string]struct{}, len(items))
		for _, t := range items {
			known[t.ID] = struct{}{}
		}
		for _, t := range s.seedTractors {
			if _, ok := known[t.ID]; ok {
				continue
			}
			items = append(items, t)
			res.TractorsInserted++
		}
		if res.TractorsInserted == 0 {
			return nil, store.ErrNoChange
		}
		return items, nil
	})
	if err != nil {
		return res, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"users_inserted":    res.UsersInserted,
		"users_merged":      res.UsersMerged,
		"users_skipped":     res.UsersSkipped,
		"tractors_inserted": res.TractorsInserted,
	})
	s.logg.Info(ctx, "seed.synced")
	return res, nil
}

func (s *Syncer) mergeUsers(ctx context.Context, items []models.User, res *Result) ([]models.User, bool) {
	changed := false
	for _, seeded := range s.seedUsers {
		idx := indexOfUser(items, seeded.ID)
		if idx >= 0 {
			if !managed(seeded.ID) {
				continue
			}
			items[idx] = merge(items[idx], seeded)
			res.UsersMerged++
			changed = true
			continue
		}

		if owner := ownerOfPhone(items, seeded.Phone); owner != "" {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"seed_id": seeded.ID, "owner_id": owner}), "seed.phone_taken")
			res.UsersSkipped++
			continue
		}
		u := seeded.Clone()
		u.CreatedAt = s.now().UTC()
		items = append(items, u)
		res.UsersInserted++
		changed = true
	}
	return items, changed
}

// merge overlays the built-in fields on a stored account. Fields the built-in
// record leaves empty keep their stored value.
func merge(stored, seeded models.User) models.User {
	out := stored.Clone()
	out.Name = seeded.Name
	out.Phone = seeded.Phone
	out.Role = seeded.Role
	out.Address.District = seeded.Address.District
	if seeded.Address.SubDistrict != "" {
		out.Address.SubDistrict = seeded.Address.SubDistrict
	}
	if seeded.Address.Locality != "" {
		out.Address.Locality = seeded.Address.Locality
	}
	if seeded.IsDealer() {
		out.ShowroomName = seeded.ShowroomName
		out.Brands = append([]string(nil), seeded.Brands...)
		out.IsApproved = seeded.IsApproved
	}
	return out
}

func managed(id string) bool {
	for _, p := range managedPrefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

func indexOfUser(items []models.User, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func ownerOfPhone(items []models.User, phone string) string {
	for _, u := range items {
		if users.NormalizePhone(u.Phone) == phone {
			return u.ID
		}
	}
	return ""
}

// Validate checks built-in records and reports every problem at once.
func Validate(seedUsers []models.User, seedTractors []models.Tractor) error {
	var err error
	phones := map[string]string{}
	for _, u := range seedUsers {
		if strings.TrimSpace(u.ID) == "" || strings.TrimSpace(u.Name) == "" {
			err = multierr.Append(err, fmt.Errorf("user %q: id and name required", u.ID))
		}
		if !users.ValidPhone(u.Phone) {
			err = multierr.Append(err, fmt.Errorf("user %q: invalid phone %q", u.ID, u.Phone))
		}
		if other, dup := phones[u.Phone]; dup {
			err = multierr.Append(err, fmt.Errorf("user %q: phone shared with %q", u.ID, other))
		}
		phones[u.Phone] = u.ID
		if !u.Role.IsValid() {
			err = multierr.Append(err, fmt.Errorf("user %q: invalid role %q", u.ID, u.Role))
		}
		if gerr := geo.Validate(u.Address.District, u.Address.SubDistrict); gerr != nil {
			err = multierr.Append(err, fmt.Errorf("user %q: %w", u.ID, gerr))
		}
	}

	ids := map[string]struct{}{}
	for _, t := range seedTractors {
		if t.ID == "" || t.Brand == "" || t.Model == "" || t.HP <= 0 {
			err = multierr.Append(err, fmt.Errorf("tractor %q: id, brand, model and hp required", t.ID))
		}
		if _, dup := ids[t.ID]; dup {
			err = multierr.Append(err, fmt.Errorf("tractor %q: duplicate id", t.ID))
		}
		ids[t.ID] = struct{}{}
	}
	return err
}
