package users

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agriquote/agriquote-backend/pkg/db/models"
	"github.com/agriquote/agriquote-backend/pkg/enums"
	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
	"github.com/agriquote/agriquote-backend/pkg/store"
	"github.com/agriquote/agriquote-backend/pkg/store/memory"
	"github.com/agriquote/agriquote-backend/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, seed ...models.User) (*service, *store.Collection[models.User]) {
	t.Helper()
	coll, err := store.NewCollection[models.User](memory.New(), nil, store.CollectionUsers)
	require.NoError(t, err)
	require.NoError(t, coll.WriteAll(context.Background(), seed))
	svc, err := NewService(coll, nil)
	require.NoError(t, err)
	s := svc.(*service)
	s.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	return s, coll
}

func dealer(id string, approved bool, brands ...string) models.User {
	return models.User{
		ID:         id,
		Name:       "Dealer " + id,
		Phone:      "88888" + id[len(id)-1:] + "8888",
		Role:       enums.RoleDealer,
		Address:    types.Address{District: "Satara"},
		Brands:     brands,
		IsApproved: approved,
	}
}

func TestNewServiceRequiresCollection(t *testing.T) {
	_, err := NewService(nil, nil)
	require.Error(t, err)
}

func TestFindByPhone(t *testing.T) {
	svc, _ := newTestService(t, models.User{ID: "cust1", Name: "Rajesh Patil", Phone: "9876543210", Role: enums.RoleCustomer})
	ctx := context.Background()

	u, err := svc.FindByPhone(ctx, " 98765-43210 ")
	require.NoError(t, err)
	assert.Equal(t, "cust1", u.ID)

	_, err = svc.FindByPhone(ctx, "1111111111")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	_, err = svc.FindByID(ctx, "nobody")
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestRegisterDealerStartsUnapproved(t *testing.T) {
	svc, _ := newTestService(t)
	u, err := svc.Register(context.Background(), RegisterInput{
		Name:         "Vikas Sales",
		Phone:        "90000 00001",
		Role:         enums.RoleDealer,
		Address:      types.Address{District: "Satara", SubDistrict: "Karad"},
		ShowroomName: " Vikas Tractors ",
		Brands:       []string{"Mahindra", " ", "Mahindra", "Swaraj "},
	})
	require.NoError(t, err)
	assert.False(t, u.IsApproved)
	assert.Equal(t, "9000000001", u.Phone)
	assert.Equal(t, "Vikas Tractors", u.ShowroomName)
	assert.Equal(t, []string{"Mahindra", "Swaraj"}, u.Brands)
	assert.Equal(t, time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC), u.CreatedAt)
}

func TestRegisterCustomerDropsDealerFields(t *testing.T) {
	svc, _ := newTestService(t)
	u, err := svc.Register(context.Background(), RegisterInput{
		Name:         "Satish Yadav",
		Phone:        "8600503794",
		Role:         enums.RoleCustomer,
		Address:      types.Address{District: "Satara", SubDistrict: "Koregaon", Locality: "Arvi"},
		ShowroomName: "ignored",
		Brands:       []string{"Mahindra"},
	})
	require.NoError(t, err)
	assert.Empty(t, u.ShowroomName)
	assert.Empty(t, u.Brands)
	assert.Equal(t, "Arvi", u.Address.Locality)
}

func TestRegisterValidation(t *testing.T) {
	svc, coll := newTestService(t)
	ctx := context.Background()
	base := RegisterInput{Name: "A", Phone: "9000000002", Role: enums.RoleCustomer, Address: types.Address{District: "Pune"}}

	cases := map[string]func(in *RegisterInput){
		"missing name":     func(in *RegisterInput) { in.Name = " " },
		"missing phone":    func(in *RegisterInput) { in.Phone = "" },
		"bad phone":        func(in *RegisterInput) { in.Phone = "call me" },
		"missing role":     func(in *RegisterInput) { in.Role = "" },
		"unknown district": func(in *RegisterInput) { in.Address.District = "Mumbai" },
		"wrong taluka":     func(in *RegisterInput) { in.Address.SubDistrict = "Karad" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := base
			mutate(&in)
			_, err := svc.Register(ctx, in)
			assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "got %v", err)
		})
	}

	all, err := coll.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRegisterDuplicatePhoneLeavesStoreUnchanged(t *testing.T) {
	existing := models.User{ID: "cust1", Name: "Rajesh Patil", Phone: "9876543210", Role: enums.RoleCustomer}
	svc, coll := newTestService(t, existing)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:    "Someone Else",
		Phone:   "98765 43210",
		Role:    enums.RoleDealer,
		Address: types.Address{District: "Pune"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicatePhone))
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))

	all, err := coll.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.User{existing}, all)
}

func TestConcurrentRegistrationsOfOnePhone(t *testing.T) {
	svc, coll := newTestService(t)
	var wg sync.WaitGroup
	var ok int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), RegisterInput{
				Name: "Racer", Phone: "9000000009", Role: enums.RoleCustomer, Address: types.Address{District: "Nashik"},
			})
			if err == nil {
				atomic.AddInt32(&ok, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	all, err := coll.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListDealers(t *testing.T) {
	svc, _ := newTestService(t,
		models.User{ID: "cust1", Role: enums.RoleCustomer, Phone: "1"},
		dealer("deal1", true, "Mahindra"),
		dealer("deal2", false),
	)
	dealers, err := svc.ListDealers(context.Background())
	require.NoError(t, err)
	require.Len(t, dealers, 2)
	assert.Equal(t, "deal1", dealers[0].ID)
	assert.Equal(t, "deal2", dealers[1].ID)
}

func TestSetApprovalIsIdempotentAndScoped(t *testing.T) {
	customer := models.User{ID: "cust1", Role: enums.RoleCustomer, Phone: "1"}
	svc, coll := newTestService(t, customer, dealer("deal1", false), dealer("deal2", false))
	ctx := context.Background()

	require.NoError(t, svc.SetApproval(ctx, "deal1", true))
	require.NoError(t, svc.SetApproval(ctx, "deal1", true))
	require.NoError(t, svc.SetApproval(ctx, "missing", true))
	require.NoError(t, svc.SetApproval(ctx, "cust1", true))

	all, err := coll.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, customer, all[0])
	assert.True(t, all[1].IsApproved)
	assert.False(t, all[2].IsApproved)

	require.NoError(t, svc.SetApproval(ctx, "deal1", false))
	u, err := svc.FindByID(ctx, "deal1")
	require.NoError(t, err)
	assert.False(t, u.IsApproved)
}

func TestSetBrandsReplacesSet(t *testing.T) {
	svc, _ := newTestService(t, dealer("deal1", true, "Mahindra", "Swaraj"))
	ctx := context.Background()

	require.NoError(t, svc.SetBrands(ctx, "deal1", []string{"Kubota", "", "Kubota", " John Deere"}))
	u, err := svc.FindByID(ctx, "deal1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Kubota", "John Deere"}, u.Brands)

	require.NoError(t, svc.SetBrands(ctx, "missing", []string{"Solis"}))
}

func TestFindReturnsCopies(t *testing.T) {
	svc, _ := newTestService(t, dealer("deal1", true, "Mahindra"))
	u, err := svc.FindByID(context.Background(), "deal1")
	require.NoError(t, err)
	u.Brands[0] = "Kubota"

	again, err := svc.FindByID(context.Background(), "deal1")
	require.NoError(t, err)
	assert.Equal(t, "Mahindra", again.Brands[0])
}
