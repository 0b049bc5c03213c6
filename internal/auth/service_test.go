package auth

import (
	"context"
	"testing"
	"time"

	"github.com/agriquote/agriquote-backend/internal/users"
	pkgAuth "github.com/agriquote/agriquote-backend/pkg/auth"
	"github.com/agriquote/agriquote-backend/pkg/config"
	"github.com/agriquote/agriquote-backend/pkg/db/models"
	"github.com/agriquote/agriquote-backend/pkg/enums"
	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
	"github.com/agriquote/agriquote-backend/pkg/store"
	"github.com/agriquote/agriquote-backend/pkg/store/memory"
	"github.com/agriquote/agriquote-backend/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "agriquote", ExpirationMinutes: 60}

func newTestService(t *testing.T, seed ...models.User) Service {
	t.Helper()
	coll, err := store.NewCollection[models.User](memory.New(), nil, store.CollectionUsers)
	require.NoError(t, err)
	require.NoError(t, coll.WriteAll(context.Background(), seed))
	registry, err := users.NewService(coll, nil)
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{Users: registry, JWTConfig: testJWT})
	require.NoError(t, err)
	return svc
}

func TestLoginByPhoneMintsToken(t *testing.T) {
	svc := newTestService(t, models.User{ID: "deal1", Name: "Amit", Phone: "8888888888", Role: enums.RoleDealer, Address: types.Address{District: "Satara"}})

	resp, err := svc.Login(context.Background(), LoginRequest{Phone: "88888 88888"})
	require.NoError(t, err)
	assert.Equal(t, "deal1", resp.User.ID)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "deal1", claims.UserID)
	assert.Equal(t, enums.RoleDealer, claims.Role)
}

func TestLoginUnknownPhone(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Login(context.Background(), LoginRequest{Phone: "9000000000"})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}

func TestRegisterDealerStartsUnapproved(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:         "Vikas",
		Phone:        "7000000000",
		Role:         enums.RoleDealer,
		Address:      types.Address{District: "Satara", SubDistrict: "Karad"},
		ShowroomName: "Vikas Sales",
		Brands:       []string{"Mahindra"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.False(t, resp.User.IsApproved)
	assert.Equal(t, []string{"Mahindra"}, resp.User.Brands)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:    "Root",
		Phone:   "7000000001",
		Role:    enums.RoleAdmin,
		Address: types.Address{District: "Satara"},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc := newTestService(t, models.User{ID: "cust1", Name: "Rajesh", Phone: "9876543210", Role: enums.RoleCustomer, Address: types.Address{District: "Satara"}})
	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:    "Other",
		Phone:   "98765-43210",
		Role:    enums.RoleCustomer,
		Address: types.Address{District: "Pune"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, users.ErrDuplicatePhone)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))
}
