package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
	apperrors "github.com/bookstore/bookstore-admin/internal/errors"
	"github.com/bookstore/bookstore-admin/internal/mocks"
	"github.com/bookstore/bookstore-admin/internal/testutil"
)

type recordingProfile struct {
	updated []domainauth.Principal
}

func (r *recordingProfile) UpdatePrincipal(_ context.Context, p domainauth.Principal) {
	r.updated = append(r.updated, p)
}

func TestNewUserService_RequiredDependency(t *testing.T) {
	assert.Panics(t, func() {
		NewUserService(UserServiceOptions{})
	})
}

func TestUserService_CRUD(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockUserAPI(ctrl)
	svc := NewUserService(UserServiceOptions{API: api})
	ctx := context.Background()

	api.EXPECT().List(ctx).Return([]domainauth.Principal{testutil.SuperAdminPrincipal(), testutil.AdminPrincipal()}, nil)
	users, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	created := testutil.NewPrincipal(10, "clerk2", domainauth.RoleAdmin)
	api.EXPECT().Create(ctx, gomock.Any()).Return(created, nil)
	_, err = svc.Create(ctx, model.CreateUserRequest{Username: "clerk2", Password: "secret1", EmployeeID: "E10"})
	require.NoError(t, err)
	assert.Len(t, svc.Users(), 3)

	renamed := created
	renamed.FullName = "Clerk Two"
	api.EXPECT().Update(ctx, int64(10), gomock.Any()).Return(renamed, nil)
	_, err = svc.Update(ctx, 10, model.UpdateUserRequest{FullName: testutil.StringPtr("Clerk Two")})
	require.NoError(t, err)
	assert.Equal(t, "Clerk Two", svc.Users()[2].FullName)

	api.EXPECT().Delete(ctx, int64(10)).Return("user deleted", nil)
	msg, err := svc.Delete(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "user deleted", msg)
	assert.Len(t, svc.Users(), 2)
}

func TestUserService_CreateFieldErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockUserAPI(ctrl)
	svc := NewUserService(UserServiceOptions{API: api})
	ctx := context.Background()

	api.EXPECT().Create(ctx, gomock.Any()).Return(domainauth.Principal{}, &apperrors.AppError{
		Code:    apperrors.ErrCodeValidation,
		Message: "username: username already exists",
		Field:   "username",
		Fields:  map[string][]string{"username": {"username already exists"}},
	})

	_, err := svc.Create(ctx, model.CreateUserRequest{Username: "admin"})
	require.Error(t, err)
	assert.Equal(t, "username: username already exists", svc.LastError())
	assert.Equal(t, map[string][]string{"username": {"username already exists"}}, svc.FieldErrors())

	svc.ClearError()
	assert.Nil(t, svc.FieldErrors())
}

func TestUserService_UpdateProfileRefreshesPrincipal(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockUserAPI(ctrl)
	profile := &recordingProfile{}
	svc := NewUserService(UserServiceOptions{API: api, Profile: profile})
	ctx := context.Background()

	me := testutil.AdminPrincipal()
	me.FullName = "Updated Name"
	req := model.UpdateProfileRequest{FullName: testutil.StringPtr("Updated Name")}
	api.EXPECT().UpdateProfile(ctx, req).Return(me, nil)

	got, err := svc.UpdateProfile(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Updated Name", got.FullName)
	require.Len(t, profile.updated, 1)
	assert.Equal(t, me, profile.updated[0])
}

func TestUserService_UpdateProfileFailureKeepsPrincipal(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockUserAPI(ctrl)
	profile := &recordingProfile{}
	svc := NewUserService(UserServiceOptions{API: api, Profile: profile})
	ctx := context.Background()

	api.EXPECT().UpdateProfile(ctx, gomock.Any()).Return(domainauth.Principal{}, apperrors.Validation("age must be between 18 and 100"))
	_, err := svc.UpdateProfile(ctx, model.UpdateProfileRequest{Age: testutil.IntPtr(5)})
	require.Error(t, err)
	assert.Empty(t, profile.updated)
}
