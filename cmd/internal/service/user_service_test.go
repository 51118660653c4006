package service_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listingdesk/cmd/internal/domain/entity"
	"listingdesk/cmd/internal/service"
	"listingdesk/cmd/internal/utils"
	"listingdesk/cmd/internal/utils/apierror"
)

type fakeUserRepo struct {
	users map[int64]*entity.User
	seq   int64
}

func newFakeUserRepo(seed ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]*entity.User{}}
	for _, u := range seed {
		r.seq++
		u.ID = r.seq
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(id int64) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindActiveBySub(sub string) (*entity.User, error) {
	for _, u := range r.users {
		if u.SubUUID == sub && u.Active {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Save(user *entity.User) error {
	if user.ID == 0 {
		r.seq++
		user.ID = r.seq
	}
	r.users[user.ID] = user
	return nil
}

func newUserService(repo *fakeUserRepo) *service.UserService {
	return service.NewUserService(repo, validator.New())
}

func TestResolveActor_ProvisionsOnFirstSight(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	data := &utils.TokenData{Sub: "sub-123", Email: "nisha@example.com"}

	user, err := svc.ResolveActor(data)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "nisha", user.Username)
	assert.Equal(t, service.DefaultMemberPermissions, user.Permissions)
	assert.True(t, user.Active)

	// Second resolve returns the same row, not a new one.
	again, err := svc.ResolveActor(data)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Len(t, repo.users, 1)
}

func TestUpdateUser_PermissionsRequireAdmin(t *testing.T) {
	target := &entity.User{SubUUID: "s1", Username: "target", Active: true}
	mgr := &entity.User{SubUUID: "s2", Username: "mgr", Active: true,
		Permissions: entity.PermissionManageUsers}
	repo := newFakeUserRepo(target, mgr)
	svc := newUserService(repo)

	perms := int64(entity.PermissionManageListings)
	_, apierr := svc.UpdateUser(mgr, "1", &service.UpdateUserRequest{Perms: &perms})
	assert.Equal(t, apierror.PermissionDeniedError, apierr,
		"ManageUsers alone must not grant permission changes")

	admin := &entity.User{SubUUID: "s3", Username: "root", Active: true,
		Permissions: entity.PermissionAdministrator}
	require.NoError(t, repo.Save(admin))

	resp, apierr := svc.UpdateUser(admin, "1", &service.UpdateUserRequest{Perms: &perms})
	require.Nil(t, apierr)
	assert.Equal(t, perms, resp.Perms)
}

func TestUpdateUser_SuspendByManager(t *testing.T) {
	target := &entity.User{SubUUID: "s1", Username: "target", Active: true}
	mgr := &entity.User{SubUUID: "s2", Username: "mgr", Active: true,
		Permissions: entity.PermissionManageUsers}
	repo := newFakeUserRepo(target, mgr)
	svc := newUserService(repo)

	suspended := true
	resp, apierr := svc.UpdateUser(mgr, "1", &service.UpdateUserRequest{Suspended: &suspended})
	require.Nil(t, apierr)
	require.NotNil(t, resp.Suspended)
	assert.True(t, *resp.Suspended)
}

func TestUpdateUser_AdminsAreImmune(t *testing.T) {
	admin := &entity.User{SubUUID: "s1", Username: "root", Active: true,
		Permissions: entity.PermissionAdministrator}
	mgr := &entity.User{SubUUID: "s2", Username: "mgr", Active: true,
		Permissions: entity.PermissionManageUsers}
	repo := newFakeUserRepo(admin, mgr)
	svc := newUserService(repo)

	suspended := true
	_, apierr := svc.UpdateUser(mgr, "1", &service.UpdateUserRequest{Suspended: &suspended})
	assert.Equal(t, apierror.PermissionDeniedError, apierr)
}

func TestGetUser_Me(t *testing.T) {
	actor := &entity.User{SubUUID: "s1", Username: "me", Email: "me@example.com", Active: true}
	repo := newFakeUserRepo(actor)
	svc := newUserService(repo)

	resp, apierr := svc.GetUser(actor, "@me")
	require.Nil(t, apierr)
	assert.Equal(t, "me", resp.Username)
	assert.Equal(t, "me@example.com", resp.Email, "users see their own email")
}
