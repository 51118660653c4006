package service

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"listingdesk/cmd/internal/domain/entity"
	"listingdesk/cmd/internal/utils"
	"listingdesk/cmd/internal/utils/apierror"
)

// DefaultMemberPermissions is the bitmask granted to accounts provisioned on
// their first authenticated request. Elevated bits are assigned manually.
const DefaultMemberPermissions = entity.PermissionCreateListings | entity.PermissionUploadAssets

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
	FindActiveBySub(sub string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Save(user *entity.User) error
}

type UpdateUserRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=2,max=80"`
	Perms     *int64  `json:"perms" validate:"omitempty,min=0"`
	Suspended *bool   `json:"suspended" validate:"omitempty"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Perms     int64  `json:"permissions"`
	Suspended *bool  `json:"suspended,omitempty"` // Req (Manage Users)
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type UserService struct {
	UserRepo UserRepository
	Validate *validator.Validate
}

func NewUserService(userRepo UserRepository, validate *validator.Validate) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Validate: validate,
	}
}

// ResolveActor maps a verified token onto a local user row, provisioning the
// row on first sight. The identity provider owns signup and credentials; this
// table only carries the console-side state (permissions, suspension).
func (u *UserService) ResolveActor(data *utils.TokenData) (*entity.User, error) {
	user, err := u.UserRepo.FindActiveBySub(data.Sub)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	now := utils.NowUTC()
	user = &entity.User{
		SubUUID:       data.Sub,
		Username:      usernameFromEmail(data.Email),
		Email:         data.Email,
		EmailVerified: true, // the IdP only issues tokens for verified accounts
		Permissions:   DefaultMemberPermissions,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := u.UserRepo.Save(user); err != nil {
		return nil, err
	}

	log.Infof("provisioned user %d for sub %s", user.ID, data.Sub)
	return user, nil
}

func (u *UserService) GetUser(actor *entity.User, rawId string) (*UserResponse, apierror.ErrorResponse) {
	user, apierr := u.fetchUser(actor, rawId)
	if apierr != nil {
		return nil, apierr
	}

	if user == nil || !user.Active {
		return nil, apierror.NotFoundError
	}
	return toUserResponse(user, actor), nil
}

func (u *UserService) UpdateUser(actor *entity.User, targetId string, req *UpdateUserRequest) (*UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	target, apierr := u.fetchUser(actor, targetId)
	if apierr != nil {
		return nil, apierr
	}
	if target == nil || !target.Active {
		return nil, apierror.NotFoundError
	}

	updater := &userUpdater{actor: actor, target: target}
	updater.setUsername(req.Username)
	updater.setPermissions(req.Perms)
	updater.setSuspended(req.Suspended)

	if updater.err != nil {
		return nil, updater.err
	}

	if updater.dirty {
		target.UpdatedAt = utils.NowUTC()
		if err := u.UserRepo.Save(target); err != nil {
			log.Errorf("actor %d failed to update user %s: %v", actor.ID, targetId, err)
			return nil, apierror.InternalServerError
		}
	}
	return toUserResponse(target, actor), nil
}

func (u *UserService) fetchUser(actor *entity.User, rawId string) (*entity.User, apierror.ErrorResponse) {
	if rawId == "@me" {
		return actor, nil
	}

	userId, err := strconv.ParseInt(rawId, 10, 64)
	if err != nil {
		return nil, apierror.NewInvalidParamTypeError("id", "int64")
	}

	user, err := u.UserRepo.FindByID(userId)
	if err != nil {
		log.Errorf("failed to find user (%s) by id: %v", rawId, err)
		return nil, apierror.InternalServerError
	}
	return user, nil
}

func toUserResponse(user, requester *entity.User) *UserResponse {
	resp := &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Perms:     int64(user.Permissions),
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
		UpdatedAt: utils.FormatEpoch(user.UpdatedAt),
	}

	if user.ID == requester.ID {
		resp.Email = user.Email
	}

	if requester.Permissions.HasEffective(entity.PermissionManageUsers) {
		resp.Suspended = &user.Suspended
	}
	return resp
}

func usernameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
