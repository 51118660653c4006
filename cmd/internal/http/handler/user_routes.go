package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listingdesk/cmd/internal/domain/entity"
	"listingdesk/cmd/internal/service"
	"listingdesk/cmd/internal/utils"
	"listingdesk/cmd/internal/utils/apierror"
)

type UserService interface {
	GetUser(actor *entity.User, rawId string) (*service.UserResponse, apierror.ErrorResponse)
	UpdateUser(actor *entity.User, targetId string, req *service.UpdateUserRequest) (*service.UserResponse, apierror.ErrorResponse)
}

type DefaultUserRoute struct {
	UserService UserService
}

func NewUserDefault(userService UserService) *DefaultUserRoute {
	return &DefaultUserRoute{UserService: userService}
}

func (u *DefaultUserRoute) GetUser(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	resp, apierr := u.UserService.GetUser(user, c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (u *DefaultUserRoute) UpdateUser(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req service.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := u.UserService.UpdateUser(user, c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
