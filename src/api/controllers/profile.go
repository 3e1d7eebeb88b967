package controllers

import (
	"context"

	"server/src/schemas"
	"server/src/services"
)

func (c *Controller) GetProfile(ctx context.Context, userID int) (*schemas.UserResponse, error) {
	user, err := c.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, services.NewError(services.KindNotFound, "user not found")
	}
	return schemas.NewUserResponse(user), nil
}

func (c *Controller) UpdateProfile(ctx context.Context, userID int, patch *schemas.UserUpdate) (*schemas.UserResponse, error) {
	user, err := c.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, services.NewError(services.KindNotFound, "user not found")
	}

	patch.Apply(user)
	if err := c.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return schemas.NewUserResponse(user), nil
}
