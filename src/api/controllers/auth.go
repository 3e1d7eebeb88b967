package controllers

import (
	"context"

	"server/src/schemas"
)

func (c *Controller) Register(ctx context.Context, req *schemas.RegisterRequest) (*schemas.UserResponse, error) {
	user, err := c.Auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return schemas.NewUserResponse(user), nil
}

func (c *Controller) Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.TokenResponse, error) {
	return c.Auth.Login(ctx, req)
}

func (c *Controller) Refresh(ctx context.Context, refreshToken string) (*schemas.TokenResponse, error) {
	return c.Auth.Refresh(ctx, refreshToken)
}
