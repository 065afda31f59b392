package rest

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/synthgen/synthctl/api-types/auth"
)

func (c *client) Login(ctx context.Context, email, password string) (auth.LoginResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("auth", "login"), strings.NewReader(form.Encode()),
	)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	lr, err := doJSON[auth.LoginResponse](c, c.httpclient, req, MessageFor{
		Status4xx: "login failed. check your email and password",
		Status5xx: "server error on login",
	})
	if err != nil {
		return auth.LoginResponse{}, err
	}
	c.SetToken(lr.AccessToken)
	return lr, nil
}

func (c *client) Signup(ctx context.Context, sr auth.SignupRequest) (auth.SignupResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, sr, nil, "auth", "signup")
	if err != nil {
		return auth.SignupResponse{}, err
	}
	return doJSON[auth.SignupResponse](c, c.httpclient, req, MessageFor{
		Status4xx: "signup is refused",
		Status5xx: "server error on signup",
	})
}

func (c *client) GetProfile(ctx context.Context) (auth.Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "auth", "profile")
	if err != nil {
		return auth.Profile{}, err
	}
	return doJSON[auth.Profile](c, c.httpclient, req, MessageFor{
		Status4xx: "cannot get your profile",
		Status5xx: "server error on getting profile",
	})
}

func (c *client) UpdateProfile(ctx context.Context, update auth.ProfileUpdate) (auth.Profile, error) {
	req, err := c.newRequest(ctx, http.MethodPut, update, nil, "auth", "profile")
	if err != nil {
		return auth.Profile{}, err
	}
	return doJSON[auth.Profile](c, c.httpclient, req, MessageFor{
		Status4xx: "cannot update your profile",
		Status5xx: "server error on updating profile",
	})
}
