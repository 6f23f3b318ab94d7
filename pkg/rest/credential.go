package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Credential is a way to get granted a Token by the passport registry.
type Credential interface {
	// Grant logs in against the registry at apiRoot and returns a
	// fresh Token.
	//
	// Args
	//
	// - context.Context
	//
	// - *http.Client: client to send the login request with
	//
	// - string: api root of the registry, without trailing slash
	//
	// Returns
	//
	// - Token: granted token
	//
	// - error: *RemoteError when the registry rejects the login
	Grant(ctx context.Context, hc *http.Client, apiRoot string) (Token, error)
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// ConnectorSecret grants a login for machine connectors. The secret is
// sent as the raw request body.
type ConnectorSecret string

func (s ConnectorSecret) Grant(ctx context.Context, hc *http.Client, apiRoot string) (Token, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, apiRoot+"/user/connector/login", strings.NewReader(string(s)),
	)
	if err != nil {
		return Token{}, err
	}
	req.Header.Add("Content-Type", "text/plain")

	resp, err := hc.Do(req)
	if err != nil {
		return Token{}, &RemoteError{Op: "logging in", Cause: err}
	}
	defer resp.Body.Close()

	res := loginResponse{}
	if err := unmarshalJsonResponse("logging in", resp, &res); err != nil {
		return Token{}, err
	}

	return ParseToken(res.AccessToken)
}

// PasswordLogin grants a login for users, with a name and a password
// sent as a JSON body.
type PasswordLogin struct {
	Username string
	Password string
}

func (p PasswordLogin) Grant(ctx context.Context, hc *http.Client, apiRoot string) (Token, error) {
	reqBody, err := json.Marshal(struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: p.Username, Password: p.Password})
	if err != nil {
		return Token{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, apiRoot+"/user/login", bytes.NewReader(reqBody),
	)
	if err != nil {
		return Token{}, err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return Token{}, &RemoteError{Op: "logging in", Cause: err}
	}
	defer resp.Body.Close()

	res := loginResponse{}
	if err := unmarshalJsonResponse("logging in", resp, &res); err != nil {
		return Token{}, err
	}

	return ParseToken(res.AccessToken)
}
