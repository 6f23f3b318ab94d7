package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/passportware/featsync/pkg/api/types/passport"
)

func (c *passportClient) Authenticate(ctx context.Context) (Token, error) {
	token, err := c.credential.Grant(ctx, c.httpclient, c.api)
	if err != nil {
		var remote *RemoteError
		if errors.As(err, &remote) && remote.Status == http.StatusUnauthorized {
			return Token{}, fmt.Errorf("%w: login is rejected: %s", ErrAuthorization, remote.Body)
		}
		return Token{}, err
	}
	c.token = &token
	return token, nil
}

// send runs an authenticated request built by newRequest.
//
// When no token is held yet, it authenticates first. When the registry
// answers 401, it authenticates once more and retries the request once
// with the refreshed token; a second 401 is ErrAuthorization. Any other
// response, successful or not, is handed back to the caller.
func (c *passportClient) send(
	ctx context.Context, op string, newRequest func() (*http.Request, error),
) (*http.Response, error) {
	if c.token == nil {
		if _, err := c.Authenticate(ctx); err != nil {
			return nil, err
		}
	}

	do := func() (*http.Response, error) {
		req, err := newRequest()
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.token.Raw)

		resp, err := c.httpclient.Do(req)
		if err != nil {
			return nil, &RemoteError{Op: op, Cause: err}
		}
		return resp, nil
	}

	resp, err := do()
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	drain(resp)

	// the held token has been rejected. refresh it and retry, once.
	if _, err := c.Authenticate(ctx); err != nil {
		return nil, err
	}

	resp, err = do()
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		return nil, fmt.Errorf("%w: %s: 401 persists after token refresh", ErrAuthorization, op)
	}
	return resp, nil
}

// createRecord POSTs record to the named resource of the passport
// registry and returns the record as created there.
func createRecord[T any](
	ctx context.Context, c *passportClient, op string, resource string, record T,
) (T, error) {
	created := *new(T)

	body, err := json.Marshal(record)
	if err != nil {
		return created, err
	}

	target := apipath(c.api, resource) + "?studyId=" + url.QueryEscape(c.studyId)
	resp, err := c.send(ctx, op, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(
			ctx, http.MethodPost, target, bytes.NewReader(body),
		)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return created, err
	}
	defer resp.Body.Close()

	if err := unmarshalJsonResponse(op, resp, &created); err != nil {
		return created, err
	}
	return created, nil
}

func (c *passportClient) CreatePopulation(
	ctx context.Context, p passport.Population,
) (passport.Population, error) {
	return createRecord(ctx, c, "creating population", "population", p)
}

func (c *passportClient) CreateFeatureSet(
	ctx context.Context, fs passport.FeatureSet,
) (passport.FeatureSet, error) {
	return createRecord(ctx, c, "creating feature set", "featureset", fs)
}

func (c *passportClient) CreateDataset(
	ctx context.Context, d passport.Dataset,
) (passport.Dataset, error) {
	return createRecord(ctx, c, "creating dataset", "dataset", d)
}

func (c *passportClient) CreateFeature(
	ctx context.Context, f passport.Feature,
) (passport.Feature, error) {
	return createRecord(ctx, c, "creating feature", "feature", f)
}

func (c *passportClient) CreateFeatureDatasetCharacteristic(
	ctx context.Context, ch passport.FeatureDatasetCharacteristic,
) (passport.FeatureDatasetCharacteristic, error) {
	return createRecord(
		ctx, c, "creating feature dataset characteristic",
		"feature-dataset-characteristic", ch,
	)
}
