// Package rest speaks to the two registries this connector sits
// between: the feast metadata registry serving dataset descriptions,
// and the passport provenance registry receiving the derived records.
package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/passportware/featsync/pkg/api/types/feast"
	"github.com/passportware/featsync/pkg/api/types/passport"
	"github.com/passportware/featsync/pkg/configs/connector"
	"github.com/passportware/featsync/pkg/utils/slices"
)

type FeastClient interface {
	// GetDataset fetches the dataset description with the given
	// identifier. No authentication is required.
	//
	// Args
	//
	// - context.Context
	//
	// - string: identifier of the dataset description. Should not be empty.
	//
	// Returns
	//
	// - feast.Entity: the parsed dataset description
	//
	// - error: *RemoteError when the registry does not serve the
	// document, or an error wrapping feast.ErrSchema when the document
	// lacks a required field.
	GetDataset(ctx context.Context, datasetId string) (feast.Entity, error)
}

type PassportClient interface {
	// Authenticate logs in with the configured credential and keeps
	// the granted token for subsequent calls.
	//
	// Create operations call this by themselves when no token is held
	// yet, and once more when the held token is rejected with 401.
	//
	// Returns
	//
	// - Token: the granted token. Its Subject identifies the acting user.
	//
	// - error
	Authenticate(ctx context.Context) (Token, error)

	// CreatePopulation registers a new population record.
	//
	// Args
	//
	// - context.Context
	//
	// - passport.Population: record to be registered
	//
	// Returns
	//
	// - passport.Population: the record as created, with its
	// server-assigned identifier
	//
	// - error: *RemoteError for non-2xx responses, or an error wrapping
	// ErrAuthorization when 401 persists after one token refresh and
	// retry.
	CreatePopulation(ctx context.Context, p passport.Population) (passport.Population, error)

	// CreateFeatureSet registers a new feature set record.
	//
	// Same contract as CreatePopulation.
	CreateFeatureSet(ctx context.Context, fs passport.FeatureSet) (passport.FeatureSet, error)

	// CreateDataset registers a new dataset record. The record should
	// carry the identifiers of its population and feature set.
	//
	// Same contract as CreatePopulation.
	CreateDataset(ctx context.Context, d passport.Dataset) (passport.Dataset, error)

	// CreateFeature registers a new feature (or outcome) record. The
	// record should carry the identifier of its feature set.
	//
	// Same contract as CreatePopulation.
	CreateFeature(ctx context.Context, f passport.Feature) (passport.Feature, error)

	// CreateFeatureDatasetCharacteristic registers one statistic of an
	// outcome feature within a dataset. The record should carry the
	// identifiers of that dataset and feature.
	//
	// Same contract as CreatePopulation.
	CreateFeatureDatasetCharacteristic(ctx context.Context, c passport.FeatureDatasetCharacteristic) (passport.FeatureDatasetCharacteristic, error)
}

type feastClient struct {
	httpclient *http.Client
	api        string
}

// create new client for the feast registry in a Profile.
//
// # Args
//
// - *connector.Profile
//
// # Return
//
// - FeastClient: created client
//
// - error: If given profile is invalid, connector.ErrProfileInvalid is
// returned.
func NewFeastClient(prof *connector.Profile) (FeastClient, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}

	return &feastClient{
		httpclient: &http.Client{Timeout: prof.RequestTimeout()},
		api:        strings.TrimSuffix(prof.Feast.ApiRoot, "/"),
	}, nil
}

// passportClient holds the single bearer token of this connector. The
// token is replaced only by Authenticate, during the bounded
// refresh-and-retry sequence. The client is not for concurrent use.
type passportClient struct {
	httpclient *http.Client
	api        string
	studyId    string
	credential Credential
	token      *Token
}

// create new client for the passport registry in a Profile.
//
// # Args
//
// - *connector.Profile
//
// # Return
//
// - PassportClient: created client, not yet authenticated
//
// - error: If given profile is invalid, connector.ErrProfileInvalid is
// returned.
func NewPassportClient(prof *connector.Profile) (PassportClient, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}

	var credential Credential
	if prof.Passport.ConnectorSecret != "" {
		credential = ConnectorSecret(prof.Passport.ConnectorSecret)
	} else {
		credential = PasswordLogin{
			Username: prof.Passport.Username,
			Password: prof.Passport.Password,
		}
	}

	return &passportClient{
		httpclient: &http.Client{Timeout: prof.RequestTimeout()},
		api:        strings.TrimSuffix(prof.Passport.ApiRoot, "/"),
		studyId:    prof.Passport.StudyId,
		credential: credential,
	}, nil
}

// build URL with path
func apipath(api string, path ...string) string {
	path = slices.Map(path, func(p string) string {
		return strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/")
	})

	return strings.Join(append([]string{api}, path...), "/")
}
