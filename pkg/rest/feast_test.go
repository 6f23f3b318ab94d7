package rest_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/passportware/featsync/internal/testutils/registry"
	"github.com/passportware/featsync/pkg/api/types/feast"
	"github.com/passportware/featsync/pkg/configs/connector"
	"github.com/passportware/featsync/pkg/rest"
	"github.com/passportware/featsync/pkg/utils/try"
)

func profileWith(feastURL string, passportURL string) *connector.Profile {
	prof := connector.Default()
	prof.Feast.ApiRoot = feastURL
	prof.Feast.DatasetId = "ds-0001"
	prof.Passport.ApiRoot = passportURL
	prof.Passport.StudyId = "study-1"
	prof.Passport.ExperimentId = "exp-1"
	prof.Passport.OrganizationId = "org-1"
	prof.Passport.ConnectorSecret = "s3cr3t"
	return prof
}

const minimalDocument = `{
	"entity": {
		"id": "ds-0001",
		"issued": "2024-05-01T10:00:00.000+00:00",
		"temporal": {"end": "2023-12-31T00:00:00.000+00:00"},
		"population": {"url": "https://registry.example/population/p", "title": "P"},
		"featureSet": {"url": "https://registry.example/feature-set/f", "title": "F"},
		"dataSource": {"name": "src", "version": "1.0.0"},
		"baseVariables": [],
		"features": [{"name": "age", "dataType": "integer"}],
		"outcomes": [],
		"populationStats": {"numOfEntries": 10},
		"datasetStats": {
			"numOfEntries": 10,
			"featureStats": {"age": {"numOfNotNull": 10}}
		}
	}
}`

func TestGetDataset(t *testing.T) {

	t.Run("it parses the document the registry serves", func(t *testing.T) {
		server := (&registry.Feast{
			Documents: map[string]string{"ds-0001": minimalDocument},
		}).Server(t)

		testee := try.To(rest.NewFeastClient(profileWith(server.URL, "http://localhost:8080"))).OrFatal(t)

		actual := try.To(testee.GetDataset(context.Background(), "ds-0001")).OrFatal(t)

		if actual.Id != "ds-0001" {
			t.Errorf("entity id unmatch: %s", actual.Id)
		}
		if actual.Population.Title != "P" {
			t.Errorf("population title unmatch: %s", actual.Population.Title)
		}
		if len(actual.Features) != 1 || actual.Features[0].Name != "age" {
			t.Errorf("features unmatch: %+v", actual.Features)
		}
		if actual.DatasetStats.NumOfEntries != 10 {
			t.Errorf("numOfEntries unmatch: %d", actual.DatasetStats.NumOfEntries)
		}
	})

	t.Run("a dataset the registry does not know is a remote error", func(t *testing.T) {
		server := (&registry.Feast{Documents: map[string]string{}}).Server(t)

		testee := try.To(rest.NewFeastClient(profileWith(server.URL, "http://localhost:8080"))).OrFatal(t)

		_, err := testee.GetDataset(context.Background(), "no-such-dataset")

		remote := new(rest.RemoteError)
		if !errors.As(err, &remote) {
			t.Fatalf("error should be RemoteError: %+v", err)
		}
		if remote.Status != http.StatusNotFound {
			t.Errorf("status unmatch: %d", remote.Status)
		}
	})

	t.Run("a document lacking a required field is a schema error", func(t *testing.T) {
		server := (&registry.Feast{
			Documents: map[string]string{
				// no population
				"ds-0001": `{"entity": {
					"id": "ds-0001",
					"issued": "2024-05-01T10:00:00.000+00:00",
					"temporal": {"end": "2023-12-31T00:00:00.000+00:00"},
					"featureSet": {"url": "u", "title": "F"},
					"dataSource": {"name": "src", "version": "1.0.0"},
					"baseVariables": [], "features": [], "outcomes": [],
					"populationStats": {"numOfEntries": 10},
					"datasetStats": {"numOfEntries": 10}
				}}`,
			},
		}).Server(t)

		testee := try.To(rest.NewFeastClient(profileWith(server.URL, "http://localhost:8080"))).OrFatal(t)

		_, err := testee.GetDataset(context.Background(), "ds-0001")
		if !errors.Is(err, feast.ErrSchema) {
			t.Errorf("error should wrap ErrSchema: %+v", err)
		}
	})

	t.Run("an empty dataset identifier is rejected without a request", func(t *testing.T) {
		requested := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requested = true
		}))
		defer server.Close()

		testee := try.To(rest.NewFeastClient(profileWith(server.URL, "http://localhost:8080"))).OrFatal(t)

		if _, err := testee.GetDataset(context.Background(), ""); err == nil {
			t.Error("empty dataset identifier should be an error")
		}
		if requested {
			t.Error("no request should be sent for an empty identifier")
		}
	})

	t.Run("expiry of the per-request timeout is a remote timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
		}))
		defer server.Close()

		prof := profileWith(server.URL, "http://localhost:8080")
		prof.Timeout = "50ms"
		testee := try.To(rest.NewFeastClient(prof)).OrFatal(t)

		_, err := testee.GetDataset(context.Background(), "ds-0001")

		remote := new(rest.RemoteError)
		if !errors.As(err, &remote) {
			t.Fatalf("error should be RemoteError: %+v", err)
		}
		if !remote.Timeout() {
			t.Errorf("error should report timeout: %+v", remote)
		}
	})
}
