package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/passportware/featsync/pkg/api/types/feast"
)

func (c *feastClient) GetDataset(ctx context.Context, datasetId string) (feast.Entity, error) {
	if datasetId == "" {
		return feast.Entity{}, fmt.Errorf("dataset identifier should not be empty")
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, apipath(c.api, "Dataset", datasetId), nil,
	)
	if err != nil {
		return feast.Entity{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return feast.Entity{}, &RemoteError{Op: "fetching dataset description", Cause: err}
	}
	defer resp.Body.Close()

	res := feast.DatasetResponse{}
	if err := unmarshalJsonResponse("fetching dataset description", resp, &res); err != nil {
		return feast.Entity{}, err
	}

	return res.Entity, nil
}
