package mock

import (
	"context"
	"testing"

	"github.com/passportware/featsync/pkg/api/types/feast"
	"github.com/passportware/featsync/pkg/api/types/passport"
	"github.com/passportware/featsync/pkg/rest"
)

func NewFeastClient(t *testing.T) *mockFeastClient {
	return &mockFeastClient{t: t}
}

type mockFeastClient struct {
	t    *testing.T
	Impl struct {
		GetDataset func(ctx context.Context, datasetId string) (feast.Entity, error)
	}
	Calls struct {
		GetDataset []string
	}
}

var _ rest.FeastClient = &mockFeastClient{}

func (m *mockFeastClient) GetDataset(ctx context.Context, datasetId string) (feast.Entity, error) {
	m.t.Helper()

	m.Calls.GetDataset = append(m.Calls.GetDataset, datasetId)
	if m.Impl.GetDataset == nil {
		m.t.Fatal("GetDataset is not ready to be called")
	}
	return m.Impl.GetDataset(ctx, datasetId)
}

func NewPassportClient(t *testing.T) *mockPassportClient {
	return &mockPassportClient{t: t}
}

type mockPassportClient struct {
	t    *testing.T
	Impl struct {
		Authenticate                       func(ctx context.Context) (rest.Token, error)
		CreatePopulation                   func(ctx context.Context, p passport.Population) (passport.Population, error)
		CreateFeatureSet                   func(ctx context.Context, fs passport.FeatureSet) (passport.FeatureSet, error)
		CreateDataset                      func(ctx context.Context, d passport.Dataset) (passport.Dataset, error)
		CreateFeature                      func(ctx context.Context, f passport.Feature) (passport.Feature, error)
		CreateFeatureDatasetCharacteristic func(ctx context.Context, c passport.FeatureDatasetCharacteristic) (passport.FeatureDatasetCharacteristic, error)
	}
	Calls struct {
		Authenticate                       int
		CreatePopulation                   []passport.Population
		CreateFeatureSet                   []passport.FeatureSet
		CreateDataset                      []passport.Dataset
		CreateFeature                      []passport.Feature
		CreateFeatureDatasetCharacteristic []passport.FeatureDatasetCharacteristic
	}
}

var _ rest.PassportClient = &mockPassportClient{}

func (m *mockPassportClient) Authenticate(ctx context.Context) (rest.Token, error) {
	m.t.Helper()

	m.Calls.Authenticate += 1
	if m.Impl.Authenticate == nil {
		m.t.Fatal("Authenticate is not ready to be called")
	}
	return m.Impl.Authenticate(ctx)
}

func (m *mockPassportClient) CreatePopulation(
	ctx context.Context, p passport.Population,
) (passport.Population, error) {
	m.t.Helper()

	m.Calls.CreatePopulation = append(m.Calls.CreatePopulation, p)
	if m.Impl.CreatePopulation == nil {
		m.t.Fatal("CreatePopulation is not ready to be called")
	}
	return m.Impl.CreatePopulation(ctx, p)
}

func (m *mockPassportClient) CreateFeatureSet(
	ctx context.Context, fs passport.FeatureSet,
) (passport.FeatureSet, error) {
	m.t.Helper()

	m.Calls.CreateFeatureSet = append(m.Calls.CreateFeatureSet, fs)
	if m.Impl.CreateFeatureSet == nil {
		m.t.Fatal("CreateFeatureSet is not ready to be called")
	}
	return m.Impl.CreateFeatureSet(ctx, fs)
}

func (m *mockPassportClient) CreateDataset(
	ctx context.Context, d passport.Dataset,
) (passport.Dataset, error) {
	m.t.Helper()

	m.Calls.CreateDataset = append(m.Calls.CreateDataset, d)
	if m.Impl.CreateDataset == nil {
		m.t.Fatal("CreateDataset is not ready to be called")
	}
	return m.Impl.CreateDataset(ctx, d)
}

func (m *mockPassportClient) CreateFeature(
	ctx context.Context, f passport.Feature,
) (passport.Feature, error) {
	m.t.Helper()

	m.Calls.CreateFeature = append(m.Calls.CreateFeature, f)
	if m.Impl.CreateFeature == nil {
		m.t.Fatal("CreateFeature is not ready to be called")
	}
	return m.Impl.CreateFeature(ctx, f)
}

func (m *mockPassportClient) CreateFeatureDatasetCharacteristic(
	ctx context.Context, c passport.FeatureDatasetCharacteristic,
) (passport.FeatureDatasetCharacteristic, error) {
	m.t.Helper()

	m.Calls.CreateFeatureDatasetCharacteristic = append(m.Calls.CreateFeatureDatasetCharacteristic, c)
	if m.Impl.CreateFeatureDatasetCharacteristic == nil {
		m.t.Fatal("CreateFeatureDatasetCharacteristic is not ready to be called")
	}
	return m.Impl.CreateFeatureDatasetCharacteristic(ctx, c)
}
