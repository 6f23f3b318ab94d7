// Package passport models the records which this connector writes into
// a passport provenance registry.
//
// Each record is created by one POST call. The registry echoes the
// record back with its server-assigned identifier and audit fields
// filled in, so each type carries those as optional fields.
package passport

import (
	"github.com/passportware/featsync/pkg/utils/rfctime"
)

type Population struct {
	PopulationId    string `json:"populationId,omitempty"`
	StudyId         string `json:"studyId"`
	PopulationUrl   string `json:"populationUrl"`
	Description     string `json:"description"`
	Characteristics string `json:"characteristics"`
}

func (p Population) Equal(o Population) bool {
	return p == o
}

type FeatureSet struct {
	FeaturesetId  string           `json:"featuresetId,omitempty"`
	ExperimentId  string           `json:"experimentId"`
	Title         string           `json:"title"`
	FeaturesetUrl string           `json:"featuresetURL"`
	Description   string           `json:"description"`
	CreatedAt     *rfctime.RFC3339 `json:"createdAt,omitempty"`
	CreatedBy     string           `json:"createdBy,omitempty"`
	LastUpdatedAt *rfctime.RFC3339 `json:"lastUpdatedAt,omitempty"`
	LastUpdatedBy string           `json:"lastUpdatedBy,omitempty"`
}

func (fs FeatureSet) Equal(o FeatureSet) bool {
	return fs.FeaturesetId == o.FeaturesetId &&
		fs.ExperimentId == o.ExperimentId &&
		fs.Title == o.Title &&
		fs.FeaturesetUrl == o.FeaturesetUrl &&
		fs.Description == o.Description &&
		fs.CreatedAt.Equal(o.CreatedAt) &&
		fs.CreatedBy == o.CreatedBy &&
		fs.LastUpdatedAt.Equal(o.LastUpdatedAt) &&
		fs.LastUpdatedBy == o.LastUpdatedBy
}

type Dataset struct {
	DatasetId       string           `json:"datasetId,omitempty"`
	FeaturesetId    string           `json:"featuresetId"`
	PopulationId    string           `json:"populationId"`
	OrganizationId  string           `json:"organizationId"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Version         string           `json:"version"`
	ReferenceEntity string           `json:"referenceEntity"`
	NumOfRecords    int64            `json:"numOfRecords"`
	Synthetic       bool             `json:"synthetic"`
	CreatedAt       *rfctime.RFC3339 `json:"createdAt,omitempty"`
	CreatedBy       string           `json:"createdBy,omitempty"`
	LastUpdatedAt   *rfctime.RFC3339 `json:"lastUpdatedAt,omitempty"`
	LastUpdatedBy   string           `json:"lastUpdatedBy,omitempty"`
}

func (d Dataset) Equal(o Dataset) bool {
	return d.DatasetId == o.DatasetId &&
		d.FeaturesetId == o.FeaturesetId &&
		d.PopulationId == o.PopulationId &&
		d.OrganizationId == o.OrganizationId &&
		d.Title == o.Title &&
		d.Description == o.Description &&
		d.Version == o.Version &&
		d.ReferenceEntity == o.ReferenceEntity &&
		d.NumOfRecords == o.NumOfRecords &&
		d.Synthetic == o.Synthetic &&
		d.CreatedAt.Equal(o.CreatedAt) &&
		d.CreatedBy == o.CreatedBy &&
		d.LastUpdatedAt.Equal(o.LastUpdatedAt) &&
		d.LastUpdatedBy == o.LastUpdatedBy
}

// Feature represents both plain features and outcomes,
// distinguished by IsOutcome.
type Feature struct {
	FeatureId      string           `json:"featureId,omitempty"`
	FeaturesetId   string           `json:"featuresetId"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	DataType       string           `json:"dataType"`
	IsOutcome      bool             `json:"isOutcome"`
	Mandatory      bool             `json:"mandatory"`
	IsUnique       bool             `json:"isUnique"`
	Units          string           `json:"units"`
	Equipment      string           `json:"equipment"`
	DataCollection string           `json:"dataCollection"`
	CreatedAt      *rfctime.RFC3339 `json:"createdAt,omitempty"`
	CreatedBy      string           `json:"createdBy,omitempty"`
	LastUpdatedAt  *rfctime.RFC3339 `json:"lastUpdatedAt,omitempty"`
	LastUpdatedBy  string           `json:"lastUpdatedBy,omitempty"`
}

func (f Feature) Equal(o Feature) bool {
	return f.FeatureId == o.FeatureId &&
		f.FeaturesetId == o.FeaturesetId &&
		f.Title == o.Title &&
		f.Description == o.Description &&
		f.DataType == o.DataType &&
		f.IsOutcome == o.IsOutcome &&
		f.Mandatory == o.Mandatory &&
		f.IsUnique == o.IsUnique &&
		f.Units == o.Units &&
		f.Equipment == o.Equipment &&
		f.DataCollection == o.DataCollection &&
		f.CreatedAt.Equal(o.CreatedAt) &&
		f.CreatedBy == o.CreatedBy &&
		f.LastUpdatedAt.Equal(o.LastUpdatedAt) &&
		f.LastUpdatedBy == o.LastUpdatedBy
}

// FeatureDatasetCharacteristic is one (name, value, kind) triple
// derived from the statistics of an outcome feature.
type FeatureDatasetCharacteristic struct {
	DatasetId          string `json:"datasetId"`
	FeatureId          string `json:"featureId"`
	CharacteristicName string `json:"characteristicName"`
	Value              string `json:"value"`
	ValueDataType      string `json:"valueDataType"`
}

func (c FeatureDatasetCharacteristic) Equal(o FeatureDatasetCharacteristic) bool {
	return c == o
}
