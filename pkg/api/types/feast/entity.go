// Package feast models the dataset description resource served by a feast
// metadata registry.
//
// The resource is a single nested JSON document. Fields which the record
// mapping depends on are verified at parse time and their absence is
// reported as ErrSchema. Everything else is carried tolerantly and may be
// zero.
package feast

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/passportware/featsync/pkg/utils/cmp"
	"github.com/passportware/featsync/pkg/utils/rfctime"
)

// ErrSchema is returned when a dataset description lacks a structural
// field which the record mapping depends on.
var ErrSchema = errors.New("dataset description schema mismatch")

func missingField(name string) error {
	return fmt.Errorf(`%w: required field missing: %q`, ErrSchema, name)
}

// DatasetResponse is the envelope which the registry wraps a dataset
// description in.
type DatasetResponse struct {
	Entity Entity `json:"entity"`
}

func (dr *DatasetResponse) UnmarshalJSON(b []byte) error {
	f := new(struct {
		Entity *Entity `json:"entity"`
	})
	if err := json.Unmarshal(b, f); err != nil {
		return err
	}

	if f.Entity == nil {
		return missingField("entity")
	}
	dr.Entity = *f.Entity

	return nil
}

func (dr DatasetResponse) Equal(o DatasetResponse) bool {
	return dr.Entity.Equal(o.Entity)
}

// Entity is the root record of a dataset description.
type Entity struct {
	Id              string          `json:"id"`
	Issued          rfctime.RFC3339 `json:"issued"`
	Temporal        Temporal        `json:"temporal"`
	Population      Population      `json:"population"`
	FeatureSet      FeatureSet      `json:"featureSet"`
	DataSource      DataSource      `json:"dataSource"`
	BaseVariables   []Variable      `json:"baseVariables"`
	Features        []Variable      `json:"features"`
	Outcomes        []Variable      `json:"outcomes"`
	PopulationStats PopulationStats `json:"populationStats"`
	DatasetStats    DatasetStats    `json:"datasetStats"`
}

func (e *Entity) UnmarshalJSON(b []byte) error {
	f := new(struct {
		Id              *string          `json:"id"`
		Issued          *rfctime.RFC3339 `json:"issued"`
		Temporal        *Temporal        `json:"temporal"`
		Population      *Population      `json:"population"`
		FeatureSet      *FeatureSet      `json:"featureSet"`
		DataSource      *DataSource      `json:"dataSource"`
		BaseVariables   *[]Variable      `json:"baseVariables"`
		Features        *[]Variable      `json:"features"`
		Outcomes        *[]Variable      `json:"outcomes"`
		PopulationStats *PopulationStats `json:"populationStats"`
		DatasetStats    *DatasetStats    `json:"datasetStats"`
	})
	if err := json.Unmarshal(b, f); err != nil {
		return err
	}

	if f.Id == nil {
		return missingField("id")
	}
	e.Id = *f.Id

	if f.Issued == nil {
		return missingField("issued")
	}
	e.Issued = *f.Issued

	if f.Temporal == nil {
		return missingField("temporal")
	}
	e.Temporal = *f.Temporal

	if f.Population == nil {
		return missingField("population")
	}
	e.Population = *f.Population

	if f.FeatureSet == nil {
		return missingField("featureSet")
	}
	e.FeatureSet = *f.FeatureSet

	if f.DataSource == nil {
		return missingField("dataSource")
	}
	e.DataSource = *f.DataSource

	if f.BaseVariables == nil {
		return missingField("baseVariables")
	}
	e.BaseVariables = *f.BaseVariables

	if f.Features == nil {
		return missingField("features")
	}
	e.Features = *f.Features

	if f.Outcomes == nil {
		return missingField("outcomes")
	}
	e.Outcomes = *f.Outcomes

	if f.PopulationStats == nil {
		return missingField("populationStats")
	}
	e.PopulationStats = *f.PopulationStats

	if f.DatasetStats == nil {
		return missingField("datasetStats")
	}
	e.DatasetStats = *f.DatasetStats

	return nil
}

func (e Entity) Equal(o Entity) bool {
	return e.Id == o.Id &&
		e.Issued.Equal(&o.Issued) &&
		e.Temporal.Equal(o.Temporal) &&
		e.Population.Equal(o.Population) &&
		e.FeatureSet.Equal(o.FeatureSet) &&
		e.DataSource.Equal(o.DataSource) &&
		cmp.SliceEqWith(e.BaseVariables, o.BaseVariables, Variable.Equal) &&
		cmp.SliceEqWith(e.Features, o.Features, Variable.Equal) &&
		cmp.SliceEqWith(e.Outcomes, o.Outcomes, Variable.Equal) &&
		e.PopulationStats.Equal(o.PopulationStats) &&
		e.DatasetStats.Equal(o.DatasetStats)
}

// Temporal is the observation period of a dataset.
type Temporal struct {
	Start *rfctime.RFC3339 `json:"start,omitempty"`
	End   rfctime.RFC3339  `json:"end"`
}

func (t *Temporal) UnmarshalJSON(b []byte) error {
	f := new(struct {
		Start *rfctime.RFC3339 `json:"start"`
		End   *rfctime.RFC3339 `json:"end"`
	})
	if err := json.Unmarshal(b, f); err != nil {
		return err
	}

	t.Start = f.Start

	if f.End == nil {
		return missingField("end")
	}
	t.End = *f.End

	return nil
}

func (t Temporal) Equal(o Temporal) bool {
	return t.Start.Equal(o.Start) && t.End.Equal(&o.End)
}

// Population describes the cohort a dataset was drawn from.
type Population struct {
	Url         string    `json:"url"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Pipeline    *Pipeline `json:"pipeline,omitempty"`
}

func (p *Population) UnmarshalJSON(b []byte) error {
	f := new(struct {
		Url         *string   `json:"url"`
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Pipeline    *Pipeline `json:"pipeline"`
	})
	if err := json.Unmarshal(b, f); err != nil {
		return err
	}

	if f.Url == nil {
		return missingField("url")
	}
	p.Url = *f.Url

	if f.Title == nil {
		return missingField("title")
	}
	p.Title = *f.Title

	p.Description = f.Description
	p.Pipeline = f.Pipeline

	return nil
}

func (p Population) Equal(o Population) bool {
	return p.Url == o.Url &&
		p.Title == o.Title &&
		cmp.PEqEq(p.Description, o.Description) &&
		cmp.PEqualWith(p.Pipeline, o.Pipeline, Pipeline.Equal)
}

// FeatureSet names the group of variables a dataset is built of.
type FeatureSet struct {
	Url         string    `json:"url"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Pipeline    *Pipeline `json:"pipeline,omitempty"`
}

func (fs *FeatureSet) UnmarshalJSON(b []byte) error {
	f := new(struct {
		Url         *string   `json:"url"`
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Pipeline    *Pipeline `json:"pipeline"`
	})
	if err := json.Unmarshal(b, f); err != nil {
		return err
	}

	if f.Url == nil {
		return missingField("url")
	}
	fs.Url = *f.Url

	if f.Title == nil {
		return missingField("title")
	}
	fs.Title = *f.Title

	fs.Description = f.Description
	fs.Pipeline = f.Pipeline

	return nil
}

func (fs FeatureSet) Equal(o FeatureSet) bool {
	return fs.Url == o.Url &&
		fs.Title == o.Title &&
		cmp.PEqEq(fs.Description, o.Description) &&
		cmp.PEqualWith(fs.Pipeline, o.Pipeline, Pipeline.Equal)
}

// Pipeline points at the process which produced a population or a
// feature set.
type Pipeline struct {
	Reference string  `json:"reference"`
	Display   *string `json:"display,omitempty"`
}

func (p Pipeline) Equal(o Pipeline) bool {
	return p.Reference == o.Reference && cmp.PEqEq(p.Display, o.Display)
}

// DataSource identifies the system a dataset was extracted from.
type DataSource struct {
	Id         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Interface  string `json:"interface,omitempty"`
	Version    string `json:"version"`
	SourceType string `json:"sourceType,omitempty"`
}

func (d *DataSource) UnmarshalJSON(b []byte) error {
	f := new(struct {
		Id         *string `json:"id"`
		Name       *string `json:"name"`
		Interface  *string `json:"interface"`
		Version    *string `json:"version"`
		SourceType *string `json:"sourceType"`
	})
	if err := json.Unmarshal(b, f); err != nil {
		return err
	}

	if f.Id != nil {
		d.Id = *f.Id
	}

	if f.Name == nil {
		return missingField("name")
	}
	d.Name = *f.Name

	if f.Interface != nil {
		d.Interface = *f.Interface
	}

	if f.Version == nil {
		return missingField("version")
	}
	d.Version = *f.Version

	if f.SourceType != nil {
		d.SourceType = *f.SourceType
	}

	return nil
}

func (d DataSource) Equal(o DataSource) bool {
	return d == o
}
