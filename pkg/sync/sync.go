// Package sync drives one synchronization run: fetch a dataset
// description from the feast registry, derive passport records from
// it, and register them in dependency order.
//
// The order is fixed because later records carry identifiers minted by
// earlier ones: population and feature set first, then the dataset
// referring to both, then features and outcomes under the feature set,
// then one characteristic per outcome statistic under the dataset and
// its outcome. There is no rollback. A failing step aborts the run and
// whatever has been registered already stays registered.
package sync

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/passportware/featsync/pkg/api/types/feast"
	"github.com/passportware/featsync/pkg/checkpoint"
	"github.com/passportware/featsync/pkg/rest"
	"github.com/passportware/featsync/pkg/transform"
	"github.com/passportware/featsync/pkg/utils/logger"
	"github.com/passportware/featsync/pkg/utils/rfctime"
)

// Report sums up one run.
type Report struct {
	// RunId names the run, for log correlation only.
	RunId string

	// Issued timestamp of the fetched dataset description.
	Issued rfctime.RFC3339

	// Skipped is true when the description was not newer than the
	// checkpoint and nothing has been registered.
	Skipped bool

	// counts of records registered
	Populations     int
	FeatureSets     int
	Datasets        int
	Features        int
	Outcomes        int
	Characteristics int
}

func (r Report) String() string {
	if r.Skipped {
		return fmt.Sprintf(
			"run %s: skipped (dataset description issued at %s is not newer than the checkpoint)",
			r.RunId, r.Issued,
		)
	}
	return fmt.Sprintf(
		"run %s: registered %d population, %d feature set, %d dataset, %d features, %d outcomes, %d characteristics (issued at %s)",
		r.RunId,
		r.Populations, r.FeatureSets, r.Datasets,
		r.Features, r.Outcomes, r.Characteristics,
		r.Issued,
	)
}

// Pipeline is the fixed sequence of synchronization steps.
type Pipeline struct {
	source    rest.FeastClient
	dest      rest.PassportClient
	datasetId string
	context   transform.Context
	book      *checkpoint.Book
	logger    *log.Logger
}

type Option func(*Pipeline) *Pipeline

// WithCheckpoint makes the pipeline skip dataset descriptions not
// newer than the timestamp recorded in book, and record the issued
// timestamp of each description it registers.
func WithCheckpoint(book *checkpoint.Book) Option {
	return func(p *Pipeline) *Pipeline {
		p.book = book
		return p
	}
}

// New builds a Pipeline.
//
// # Args
//
// - rest.FeastClient: source registry the dataset description is read from
//
// - rest.PassportClient: destination registry the records go to
//
// - string: identifier of the dataset description
//
// - transform.Context: study/experiment/organization the records are
// filed under. Its UserId is overwritten with the subject of the
// granted token.
//
// - *log.Logger
//
// - ...Option
func New(
	source rest.FeastClient,
	dest rest.PassportClient,
	datasetId string,
	c transform.Context,
	l *log.Logger,
	option ...Option,
) *Pipeline {
	p := &Pipeline{
		source:    source,
		dest:      dest,
		datasetId: datasetId,
		context:   c,
		logger:    l,
	}
	for _, opt := range option {
		p = opt(p)
	}
	return p
}

// state threads the run between steps: what has been fetched and
// derived so far, and the identifiers minted by the registry.
type state struct {
	context transform.Context
	entity  feast.Entity
	bundle  transform.Bundle

	populationId string
	featuresetId string
	datasetId    string

	// skip stops the run before anything is registered
	skip bool

	report Report
}

type step struct {
	name string
	run  func(ctx context.Context, s *state) error
}

func (p *Pipeline) steps() []step {
	return []step{
		{name: "authenticate", run: p.authenticate},
		{name: "fetch", run: p.fetch},
		{name: "transform", run: p.transform},
		{name: "population", run: p.population},
		{name: "featureset", run: p.featureset},
		{name: "dataset", run: p.dataset},
		{name: "features", run: p.features},
		{name: "outcomes", run: p.outcomes},
		{name: "checkpoint", run: p.checkpoint},
	}
}

// Run executes the steps in order. The first error aborts the run and
// comes back wrapped with the failing step's name. The Report is
// meaningful even on error: it counts what has been registered before
// the abort.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	s := &state{context: p.context}
	s.report.RunId = uuid.NewString()

	l := logger.By(p.logger, logger.Copied(), logger.WithPrefix(
		fmt.Sprintf("[sync %s] ", s.report.RunId[:8]),
	))

	for _, st := range p.steps() {
		timestamp := time.Now()
		l.Printf("step start: %s", st.name)
		if err := st.run(ctx, s); err != nil {
			return s.report, fmt.Errorf("step %s: %w", st.name, err)
		}
		l.Printf("step end: %s (takes %s)", st.name, time.Since(timestamp))

		if s.skip {
			s.report.Skipped = true
			break
		}
	}

	return s.report, nil
}

func (p *Pipeline) authenticate(ctx context.Context, s *state) error {
	token, err := p.dest.Authenticate(ctx)
	if err != nil {
		return err
	}
	s.context.UserId = token.Subject
	return nil
}

func (p *Pipeline) fetch(ctx context.Context, s *state) error {
	entity, err := p.source.GetDataset(ctx, p.datasetId)
	if err != nil {
		return err
	}
	s.entity = entity
	s.report.Issued = entity.Issued

	if p.book != nil {
		last, err := p.book.Last()
		if err != nil {
			return err
		}
		if !entity.Issued.Time().After(last) {
			s.skip = true
		}
	}
	return nil
}

func (p *Pipeline) transform(_ context.Context, s *state) error {
	s.bundle = transform.Transform(s.entity, s.context)
	return nil
}

func (p *Pipeline) population(ctx context.Context, s *state) error {
	created, err := p.dest.CreatePopulation(ctx, s.bundle.Population)
	if err != nil {
		return err
	}
	if created.PopulationId == "" {
		return fmt.Errorf("registry did not assign a populationId")
	}
	s.populationId = created.PopulationId
	s.report.Populations += 1
	return nil
}

func (p *Pipeline) featureset(ctx context.Context, s *state) error {
	created, err := p.dest.CreateFeatureSet(ctx, s.bundle.FeatureSet)
	if err != nil {
		return err
	}
	if created.FeaturesetId == "" {
		return fmt.Errorf("registry did not assign a featuresetId")
	}
	s.featuresetId = created.FeaturesetId
	s.report.FeatureSets += 1
	return nil
}

func (p *Pipeline) dataset(ctx context.Context, s *state) error {
	dataset := s.bundle.Dataset
	dataset.PopulationId = s.populationId
	dataset.FeaturesetId = s.featuresetId

	created, err := p.dest.CreateDataset(ctx, dataset)
	if err != nil {
		return err
	}
	if created.DatasetId == "" {
		return fmt.Errorf("registry did not assign a datasetId")
	}
	s.datasetId = created.DatasetId
	s.report.Datasets += 1
	return nil
}

func (p *Pipeline) features(ctx context.Context, s *state) error {
	for _, f := range s.bundle.Features {
		f.FeaturesetId = s.featuresetId
		if _, err := p.dest.CreateFeature(ctx, f); err != nil {
			return err
		}
		s.report.Features += 1
	}
	return nil
}

func (p *Pipeline) outcomes(ctx context.Context, s *state) error {
	for _, o := range s.bundle.Outcomes {
		f := o.Feature
		f.FeaturesetId = s.featuresetId
		created, err := p.dest.CreateFeature(ctx, f)
		if err != nil {
			return err
		}
		if created.FeatureId == "" {
			return fmt.Errorf("registry did not assign a featureId to outcome %s", f.Title)
		}
		s.report.Outcomes += 1

		for _, ch := range o.Characteristics {
			ch.DatasetId = s.datasetId
			ch.FeatureId = created.FeatureId
			if _, err := p.dest.CreateFeatureDatasetCharacteristic(ctx, ch); err != nil {
				return err
			}
			s.report.Characteristics += 1
		}
	}
	return nil
}

func (p *Pipeline) checkpoint(_ context.Context, s *state) error {
	if p.book == nil {
		return nil
	}
	return p.book.Record(s.entity.Issued.Time())
}
