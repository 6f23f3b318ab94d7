// Package transform derives passport records from a feast dataset
// description. It performs no I/O: given the same description and the
// same Context, it produces the same records.
//
// Identifiers minted by the passport registry (populationId,
// featuresetId, datasetId, featureId) are not known at this point, so
// the derived records leave them blank. They are resolved at
// submission time.
package transform

import (
	"github.com/passportware/featsync/pkg/api/types/feast"
	"github.com/passportware/featsync/pkg/api/types/passport"
	"github.com/passportware/featsync/pkg/utils/pointer"
	"github.com/passportware/featsync/pkg/utils/slices"
)

// Unknown fills destination fields which have no equivalent in the
// feast schema: units, equipment and dataCollection of features.
const Unknown = "Unknown"

// Context supplies the identifiers which created records are filed
// under. None of them are present in the source payload.
type Context struct {
	// StudyId of the study the records belong to.
	StudyId string

	// ExperimentId the feature set belongs to.
	ExperimentId string

	// OrganizationId owning the dataset.
	OrganizationId string

	// UserId is the acting user, written into audit fields.
	// It is the subject claim of the granted token.
	UserId string
}

// Outcome is a derived outcome feature together with the
// characteristic records flattened out of its statistics.
type Outcome struct {
	Feature passport.Feature

	// Characteristics derived from the outcome's entry in
	// outcomeStats: numOfNotNull first, then the additional statistics
	// in document order. Empty when the entry is absent.
	//
	// DatasetId and FeatureId are blank until submission.
	Characteristics []passport.FeatureDatasetCharacteristic
}

// Bundle is everything to be registered at the passport registry for
// one dataset description.
type Bundle struct {
	Population passport.Population
	FeatureSet passport.FeatureSet

	// Dataset is a template: FeaturesetId and PopulationId are blank
	// until their records are created.
	Dataset passport.Dataset

	// Features derived from the features sequence. FeaturesetId blank.
	Features []passport.Feature

	// Outcomes derived from the outcomes sequence.
	Outcomes []Outcome
}

// Transform maps a dataset description into the records to be
// registered.
func Transform(entity feast.Entity, c Context) Bundle {
	return Bundle{
		Population: passport.Population{
			StudyId:       c.StudyId,
			PopulationUrl: entity.Population.Url,

			// the passport schema wants characteristics separately,
			// but the feast schema has only one description. Both
			// fields carry it.
			Description:     pointer.SafeDeref(entity.Population.Description),
			Characteristics: pointer.SafeDeref(entity.Population.Description),
		},
		FeatureSet: passport.FeatureSet{
			ExperimentId:  c.ExperimentId,
			Title:         entity.FeatureSet.Title,
			FeaturesetUrl: entity.FeatureSet.Url,
			Description:   pointer.SafeDeref(entity.FeatureSet.Description),
			CreatedBy:     c.UserId,
			LastUpdatedBy: c.UserId,
		},
		Dataset: passport.Dataset{
			OrganizationId: c.OrganizationId,

			// no separate description exists upstream. Title and
			// Description both carry the data source name.
			Title:       entity.DataSource.Name,
			Description: entity.DataSource.Name,

			Version:         entity.DataSource.Version,
			ReferenceEntity: entity.Population.Title,
			NumOfRecords:    entity.DatasetStats.NumOfEntries,
			Synthetic:       false,
			CreatedBy:       c.UserId,
			LastUpdatedBy:   c.UserId,
		},
		Features: slices.Map(entity.Features, func(v feast.Variable) passport.Feature {
			return feature(v, false, entity.DatasetStats, c)
		}),
		Outcomes: slices.Map(entity.Outcomes, func(v feast.Variable) Outcome {
			return Outcome{
				Feature:         feature(v, true, entity.DatasetStats, c),
				Characteristics: characteristics(v.Name, entity.DatasetStats),
			}
		}),
	}
}

func feature(v feast.Variable, isOutcome bool, stats feast.DatasetStats, c Context) passport.Feature {
	return passport.Feature{
		Title:          v.Name,
		Description:    pointer.SafeDeref(v.Description),
		DataType:       v.DataType,
		IsOutcome:      isOutcome,
		Mandatory:      mandatory(v.Name, stats),
		IsUnique:       false,
		Units:          Unknown,
		Equipment:      Unknown,
		DataCollection: Unknown,
		CreatedBy:      c.UserId,
		LastUpdatedBy:  c.UserId,
	}
}

// mandatory reports whether the named variable has no missing values
// across the whole dataset: its featureStats entry exists and counts
// as many non-null values as the dataset has entries.
//
// Variables without an entry are not mandatory. This holds for
// outcomes too, which are looked up in featureStats as well.
func mandatory(name string, stats feast.DatasetStats) bool {
	entry, ok := stats.FeatureStats[name]
	return ok && entry.NumOfNotNull == stats.NumOfEntries
}

// characteristics flattens the named outcome's statistics into
// (name, value, kind) records. An outcome without an outcomeStats
// entry yields none.
func characteristics(name string, stats feast.DatasetStats) []passport.FeatureDatasetCharacteristic {
	entry, ok := stats.OutcomeStats[name]
	if !ok {
		return nil
	}

	ret := []passport.FeatureDatasetCharacteristic{}
	for _, e := range entry.Entries() {
		statName, value := e.Decompose()
		ret = append(ret, passport.FeatureDatasetCharacteristic{
			CharacteristicName: statName,
			Value:              value.String(),
			ValueDataType:      value.Kind(),
		})
	}
	return ret
}
