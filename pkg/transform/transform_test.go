package transform_test

import (
	"testing"

	"github.com/passportware/featsync/pkg/api/types/feast"
	"github.com/passportware/featsync/pkg/api/types/passport"
	"github.com/passportware/featsync/pkg/transform"
	"github.com/passportware/featsync/pkg/utils/cmp"
	"github.com/passportware/featsync/pkg/utils/pointer"
	"github.com/passportware/featsync/pkg/utils/rfctime"
	"github.com/passportware/featsync/pkg/utils/slices"
	"github.com/passportware/featsync/pkg/utils/try"
	"github.com/passportware/featsync/pkg/utils/tuple"
)

func testContext() transform.Context {
	return transform.Context{
		StudyId:        "study-1",
		ExperimentId:   "exp-1",
		OrganizationId: "org-1",
		UserId:         "user-1",
	}
}

func testEntity(t *testing.T) feast.Entity {
	return feast.Entity{
		Id:     "ds-0001",
		Issued: try.To(rfctime.ParseRFC3339DateTime("2024-05-01T10:00:00.000+00:00")).OrFatal(t),
		Temporal: feast.Temporal{
			End: try.To(rfctime.ParseRFC3339DateTime("2023-12-31T00:00:00.000+00:00")).OrFatal(t),
		},
		Population: feast.Population{
			Url:         "https://registry.example/population/diabetes",
			Title:       "Diabetes cohort",
			Description: pointer.Ref("Adults with type 2 diabetes"),
		},
		FeatureSet: feast.FeatureSet{
			Url:         "https://registry.example/feature-set/diabetes-core",
			Title:       "Diabetes core variables",
			Description: pointer.Ref("Clinical baseline variables"),
		},
		DataSource: feast.DataSource{
			Name: "uhn-ehr", Version: "1.2.0",
		},
		BaseVariables: []feast.Variable{
			{Name: "pid", DataType: "string"},
		},
		Features: []feast.Variable{
			{Name: "age", DataType: "integer", Description: pointer.Ref("age at inclusion")},
			{Name: "bp", DataType: "number"},
		},
		Outcomes: []feast.Variable{
			{Name: "hba1c", DataType: "number", Description: pointer.Ref("glycated haemoglobin")},
		},
		PopulationStats: feast.PopulationStats{NumOfEntries: 180},
		DatasetStats: feast.DatasetStats{
			NumOfEntries: 100,
			FeatureStats: map[string]feast.Stats{
				"age":   feast.NewStats(100),
				"bp":    feast.NewStats(80, tuple.PairOf("mean", feast.FloatValue(121.5))),
				"hba1c": feast.NewStats(90),
			},
			OutcomeStats: map[string]feast.Stats{
				"hba1c": feast.NewStats(
					90,
					tuple.PairOf("mean", feast.FloatValue(7.2)),
					tuple.PairOf("stddev", feast.FloatValue(1.1)),
				),
			},
		},
	}
}

func TestTransform(t *testing.T) {

	t.Run("population, feature set and dataset are mapped field by field", func(t *testing.T) {
		bundle := transform.Transform(testEntity(t), testContext())

		{
			expected := passport.Population{
				StudyId:       "study-1",
				PopulationUrl: "https://registry.example/population/diabetes",

				Description:     "Adults with type 2 diabetes",
				Characteristics: "Adults with type 2 diabetes",
			}
			if !bundle.Population.Equal(expected) {
				t.Errorf("population unmatch:\n- actual   = %+v\n- expected = %+v", bundle.Population, expected)
			}
		}

		{
			expected := passport.FeatureSet{
				ExperimentId:  "exp-1",
				Title:         "Diabetes core variables",
				FeaturesetUrl: "https://registry.example/feature-set/diabetes-core",
				Description:   "Clinical baseline variables",
				CreatedBy:     "user-1",
				LastUpdatedBy: "user-1",
			}
			if !bundle.FeatureSet.Equal(expected) {
				t.Errorf("feature set unmatch:\n- actual   = %+v\n- expected = %+v", bundle.FeatureSet, expected)
			}
		}

		{
			expected := passport.Dataset{
				OrganizationId:  "org-1",
				Title:           "uhn-ehr",
				Description:     "uhn-ehr",
				Version:         "1.2.0",
				ReferenceEntity: "Diabetes cohort",
				NumOfRecords:    100,
				Synthetic:       false,
				CreatedBy:       "user-1",
				LastUpdatedBy:   "user-1",
			}
			if !bundle.Dataset.Equal(expected) {
				t.Errorf("dataset unmatch:\n- actual   = %+v\n- expected = %+v", bundle.Dataset, expected)
			}
		}
	})

	t.Run("a feature counting no missing values is mandatory, others are not", func(t *testing.T) {
		// age: numOfNotNull 100 == numOfEntries 100. bp: 80 != 100.
		bundle := transform.Transform(testEntity(t), testContext())

		expected := []passport.Feature{
			{
				Title: "age", Description: "age at inclusion", DataType: "integer",
				IsOutcome: false, Mandatory: true, IsUnique: false,
				Units: transform.Unknown, Equipment: transform.Unknown, DataCollection: transform.Unknown,
				CreatedBy: "user-1", LastUpdatedBy: "user-1",
			},
			{
				Title: "bp", DataType: "number",
				IsOutcome: false, Mandatory: false, IsUnique: false,
				Units: transform.Unknown, Equipment: transform.Unknown, DataCollection: transform.Unknown,
				CreatedBy: "user-1", LastUpdatedBy: "user-1",
			},
		}
		if !cmp.SliceEqWith(bundle.Features, expected, passport.Feature.Equal) {
			t.Errorf("features unmatch:\n- actual   = %+v\n- expected = %+v", bundle.Features, expected)
		}
	})

	t.Run("a feature without a stats entry is not mandatory", func(t *testing.T) {
		entity := testEntity(t)
		entity.Features = append(entity.Features, feast.Variable{Name: "weight", DataType: "number"})

		bundle := transform.Transform(entity, testContext())

		weight, ok := slices.First(bundle.Features, func(f passport.Feature) bool {
			return f.Title == "weight"
		})
		if !ok {
			t.Fatal("feature weight is not derived")
		}
		if weight.Mandatory {
			t.Error("feature without a stats entry should not be mandatory")
		}
	})

	t.Run("outcome mandatory derivation reads featureStats, same as features", func(t *testing.T) {
		entity := testEntity(t)
		// hba1c in featureStats: 90 != 100
		bundle := transform.Transform(entity, testContext())

		if len(bundle.Outcomes) != 1 {
			t.Fatalf("unexpected outcomes: %+v", bundle.Outcomes)
		}
		outcome := bundle.Outcomes[0].Feature
		if !outcome.IsOutcome {
			t.Error("outcome should have IsOutcome = true")
		}
		if outcome.Mandatory {
			t.Error("hba1c counts missing values and should not be mandatory")
		}

		// with full coverage it becomes mandatory
		entity.DatasetStats.FeatureStats["hba1c"] = feast.NewStats(100)
		bundle = transform.Transform(entity, testContext())
		if !bundle.Outcomes[0].Feature.Mandatory {
			t.Error("hba1c counts no missing values and should be mandatory")
		}
	})

	t.Run("outcome statistics are flattened into characteristics, numOfNotNull first", func(t *testing.T) {
		bundle := transform.Transform(testEntity(t), testContext())

		expected := []passport.FeatureDatasetCharacteristic{
			{CharacteristicName: "numOfNotNull", Value: "90", ValueDataType: "int"},
			{CharacteristicName: "mean", Value: "7.2", ValueDataType: "float"},
			{CharacteristicName: "stddev", Value: "1.1", ValueDataType: "float"},
		}
		actual := bundle.Outcomes[0].Characteristics
		if !cmp.SliceEqWith(actual, expected, passport.FeatureDatasetCharacteristic.Equal) {
			t.Errorf("characteristics unmatch:\n- actual   = %+v\n- expected = %+v", actual, expected)
		}
	})

	t.Run("characteristics carry the runtime kind of each statistic", func(t *testing.T) {
		entity := testEntity(t)
		entity.DatasetStats.OutcomeStats["hba1c"] = feast.NewStats(
			90,
			tuple.PairOf("median", feast.IntValue(7)),
			tuple.PairOf("unit", feast.StrValue("%")),
			tuple.PairOf("normal", feast.BoolValue(false)),
		)

		bundle := transform.Transform(entity, testContext())

		expected := []passport.FeatureDatasetCharacteristic{
			{CharacteristicName: "numOfNotNull", Value: "90", ValueDataType: "int"},
			{CharacteristicName: "median", Value: "7", ValueDataType: "int"},
			{CharacteristicName: "unit", Value: "%", ValueDataType: "str"},
			{CharacteristicName: "normal", Value: "false", ValueDataType: "bool"},
		}
		actual := bundle.Outcomes[0].Characteristics
		if !cmp.SliceEqWith(actual, expected, passport.FeatureDatasetCharacteristic.Equal) {
			t.Errorf("characteristics unmatch:\n- actual   = %+v\n- expected = %+v", actual, expected)
		}
	})

	t.Run("an outcome without an outcomeStats entry yields no characteristics", func(t *testing.T) {
		entity := testEntity(t)
		entity.Outcomes = append(entity.Outcomes, feast.Variable{Name: "relapse", DataType: "boolean"})

		bundle := transform.Transform(entity, testContext())

		relapse, ok := slices.First(bundle.Outcomes, func(o transform.Outcome) bool {
			return o.Feature.Title == "relapse"
		})
		if !ok {
			t.Fatal("outcome relapse is not derived")
		}
		if len(relapse.Characteristics) != 0 {
			t.Errorf("outcome without stats should yield no characteristics: %+v", relapse.Characteristics)
		}
	})

	t.Run("plain features yield no characteristics, even with outcomeStats entries", func(t *testing.T) {
		entity := testEntity(t)
		// an entry under the feature's name in outcomeStats is not read
		entity.DatasetStats.OutcomeStats["bp"] = feast.NewStats(80)

		bundle := transform.Transform(entity, testContext())

		// characteristics exist on outcomes only; the bundle has no
		// characteristic slot for plain features at all. Check that
		// only hba1c's statistics got expanded.
		total := 0
		for _, o := range bundle.Outcomes {
			total += len(o.Characteristics)
		}
		if total != 3 {
			t.Errorf("only the hba1c statistics should be expanded: got %d characteristics", total)
		}
	})

	t.Run("base variables are not turned into features", func(t *testing.T) {
		bundle := transform.Transform(testEntity(t), testContext())

		for _, f := range bundle.Features {
			if f.Title == "pid" {
				t.Error("base variable pid should not become a feature")
			}
		}
	})

	t.Run("transforming twice produces structurally identical bundles", func(t *testing.T) {
		first := transform.Transform(testEntity(t), testContext())
		second := transform.Transform(testEntity(t), testContext())

		if !first.Population.Equal(second.Population) ||
			!first.FeatureSet.Equal(second.FeatureSet) ||
			!first.Dataset.Equal(second.Dataset) ||
			!cmp.SliceEqWith(first.Features, second.Features, passport.Feature.Equal) {
			t.Error("two transforms of the same description should be identical")
		}
		if len(first.Outcomes) != len(second.Outcomes) {
			t.Fatal("two transforms of the same description should be identical")
		}
		for i := range first.Outcomes {
			if !first.Outcomes[i].Feature.Equal(second.Outcomes[i].Feature) ||
				!cmp.SliceEqWith(
					first.Outcomes[i].Characteristics,
					second.Outcomes[i].Characteristics,
					passport.FeatureDatasetCharacteristic.Equal,
				) {
				t.Error("two transforms of the same description should be identical")
			}
		}
	})
}
