package feast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/passportware/featsync/pkg/utils/cmp"
	"github.com/passportware/featsync/pkg/utils/maps"
	"github.com/passportware/featsync/pkg/utils/tuple"
)

// Kinds of statistic values, as reported in valueDataType fields of the
// destination registry.
const (
	KindInt   = "int"
	KindFloat = "float"
	KindStr   = "str"
	KindBool  = "bool"
)

// StatValue is one named statistic value. Statistics are heterogeneous,
// so StatValue is a variant over integer, float, string and boolean.
//
// The zero StatValue holds nothing. Its Kind and String are empty.
type StatValue struct {
	kind     string
	intval   int64
	floatval float64
	strval   string
	boolval  bool
}

func IntValue(v int64) StatValue {
	return StatValue{kind: KindInt, intval: v}
}

func FloatValue(v float64) StatValue {
	return StatValue{kind: KindFloat, floatval: v}
}

func StrValue(v string) StatValue {
	return StatValue{kind: KindStr, strval: v}
}

func BoolValue(v bool) StatValue {
	return StatValue{kind: KindBool, boolval: v}
}

// Kind is the name of the runtime kind of this value,
// one of KindInt, KindFloat, KindStr or KindBool.
func (v StatValue) Kind() string {
	return v.kind
}

// String is the textual representation of the held value.
func (v StatValue) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.intval, 10)
	case KindFloat:
		return strconv.FormatFloat(v.floatval, 'g', -1, 64)
	case KindStr:
		return v.strval
	case KindBool:
		return strconv.FormatBool(v.boolval)
	}
	return ""
}

func (v StatValue) Equal(o StatValue) bool {
	return v == o
}

func (v StatValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return json.Marshal(v.intval)
	case KindFloat:
		return json.Marshal(v.floatval)
	case KindStr:
		return json.Marshal(v.strval)
	case KindBool:
		return json.Marshal(v.boolval)
	}
	return []byte("null"), nil
}

// UnmarshalJSON reads a scalar JSON value into the narrowest kind it
// fits: numbers without a fraction become KindInt, other numbers
// KindFloat. Non-scalar values are rejected.
func (v *StatValue) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return fmt.Errorf("statistic value should not be null")
	}

	var i int64
	if err := json.Unmarshal(b, &i); err == nil {
		*v = IntValue(i)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*v = FloatValue(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = StrValue(s)
		return nil
	}

	var t bool
	if err := json.Unmarshal(b, &t); err == nil {
		*v = BoolValue(t)
		return nil
	}

	return fmt.Errorf("statistic value should be a number, a string or a boolean: %s", string(b))
}

// Stats is the per-variable statistics record: a numOfNotNull count plus
// an open-ended set of additionally named values.
//
// Additional keeps the order the statistics appear in within the source
// document.
type Stats struct {
	NumOfNotNull int64
	Additional   maps.Map[string, StatValue]
}

// NewStats builds a Stats record with additional statistics in the
// given order.
func NewStats(numOfNotNull int64, additional ...tuple.Pair[string, StatValue]) Stats {
	return Stats{
		NumOfNotNull: numOfNotNull,
		Additional:   maps.NewOrderedMap(additional...),
	}
}

// Entries lists the statistics of s as (name, value) pairs:
// numOfNotNull first, then the additional statistics in document order.
func (s Stats) Entries() []tuple.Pair[string, StatValue] {
	entries := []tuple.Pair[string, StatValue]{
		tuple.PairOf("numOfNotNull", IntValue(s.NumOfNotNull)),
	}
	if s.Additional != nil {
		for name, value := range s.Additional.Iter() {
			entries = append(entries, tuple.PairOf(name, value))
		}
	}
	return entries
}

// Equal reports whether s and o hold the same statistics.
// The order of additional statistics is not significant.
func (s Stats) Equal(o Stats) bool {
	if s.NumOfNotNull != o.NumOfNotNull {
		return false
	}

	sa := map[string]StatValue{}
	if s.Additional != nil {
		sa = s.Additional.ToMap()
	}
	oa := map[string]StatValue{}
	if o.Additional != nil {
		oa = o.Additional.ToMap()
	}
	return cmp.MapEqWith(sa, oa, StatValue.Equal)
}

func (s Stats) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBufferString(`{"numOfNotNull":`)
	buf.WriteString(strconv.FormatInt(s.NumOfNotNull, 10))
	if s.Additional != nil {
		for name, value := range s.Additional.Iter() {
			nb, err := json.Marshal(name)
			if err != nil {
				return nil, err
			}
			vb, err := json.Marshal(value)
			if err != nil {
				return nil, err
			}
			buf.WriteByte(',')
			buf.Write(nb)
			buf.WriteByte(':')
			buf.Write(vb)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Stats) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("statistics record should be an object: %s", string(b))
	}

	var numOfNotNull *int64
	additional := maps.NewOrderedMap[string, StatValue]()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("statistics record should have string keys: %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		if name == "numOfNotNull" {
			var n int64
			if err := json.Unmarshal(raw, &n); err != nil {
				return err
			}
			numOfNotNull = &n
			continue
		}

		var value StatValue
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		additional.Set(name, value)
	}

	if numOfNotNull == nil {
		return missingField("numOfNotNull")
	}
	s.NumOfNotNull = *numOfNotNull
	s.Additional = additional

	return nil
}

// DatasetStats is the statistics block of a whole dataset.
//
// FeatureStats and OutcomeStats map variable names to their statistics.
// Variables without an entry are to be tolerated by consumers. The
// entityStats, samplingStats and secondaryTimePointStats sub-blocks are
// carried opaquely.
type DatasetStats struct {
	NumOfEntries            int64            `json:"numOfEntries"`
	EntityStats             json.RawMessage  `json:"entityStats,omitempty"`
	SamplingStats           json.RawMessage  `json:"samplingStats,omitempty"`
	SecondaryTimePointStats json.RawMessage  `json:"secondaryTimePointStats,omitempty"`
	FeatureStats            map[string]Stats `json:"featureStats,omitempty"`
	OutcomeStats            map[string]Stats `json:"outcomeStats,omitempty"`
}

func (ds *DatasetStats) UnmarshalJSON(b []byte) error {
	f := new(struct {
		NumOfEntries            *int64           `json:"numOfEntries"`
		EntityStats             json.RawMessage  `json:"entityStats"`
		SamplingStats           json.RawMessage  `json:"samplingStats"`
		SecondaryTimePointStats json.RawMessage  `json:"secondaryTimePointStats"`
		FeatureStats            map[string]Stats `json:"featureStats"`
		OutcomeStats            map[string]Stats `json:"outcomeStats"`
	})
	if err := json.Unmarshal(b, f); err != nil {
		return err
	}

	if f.NumOfEntries == nil {
		return missingField("numOfEntries")
	}
	ds.NumOfEntries = *f.NumOfEntries

	ds.EntityStats = f.EntityStats
	ds.SamplingStats = f.SamplingStats
	ds.SecondaryTimePointStats = f.SecondaryTimePointStats
	ds.FeatureStats = f.FeatureStats
	ds.OutcomeStats = f.OutcomeStats

	return nil
}

func (ds DatasetStats) Equal(o DatasetStats) bool {
	return ds.NumOfEntries == o.NumOfEntries &&
		string(ds.EntityStats) == string(o.EntityStats) &&
		string(ds.SamplingStats) == string(o.SamplingStats) &&
		string(ds.SecondaryTimePointStats) == string(o.SecondaryTimePointStats) &&
		cmp.MapEqWith(ds.FeatureStats, o.FeatureStats, Stats.Equal) &&
		cmp.MapEqWith(ds.OutcomeStats, o.OutcomeStats, Stats.Equal)
}

// PopulationStats is the statistics block of the population. The
// sub-blocks are carried opaquely.
type PopulationStats struct {
	NumOfEntries             int64           `json:"numOfEntries"`
	EntityStats              json.RawMessage `json:"entityStats,omitempty"`
	EligibilityPeriodStats   json.RawMessage `json:"eligibilityPeriodStats,omitempty"`
	EligibilityCriteriaStats json.RawMessage `json:"eligibilityCriteriaStats,omitempty"`
}

func (ps PopulationStats) Equal(o PopulationStats) bool {
	return ps.NumOfEntries == o.NumOfEntries &&
		string(ps.EntityStats) == string(o.EntityStats) &&
		string(ps.EligibilityPeriodStats) == string(o.EligibilityPeriodStats) &&
		string(ps.EligibilityCriteriaStats) == string(o.EligibilityCriteriaStats)
}
