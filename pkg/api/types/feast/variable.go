package feast

import (
	"encoding/json"

	"github.com/passportware/featsync/pkg/utils/cmp"
)

// Variable describes one named column of a dataset. It appears in three
// sequences of Entity: baseVariables, features and outcomes.
type Variable struct {
	Name                 string          `json:"name"`
	DataType             string          `json:"dataType"`
	Description          *string         `json:"description,omitempty"`
	GeneratedDescription []string        `json:"generatedDescription,omitempty"`
	ValueSet             *ValueSet       `json:"valueSet,omitempty"`
	Default              json.RawMessage `json:"default,omitempty"`
}

func (v *Variable) UnmarshalJSON(b []byte) error {
	f := new(struct {
		Name                 *string         `json:"name"`
		DataType             *string         `json:"dataType"`
		Description          *string         `json:"description"`
		GeneratedDescription []string        `json:"generatedDescription"`
		ValueSet             *ValueSet       `json:"valueSet"`
		Default              json.RawMessage `json:"default"`
	})
	if err := json.Unmarshal(b, f); err != nil {
		return err
	}

	if f.Name == nil {
		return missingField("name")
	}
	v.Name = *f.Name

	if f.DataType == nil {
		return missingField("dataType")
	}
	v.DataType = *f.DataType

	v.Description = f.Description
	v.GeneratedDescription = f.GeneratedDescription
	v.ValueSet = f.ValueSet
	v.Default = f.Default

	return nil
}

func (v Variable) Equal(o Variable) bool {
	return v.Name == o.Name &&
		v.DataType == o.DataType &&
		cmp.PEqEq(v.Description, o.Description) &&
		cmp.SliceEq(v.GeneratedDescription, o.GeneratedDescription) &&
		cmp.PEqualWith(v.ValueSet, o.ValueSet, ValueSet.Equal) &&
		string(v.Default) == string(o.Default)
}

// ValueSet enumerates the values a coded variable can take.
type ValueSet struct {
	Url     *string   `json:"url,omitempty"`
	Concept []Concept `json:"concept,omitempty"`
}

func (vs ValueSet) Equal(o ValueSet) bool {
	return cmp.PEqEq(vs.Url, o.Url) &&
		cmp.SliceEqWith(vs.Concept, o.Concept, Concept.Equal)
}

// Concept is one coded value of a ValueSet.
type Concept struct {
	Code    string  `json:"code"`
	Display *string `json:"display,omitempty"`
}

func (c Concept) Equal(o Concept) bool {
	return c.Code == o.Code && cmp.PEqEq(c.Display, o.Display)
}
