// Package connector holds the configuration profile of one
// synchronization: where to read the dataset description from, where to
// write the provenance records to, and how to get authorized there.
package connector

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

var ErrProfileNotFound = errors.New("profile file is not found")
var ErrProfileInvalid = errors.New("connector profile is invalid")

// DefaultTimeout bounds each request against a registry when the
// profile does not set one.
const DefaultTimeout = 30 * time.Second

// FeastProfile points at the source feast registry.
type FeastProfile struct {
	// endpoint of the feast registry
	ApiRoot string `yaml:"apiRoot"`

	// identifier of the dataset description to be synchronized
	DatasetId string `yaml:"datasetId"`
}

func (p *FeastProfile) Verify() error {
	if !verifyUrl(p.ApiRoot) {
		return fmt.Errorf("%w: feast.apiRoot is not URL: %s", ErrProfileInvalid, p.ApiRoot)
	}
	if p.DatasetId == "" {
		return fmt.Errorf("%w: feast.datasetId is required", ErrProfileInvalid)
	}
	return nil
}

// PassportProfile points at the destination passport registry, and
// holds the credential and the study context which created records are
// filed under.
type PassportProfile struct {
	// endpoint of the passport registry
	ApiRoot string `yaml:"apiRoot"`

	StudyId        string `yaml:"studyId"`
	ExperimentId   string `yaml:"experimentId"`
	OrganizationId string `yaml:"organizationId"`

	// ConnectorSecret is a pre-shared secret granting a connector login.
	//
	// Exclusive with Username/Password.
	ConnectorSecret string `yaml:"connectorSecret,omitempty"`

	// Username/Password grant a user login.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

func (p *PassportProfile) Verify() error {
	if !verifyUrl(p.ApiRoot) {
		return fmt.Errorf("%w: passport.apiRoot is not URL: %s", ErrProfileInvalid, p.ApiRoot)
	}
	if p.StudyId == "" {
		return fmt.Errorf("%w: passport.studyId is required", ErrProfileInvalid)
	}
	if p.ExperimentId == "" {
		return fmt.Errorf("%w: passport.experimentId is required", ErrProfileInvalid)
	}
	if p.OrganizationId == "" {
		return fmt.Errorf("%w: passport.organizationId is required", ErrProfileInvalid)
	}

	if p.ConnectorSecret == "" && p.Username == "" && p.Password == "" {
		return fmt.Errorf(
			"%w: either passport.connectorSecret or passport.username is required",
			ErrProfileInvalid,
		)
	}
	if p.ConnectorSecret != "" && (p.Username != "" || p.Password != "") {
		return fmt.Errorf(
			"%w: passport.connectorSecret and passport.username are exclusive",
			ErrProfileInvalid,
		)
	}
	if p.ConnectorSecret == "" {
		if p.Username == "" {
			return fmt.Errorf("%w: passport.username is required with passport.password", ErrProfileInvalid)
		}
		if p.Password == "" {
			return fmt.Errorf("%w: passport.password is required with passport.username", ErrProfileInvalid)
		}
	}

	return nil
}

// Profile is the whole configuration of one synchronization.
type Profile struct {
	Feast    FeastProfile    `yaml:"feast"`
	Passport PassportProfile `yaml:"passport"`

	// Timeout bounds each request against either registry, given as a
	// Go duration string. Empty means DefaultTimeout.
	Timeout string `yaml:"timeout,omitempty"`

	// Checkpoint is the path of the file recording the issued timestamp
	// of the last synchronized dataset description. Empty disables the
	// bookkeeping.
	Checkpoint string `yaml:"checkpoint,omitempty"`
}

func verifyUrl(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

// Verify Profile
//
// # Return
//
// nil if it is valid. Otherwise, ErrProfileInvalid error.
func (p *Profile) Verify() error {
	if err := p.Feast.Verify(); err != nil {
		return err
	}
	if err := p.Passport.Verify(); err != nil {
		return err
	}
	if p.Timeout != "" {
		d, err := time.ParseDuration(p.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: timeout is not a positive duration: %s", ErrProfileInvalid, p.Timeout)
		}
	}
	return nil
}

// RequestTimeout is the per-request timeout to apply to registry
// clients built from this profile.
func (p *Profile) RequestTimeout() time.Duration {
	if p.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return DefaultTimeout
	}
	return d
}

// Default returns a Profile pointing at the documented default
// endpoints. Identifiers and credentials are left empty.
func Default() *Profile {
	return &Profile{
		Feast:    FeastProfile{ApiRoot: "http://localhost:8086"},
		Passport: PassportProfile{ApiRoot: "http://localhost:8080"},
	}
}

// LoadProfile reads a Profile from a YAML file. Keys not set in the
// file keep their Default values.
func LoadProfile(path string) (*Profile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrProfileNotFound, path)
		}
		return nil, err
	}
	return Unmarshall(buf)
}

// Unmarshall a Profile from yaml in byte array.
func Unmarshall(buf []byte) (*Profile, error) {
	ret := Default()
	if err := yaml.Unmarshal(buf, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// OverlayEnviron applies environment variables over p. Variables which
// getenv answers empty for keep the current values.
func (p *Profile) OverlayEnviron(getenv func(string) string) {
	overlay := map[string]*string{
		"FEAST_URL":           &p.Feast.ApiRoot,
		"DATASET_ID":          &p.Feast.DatasetId,
		"PASSPORT_SERVER_URL": &p.Passport.ApiRoot,
		"STUDY_ID":            &p.Passport.StudyId,
		"EXPERIMENT_ID":       &p.Passport.ExperimentId,
		"ORGANIZATION_ID":     &p.Passport.OrganizationId,
		"CONNECTOR_SECRET":    &p.Passport.ConnectorSecret,
		"PASSPORT_USERNAME":   &p.Passport.Username,
		"PASSPORT_PASSWORD":   &p.Passport.Password,
		"REQUEST_TIMEOUT":     &p.Timeout,
		"CHECKPOINT_PATH":     &p.Checkpoint,
	}
	for name, field := range overlay {
		if v := getenv(name); v != "" {
			*field = v
		}
	}
}
