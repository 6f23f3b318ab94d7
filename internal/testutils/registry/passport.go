package registry

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/passportware/featsync/pkg/api/types/passport"
)

// Passport is an in-memory passport registry lookalike. It grants
// tokens at the two login endpoints and records everything POSTed at
// the resource endpoints, assigning sequential identifiers.
type Passport struct {
	// Secret accepted at POST /user/connector/login.
	Secret string

	// Username/Password accepted at POST /user/login.
	Username string
	Password string

	// Subject claim of granted tokens.
	Subject string

	mu      sync.Mutex
	serial  int
	granted map[string]bool

	// Logins counts how often a token has been granted.
	Logins int

	// Created keeps every record registered, with its assigned
	// identifier, in arrival order.
	Created struct {
		Populations     []passport.Population
		FeatureSets     []passport.FeatureSet
		Datasets        []passport.Dataset
		Features        []passport.Feature
		Characteristics []passport.FeatureDatasetCharacteristic
	}
}

// ExpireTokens invalidates every token granted so far, so the next
// authenticated request is answered 401.
func (p *Passport) ExpireTokens() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.granted = map[string]bool{}
}

func (p *Passport) grant(t *testing.T) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Logins += 1
	p.serial += 1
	token, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.RegisteredClaims{Subject: p.Subject, ID: fmt.Sprintf("%d", p.serial)},
	).SignedString([]byte("test signing key"))
	if err != nil {
		t.Fatal(err)
	}

	if p.granted == nil {
		p.granted = map[string]bool{}
	}
	p.granted[token] = true
	return token
}

func (p *Passport) authorized(c echo.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	header := c.Request().Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	return ok && p.granted[token]
}

func (p *Passport) nextId(prefix string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.serial += 1
	return fmt.Sprintf("%s-%d", prefix, p.serial)
}

// Server starts the fake registry. It is closed when the test ends.
func (p *Passport) Server(t *testing.T) *httptest.Server {
	t.Helper()

	e := echo.New()
	e.Logger.SetLevel(log.OFF)

	e.POST("/user/connector/login", func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil || string(body) != p.Secret {
			return echo.NewHTTPError(http.StatusUnauthorized, "wrong secret")
		}
		return c.JSON(http.StatusOK, map[string]string{"access_token": p.grant(t)})
	})

	e.POST("/user/login", func(c echo.Context) error {
		creds := struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}{}
		if err := c.Bind(&creds); err != nil ||
			creds.Username != p.Username || creds.Password != p.Password {
			return echo.NewHTTPError(http.StatusUnauthorized, "wrong username or password")
		}
		return c.JSON(http.StatusOK, map[string]string{"access_token": p.grant(t)})
	})

	guard := func(handler echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !p.authorized(c) {
				return echo.NewHTTPError(http.StatusUnauthorized, "token rejected")
			}
			if c.QueryParam("studyId") == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "studyId is required")
			}
			return handler(c)
		}
	}

	e.POST("/population", guard(func(c echo.Context) error {
		record := passport.Population{}
		if err := c.Bind(&record); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		record.PopulationId = p.nextId("pop")
		p.mu.Lock()
		p.Created.Populations = append(p.Created.Populations, record)
		p.mu.Unlock()
		return c.JSON(http.StatusOK, record)
	}))

	e.POST("/featureset", guard(func(c echo.Context) error {
		record := passport.FeatureSet{}
		if err := c.Bind(&record); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		record.FeaturesetId = p.nextId("fs")
		p.mu.Lock()
		p.Created.FeatureSets = append(p.Created.FeatureSets, record)
		p.mu.Unlock()
		return c.JSON(http.StatusOK, record)
	}))

	e.POST("/dataset", guard(func(c echo.Context) error {
		record := passport.Dataset{}
		if err := c.Bind(&record); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		record.DatasetId = p.nextId("ds")
		p.mu.Lock()
		p.Created.Datasets = append(p.Created.Datasets, record)
		p.mu.Unlock()
		return c.JSON(http.StatusOK, record)
	}))

	e.POST("/feature", guard(func(c echo.Context) error {
		record := passport.Feature{}
		if err := c.Bind(&record); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		record.FeatureId = p.nextId("feat")
		p.mu.Lock()
		p.Created.Features = append(p.Created.Features, record)
		p.mu.Unlock()
		return c.JSON(http.StatusOK, record)
	}))

	e.POST("/feature-dataset-characteristic", guard(func(c echo.Context) error {
		record := passport.FeatureDatasetCharacteristic{}
		if err := c.Bind(&record); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		p.mu.Lock()
		p.Created.Characteristics = append(p.Created.Characteristics, record)
		p.mu.Unlock()
		return c.JSON(http.StatusOK, record)
	}))

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server
}
