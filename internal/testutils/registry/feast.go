// Package registry serves in-memory lookalikes of the two registries
// this connector talks to, for tests exercising real HTTP round trips.
package registry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// Feast serves dataset description documents, unauthenticated, at
// GET /Dataset/:id.
type Feast struct {
	// Documents maps dataset identifiers to the JSON documents to be
	// served verbatim.
	Documents map[string]string
}

// Server starts the fake registry. It is closed when the test ends.
func (f *Feast) Server(t *testing.T) *httptest.Server {
	t.Helper()

	e := echo.New()
	e.Logger.SetLevel(log.OFF)
	e.GET("/Dataset/:id", func(c echo.Context) error {
		doc, ok := f.Documents[c.Param("id")]
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "no such dataset")
		}
		return c.Blob(http.StatusOK, "application/json", []byte(doc))
	})

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server
}
