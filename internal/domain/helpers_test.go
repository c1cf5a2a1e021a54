package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"pagecheck.dev/pkg/pagecheck/internal/adapter"
	"pagecheck.dev/pkg/pagecheck/internal/controller"
	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

// routes maps a request URI below /api to its handler.
type routes map[string]http.HandlerFunc

func newCatalogServer(t *testing.T, r routes) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		handler, ok := r[req.URL.RequestURI()]
		if !ok {
			http.NotFound(w, req)
			return
		}

		handler(w, req)
	}))
	t.Cleanup(server.Close)

	return server
}

func jsonHandler(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}

func slowHandler(delay time.Duration, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		select {
		case <-req.Context().Done():
			return
		case <-time.After(delay):
		}

		jsonHandler(v)(w, req)
	}
}

func products(n int, categoryID any, label string) []map[string]any {
	out := make([]map[string]any, 0, n)

	for i := 1; i <= n; i++ {
		out = append(out, map[string]any{
			"id":          i,
			"name":        fmt.Sprintf("%s %d", label, i),
			"company_id":  1,
			"list_price":  99.5,
			"currency":    "EUR",
			"category_id": categoryID,
			"description": "Product description",
			"brand":       "Sunbright",
		})
	}

	return out
}

// healthyCatalog answers every request of the suite for a single search term "solar".
func healthyCatalog() routes {
	return routes{
		"/api/products?skip_pagination=true":                   jsonHandler(products(25, "cat-1", "Solar Panel")),
		"/api/products?page=1&limit=50":                        jsonHandler(products(10, "cat-1", "Solar Panel")),
		"/api/products?search=solar&skip_pagination=true":      jsonHandler(products(5, "cat-1", "Solar Panel")),
		"/api/products?search=solar&limit=20":                  jsonHandler(products(3, "cat-1", "Solar Panel")),
		"/api/categories":                                      jsonHandler([]map[string]any{{"id": "cat-1", "name": "Panels"}}),
		"/api/products?category_id=cat-1&skip_pagination=true": jsonHandler(products(4, "cat-1", "Panel")),
		"/api/products?category_id=cat-1&limit=10":             jsonHandler(products(2, "cat-1", "Panel")),
		"/api/products?skip_pagination=true&limit=5":           jsonHandler(products(25, "cat-1", "Solar Panel")),
	}
}

func newTestUI() (controller.UI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	return controller.NewSimpleUI(cmd), out
}

func runSuite(t *testing.T, r routes, opts SuiteOptions, timeout time.Duration) (*Runner, *bytes.Buffer, error) {
	t.Helper()

	server := newCatalogServer(t, r)
	ui, out := newTestUI()

	runner := NewRunner(server.URL+"/api/", timeout, adapter.NewLocalHTTPAdapterWithClient(server.Client()), ui)
	err := NewSkipPaginationSuite(runner, opts).Run(context.Background())

	return runner, out, err
}

func resultNamed(t *testing.T, results []m.TestResult, name string) m.TestResult {
	t.Helper()

	for _, result := range results {
		if result.Name == name {
			return result
		}
	}

	t.Fatalf("no result named %q in %v", name, results)

	return m.TestResult{}
}

func hasResult(results []m.TestResult, name string) bool {
	for _, result := range results {
		if result.Name == name {
			return true
		}
	}

	return false
}

var soloSearch = SuiteOptions{SearchTerms: []string{"solar"}}
