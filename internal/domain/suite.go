package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

// SuiteName identifies the skip pagination suite in reports.
const SuiteName = "skip-pagination"

// DefaultSlowThreshold is the longest acceptable unpaginated listing.
const DefaultSlowThreshold = 10 * time.Second

// DefaultSearchTerms are searched with and without pagination.
var DefaultSearchTerms = []string{"solar", "panel", "battery"}

const (
	pathAllProducts     = "/products?skip_pagination=true"
	pathPaginated       = "/products?page=1&limit=50"
	pathCategories      = "/categories"
	pathLimitIgnored    = "/products?skip_pagination=true&limit=5"
	ignoredLimit        = 5
	searchCompareLimit  = 20
	categoryCompareSize = 10
)

// ErrInterrupted is returned when the run context is cancelled between or during steps.
var ErrInterrupted = errors.New("tests interrupted by user")

// SuiteOptions tunes the scripted scenario.
type SuiteOptions struct {
	SearchTerms   []string
	SlowThreshold time.Duration
}

func (o SuiteOptions) withDefaults() SuiteOptions {
	if len(o.SearchTerms) == 0 {
		o.SearchTerms = DefaultSearchTerms
	}

	if o.SlowThreshold <= 0 {
		o.SlowThreshold = DefaultSlowThreshold
	}

	return o
}

// Step is one scripted section of the suite.
type Step struct {
	m.StepInfo
	run func(ctx context.Context)
}

// SkipPaginationSuite is the fixed scenario verifying the skip_pagination parameter.
// Later steps compare against counts gathered by earlier ones.
type SkipPaginationSuite struct {
	runner *Runner
	opts   SuiteOptions

	allProductsCount int
}

// NewSkipPaginationSuite binds the scenario to a runner. runner may be nil when only Steps is used.
func NewSkipPaginationSuite(runner *Runner, opts SuiteOptions) *SkipPaginationSuite {
	return &SkipPaginationSuite{runner: runner, opts: opts.withDefaults()}
}

// Steps lists the scenario in execution order.
func (s *SkipPaginationSuite) Steps() []Step {
	searchRequests := make([]string, 0, 2*len(s.opts.SearchTerms))
	for _, term := range s.opts.SearchTerms {
		searchRequests = append(searchRequests, searchPath(term), searchPaginatedPath(term))
	}

	return []Step{
		{
			StepInfo: m.StepInfo{Title: "GET /products with skip_pagination=true", Requests: []string{pathAllProducts}},
			run:      s.checkAllProducts,
		},
		{
			StepInfo: m.StepInfo{Title: "Comparison with Paginated Results", Requests: []string{pathPaginated}},
			run:      s.checkPaginatedComparison,
		},
		{
			StepInfo: m.StepInfo{Title: "GET /products with search and skip_pagination=true", Requests: searchRequests},
			run:      s.checkSearch,
		},
		{
			StepInfo: m.StepInfo{
				Title:    "GET /products with category_id and skip_pagination=true",
				Requests: []string{pathCategories, categoryPath("{id}"), categoryPaginatedPath("{id}")},
			},
			run: s.checkCategory,
		},
		{
			StepInfo: m.StepInfo{Title: "Response Format Verification", Requests: []string{pathLimitIgnored}},
			run:      s.checkLimitIgnored,
		},
		{
			StepInfo: m.StepInfo{Title: "Skip Pagination Performance", Requests: []string{pathAllProducts}},
			run:      s.checkPerformance,
		},
	}
}

// StepInfos returns the descriptions of Steps.
func (s *SkipPaginationSuite) StepInfos() []m.StepInfo {
	steps := s.Steps()

	infos := make([]m.StepInfo, 0, len(steps))
	for _, step := range steps {
		infos = append(infos, step.StepInfo)
	}

	return infos
}

// Run executes every step in order. Failed checks never stop the suite;
// only a cancelled context does.
func (s *SkipPaginationSuite) Run(ctx context.Context) error {
	for _, step := range s.Steps() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrInterrupted, err)
		}

		s.runner.ui.DisplaySection(ctx, step.Title)
		step.run(ctx)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	return nil
}

func (s *SkipPaginationSuite) get(ctx context.Context, name, path string) (bool, *m.Response) {
	return s.runner.Execute(ctx, name, http.MethodGet, path, http.StatusOK, nil)
}

func (s *SkipPaginationSuite) record(ctx context.Context, name string, passed bool, format string, args ...any) bool {
	return s.runner.Record(ctx, name, passed, fmt.Sprintf(format, args...))
}

// records decodes a list body, recording a format or parsing failure when it cannot.
func (s *SkipPaginationSuite) records(ctx context.Context, resp *m.Response, formatCheck, parsingCheck string) ([]m.Record, bool) {
	products, err := resp.Records()

	switch {
	case errors.Is(err, m.ErrNotList):
		s.record(ctx, formatCheck, false, "%s", describeDecodeError(err))
		return nil, false
	case err != nil:
		s.record(ctx, parsingCheck, false, "Error: %v", err)
		return nil, false
	}

	return products, true
}

func (s *SkipPaginationSuite) checkAllProducts(ctx context.Context) {
	ok, resp := s.get(ctx, "Get All Products with skip_pagination=true", pathAllProducts)
	if !ok || resp == nil {
		return
	}

	products, ok := s.records(ctx, resp, "Skip Pagination Response Format", "Skip Pagination Response Parsing")
	if !ok {
		return
	}

	s.allProductsCount = len(products)
	s.record(ctx, "Skip Pagination Response Format", true, "Returned %d products as list", len(products))

	if len(products) == 0 {
		s.record(ctx, "Skip Pagination Returns Products", false, "No products returned")
		return
	}

	s.record(ctx, "Skip Pagination Returns Products", true, "Got %d products", len(products))

	if missing := products[0].Missing(requiredProductFields...); len(missing) > 0 {
		s.record(ctx, "Skip Pagination Product Structure", false, "Missing fields: %v", missing)
		return
	}

	s.record(ctx, "Skip Pagination Product Structure", true, "All required fields present in products")
}

func (s *SkipPaginationSuite) checkPaginatedComparison(ctx context.Context) {
	ok, resp := s.get(ctx, "Get Products with Default Pagination (page=1, limit=50)", pathPaginated)
	if !ok || resp == nil {
		return
	}

	products, ok := s.records(ctx, resp, "Paginated Response Format", "Paginated Response Parsing")
	if !ok {
		return
	}

	paginated := len(products)
	if paginated <= maxPaginatedLimit {
		s.record(ctx, "Default Pagination Working", true, "Paginated request returned %d products (≤%d)", paginated, maxPaginatedLimit)
	} else {
		s.record(ctx, "Default Pagination Working", false, "Paginated request returned %d products (>%d)", paginated, maxPaginatedLimit)
	}

	s.compareCounts(ctx, "Skip Pagination vs Pagination Comparison", s.allProductsCount, paginated)
}

func (s *SkipPaginationSuite) compareCounts(ctx context.Context, name string, unpaginated, paginated int) {
	if unpaginated >= paginated {
		s.record(ctx, name, true, "skip_pagination (%d) >= paginated (%d)", unpaginated, paginated)
		return
	}

	s.record(ctx, name, false, "skip_pagination (%d) < paginated (%d)", unpaginated, paginated)
}

func (s *SkipPaginationSuite) checkSearch(ctx context.Context) {
	for _, term := range s.opts.SearchTerms {
		if ctx.Err() != nil {
			return
		}

		s.checkSearchTerm(ctx, term)
	}
}

func (s *SkipPaginationSuite) checkSearchTerm(ctx context.Context, term string) {
	ok, resp := s.get(ctx, fmt.Sprintf("Search '%s' with skip_pagination=true", term), searchPath(term))
	if !ok || resp == nil {
		return
	}

	products, ok := s.records(ctx, resp,
		fmt.Sprintf("Search '%s' Response Format", term),
		fmt.Sprintf("Search '%s' Response Parsing", term))
	if !ok {
		return
	}

	s.record(ctx, fmt.Sprintf("Search '%s' with Skip Pagination", term), true, "Found %d matching products", len(products))

	if len(products) > 0 {
		relevance := relevancePercent(products, term)
		if relevance >= relevanceThreshold {
			s.record(ctx, fmt.Sprintf("Search '%s' Relevance", term), true, "%.1f%% relevance in sample", relevance)
		} else {
			s.record(ctx, fmt.Sprintf("Search '%s' Relevance", term), false, "Only %.1f%% relevance in sample", relevance)
		}
	}

	ok, resp = s.get(ctx, fmt.Sprintf("Search '%s' with pagination (limit=%d)", term, searchCompareLimit), searchPaginatedPath(term))
	if !ok || resp == nil {
		return
	}

	paginated, ok := s.records(ctx, resp,
		fmt.Sprintf("Search '%s' Paginated Format", term),
		fmt.Sprintf("Search '%s' Paginated Parsing", term))
	if !ok {
		return
	}

	s.compareCounts(ctx, fmt.Sprintf("Search '%s' Skip vs Paginated", term), len(products), len(paginated))
}

func (s *SkipPaginationSuite) checkCategory(ctx context.Context) {
	ok, resp := s.get(ctx, "Get Categories for Testing", pathCategories)
	if !ok || resp == nil {
		return
	}

	categories, err := resp.Records()
	if err != nil && !errors.Is(err, m.ErrNotList) {
		s.record(ctx, "Categories Retrieval", false, "Error getting categories: %v", err)
		return
	}

	if len(categories) == 0 {
		s.record(ctx, "Categories Available for Testing", false, "No categories found or invalid format")
		return
	}

	category := categories[0]
	categoryName := category.Text("name", "Unknown")
	categoryID := category.Get("id")

	if !m.Truthy(categoryID) {
		s.record(ctx, fmt.Sprintf("Category '%s' Identifier", categoryName), false, "First category has no usable id")
		return
	}

	id := fmt.Sprint(categoryID)

	ok, resp = s.get(ctx, fmt.Sprintf("Category '%s' with skip_pagination=true", categoryName), categoryPath(id))
	if !ok || resp == nil {
		return
	}

	products, ok := s.records(ctx, resp,
		fmt.Sprintf("Category '%s' Response Format", categoryName),
		fmt.Sprintf("Category '%s' Response Parsing", categoryName))
	if !ok {
		return
	}

	s.record(ctx, fmt.Sprintf("Category '%s' Skip Pagination", categoryName), true, "Found %d products in category", len(products))

	if len(products) > 0 {
		matched, sampled := categoryMatches(products, categoryID)
		if matched == sampled {
			s.record(ctx, fmt.Sprintf("Category '%s' Filter Accuracy", categoryName), true, "All sampled products belong to correct category")
		} else {
			s.record(ctx, fmt.Sprintf("Category '%s' Filter Accuracy", categoryName), false, "Only %d/%d products in correct category", matched, sampled)
		}
	}

	ok, resp = s.get(ctx, fmt.Sprintf("Category '%s' with pagination (limit=%d)", categoryName, categoryCompareSize), categoryPaginatedPath(id))
	if !ok || resp == nil {
		return
	}

	paginated, ok := s.records(ctx, resp,
		fmt.Sprintf("Category '%s' Paginated Format", categoryName),
		fmt.Sprintf("Category '%s' Paginated Parsing", categoryName))
	if !ok {
		return
	}

	s.compareCounts(ctx, fmt.Sprintf("Category '%s' Skip vs Paginated", categoryName), len(products), len(paginated))
}

func (s *SkipPaginationSuite) checkLimitIgnored(ctx context.Context) {
	ok, resp := s.get(ctx, "Skip Pagination Response Format Verification", pathLimitIgnored)
	if !ok || resp == nil {
		return
	}

	products, ok := s.records(ctx, resp, "Skip Pagination Response Format", "Skip Pagination Format Verification")
	if !ok {
		return
	}

	const name = "Skip Pagination Ignores Limit Parameter"

	switch count := len(products); {
	case count > ignoredLimit:
		s.record(ctx, name, true, "Returned %d products (limit=%d ignored)", count, ignoredLimit)
	case !limitIgnored(count, ignoredLimit):
		s.record(ctx, name, false, "Returned exactly %d products (limit may not be ignored)", count)
	default:
		s.record(ctx, name, true, "Returned %d products (less than %d available)", count, ignoredLimit)
	}

	if len(products) == 0 {
		return
	}

	present := presentFields(products[0], requiredProductFields)
	if len(present) >= minimumStructureFields {
		s.record(ctx, "Skip Pagination Response Structure", true, "Product contains %d/%d expected fields", len(present), len(requiredProductFields))
		return
	}

	s.record(ctx, "Skip Pagination Response Structure", false, "Product missing important fields: %v", products[0].Missing(requiredProductFields...))
}

func (s *SkipPaginationSuite) checkPerformance(ctx context.Context) {
	start := time.Now()
	ok, resp := s.get(ctx, "Skip Pagination Performance Test", pathAllProducts)
	elapsed := time.Since(start)

	if !ok || resp == nil {
		return
	}

	products, ok := s.records(ctx, resp, "Skip Pagination Performance Analysis", "Skip Pagination Performance Analysis")
	if !ok {
		return
	}

	if elapsed < s.opts.SlowThreshold {
		s.record(ctx, "Skip Pagination Performance", true, "Retrieved %d products in %.2fs", len(products), elapsed.Seconds())
		return
	}

	s.record(ctx, "Skip Pagination Performance", false, "Slow response: %.2fs for %d products", elapsed.Seconds(), len(products))
}

func searchPath(term string) string {
	return fmt.Sprintf("/products?search=%s&skip_pagination=true", url.QueryEscape(term))
}

func searchPaginatedPath(term string) string {
	return fmt.Sprintf("/products?search=%s&limit=%d", url.QueryEscape(term), searchCompareLimit)
}

func categoryPath(id string) string {
	return fmt.Sprintf("/products?category_id=%s&skip_pagination=true", escapeID(id))
}

func categoryPaginatedPath(id string) string {
	return fmt.Sprintf("/products?category_id=%s&limit=%d", escapeID(id), categoryCompareSize)
}

// escapeID leaves the listing placeholder readable.
func escapeID(id string) string {
	if id == "{id}" {
		return id
	}

	return url.QueryEscape(id)
}
