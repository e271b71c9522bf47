package api

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cpuscout/app/catalog"
	"cpuscout/app/dataset"
	"cpuscout/app/history"
	"cpuscout/app/metrics"
)

func NewHandler(snapshot *dataset.Snapshot, lookup HistoryLookup, registry *metrics.Registry, version string) *Handler {
	return &Handler{
		snapshot: snapshot,
		pipeline: catalog.NewPipeline(),
		filterer: catalog.NewFilterer(),
		lookup:   lookup,
		registry: registry,
		version:  version,
	}
}

// runPipeline recomputes the full product/offer view from the snapshot.
func (h *Handler) runPipeline() catalog.Result {
	start := time.Now()
	result := h.pipeline.Run(h.snapshot.Records)

	h.registry.PipelineRuns.Inc()
	h.registry.PipelineSec.Observe(time.Since(start).Seconds())
	h.registry.RecordsSeen.Add(float64(len(h.snapshot.Records)))
	h.registry.RecordsDropped.Add(float64(result.Dropped))

	return result
}

func (h *Handler) GetCpus(c *gin.Context) {
	result := h.runPipeline()

	c.JSON(http.StatusOK, gin.H{
		"cpus":       result.Products,
		"offers":     result.Flattened,
		"updated_at": time.Now().In(time.Local).Format(time.RFC3339),
	})
}

func (h *Handler) GetOffers(c *gin.Context) {
	// Validate the query before paying for a pipeline pass.
	filters, sortKey, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.runPipeline()
	offers := h.filterer.Run(result.Flattened, filters, sortKey)

	c.JSON(http.StatusOK, gin.H{
		"offers": offers,
		"meta":   buildMeta(result.Flattened),
	})
}

func (h *Handler) GetHistory(c *gin.Context) {
	h.registry.HistoryRequests.Inc()

	slug := c.Query("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slug parameter"})
		return
	}

	result := h.runPipeline()

	var (
		res *history.Result
		err error
	)
	if vendor := c.Query("vendor"); vendor != "" {
		res, err = h.lookup.ByOffer(result.Products, slug, vendor)
	} else {
		res, err = h.lookup.BySlug(result.Products, slug, splitList(c.Query("vendors")))
	}

	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			h.registry.HistoryMisses.Inc()
			slog.Error("History lookup miss", "slug", slug, "error", err)
			c.JSON(http.StatusNotFound, gin.H{"error": "No price history for the requested product"})
			return
		}
		slog.Error("History lookup failed", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "History lookup failed"})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"records":   h.snapshot.Len(),
		"loaded_at": h.snapshot.LoadedAt.Format(time.RFC3339),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	result := h.runPipeline()

	vendors := make(map[string]struct{})
	for _, o := range result.Offers {
		vendors[o.Vendor] = struct{}{}
	}

	c.JSON(http.StatusOK, gin.H{
		"version": h.version,
		"dataset": gin.H{
			"path":      h.snapshot.Path,
			"loaded_at": h.snapshot.LoadedAt.Format(time.RFC3339),
			"records":   h.snapshot.Len(),
			"dropped":   result.Dropped,
		},
		"offers":   len(result.Offers),
		"products": len(result.Products),
		"vendors":  len(vendors),
	})
}

func (h *Handler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     "CPU Scout",
		"version":     h.version,
		"description": "Read API for browsing and comparing CPU vendor offers",
		"endpoints": map[string]string{
			"cpus":    "/api/cpus",
			"offers":  "/api/offers?q=&brands=&vendors=&min_price=&sort=",
			"history": "/api/history?slug=<product-slug>&vendors=a,b",
			"health":  "/health",
			"stats":   "/stats",
			"metrics": "/metrics",
		},
	})
}

// parseFilters builds a FilterState from query parameters. List-valued
// dimensions are comma-separated; numeric bounds must parse or the
// request is rejected.
func parseFilters(c *gin.Context) (catalog.FilterState, string, error) {
	filters := catalog.FilterState{
		Search:      c.Query("q"),
		Generations: splitList(c.Query("generations")),
		Series:      splitList(c.Query("series")),
		Vendors:     splitList(c.Query("vendors")),
	}

	for _, b := range splitList(c.Query("brands")) {
		filters.Brands = append(filters.Brands, catalog.ParseBrand(b))
	}

	var err error
	if filters.Cores, err = parseIntList(c.Query("cores")); err != nil {
		return filters, "", err
	}
	if filters.Threads, err = parseIntList(c.Query("threads")); err != nil {
		return filters, "", err
	}

	bounds := []struct {
		param string
		dst   **float64
	}{
		{"min_price", &filters.MinPrice},
		{"max_price", &filters.MaxPrice},
		{"min_base_clock", &filters.MinBaseClockGHz},
		{"max_base_clock", &filters.MaxBaseClockGHz},
		{"min_tdp", &filters.MinTDPWatt},
		{"max_tdp", &filters.MaxTDPWatt},
	}
	for _, b := range bounds {
		if *b.dst, err = parseBound(c.Query(b.param), b.param); err != nil {
			return filters, "", err
		}
	}

	if v := c.Query("in_stock"); v != "" {
		filters.InStockOnly = v == "true" || v == "1"
	}

	return filters, c.DefaultQuery("sort", "price-asc"), nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.New("invalid integer value: " + part)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseBound(s, param string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, errors.New("invalid numeric value for " + param)
	}
	return &f, nil
}

type offersMeta struct {
	Count       int       `json:"count"`
	Brands      []string  `json:"brands"`
	Generations []string  `json:"generations"`
	Series      []string  `json:"series"`
	Vendors     []string  `json:"vendors"`
	PriceRange  []float64 `json:"priceRange"`
}

// buildMeta summarizes the distinct filter dimensions of the full
// (unfiltered) offer list so clients can build filter controls in one
// pass.
func buildMeta(offers []catalog.FlattenedOffer) offersMeta {
	meta := offersMeta{Count: len(offers)}

	brands := make(map[string]struct{})
	generations := make(map[string]struct{})
	series := make(map[string]struct{})
	vendors := make(map[string]struct{})

	minPrice, maxPrice := math.Inf(1), math.Inf(-1)
	for _, o := range offers {
		brands[string(o.Brand)] = struct{}{}
		if o.Generation != "" {
			generations[o.Generation] = struct{}{}
		}
		if o.Series != "" {
			series[o.Series] = struct{}{}
		}
		if o.Vendor != "" {
			vendors[o.Vendor] = struct{}{}
		}
		minPrice = math.Min(minPrice, o.Price)
		maxPrice = math.Max(maxPrice, o.Price)
	}

	meta.Brands = sortedKeys(brands)
	meta.Generations = sortedKeys(generations)
	meta.Series = sortedKeys(series)
	meta.Vendors = sortedKeys(vendors)
	if len(offers) > 0 {
		meta.PriceRange = []float64{minPrice, maxPrice}
	}
	return meta
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
