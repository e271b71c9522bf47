package api

import (
	"cpuscout/app/catalog"
	"cpuscout/app/dataset"
	"cpuscout/app/history"
	"cpuscout/app/metrics"
)

type HistoryLookup interface {
	BySlug(products []catalog.Product, slug string, vendors []string) (*history.Result, error)
	ByOffer(products []catalog.Product, slug, vendor string) (*history.Result, error)
}

var _ HistoryLookup = (*history.Lookup)(nil)

type Handler struct {
	snapshot *dataset.Snapshot
	pipeline *catalog.Pipeline
	filterer *catalog.Filterer
	lookup   HistoryLookup
	registry *metrics.Registry
	version  string
}
