package catalog

// Pipeline chains the normalize, group and enrich stages into the one
// entry point the read API consumes. Every run is a full recomputation
// over the input records; there is no shared state between calls.
type Pipeline struct {
	normalizer *Normalizer
	grouper    *Grouper
	enricher   *Enricher
}

type Result struct {
	Offers    []Offer
	Dropped   int
	Products  []Product
	Flattened []FlattenedOffer
}

func NewPipeline() *Pipeline {
	return &Pipeline{
		normalizer: NewNormalizer(),
		grouper:    NewGrouper(),
		enricher:   NewEnricher(),
	}
}

func (p *Pipeline) Run(records []RawRecord) Result {
	offers, dropped := p.normalizer.Run(records)
	products, flattened := p.enricher.Run(p.grouper.Run(offers))
	return Result{
		Offers:    offers,
		Dropped:   dropped,
		Products:  products,
		Flattened: flattened,
	}
}
