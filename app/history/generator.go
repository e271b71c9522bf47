// Package history synthesizes mock per-vendor price series. There is no
// real pricing feed: each request regenerates a random walk seeded from
// the offer's current price.
package history

import (
	"math"
	"math/rand/v2"
	"time"
)

const DefaultDays = 30

type Point struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Generator produces a daily random-walk series ending today. Each step
// applies uniform jitter of up to ±5%, floors at 1 and rounds to cents.
type Generator struct {
	days int
	now  func() time.Time
	rnd  func() float64
}

func NewGenerator(days int) *Generator {
	if days <= 0 {
		days = DefaultDays
	}
	return &Generator{
		days: days,
		now:  time.Now,
		rnd:  rand.Float64,
	}
}

func (g *Generator) Run(base float64) []Point {
	points := make([]Point, 0, g.days)
	today := g.now()
	price := base
	for i := g.days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		jitter := (g.rnd() - 0.5) * 0.1
		price = math.Max(1, price*(1+jitter))
		points = append(points, Point{
			Date:  day.Format("2006-01-02"),
			Price: math.Round(price*100) / 100,
		})
	}
	return points
}
