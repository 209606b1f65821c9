// Package aggregate computes review statistics and view-level projections
// (filters, pages) over review lists that were already fetched.
package aggregate

import (
	"math"
	"strconv"
	"time"

	"clientvoice/internal/domain"
)

// PublicBuckets is the distribution shown on the public review list.
var PublicBuckets = []int{3, 2, 1}

// AllBuckets covers every rating value.
var AllBuckets = []int{5, 4, 3, 2, 1}

// Average is the mean note rounded to one decimal; 0 for no reviews.
func Average(rs []domain.Review) float64 {
	if len(rs) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rs {
		sum += r.Note
	}
	return round1(float64(sum) / float64(len(rs)))
}

// FormatAverage renders an average with one decimal ("0" when there is
// nothing to average).
func FormatAverage(rs []domain.Review) string {
	if len(rs) == 0 {
		return "0"
	}
	return strconv.FormatFloat(Average(rs), 'f', 1, 64)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

type Bucket struct {
	Note       int     `json:"note"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Distribution counts reviews per note for the given bucket set, in bucket
// order. Percentages are relative to all reviews, including notes outside
// the set.
func Distribution(rs []domain.Review, buckets []int) []Bucket {
	counts := make(map[int]int, len(buckets))
	for _, r := range rs {
		counts[r.Note]++
	}
	out := make([]Bucket, 0, len(buckets))
	for _, n := range buckets {
		b := Bucket{Note: n, Count: counts[n]}
		if len(rs) > 0 {
			b.Percentage = float64(b.Count) / float64(len(rs)) * 100
		}
		out = append(out, b)
	}
	return out
}

// KPIs are the admin review-list counters.
type KPIs struct {
	Total    int `json:"total"`
	Neutral  int `json:"neutral"`  // note == 3
	Negative int `json:"negative"` // note <= 2
}

func Summarize(rs []domain.Review) KPIs {
	k := KPIs{Total: len(rs)}
	for _, r := range rs {
		switch {
		case r.Note == 3:
			k.Neutral++
		case r.Note <= 2:
			k.Negative++
		}
	}
	return k
}

// Score is an average expressed against a rating scale, e.g. 4.2/5.
type Score struct {
	Value float64 `json:"value"`
	Scale int     `json:"scale"`
}

func ScoreOn(rs []domain.Review, scale int) Score {
	if scale <= 0 {
		scale = domain.MaxNote
	}
	return Score{Value: Average(rs), Scale: scale}
}

func (s Score) String() string {
	return strconv.FormatFloat(s.Value, 'f', 1, 64) + "/" + strconv.Itoa(s.Scale)
}

// ClientPerf is one row of the per-client performance table.
type ClientPerf struct {
	ClientID int64   `json:"client_id"`
	Nom      string  `json:"nom"`
	Count    int     `json:"count"`
	Average  float64 `json:"moyenne"`
}

// Performance groups reviews by client, keeping clients without reviews,
// in the order clients are given.
func Performance(clients []domain.Client, rs []domain.Review) []ClientPerf {
	byClient := make(map[int64][]domain.Review, len(clients))
	for _, r := range rs {
		byClient[r.ClientID] = append(byClient[r.ClientID], r)
	}
	out := make([]ClientPerf, 0, len(clients))
	for _, c := range clients {
		own := byClient[c.ID]
		out = append(out, ClientPerf{ClientID: c.ID, Nom: c.Nom, Count: len(own), Average: Average(own)})
	}
	return out
}

// Since keeps reviews created at or after t.
func Since(rs []domain.Review, t time.Time) []domain.Review {
	return Where(rs, func(r domain.Review) bool { return !r.CreatedAt.Before(t) })
}
