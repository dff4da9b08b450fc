package movies

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"reel/internal/omdb"
)

// GenreCount is the number of records tagged with a genre.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// GenreRating is the median IMDb rating of a genre's rated records.
type GenreRating struct {
	Genre  string  `json:"genre"`
	Median float64 `json:"median_rating"`
	Movies int     `json:"movies"`
}

// BoxOfficePoint pairs a record's gross with its IMDb rating.
type BoxOfficePoint struct {
	Title     string  `json:"title"`
	BoxOffice int64   `json:"box_office"`
	Rating    float64 `json:"imdb_rating"`
}

// Summary bundles the overview aggregates for a set of records.
type Summary struct {
	Movies        int              `json:"movies"`
	Genres        []GenreCount     `json:"genres"`
	MedianRatings []GenreRating    `json:"median_ratings"`
	BoxOffice     []BoxOfficePoint `json:"box_office"`
	Countries     []string         `json:"countries"`
}

// Summarize computes every overview aggregate.
func Summarize(records []omdb.Record) Summary {
	return Summary{
		Movies:        len(records),
		Genres:        GenreCounts(records),
		MedianRatings: MedianRatingByGenre(records),
		BoxOffice:     BoxOffice(records),
		Countries:     Countries(records),
	}
}

// GenreCounts counts records per genre, most frequent first, ties by name.
func GenreCounts(records []omdb.Record) []GenreCount {
	counts := make(map[string]int)
	for _, record := range records {
		for _, genre := range SplitList(record.String("Genre")) {
			counts[genre]++
		}
	}
	out := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		out = append(out, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}

// MedianRatingByGenre returns the median imdbRating per genre, highest first.
// Records without a numeric rating are skipped.
func MedianRatingByGenre(records []omdb.Record) []GenreRating {
	ratings := make(map[string][]float64)
	for _, record := range records {
		rating, ok := ParseRating(record.String("imdbRating"))
		if !ok {
			continue
		}
		for _, genre := range SplitList(record.String("Genre")) {
			ratings[genre] = append(ratings[genre], rating)
		}
	}
	out := make([]GenreRating, 0, len(ratings))
	for genre, values := range ratings {
		out = append(out, GenreRating{Genre: genre, Median: median(values), Movies: len(values)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Median != out[j].Median {
			return out[i].Median > out[j].Median
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}

// BoxOffice returns the records that report both a gross and a rating.
func BoxOffice(records []omdb.Record) []BoxOfficePoint {
	var out []BoxOfficePoint
	for _, record := range records {
		gross, ok := ParseMoney(record.String("BoxOffice"))
		if !ok {
			continue
		}
		rating, ok := ParseRating(record.String("imdbRating"))
		if !ok {
			continue
		}
		out = append(out, BoxOfficePoint{Title: record.Title(), BoxOffice: gross, Rating: rating})
	}
	return out
}

// ParseMoney parses OMDb currency strings such as "$292,587,330".
func ParseMoney(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "$")
	value = strings.ReplaceAll(value, ",", "")
	if value == "" {
		return 0, false
	}
	amount, err := strconv.ParseInt(value, 10, 64)
	if err != nil || amount < 0 {
		return 0, false
	}
	return amount, true
}

// ParseRating parses an IMDb rating such as "8.8". "N/A" is not a rating.
func ParseRating(value string) (float64, bool) {
	rating, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 0, false
	}
	return rating, true
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
