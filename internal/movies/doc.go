// Package movies shapes OMDb records for the dashboard.
//
// It parses title input, trims records to selected fields, flattens nested
// ratings, searches by title, genre, or actor, and computes the aggregate
// views the overview charts need: genre counts, median IMDb rating per genre,
// box office against rating, and the list of production countries.
package movies
