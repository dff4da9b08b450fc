package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reel/internal/api"
	"reel/internal/fetch"
	"reel/internal/movies"
	"reel/internal/omdb"
)

var defaultMovieColumns = []string{"Title", "Year", "Genre", "Country", "imdbRating"}

func newMovieCommand(ctx *commandContext) *cobra.Command {
	var flatten bool

	cmd := &cobra.Command{
		Use:   "movie <title>",
		Short: "Show the OMDb record for one title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.moviesApp()
			if err != nil {
				return err
			}
			title := strings.TrimSpace(args[0])
			outcome := application.Movies.Lookup(cmd.Context(), title)
			switch outcome.Kind {
			case fetch.NotFound:
				return fmt.Errorf("no OMDb match for %q", title)
			case fetch.TransientFailure:
				return fmt.Errorf("lookup %q: %w", title, outcome.Err)
			}
			record := outcome.Value
			if flatten {
				record = movies.FlattenRatings(record)
			}
			return emit(cmd, ctx, record, func(out io.Writer) error {
				keys := make([]string, 0, len(record))
				for key := range record {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				rows := make([][]string, 0, len(keys))
				for _, key := range keys {
					rows = append(rows, []string{key, movies.Describe(record, key)})
				}
				fmt.Fprintln(out, renderTable(out, []string{"Field", "Value"}, rows, nil))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&flatten, "flatten", false, "Promote each Ratings entry to a top-level field")
	return cmd
}

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	var input titleInput
	var features []string

	cmd := &cobra.Command{
		Use:   "enrich [title...]",
		Short: "Resolve a batch of titles into OMDb records",
		Long: "Resolve a batch of titles into OMDb records.\n\n" +
			"Titles come from arguments, a comma or newline separated --titles value, or --file\n" +
			"(a text file, or a CSV file with a Title column; use - for stdin). Cached titles are\n" +
			"served from disk; titles OMDb does not know are reported as missing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			titles, err := input.collect(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			application, err := ctx.moviesApp()
			if err != nil {
				return err
			}
			result := application.EnrichMovies(cmd.Context(), titles)
			resp := api.FromMovieBatch(result, features)
			return emit(cmd, ctx, resp, func(out io.Writer) error {
				columns := features
				if len(columns) == 0 {
					columns = defaultMovieColumns
				}
				fmt.Fprintln(out, renderTable(out, columns, recordRows(result.Values, columns), nil))
				fmt.Fprintf(out, "Resolved %d of %d titles (batch %s)\n", len(result.Values), result.Requested, result.BatchID)
				if len(result.Missing) > 0 {
					fmt.Fprintf(out, "Missing: %s\n", strings.Join(result.Missing, ", "))
				}
				return nil
			})
		},
	}

	addTitleFlags(cmd, &input)
	cmd.Flags().StringSliceVarP(&features, "features", "f", nil, "OMDb fields to keep (default: all fields for json/yaml)")
	return cmd
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var input titleInput
	var search string

	cmd := &cobra.Command{
		Use:   "stats [title...]",
		Short: "Summarize genres, ratings, and box office for a set of titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			titles, err := input.collect(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			application, err := ctx.moviesApp()
			if err != nil {
				return err
			}
			result := application.EnrichMovies(cmd.Context(), titles)
			records := movies.Search(result.Values, search)
			resp := api.MovieStatsResponse{BatchID: result.BatchID, Summary: movies.Summarize(records)}
			return emit(cmd, ctx, resp, func(out io.Writer) error {
				renderSummary(out, resp.Summary)
				return nil
			})
		},
	}

	addTitleFlags(cmd, &input)
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only include movies whose title, genre, or actors contain this text")
	return cmd
}

func addTitleFlags(cmd *cobra.Command, input *titleInput) {
	cmd.Flags().StringVarP(&input.titles, "titles", "t", "", "Comma or newline separated titles")
	cmd.Flags().StringVar(&input.file, "file", "", "Read titles from a text or CSV file (- for stdin)")
}

func recordRows(records []omdb.Record, columns []string) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = movies.Describe(record, column)
		}
		rows = append(rows, row)
	}
	return rows
}

func renderSummary(out io.Writer, summary movies.Summary) {
	fmt.Fprintf(out, "Movies: %d\n", summary.Movies)
	if summary.Movies == 0 {
		return
	}

	genreRows := make([][]string, 0, len(summary.Genres))
	for _, genre := range summary.Genres {
		genreRows = append(genreRows, []string{genre.Genre, strconv.Itoa(genre.Count)})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Genre", "Movies"}, genreRows, []columnAlignment{alignLeft, alignRight}))

	if len(summary.MedianRatings) > 0 {
		ratingRows := make([][]string, 0, len(summary.MedianRatings))
		for _, rating := range summary.MedianRatings {
			ratingRows = append(ratingRows, []string{
				rating.Genre,
				strconv.FormatFloat(rating.Median, 'f', 1, 64),
				strconv.Itoa(rating.Movies),
			})
		}
		fmt.Fprintln(out, renderTable(out, []string{"Genre", "Median IMDb", "Rated"}, ratingRows, []columnAlignment{alignLeft, alignRight, alignRight}))
	}

	if len(summary.BoxOffice) > 0 {
		boxRows := make([][]string, 0, len(summary.BoxOffice))
		for _, point := range summary.BoxOffice {
			boxRows = append(boxRows, []string{
				point.Title,
				"$" + strconv.FormatInt(point.BoxOffice, 10),
				strconv.FormatFloat(point.Rating, 'f', 1, 64),
			})
		}
		fmt.Fprintln(out, renderTable(out, []string{"Title", "Box Office", "IMDb"}, boxRows, []columnAlignment{alignLeft, alignRight, alignRight}))
	}

	if len(summary.Countries) > 0 {
		fmt.Fprintf(out, "Countries: %s\n", strings.Join(summary.Countries, ", "))
	}
}
