package cmd

import (
	"fmt"
	"slices"

	"github.com/sahilm/fuzzy"
	"github.com/sbpo/datapoints/internal/api"
	"github.com/sbpo/datapoints/internal/models"
	"github.com/sbpo/datapoints/internal/output"
	"github.com/sbpo/datapoints/internal/paging"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List one page of data points",
	Long: `List one page of data points through the simulated API.

Examples:
  dp list                     # First page
  dp list --page 2            # Second page
  dp list --search hello      # Fuzzy match on title and description
  dp list --no-delay --json   # Skip the latency, machine-readable`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		perPage, _ := cmd.Flags().GetInt("per-page")
		search, _ := cmd.Flags().GetString("search")
		jsonOut, _ := cmd.Flags().GetBool("json")
		noDelay, _ := cmd.Flags().GetBool("no-delay")

		if !cmd.Flags().Changed("per-page") {
			perPage = appCfg.PerPage
		}

		var opts []api.Option
		if noDelay {
			opts = append(opts, api.WithLatency(0))
		}
		client, closeStore, err := openClient(opts...)
		if err != nil {
			return reportError(err, jsonOut)
		}
		defer closeStore()

		records, err := client.List(commandContext(cmd))
		if err != nil {
			return reportError(err, jsonOut)
		}
		records = filterRecords(search, records)

		result := pageOf(records, page, perPage)
		if jsonOut {
			return output.JSON(result)
		}

		if result.Total == 0 {
			if search != "" {
				output.Warning("No data points match %q", search)
			} else {
				output.Info("No data points")
			}
			return nil
		}

		width := output.TerminalWidth(80)
		for _, r := range result.Records {
			fmt.Println(output.FormatRecordShort(r, width))
		}
		if controls := output.PageControls(result.Page, result.Pages); controls != "" {
			fmt.Println()
			fmt.Println(controls)
		}
		return nil
	},
}

// listPage is one page of a record list
type listPage struct {
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
	PerPage int             `json:"per_page"`
	Total   int             `json:"total"`
	Records []models.Record `json:"records"`
}

// pageOf slices records to the requested page, limited to the pages that exist
func pageOf(records []models.Record, page, perPage int) listPage {
	pager := paging.New(perPage)
	page = pager.Goto(page, len(records))
	rows := paging.Slice(records, page, pager.PerPage)
	if rows == nil {
		rows = []models.Record{}
	}
	return listPage{
		Page:    page,
		Pages:   pager.Pages(len(records)),
		PerPage: pager.PerPage,
		Total:   len(records),
		Records: rows,
	}
}

// recordSearchSource adapts []models.Record for the fuzzy library.
// Title and description are matched together.
type recordSearchSource []models.Record

func (s recordSearchSource) String(i int) string {
	return s[i].Title + " " + s[i].Description
}

func (s recordSearchSource) Len() int {
	return len(s)
}

// filterRecords returns the records matching query, best match first.
// An empty query returns records unchanged.
func filterRecords(query string, records []models.Record) []models.Record {
	if query == "" {
		return records
	}

	matches := fuzzy.FindFrom(query, recordSearchSource(records))
	slices.SortStableFunc(matches, func(a, b fuzzy.Match) int {
		return b.Score - a.Score
	})

	result := make([]models.Record, len(matches))
	for i, m := range matches {
		result[i] = records[m.Index]
	}
	return result
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntP("page", "p", 1, "Page to show (1-based)")
	listCmd.Flags().Int("per-page", paging.DefaultPerPage, "Records per page (default from config)")
	listCmd.Flags().StringP("search", "s", "", "Fuzzy filter on title and description")
	listCmd.Flags().Bool("json", false, "Output as JSON")
	listCmd.Flags().Bool("no-delay", false, "Skip the simulated latency")
}
