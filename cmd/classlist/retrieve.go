// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/classlist/internal/store"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the roster index by name or section",
	Long: `Retrieve searches the roster index using full-text search over student
names, structured filters (--class, --crn, --term, --gnumber), or a
combination of both.`,
	RunE: runRetrieve,
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(storeSettings(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a name query, --class, --crn, --term, or --gnumber")
	}

	results, err := s.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []store.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-20s  %-10s  %-28s  %-9s  %-6s  %s\n",
		"Last Name", "First Name", "G Number", "Email", "Class", "CRN", "Term")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 105))

	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%-20s  %-20s  %-10s  %-28s  %-9s  %-6s  %s\n",
			clip(r.LastName, 20), clip(r.FirstName, 20), r.GNumber,
			clip(r.Email, 28), clip(r.Class, 9), r.CRN, r.Term)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// clip shortens s to max runes with an ellipsis. Clipping by runes
// keeps multibyte names intact.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max-3]) + "..."
	}
	return s
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) store.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	class, _ := cmd.Flags().GetString("class")
	crn, _ := cmd.Flags().GetString("crn")
	term, _ := cmd.Flags().GetString("term")
	gnumber, _ := cmd.Flags().GetString("gnumber")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Query:      queryText,
		Class:      class,
		CRN:        crn,
		Term:       term,
		GNumber:    gnumber,
		MaxResults: limit,
	}
}

func init() {
	retrieveCmd.Flags().String("roster-dir", "", "base directory for pipeline data (default from settings)")
	retrieveCmd.Flags().String("query", "", "full-text search over student names")
	retrieveCmd.Flags().String("class", "", "filter by class label, e.g. \"GEO 170\"")
	retrieveCmd.Flags().String("crn", "", "filter by Course Reference Number")
	retrieveCmd.Flags().String("term", "", "filter by term label, e.g. \"Fall 2025\"")
	retrieveCmd.Flags().String("gnumber", "", "filter by student identifier")
	retrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	retrieveCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(retrieveCmd)
}
