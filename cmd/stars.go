package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cuducos/astronomer/model"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func newStarsCommand() *cobra.Command {
	var (
		resultQuery model.ResultQuery
		outputJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "stars <login>",
		Short: "Print the stars per language of a GitHub user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			githubClient := newGithubClient(*cfg)
			starsService := newStarsService(cmd.Context(), *cfg, githubClient)

			result, err := starsService.GetAccountResult(cmd.Context(), args[0], resultQuery.RepositoryStatus())
			if err != nil {
				return err
			}

			result = resultQuery.Apply(result)

			if outputJSON {
				return writeJSONResult(cmd.OutOrStdout(), result)
			}

			return writeResultTable(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&resultQuery.Status, "status", string(model.StatusAll), "Repositories to consider: all, active or archived")
	cmd.Flags().StringVar(&resultQuery.Exclude, "exclude", "", "Comma separated list of languages to exclude")
	cmd.Flags().UintVar(&resultQuery.Top, "top", 0, "Number of languages to display (0 for all of them)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output the result as JSON")

	return cmd
}

func writeJSONResult(w io.Writer, result model.AccountResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(result)
}

// writeResultTable writes the languages ranking as a table followed by a summary line.
func writeResultTable(w io.Writer, result model.AccountResult) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Rank", "Language", "Stars", "Color", "Main repository"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for i, l := range result.Languages {
		mainRepository := ""
		if len(l.Source) > 0 {
			mainRepository = l.Source[0].Repository
		}

		data = append(data, []string{
			strconv.Itoa(i + 1),
			l.Name,
			strconv.FormatFloat(l.Stars, 'f', 1, 64),
			l.Color,
			mainRepository,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s (%s) has %d stars in %d languages\n", result.Name, result.Login, result.Stars, len(result.Languages))
	return err
}
