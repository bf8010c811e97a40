package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/config"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/observability"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search TICKER",
	Short: "Busca noticias de un ticker desde la terminal",
	Long: `Run one search against the Perplexity API and print the results.

The same validation, prompt and parsing pipeline as the HTTP endpoint is
used, so the output matches what the API would return.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		logger, err := observability.NewCLILogger(verbose)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		service := buildService(cfg, logger)

		result, err := service.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if searchJSON {
			return printJSON(cmd.OutOrStdout(), result)
		}

		if len(result.News) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Sin noticias recientes para %s\n", result.Ticker)
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetTitle("Noticias %s", result.Ticker)
		t.AppendHeader(table.Row{"#", "Fecha", "Título", "Fuente", "Impacto", "Tags"})
		for i, item := range result.News {
			t.AppendRow(table.Row{
				i + 1,
				item.Date,
				text.WrapSoft(item.Title, 48),
				item.Source,
				item.ImpactLevel,
				strings.Join(item.Tags, ", "),
			})
		}
		t.AppendFooter(table.Row{"", "", "", "", "tokens", result.Usage.TotalTokens})
		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	},
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "emit raw JSON instead of a table")
	rootCmd.AddCommand(searchCmd)
}
