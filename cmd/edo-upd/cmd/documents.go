package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/edo-upd/internal/crpt"
	"github.com/rezonia/edo-upd/internal/report"
)

const dateLayout = "2006-01-02"

var (
	listSearch crpt.SearchModel
	listFrom   string
	listTo     string
	listXLSX   string
	listOutput string

	fetchArchive string
)

var listCmd = &cobra.Command{
	Use:   "list incoming|outgoing",
	Short: "List documents at the operator",
	Long: `List incoming or outgoing documents and print them as JSON or export
them to XLSX.

Examples:
  edo-upd list incoming --from 2024-03-01 --status SIGNED
  edo-upd list outgoing --partner-inn 7701234567 --xlsx outgoing.xlsx`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(crpt.Incoming), string(crpt.Outgoing)},
	RunE:      runList,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch incoming|outgoing <id>",
	Short: "Print the XML body of a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runFetch,
}

var signCmd = &cobra.Command{
	Use:   "sign <id>",
	Short: "Sign an outgoing document uploaded as a draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runSign,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(signCmd)

	listCmd.Flags().StringVar(&listSearch.PartnerINN, "partner-inn", "", "Counterparty INN")
	listCmd.Flags().StringVar(&listSearch.Number, "number", "", "Document number")
	listCmd.Flags().StringSliceVar(&listSearch.Statuses, "status", nil, "Document statuses")
	listCmd.Flags().StringSliceVar(&listSearch.Types, "type", nil, "Document types")
	listCmd.Flags().IntVar(&listSearch.Limit, "limit", 50, "Page size")
	listCmd.Flags().IntVar(&listSearch.Offset, "offset", 0, "Page offset")
	listCmd.Flags().StringVar(&listSearch.OrderBy, "order-by", "", "Sort field")
	listCmd.Flags().StringVar(&listSearch.Order, "order", "", "Sort order (asc, desc)")
	listCmd.Flags().StringVar(&listFrom, "from", "", "Created from (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "Created to (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listXLSX, "xlsx", "", "Export to an XLSX file")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "", "Output file (default: stdout)")

	fetchCmd.Flags().StringVar(&fetchArchive, "archive", "", "Save the package of an incoming document to this file")
}

func runList(cmd *cobra.Command, args []string) error {
	dir, err := crpt.ParseDirection(args[0])
	if err != nil {
		return err
	}
	if listSearch.CreatedFrom, err = parseDay(listFrom); err != nil {
		return err
	}
	if listSearch.CreatedTo, err = parseDay(listTo); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.CRPT.Timeout)
	defer cancel()

	docs, err := client.List(ctx, dir, &listSearch)
	if err != nil {
		return err
	}
	printVerbose("Found %d of %d documents\n", len(docs.Items), docs.Total)

	if listXLSX == "" {
		return writeJSON(listOutput, docs)
	}

	f, err := os.Create(listXLSX)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.WriteDocuments(f, docs)
}

func runFetch(cmd *cobra.Command, args []string) error {
	dir, err := crpt.ParseDirection(args[0])
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.CRPT.Timeout)
	defer cancel()

	if fetchArchive != "" {
		if dir != crpt.Incoming {
			return fmt.Errorf("--archive is available for incoming documents only")
		}
		a, err := client.GetArchive(ctx, args[1])
		if err != nil {
			return err
		}
		printVerbose("Saving %s\n", a.FileName)
		return os.WriteFile(fetchArchive, a.Content, 0o644)
	}

	content, err := client.GetContent(ctx, dir, args[1])
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, content)
	return err
}

func runSign(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.CRPT.Timeout)
	defer cancel()

	if err := client.Sign(ctx, args[0]); err != nil {
		return err
	}
	printVerbose("Signed %s\n", args[0])
	return nil
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return &t, nil
}
