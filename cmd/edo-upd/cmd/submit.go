package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rezonia/edo-upd/internal/crpt"
	"github.com/rezonia/edo-upd/internal/model"
)

var (
	submitDraft  bool
	resultOutput string
)

var submitCmd = &cobra.Command{
	Use:   "submit <document.json>",
	Short: "Render, sign and upload a seller document",
	Long: `Render a seller document and upload it to the operator.

A draft is uploaded unsigned and can be signed later with "edo-upd sign".
Corrections (revision_number set) go to the correction endpoint.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

var acknowledgeCmd = &cobra.Command{
	Use:   "acknowledge <document.json>",
	Short: "Answer a received seller document with a buyer title",
	Long: `Download the seller document named by edm_document_id, render the
buyer title referring to it, sign and upload it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAcknowledge,
}

func init() {
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(acknowledgeCmd)

	submitCmd.Flags().BoolVar(&submitDraft, "draft", false, "Upload without a signature")
	for _, c := range []*cobra.Command{submitCmd, acknowledgeCmd} {
		c.Flags().StringVarP(&resultOutput, "output", "o", "", "Output file (default: stdout)")
		c.Flags().StringVarP(&renderGeneration, "generation", "g", "", "Schema generation (5.01, 5.03)")
	}
}

func runSubmit(cmd *cobra.Command, args []string) error {
	var d model.SellerDocument
	if err := readJSON(args[0], &d); err != nil {
		return err
	}
	gen, err := pickGeneration(d.Generation)
	if err != nil {
		return err
	}
	d.Generation = gen

	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.CRPT.Timeout)
	defer cancel()

	return writeResult(client.Submit(ctx, &d, submitDraft))
}

func runAcknowledge(cmd *cobra.Command, args []string) error {
	var d model.BuyerDocument
	if err := readJSON(args[0], &d); err != nil {
		return err
	}
	gen, err := pickGeneration(d.Generation)
	if err != nil {
		return err
	}
	d.Generation = gen

	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.CRPT.Timeout)
	defer cancel()

	return writeResult(client.Acknowledge(ctx, &d))
}

func writeResult(res *crpt.Result) error {
	if err := writeJSON(resultOutput, res); err != nil {
		return err
	}
	return res.Err
}
