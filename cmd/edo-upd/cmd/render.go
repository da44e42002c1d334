package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

var (
	renderGeneration string
	renderKind       string
	renderOutput     string
)

var renderCmd = &cobra.Command{
	Use:   "render <document.json>",
	Short: "Render a document to windows-1251 XML",
	Long: `Render a seller or buyer document from JSON.

The generation is taken from --generation, then from the "generation"
field of the document, then from UPD_GENERATION.

Examples:
  edo-upd render invoice.json -o invoice.xml
  edo-upd render acceptance.json --kind buyer --generation 5.01`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderGeneration, "generation", "g", "", "Schema generation (5.01, 5.03)")
	renderCmd.Flags().StringVarP(&renderKind, "kind", "k", "seller", "Document kind (seller, buyer)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default: stdout)")
}

func runRender(cmd *cobra.Command, args []string) error {
	registry := render.NewRegistry()

	var (
		p   wire.Payload
		err error
	)
	switch renderKind {
	case "seller":
		var d model.SellerDocument
		if err := readJSON(args[0], &d); err != nil {
			return err
		}
		if d.Generation, err = pickGeneration(d.Generation); err != nil {
			return err
		}
		p, err = registry.RenderSeller(&d)
	case "buyer":
		var d model.BuyerDocument
		if err := readJSON(args[0], &d); err != nil {
			return err
		}
		if d.Generation, err = pickGeneration(d.Generation); err != nil {
			return err
		}
		p, err = registry.RenderBuyer(&d)
	default:
		return fmt.Errorf("unknown document kind %q", renderKind)
	}
	if err != nil {
		return err
	}

	printVerbose("Rendered %s (%d bytes)\n", p.ID, len(p.Content))

	w, err := output(renderOutput)
	if err != nil {
		return err
	}
	defer w.Close()
	_, err = w.Write(p.Content)
	return err
}

func pickGeneration(fromDocument model.Generation) (model.Generation, error) {
	switch {
	case renderGeneration != "":
		return model.ParseGeneration(renderGeneration)
	case fromDocument != "":
		return model.ParseGeneration(string(fromDocument))
	default:
		return model.ParseGeneration(cfg.Generation)
	}
}
