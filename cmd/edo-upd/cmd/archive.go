package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rezonia/edo-upd/internal/archive"
	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/parser"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

var (
	extractFileName   string
	extractDocumentID string
	extractOutput     string

	parseSignature string
)

var extractCmd = &cobra.Command{
	Use:   "extract <package.zip>",
	Short: "Unpack the document body and signature of an operator package",
	Long: `Unpack an operator ZIP package and print {content, signature} as JSON.

Without --file-name and --document-id the archive name is used to find
the entries.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

var parseCmd = &cobra.Command{
	Use:   "parse <seller.xml>",
	Short: "Read the seller document info a buyer title refers to",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(parseCmd)

	extractCmd.Flags().StringVar(&extractFileName, "file-name", "", "Declared package file name")
	extractCmd.Flags().StringVar(&extractDocumentID, "document-id", "", "Operator document id used as entry prefix")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output file (default: stdout)")

	parseCmd.Flags().StringVar(&parseSignature, "signature", "", "Detached signature file (.p7s)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	fileName := extractFileName
	if fileName == "" && extractDocumentID == "" {
		fileName = filepath.Base(args[0])
	}

	signed, err := archive.Extract(content, fileName, extractDocumentID)
	if err != nil {
		return err
	}
	return writeJSON(extractOutput, signed)
}

func runParse(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	content, err := wire.DecodeText(raw)
	if err != nil {
		return err
	}

	doc := model.SignedDocument{Content: content}
	if parseSignature != "" {
		sig, err := os.ReadFile(parseSignature)
		if err != nil {
			return fmt.Errorf("read signature: %w", err)
		}
		doc.Signature = base64.StdEncoding.EncodeToString(sig)
	}

	info, err := parser.NewRegistry().Parse(context.Background(), doc)
	if err != nil {
		return err
	}
	return writeJSON("", info)
}
