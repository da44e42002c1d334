// Package report exports document listings to XLSX
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rezonia/edo-upd/internal/crpt"
)

// SheetName is the worksheet holding the listing
const SheetName = "Документы"

var headers = []string{
	"ID", "Номер", "Дата", "Тип", "Статус",
	"ИНН отправителя", "Отправитель", "ИНН получателя", "Получатель",
	"Сумма", "НДС", "Создан",
}

// WriteDocuments writes one row per document after a header row
func WriteDocuments(w io.Writer, docs *crpt.DocumentCollection) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(SheetName); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return err
	}

	if docs != nil {
		for i, d := range docs.Items {
			row := i + 2
			values := []any{
				d.ID, d.Number, d.Date, d.Type, d.Status,
				d.SenderINN, d.SenderName, d.RecipientINN, d.RecipientName,
				d.Total.InexactFloat64(), d.VAT.InexactFloat64(), d.CreatedAt,
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 38); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "G", "I", 30); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
