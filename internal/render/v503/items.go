package v503

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	dec "github.com/rezonia/edo-upd/internal/decimal"
	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

func invoiceTable(parent *etree.Element, items []model.InvoiceItem) error {
	table := parent.CreateElement("ТаблСчФакт")
	for i := range items {
		if err := invoiceRow(table, i, &items[i]); err != nil {
			return err
		}
	}
	return invoiceTotals(table, items)
}

func invoiceRow(table *etree.Element, i int, item *model.InvoiceItem) error {
	rate, ok := item.TaxRate.Label()
	if !ok {
		return model.NewValidationError(fmt.Sprintf("items[%d].tax_rate", i), int(item.TaxRate), model.RuleUnknownValue, "Неизвестная налоговая ставка.")
	}
	if item.Sum == nil {
		return model.NewRequiredError(fmt.Sprintf("items[%d].sum", i), "Не указана стоимость товара с учетом налога.")
	}

	row := table.CreateElement("СведТов")
	wire.Int(row, "НомСтр", i+1)
	row.CreateAttr("НаимТов", item.ProductName)
	wire.Attr(row, "ОКЕИ_Тов", item.UnitCode)
	wire.Attr(row, "НаимЕдИзм", item.UnitName)
	if dec.IsPositive(item.Quantity) {
		wire.Quantity(row, "КолТов", item.Quantity)
	}
	if dec.IsPositive(item.Price) {
		wire.Amount(row, "ЦенаТов", item.Price)
	}
	if dec.IsPositive(item.SumWithoutVAT) {
		wire.Amount(row, "СтТовБезНДС", item.SumWithoutVAT)
	}
	row.CreateAttr("НалСт", rate)
	wire.Amount(row, "СтТовУчНал", *item.Sum)

	for _, cd := range item.CustomsDeclarations {
		el := row.CreateElement("СвДТ")
		wire.Attr(el, "КодПроисх", cd.CountryCode)
		wire.Attr(el, "НомерДТ", cd.Number)
	}

	if err := additionalInfo(row, item.Additional); err != nil {
		return err
	}

	excise := row.CreateElement("Акциз")
	if item.Excise == nil {
		excise.CreateElement("БезАкциз").SetText("без акциза")
	} else {
		excise.CreateElement("СумАкциз").SetText(dec.FormatAmount(*item.Excise))
	}

	if err := vat(row.CreateElement("СумНал"), item.IsWithoutVAT(), item.VAT); err != nil {
		err.Field = fmt.Sprintf("items[%d].vat", i)
		return err
	}

	wire.InfoItems(row, "ИнфПолФХЖ2", item.OtherInfo)
	return nil
}

// vat fills a СумНал, СумНалВсего or СумНалВосст element. There is no
// hyphen placeholder in this generation.
func vat(parent *etree.Element, withoutVAT bool, amount *decimal.Decimal) *model.ValidationError {
	if withoutVAT {
		parent.CreateElement("БезНДС").SetText("без НДС")
		return nil
	}
	if amount == nil {
		return model.NewValidationError("vat", nil, model.RuleMissingVAT, "Не указана сумма НДС!")
	}
	parent.CreateElement("СумНал").SetText(dec.FormatAmount(*amount))
	return nil
}

func additionalInfo(row *etree.Element, info *model.ItemAdditionalInfo) error {
	if info == nil {
		return nil
	}

	el := row.CreateElement("ДопСведТов")
	wire.OptInt(el, "ПрТовРаб", int(info.Type))
	wire.Attr(el, "ДопПризн", info.TypeInfo)
	if info.OrderedQuantity != nil {
		el.CreateAttr("НадлОтп", dec.FormatOrdered(*info.OrderedQuantity))
	}
	wire.Attr(el, "ХарактерТов", info.Characteristic)
	wire.Attr(el, "СортТов", info.Sort)
	wire.Attr(el, "СерияТов", info.Series)
	wire.Attr(el, "АртикулТов", info.Article)
	wire.Attr(el, "КодТов", info.Code)
	wire.Attr(el, "ГТИН", info.GTIN)
	wire.Attr(el, "КодКат", info.CatalogCode)
	wire.Attr(el, "КодВидТов", info.FEACNCode)
	wire.Attr(el, "КодВидПр", info.ProductKindCode)
	wire.Attr(el, "КодТовОКДП2", info.OKPD2Code)
	wire.Attr(el, "ДопИнфПВидО", info.OperationInfo)

	for _, country := range info.Countries {
		el.CreateElement("КрНаимСтрПр").SetText(country)
	}

	if err := docRefs(el, "СопрДокТов", info.SupportingDocuments); err != nil {
		return err
	}

	if a := info.Amortization; a != nil {
		am := el.CreateElement("НалУчАморт")
		am.CreateAttr("АмГруппа", a.Group)
		am.CreateAttr("КодОКОФ", a.OKOFCode)
		wire.Int(am, "СрПолИспОС", a.UsefulLife)
		wire.Int(am, "ФактСрокИсп", a.ActualUsefulLife)
	}

	if r := info.RecoveredVAT; r != nil {
		if err := vat(el.CreateElement("СумНалВосст"), r.WithoutVAT, r.Amount); err != nil {
			err.Field = "recovered_vat"
			return err
		}
	}

	for _, tr := range info.Tracing {
		t := el.CreateElement("СведПрослеж")
		t.CreateAttr("НомТовПрослеж", tr.RegistrationNumber)
		t.CreateAttr("ЕдИзмПрослеж", tr.UnitCode)
		wire.Attr(t, "НаимЕдИзмПрослеж", tr.UnitName)
		wire.Quantity(t, "КолВЕдПрослеж", tr.Quantity)
		wire.Amount(t, "СтТовБезНДСПрослеж", tr.SumWithoutVAT)
		wire.Attr(t, "ДопИнфПрослеж", tr.AdditionalInfo)
	}

	for _, id := range info.Identification {
		n := el.CreateElement("НомСредИдентТов")
		wire.Attr(n, "ИдентТрансУпак", id.TransportPackageID)
		wire.Attr(n, "КолВедМарк", id.MarkedQuantity)
		wire.Attr(n, "ПрПартМарк", id.BatchMark)
		if id.Marks != nil {
			for _, mark := range id.Marks {
				n.CreateElement("КИЗ").SetText(mark)
			}
		} else {
			for _, pkg := range id.Packages {
				n.CreateElement("НомУпак").SetText(pkg)
			}
		}
	}

	for _, s := range info.StateSystems {
		sys := el.CreateElement("СвГосСист")
		sys.CreateAttr("НаимГосСист", s.Name)
		wire.Attr(sys, "УчетЕд", s.AccountingUnit)
		wire.Attr(sys, "ИнаяИнф", s.OtherInfo)
		for _, id := range s.UnitIDs {
			sys.CreateElement("ИдНомУчетЕд").SetText(id)
		}
	}
	return nil
}

// invoiceTotals renders ВсегоОпл. КолНеттоВс is an attribute here, unlike 5.01.
func invoiceTotals(table *etree.Element, items []model.InvoiceItem) error {
	totals := model.CalculateTotals(items)

	el := table.CreateElement("ВсегоОпл")
	if dec.IsPositive(totals.SumWithoutVAT) {
		wire.Amount(el, "СтТовБезНДСВсего", totals.SumWithoutVAT)
	}
	sum := dec.Zero
	if totals.Sum != nil {
		sum = *totals.Sum
	}
	wire.Amount(el, "СтТовУчНалВсего", sum)
	if dec.IsPositive(totals.Quantity) {
		wire.Quantity(el, "КолНеттоВс", totals.Quantity)
	}

	if err := vat(el.CreateElement("СумНалВсего"), totals.AllWithoutVAT, &totals.VAT); err != nil {
		return err
	}
	return nil
}
