package v501

import (
	"fmt"
	"strconv"

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

	row := table.CreateElement("СведТов")
	wire.Int(row, "НомСтр", i+1)
	row.CreateAttr("НаимТов", item.ProductName)
	if item.UnitCode != "" {
		row.CreateAttr("ОКЕИ_Тов", item.UnitCode)
	} else if item.HyphenUnitCode {
		row.CreateAttr("ДефОКЕИ_Тов", wire.Hyphen)
	}
	wire.Quantity(row, "КолТов", item.Quantity)
	wire.Amount(row, "ЦенаТов", item.Price)
	wire.Amount(row, "СтТовБезНДС", item.SumWithoutVAT)
	row.CreateAttr("НалСт", rate)
	if item.Sum != nil {
		wire.Amount(row, "СтТовУчНал", *item.Sum)
	} else if item.HyphenSum {
		row.CreateAttr("ДефСтТовУчНал", wire.Hyphen)
	}

	excise(row, item.Excise)

	if err := vat(row.CreateElement("СумНал"), item.IsWithoutVAT(), item.HyphenVAT, item.VAT); err != nil {
		err.Field = fmt.Sprintf("items[%d].vat", i)
		return err
	}

	for _, cd := range item.CustomsDeclarations {
		el := row.CreateElement("СвТД")
		if cd.CountryCode != "" {
			el.CreateAttr("КодПроисх", cd.CountryCode)
		} else if cd.HyphenCountryCode {
			el.CreateAttr("ДефКодПроисх", wire.Hyphen)
		}
		wire.Attr(el, "НомерТД", cd.Number)
	}

	additionalInfo(row, item)
	wire.InfoItems(row, "ИнфПолФХЖ2", item.OtherInfo)
	return nil
}

func excise(row *etree.Element, amount *decimal.Decimal) {
	el := row.CreateElement("Акциз")
	if amount == nil {
		el.CreateElement("БезАкциз").SetText("без акциза")
		return
	}
	el.CreateElement("СумАкциз").SetText(dec.FormatAmount(*amount))
}

// vat fills a СумНал or СумНалВсего element. Without VAT wins over the
// hyphen placeholder, which wins over the amount.
func vat(parent *etree.Element, withoutVAT, hyphen bool, amount *decimal.Decimal) *model.ValidationError {
	switch {
	case withoutVAT:
		parent.CreateElement("БезНДС").SetText("без НДС")
	case hyphen:
		parent.CreateElement("ДефНДС").SetText(wire.Hyphen)
	case amount == nil:
		return model.NewValidationError("vat", nil, model.RuleMissingVAT, "Не указана сумма НДС!")
	default:
		parent.CreateElement("СумНал").SetText(dec.FormatAmount(*amount))
	}
	return nil
}

func additionalInfo(row *etree.Element, item *model.InvoiceItem) {
	info := item.Additional
	if info == nil {
		return
	}

	el := row.CreateElement("ДопСведТов")
	if info.Type != model.ItemTypeNotSpecified {
		el.CreateAttr("ПрТовРаб", strconv.Itoa(int(info.Type)))
	}
	wire.Attr(el, "ДопПризн", info.TypeInfo)
	wire.Attr(el, "НаимЕдИзм", item.UnitName)
	if len(info.Countries) > 0 {
		el.CreateAttr("КрНаимСтрПр", info.Countries[0])
	}
	if info.OrderedQuantity != nil {
		el.CreateAttr("НадлОтп", dec.FormatOrdered(*info.OrderedQuantity))
	}
	wire.Attr(el, "ХарактерТов", info.Characteristic)
	wire.Attr(el, "СортТов", info.Sort)
	wire.Attr(el, "АртикулТов", info.Article)
	wire.Attr(el, "КодТов", info.Code)
	wire.Attr(el, "КодКат", info.CatalogCode)
	wire.Attr(el, "КодВидТов", info.FEACNCode)

	for _, tr := range info.Tracing {
		t := el.CreateElement("СведПрослеж")
		t.CreateAttr("НомТовПрослеж", tr.RegistrationNumber)
		t.CreateAttr("ЕдИзмПрослеж", tr.UnitCode)
		wire.Attr(t, "НаимЕдИзмПрослеж", tr.UnitName)
		wire.Quantity(t, "КолВЕдПрослеж", tr.Quantity)
		wire.Attr(t, "ДопПрослеж", tr.AdditionalInfo)
	}

	for _, id := range info.Identification {
		n := el.CreateElement("НомСредИдентТов")
		wire.Attr(n, "ИдентТрансУпак", id.TransportPackageID)
		identificationCodes(n, id)
	}
}

func identificationCodes(parent *etree.Element, id model.IdentificationNumbers) {
	if id.Marks != nil {
		for _, mark := range id.Marks {
			parent.CreateElement("КИЗ").SetText(mark)
		}
		return
	}
	for _, pkg := range id.Packages {
		parent.CreateElement("НомУпак").SetText(pkg)
	}
}

func invoiceTotals(table *etree.Element, items []model.InvoiceItem) error {
	totals := model.CalculateTotals(items)

	el := table.CreateElement("ВсегоОпл")
	wire.Amount(el, "СтТовБезНДСВсего", totals.SumWithoutVAT)
	if totals.Sum != nil {
		wire.Amount(el, "СтТовУчНалВсего", *totals.Sum)
	} else {
		el.CreateAttr("ДефСтТовУчНалВсего", wire.Hyphen)
	}

	if err := vat(el.CreateElement("СумНалВсего"), totals.AllWithoutVAT, totals.AllHyphenVAT, &totals.VAT); err != nil {
		return err
	}

	if dec.IsPositive(totals.Quantity) {
		el.CreateElement("КолНеттоВс").SetText(dec.FormatQuantity(totals.Quantity))
	}
	return nil
}
