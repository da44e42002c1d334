// Package v503 renders universal transfer documents in the 5.03 schema
// generation. Compared to 5.01 there is no exchange header, document
// references are structured (Рекв*) and signers carry a power of attorney.
package v503

import (
	"github.com/beevik/etree"

	dec "github.com/rezonia/edo-upd/internal/decimal"
	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

// Renderer renders 5.03 documents
type Renderer struct{}

// New creates a 5.03 renderer
func New() *Renderer {
	return &Renderer{}
}

// Generation returns model.GenerationV503
func (r *Renderer) Generation() model.Generation {
	return model.GenerationV503
}

// RenderSeller builds the seller file
func (r *Renderer) RenderSeller(d *model.SellerDocument) (wire.Payload, error) {
	if err := validateSeller(d); err != nil {
		return wire.Payload{}, err
	}

	creatorName, err := model.EconomicEntityName(d.Creator)
	if err != nil {
		return wire.Payload{}, err
	}

	doc := wire.NewDocument(false)
	root := fileElement(doc, d.FileID, d.ApplicationCreator)

	document := root.CreateElement("Документ")
	document.CreateAttr("КНД", d.TaxDocumentCodeOrDefault())
	wire.Attr(document, "УИД", d.UID)
	document.CreateAttr("Функция", string(d.Function))
	wire.Attr(document, "ПоФактХЖ", d.EconomicNameOrDefault())
	wire.Attr(document, "НаимДокОпр", d.DocumentNameOrDefault())
	wire.Date(document, "ДатаИнфПр", d.CreatedAt)
	document.CreateAttr("ВремИнфПр", wire.FormatTime(d.CreatedAt))
	document.CreateAttr("НаимЭконСубСост", creatorName)
	wire.Attr(document, "СоглСтрДопИнф", d.ApprovedStructure)

	if err := invoiceInfo(document, d); err != nil {
		return wire.Payload{}, err
	}
	if err := invoiceTable(document, d.Items); err != nil {
		return wire.Payload{}, err
	}
	if err := transferInfo(document, d.Transfer); err != nil {
		return wire.Payload{}, err
	}
	if err := signers(document, d.Signers, true); err != nil {
		return wire.Payload{}, err
	}
	if err := docRef(document, "ОснДоверОргСост", d.CreatorBaseDocument); err != nil {
		return wire.Payload{}, err
	}

	return encode(doc, d.FileID)
}

func validateSeller(d *model.SellerDocument) error {
	switch {
	case d == nil:
		return model.NewRequiredError("document", "document is nil")
	case len(d.Buyers) == 0:
		return model.NewRequiredError("buyers", "Не указан покупатель.")
	case len(d.Sellers) == 0:
		return model.NewRequiredError("sellers", "Не указан продавец.")
	case d.Sender == nil:
		return model.NewRequiredError("sender", "Не указан идентификатор отправителя УПД.")
	case d.Recipient == nil:
		return model.NewRequiredError("recipient", "Не указан идентификатор получателя УПД.")
	case d.Creator == nil:
		return model.NewRequiredError("creator", "Не указан экономический субъект - составитель файла обмена счета-фактуры")
	case d.RevisionNumber != "" && d.RevisionDate == nil:
		return model.NewRequiredError("revision_date", "Не указана дата исправления.")
	}
	return nil
}

func fileElement(doc *etree.Document, fileID, creator string) *etree.Element {
	root := doc.CreateElement("Файл")
	root.CreateAttr("ИдФайл", fileID)
	root.CreateAttr("ВерсФорм", string(model.GenerationV503))
	root.CreateAttr("ВерсПрог", creator)
	return root
}

func encode(doc *etree.Document, fileID string) (wire.Payload, error) {
	content, err := wire.Encode(doc)
	if err != nil {
		return wire.Payload{}, err
	}
	return wire.Payload{ID: fileID, Content: content, Encoding: wire.Encoding}, nil
}

func invoiceInfo(parent *etree.Element, d *model.SellerDocument) error {
	info := parent.CreateElement("СвСчФакт")
	info.CreateAttr("НомерДок", d.Number)
	wire.Date(info, "ДатаДок", d.Date)
	wire.Attr(info, "ИмяФайлИспрПрод", d.CorrectedSellerFileName)
	wire.Attr(info, "ИмяФайлИспрПок", d.CorrectedBuyerFileName)

	if d.RevisionNumber != "" {
		revision := info.CreateElement("ИспрДок")
		revision.CreateAttr("НомИспр", d.RevisionNumber)
		wire.Date(revision, "ДатаИспр", *d.RevisionDate)
	}

	for i := range d.Sellers {
		if err := firm(info, "СвПрод", &d.Sellers[i]); err != nil {
			return err
		}
	}
	for i := range d.Shippers {
		shipper := info.CreateElement("ГрузОт")
		if err := firm(shipper, "ГрузОтпр", &d.Shippers[i]); err != nil {
			return err
		}
	}
	for i := range d.Consignees {
		if err := firm(info, "ГрузПолуч", &d.Consignees[i]); err != nil {
			return err
		}
	}

	for _, pd := range d.PaymentDocuments {
		el := info.CreateElement("СвПРД")
		wire.Attr(el, "НомерПРД", pd.Number)
		wire.OptDate(el, "ДатаПРД", pd.Date)
		wire.OptAmount(el, "СуммаПРД", pd.Total)
	}

	if err := docRefs(info, "ДокПодтвОтгрНом", d.ShipmentDocuments); err != nil {
		return err
	}

	for i := range d.Buyers {
		if err := firm(info, "СвПокуп", &d.Buyers[i]); err != nil {
			return err
		}
	}

	if d.CurrencyCode != "" {
		currency := info.CreateElement("ДенИзм")
		currency.CreateAttr("КодОКВ", d.CurrencyCode)
		wire.Attr(currency, "НаимОКВ", d.CurrencyName)
		if d.CurrencyRate != nil && dec.IsPositive(*d.CurrencyRate) {
			currency.CreateAttr("КурсВал", dec.FormatRate(*d.CurrencyRate))
		}
	}

	if err := participantsInfo(info, d.Function, d.ParticipantsInfo); err != nil {
		return err
	}
	wire.OtherEconomicInfo(info, "ИнфПолФХЖ1", d.OtherEconomicInfo)
	return nil
}

// participantsInfo renders ДопСвФХЖ1. The formation circumstance attribute
// depends on the document function.
func participantsInfo(parent *etree.Element, fn model.Function, p *model.ParticipantsInfo) error {
	if p.IsEmpty() {
		return nil
	}

	el := parent.CreateElement("ДопСвФХЖ1")
	wire.Attr(el, "ИдГосКон", p.GovernmentContractID)
	switch fn {
	case model.FunctionInvoice:
		wire.OptInt(el, "СпОбстФСЧФ", int(p.FormationType))
	case model.FunctionInvoiceAndTransfer:
		wire.Attr(el, "СпОбстФСЧФДОП", p.InvoiceTransferBasis)
	case model.FunctionTransfer:
		wire.Attr(el, "СпОбстФДОП", p.TransferBasis)
	}

	for _, o := range p.Obligations {
		ob := el.CreateElement("ВидОбяз")
		wire.Attr(ob, "КодВидОбяз", o.Code)
		wire.Attr(ob, "НаимВидОбяз", o.Name)
	}

	if sc := p.StateContract; sc != nil {
		contract := el.CreateElement("ИнфПродЗаГосКазн")
		wire.Date(contract, "ДатаГосКонт", sc.ContractDate)
		contract.CreateAttr("НомерГосКонт", sc.ContractNumber)
		wire.Attr(contract, "ЛицСчетПрод", sc.PersonalAccount)
		wire.Attr(contract, "КодПродБюджКласс", sc.BudgetClassCode)
		wire.Attr(contract, "КодЦелиПрод", sc.TargetCode)
		wire.Attr(contract, "КодКазначПрод", sc.TreasuryCode)
		wire.Attr(contract, "НаимКазначПрод", sc.TreasuryName)
	}
	if p.Factor != nil {
		if err := firm(el, "СвФактор", p.Factor); err != nil {
			return err
		}
	}
	if err := docRef(el, "ОснУстДенТреб", p.MonetaryClaim); err != nil {
		return err
	}
	return docRefs(el, "СопрДокФХЖ", p.SupportingDocuments)
}
