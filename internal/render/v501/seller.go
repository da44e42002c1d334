// Package v501 renders universal transfer documents in the 5.01 schema
// generation (seller file ON_NSCHFDOPPR, buyer file ON_NSCHFDOPPOK).
package v501

import (
	"github.com/beevik/etree"

	dec "github.com/rezonia/edo-upd/internal/decimal"
	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

// Renderer renders 5.01 documents
type Renderer struct{}

// New creates a 5.01 renderer
func New() *Renderer {
	return &Renderer{}
}

// Generation returns model.GenerationV501
func (r *Renderer) Generation() model.Generation {
	return model.GenerationV501
}

// RenderSeller builds the seller file
func (r *Renderer) RenderSeller(d *model.SellerDocument) (wire.Payload, error) {
	if err := validateSeller(d); err != nil {
		return wire.Payload{}, err
	}

	doc := wire.NewDocument(true)
	root := fileElement(doc, d.FileID, d.ApplicationCreator)
	exchangeElement(root, d.Sender, d.Recipient, d.Operator)

	creatorName, err := model.EconomicEntityName(d.Creator)
	if err != nil {
		return wire.Payload{}, err
	}

	document := root.CreateElement("Документ")
	document.CreateAttr("КНД", d.TaxDocumentCodeOrDefault())
	document.CreateAttr("Функция", string(d.Function))
	wire.Attr(document, "ПоФактХЖ", d.EconomicNameOrDefault())
	wire.Attr(document, "НаимДокОпр", d.DocumentNameOrDefault())
	wire.Date(document, "ДатаИнфПр", d.CreatedAt)
	document.CreateAttr("ВремИнфПр", wire.FormatTime(d.CreatedAt))
	document.CreateAttr("НаимЭконСубСост", creatorName)
	wire.Attr(document, "ОснДоверОргСост", d.CreatorBase)
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
	if err := sellerSigners(document, d.Signers); err != nil {
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
	case d.Operator == nil:
		return model.NewRequiredError("operator", "Не указаны сведения об операторе ЭДО отправителя.")
	case d.Creator == nil:
		return model.NewRequiredError("creator", "Не указан экономический субъект - составитель файла обмена счета-фактуры")
	}
	return nil
}

func fileElement(doc *etree.Document, fileID, creator string) *etree.Element {
	root := doc.CreateElement("Файл")
	root.CreateAttr("ИдФайл", fileID)
	root.CreateAttr("ВерсФорм", string(model.GenerationV501))
	root.CreateAttr("ВерсПрог", creator)
	return root
}

func exchangeElement(root *etree.Element, sender, recipient *model.EdmParticipant, operator *model.EdmOperator) {
	header := root.CreateElement("СвУчДокОбор")
	header.CreateAttr("ИдОтпр", sender.FullID())
	header.CreateAttr("ИдПол", recipient.FullID())

	op := header.CreateElement("СвОЭДОтпр")
	op.CreateAttr("НаимОрг", operator.Name)
	op.CreateAttr("ИННЮЛ", operator.INN)
	op.CreateAttr("ИдЭДО", operator.ID)
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
	info.CreateAttr("НомерСчФ", d.Number)
	wire.Date(info, "ДатаСчФ", d.Date)
	info.CreateAttr("КодОКВ", d.CurrencyCode)

	// ИспрСчФ is required even for an original document
	revision := info.CreateElement("ИспрСчФ")
	if d.HyphenRevisionNumber {
		revision.CreateAttr("ДефНомИспрСчФ", wire.Hyphen)
	} else {
		wire.Attr(revision, "НомИспрСчФ", d.RevisionNumber)
	}
	if d.HyphenRevisionDate {
		revision.CreateAttr("ДефДатаИспрСчФ", wire.Hyphen)
	} else {
		wire.OptDate(revision, "ДатаИспрСчФ", d.RevisionDate)
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
	if err := paymentDocuments(info, d.PaymentDocuments); err != nil {
		return err
	}
	for i := range d.Buyers {
		if err := firm(info, "СвПокуп", &d.Buyers[i]); err != nil {
			return err
		}
	}
	if err := participantsInfo(info, d); err != nil {
		return err
	}
	for _, shipment := range d.ShipmentDocuments {
		el := info.CreateElement("ДокПодтвОтгр")
		wire.Attr(el, "НаимДокОтгр", shipment.Name)
		wire.Attr(el, "НомДокОтгр", shipment.Number)
		wire.OptDate(el, "ДатаДокОтгр", shipment.Date)
	}
	wire.OtherEconomicInfo(info, "ИнфПолФХЖ1", d.OtherEconomicInfo)
	return nil
}

func paymentDocuments(parent *etree.Element, docs []model.PaymentDocument) error {
	for _, pd := range docs {
		if pd.Date == nil {
			return model.NewRequiredError("payment_documents.date", "Не указана дата платежно-расчетного документа.")
		}
		el := parent.CreateElement("СвПРД")
		el.CreateAttr("НомерПРД", pd.Number)
		wire.Date(el, "ДатаПРД", *pd.Date)
		wire.OptAmount(el, "СуммаПРД", pd.Total)
	}
	return nil
}

func participantsInfo(parent *etree.Element, d *model.SellerDocument) error {
	p := d.ParticipantsInfo
	hasRate := d.CurrencyRate != nil && dec.IsPositive(*d.CurrencyRate)
	if p.IsEmpty() && !hasRate && d.CurrencyName == "" {
		return nil
	}
	if p == nil {
		p = &model.ParticipantsInfo{}
	}

	el := parent.CreateElement("ДопСвФХЖ1")
	wire.Attr(el, "ИдГосКон", p.GovernmentContractID)
	wire.Attr(el, "НаимОКВ", d.CurrencyName)
	if hasRate {
		el.CreateAttr("КурсВал", dec.FormatRate(*d.CurrencyRate))
	}
	wire.OptInt(el, "ОбстФормСЧФ", int(p.FormationType))

	if sc := p.StateContract; sc != nil {
		contract := el.CreateElement("ИнфПродГосЗакКазн")
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
	if p.MonetaryClaim != nil {
		basis(el, "ОснУстДенТреб", p.MonetaryClaim)
	}
	return nil
}

// basis renders a document reference with НаимОсн/НомОсн/ДатаОсн attributes
func basis(parent *etree.Element, name string, ref *model.DocumentRef) {
	el := parent.CreateElement(name)
	el.CreateAttr("НаимОсн", ref.Name)
	wire.Attr(el, "НомОсн", ref.Number)
	wire.OptDate(el, "ДатаОсн", ref.Date)
	wire.Attr(el, "ДопСвОсн", ref.Info)
	wire.Attr(el, "ИдентОсн", ref.ID)
}
