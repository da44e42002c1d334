package v501

import (
	"github.com/beevik/etree"

	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

// RenderBuyer builds the buyer (acceptance) file
func (r *Renderer) RenderBuyer(d *model.BuyerDocument) (wire.Payload, error) {
	if err := validateBuyer(d); err != nil {
		return wire.Payload{}, err
	}

	doc := wire.NewDocument(true)
	root := fileElement(doc, d.FileID, d.ApplicationCreator)
	exchangeElement(root, d.Sender, d.Recipient, d.Operator)

	creatorName, err := model.EconomicEntityName(d.Creator)
	if err != nil {
		return wire.Payload{}, err
	}

	info := root.CreateElement("ИнфПок")
	info.CreateAttr("КНД", d.TaxDocumentCodeOrDefault())
	wire.Date(info, "ДатаИнфПок", d.CreatedAt)
	info.CreateAttr("ВремИнфПок", wire.FormatTime(d.CreatedAt))
	info.CreateAttr("НаимЭконСубСост", creatorName)
	wire.Attr(info, "ОснДоверОргСост", d.CreatorBase)

	seller := info.CreateElement("ИдИнфПрод")
	seller.CreateAttr("ИдФайлИнфПр", d.SellerInfo.FileID)
	seller.CreateAttr("ДатаФайлИнфПр", d.SellerInfo.CreatedDate)
	seller.CreateAttr("ВремФайлИнфПр", d.SellerInfo.CreatedTime)
	for _, sig := range d.SellerInfo.Signatures {
		seller.CreateElement("ЭП").SetText(sig)
	}

	if err := acceptance(info, d); err != nil {
		return wire.Payload{}, err
	}
	wire.StateProcurement(info, "ИнфПокГосЗакКазн", d.StateProcurement)
	if err := buyerSigners(info, d.Signers); err != nil {
		return wire.Payload{}, err
	}

	return encode(doc, d.FileID)
}

func validateBuyer(d *model.BuyerDocument) error {
	switch {
	case d == nil:
		return model.NewRequiredError("document", "document is nil")
	case d.Sender == nil:
		return model.NewRequiredError("sender", "Не указан идентификатор отправителя УПД.")
	case d.Recipient == nil:
		return model.NewRequiredError("recipient", "Не указан идентификатор получателя УПД.")
	case d.Operator == nil:
		return model.NewRequiredError("operator", "Не указаны сведения об операторе ЭДО отправителя.")
	case d.Creator == nil:
		return model.NewRequiredError("creator", "Не указан экономический субъект - составитель файла обмена счета-фактуры")
	case d.SellerInfo == nil:
		return model.NewRequiredError("seller_info", "Не указаны сведения о файле обмена информации продавца.")
	}
	return nil
}

func acceptance(parent *etree.Element, d *model.BuyerDocument) error {
	content := parent.CreateElement("СодФХЖ4")
	content.CreateAttr("НаимДокОпрПр", d.SellerInfo.DocumentName)
	content.CreateAttr("Функция", string(d.SellerInfo.Function))
	content.CreateAttr("НомСчФИнфПр", d.SellerInfo.Number)
	content.CreateAttr("ДатаСчФИнфПр", d.SellerInfo.Date)
	wire.Attr(content, "ВидОперации", d.OperationType)

	a := d.Acceptance
	confirm := content.CreateElement("СвПрин")
	wire.Attr(confirm, "СодОпер", a.OperationName)
	wire.OptDate(confirm, "ДатаПрин", a.Date)

	if res := a.Result; res != nil {
		wire.Attr(confirm, "НаимДокРасх", res.DiscrepancyDocumentName)
		wire.OptInt(confirm, "ВидДокРасх", int(res.DiscrepancyDocumentCode))
		wire.Attr(confirm, "НомДокРасх", res.DiscrepancyNumber)
		wire.OptDate(confirm, "ДатаДокРасх", res.DiscrepancyDate)
		wire.Attr(confirm, "ИдФайлДокРасх", res.DiscrepancyFileID)
		wire.Int(confirm.CreateElement("КодСодОпер"), "КодИтога", int(res.Code))
	}

	if a.Receiver != nil {
		if err := receiver(confirm.CreateElement("СвЛицПрин"), a.Receiver); err != nil {
			return err
		}
	}

	wire.OtherEconomicInfo(content, "ИнфПолФХЖ4", d.OtherEconomicInfo)
	return nil
}

func receiver(parent *etree.Element, r model.Representative) error {
	switch v := r.(type) {
	case *model.Employee:
		el := parent.CreateElement("РабОргПок")
		el.CreateAttr("Должность", v.JobTitle)
		wire.Attr(el, "ИныеСвед", v.OtherInfo)
		wire.Attr(el, "ОснПолн", v.AuthorityBase)
		wire.FullName(el, v.FullName)
	case *model.OrganizationRepresentative:
		el := parent.CreateElement("ИнЛицо").CreateElement("ПредОргПрин")
		el.CreateAttr("Должность", v.JobTitle)
		wire.Attr(el, "ИныеСвед", v.OtherInfo)
		el.CreateAttr("НаимОргПрин", v.OrganizationName)
		wire.Attr(el, "ОснДоверОргПрин", v.OrganizationBase)
		wire.Attr(el, "ОснПолнПредПрин", v.AuthorityBase)
		wire.FullName(el, v.FullName)
	case *model.AuthorizedPerson:
		el := parent.CreateElement("ИнЛицо").CreateElement("ФЛПрин")
		wire.Attr(el, "ИныеСвед", v.OtherInfo)
		wire.Attr(el, "ОснДоверФЛ", v.Base)
		wire.FullName(el, v.FullName)
	default:
		return model.NewMissingVariantError("acceptance.receiver", "Не указаны сведения о лице, принявшем товар (СвЛицПрин).")
	}
	return nil
}
