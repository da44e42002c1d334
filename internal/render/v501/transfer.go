package v501

import (
	"github.com/beevik/etree"

	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

func transferInfo(parent *etree.Element, t *model.TransferInfo) error {
	if t == nil {
		return nil
	}

	transfer := parent.CreateElement("СвПродПер")
	info := transfer.CreateElement("СвПер")
	info.CreateAttr("СодОпер", t.OperationName)
	wire.Attr(info, "ВидОпер", t.OperationType)
	wire.OptDate(info, "ДатаПер", t.Date)
	wire.OptDate(info, "ДатаНач", t.StartDate)
	wire.OptDate(info, "ДатаОкон", t.EndDate)

	for i := range t.BasisDocuments {
		basis(info, "ОснПер", &t.BasisDocuments[i])
	}

	if t.Sender != nil {
		if err := transferSender(info.CreateElement("СвЛицПер"), t.Sender); err != nil {
			return err
		}
	}

	if tr := t.Transportation; tr != nil {
		cargo := info.CreateElement("ТранГруз")
		wire.Attr(cargo, "СвТранГруз", tr.Description)
		for _, w := range tr.Waybills {
			waybill := cargo.CreateElement("ТранНакл")
			waybill.CreateAttr("НомТранНакл", w.Number)
			wire.Date(waybill, "ДатаТранНакл", w.Date)
		}
		if tr.Carrier != nil {
			if err := firm(cargo, "Перевозчик", tr.Carrier); err != nil {
				return err
			}
		}
	}

	if ct := t.CreatedThing; ct != nil {
		thing := info.CreateElement("СвПерВещи")
		wire.OptDate(thing, "ДатаПерВещ", ct.Date)
		wire.Attr(thing, "СвПерВещ", ct.Info)
	}

	wire.OtherEconomicInfo(transfer, "ИнфПолФХЖ3", t.OtherEconomicInfo)
	return nil
}

func transferSender(parent *etree.Element, sender model.Representative) error {
	switch v := sender.(type) {
	case *model.Employee:
		el := parent.CreateElement("РабОргПрод")
		el.CreateAttr("Должность", v.JobTitle)
		wire.Attr(el, "ИныеСвед", v.OtherInfo)
		wire.Attr(el, "ОснПолн", v.AuthorityBase)
		wire.FullName(el, v.FullName)
	case *model.OrganizationRepresentative:
		el := parent.CreateElement("ИнЛицо").CreateElement("ПредОргПер")
		el.CreateAttr("Должность", v.JobTitle)
		wire.Attr(el, "ИныеСвед", v.OtherInfo)
		el.CreateAttr("НаимОргПер", v.OrganizationName)
		wire.Attr(el, "ОснДоверОргПер", v.OrganizationBase)
		wire.Attr(el, "ОснПолнПредПер", v.AuthorityBase)
		wire.FullName(el, v.FullName)
	case *model.AuthorizedPerson:
		el := parent.CreateElement("ИнЛицо").CreateElement("ФЛПер")
		wire.Attr(el, "ИныеСвед", v.OtherInfo)
		wire.Attr(el, "ОснДоверФЛ", v.Base)
		wire.FullName(el, v.FullName)
	default:
		return model.NewMissingVariantError("transfer.sender", "Не указаны сведения о лице, передавшем товар (СвЛицПер).")
	}
	return nil
}
