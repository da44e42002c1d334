package v503

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
	wire.OptDate(info, "ДатаНачПер", t.StartDate)
	wire.OptDate(info, "ДатаОконПер", t.EndDate)

	if len(t.BasisDocuments) > 0 {
		if err := docRefs(info, "ОснПер", t.BasisDocuments); err != nil {
			return err
		}
	} else {
		info.CreateElement("БезДокОснПер").SetText("1")
	}

	if t.Sender != nil {
		if err := transferSender(info.CreateElement("СвЛицПер"), t.Sender); err != nil {
			return err
		}
	}

	if tr := t.Transportation; tr != nil {
		el := info.CreateElement("Тран")
		wire.Attr(el, "СвТран", tr.Description)
		wire.Attr(el, "Инкотермс", tr.Incoterms)
		wire.Attr(el, "ВерИнкотермс", tr.IncotermsVersion)
	}

	if ct := t.CreatedThing; ct != nil {
		thing := info.CreateElement("СвПерВещи")
		wire.OptDate(thing, "ДатаПерВещ", ct.Date)
		wire.Attr(thing, "СвПерВещ", ct.Info)
		if err := docRef(thing, "ДокПерВещ", ct.Document); err != nil {
			return err
		}
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
		wire.FullName(el, v.FullName)
	case *model.OrganizationRepresentative:
		el := parent.CreateElement("ИнЛицо").CreateElement("ПредОргПер")
		el.CreateAttr("Должность", v.JobTitle)
		wire.Attr(el, "ИныеСвед", v.OtherInfo)
		el.CreateAttr("НаимОргПер", v.OrganizationName)
		wire.Attr(el, "ИННЮЛПер", v.OrganizationINN)
		if err := docRef(el, "ОснДоверОргПер", v.OrganizationBaseDocument); err != nil {
			return err
		}
		if err := docRef(el, "ОснПолнПредПер", v.AuthorityBaseDocument); err != nil {
			return err
		}
		wire.FullName(el, v.FullName)
	case *model.AuthorizedPerson:
		el := parent.CreateElement("ИнЛицо").CreateElement("ФЛПер")
		wire.Attr(el, "ИННФЛПер", v.INN)
		wire.Attr(el, "ИныеСвед", v.OtherInfo)
		if err := docRef(el, "ОснДоверФЛ", v.BaseDocument); err != nil {
			return err
		}
		wire.FullName(el, v.FullName)
	default:
		return model.NewMissingVariantError("transfer.sender", "Не указаны сведения о лице, передавшем товар (СвЛицПер).")
	}
	return nil
}
