package v501

import (
	"github.com/beevik/etree"
	"github.com/samber/lo"

	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

func firm(parent *etree.Element, name string, org *model.Organization) error {
	el := parent.CreateElement(name)
	wire.Attr(el, "ОКПО", org.OKPO)
	wire.Attr(el, "СтруктПодр", org.Department)
	wire.Attr(el, "ИнфДляУчаст", org.AdditionalInfo)
	wire.Attr(el, "КраткНазв", org.ShortName)

	if err := identity(el, org.Identity); err != nil {
		return err
	}
	if err := address(el, org.Address); err != nil {
		return err
	}
	contact(el, org.Contact)
	wire.BankAccount(el, org.BankAccount)
	return nil
}

func identity(parent *etree.Element, id model.Identity) error {
	var info *etree.Element
	switch v := id.(type) {
	case *model.LegalPerson:
		info = etree.NewElement("СвЮЛУч")
		info.CreateAttr("НаимОрг", v.Name)
		if v.HyphenINN {
			info.CreateAttr("ДефИННЮЛ", wire.Hyphen)
		} else {
			info.CreateAttr("ИННЮЛ", v.INN)
		}
		info.CreateAttr("КПП", v.KPP)
	case *model.IndividualEntrepreneur:
		info = etree.NewElement("СвИП")
		if v.HyphenINN {
			info.CreateAttr("ДефИННФЛ", wire.Hyphen)
		} else {
			info.CreateAttr("ИННФЛ", v.INN)
		}
		wire.Attr(info, "СвГосРегИП", v.RegistrationCertificate)
		wire.Attr(info, "ИныеСвед", v.OtherInfo)
		wire.FullName(info, v.FullName)
	case *model.PhysicalPerson:
		info = etree.NewElement("СвФЛУчастФХЖ")
		info.CreateAttr("ИННФЛ", v.INN)
		wire.Attr(info, "ГосРегИПВыдДов", v.RegistrationCertificate)
		wire.Attr(info, "ИныеСвед", v.OtherInfo)
		wire.FullName(info, v.FullName)
	case *model.ForeignEntity:
		info = etree.NewElement("СвИнНеУч")
		info.CreateAttr("НаимОрг", v.Name)
		wire.Attr(info, "Идентиф", v.Identifier)
		wire.Attr(info, "ИныеСвед", v.OtherInfo)
	default:
		return model.NewMissingVariantError("identity", "Не указаны идентификационные сведения организации.")
	}

	parent.CreateElement("ИдСв").AddChild(info)
	return nil
}

func address(parent *etree.Element, addr *model.Address) error {
	if addr == nil {
		return nil
	}

	var info *etree.Element
	switch v := addr.Kind.(type) {
	case *model.RussianAddress:
		info = etree.NewElement("АдрРФ")
		wire.Attr(info, "Индекс", v.ZipCode)
		info.CreateAttr("КодРегион", v.RegionCode)
		wire.Attr(info, "Улица", v.Street)
		wire.Attr(info, "Дом", v.Building)
		wire.Attr(info, "Корпус", v.Block)
		wire.Attr(info, "Кварт", v.Apartment)
		wire.Attr(info, "Город", v.City)
		wire.Attr(info, "Район", v.Territory)
		wire.Attr(info, "НаселПункт", v.Locality)
	case *model.ForeignAddress:
		info = etree.NewElement("АдрИнф")
		info.CreateAttr("КодСтр", v.CountryCode)
		info.CreateAttr("Адрес", v.Address)
	case *model.StateAddress:
		info = etree.NewElement("КодГАР")
		info.SetText(v.UniqueCode)
	default:
		return model.NewMissingVariantError("address", "Не указан адрес организации.")
	}

	parent.CreateElement("Адрес").AddChild(info)
	return nil
}

func contact(parent *etree.Element, c *model.Contact) {
	if c == nil {
		return
	}
	el := parent.CreateElement("Контакт")
	wire.Attr(el, "Тлф", lo.FirstOrEmpty(c.Phones))
	wire.Attr(el, "ЭлПочта", lo.FirstOrEmpty(c.Emails))
}
