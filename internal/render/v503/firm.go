package v503

import (
	"github.com/beevik/etree"

	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

func firm(parent *etree.Element, name string, org *model.Organization) error {
	el := parent.CreateElement(name)
	wire.Attr(el, "ОКПО", org.OKPO)
	wire.Attr(el, "КодОПФ", org.OPFCode)
	wire.Attr(el, "ПолнНаимОПФ", org.OPFName)
	wire.Attr(el, "СтруктПодр", org.Department)
	wire.Attr(el, "ИнфДляУчаст", org.AdditionalInfo)
	wire.Attr(el, "СокрНаим", org.ShortName)

	if err := identity(el.CreateElement("ИдСв"), org.Identity); err != nil {
		return err
	}
	if err := address(el, org.Address); err != nil {
		return err
	}
	wire.BankAccount(el, org.BankAccount)
	contact(el, org.Contact)
	return nil
}

func identity(parent *etree.Element, id model.Identity) error {
	switch v := id.(type) {
	case *model.IndividualEntrepreneur:
		el := parent.CreateElement("СвИП")
		el.CreateAttr("ИННФЛ", v.INN)
		wire.Attr(el, "СвГосРегИП", v.RegistrationCertificate)
		wire.Attr(el, "ОГРНИП", v.OGRNIP)
		wire.OptDate(el, "ДатаОГРНИП", v.OGRNIPDate)
		wire.Attr(el, "ИныеСвед", v.OtherInfo)
		wire.FullName(el, v.FullName)
	case *model.LegalPerson:
		el := parent.CreateElement("СвЮЛУч")
		el.CreateAttr("НаимОрг", v.Name)
		el.CreateAttr("ИННЮЛ", v.INN)
		wire.Attr(el, "КПП", v.KPP)
	case *model.PhysicalPerson:
		el := parent.CreateElement("СвФЛУч")
		wire.Attr(el, "ИННФЛ", v.INN)
		wire.Attr(el, "ИдСтатЛ", v.Status)
		wire.Attr(el, "ИныеСвед", v.OtherInfo)
		wire.FullName(el, v.FullName)
	case *model.ForeignEntity:
		foreignEntity(parent, "СвИнНеУч", v)
	default:
		return model.NewMissingVariantError("identity", "Не указаны идентификационные сведения организации.")
	}
	return nil
}

func address(parent *etree.Element, addr *model.Address) error {
	if addr == nil {
		return nil
	}

	el := etree.NewElement("Адрес")
	wire.Attr(el, "ГЛНМеста", addr.GLN)

	switch v := addr.Kind.(type) {
	case *model.RussianAddress:
		info := el.CreateElement("АдрРФ")
		wire.Attr(info, "Индекс", v.ZipCode)
		info.CreateAttr("КодРегион", v.RegionCode)
		info.CreateAttr("НаимРегион", v.RegionName)
		wire.Attr(info, "Район", v.Territory)
		wire.Attr(info, "Город", v.City)
		wire.Attr(info, "НаселПункт", v.Locality)
		wire.Attr(info, "Улица", v.Street)
		wire.Attr(info, "Дом", v.Building)
		wire.Attr(info, "Корпус", v.Block)
		wire.Attr(info, "Кварт", v.Apartment)
		wire.Attr(info, "ИныеСвед", v.OtherInfo)
	case *model.StateAddress:
		stateAddress(el.CreateElement("АдрГАР"), v)
	case *model.ForeignAddress:
		info := el.CreateElement("АдрИнф")
		info.CreateAttr("КодСтр", v.CountryCode)
		info.CreateAttr("НаимСтран", v.CountryName)
		info.CreateAttr("АдрТекст", v.Address)
	default:
		return model.NewMissingVariantError("address", "Не указан адрес организации.")
	}

	parent.AddChild(el)
	return nil
}

func stateAddress(el *etree.Element, a *model.StateAddress) {
	el.CreateAttr("ИдНом", a.UniqueCode)
	wire.Attr(el, "Индекс", a.ZipCode)
	wire.Text(el, "Регион", a.Region)
	wire.Text(el, "НаимРегион", a.RegionName)

	coded := func(name string, c *model.CodedAddressElement) {
		if c != nil {
			child := el.CreateElement(name)
			child.CreateAttr("ВидКод", c.KindCode)
			child.CreateAttr("Наим", c.Name)
		}
	}
	coded("МуниципРайон", a.MunicipalDistrict)
	coded("ГородСелПоселен", a.UrbanSettlement)

	if a.Settlement != nil {
		child := el.CreateElement("НаселенПункт")
		child.CreateAttr("Вид", a.Settlement.Type)
		child.CreateAttr("Наим", a.Settlement.Name)
	}

	typed := func(name string, t *model.TypedAddressElement) {
		if t != nil {
			child := el.CreateElement(name)
			child.CreateAttr("Тип", t.Type)
			child.CreateAttr("Наим", t.Name)
		}
	}
	typed("ЭлПланСтруктур", a.PlanningStructure)
	typed("ЭлУлДорСети", a.Street)

	wire.Text(el, "ЗемелУчасток", a.LandPlot)

	numbered := func(name string, n *model.NumberedAddressElement) {
		if n != nil {
			child := el.CreateElement(name)
			child.CreateAttr("Тип", n.Type)
			child.CreateAttr("Номер", n.Number)
		}
	}
	for i := range a.Buildings {
		numbered("Здание", &a.Buildings[i])
	}
	numbered("ПомещЗдания", a.Premises)
	numbered("ПомещКвартиры", a.Apartment)
}

func contact(parent *etree.Element, c *model.Contact) {
	if c == nil {
		return
	}
	el := parent.CreateElement("Контакт")
	wire.Attr(el, "ИнКонт", c.OtherInfo)
	for _, phone := range c.Phones {
		wire.Text(el, "Тлф", phone)
	}
	for _, email := range c.Emails {
		wire.Text(el, "ЭлПочта", email)
	}
}
