package v503

import (
	"github.com/beevik/etree"

	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

// docRefs renders one Рекв* element per document
func docRefs(parent *etree.Element, name string, refs []model.DocumentRef) error {
	for i := range refs {
		if err := docRef(parent, name, &refs[i]); err != nil {
			return err
		}
	}
	return nil
}

// docRef renders a document reference. The document date is mandatory
// everywhere except the discrepancy document of an acceptance.
func docRef(parent *etree.Element, name string, ref *model.DocumentRef) error {
	if ref == nil {
		return nil
	}
	if ref.Date == nil {
		return model.NewRequiredError(name, "Не указана дата документа "+ref.Name+".")
	}
	docRefElement(parent, name, ref)
	return nil
}

func docRefElement(parent *etree.Element, name string, ref *model.DocumentRef) {
	el := parent.CreateElement(name)
	el.CreateAttr("РеквНаимДок", ref.Name)
	el.CreateAttr("РеквНомерДок", ref.Number)
	wire.OptDate(el, "РеквДатаДок", ref.Date)
	wire.Attr(el, "РеквИдФайлДок", ref.FileID)
	wire.Attr(el, "РеквИдДок", ref.ID)
	wire.Attr(el, "РИдСистХранД", ref.StorageSystemID)
	wire.Attr(el, "РеквУРЛСистДок", ref.SystemURL)
	wire.Attr(el, "РеквДопСведДок", ref.Info)

	for _, c := range ref.Creators {
		creator := el.CreateElement("РеквИдРекСост")
		switch v := c.(type) {
		case model.LegalEntityINN:
			creator.CreateElement("ИННЮЛ").SetText(string(v))
		case model.IndividualINN:
			creator.CreateElement("ИННФЛ").SetText(string(v))
		case *model.ForeignEntity:
			foreignEntity(creator, "ДаннИно", v)
		case model.AuthorityName:
			creator.CreateElement("НаимОИВ").SetText(string(v))
		}
	}
}

func foreignEntity(parent *etree.Element, name string, f *model.ForeignEntity) {
	el := parent.CreateElement(name)
	el.CreateAttr("ИдСтат", f.Status)
	el.CreateAttr("КодСтр", f.CountryCode)
	el.CreateAttr("НаимСтран", f.CountryName)
	el.CreateAttr("Наим", f.Name)
	wire.Attr(el, "Идентиф", f.Identifier)
	wire.Attr(el, "ИныеСвед", f.OtherInfo)
}
