package v503

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/gofrs/uuid/v5"

	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

// signers renders Подписант elements with the flat person layout and an
// optional power of attorney. The buyer always carries Должн.
func signers(parent *etree.Element, list []model.Signer, seller bool) error {
	if len(list) == 0 {
		return model.NewRequiredError("signers", "Не указаны подписанты.")
	}

	for i := range list {
		s := &list[i]
		if s.Kind == nil {
			return model.NewMissingVariantError(fmt.Sprintf("signers[%d].kind", i), "Не указана информация о подписанте.")
		}

		el := parent.CreateElement("Подписант")
		if seller {
			wire.Attr(el, "Должн", s.JobTitle)
		} else {
			el.CreateAttr("Должн", s.JobTitle)
		}
		if s.SignatureType != nil {
			wire.Int(el, "ТипПодпис", int(*s.SignatureType))
		}
		wire.OptDate(el, "ДатаПодДок", s.SigningDate)
		wire.Int(el, "СпосПодтПолном", int(s.AuthorityConfirmation))
		wire.Attr(el, "ДопСведПодп", s.AdditionalInfo)
		wire.FullName(el, s.Kind.Name())

		if err := powerOfAttorney(el, s.PowerOfAttorney); err != nil {
			err.Field = fmt.Sprintf("signers[%d].power_of_attorney.number", i)
			return err
		}
	}
	return nil
}

// powerOfAttorney renders СвДоверЭл or СвДоверБум. The electronic number
// is a registry GUID written in its canonical form.
func powerOfAttorney(parent *etree.Element, poa model.PowerOfAttorney) *model.ValidationError {
	switch v := poa.(type) {
	case *model.ElectronicPowerOfAttorney:
		number, err := uuid.FromString(v.Number)
		if err != nil {
			return model.NewValidationError("power_of_attorney.number", v.Number, model.RuleInvalidFormat, "Некорректный номер электронной доверенности.")
		}
		el := parent.CreateElement("СвДоверЭл")
		el.CreateAttr("НомДовер", number.String())
		wire.Date(el, "ДатаВыдДовер", v.IssueDate)
		wire.Attr(el, "ВнНомДовер", v.InternalNumber)
		wire.OptDate(el, "ДатаВнРегДовер", v.InternalRegistrationDate)
		el.CreateAttr("ИдСистХран", v.StorageSystemID)
		wire.Attr(el, "УРЛСист", v.StorageSystemURL)
	case *model.PaperPowerOfAttorney:
		el := parent.CreateElement("СвДоверБум")
		wire.Date(el, "ДатаВыдДовер", v.IssueDate)
		el.CreateAttr("ВнНомДовер", v.InternalNumber)
		wire.Attr(el, "СвИдДовер", v.PrincipalInfo)
		if v.Principal != nil {
			wire.FullName(el, *v.Principal)
		}
	}
	return nil
}
