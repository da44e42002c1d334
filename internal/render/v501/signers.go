package v501

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

func sellerSigners(parent *etree.Element, signers []model.Signer) error {
	return renderSigners(parent, signers, true)
}

func buyerSigners(parent *etree.Element, signers []model.Signer) error {
	return renderSigners(parent, signers, false)
}

func renderSigners(parent *etree.Element, signers []model.Signer, seller bool) error {
	if len(signers) == 0 {
		return model.NewRequiredError("signers", "Не указаны подписанты.")
	}

	for i := range signers {
		s := &signers[i]
		el := parent.CreateElement("Подписант")
		wire.Int(el, "ОблПолн", int(s.Authority))
		wire.Int(el, "Статус", int(s.Status))
		el.CreateAttr("ОснПолн", s.AuthorityBase)
		wire.Attr(el, "ОснПолнОрг", s.OrgAuthorityBase)

		if err := signerPerson(el, s.Kind, seller); err != nil {
			err.Field = fmt.Sprintf("signers[%d].kind", i)
			return err
		}
	}
	return nil
}

// signerPerson renders the ЮЛ/ИП/ФЛ child. The buyer variant has no
// ГосРегИПВыдДов on ЮЛ and no hyphen INN on ИП.
func signerPerson(parent *etree.Element, kind model.SignerKind, seller bool) *model.ValidationError {
	switch v := kind.(type) {
	case *model.LegalEntitySigner:
		el := parent.CreateElement("ЮЛ")
		if seller {
			wire.Attr(el, "ГосРегИПВыдДов", v.RegistrationCertificate)
		}
		el.CreateAttr("ИННЮЛ", v.INN)
		wire.Attr(el, "НаимОрг", v.OrganizationName)
		el.CreateAttr("Должн", v.JobTitle)
		wire.Attr(el, "ИныеСвед", v.OtherInfo)
		wire.FullName(el, v.FullName)
	case *model.EntrepreneurSigner:
		el := parent.CreateElement("ИП")
		if seller && v.HyphenINN {
			el.CreateAttr("ДефИННФЛ", wire.Hyphen)
		} else {
			el.CreateAttr("ИННФЛ", v.INN)
		}
		wire.Attr(el, "СвГосРегИП", v.RegistrationCertificate)
		wire.Attr(el, "ИныеСвед", v.OtherInfo)
		wire.FullName(el, v.FullName)
	case *model.PrivateSigner:
		el := parent.CreateElement("ФЛ")
		wire.Attr(el, "ИННФЛ", v.INN)
		wire.Attr(el, "ГосРегИПВыдДов", v.RegistrationCertificate)
		wire.Attr(el, "ИныеСвед", v.OtherInfo)
		wire.FullName(el, v.FullName)
	default:
		return model.NewMissingVariantError("signer.kind", "Не указана информация о подписанте.")
	}
	return nil
}
