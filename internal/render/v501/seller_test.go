package v501_test

import (
	"errors"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dec "github.com/rezonia/edo-upd/internal/decimal"
	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/model/modeltest"
	"github.com/rezonia/edo-upd/internal/render/v501"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

func renderSeller(t *testing.T, d *model.SellerDocument) *etree.Document {
	t.Helper()
	p, err := v501.New().RenderSeller(d)
	require.NoError(t, err)
	assert.Equal(t, d.FileID, p.ID)
	assert.Equal(t, wire.Encoding, p.Encoding)

	doc, err := wire.ReadDocument(p.Content)
	require.NoError(t, err)
	return doc
}

func attr(t *testing.T, doc *etree.Document, path, name string) string {
	t.Helper()
	el := doc.FindElement(path)
	require.NotNil(t, el, "element %s not found", path)
	return el.SelectAttrValue(name, "")
}

func TestRenderSeller_Header(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV501)
	p, err := v501.New().RenderSeller(d)
	require.NoError(t, err)
	assert.Contains(t, string(p.Content), `standalone="yes"`)

	doc, err := wire.ReadDocument(p.Content)
	require.NoError(t, err)

	assert.Equal(t, d.FileID, attr(t, doc, "/Файл", "ИдФайл"))
	assert.Equal(t, "5.01", attr(t, doc, "/Файл", "ВерсФорм"))
	assert.Equal(t, "edo-upd 1.0", attr(t, doc, "/Файл", "ВерсПрог"))
	assert.Equal(t, "2LT101", attr(t, doc, "/Файл/СвУчДокОбор", "ИдОтпр"))
	assert.Equal(t, "2LT106", attr(t, doc, "/Файл/СвУчДокОбор", "ИдПол"))
	assert.Equal(t, "7731376812", attr(t, doc, "/Файл/СвУчДокОбор/СвОЭДОтпр", "ИННЮЛ"))

	assert.Equal(t, "1115131", attr(t, doc, "/Файл/Документ", "КНД"))
	assert.Equal(t, "СЧФДОП", attr(t, doc, "/Файл/Документ", "Функция"))
	assert.Equal(t, "15.03.2024", attr(t, doc, "/Файл/Документ", "ДатаИнфПр"))
	assert.Equal(t, "10.30.45", attr(t, doc, "/Файл/Документ", "ВремИнфПр"))
	assert.Equal(t, `ООО "СИЕНА", ИНН/КПП: 7714365994/771401001`, attr(t, doc, "/Файл/Документ", "НаимЭконСубСост"))
	assert.Equal(t, "42", attr(t, doc, "/Файл/Документ/СвСчФакт", "НомерСчФ"))
	assert.NotNil(t, doc.FindElement("/Файл/Документ/СвСчФакт/ИспрСчФ"))
}

func TestRenderSeller_Totals(t *testing.T) {
	doc := renderSeller(t, modeltest.SellerDocument(model.GenerationV501))

	rows := doc.FindElements("/Файл/Документ/ТаблСчФакт/СведТов")
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].SelectAttrValue("НомСтр", ""))
	assert.Equal(t, "2", rows[1].SelectAttrValue("НомСтр", ""))
	assert.Equal(t, "20%", rows[0].SelectAttrValue("НалСт", ""))
	assert.Equal(t, "5000.00", rows[0].SelectAttrValue("ЦенаТов", ""))
	assert.Equal(t, "10000.00", rows[0].FindElement("СумНал/СумНал").Text())
	assert.Equal(t, "без акциза", rows[0].FindElement("Акциз/БезАкциз").Text())

	total := "/Файл/Документ/ТаблСчФакт/ВсегоОпл"
	assert.Equal(t, "100000.00", attr(t, doc, total, "СтТовБезНДСВсего"))
	assert.Equal(t, "120000.00", attr(t, doc, total, "СтТовУчНалВсего"))
	assert.Equal(t, "20000.00", doc.FindElement(total+"/СумНалВсего/СумНал").Text())
	assert.Equal(t, "15", doc.FindElement(total+"/КолНеттоВс").Text())
}

func TestRenderSeller_WithoutVAT(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV501)
	for i := range d.Items {
		d.Items[i].TaxRate = model.TaxRateWithoutVAT
		d.Items[i].VAT = nil
		d.Items[i].Sum = dec.Ptr(d.Items[i].SumWithoutVAT)
	}

	doc := renderSeller(t, d)
	rows := doc.FindElements("/Файл/Документ/ТаблСчФакт/СведТов")
	require.Len(t, rows, 2)
	assert.Equal(t, "без НДС", rows[0].SelectAttrValue("НалСт", ""))
	assert.Equal(t, "без НДС", rows[0].FindElement("СумНал/БезНДС").Text())
	assert.Equal(t, "без НДС", doc.FindElement("/Файл/Документ/ТаблСчФакт/ВсегоОпл/СумНалВсего/БезНДС").Text())
}

func TestRenderSeller_HyphenPlaceholders(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV501)
	for i := range d.Items {
		d.Items[i].VAT = nil
		d.Items[i].HyphenVAT = true
		d.Items[i].Sum = nil
		d.Items[i].HyphenSum = true
		d.Items[i].UnitCode = ""
		d.Items[i].HyphenUnitCode = true
	}
	d.HyphenRevisionNumber = true
	d.HyphenRevisionDate = true

	doc := renderSeller(t, d)
	row := doc.FindElement("/Файл/Документ/ТаблСчФакт/СведТов")
	require.NotNil(t, row)
	assert.Equal(t, "-", row.SelectAttrValue("ДефСтТовУчНал", ""))
	assert.Equal(t, "-", row.SelectAttrValue("ДефОКЕИ_Тов", ""))
	assert.Equal(t, "-", row.FindElement("СумНал/ДефНДС").Text())

	total := "/Файл/Документ/ТаблСчФакт/ВсегоОпл"
	assert.Equal(t, "-", attr(t, doc, total, "ДефСтТовУчНалВсего"))
	assert.Equal(t, "-", doc.FindElement(total+"/СумНалВсего/ДефНДС").Text())

	assert.Equal(t, "-", attr(t, doc, "/Файл/Документ/СвСчФакт/ИспрСчФ", "ДефНомИспрСчФ"))
	assert.Equal(t, "-", attr(t, doc, "/Файл/Документ/СвСчФакт/ИспрСчФ", "ДефДатаИспрСчФ"))
}

func TestRenderSeller_MissingVAT(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV501)
	d.Items[1].VAT = nil

	_, err := v501.New().RenderSeller(d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, model.RuleMissingVAT, verr.Rule)
	assert.Equal(t, "items[1].vat", verr.Field)
}

func TestRenderSeller_SingleIdentity(t *testing.T) {
	doc := renderSeller(t, modeltest.SellerDocument(model.GenerationV501))

	id := doc.FindElement("/Файл/Документ/СвСчФакт/СвПрод/ИдСв")
	require.NotNil(t, id)
	require.Len(t, id.ChildElements(), 1)
	assert.Equal(t, "СвЮЛУч", id.ChildElements()[0].Tag)
	assert.Equal(t, "7714365994", id.ChildElements()[0].SelectAttrValue("ИННЮЛ", ""))

	assert.Equal(t, "+74950000000", attr(t, doc, "/Файл/Документ/СвСчФакт/СвПрод/Контакт", "Тлф"))
	assert.Equal(t, "77", attr(t, doc, "/Файл/Документ/СвСчФакт/СвПрод/Адрес/АдрРФ", "КодРегион"))
}

func TestRenderSeller_IdentityVariants(t *testing.T) {
	tests := []struct {
		name     string
		identity model.Identity
		tag      string
	}{
		{"entrepreneur", &model.IndividualEntrepreneur{FullName: model.FullName{Surname: "Иванов", FirstName: "Иван"}, INN: "771234567890"}, "СвИП"},
		{"physical person", &model.PhysicalPerson{FullName: model.FullName{Surname: "Иванов", FirstName: "Иван"}, INN: "771234567890"}, "СвФЛУчастФХЖ"},
		{"foreign entity", &model.ForeignEntity{Name: "Acme GmbH", Identifier: "DE123"}, "СвИнНеУч"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := modeltest.SellerDocument(model.GenerationV501)
			d.Buyers[0].Identity = tt.identity

			doc := renderSeller(t, d)
			id := doc.FindElement("/Файл/Документ/СвСчФакт/СвПокуп/ИдСв")
			require.NotNil(t, id)
			require.Len(t, id.ChildElements(), 1)
			assert.Equal(t, tt.tag, id.ChildElements()[0].Tag)
		})
	}
}

func TestRenderSeller_MissingIdentity(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV501)
	d.Buyers[0].Identity = nil

	_, err := v501.New().RenderSeller(d)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, model.RuleMissingVariant, verr.Rule)
}

func TestRenderSeller_MissingAddressVariant(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV501)
	d.Sellers[0].Address = &model.Address{}

	_, err := v501.New().RenderSeller(d)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, model.RuleMissingVariant, verr.Rule)
	assert.Equal(t, "address", verr.Field)
}

func TestRenderSeller_NilAddressOmitted(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV501)
	d.Buyers[0].Address = nil

	doc := renderSeller(t, d)
	assert.Nil(t, doc.FindElement("/Файл/Документ/СвСчФакт/СвПокуп/Адрес"))
}

func TestRenderSeller_AddressVariants(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV501)
	d.Buyers[0].Address = &model.Address{Kind: &model.ForeignAddress{CountryCode: "276", Address: "Berlin"}}
	d.Sellers[0].Address = &model.Address{Kind: &model.StateAddress{UniqueCode: "0c5b2444-70a0-4932-980c-b4dc0d3f02b5"}}

	doc := renderSeller(t, d)
	assert.Equal(t, "276", attr(t, doc, "/Файл/Документ/СвСчФакт/СвПокуп/Адрес/АдрИнф", "КодСтр"))
	assert.Equal(t, "0c5b2444-70a0-4932-980c-b4dc0d3f02b5", doc.FindElement("/Файл/Документ/СвСчФакт/СвПрод/Адрес/КодГАР").Text())
}

func TestRenderSeller_RequiredParticipants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *model.SellerDocument)
		field  string
	}{
		{"buyers", func(d *model.SellerDocument) { d.Buyers = nil }, "buyers"},
		{"sellers", func(d *model.SellerDocument) { d.Sellers = nil }, "sellers"},
		{"sender", func(d *model.SellerDocument) { d.Sender = nil }, "sender"},
		{"recipient", func(d *model.SellerDocument) { d.Recipient = nil }, "recipient"},
		{"creator", func(d *model.SellerDocument) { d.Creator = nil }, "creator"},
		{"signers", func(d *model.SellerDocument) { d.Signers = nil }, "signers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := modeltest.SellerDocument(model.GenerationV501)
			tt.mutate(d)

			_, err := v501.New().RenderSeller(d)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, model.RuleRequired, verr.Rule)
		})
	}
}

func TestRenderSeller_Transfer(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV501)
	d.Transfer.Sender = &model.OrganizationRepresentative{
		FullName:         model.FullName{Surname: "Смирнов", FirstName: "Олег"},
		JobTitle:         "Экспедитор",
		OrganizationName: `ООО "Логистика"`,
	}

	doc := renderSeller(t, d)
	info := "/Файл/Документ/СвПродПер/СвПер"
	assert.Equal(t, "Товары переданы", attr(t, doc, info, "СодОпер"))
	assert.Equal(t, "Договор поставки", attr(t, doc, info+"/ОснПер", "НаимОсн"))
	assert.Equal(t, "10.01.2024", attr(t, doc, info+"/ОснПер", "ДатаОсн"))
	assert.Equal(t, `ООО "Логистика"`, attr(t, doc, info+"/СвЛицПер/ИнЛицо/ПредОргПер", "НаимОргПер"))
	assert.Equal(t, "Смирнов", attr(t, doc, info+"/СвЛицПер/ИнЛицо/ПредОргПер/ФИО", "Фамилия"))
}

func TestRenderSeller_Signer(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV501)
	doc := renderSeller(t, d)

	signer := "/Файл/Документ/Подписант"
	assert.Equal(t, "2", attr(t, doc, signer, "ОблПолн"))
	assert.Equal(t, "1", attr(t, doc, signer, "Статус"))
	assert.Equal(t, "7714365994", attr(t, doc, signer+"/ЮЛ", "ИННЮЛ"))
	assert.Equal(t, "Иванович", attr(t, doc, signer+"/ЮЛ/ФИО", "Отчество"))

	d.Signers[0].Kind = nil
	_, err := v501.New().RenderSeller(d)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "signers[0].kind", verr.Field)
}

func TestRenderSeller_UnknownTaxRate(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV501)
	d.Items[0].TaxRate = model.TaxRate(99)

	_, err := v501.New().RenderSeller(d)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, model.RuleUnknownValue, verr.Rule)
}
