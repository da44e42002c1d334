package v503_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/model/modeltest"
	"github.com/rezonia/edo-upd/internal/render/v503"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

func TestRenderBuyer(t *testing.T) {
	d := modeltest.BuyerDocument(model.GenerationV503)

	p, err := v503.New().RenderBuyer(d)
	require.NoError(t, err)
	assert.Equal(t, d.FileID, p.ID)
	assert.Equal(t, wire.Encoding, p.Encoding)

	doc, err := wire.ReadDocument(p.Content)
	require.NoError(t, err)

	assert.Equal(t, "5.03", attr(t, doc, "/Файл", "ВерсФорм"))
	assert.Nil(t, doc.FindElement("/Файл/СвУчДокОбор"))
	assert.Equal(t, "1115132", attr(t, doc, "/Файл/Документ", "КНД"))
	assert.Equal(t, "16.03.2024", attr(t, doc, "/Файл/Документ", "ДатаИнфПок"))
	assert.Equal(t, "09.00.00", attr(t, doc, "/Файл/Документ", "ВремИнфПок"))

	seller := "/Файл/Документ/ИдИнфПрод"
	assert.Equal(t, d.SellerInfo.FileID, attr(t, doc, seller, "ИдФайлИнфПр"))
	assert.Equal(t, "TUlJ", doc.FindElement(seller+"/ЭП").Text())

	content := "/Файл/Документ/СодФХЖ4"
	assert.Equal(t, "42", attr(t, doc, content, "ПорНомДокИнфПр"))
	assert.Equal(t, "15.03.2024", attr(t, doc, content, "ДатаДокИнфПр"))
	assert.Empty(t, attr(t, doc, content, "НомСчФИнфПр"))
	assert.Equal(t, "1", attr(t, doc, content+"/СвПрин/КодСодОпер", "КодИтога"))
	assert.Equal(t, "Кладовщик", attr(t, doc, content+"/СвПрин/СвЛицПрин/РабОргПок", "Должность"))

	signer := "/Файл/Документ/Подписант"
	assert.Equal(t, "Директор", attr(t, doc, signer, "Должн"))
	assert.Equal(t, "0", attr(t, doc, signer, "СпосПодтПолном"))
	assert.Equal(t, "Сидоров", attr(t, doc, signer+"/ФИО", "Фамилия"))
}

func TestRenderBuyer_Discrepancy(t *testing.T) {
	d := modeltest.BuyerDocument(model.GenerationV503)
	d.Acceptance.Result = &model.AcceptanceResult{
		Code:                model.OperationCodeAcceptedWithDiscrepancies,
		DiscrepancyDocument: &model.DocumentRef{Name: "Акт о расхождениях", Number: "1"},
	}
	d.Acceptance.Receiver = &model.OrganizationRepresentative{
		FullName:         model.FullName{Surname: "Козлов", FirstName: "Олег"},
		JobTitle:         "Экспедитор",
		OrganizationName: `ООО "Логистика"`,
		OrganizationBaseDocument: &model.DocumentRef{
			Name:   "Договор экспедиции",
			Number: "12",
			Date:   ptr(modeltest.Date(2024, time.January, 15)),
		},
	}

	p, err := v503.New().RenderBuyer(d)
	require.NoError(t, err)
	doc, err := wire.ReadDocument(p.Content)
	require.NoError(t, err)

	accept := "/Файл/Документ/СодФХЖ4/СвПрин"
	assert.Equal(t, "2", attr(t, doc, accept+"/КодСодОпер", "КодИтога"))
	assert.Equal(t, "Акт о расхождениях", attr(t, doc, accept+"/РеквДокРасх", "РеквНаимДок"))
	assert.Empty(t, attr(t, doc, accept+"/РеквДокРасх", "РеквДатаДок"))

	rep := accept + "/СвЛицПрин/ИнЛицо/ПредОргПрин"
	assert.Equal(t, `ООО "Логистика"`, attr(t, doc, rep, "НаимОргПрин"))
	assert.Equal(t, "15.01.2024", attr(t, doc, rep+"/ОснДоверОргПрин", "РеквДатаДок"))
	assert.Nil(t, doc.FindElement(rep+"/ОснПолнПредПрин"))
}

func TestRenderBuyer_StateProcurement(t *testing.T) {
	d := modeltest.BuyerDocument(model.GenerationV503)
	d.StateProcurement = &model.BuyerStateProcurementInfo{
		PersonalAccount:        "03731000010",
		FinancialAuthorityName: "УФК по г. Москве",
		RegisterNumber:         "0373100",
		MunicipalCode:          "45000000",
		PaymentType:            model.PaymentTypeFinal,
		Obligations: []model.FinancialObligation{{
			Row:             1,
			FundType:        model.FundTypeFederalBudget,
			BudgetClassCode: "00000000000000000244",
			Advance:         decimal.RequireFromString("0"),
		}},
	}

	p, err := v503.New().RenderBuyer(d)
	require.NoError(t, err)
	doc, err := wire.ReadDocument(p.Content)
	require.NoError(t, err)

	info := "/Файл/Документ/ИнфПокЗаГоскКазн"
	assert.Equal(t, "03731000010", attr(t, doc, info, "ЛицСчетПок"))
	assert.Equal(t, "2", attr(t, doc, info, "ВидПлат"))
	assert.Equal(t, "0.00", attr(t, doc, info+"/ИнфСведДенОбяз", "СумАванс"))
	assert.Nil(t, doc.FindElement("/Файл/Документ/ИнфПокГосЗакКазн"))
}

func TestRenderBuyer_PaperPowerOfAttorney(t *testing.T) {
	d := modeltest.BuyerDocument(model.GenerationV503)
	d.Signers[0].AuthorityConfirmation = model.AuthorityConfirmationPaperPoA
	d.Signers[0].PowerOfAttorney = &model.PaperPowerOfAttorney{
		IssueDate:      modeltest.Date(2024, time.February, 2),
		InternalNumber: "Д-17",
		Principal:      &model.FullName{Surname: "Петров", FirstName: "Пётр"},
	}

	p, err := v503.New().RenderBuyer(d)
	require.NoError(t, err)
	doc, err := wire.ReadDocument(p.Content)
	require.NoError(t, err)

	poa := "/Файл/Документ/Подписант/СвДоверБум"
	assert.Equal(t, "5", attr(t, doc, "/Файл/Документ/Подписант", "СпосПодтПолном"))
	assert.Equal(t, "Д-17", attr(t, doc, poa, "ВнНомДовер"))
	assert.Equal(t, "02.02.2024", attr(t, doc, poa, "ДатаВыдДовер"))
	assert.Equal(t, "Петров", attr(t, doc, poa+"/ФИО", "Фамилия"))
}

func TestRenderBuyer_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *model.BuyerDocument)
		field  string
	}{
		{"sender", func(d *model.BuyerDocument) { d.Sender = nil }, "sender"},
		{"recipient", func(d *model.BuyerDocument) { d.Recipient = nil }, "recipient"},
		{"creator", func(d *model.BuyerDocument) { d.Creator = nil }, "creator"},
		{"seller info", func(d *model.BuyerDocument) { d.SellerInfo = nil }, "seller_info"},
		{"signers", func(d *model.BuyerDocument) { d.Signers = nil }, "signers"},
		{"signer kind", func(d *model.BuyerDocument) { d.Signers[0].Kind = nil }, "signers[0].kind"},
		{"receiver base date", func(d *model.BuyerDocument) {
			d.Acceptance.Receiver = &model.AuthorizedPerson{BaseDocument: &model.DocumentRef{Name: "Доверенность"}}
		}, "ОснДоверФЛ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := modeltest.BuyerDocument(model.GenerationV503)
			tt.mutate(d)

			_, err := v503.New().RenderBuyer(d)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRenderBuyer_OperatorOptional(t *testing.T) {
	d := modeltest.BuyerDocument(model.GenerationV503)
	d.Operator = nil

	_, err := v503.New().RenderBuyer(d)
	require.NoError(t, err)
}
