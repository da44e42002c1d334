package wire_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dec "github.com/rezonia/edo-upd/internal/decimal"
	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

func TestEncode_Prolog(t *testing.T) {
	doc := wire.NewDocument(true)
	doc.CreateElement("Файл").CreateAttr("ИдФайл", "1")

	out, err := wire.Encode(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte(`<?xml version="1.0" encoding="windows-1251" standalone="yes"?>`)))

	doc = wire.NewDocument(false)
	doc.CreateElement("Файл")
	out, err = wire.Encode(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte(`<?xml version="1.0" encoding="windows-1251"?>`)))
}

func TestEncode_Windows1251(t *testing.T) {
	doc := wire.NewDocument(true)
	doc.CreateElement("Файл")

	out, err := wire.Encode(doc)
	require.NoError(t, err)

	// "Ф" is 0xD4 in windows-1251
	assert.Contains(t, string(out), "<\xd4\xe0\xe9\xeb/>")
	assert.NotContains(t, string(out), "Файл")

	decoded, err := wire.Decode(out)
	require.NoError(t, err)
	assert.Contains(t, decoded, "<Файл/>")
}

func TestEncode_UnsupportedCharacter(t *testing.T) {
	doc := wire.NewDocument(false)
	doc.CreateElement("Файл").CreateAttr("Наим", "日")

	out, err := wire.Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "&#26085;")
}

func TestReadDocument_Windows1251(t *testing.T) {
	doc := wire.NewDocument(true)
	doc.CreateElement("Файл").CreateAttr("ИдФайл", "Идентификатор")
	out, err := wire.Encode(doc)
	require.NoError(t, err)

	parsed, err := wire.ReadDocument(out)
	require.NoError(t, err)
	root := parsed.SelectElement("Файл")
	require.NotNil(t, root)
	assert.Equal(t, "Идентификатор", root.SelectAttrValue("ИдФайл", ""))
}

func TestAttributeHelpers(t *testing.T) {
	doc := wire.NewDocument(false)
	el := doc.CreateElement("Э")

	wire.Attr(el, "Пусто", "")
	wire.Attr(el, "Есть", "1")
	wire.AttrOr(el, "Деф", "", wire.Hyphen)
	wire.Date(el, "Дата", time.Date(2022, 1, 21, 15, 4, 5, 0, time.UTC))
	wire.OptDate(el, "НетДаты", nil)
	wire.Amount(el, "Сумма", dec.MustFromString("100000"))
	wire.OptAmount(el, "НетСуммы", nil)
	wire.Quantity(el, "Кол", dec.MustFromString("1.500"))
	wire.OptInt(el, "Ноль", 0)
	wire.Int(el, "Число", 3)

	assert.Nil(t, el.SelectAttr("Пусто"))
	assert.Equal(t, "1", el.SelectAttrValue("Есть", ""))
	assert.Equal(t, "-", el.SelectAttrValue("Деф", ""))
	assert.Equal(t, "21.01.2022", el.SelectAttrValue("Дата", ""))
	assert.Nil(t, el.SelectAttr("НетДаты"))
	assert.Equal(t, "100000.00", el.SelectAttrValue("Сумма", ""))
	assert.Nil(t, el.SelectAttr("НетСуммы"))
	assert.Equal(t, "1.5", el.SelectAttrValue("Кол", ""))
	assert.Nil(t, el.SelectAttr("Ноль"))
	assert.Equal(t, "3", el.SelectAttrValue("Число", ""))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "15.04.05", wire.FormatTime(time.Date(2022, 1, 21, 15, 4, 5, 0, time.UTC)))
}

func TestFullName(t *testing.T) {
	doc := wire.NewDocument(false)
	root := doc.CreateElement("Подписант")

	wire.FullName(root, model.FullName{Surname: "Иванов", FirstName: "Иван"})

	fio := root.SelectElement("ФИО")
	require.NotNil(t, fio)
	assert.Equal(t, "Иванов", fio.SelectAttrValue("Фамилия", ""))
	assert.Equal(t, "Иван", fio.SelectAttrValue("Имя", ""))
	assert.Nil(t, fio.SelectAttr("Отчество"))
}

func TestOtherEconomicInfo(t *testing.T) {
	doc := wire.NewDocument(false)
	root := doc.CreateElement("Документ")

	wire.OtherEconomicInfo(root, "ИнфПолФХЖ1", nil)
	assert.Nil(t, root.SelectElement("ИнфПолФХЖ1"))

	wire.OtherEconomicInfo(root, "ИнфПолФХЖ1", &model.OtherEconomicInfo{
		FileID: "id",
		Items:  []model.InfoItem{{ID: "a", Value: "1"}, {ID: "b", Value: "2"}},
	})
	info := root.SelectElement("ИнфПолФХЖ1")
	require.NotNil(t, info)
	assert.Equal(t, "id", info.SelectAttrValue("ИдФайлИнфПол", ""))
	assert.Len(t, info.SelectElements("ТекстИнф"), 2)
}

func TestPayload_String(t *testing.T) {
	content, err := wire.EncodeString("Счет-фактура")
	require.NoError(t, err)

	p := wire.Payload{ID: "1", Content: content, Encoding: wire.Encoding}
	assert.Equal(t, "Счет-фактура", p.String())
}

func TestDecodeText(t *testing.T) {
	cp1251, err := wire.EncodeString("<Файл/>")
	require.NoError(t, err)

	tests := map[string][]byte{
		"utf-8":        []byte("<Файл/>"),
		"utf-8 bom":    append([]byte{0xEF, 0xBB, 0xBF}, "<Файл/>"...),
		"windows-1251": cp1251,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := wire.DecodeText(in)
			require.NoError(t, err)
			assert.Equal(t, "<Файл/>", got)
		})
	}
}

func TestBankAccount(t *testing.T) {
	root := etree.NewElement("СвПрод")
	wire.BankAccount(root, nil)
	assert.Empty(t, root.ChildElements())

	wire.BankAccount(root, &model.BankAccount{
		Number: "40702810900000000001",
		Bank:   &model.Bank{Name: "ПАО Сбербанк", BIC: "044525225"},
	})
	acc := root.SelectElement("БанкРекв")
	require.NotNil(t, acc)
	assert.Equal(t, "40702810900000000001", acc.SelectAttrValue("НомерСчета", ""))

	bank := acc.SelectElement("СвБанк")
	require.NotNil(t, bank)
	assert.Equal(t, "044525225", bank.SelectAttrValue("БИК", ""))
	assert.Nil(t, bank.SelectAttr("КорСчет"))
}

func TestStateProcurement(t *testing.T) {
	root := etree.NewElement("Документ")
	wire.StateProcurement(root, "ИнфПокГосЗакКазн", nil)
	assert.Empty(t, root.ChildElements())

	wire.StateProcurement(root, "ИнфПокГосЗакКазн", &model.BuyerStateProcurementInfo{
		PersonalAccount:        "03731000010",
		FinancialAuthorityName: "УФК",
		RegisterNumber:         "0373100",
		MunicipalCode:          "45000000",
		Obligations: []model.FinancialObligation{
			{Row: 1, BudgetClassCode: "244", Advance: dec.MustFromString("10.5")},
			{Row: 2, FundType: model.FundTypeOwnFunds, BudgetClassCode: "245", Advance: dec.Zero},
		},
	})

	el := root.SelectElement("ИнфПокГосЗакКазн")
	require.NotNil(t, el)
	assert.Equal(t, "45000000", el.SelectAttrValue("ОКТМОПок", ""))
	assert.Nil(t, el.SelectAttr("ВидПлат"))

	rows := el.SelectElements("ИнфСведДенОбяз")
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0].SelectAttr("ВидСредств"))
	assert.Equal(t, "10.50", rows[0].SelectAttrValue("СумАванс", ""))
	assert.Equal(t, "5", rows[1].SelectAttrValue("ВидСредств", ""))
	assert.Equal(t, "0.00", rows[1].SelectAttrValue("СумАванс", ""))
}
