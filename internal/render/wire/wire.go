// Package wire holds the XML building blocks shared by the renderers of
// every schema generation: the windows-1251 codec, the document prolog and
// conditional attribute helpers on top of etree.
package wire

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	dec "github.com/rezonia/edo-upd/internal/decimal"
	"github.com/rezonia/edo-upd/internal/model"
)

// Encoding is the declared code page of every rendered document
const Encoding = "windows-1251"

// Hyphen marks a value that is intentionally absent
const Hyphen = "-"

const (
	dateLayout = "02.01.2006"
	timeLayout = "15.04.05"
)

// Payload is a rendered document ready for transport
type Payload struct {
	// ID is the file id, used as the multipart file name
	ID       string
	Content  []byte
	Encoding string
}

// String decodes the payload content back to UTF-8
func (p Payload) String() string {
	s, err := Decode(p.Content)
	if err != nil {
		return string(p.Content)
	}
	return s
}

// NewDocument creates an empty document with the windows-1251 prolog
func NewDocument(standalone bool) *etree.Document {
	doc := etree.NewDocument()
	inst := `version="1.0" encoding="` + Encoding + `"`
	if standalone {
		inst += ` standalone="yes"`
	}
	doc.CreateProcInst("xml", inst)
	return doc
}

// Encode serializes the document and transcodes it to windows-1251.
// Characters missing from the code page become numeric character references.
func Encode(doc *etree.Document) ([]byte, error) {
	doc.Indent(2)
	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("write xml: %w", err)
	}
	out, err := encoding.HTMLEscapeUnsupported(charmap.Windows1251.NewEncoder()).Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", Encoding, err)
	}
	return out, nil
}

// Decode converts windows-1251 bytes to a UTF-8 string
func Decode(b []byte) (string, error) {
	out, err := charmap.Windows1251.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", Encoding, err)
	}
	return string(out), nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText returns UTF-8 input (with or without BOM) as is and decodes
// anything else from windows-1251
func DecodeText(b []byte) (string, error) {
	if t := bytes.TrimPrefix(b, utf8BOM); utf8.Valid(t) {
		return string(t), nil
	}
	return Decode(b)
}

// EncodeString converts a UTF-8 string to windows-1251 bytes
func EncodeString(s string) ([]byte, error) {
	out, err := encoding.HTMLEscapeUnsupported(charmap.Windows1251.NewEncoder()).String(s)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", Encoding, err)
	}
	return []byte(out), nil
}

// CharsetReader lets etree and encoding/xml read windows-1251 documents
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "windows-1251", "cp1251":
		return charmap.Windows1251.NewDecoder().Reader(input), nil
	case "utf-8", "utf8", "":
		return input, nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
}

// ReadDocument parses an XML document in windows-1251 or UTF-8
func ReadDocument(content []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = CharsetReader
	if err := doc.ReadFromBytes(content); err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadString parses a document that was already decoded to UTF-8. The
// declared encoding of the prolog is ignored.
func ReadString(content string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if err := doc.ReadFromString(content); err != nil {
		return nil, err
	}
	return doc, nil
}

// FormatDate renders a date as dd.MM.yyyy
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatTime renders a time of day as HH.mm.ss
func FormatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// Attr sets the attribute when value is non-empty
func Attr(el *etree.Element, name, value string) {
	if value != "" {
		el.CreateAttr(name, value)
	}
}

// AttrOr sets the attribute to value, or to fallback when value is empty
func AttrOr(el *etree.Element, name, value, fallback string) {
	if value == "" {
		value = fallback
	}
	el.CreateAttr(name, value)
}

// Date sets a dd.MM.yyyy attribute
func Date(el *etree.Element, name string, t time.Time) {
	el.CreateAttr(name, FormatDate(t))
}

// OptDate sets a dd.MM.yyyy attribute when t is non-nil
func OptDate(el *etree.Element, name string, t *time.Time) {
	if t != nil {
		Date(el, name, *t)
	}
}

// Amount sets a money attribute with two fraction digits
func Amount(el *etree.Element, name string, d decimal.Decimal) {
	el.CreateAttr(name, dec.FormatAmount(d))
}

// OptAmount sets a money attribute when d is non-nil
func OptAmount(el *etree.Element, name string, d *decimal.Decimal) {
	if d != nil {
		Amount(el, name, *d)
	}
}

// Quantity sets a quantity attribute with up to six fraction digits
func Quantity(el *etree.Element, name string, d decimal.Decimal) {
	el.CreateAttr(name, dec.FormatQuantity(d))
}

// Int sets an integer attribute
func Int(el *etree.Element, name string, v int) {
	el.CreateAttr(name, strconv.Itoa(v))
}

// OptInt sets an integer attribute when v is non-zero
func OptInt(el *etree.Element, name string, v int) {
	if v != 0 {
		Int(el, name, v)
	}
}

// Text appends a child element holding text when text is non-empty
func Text(parent *etree.Element, name, text string) *etree.Element {
	if text == "" {
		return nil
	}
	child := parent.CreateElement(name)
	child.SetText(text)
	return child
}

// FullName appends a ФИО element
func FullName(parent *etree.Element, n model.FullName) *etree.Element {
	el := parent.CreateElement("ФИО")
	el.CreateAttr("Фамилия", n.Surname)
	el.CreateAttr("Имя", n.FirstName)
	Attr(el, "Отчество", n.Patronymic)
	return el
}

// OtherEconomicInfo appends an ИнфПолФХЖ1/3/4 block with its ТекстИнф rows
func OtherEconomicInfo(parent *etree.Element, name string, info *model.OtherEconomicInfo) {
	if info == nil {
		return
	}
	el := parent.CreateElement(name)
	Attr(el, "ИдФайлИнфПол", info.FileID)
	InfoItems(el, "ТекстИнф", info.Items)
}

// InfoItems appends one Идентиф/Значен element per item
func InfoItems(parent *etree.Element, name string, items []model.InfoItem) {
	for _, item := range items {
		el := parent.CreateElement(name)
		Attr(el, "Идентиф", item.ID)
		Attr(el, "Значен", item.Value)
	}
}

// BankAccount appends a БанкРекв block when b is non-nil
func BankAccount(parent *etree.Element, b *model.BankAccount) {
	if b == nil {
		return
	}
	el := parent.CreateElement("БанкРекв")
	Attr(el, "НомерСчета", b.Number)
	if b.Bank != nil {
		bank := el.CreateElement("СвБанк")
		Attr(bank, "НаимБанк", b.Bank.Name)
		Attr(bank, "БИК", b.Bank.BIC)
		Attr(bank, "КорСчет", b.Bank.CorrespondentAccount)
	}
}

// StateProcurement appends the buyer's state procurement block. The element
// is named ИнфПокГосЗакКазн in 5.01 and ИнфПокЗаГоскКазн in 5.03.
func StateProcurement(parent *etree.Element, name string, s *model.BuyerStateProcurementInfo) {
	if s == nil {
		return
	}

	el := parent.CreateElement(name)
	Attr(el, "ИдКодЗак", s.PurchaseCode)
	el.CreateAttr("ЛицСчетПок", s.PersonalAccount)
	el.CreateAttr("НаимФинОргПок", s.FinancialAuthorityName)
	el.CreateAttr("НомРеестрЗапПок", s.RegisterNumber)
	Attr(el, "УчНомБюдОбязПок", s.BudgetObligationNumber)
	Attr(el, "КодКазначПок", s.TreasuryCode)
	Attr(el, "НаимКазначПок", s.TreasuryName)
	el.CreateAttr("ОКТМОПок", s.MunicipalCode)
	Attr(el, "ОКТМОМесПост", s.DeliveryMunicipalCode)
	OptDate(el, "ДатаОплПред", s.PaymentDate)
	Attr(el, "УчНомДенОбяз", s.FinancialObligationNumber)
	Attr(el, "ОчерПлат", s.PaymentOrder)
	OptInt(el, "ВидПлат", int(s.PaymentType))

	for _, o := range s.Obligations {
		row := el.CreateElement("ИнфСведДенОбяз")
		Int(row, "НомСтр", o.Row)
		Attr(row, "КодОбъектФАИП", o.FAIPCode)
		OptInt(row, "ВидСредств", int(o.FundType))
		row.CreateAttr("КодПокБюджКласс", o.BudgetClassCode)
		Attr(row, "КодЦелиПокуп", o.TargetCode)
		Amount(row, "СумАванс", o.Advance)
	}
}
