package model

import (
	"github.com/shopspring/decimal"
)

// InvoiceItem is one row of the invoice table (СведТов)
type InvoiceItem struct {
	ProductName    string          `json:"product_name"`
	UnitCode       string          `json:"unit_code,omitempty"`
	HyphenUnitCode bool            `json:"hyphen_unit_code,omitempty"`
	UnitName       string          `json:"unit_name,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	SumWithoutVAT  decimal.Decimal `json:"sum_without_vat"`
	TaxRate        TaxRate         `json:"tax_rate"`

	// VAT is required unless the rate is without VAT or HyphenVAT is set
	VAT       *decimal.Decimal `json:"vat,omitempty"`
	HyphenVAT bool             `json:"hyphen_vat,omitempty"`
	Sum       *decimal.Decimal `json:"sum,omitempty"`
	HyphenSum bool             `json:"hyphen_sum,omitempty"`
	Excise    *decimal.Decimal `json:"excise,omitempty"`

	CustomsDeclarations []CustomsDeclaration `json:"customs_declarations,omitempty"`
	Additional          *ItemAdditionalInfo  `json:"additional,omitempty"`
	OtherInfo           []InfoItem           `json:"other_info,omitempty"`
}

// IsWithoutVAT reports whether the row is not subject to VAT
func (i InvoiceItem) IsWithoutVAT() bool {
	return i.TaxRate == TaxRateWithoutVAT
}

// CustomsDeclaration is a customs declaration of imported goods (СвТД / СвДТ)
type CustomsDeclaration struct {
	CountryCode       string `json:"country_code,omitempty"`
	HyphenCountryCode bool   `json:"hyphen_country_code,omitempty"`
	Number            string `json:"number,omitempty"`
}

// ItemAdditionalInfo is the ДопСведТов block of a row
type ItemAdditionalInfo struct {
	Type            ItemType         `json:"type,omitempty"`
	TypeInfo        string           `json:"type_info,omitempty"`
	Countries       []string         `json:"countries,omitempty"`
	OrderedQuantity *decimal.Decimal `json:"ordered_quantity,omitempty"`
	Characteristic  string           `json:"characteristic,omitempty"`
	Sort            string           `json:"sort,omitempty"`
	Series          string           `json:"series,omitempty"`
	Article         string           `json:"article,omitempty"`
	Code            string           `json:"code,omitempty"`
	GTIN            string           `json:"gtin,omitempty"`
	CatalogCode     string           `json:"catalog_code,omitempty"`
	FEACNCode       string           `json:"feacn_code,omitempty"`
	ProductKindCode string           `json:"product_kind_code,omitempty"`
	OKPD2Code       string           `json:"okpd2_code,omitempty"`
	OperationInfo   string           `json:"operation_info,omitempty"`

	SupportingDocuments []DocumentRef           `json:"supporting_documents,omitempty"`
	Amortization        *Amortization           `json:"amortization,omitempty"`
	RecoveredVAT        *RecoveredVAT           `json:"recovered_vat,omitempty"`
	Tracing             []TracingInfo           `json:"tracing,omitempty"`
	Identification      []IdentificationNumbers `json:"identification,omitempty"`
	StateSystems        []StateSystemInfo       `json:"state_systems,omitempty"`
}

// Amortization is the tax accounting of a fixed asset (НалУчАморт)
type Amortization struct {
	Group            string `json:"group"`
	OKOFCode         string `json:"okof_code"`
	UsefulLife       int    `json:"useful_life"`
	ActualUsefulLife int    `json:"actual_useful_life"`
}

// RecoveredVAT is the VAT amount to be restored (СумНалВосст)
type RecoveredVAT struct {
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	WithoutVAT bool             `json:"without_vat,omitempty"`
}

// TracingInfo is the traceability data of a row (СведПрослеж)
type TracingInfo struct {
	RegistrationNumber string          `json:"registration_number"`
	UnitCode           string          `json:"unit_code"`
	UnitName           string          `json:"unit_name,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`
	SumWithoutVAT      decimal.Decimal `json:"sum_without_vat"`
	AdditionalInfo     string          `json:"additional_info,omitempty"`
}

// IdentificationNumbers lists marking codes (КИЗ) or, when there are none,
// package numbers (НомУпак) of a row (НомСредИдентТов)
type IdentificationNumbers struct {
	TransportPackageID string   `json:"transport_package_id,omitempty"`
	MarkedQuantity     string   `json:"marked_quantity,omitempty"`
	BatchMark          string   `json:"batch_mark,omitempty"`
	Marks              []string `json:"marks,omitempty"`
	Packages           []string `json:"packages,omitempty"`
}

// StateSystemInfo is the state information system registration (СвГосСист)
type StateSystemInfo struct {
	Name           string   `json:"name"`
	AccountingUnit string   `json:"accounting_unit,omitempty"`
	OtherInfo      string   `json:"other_info,omitempty"`
	UnitIDs        []string `json:"unit_ids,omitempty"`
}

// Totals are the invoice table totals (ВсегоОпл)
type Totals struct {
	SumWithoutVAT decimal.Decimal
	// Sum is nil when no row carries a total with tax
	Sum           *decimal.Decimal
	VAT           decimal.Decimal
	Quantity      decimal.Decimal
	AllWithoutVAT bool
	AllHyphenVAT  bool
}

// CalculateTotals sums the table rows
func CalculateTotals(items []InvoiceItem) Totals {
	t := Totals{
		SumWithoutVAT: decimal.Zero,
		VAT:           decimal.Zero,
		Quantity:      decimal.Zero,
		AllWithoutVAT: len(items) > 0,
		AllHyphenVAT:  len(items) > 0,
	}
	for _, item := range items {
		t.SumWithoutVAT = t.SumWithoutVAT.Add(item.SumWithoutVAT)
		t.Quantity = t.Quantity.Add(item.Quantity)
		if item.Sum != nil {
			if t.Sum == nil {
				zero := decimal.Zero
				t.Sum = &zero
			}
			*t.Sum = t.Sum.Add(*item.Sum)
		}
		if item.VAT != nil {
			t.VAT = t.VAT.Add(*item.VAT)
		}
		if !item.IsWithoutVAT() {
			t.AllWithoutVAT = false
		}
		if !item.HyphenVAT {
			t.AllHyphenVAT = false
		}
	}
	return t
}
