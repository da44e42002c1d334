package model

import (
	"fmt"
	"strconv"
)

// Generation identifies the schema generation a document is rendered with
type Generation string

// Supported schema generations
const (
	GenerationV501 Generation = "5.01"
	GenerationV503 Generation = "5.03"
)

// ParseGeneration accepts "5.01", "501", "v5.01" and the same forms for 5.03
func ParseGeneration(s string) (Generation, error) {
	switch s {
	case "5.01", "501", "v5.01", "v501":
		return GenerationV501, nil
	case "5.03", "503", "v5.03", "v503":
		return GenerationV503, nil
	default:
		return "", NewValidationError("generation", s, RuleUnknownValue, "unsupported schema generation")
	}
}

// Default tax document codes (КНД)
const (
	SellerTaxDocumentCode = "1115131"
	BuyerTaxDocumentCode  = "1115132"
)

// TaxRate is the VAT rate of an invoice row
type TaxRate int

// Tax rates
const (
	TaxRateWithoutVAT TaxRate = iota
	TaxRateZero
	TaxRate5
	TaxRate7
	TaxRate10
	TaxRate18
	TaxRate20
	TaxRate10Fraction
	TaxRate18Fraction
	TaxRate20Fraction
	TaxRateAgent
)

var taxRateLabels = map[TaxRate]string{
	TaxRateWithoutVAT: "без НДС",
	TaxRateZero:       "0%",
	TaxRate5:          "5%",
	TaxRate7:          "7%",
	TaxRate10:         "10%",
	TaxRate18:         "18%",
	TaxRate20:         "20%",
	TaxRate10Fraction: "10/110",
	TaxRate18Fraction: "18/118",
	TaxRate20Fraction: "20/120",
	TaxRateAgent:      "НДС исчисляется налоговым агентом",
}

// Label returns the wire value of the rate
func (r TaxRate) Label() (string, bool) {
	label, ok := taxRateLabels[r]
	return label, ok
}

func (r TaxRate) String() string {
	if label, ok := r.Label(); ok {
		return label
	}
	return "TaxRate(" + strconv.Itoa(int(r)) + ")"
}

// ParseTaxRate maps a wire label back to a rate
func ParseTaxRate(label string) (TaxRate, error) {
	for rate, l := range taxRateLabels {
		if l == label {
			return rate, nil
		}
	}
	return 0, NewValidationError("tax_rate", label, RuleUnknownValue, "unknown tax rate")
}

// MarshalText encodes the rate as its label
func (r TaxRate) MarshalText() ([]byte, error) {
	label, ok := r.Label()
	if !ok {
		return nil, fmt.Errorf("unknown tax rate %d", int(r))
	}
	return []byte(label), nil
}

// UnmarshalText decodes a rate label
func (r *TaxRate) UnmarshalText(text []byte) error {
	rate, err := ParseTaxRate(string(text))
	if err != nil {
		return err
	}
	*r = rate
	return nil
}

// Function is the document role (Функция)
type Function string

// Document functions
const (
	FunctionInvoice             Function = "СЧФ"
	FunctionInvoiceAndTransfer  Function = "СЧФДОП"
	FunctionTransfer            Function = "ДОП"
	FunctionPriceChangeApproval Function = "СвЗК"
)

const transferDocumentName = "Документ об отгрузке товаров (выполнении работ), передаче имущественных прав (документ об оказании услуг)"

// DefaultEconomicName returns the ПоФактХЖ value implied by the function
func (f Function) DefaultEconomicName() string {
	switch f {
	case FunctionInvoiceAndTransfer, FunctionTransfer:
		return transferDocumentName
	default:
		return ""
	}
}

// DefaultDocumentName returns the НаимДокОпр value implied by the function
func (f Function) DefaultDocumentName() string {
	switch f {
	case FunctionInvoice:
		return "Счет-фактура"
	case FunctionInvoiceAndTransfer:
		return "Счет-фактура и документ об отгрузке товаров (выполнении работ), передаче имущественных прав (документ об оказании услуг)"
	case FunctionTransfer:
		return transferDocumentName
	default:
		return ""
	}
}

// Valid reports whether f is a known function
func (f Function) Valid() bool {
	switch f {
	case FunctionInvoice, FunctionInvoiceAndTransfer, FunctionTransfer, FunctionPriceChangeApproval:
		return true
	}
	return false
}

// ItemType is the ПрТовРаб sign of an invoice row
type ItemType int

// Item types; ItemTypeNotSpecified is never rendered
const (
	ItemTypeNotSpecified ItemType = iota
	ItemTypeGoods
	ItemTypeWork
	ItemTypeService
	ItemTypePropertyRights
	ItemTypeOther
)

// InvoiceFormationType is the circumstance of invoice formation (ОбстФормСЧФ / СпОбстФСЧФ)
type InvoiceFormationType int

// Formation types; zero is never rendered
const (
	InvoiceFormationNotSpecified InvoiceFormationType = iota
	InvoiceFormationShipment
	InvoiceFormationPrepayment
	InvoiceFormationAgentShipment
	InvoiceFormationAgentPrepayment
)

// SignerAuthority is the ОблПолн code of a signer
type SignerAuthority int

// Signer authority scopes
const (
	SignerAuthorityInvoice SignerAuthority = iota
	SignerAuthorityTransaction
	SignerAuthorityInvoiceAndTransaction
	SignerAuthorityPreparation
	SignerAuthorityInvoicePreparation
	SignerAuthorityTransactionPreparation
	SignerAuthorityAll
)

// SignerStatus is the Статус code of a signer
type SignerStatus int

// Signer statuses
const (
	SignerStatusNotSpecified SignerStatus = iota
	SignerStatusSellerEmployee
	SignerStatusPreparerEmployee
	SignerStatusOtherOrganizationEmployee
	SignerStatusAuthorizedPerson
	SignerStatusBuyerEmployee
	SignerStatusBuyerAuthorizedPerson
)

// AuthorityConfirmation is the СпосПодтПолном code of a signer
type AuthorityConfirmation int

// Authority confirmation methods
const (
	AuthorityConfirmationNotSpecified AuthorityConfirmation = iota
	AuthorityConfirmationDigitalSignature
	AuthorityConfirmationElectronicPoAInDocument
	AuthorityConfirmationElectronicPoAAttached
	AuthorityConfirmationElectronicPoAInStorage
	AuthorityConfirmationPaperPoA
	AuthorityConfirmationOther
)

// SignatureType is the ТипПодпис code of a signer
type SignatureType int

// Signature types
const (
	SignatureTypeQualified SignatureType = iota + 1
	SignatureTypeSimple
	SignatureTypeUnqualified
)

// OperationCode is the КодИтога of an acceptance
type OperationCode int

// Acceptance results
const (
	OperationCodeAccepted OperationCode = iota + 1
	OperationCodeAcceptedWithDiscrepancies
	OperationCodeRejected
)

// DiscrepancyDocumentCode is the ВидДокРасх of an acceptance
type DiscrepancyDocumentCode int

// Discrepancy document kinds; zero is never rendered
const (
	DiscrepancyDocumentNotSpecified DiscrepancyDocumentCode = iota
	_
	DiscrepancyDocumentAct
	DiscrepancyDocumentOther
)

// PaymentType is the ВидПлат of a state procurement payment
type PaymentType int

// Payment types; zero is never rendered
const (
	PaymentTypeNotSpecified PaymentType = iota
	PaymentTypePrepayment
	PaymentTypeFinal
	PaymentTypePartial
)

var paymentTypeLabels = map[PaymentType]string{
	PaymentTypePrepayment: "авансовый платеж",
	PaymentTypeFinal:      "окончательный платеж",
	PaymentTypePartial:    "частичный платеж",
}

// Label returns the human readable payment type
func (p PaymentType) Label() string {
	return paymentTypeLabels[p]
}

// FundType is the ВидСредств of a financial obligation
type FundType int

// Fund types; zero is never rendered
const (
	FundTypeNotSpecified FundType = iota
	FundTypeFederalBudget
	FundTypeRegionalBudget
	FundTypeMunicipalBudget
	FundTypeAdditionalBudget
	FundTypeOwnFunds
	FundTypeOther
)

var fundTypeLabels = map[FundType]string{
	FundTypeFederalBudget:    "средства федерального бюджета",
	FundTypeRegionalBudget:   "средства бюджета субъекта",
	FundTypeMunicipalBudget:  "средства местного бюджета",
	FundTypeAdditionalBudget: "средства государственного внебюджетного фонда",
	FundTypeOwnFunds:         "собственные средства учреждения",
	FundTypeOther:            "иные средства",
}

// Label returns the human readable fund type
func (f FundType) Label() string {
	return fundTypeLabels[f]
}
