package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentRef references a supporting document. Version 5.01 renders
// Name, Number, Date, Info and ID (НаимОсн, НомОсн, ДатаОсн, ДопСвОсн,
// ИдентОсн); 5.03 renders every field as Рекв* attributes.
type DocumentRef struct {
	Name            string            `json:"name"`
	Number          string            `json:"number,omitempty"`
	Date            *time.Time        `json:"date,omitempty"`
	FileID          string            `json:"file_id,omitempty"`
	ID              string            `json:"id,omitempty"`
	StorageSystemID string            `json:"storage_system_id,omitempty"`
	SystemURL       string            `json:"system_url,omitempty"`
	Info            string            `json:"info,omitempty"`
	Creators        []DocumentCreator `json:"-"`
}

// DocumentCreator identifies who issued a referenced document (РеквИдРекСост):
// a LegalEntityINN, an IndividualINN, a *ForeignEntity or an AuthorityName.
type DocumentCreator interface {
	isDocumentCreator()
}

// LegalEntityINN is the taxpayer number of a legal entity
type LegalEntityINN string

// IndividualINN is the taxpayer number of an individual
type IndividualINN string

// AuthorityName is the name of a government body
type AuthorityName string

func (LegalEntityINN) isDocumentCreator() {}
func (IndividualINN) isDocumentCreator()  {}
func (AuthorityName) isDocumentCreator()  {}
func (*ForeignEntity) isDocumentCreator() {}

// PaymentDocument is a payment and settlement document (СвПРД)
type PaymentDocument struct {
	Number string           `json:"number,omitempty"`
	Date   *time.Time       `json:"date,omitempty"`
	Total  *decimal.Decimal `json:"total,omitempty"`
}

// InfoItem is one key/value pair of other economic information (ТекстИнф)
type InfoItem struct {
	ID    string `json:"id,omitempty"`
	Value string `json:"value,omitempty"`
}

// OtherEconomicInfo is the ИнфПолФХЖ block
type OtherEconomicInfo struct {
	FileID string     `json:"file_id,omitempty"`
	Items  []InfoItem `json:"items,omitempty"`
}

// Obligation is a kind of obligation the document settles (ВидОбяз)
type Obligation struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}

// StateContractInfo is the seller's state procurement information
// (ИнфПродГосЗакКазн / ИнфПродЗаГосКазн)
type StateContractInfo struct {
	ContractDate    time.Time `json:"contract_date"`
	ContractNumber  string    `json:"contract_number"`
	PersonalAccount string    `json:"personal_account,omitempty"`
	BudgetClassCode string    `json:"budget_class_code,omitempty"`
	TargetCode      string    `json:"target_code,omitempty"`
	TreasuryCode    string    `json:"treasury_code,omitempty"`
	TreasuryName    string    `json:"treasury_name,omitempty"`
}

// ParticipantsInfo is the ДопСвФХЖ1 block. Version 5.01 renders FormationType
// as ОбстФормСЧФ; 5.03 renders the field matching the document function.
type ParticipantsInfo struct {
	GovernmentContractID string               `json:"government_contract_id,omitempty"`
	FormationType        InvoiceFormationType `json:"formation_type,omitempty"`
	InvoiceTransferBasis string               `json:"invoice_transfer_basis,omitempty"`
	TransferBasis        string               `json:"transfer_basis,omitempty"`
	Obligations          []Obligation         `json:"obligations,omitempty"`
	StateContract        *StateContractInfo   `json:"state_contract,omitempty"`
	Factor               *Organization        `json:"factor,omitempty"`
	MonetaryClaim        *DocumentRef         `json:"monetary_claim,omitempty"`
	SupportingDocuments  []DocumentRef        `json:"supporting_documents,omitempty"`
}

// IsEmpty reports whether nothing in the block would be rendered
func (p *ParticipantsInfo) IsEmpty() bool {
	return p == nil || (p.GovernmentContractID == "" &&
		p.FormationType == InvoiceFormationNotSpecified &&
		p.InvoiceTransferBasis == "" &&
		p.TransferBasis == "" &&
		len(p.Obligations) == 0 &&
		p.StateContract == nil &&
		p.Factor == nil &&
		p.MonetaryClaim == nil &&
		len(p.SupportingDocuments) == 0)
}

// Waybill is a transport waybill (ТранНакл)
type Waybill struct {
	Number string    `json:"number"`
	Date   time.Time `json:"date"`
}

// Transportation describes the carriage of goods (ТранГруз / Тран)
type Transportation struct {
	Description      string        `json:"description,omitempty"`
	Waybills         []Waybill     `json:"waybills,omitempty"`
	Carrier          *Organization `json:"carrier,omitempty"`
	Incoterms        string        `json:"incoterms,omitempty"`
	IncotermsVersion string        `json:"incoterms_version,omitempty"`
}

// CreatedThing describes a thing created as the result of the work (СвПерВещи)
type CreatedThing struct {
	Date     *time.Time   `json:"date,omitempty"`
	Info     string       `json:"info,omitempty"`
	Document *DocumentRef `json:"document,omitempty"`
}

// TransferInfo is the handover block (СвПродПер)
type TransferInfo struct {
	OperationName     string             `json:"operation_name"`
	OperationType     string             `json:"operation_type,omitempty"`
	Date              *time.Time         `json:"date,omitempty"`
	StartDate         *time.Time         `json:"start_date,omitempty"`
	EndDate           *time.Time         `json:"end_date,omitempty"`
	BasisDocuments    []DocumentRef      `json:"basis_documents,omitempty"`
	Sender            Representative     `json:"-"`
	Transportation    *Transportation    `json:"transportation,omitempty"`
	CreatedThing      *CreatedThing      `json:"created_thing,omitempty"`
	OtherEconomicInfo *OtherEconomicInfo `json:"other_economic_info,omitempty"`
}

// SellerDocument is the seller part of a universal transfer document
type SellerDocument struct {
	Generation         Generation `json:"generation"`
	FileID             string     `json:"file_id"`
	ApplicationCreator string     `json:"application_creator"`
	TaxDocumentCode    string     `json:"tax_document_code,omitempty"`
	UID                string     `json:"uid,omitempty"`
	Function           Function   `json:"function"`
	EconomicName       string     `json:"economic_name,omitempty"`
	DocumentName       string     `json:"document_name,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`

	Sender              *EdmParticipant `json:"sender,omitempty"`
	Recipient           *EdmParticipant `json:"recipient,omitempty"`
	Operator            *EdmOperator    `json:"operator,omitempty"`
	Creator             *Organization   `json:"creator,omitempty"`
	CreatorBase         string          `json:"creator_base,omitempty"`
	CreatorBaseDocument *DocumentRef    `json:"creator_base_document,omitempty"`
	ApprovedStructure   string          `json:"approved_structure,omitempty"`

	Number                  string           `json:"number"`
	Date                    time.Time        `json:"date"`
	CurrencyCode            string           `json:"currency_code,omitempty"`
	CurrencyName            string           `json:"currency_name,omitempty"`
	CurrencyRate            *decimal.Decimal `json:"currency_rate,omitempty"`
	RevisionNumber          string           `json:"revision_number,omitempty"`
	RevisionDate            *time.Time       `json:"revision_date,omitempty"`
	HyphenRevisionNumber    bool             `json:"hyphen_revision_number,omitempty"`
	HyphenRevisionDate      bool             `json:"hyphen_revision_date,omitempty"`
	CorrectedSellerFileName string           `json:"corrected_seller_file_name,omitempty"`
	CorrectedBuyerFileName  string           `json:"corrected_buyer_file_name,omitempty"`

	Sellers           []Organization     `json:"sellers,omitempty"`
	Shippers          []Organization     `json:"shippers,omitempty"`
	Consignees        []Organization     `json:"consignees,omitempty"`
	Buyers            []Organization     `json:"buyers,omitempty"`
	PaymentDocuments  []PaymentDocument  `json:"payment_documents,omitempty"`
	ShipmentDocuments []DocumentRef      `json:"shipment_documents,omitempty"`
	ParticipantsInfo  *ParticipantsInfo  `json:"participants_info,omitempty"`
	OtherEconomicInfo *OtherEconomicInfo `json:"other_economic_info,omitempty"`

	Items    []InvoiceItem `json:"items"`
	Transfer *TransferInfo `json:"transfer,omitempty"`
	Signers  []Signer      `json:"signers"`
}

// EconomicNameOrDefault returns ПоФактХЖ, falling back to the function default
func (d *SellerDocument) EconomicNameOrDefault() string {
	if d.EconomicName != "" {
		return d.EconomicName
	}
	return d.Function.DefaultEconomicName()
}

// DocumentNameOrDefault returns НаимДокОпр, falling back to the function default
func (d *SellerDocument) DocumentNameOrDefault() string {
	if d.DocumentName != "" {
		return d.DocumentName
	}
	return d.Function.DefaultDocumentName()
}

// TaxDocumentCodeOrDefault returns КНД, falling back to 1115131
func (d *SellerDocument) TaxDocumentCodeOrDefault() string {
	if d.TaxDocumentCode != "" {
		return d.TaxDocumentCode
	}
	return SellerTaxDocumentCode
}

// IsCorrection reports whether the document corrects an earlier one
func (d *SellerDocument) IsCorrection() bool {
	return d.RevisionNumber != ""
}

// SignedDocument is a document body decoded to UTF-8 with its base64
// detached signature
type SignedDocument struct {
	Content   string `json:"content"`
	Signature string `json:"signature"`
}

// SellerDocumentInfo identifies the seller document a buyer document answers.
// Values are copied verbatim from the seller file.
type SellerDocumentInfo struct {
	FileID       string   `json:"file_id"`
	CreatedDate  string   `json:"created_date"`
	CreatedTime  string   `json:"created_time"`
	DocumentName string   `json:"document_name"`
	Function     Function `json:"function"`
	Number       string   `json:"number"`
	Date         string   `json:"date"`
	IsCorrection bool     `json:"is_correction"`
	Signatures   []string `json:"signatures,omitempty"`
}

// AcceptanceResult is the outcome of the acceptance (КодСодОпер)
type AcceptanceResult struct {
	Code                    OperationCode           `json:"code"`
	DiscrepancyDocumentName string                  `json:"discrepancy_document_name,omitempty"`
	DiscrepancyDocumentCode DiscrepancyDocumentCode `json:"discrepancy_document_code,omitempty"`
	DiscrepancyNumber       string                  `json:"discrepancy_number,omitempty"`
	DiscrepancyDate         *time.Time              `json:"discrepancy_date,omitempty"`
	DiscrepancyFileID       string                  `json:"discrepancy_file_id,omitempty"`
	DiscrepancyDocument     *DocumentRef            `json:"discrepancy_document,omitempty"`
}

// AcceptanceInfo is the acceptance block (СвПрин)
type AcceptanceInfo struct {
	OperationName string            `json:"operation_name,omitempty"`
	Date          *time.Time        `json:"date,omitempty"`
	Result        *AcceptanceResult `json:"result,omitempty"`
	Receiver      Representative    `json:"-"`
}

// FinancialObligation is one row of the buyer's financial obligations (ИнфСведДенОбяз)
type FinancialObligation struct {
	Row             int             `json:"row"`
	FAIPCode        string          `json:"faip_code,omitempty"`
	FundType        FundType        `json:"fund_type,omitempty"`
	BudgetClassCode string          `json:"budget_class_code"`
	TargetCode      string          `json:"target_code,omitempty"`
	Advance         decimal.Decimal `json:"advance"`
}

// BuyerStateProcurementInfo is the buyer's state procurement information
// (ИнфПокГосЗакКазн / ИнфПокЗаГоскКазн)
type BuyerStateProcurementInfo struct {
	PurchaseCode              string                `json:"purchase_code,omitempty"`
	PersonalAccount           string                `json:"personal_account"`
	FinancialAuthorityName    string                `json:"financial_authority_name"`
	RegisterNumber            string                `json:"register_number"`
	BudgetObligationNumber    string                `json:"budget_obligation_number,omitempty"`
	TreasuryCode              string                `json:"treasury_code,omitempty"`
	TreasuryName              string                `json:"treasury_name,omitempty"`
	MunicipalCode             string                `json:"municipal_code"`
	DeliveryMunicipalCode     string                `json:"delivery_municipal_code,omitempty"`
	PaymentDate               *time.Time            `json:"payment_date,omitempty"`
	FinancialObligationNumber string                `json:"financial_obligation_number,omitempty"`
	PaymentOrder              string                `json:"payment_order,omitempty"`
	PaymentType               PaymentType           `json:"payment_type,omitempty"`
	Obligations               []FinancialObligation `json:"obligations,omitempty"`
}

// BuyerDocument is the buyer part (acceptance) of a universal transfer document
type BuyerDocument struct {
	Generation         Generation `json:"generation"`
	FileID             string     `json:"file_id"`
	ApplicationCreator string     `json:"application_creator"`
	TaxDocumentCode    string     `json:"tax_document_code,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`

	Sender      *EdmParticipant `json:"sender,omitempty"`
	Recipient   *EdmParticipant `json:"recipient,omitempty"`
	Operator    *EdmOperator    `json:"operator,omitempty"`
	Creator     *Organization   `json:"creator,omitempty"`
	CreatorBase string          `json:"creator_base,omitempty"`

	// EdmDocumentID is the operator id of the seller document being acknowledged
	EdmDocumentID string              `json:"edm_document_id,omitempty"`
	SellerInfo    *SellerDocumentInfo `json:"seller_info,omitempty"`
	OperationType string              `json:"operation_type,omitempty"`

	Acceptance        AcceptanceInfo             `json:"acceptance"`
	OtherEconomicInfo *OtherEconomicInfo         `json:"other_economic_info,omitempty"`
	StateProcurement  *BuyerStateProcurementInfo `json:"state_procurement,omitempty"`

	Signers []Signer `json:"signers"`
}

// TaxDocumentCodeOrDefault returns КНД, falling back to 1115132
func (d *BuyerDocument) TaxDocumentCodeOrDefault() string {
	if d.TaxDocumentCode != "" {
		return d.TaxDocumentCode
	}
	return BuyerTaxDocumentCode
}
