package model

import (
	"fmt"
	"strings"
	"time"
)

// FullName is a person's surname, first name and optional patronymic (ФИО)
type FullName struct {
	Surname    string `json:"surname"`
	FirstName  string `json:"first_name"`
	Patronymic string `json:"patronymic,omitempty"`
}

// String joins the non-empty name parts with spaces
func (n FullName) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{n.Surname, n.FirstName, n.Patronymic} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Organization is an economic entity taking part in a document:
// seller, buyer, shipper, consignee, factor, carrier or document creator.
type Organization struct {
	OKPO           string `json:"okpo,omitempty"`
	OPFCode        string `json:"opf_code,omitempty"`
	OPFName        string `json:"opf_name,omitempty"`
	Department     string `json:"department,omitempty"`
	AdditionalInfo string `json:"additional_info,omitempty"`
	ShortName      string `json:"short_name,omitempty"`

	Identity    Identity     `json:"-"`
	Address     *Address     `json:"address,omitempty"`
	Contact     *Contact     `json:"contact,omitempty"`
	BankAccount *BankAccount `json:"bank_account,omitempty"`
}

// Identity is the identifying information of an organization (ИдСв).
// Exactly one of LegalPerson, IndividualEntrepreneur, PhysicalPerson
// or ForeignEntity.
type Identity interface {
	isIdentity()
}

// LegalPerson is a legal entity registered in Russia (СвЮЛУч)
type LegalPerson struct {
	Name string `json:"name"`
	INN  string `json:"inn,omitempty"`
	KPP  string `json:"kpp,omitempty"`
	// HyphenINN renders the "-" placeholder instead of INN (5.01 only)
	HyphenINN bool `json:"hyphen_inn,omitempty"`
}

// IndividualEntrepreneur is a registered sole proprietor (СвИП)
type IndividualEntrepreneur struct {
	FullName
	INN                     string     `json:"inn,omitempty"`
	HyphenINN               bool       `json:"hyphen_inn,omitempty"`
	RegistrationCertificate string     `json:"registration_certificate,omitempty"`
	OGRNIP                  string     `json:"ogrnip,omitempty"`
	OGRNIPDate              *time.Time `json:"ogrnip_date,omitempty"`
	OtherInfo               string     `json:"other_info,omitempty"`
}

// PhysicalPerson is a private individual taking part in the deal (СвФЛУчастФХЖ / СвФЛУч)
type PhysicalPerson struct {
	FullName
	INN                     string `json:"inn,omitempty"`
	RegistrationCertificate string `json:"registration_certificate,omitempty"`
	Status                  string `json:"status,omitempty"`
	OtherInfo               string `json:"other_info,omitempty"`
}

// ForeignEntity is an entity not registered with the Russian tax authority (СвИнНеУч, ДаннИно)
type ForeignEntity struct {
	Name        string `json:"name"`
	Status      string `json:"status,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	CountryName string `json:"country_name,omitempty"`
	Identifier  string `json:"identifier,omitempty"`
	OtherInfo   string `json:"other_info,omitempty"`
}

func (*LegalPerson) isIdentity()            {}
func (*IndividualEntrepreneur) isIdentity() {}
func (*PhysicalPerson) isIdentity()         {}
func (*ForeignEntity) isIdentity()          {}

// Address is the postal address of an organization
type Address struct {
	// GLN is the global location number (5.03 only)
	GLN  string      `json:"gln,omitempty"`
	Kind AddressKind `json:"-"`
}

// AddressKind is one of RussianAddress, ForeignAddress or StateAddress
type AddressKind interface {
	isAddressKind()
}

// RussianAddress is a structured address inside Russia (АдрРФ)
type RussianAddress struct {
	ZipCode    string `json:"zip_code,omitempty"`
	RegionCode string `json:"region_code"`
	RegionName string `json:"region_name,omitempty"`
	Territory  string `json:"territory,omitempty"`
	City       string `json:"city,omitempty"`
	Locality   string `json:"locality,omitempty"`
	Street     string `json:"street,omitempty"`
	Building   string `json:"building,omitempty"`
	Block      string `json:"block,omitempty"`
	Apartment  string `json:"apartment,omitempty"`
	OtherInfo  string `json:"other_info,omitempty"`
}

// ForeignAddress is a free-form address outside Russia (АдрИнф)
type ForeignAddress struct {
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name,omitempty"`
	Address     string `json:"address"`
}

// StateAddress is an address from the state address register.
// Version 5.01 renders only UniqueCode (КодГАР); 5.03 renders the full АдрГАР.
type StateAddress struct {
	UniqueCode        string                   `json:"unique_code"`
	ZipCode           string                   `json:"zip_code,omitempty"`
	Region            string                   `json:"region,omitempty"`
	RegionName        string                   `json:"region_name,omitempty"`
	MunicipalDistrict *CodedAddressElement     `json:"municipal_district,omitempty"`
	UrbanSettlement   *CodedAddressElement     `json:"urban_settlement,omitempty"`
	Settlement        *TypedAddressElement     `json:"settlement,omitempty"`
	PlanningStructure *TypedAddressElement     `json:"planning_structure,omitempty"`
	Street            *TypedAddressElement     `json:"street,omitempty"`
	LandPlot          string                   `json:"land_plot,omitempty"`
	Buildings         []NumberedAddressElement `json:"buildings,omitempty"`
	Premises          *NumberedAddressElement  `json:"premises,omitempty"`
	Apartment         *NumberedAddressElement  `json:"apartment,omitempty"`
}

// CodedAddressElement is an address element with a kind code (ВидКод)
type CodedAddressElement struct {
	KindCode string `json:"kind_code"`
	Name     string `json:"name"`
}

// TypedAddressElement is an address element with a kind name
type TypedAddressElement struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// NumberedAddressElement is a building or room with its number
type NumberedAddressElement struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

func (*RussianAddress) isAddressKind() {}
func (*ForeignAddress) isAddressKind() {}
func (*StateAddress) isAddressKind()   {}

// Contact holds phones and e-mails. Version 5.01 renders the first of each.
type Contact struct {
	Phones    []string `json:"phones,omitempty"`
	Emails    []string `json:"emails,omitempty"`
	OtherInfo string   `json:"other_info,omitempty"`
}

// BankAccount holds the settlement account and its bank (БанкРекв)
type BankAccount struct {
	Number string `json:"number,omitempty"`
	Bank   *Bank  `json:"bank,omitempty"`
}

// Bank describes the servicing bank (СвБанк)
type Bank struct {
	Name                 string `json:"name,omitempty"`
	BIC                  string `json:"bic,omitempty"`
	CorrespondentAccount string `json:"correspondent_account,omitempty"`
}

// EdmParticipant identifies a document exchange subscriber
type EdmParticipant struct {
	OperatorID    string `json:"operator_id"`
	ParticipantID string `json:"participant_id"`
}

// FullID is the operator prefix followed by the participant id
func (p EdmParticipant) FullID() string {
	return p.OperatorID + p.ParticipantID
}

// EdmOperator describes the exchange operator of the sender (СвОЭДОтпр)
type EdmOperator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	INN  string `json:"inn"`
}

// EconomicEntityName returns the НаимЭконСубСост value for the document creator
func EconomicEntityName(org *Organization) (string, error) {
	if org == nil {
		return "", NewRequiredError("creator", "document creator is not set")
	}
	switch id := org.Identity.(type) {
	case *LegalPerson:
		switch {
		case id.INN != "" && id.KPP != "":
			return fmt.Sprintf("%s, ИНН/КПП: %s/%s", id.Name, id.INN, id.KPP), nil
		case id.INN != "":
			return fmt.Sprintf("%s, ИНН: %s", id.Name, id.INN), nil
		default:
			return id.Name, nil
		}
	case *IndividualEntrepreneur:
		return withINN("ИП "+id.FullName.String(), id.INN), nil
	case *PhysicalPerson:
		return withINN(id.FullName.String(), id.INN), nil
	case *ForeignEntity:
		return id.Name, nil
	default:
		return "", NewMissingVariantError("creator.identity", "Не указаны идентификационные сведения организации.")
	}
}

func withINN(name, inn string) string {
	if inn == "" {
		return name
	}
	return name + ", ИНН: " + inn
}

// IdentityINN returns the taxpayer number of the organization, if any
func IdentityINN(org *Organization) string {
	if org == nil {
		return ""
	}
	switch id := org.Identity.(type) {
	case *LegalPerson:
		return id.INN
	case *IndividualEntrepreneur:
		return id.INN
	case *PhysicalPerson:
		return id.INN
	default:
		return ""
	}
}
