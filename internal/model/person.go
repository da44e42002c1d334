package model

import "time"

// Representative is the person handing over (СвЛицПер) or accepting
// (СвЛицПрин) goods: an Employee, an OrganizationRepresentative or an
// AuthorizedPerson.
type Representative interface {
	isRepresentative()
}

// Employee works for the seller or the buyer (РабОргПрод / РабОргПок)
type Employee struct {
	FullName
	JobTitle      string `json:"job_title"`
	OtherInfo     string `json:"other_info,omitempty"`
	AuthorityBase string `json:"authority_base,omitempty"`
}

// OrganizationRepresentative works for a third party organization
// (ПредОргПер / ПредОргПрин). Version 5.01 renders the string bases,
// 5.03 the document references.
type OrganizationRepresentative struct {
	FullName
	JobTitle                 string       `json:"job_title"`
	OtherInfo                string       `json:"other_info,omitempty"`
	OrganizationName         string       `json:"organization_name"`
	OrganizationINN          string       `json:"organization_inn,omitempty"`
	OrganizationBase         string       `json:"organization_base,omitempty"`
	AuthorityBase            string       `json:"authority_base,omitempty"`
	OrganizationBaseDocument *DocumentRef `json:"organization_base_document,omitempty"`
	AuthorityBaseDocument    *DocumentRef `json:"authority_base_document,omitempty"`
}

// AuthorizedPerson is a private individual acting under a power of attorney (ФЛПер / ФЛПрин)
type AuthorizedPerson struct {
	FullName
	INN          string       `json:"inn,omitempty"`
	OtherInfo    string       `json:"other_info,omitempty"`
	Base         string       `json:"base,omitempty"`
	BaseDocument *DocumentRef `json:"base_document,omitempty"`
}

func (*Employee) isRepresentative()                   {}
func (*OrganizationRepresentative) isRepresentative() {}
func (*AuthorizedPerson) isRepresentative()           {}

// Signer is a person signing the document (Подписант).
// Authority, Status and the string bases are rendered by 5.01;
// JobTitle, SignatureType, SigningDate, AuthorityConfirmation,
// AdditionalInfo and PowerOfAttorney by 5.03.
type Signer struct {
	Authority        SignerAuthority `json:"authority"`
	Status           SignerStatus    `json:"status"`
	AuthorityBase    string          `json:"authority_base,omitempty"`
	OrgAuthorityBase string          `json:"org_authority_base,omitempty"`

	JobTitle              string                `json:"job_title,omitempty"`
	SignatureType         *SignatureType        `json:"signature_type,omitempty"`
	SigningDate           *time.Time            `json:"signing_date,omitempty"`
	AuthorityConfirmation AuthorityConfirmation `json:"authority_confirmation,omitempty"`
	AdditionalInfo        string                `json:"additional_info,omitempty"`

	Kind            SignerKind      `json:"-"`
	PowerOfAttorney PowerOfAttorney `json:"-"`
}

// SignerKind is one of LegalEntitySigner, EntrepreneurSigner or PrivateSigner
type SignerKind interface {
	isSignerKind()
	Name() FullName
}

// LegalEntitySigner signs on behalf of a legal entity (ЮЛ)
type LegalEntitySigner struct {
	FullName
	INN                     string `json:"inn"`
	OrganizationName        string `json:"organization_name,omitempty"`
	JobTitle                string `json:"job_title"`
	OtherInfo               string `json:"other_info,omitempty"`
	RegistrationCertificate string `json:"registration_certificate,omitempty"`
}

// EntrepreneurSigner is a sole proprietor signing for themselves (ИП)
type EntrepreneurSigner struct {
	FullName
	INN                     string `json:"inn,omitempty"`
	HyphenINN               bool   `json:"hyphen_inn,omitempty"`
	RegistrationCertificate string `json:"registration_certificate,omitempty"`
	OtherInfo               string `json:"other_info,omitempty"`
}

// PrivateSigner is a private individual (ФЛ)
type PrivateSigner struct {
	FullName
	INN                     string `json:"inn,omitempty"`
	RegistrationCertificate string `json:"registration_certificate,omitempty"`
	OtherInfo               string `json:"other_info,omitempty"`
}

func (*LegalEntitySigner) isSignerKind()  {}
func (*EntrepreneurSigner) isSignerKind() {}
func (*PrivateSigner) isSignerKind()      {}

func (s *LegalEntitySigner) Name() FullName  { return s.FullName }
func (s *EntrepreneurSigner) Name() FullName { return s.FullName }
func (s *PrivateSigner) Name() FullName      { return s.FullName }

// PowerOfAttorney is an ElectronicPowerOfAttorney or a PaperPowerOfAttorney
type PowerOfAttorney interface {
	isPowerOfAttorney()
}

// ElectronicPowerOfAttorney is a machine-readable power of attorney (СвДоверЭл)
type ElectronicPowerOfAttorney struct {
	Number                   string     `json:"number"`
	IssueDate                time.Time  `json:"issue_date"`
	InternalNumber           string     `json:"internal_number,omitempty"`
	InternalRegistrationDate *time.Time `json:"internal_registration_date,omitempty"`
	StorageSystemID          string     `json:"storage_system_id"`
	StorageSystemURL         string     `json:"storage_system_url,omitempty"`
}

// PaperPowerOfAttorney is a paper power of attorney (СвДоверБум)
type PaperPowerOfAttorney struct {
	IssueDate      time.Time `json:"issue_date"`
	InternalNumber string    `json:"internal_number"`
	PrincipalInfo  string    `json:"principal_info,omitempty"`
	Principal      *FullName `json:"principal,omitempty"`
}

func (*ElectronicPowerOfAttorney) isPowerOfAttorney() {}
func (*PaperPowerOfAttorney) isPowerOfAttorney()      {}
