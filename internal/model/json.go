package model

import (
	"encoding/json"
)

// Tagged unions are encoded as an object holding exactly one variant key,
// e.g. {"identity": {"legal_person": {...}}}. An absent or empty object
// decodes to a nil variant, which the renderers reject where one is required.

func single[T any](field string, found []T) (T, error) {
	var zero T
	switch len(found) {
	case 0:
		return zero, nil
	case 1:
		return found[0], nil
	default:
		return zero, NewValidationError(field, len(found), RuleAmbiguous, "more than one variant is set")
	}
}

type identityJSON struct {
	LegalPerson            *LegalPerson            `json:"legal_person,omitempty"`
	IndividualEntrepreneur *IndividualEntrepreneur `json:"individual_entrepreneur,omitempty"`
	PhysicalPerson         *PhysicalPerson         `json:"physical_person,omitempty"`
	ForeignEntity          *ForeignEntity          `json:"foreign_entity,omitempty"`
}

func wrapIdentity(id Identity) *identityJSON {
	switch v := id.(type) {
	case *LegalPerson:
		return &identityJSON{LegalPerson: v}
	case *IndividualEntrepreneur:
		return &identityJSON{IndividualEntrepreneur: v}
	case *PhysicalPerson:
		return &identityJSON{PhysicalPerson: v}
	case *ForeignEntity:
		return &identityJSON{ForeignEntity: v}
	default:
		return nil
	}
}

func (j *identityJSON) unwrap() (Identity, error) {
	if j == nil {
		return nil, nil
	}
	var found []Identity
	if j.LegalPerson != nil {
		found = append(found, j.LegalPerson)
	}
	if j.IndividualEntrepreneur != nil {
		found = append(found, j.IndividualEntrepreneur)
	}
	if j.PhysicalPerson != nil {
		found = append(found, j.PhysicalPerson)
	}
	if j.ForeignEntity != nil {
		found = append(found, j.ForeignEntity)
	}
	return single("identity", found)
}

// MarshalJSON encodes the identity union under "identity"
func (o Organization) MarshalJSON() ([]byte, error) {
	type plain Organization
	return json.Marshal(struct {
		plain
		Identity *identityJSON `json:"identity,omitempty"`
	}{plain(o), wrapIdentity(o.Identity)})
}

// UnmarshalJSON decodes the identity union from "identity"
func (o *Organization) UnmarshalJSON(data []byte) error {
	type plain Organization
	if err := json.Unmarshal(data, (*plain)(o)); err != nil {
		return err
	}
	var aux struct {
		Identity *identityJSON `json:"identity"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, err := aux.Identity.unwrap()
	if err != nil {
		return err
	}
	o.Identity = id
	return nil
}

type addressKindJSON struct {
	Russian *RussianAddress `json:"russian,omitempty"`
	Foreign *ForeignAddress `json:"foreign,omitempty"`
	State   *StateAddress   `json:"state,omitempty"`
}

// MarshalJSON encodes the address variant under its own key
func (a Address) MarshalJSON() ([]byte, error) {
	type plain Address
	aux := struct {
		plain
		addressKindJSON
	}{plain: plain(a)}
	switch v := a.Kind.(type) {
	case *RussianAddress:
		aux.Russian = v
	case *ForeignAddress:
		aux.Foreign = v
	case *StateAddress:
		aux.State = v
	}
	return json.Marshal(aux)
}

// UnmarshalJSON decodes the address variant
func (a *Address) UnmarshalJSON(data []byte) error {
	type plain Address
	if err := json.Unmarshal(data, (*plain)(a)); err != nil {
		return err
	}
	var aux addressKindJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var found []AddressKind
	if aux.Russian != nil {
		found = append(found, aux.Russian)
	}
	if aux.Foreign != nil {
		found = append(found, aux.Foreign)
	}
	if aux.State != nil {
		found = append(found, aux.State)
	}
	kind, err := single("address", found)
	if err != nil {
		return err
	}
	a.Kind = kind
	return nil
}

type creatorJSON struct {
	LegalEntityINN string         `json:"legal_entity_inn,omitempty"`
	IndividualINN  string         `json:"individual_inn,omitempty"`
	ForeignEntity  *ForeignEntity `json:"foreign_entity,omitempty"`
	AuthorityName  string         `json:"authority_name,omitempty"`
}

// MarshalJSON encodes document creators as single-key objects
func (d DocumentRef) MarshalJSON() ([]byte, error) {
	type plain DocumentRef
	creators := make([]creatorJSON, 0, len(d.Creators))
	for _, c := range d.Creators {
		switch v := c.(type) {
		case LegalEntityINN:
			creators = append(creators, creatorJSON{LegalEntityINN: string(v)})
		case IndividualINN:
			creators = append(creators, creatorJSON{IndividualINN: string(v)})
		case *ForeignEntity:
			creators = append(creators, creatorJSON{ForeignEntity: v})
		case AuthorityName:
			creators = append(creators, creatorJSON{AuthorityName: string(v)})
		}
	}
	aux := struct {
		plain
		Creators []creatorJSON `json:"creators,omitempty"`
	}{plain: plain(d)}
	if len(creators) > 0 {
		aux.Creators = creators
	}
	return json.Marshal(aux)
}

// UnmarshalJSON decodes document creators
func (d *DocumentRef) UnmarshalJSON(data []byte) error {
	type plain DocumentRef
	if err := json.Unmarshal(data, (*plain)(d)); err != nil {
		return err
	}
	var aux struct {
		Creators []creatorJSON `json:"creators"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Creators = nil
	for _, c := range aux.Creators {
		var found []DocumentCreator
		if c.LegalEntityINN != "" {
			found = append(found, LegalEntityINN(c.LegalEntityINN))
		}
		if c.IndividualINN != "" {
			found = append(found, IndividualINN(c.IndividualINN))
		}
		if c.ForeignEntity != nil {
			found = append(found, c.ForeignEntity)
		}
		if c.AuthorityName != "" {
			found = append(found, AuthorityName(c.AuthorityName))
		}
		creator, err := single("creators", found)
		if err != nil {
			return err
		}
		if creator != nil {
			d.Creators = append(d.Creators, creator)
		}
	}
	return nil
}

type representativeJSON struct {
	Employee                   *Employee                   `json:"employee,omitempty"`
	OrganizationRepresentative *OrganizationRepresentative `json:"organization_representative,omitempty"`
	AuthorizedPerson           *AuthorizedPerson           `json:"authorized_person,omitempty"`
}

func wrapRepresentative(r Representative) *representativeJSON {
	switch v := r.(type) {
	case *Employee:
		return &representativeJSON{Employee: v}
	case *OrganizationRepresentative:
		return &representativeJSON{OrganizationRepresentative: v}
	case *AuthorizedPerson:
		return &representativeJSON{AuthorizedPerson: v}
	default:
		return nil
	}
}

func (j *representativeJSON) unwrap(field string) (Representative, error) {
	if j == nil {
		return nil, nil
	}
	var found []Representative
	if j.Employee != nil {
		found = append(found, j.Employee)
	}
	if j.OrganizationRepresentative != nil {
		found = append(found, j.OrganizationRepresentative)
	}
	if j.AuthorizedPerson != nil {
		found = append(found, j.AuthorizedPerson)
	}
	return single(field, found)
}

// MarshalJSON encodes the sender union under "sender"
func (t TransferInfo) MarshalJSON() ([]byte, error) {
	type plain TransferInfo
	return json.Marshal(struct {
		plain
		Sender *representativeJSON `json:"sender,omitempty"`
	}{plain(t), wrapRepresentative(t.Sender)})
}

// UnmarshalJSON decodes the sender union
func (t *TransferInfo) UnmarshalJSON(data []byte) error {
	type plain TransferInfo
	if err := json.Unmarshal(data, (*plain)(t)); err != nil {
		return err
	}
	var aux struct {
		Sender *representativeJSON `json:"sender"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	sender, err := aux.Sender.unwrap("transfer.sender")
	if err != nil {
		return err
	}
	t.Sender = sender
	return nil
}

// MarshalJSON encodes the receiver union under "receiver"
func (a AcceptanceInfo) MarshalJSON() ([]byte, error) {
	type plain AcceptanceInfo
	return json.Marshal(struct {
		plain
		Receiver *representativeJSON `json:"receiver,omitempty"`
	}{plain(a), wrapRepresentative(a.Receiver)})
}

// UnmarshalJSON decodes the receiver union
func (a *AcceptanceInfo) UnmarshalJSON(data []byte) error {
	type plain AcceptanceInfo
	if err := json.Unmarshal(data, (*plain)(a)); err != nil {
		return err
	}
	var aux struct {
		Receiver *representativeJSON `json:"receiver"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	receiver, err := aux.Receiver.unwrap("acceptance.receiver")
	if err != nil {
		return err
	}
	a.Receiver = receiver
	return nil
}

type signerKindJSON struct {
	LegalEntity   *LegalEntitySigner  `json:"legal_entity,omitempty"`
	Entrepreneur  *EntrepreneurSigner `json:"entrepreneur,omitempty"`
	PrivatePerson *PrivateSigner      `json:"private_person,omitempty"`
}

type powerOfAttorneyJSON struct {
	Electronic *ElectronicPowerOfAttorney `json:"electronic,omitempty"`
	Paper      *PaperPowerOfAttorney      `json:"paper,omitempty"`
}

// MarshalJSON encodes the signer kind and power of attorney unions
func (s Signer) MarshalJSON() ([]byte, error) {
	type plain Signer
	aux := struct {
		plain
		Kind            *signerKindJSON      `json:"kind,omitempty"`
		PowerOfAttorney *powerOfAttorneyJSON `json:"power_of_attorney,omitempty"`
	}{plain: plain(s)}
	switch v := s.Kind.(type) {
	case *LegalEntitySigner:
		aux.Kind = &signerKindJSON{LegalEntity: v}
	case *EntrepreneurSigner:
		aux.Kind = &signerKindJSON{Entrepreneur: v}
	case *PrivateSigner:
		aux.Kind = &signerKindJSON{PrivatePerson: v}
	}
	switch v := s.PowerOfAttorney.(type) {
	case *ElectronicPowerOfAttorney:
		aux.PowerOfAttorney = &powerOfAttorneyJSON{Electronic: v}
	case *PaperPowerOfAttorney:
		aux.PowerOfAttorney = &powerOfAttorneyJSON{Paper: v}
	}
	return json.Marshal(aux)
}

// UnmarshalJSON decodes the signer kind and power of attorney unions
func (s *Signer) UnmarshalJSON(data []byte) error {
	type plain Signer
	if err := json.Unmarshal(data, (*plain)(s)); err != nil {
		return err
	}
	var aux struct {
		Kind            *signerKindJSON      `json:"kind"`
		PowerOfAttorney *powerOfAttorneyJSON `json:"power_of_attorney"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.Kind = nil
	if aux.Kind != nil {
		var found []SignerKind
		if aux.Kind.LegalEntity != nil {
			found = append(found, aux.Kind.LegalEntity)
		}
		if aux.Kind.Entrepreneur != nil {
			found = append(found, aux.Kind.Entrepreneur)
		}
		if aux.Kind.PrivatePerson != nil {
			found = append(found, aux.Kind.PrivatePerson)
		}
		kind, err := single("signer.kind", found)
		if err != nil {
			return err
		}
		s.Kind = kind
	}

	s.PowerOfAttorney = nil
	if aux.PowerOfAttorney != nil {
		var found []PowerOfAttorney
		if aux.PowerOfAttorney.Electronic != nil {
			found = append(found, aux.PowerOfAttorney.Electronic)
		}
		if aux.PowerOfAttorney.Paper != nil {
			found = append(found, aux.PowerOfAttorney.Paper)
		}
		poa, err := single("signer.power_of_attorney", found)
		if err != nil {
			return err
		}
		s.PowerOfAttorney = poa
	}
	return nil
}
