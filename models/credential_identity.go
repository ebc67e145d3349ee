package models

// AddressCredential is a postal address.
type AddressCredential struct {
	StreetAddress *EditableField[EditableFieldString]          `json:"streetAddress,omitempty"`
	PostalCode    *EditableField[EditableFieldString]          `json:"postalCode,omitempty"`
	City          *EditableField[EditableFieldString]          `json:"city,omitempty"`
	Territory     *EditableField[EditableFieldSubdivisionCode] `json:"territory,omitempty"`
	Country       *EditableField[EditableFieldCountryCode]     `json:"country,omitempty"`
	Tel           *EditableField[EditableFieldString]          `json:"tel,omitempty"`
}

func (*AddressCredential) CredentialType() CredentialType { return CredentialTypeAddress }

type addressAlias AddressCredential

func (c AddressCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypeAddress), addressAlias(c))
}

func (c *AddressCredential) UnmarshalJSON(data []byte) error {
	var alias addressAlias
	if err := decodeStrict(data, &alias); err != nil {
		return err
	}
	*c = AddressCredential(alias)
	return nil
}

func (c *AddressCredential) visitExtensions(fn func(*Extensions)) {
	visitFields(fn, c.StreetAddress, c.PostalCode, c.City, c.Territory, c.Country, c.Tel)
}

// CreditCardCredential is a payment card.
type CreditCardCredential struct {
	Number             *EditableField[EditableFieldConcealedString] `json:"number,omitempty"`
	FullName           *EditableField[EditableFieldString]          `json:"fullName,omitempty"`
	CardType           *EditableField[EditableFieldString]          `json:"cardType,omitempty"`
	VerificationNumber *EditableField[EditableFieldConcealedString] `json:"verificationNumber,omitempty"`
	Pin                *EditableField[EditableFieldConcealedString] `json:"pin,omitempty"`
	ExpiryDate         *EditableField[EditableFieldYearMonth]       `json:"expiryDate,omitempty"`
	ValidFrom          *EditableField[EditableFieldYearMonth]       `json:"validFrom,omitempty"`
}

func (*CreditCardCredential) CredentialType() CredentialType { return CredentialTypeCreditCard }

type creditCardAlias CreditCardCredential

func (c CreditCardCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypeCreditCard), creditCardAlias(c))
}

func (c *CreditCardCredential) UnmarshalJSON(data []byte) error {
	var alias creditCardAlias
	if err := decodeStrict(data, &alias); err != nil {
		return err
	}
	*c = CreditCardCredential(alias)
	return nil
}

func (c *CreditCardCredential) visitExtensions(fn func(*Extensions)) {
	visitFields(fn, c.Number, c.FullName, c.CardType, c.VerificationNumber, c.Pin,
		c.ExpiryDate, c.ValidFrom)
}

// DriversLicenseCredential is a driving permit.
type DriversLicenseCredential struct {
	FullName         *EditableField[EditableFieldString]          `json:"fullName,omitempty"`
	BirthDate        *EditableField[EditableFieldDate]            `json:"birthDate,omitempty"`
	IssueDate        *EditableField[EditableFieldDate]            `json:"issueDate,omitempty"`
	ExpiryDate       *EditableField[EditableFieldDate]            `json:"expiryDate,omitempty"`
	IssuingAuthority *EditableField[EditableFieldString]          `json:"issuingAuthority,omitempty"`
	Territory        *EditableField[EditableFieldSubdivisionCode] `json:"territory,omitempty"`
	Country          *EditableField[EditableFieldCountryCode]     `json:"country,omitempty"`
	LicenseNumber    *EditableField[EditableFieldString]          `json:"licenseNumber,omitempty"`
	LicenseClass     *EditableField[EditableFieldString]          `json:"licenseClass,omitempty"`
}

func (*DriversLicenseCredential) CredentialType() CredentialType {
	return CredentialTypeDriversLicense
}

type driversLicenseAlias DriversLicenseCredential

func (c DriversLicenseCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypeDriversLicense), driversLicenseAlias(c))
}

func (c *DriversLicenseCredential) UnmarshalJSON(data []byte) error {
	var alias driversLicenseAlias
	if err := decodeStrict(data, &alias); err != nil {
		return err
	}
	*c = DriversLicenseCredential(alias)
	return nil
}

func (c *DriversLicenseCredential) visitExtensions(fn func(*Extensions)) {
	visitFields(fn, c.FullName, c.BirthDate, c.IssueDate, c.ExpiryDate, c.IssuingAuthority,
		c.Territory, c.Country, c.LicenseNumber, c.LicenseClass)
}

// IdentityDocumentCredential is a national identity card or a similar
// document identifying a person, such as a social security or tax number.
type IdentityDocumentCredential struct {
	IssuingCountry       *EditableField[EditableFieldCountryCode] `json:"issuingCountry,omitempty"`
	DocumentNumber       *EditableField[EditableFieldString]      `json:"documentNumber,omitempty"`
	IdentificationNumber *EditableField[EditableFieldString]      `json:"identificationNumber,omitempty"`
	Nationality          *EditableField[EditableFieldString]      `json:"nationality,omitempty"`
	FullName             *EditableField[EditableFieldString]      `json:"fullName,omitempty"`
	BirthDate            *EditableField[EditableFieldDate]        `json:"birthDate,omitempty"`
	BirthPlace           *EditableField[EditableFieldString]      `json:"birthPlace,omitempty"`
	Sex                  *EditableField[EditableFieldString]      `json:"sex,omitempty"`
	IssueDate            *EditableField[EditableFieldDate]        `json:"issueDate,omitempty"`
	ExpiryDate           *EditableField[EditableFieldDate]        `json:"expiryDate,omitempty"`
	IssuingAuthority     *EditableField[EditableFieldString]      `json:"issuingAuthority,omitempty"`
}

func (*IdentityDocumentCredential) CredentialType() CredentialType {
	return CredentialTypeIdentityDocument
}

type identityDocumentAlias IdentityDocumentCredential

func (c IdentityDocumentCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypeIdentityDocument), identityDocumentAlias(c))
}

func (c *IdentityDocumentCredential) UnmarshalJSON(data []byte) error {
	var alias identityDocumentAlias
	if err := decodeStrict(data, &alias); err != nil {
		return err
	}
	*c = IdentityDocumentCredential(alias)
	return nil
}

func (c *IdentityDocumentCredential) visitExtensions(fn func(*Extensions)) {
	visitFields(fn, c.IssuingCountry, c.DocumentNumber, c.IdentificationNumber, c.Nationality,
		c.FullName, c.BirthDate, c.BirthPlace, c.Sex, c.IssueDate, c.ExpiryDate, c.IssuingAuthority)
}

// PassportCredential is a travel document.
type PassportCredential struct {
	IssuingCountry               *EditableField[EditableFieldCountryCode] `json:"issuingCountry,omitempty"`
	PassportType                 *EditableField[EditableFieldString]      `json:"passportType,omitempty"`
	PassportNumber               *EditableField[EditableFieldString]      `json:"passportNumber,omitempty"`
	NationalIdentificationNumber *EditableField[EditableFieldString]      `json:"nationalIdentificationNumber,omitempty"`
	Nationality                  *EditableField[EditableFieldString]      `json:"nationality,omitempty"`
	FullName                     *EditableField[EditableFieldString]      `json:"fullName,omitempty"`
	BirthDate                    *EditableField[EditableFieldDate]        `json:"birthDate,omitempty"`
	BirthPlace                   *EditableField[EditableFieldString]      `json:"birthPlace,omitempty"`
	Sex                          *EditableField[EditableFieldString]      `json:"sex,omitempty"`
	IssueDate                    *EditableField[EditableFieldDate]        `json:"issueDate,omitempty"`
	ExpiryDate                   *EditableField[EditableFieldDate]        `json:"expiryDate,omitempty"`
	IssuingAuthority             *EditableField[EditableFieldString]      `json:"issuingAuthority,omitempty"`
}

func (*PassportCredential) CredentialType() CredentialType { return CredentialTypePassport }

type passportAlias PassportCredential

func (c PassportCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypePassport), passportAlias(c))
}

func (c *PassportCredential) UnmarshalJSON(data []byte) error {
	var alias passportAlias
	if err := decodeStrict(data, &alias); err != nil {
		return err
	}
	*c = PassportCredential(alias)
	return nil
}

func (c *PassportCredential) visitExtensions(fn func(*Extensions)) {
	visitFields(fn, c.IssuingCountry, c.PassportType, c.PassportNumber,
		c.NationalIdentificationNumber, c.Nationality, c.FullName, c.BirthDate, c.BirthPlace,
		c.Sex, c.IssueDate, c.ExpiryDate, c.IssuingAuthority)
}

// PersonNameCredential is the structured name of a person.
type PersonNameCredential struct {
	Title         *EditableField[EditableFieldString] `json:"title,omitempty"`
	Given         *EditableField[EditableFieldString] `json:"given,omitempty"`
	GivenInformal *EditableField[EditableFieldString] `json:"givenInformal,omitempty"`
	Given2        *EditableField[EditableFieldString] `json:"given2,omitempty"`
	SurnamePrefix *EditableField[EditableFieldString] `json:"surnamePrefix,omitempty"`
	Surname       *EditableField[EditableFieldString] `json:"surname,omitempty"`
	Surname2      *EditableField[EditableFieldString] `json:"surname2,omitempty"`
	Credentials   *EditableField[EditableFieldString] `json:"credentials,omitempty"`
	Generation    *EditableField[EditableFieldString] `json:"generation,omitempty"`
}

func (*PersonNameCredential) CredentialType() CredentialType { return CredentialTypePersonName }

type personNameAlias PersonNameCredential

func (c PersonNameCredential) MarshalJSON() ([]byte, error) {
	return marshalTagged("type", string(CredentialTypePersonName), personNameAlias(c))
}

func (c *PersonNameCredential) UnmarshalJSON(data []byte) error {
	var alias personNameAlias
	if err := decodeStrict(data, &alias); err != nil {
		return err
	}
	*c = PersonNameCredential(alias)
	return nil
}

func (c *PersonNameCredential) visitExtensions(fn func(*Extensions)) {
	visitFields(fn, c.Title, c.Given, c.GivenInformal, c.Given2, c.SurnamePrefix, c.Surname,
		c.Surname2, c.Credentials, c.Generation)
}
