// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldType is the wire tag that describes the value of an editable field.
// Values not listed below are retained verbatim so that documents from newer
// producers survive a round trip.
type FieldType string

const (
	FieldTypeString                  FieldType = "string"
	FieldTypeConcealedString         FieldType = "concealed-string"
	FieldTypeEmail                   FieldType = "email"
	FieldTypeNumber                  FieldType = "number"
	FieldTypeBoolean                 FieldType = "boolean"
	FieldTypeDate                    FieldType = "date"
	FieldTypeYearMonth               FieldType = "year-month"
	FieldTypeWifiNetworkSecurityType FieldType = "wifi-network-security-type"
	FieldTypeSubdivisionCode         FieldType = "subdivision-code"
	FieldTypeCountryCode             FieldType = "country-code"
)

// IsKnown reports whether t is one of the field types defined by this package.
func (t FieldType) IsKnown() bool {
	switch t {
	case FieldTypeString, FieldTypeConcealedString, FieldTypeEmail, FieldTypeNumber,
		FieldTypeBoolean, FieldTypeDate, FieldTypeYearMonth, FieldTypeWifiNetworkSecurityType,
		FieldTypeSubdivisionCode, FieldTypeCountryCode:
		return true
	}
	return false
}

// FieldValue is implemented by every value kind an EditableField can carry.
// The returned tag is intrinsic to the Go type, never stored separately.
type FieldValue interface {
	FieldType() FieldType
}

// EditableFieldString is a plain UTF-8 string.
type EditableFieldString string

func (EditableFieldString) FieldType() FieldType { return FieldTypeString }

// EditableFieldConcealedString is a secret string that importers should hide by default.
type EditableFieldConcealedString string

func (EditableFieldConcealedString) FieldType() FieldType { return FieldTypeConcealedString }

// EditableFieldEmail is an email address.
type EditableFieldEmail string

func (EditableFieldEmail) FieldType() FieldType { return FieldTypeEmail }

// EditableFieldSubdivisionCode is an ISO 3166-2 subdivision code.
type EditableFieldSubdivisionCode string

func (EditableFieldSubdivisionCode) FieldType() FieldType { return FieldTypeSubdivisionCode }

// EditableFieldCountryCode is an ISO 3166-1 alpha-2 country code.
type EditableFieldCountryCode string

func (EditableFieldCountryCode) FieldType() FieldType { return FieldTypeCountryCode }

// EditableFieldNumber is a number carried on the wire as its decimal string.
type EditableFieldNumber float64

func (EditableFieldNumber) FieldType() FieldType { return FieldTypeNumber }

func (n EditableFieldNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatFloat(float64(n), 'f', -1, 64))
}

func (n *EditableFieldNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	*n = EditableFieldNumber(f)
	return nil
}

// EditableFieldBoolean is encoded as the string "true" or "false".
// Decoding ignores surrounding whitespace and letter case.
type EditableFieldBoolean bool

func (EditableFieldBoolean) FieldType() FieldType { return FieldTypeBoolean }

func (b EditableFieldBoolean) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatBool(bool(b)))
}

func (b *EditableFieldBoolean) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		*b = true
	case "false":
		*b = false
	default:
		return ErrInvalidBoolean
	}
	return nil
}

const dateLayout = "2006-01-02"

// EditableFieldDate is a calendar date without time zone, encoded as YYYY-MM-DD.
type EditableFieldDate struct {
	time.Time
}

// NewDate returns the date y-m-d.
func NewDate(y int, m time.Month, d int) EditableFieldDate {
	return EditableFieldDate{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (EditableFieldDate) FieldType() FieldType { return FieldTypeDate }

func (d EditableFieldDate) String() string {
	return d.Format(dateLayout)
}

func (d EditableFieldDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *EditableFieldDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	d.Time = t
	return nil
}

// EditableFieldYearMonth is a year and month, encoded as YYYY-MM.
type EditableFieldYearMonth struct {
	Year  uint16
	Month time.Month
}

func (EditableFieldYearMonth) FieldType() FieldType { return FieldTypeYearMonth }

func (ym EditableFieldYearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym EditableFieldYearMonth) MarshalJSON() ([]byte, error) {
	return json.Marshal(ym.String())
}

func (ym *EditableFieldYearMonth) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseYearMonth(s)
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}

// ParseYearMonth parses "YYYY-MM". Any other separator or a missing
// component is an error.
func ParseYearMonth(s string) (EditableFieldYearMonth, error) {
	parts := strings.SplitN(s, "-", 2)

	year, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return EditableFieldYearMonth{}, ErrMissingYear
	}
	if len(parts) < 2 {
		return EditableFieldYearMonth{}, ErrInvalidMonth
	}
	month, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil || month < 1 || month > 12 {
		return EditableFieldYearMonth{}, ErrInvalidMonth
	}

	return EditableFieldYearMonth{Year: uint16(year), Month: time.Month(month)}, nil
}

// EditableFieldWifiNetworkSecurityType is the security mode of a Wi-Fi network.
// Unrecognised modes are kept as-is.
type EditableFieldWifiNetworkSecurityType string

const (
	WifiSecurityUnsecured    EditableFieldWifiNetworkSecurityType = "unsecured"
	WifiSecurityWpaPersonal  EditableFieldWifiNetworkSecurityType = "wpa-personal"
	WifiSecurityWpa2Personal EditableFieldWifiNetworkSecurityType = "wpa2-personal"
	WifiSecurityWpa3Personal EditableFieldWifiNetworkSecurityType = "wpa3-personal"
	WifiSecurityWep          EditableFieldWifiNetworkSecurityType = "wep"
)

func (EditableFieldWifiNetworkSecurityType) FieldType() FieldType {
	return FieldTypeWifiNetworkSecurityType
}

// IsKnown reports whether w is one of the predefined security modes.
func (w EditableFieldWifiNetworkSecurityType) IsKnown() bool {
	switch w {
	case WifiSecurityUnsecured, WifiSecurityWpaPersonal, WifiSecurityWpa2Personal,
		WifiSecurityWpa3Personal, WifiSecurityWep:
		return true
	}
	return false
}
