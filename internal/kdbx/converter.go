// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package kdbx

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tobischo/gokeepasslib/v3"
	"github.com/tobischo/gokeepasslib/v3/wrappers"

	"github.com/MKhiriev/go-cxf/internal/utils"
	"github.com/MKhiriev/go-cxf/models"
)

// Standard KeePass entry keys.
const (
	keyTitle    = "Title"
	keyUserName = "UserName"
	keyPassword = "Password"
	keyURL      = "URL"
	keyNotes    = "Notes"
	keyOTP      = "otp"
)

var standardKeys = map[string]struct{}{
	keyTitle: {}, keyUserName: {}, keyPassword: {}, keyURL: {}, keyNotes: {}, keyOTP: {},
}

// Options describe the account a KeePass database is exported as.
type Options struct {
	ExporterRpID        string
	ExporterDisplayName string
	Username            string
	Email               string

	// Attachments receives entry attachments. When nil, attachments are
	// still described by file credentials but their content is dropped.
	Attachments AttachmentSink
}

// Converter turns a KeePass database into a CXF document.
type Converter struct {
	ids *utils.IDGenerator
	now func() time.Time
}

func NewConverter() *Converter {
	return &Converter{ids: utils.NewIDGenerator(), now: time.Now}
}

// ToHeader converts db into a document holding one account. Entries become
// items; every group below the root becomes a collection linking the items
// it contains, nested like the groups. Item and collection ids are derived
// from the KeePass UUIDs, so converting the same database twice yields the
// same ids.
func (c *Converter) ToHeader(db *gokeepasslib.Database, opts Options) (*models.Header, error) {
	if db == nil || db.Content == nil || db.Content.Root == nil {
		return nil, ErrNoContent
	}

	account := models.Account{
		Username:    opts.Username,
		Email:       opts.Email,
		Collections: []models.Collection{},
		Items:       []models.Item{},
	}
	if db.Content.Meta != nil {
		if account.Username == "" {
			account.Username = db.Content.Meta.DefaultUserName
		}
		account.FullName = db.Content.Meta.DatabaseName
	}

	groups := db.Content.Root.Groups
	switch {
	case len(groups) == 1:
		account.ID = utils.FromUUID(groups[0].UUID)
		// the root group itself is not a collection
		for _, sub := range groups[0].Groups {
			account.Collections = append(account.Collections, toCollection(sub))
		}
	default:
		account.ID = c.ids.Generate()
		for _, g := range groups {
			account.Collections = append(account.Collections, toCollection(g))
		}
	}

	contents, err := binaryContents(db)
	if err != nil {
		return nil, err
	}

	for _, entry := range allEntries(groups) {
		item, err := toItem(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", entry.GetTitle(), err)
		}
		files, err := fileCredentials(entry, contents, opts.Attachments)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", entry.GetTitle(), err)
		}
		item.Credentials = append(item.Credentials, files...)
		account.Items = append(account.Items, item)
	}

	return &models.Header{
		Version:             models.CurrentVersion,
		ExporterRpID:        opts.ExporterRpID,
		ExporterDisplayName: opts.ExporterDisplayName,
		Timestamp:           models.NewTimestamp(c.now()),
		Accounts:            []models.Account{account},
	}, nil
}

func toCollection(group gokeepasslib.Group) models.Collection {
	collection := models.Collection{
		ID:    utils.FromUUID(group.UUID),
		Title: group.Name,
		Items: make([]models.LinkedItem, 0, len(group.Entries)),
	}
	for _, entry := range group.Entries {
		collection.Items = append(collection.Items, models.LinkedItem{Item: utils.FromUUID(entry.UUID)})
	}
	for _, sub := range group.Groups {
		collection.SubCollections = append(collection.SubCollections, toCollection(sub))
	}
	return collection
}

func toItem(entry gokeepasslib.Entry) (models.Item, error) {
	item := models.Item{
		ID:          utils.FromUUID(entry.UUID),
		Title:       entry.GetContent(keyTitle),
		CreationAt:  timestamp(entry.Times.CreationTime),
		ModifiedAt:  timestamp(entry.Times.LastModificationTime),
		Credentials: models.Credentials{},
		Tags:        splitTags(entry.Tags),
	}

	username, password := entry.GetContent(keyUserName), entry.GetContent(keyPassword)
	if username != "" || password != "" {
		basic := &models.BasicAuthCredential{}
		if username != "" {
			basic.Username = models.NewField(models.EditableFieldString(username))
		}
		if password != "" {
			basic.Password = models.NewField(models.EditableFieldConcealedString(password))
		}
		item.Credentials = append(item.Credentials, basic)
		item.Type = models.ItemTypeLogin
	}

	if u := strings.TrimSpace(entry.GetContent(keyURL)); u != "" {
		item.Scope = &models.CredentialScope{URLs: []string{u}, AndroidApps: []models.AndroidAppIDCredential{}}
	}

	if otp := strings.TrimSpace(entry.GetContent(keyOTP)); otp != "" {
		totp, err := parseOTPAuth(otp)
		if err != nil {
			return models.Item{}, err
		}
		item.Credentials = append(item.Credentials, totp)
		item.Type = models.ItemTypeLogin
	}

	if notes := entry.GetContent(keyNotes); notes != "" {
		item.Credentials = append(item.Credentials, &models.NoteCredential{
			Content: models.EditableField[models.EditableFieldString]{Value: models.EditableFieldString(notes)},
		})
		if item.Type == "" {
			item.Type = models.ItemTypeDocument
		}
	}

	var fields models.CustomFieldList
	for _, v := range entry.Values {
		if _, ok := standardKeys[v.Key]; ok {
			continue
		}
		if v.Value.Protected.Bool {
			field := models.NewField(models.EditableFieldConcealedString(v.Value.Content))
			field.Label = v.Key
			fields = append(fields, field)
			continue
		}
		field := models.NewField(models.EditableFieldString(v.Value.Content))
		field.Label = v.Key
		fields = append(fields, field)
	}
	if len(fields) > 0 {
		item.Credentials = append(item.Credentials, &models.CustomFieldsCredential{Fields: fields})
	}

	return item, nil
}

// parseOTPAuth reads an otpauth://totp/ URI as written by KeePassXC.
func parseOTPAuth(raw string) (*models.TotpCredential, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid otp uri: %w", err)
	}
	if u.Scheme != "otpauth" || u.Host != "totp" {
		return nil, fmt.Errorf("unsupported otp uri %q", u.Scheme+"://"+u.Host)
	}

	q := u.Query()
	secret, err := models.ParseBase32(q.Get("secret"))
	if err != nil {
		return nil, fmt.Errorf("otp secret: %w", err)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("otp uri without secret")
	}

	totp := &models.TotpCredential{
		Secret:    secret,
		Period:    30,
		Digits:    6,
		Algorithm: models.OTPHashAlgorithmSha1,
		Issuer:    q.Get("issuer"),
	}

	label := strings.TrimPrefix(u.Path, "/")
	if issuer, account, ok := strings.Cut(label, ":"); ok {
		if totp.Issuer == "" {
			totp.Issuer = issuer
		}
		totp.Username = strings.TrimSpace(account)
	} else {
		totp.Username = label
	}

	if p := q.Get("period"); p != "" {
		period, err := strconv.ParseUint(p, 10, 8)
		if err != nil || period == 0 {
			return nil, fmt.Errorf("invalid otp period %q", p)
		}
		totp.Period = uint8(period)
	}
	if d := q.Get("digits"); d != "" {
		digits, err := strconv.ParseUint(d, 10, 8)
		if err != nil || digits == 0 {
			return nil, fmt.Errorf("invalid otp digits %q", d)
		}
		totp.Digits = uint8(digits)
	}
	if a := q.Get("algorithm"); a != "" {
		totp.Algorithm = models.OTPHashAlgorithm(strings.ToLower(a))
	}

	return totp, nil
}

func timestamp(t *wrappers.TimeWrapper) *models.Timestamp {
	if t == nil || t.Time.IsZero() {
		return nil
	}
	return models.NewTimestamp(t.Time).Ptr()
}

func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	var out []string
	for _, tag := range strings.FieldsFunc(tags, func(r rune) bool { return r == ';' || r == ',' }) {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
