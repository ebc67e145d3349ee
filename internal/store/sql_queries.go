package store

import (
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-cxf/models"
)

const (
	tableAccounts    = "accounts"
	tableItems       = "items"
	tableCredentials = "credentials"
	tableCollections = "collections"
)

var (
	accountColumns    = []string{"id", "username", "email", "full_name", "extensions", "exporter", "imported_at"}
	itemColumns       = []string{"account_id", "id", "position", "title", "item_type", "modified_at", "body"}
	credentialColumns = []string{"account_id", "item_id", "position", "type", "known", "body"}
	collectionColumns = []string{"account_id", "position", "id", "title", "body"}
)

// sqlQuery is a built statement ready to be executed.
type sqlQuery struct {
	sql  string
	args []any
}

type accountRow struct {
	ID         string
	Username   string
	Email      string
	FullName   string
	Extensions string
	Exporter   string
	ImportedAt int64
}

type itemRow struct {
	ID         string
	Position   int
	Title      string
	ItemType   string
	ModifiedAt any
	Body       string
}

type credentialRow struct {
	ItemID   string
	Position int
	Type     string
	Known    bool
	Body     string
}

type collectionRow struct {
	Position int
	ID       string
	Title    string
	Body     string
}

// accountRows is an account split into the rows of every table.
type accountRows struct {
	account     accountRow
	items       []itemRow
	credentials []credentialRow
	collections []collectionRow
}

// encodeAccount splits account into table rows. Item bodies are stored
// without their credentials; those live in the credentials table, one row
// each, and are put back in position order on load.
func encodeAccount(exporter string, account models.Account, importedAt time.Time) (accountRows, error) {
	rows := accountRows{
		account: accountRow{
			ID:         account.ID.String(),
			Username:   account.Username,
			Email:      account.Email,
			FullName:   account.FullName,
			Exporter:   exporter,
			ImportedAt: importedAt.Unix(),
		},
	}

	if len(account.Extensions) > 0 {
		ext, err := json.Marshal(account.Extensions)
		if err != nil {
			return accountRows{}, fmt.Errorf("%w: account extensions: %w", ErrEncodingRow, err)
		}
		rows.account.Extensions = string(ext)
	}

	for i, item := range account.Items {
		itemID := item.ID.String()
		for j, cred := range item.Credentials {
			body, err := json.Marshal(cred)
			if err != nil {
				return accountRows{}, fmt.Errorf("%w: item %s credential %d: %w", ErrEncodingRow, itemID, j, err)
			}
			rows.credentials = append(rows.credentials, credentialRow{
				ItemID:   itemID,
				Position: j,
				Type:     string(cred.CredentialType()),
				Known:    cred.CredentialType().IsKnown(),
				Body:     string(body),
			})
		}

		item.Credentials = nil
		body, err := json.Marshal(item)
		if err != nil {
			return accountRows{}, fmt.Errorf("%w: item %s: %w", ErrEncodingRow, itemID, err)
		}

		var modifiedAt any
		if item.ModifiedAt != nil {
			modifiedAt = item.ModifiedAt.Unix()
		}
		rows.items = append(rows.items, itemRow{
			ID:         itemID,
			Position:   i,
			Title:      item.Title,
			ItemType:   string(item.Type),
			ModifiedAt: modifiedAt,
			Body:       string(body),
		})
	}

	for i, collection := range account.Collections {
		body, err := json.Marshal(collection)
		if err != nil {
			return accountRows{}, fmt.Errorf("%w: collection %d: %w", ErrEncodingRow, i, err)
		}
		rows.collections = append(rows.collections, collectionRow{
			Position: i,
			ID:       collection.ID.String(),
			Title:    collection.Title,
			Body:     string(body),
		})
	}

	return rows, nil
}

// buildDeleteAccountQueries removes an account and everything it owns,
// children first so that no foreign key is violated.
func buildDeleteAccountQueries(b sq.StatementBuilderType, accountID string) ([]sqlQuery, error) {
	deletes := []sq.DeleteBuilder{
		b.Delete(tableCredentials).Where(sq.Eq{"account_id": accountID}),
		b.Delete(tableItems).Where(sq.Eq{"account_id": accountID}),
		b.Delete(tableCollections).Where(sq.Eq{"account_id": accountID}),
		b.Delete(tableAccounts).Where(sq.Eq{"id": accountID}),
	}

	queries := make([]sqlQuery, 0, len(deletes))
	for _, d := range deletes {
		query, args, err := d.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		queries = append(queries, sqlQuery{sql: query, args: args})
	}
	return queries, nil
}

// buildSaveAccountQueries replaces a stored account by rows: the old
// account is deleted and every table gets one multi-row insert.
func buildSaveAccountQueries(b sq.StatementBuilderType, rows accountRows) ([]sqlQuery, error) {
	queries, err := buildDeleteAccountQueries(b, rows.account.ID)
	if err != nil {
		return nil, err
	}

	acc := rows.account
	inserts := []sq.InsertBuilder{
		b.Insert(tableAccounts).Columns(accountColumns...).
			Values(acc.ID, acc.Username, acc.Email, acc.FullName, acc.Extensions, acc.Exporter, acc.ImportedAt),
	}

	if len(rows.items) > 0 {
		insert := b.Insert(tableItems).Columns(itemColumns...)
		for _, r := range rows.items {
			insert = insert.Values(acc.ID, r.ID, r.Position, r.Title, r.ItemType, r.ModifiedAt, r.Body)
		}
		inserts = append(inserts, insert)
	}

	if len(rows.credentials) > 0 {
		insert := b.Insert(tableCredentials).Columns(credentialColumns...)
		for _, r := range rows.credentials {
			insert = insert.Values(acc.ID, r.ItemID, r.Position, r.Type, r.Known, r.Body)
		}
		inserts = append(inserts, insert)
	}

	if len(rows.collections) > 0 {
		insert := b.Insert(tableCollections).Columns(collectionColumns...)
		for _, r := range rows.collections {
			insert = insert.Values(acc.ID, r.Position, r.ID, r.Title, r.Body)
		}
		inserts = append(inserts, insert)
	}

	for _, insert := range inserts {
		query, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		queries = append(queries, sqlQuery{sql: query, args: args})
	}
	return queries, nil
}

func buildSelectAccountQuery(b sq.StatementBuilderType, accountID string) (string, []any, error) {
	return b.Select(accountColumns...).From(tableAccounts).Where(sq.Eq{"id": accountID}).ToSql()
}

func buildSelectAccountsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(accountColumns...).From(tableAccounts).OrderBy("id").ToSql()
}

func buildSelectItemsQuery(b sq.StatementBuilderType, accountID string) (string, []any, error) {
	return b.Select("id", "body").
		From(tableItems).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("position").
		ToSql()
}

func buildSelectCredentialsQuery(b sq.StatementBuilderType, accountID string) (string, []any, error) {
	return b.Select("item_id", "body").
		From(tableCredentials).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("item_id", "position").
		ToSql()
}

func buildSelectCollectionsQuery(b sq.StatementBuilderType, accountID string) (string, []any, error) {
	return b.Select("body").
		From(tableCollections).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("position").
		ToSql()
}

func buildCountCredentialsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("type", "COUNT(*)").From(tableCredentials).GroupBy("type").ToSql()
}
