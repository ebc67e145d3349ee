// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cxf/internal/logger"
	"github.com/MKhiriev/go-cxf/models"
)

// documentRepository is the database/sql implementation of
// [DocumentRepository].
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that database failures are traced with the
// account they concern.
type documentRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewDocumentRepository constructs a [DocumentRepository] backed by db.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	return &documentRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

// SaveAccount writes account and everything it owns in one transaction.
// A previously stored account with the same id is replaced.
func (d *documentRepository) SaveAccount(ctx context.Context, exporter string, account models.Account) error {
	log := logger.FromContext(ctx)
	accountID := account.ID.String()

	rows, err := encodeAccount(exporter, account, d.now())
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.SaveAccount").
			Str("account_id", accountID).
			Msg("failed to encode account")
		return err
	}

	queries, err := buildSaveAccountQueries(d.builder(), rows)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.SaveAccount").
			Str("account_id", accountID).
			Msg("failed to create queries")
		return err
	}

	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.SaveAccount").
			Str("account_id", accountID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for i, q := range queries {
		if _, err = tx.ExecContext(ctx, q.sql, q.args...); err != nil {
			log.Err(err).
				Str("func", "documentRepository.SaveAccount").
				Str("account_id", accountID).
				Int("statement", i).
				Str("sqlstate", postgresError(err)).
				Bool("retryable", d.IsRetryable(err)).
				Msg("failed to execute statement")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "documentRepository.SaveAccount").
			Str("account_id", accountID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Debug().
		Str("func", "documentRepository.SaveAccount").
		Str("account_id", accountID).
		Int("items", len(rows.items)).
		Int("credentials", len(rows.credentials)).
		Int("collections", len(rows.collections)).
		Msg("account saved")
	return nil
}

// GetAccount loads the account with the given id including its items,
// credentials and collections.
func (d *documentRepository) GetAccount(ctx context.Context, id models.B64Url) (models.Account, error) {
	log := logger.FromContext(ctx)
	accountID := id.String()

	query, args, err := buildSelectAccountQuery(d.builder(), accountID)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.GetAccount").Msg("failed to create query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row accountRow
	err = d.DB.QueryRowContext(ctx, query, args...).Scan(
		&row.ID, &row.Username, &row.Email, &row.FullName, &row.Extensions, &row.Exporter, &row.ImportedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.GetAccount").
			Str("account_id", accountID).
			Msg("failed to scan account row")
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	account, err := decodeAccountRow(row)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.GetAccount").
			Str("account_id", accountID).
			Msg("failed to decode account row")
		return models.Account{}, err
	}

	if account.Items, err = d.loadItems(ctx, accountID); err != nil {
		return models.Account{}, err
	}
	if account.Collections, err = d.loadCollections(ctx, accountID); err != nil {
		return models.Account{}, err
	}

	return account, nil
}

// ListAccounts returns the account-level fields of every stored account.
func (d *documentRepository) ListAccounts(ctx context.Context) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAccountsQuery(d.builder())
	if err != nil {
		log.Err(err).Str("func", "documentRepository.ListAccounts").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.ListAccounts").
			Msg("failed to execute query for listing accounts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		var row accountRow
		if err = rows.Scan(
			&row.ID, &row.Username, &row.Email, &row.FullName, &row.Extensions, &row.Exporter, &row.ImportedAt,
		); err != nil {
			log.Err(err).Str("func", "documentRepository.ListAccounts").Msg("failed to scan account row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		account, err := decodeAccountRow(row)
		if err != nil {
			log.Err(err).
				Str("func", "documentRepository.ListAccounts").
				Str("account_id", row.ID).
				Msg("failed to decode account row")
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "documentRepository.ListAccounts").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return accounts, nil
}

// DeleteAccount removes an account and everything it owns.
func (d *documentRepository) DeleteAccount(ctx context.Context, id models.B64Url) error {
	log := logger.FromContext(ctx)
	accountID := id.String()

	queries, err := buildDeleteAccountQueries(d.builder(), accountID)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.DeleteAccount").Msg("failed to create queries")
		return err
	}

	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.DeleteAccount").
			Str("account_id", accountID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var deleted int64
	for i, q := range queries {
		result, err := tx.ExecContext(ctx, q.sql, q.args...)
		if err != nil {
			log.Err(err).
				Str("func", "documentRepository.DeleteAccount").
				Str("account_id", accountID).
				Int("statement", i).
				Str("sqlstate", postgresError(err)).
				Msg("failed to execute statement")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		// the accounts row is deleted last
		if i == len(queries)-1 {
			if deleted, err = result.RowsAffected(); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
	}

	if deleted == 0 {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "documentRepository.DeleteAccount").
			Str("account_id", accountID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// CountCredentials returns how many credentials of each type are stored,
// including types this package does not know.
func (d *documentRepository) CountCredentials(ctx context.Context) (map[models.CredentialType]int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountCredentialsQuery(d.builder())
	if err != nil {
		log.Err(err).Str("func", "documentRepository.CountCredentials").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.CountCredentials").
			Msg("failed to execute query for counting credentials")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	counts := make(map[models.CredentialType]int)
	for rows.Next() {
		var (
			credType string
			count    int
		)
		if err = rows.Scan(&credType, &count); err != nil {
			log.Err(err).Str("func", "documentRepository.CountCredentials").Msg("failed to scan count row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		counts[models.CredentialType(credType)] = count
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "documentRepository.CountCredentials").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return counts, nil
}

func (d *documentRepository) loadItems(ctx context.Context, accountID string) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectItemsQuery(d.builder(), accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.loadItems").
			Str("account_id", accountID).
			Msg("failed to execute query for items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	index := make(map[string]int)
	for rows.Next() {
		var itemID, body string
		if err = rows.Scan(&itemID, &body); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		var item models.Item
		if err = json.Unmarshal([]byte(body), &item); err != nil {
			log.Err(err).
				Str("func", "documentRepository.loadItems").
				Str("account_id", accountID).
				Str("item_id", itemID).
				Msg("failed to decode item")
			return nil, fmt.Errorf("%w: item %s: %w", ErrDecodingRow, itemID, err)
		}
		index[itemID] = len(items)
		items = append(items, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}
	rows.Close()

	if len(items) == 0 {
		return items, nil
	}

	query, args, err = buildSelectCredentialsQuery(d.builder(), accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	credRows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.loadItems").
			Str("account_id", accountID).
			Msg("failed to execute query for credentials")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer credRows.Close()

	for credRows.Next() {
		var itemID, body string
		if err = credRows.Scan(&itemID, &body); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		i, ok := index[itemID]
		if !ok {
			log.Warn().
				Str("func", "documentRepository.loadItems").
				Str("account_id", accountID).
				Str("item_id", itemID).
				Msg("credential row without item, skipping")
			continue
		}

		cred, err := models.DecodeCredential([]byte(body))
		if err != nil {
			return nil, fmt.Errorf("%w: item %s credential: %w", ErrDecodingRow, itemID, err)
		}
		items[i].Credentials = append(items[i].Credentials, cred)
	}
	if rowsErr := credRows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

func (d *documentRepository) loadCollections(ctx context.Context, accountID string) ([]models.Collection, error) {
	query, args, err := buildSelectCollectionsQuery(d.builder(), accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "documentRepository.loadCollections").
			Str("account_id", accountID).
			Msg("failed to execute query for collections")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	collections := make([]models.Collection, 0)
	for rows.Next() {
		var body string
		if err = rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		var collection models.Collection
		if err = json.Unmarshal([]byte(body), &collection); err != nil {
			return nil, fmt.Errorf("%w: collection: %w", ErrDecodingRow, err)
		}
		collections = append(collections, collection)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return collections, nil
}

func decodeAccountRow(row accountRow) (models.Account, error) {
	id, err := models.ParseB64Url(row.ID)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: account id: %w", ErrDecodingRow, err)
	}

	account := models.Account{
		ID:       id,
		Username: row.Username,
		Email:    row.Email,
		FullName: row.FullName,
	}
	if row.Extensions != "" {
		if err = json.Unmarshal([]byte(row.Extensions), &account.Extensions); err != nil {
			return models.Account{}, fmt.Errorf("%w: account extensions: %w", ErrDecodingRow, err)
		}
	}
	return account, nil
}
