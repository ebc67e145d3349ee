// Package kdbx reads KeePass databases and converts them into CXF
// documents.
package kdbx

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tobischo/gokeepasslib/v3"
)

var (
	// ErrEmptyPassword is returned when a database is opened without a
	// password.
	ErrEmptyPassword = errors.New("kdbx password is empty")

	// ErrNoContent is returned for a database without a root group.
	ErrNoContent = errors.New("kdbx database has no content")

	ErrMissingAttachment = errors.New("attachment content not found")
)

// OpenFile opens and decrypts the KeePass database at path.
func OpenFile(path, password string) (*gokeepasslib.Database, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening kdbx file '%s': %w", path, err)
	}
	defer file.Close()

	db, err := Open(file, password)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", path, err)
	}
	return db, nil
}

// Open decodes a KeePass database from r and unlocks its protected values.
func Open(r io.Reader, password string) (*gokeepasslib.Database, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	db := gokeepasslib.NewDatabase()
	db.Credentials = gokeepasslib.NewPasswordCredentials(password)

	if err := gokeepasslib.NewDecoder(r).Decode(db); err != nil {
		return nil, fmt.Errorf("error decrypting kdbx database: %w", err)
	}

	// protected values (passwords etc.) are kept encrypted in memory until unlocked
	if err := db.UnlockProtectedEntries(); err != nil {
		return nil, fmt.Errorf("error unlocking protected values: %w", err)
	}

	return db, nil
}

// allEntries walks groups depth-first and returns every entry.
func allEntries(groups []gokeepasslib.Group) []gokeepasslib.Entry {
	var entries []gokeepasslib.Entry
	for _, group := range groups {
		entries = append(entries, group.Entries...)
		entries = append(entries, allEntries(group.Groups)...)
	}
	return entries
}
