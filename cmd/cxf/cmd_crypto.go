package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-cxf/internal/crypto"
)

const (
	schemePassphrase = "passphrase"
	schemeAge        = "age"
	schemeAgeScrypt  = "age-scrypt"
)

func argonParams() crypto.ArgonParams {
	return crypto.ArgonParams{
		Time:      cfg.Crypto.ArgonTime,
		MemoryKiB: cfg.Crypto.ArgonMemoryKiB,
		Threads:   cfg.Crypto.ArgonThreads,
	}
}

// sealerFor builds the sealer selected by the scheme flag. recipients and
// identityFile are only consulted by the age scheme; sealing asks for a
// new passphrase twice.
func sealerFor(cmd *cobra.Command, scheme string, recipients []string, identityFile string, sealing bool) (crypto.Sealer, error) {
	if len(recipients) > 0 || identityFile != "" {
		scheme = schemeAge
	}

	switch scheme {
	case schemeAge:
		var identities []string
		if identityFile != "" {
			data, err := os.ReadFile(identityFile)
			if err != nil {
				return nil, fmt.Errorf("reading identity: %w", err)
			}
			identities = []string{string(data)}
		}
		return crypto.NewAgeSealer(recipients, identities)

	case schemePassphrase, schemeAgeScrypt:
		prompt := readSecret
		if sealing {
			prompt = readNewSecret
		}
		passphrase, err := prompt(cmd, "Passphrase: ")
		if err != nil {
			return nil, err
		}
		if scheme == schemeAgeScrypt {
			return crypto.NewAgePassphraseSealer(passphrase, 0)
		}
		return crypto.NewPassphraseSealer(passphrase, argonParams())

	default:
		return nil, fmt.Errorf("unknown scheme %q", scheme)
	}
}

var sealCmd = &cobra.Command{
	Use:   "seal",
	Short: "Encrypt a document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		scheme, _ := cmd.Flags().GetString("scheme")
		recipients, _ := cmd.Flags().GetStringSlice("recipient")

		plaintext, err := readInput(cmd, input)
		if err != nil {
			return err
		}
		sealer, err := sealerFor(cmd, scheme, recipients, "", true)
		if err != nil {
			return err
		}

		blob, err := sealer.Seal(plaintext)
		if err != nil {
			return err
		}
		log.Debug().Str("sealer", sealer.Name()).Int("bytes", len(blob)).Msg("document sealed")
		return writeOutput(cmd, output, blob)
	},
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Decrypt a sealed document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		scheme, _ := cmd.Flags().GetString("scheme")
		identity, _ := cmd.Flags().GetString("identity")

		blob, err := readInput(cmd, input)
		if err != nil {
			return err
		}
		sealer, err := sealerFor(cmd, scheme, nil, identity, false)
		if err != nil {
			return err
		}

		plaintext, err := sealer.Open(blob)
		if err != nil {
			return err
		}
		return writeOutput(cmd, output, plaintext)
	},
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an age identity for sealing and exchange",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		recipient, identity, err := crypto.GenerateAgeKeyPair()
		if err != nil {
			return err
		}

		var b strings.Builder
		fmt.Fprintf(&b, "# public key: %s\n%s\n", recipient, identity)
		if output == "" {
			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		}
		if err := os.WriteFile(output, []byte(b.String()), 0o600); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Public key: %s\n", recipient)
		return nil
	},
}
