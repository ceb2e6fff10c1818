package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/sha3"

	"github.com/chiboi241-boop/EduScience/pkg/domain"
)

// hashCmd fingerprints a data file for submission
var hashCmd = &cobra.Command{
	Use:   "hash [file]",
	Short: "Compute the data hash of a file",
	Long: `Print the hex SHA3-256 digest of a file (or stdin when no file or "-" is
given). The output is the data_hash a submission for that file expects.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()
			in = f
		}
		h, err := Fingerprint(in)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "0x"+hex.EncodeToString(h[:]))
		return nil
	},
}

// Fingerprint returns the SHA3-256 digest of r as a registry data hash.
func Fingerprint(r io.Reader) (domain.DataHash, error) {
	hasher := sha3.New256()
	if _, err := io.Copy(hasher, r); err != nil {
		return domain.DataHash{}, fmt.Errorf("failed to read input: %w", err)
	}
	var h domain.DataHash
	copy(h[:], hasher.Sum(nil))
	return h, nil
}
