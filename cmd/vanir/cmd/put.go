package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <key-hex> <value-hex>",
	Short: "Store a value under a key",
	Long: `Store a value under a key. Both arguments are hex-encoded raw
bytes.

Example:
  vanir put 0100000000000000 050000007561746f6d`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("invalid key: %w", err)
		}
		value, err := hex.DecodeString(args[1])
		if err != nil {
			return fmt.Errorf("invalid value: %w", err)
		}

		s, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		if err := s.Set(key, value); err != nil {
			return fmt.Errorf("failed to put key: %w", err)
		}

		fmt.Printf("Stored %d value bytes under key %s\n", len(value), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
