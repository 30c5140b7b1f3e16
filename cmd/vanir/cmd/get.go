package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <key-hex>",
	Short: "Get the value stored under a key",
	Long: `Get the value stored under a key. Keys are raw bytes, so the
argument is hex-encoded; the value prints hex-encoded.

Example:
  vanir get 0100000000000000057561746f6d`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("invalid key: %w", err)
		}

		s, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		value, err := s.Get(key)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", hex.EncodeToString(value))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
