package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <key-hex>",
	Short: "Delete a key",
	Long: `Delete a key from the store. Deleting a missing key is not an
error.

Example:
  vanir delete 0100000000000000`,
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

		if err := s.Delete(key); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}

		fmt.Printf("Deleted key %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
