package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [prefix-hex]",
	Short: "List entries under a key prefix in key order",
	Long: `List every entry whose key starts with the given hex prefix, in
ascending key order. With no prefix the whole store is listed.

Example:
  vanir scan 01`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var prefix []byte
		if len(args) == 1 {
			var err error
			prefix, err = hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("invalid prefix: %w", err)
			}
		}

		s, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		count := 0
		err = s.Scan(prefix, func(key, value []byte) error {
			fmt.Printf("%s\t%s\n", hex.EncodeToString(key), hex.EncodeToString(value))
			count++
			return nil
		})
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		fmt.Printf("%d entries\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
