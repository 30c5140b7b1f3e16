package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanir-db/vanir/pkg/account"
	"github.com/vanir-db/vanir/pkg/keys"
	"github.com/vanir-db/vanir/pkg/schema"
)

// keyCmd represents the key command
var keyCmd = &cobra.Command{
	Use:   "key <type>:<value> [<type>:<value> ...]",
	Short: "Encode a composite key to hex",
	Long: `Encode a composite key of up to four fields to hex, for use with
get, put, delete, and scan. Every field but the last is encoded in its
self-delimiting non-terminal form; the last runs to the end of the key.

Field types: u32, u64, u128, acct, str.

Example:
  vanir key acct:5 str:uatom u64:42`,
	Args: cobra.RangeArgs(1, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		var buf []byte
		for i, arg := range args {
			terminal := i == len(args)-1
			next, err := appendKeyField(buf, arg, terminal)
			if err != nil {
				return fmt.Errorf("field %d (%q): %w", i, arg, err)
			}
			buf = next
		}

		fmt.Printf("%s\n", hex.EncodeToString(buf))
		return nil
	},
}

// appendKeyField parses one <type>:<value> argument and appends its key
// encoding to dst.
func appendKeyField(dst []byte, arg string, terminal bool) ([]byte, error) {
	typ, value, ok := strings.Cut(arg, ":")
	if !ok {
		return nil, fmt.Errorf("expected <type>:<value>")
	}

	switch typ {
	case "u32":
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, err
		}
		if terminal {
			return keys.Uint32Field{}.AppendTerminal(dst, uint32(v))
		}
		return keys.Uint32Field{}.AppendNonTerminal(dst, uint32(v))

	case "u64":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, err
		}
		if terminal {
			return keys.Uint64Field{}.AppendTerminal(dst, v)
		}
		return keys.Uint64Field{}.AppendNonTerminal(dst, v)

	case "u128":
		v, err := schema.ParseUint128(value)
		if err != nil {
			return nil, err
		}
		if terminal {
			return keys.Uint128Field{}.AppendTerminal(dst, v)
		}
		return keys.Uint128Field{}.AppendNonTerminal(dst, v)

	case "acct":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, err
		}
		if terminal {
			return keys.AccountIDField{}.AppendTerminal(dst, account.NewID(v))
		}
		return keys.AccountIDField{}.AppendNonTerminal(dst, account.NewID(v))

	case "str":
		if terminal {
			return keys.StringField{}.AppendTerminal(dst, value)
		}
		return keys.StringField{}.AppendNonTerminal(dst, value)

	default:
		return nil, fmt.Errorf("unknown field type %q", typ)
	}
}

func init() {
	rootCmd.AddCommand(keyCmd)
}
