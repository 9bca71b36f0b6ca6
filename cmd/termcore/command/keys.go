package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hnimtadd/termcore/terminal/ansi"
	"github.com/hnimtadd/termcore/terminal/core"
	"github.com/hnimtadd/termcore/terminal/input"
)

type keysOptions struct {
	VT52       bool `mapstructure:"vt52"`
	CursorKeys bool `mapstructure:"cursor-keys"`
	Keypad     bool `mapstructure:"keypad"`
	Backarrow  bool `mapstructure:"backarrow"`
	LineFeed   bool `mapstructure:"linefeed"`
	C1         bool `mapstructure:"c1"`
}

func (o keysOptions) flags() core.Flags {
	return core.Flags{
		VT52:         o.VT52,
		CursorKey:    o.CursorKeys,
		Keypad:       o.Keypad,
		BackarrowKey: o.Backarrow,
		LineFeed:     o.LineFeed,
		SendC1:       o.C1,
	}
}

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys [key...]",
		Short: "Print the sequences sent for key presses",
		Long: `Print the sequence sent for every key combination under the given modes.
Keys may be filtered by name, e.g. "up" or "f5".`,
		Example: `  # Cursor keys in application mode
  termcore keys --cursor-keys up down left right

  # Everything a VT52 terminal sends
  termcore keys --vt52`,
		RunE: func(c *cobra.Command, args []string) error {
			var opts keysOptions
			if err := unmarshalFlags(c, &opts); err != nil {
				return err
			}

			m := input.Rebuild(opts.flags())
			out := c.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", m.Flags())
			for _, comb := range m.Combinations() {
				if !keySelected(comb.Key, args) {
					continue
				}
				seq, _ := m.Lookup(comb.Mods, comb.Key)
				fmt.Fprintf(out, "%-28s %s\n", comb, ansi.Quote(seq))
			}
			return nil
		},
	}

	cmd.Flags().Bool("vt52", false, "VT52 mode (DECANM reset)")
	cmd.Flags().Bool("cursor-keys", false, "application cursor keys (DECCKM)")
	cmd.Flags().Bool("keypad", false, "application keypad (DECKPAM)")
	cmd.Flags().Bool("backarrow", false, "backarrow sends BS (DECBKM)")
	cmd.Flags().Bool("linefeed", false, "Return sends CR LF (LNM)")
	cmd.Flags().Bool("c1", false, "8-bit C1 introducers (S8C1T)")

	return cmd
}

func keySelected(key input.KeyCode, names []string) bool {
	if len(names) == 0 {
		return true
	}
	for _, n := range names {
		if strings.EqualFold(key.String(), n) {
			return true
		}
	}
	return false
}
