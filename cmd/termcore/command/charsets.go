package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/hnimtadd/termcore/terminal/charset"
)

const cellWidth = 3

func charsetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "charsets [name...]",
		Short: "List character sets, or print the table of the named ones",
		Example: `  # List every character set
  termcore charsets

  # Print the German and Latin-1 tables
  termcore charsets german latin-1`,
		RunE: func(c *cobra.Command, args []string) error {
			out := c.OutOrStdout()
			if len(args) == 0 {
				for _, t := range charset.All() {
					fmt.Fprintf(out, "%-22s %#x-%#x\n", t.Name(), t.Base(), t.Base()+rune(t.Size())-1)
				}
				return nil
			}

			tables := make([]*charset.Table, 0, len(args))
			for _, name := range args {
				t, ok := charset.ByName(name)
				if !ok {
					return fmt.Errorf("unknown character set %q", name)
				}
				tables = append(tables, t)
			}
			for i, t := range tables {
				if i > 0 {
					fmt.Fprintln(out)
				}
				printTable(out, t)
			}
			return nil
		},
	}
}

// printTable prints t as a grid of 16 columns, one row per high nibble.
func printTable(out io.Writer, t *charset.Table) {
	fmt.Fprintln(out, t.Name())

	var b strings.Builder
	b.WriteString("    ")
	for col := range 16 {
		b.WriteString(runewidth.FillRight(fmt.Sprintf("%X", col), cellWidth))
	}
	fmt.Fprintln(out, strings.TrimRight(b.String(), " "))

	first, last := t.Base(), t.Base()+rune(t.Size())-1
	for row := first &^ 0xF; row <= last; row += 0x10 {
		b.Reset()
		fmt.Fprintf(&b, "%X_  ", row>>4)
		for c := row; c < row+0x10; c++ {
			if c < first || c > last {
				b.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			b.WriteString(runewidth.FillRight(string(t.Lookup(c)), cellWidth))
		}
		fmt.Fprintln(out, strings.TrimRight(b.String(), " "))
	}
}
