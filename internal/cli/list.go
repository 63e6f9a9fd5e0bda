package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/resfold/resfold/pkg/subenc"
)

// listCommand creates the list command showing the available output
// strategies and sub-encodings.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List output strategies and sub-encodings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Output strategies"))
			var strategyRows [][]string
			for _, s := range c.Strategies.All() {
				strategyRows = append(strategyRows, []string{s.Name(), s.Description()})
			}
			fmt.Println(newListTable("Name", "Description").Rows(strategyRows...).Render())

			fmt.Println()
			fmt.Println(StyleTitle.Render("Sub-encodings"))
			var encRows [][]string
			for _, name := range subenc.Names() {
				enc, _ := subenc.ByName(name)
				encRows = append(encRows, []string{name, enc.TypeName()})
			}
			fmt.Println(newListTable("Name", "Value type").Rows(encRows...).Render())
			return nil
		},
	}
}

func newListTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 {
				return StyleHighlight
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
}
