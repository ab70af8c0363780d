package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/strataforge/agsi/pkg/codec"
)

// newStatsCmd builds the stats command, printing aggregate counts across the
// whole document.
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Show aggregate counts for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := codec.ReadFile(args[0])
			if err != nil {
				return err
			}
			info := inspect(doc)

			fmt.Println(StyleTitle.Render("Totals"))
			printKeyValue("Models", fmt.Sprintf("%d", info.ModelCount))
			printKeyValue("Components", fmt.Sprintf("%d", info.ComponentCount))
			printKeyValue("Materials", fmt.Sprintf("%d", info.MaterialCount))
			printKeyValue("Properties", fmt.Sprintf("%d", info.PropertyCount))

			byType := map[string]int{}
			for i := range doc.Models {
				for j := range doc.Models[i].Components {
					byType[string(doc.Models[i].Components[j].Type)]++
				}
			}
			if len(byType) > 0 {
				printNewline()
				fmt.Println(StyleTitle.Render("Components by type"))
				types := make([]string, 0, len(byType))
				for t := range byType {
					types = append(types, t)
				}
				sort.Strings(types)
				for _, t := range types {
					printKeyValue(t, fmt.Sprintf("%d", byType[t]))
				}
			}
			return nil
		},
	}
}
