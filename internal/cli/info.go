package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strataforge/agsi/pkg/codec"
	"github.com/strataforge/agsi/pkg/errors"
)

// newInfoCmd builds the info command, a quick look at a document without
// validating it.
func newInfoCmd() *cobra.Command {
	var (
		showMaterials bool
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Show document metadata and contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := codec.ReadFile(args[0])
			if err != nil {
				return err
			}
			info := inspect(doc)

			if asJSON {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return errors.Wrap(errors.ErrCodeSerialization, err, "encode info")
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Println(StyleTitle.Render("Document"))
			printKeyValue("File ID", info.FileID)
			if info.FileName != "" {
				printKeyValue("File name", info.FileName)
			}
			if info.FileAuthor != "" {
				printKeyValue("Author", info.FileAuthor)
			}
			if info.FileDate != "" {
				printKeyValue("Date", info.FileDate)
			}
			printKeyValue("Schema", info.SchemaVersion)
			if info.ProjectName != "" {
				printKeyValue("Project", info.ProjectName)
			}

			printNewline()
			fmt.Println(StyleTitle.Render("Models"))
			if len(info.Models) == 0 {
				printDetail("none")
			}
			for _, m := range info.Models {
				printInfo("%s %s", m.ID, StyleDim.Render(m.Name))
				printDetail("%s · %s · %d components · %d materials",
					m.Type, m.Dimension, m.Components, m.Materials)
			}

			if showMaterials {
				printNewline()
				fmt.Println(StyleTitle.Render("Materials"))
				for _, match := range queryMaterials(doc, "", "") {
					mat := match.Material
					printInfo("%s %s", mat.ID, StyleDim.Render(mat.Name))
					printDetail("%s · model %s · %d properties",
						mat.Type, match.ModelID, len(mat.Properties))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMaterials, "materials", false, "list materials too")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the summary as JSON")
	return cmd
}
