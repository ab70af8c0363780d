package cli

import (
	"github.com/spf13/cobra"

	"github.com/strataforge/agsi/pkg/codec"
	"github.com/strataforge/agsi/pkg/ground"
)

// newEditCmd builds the edit command group. Edits load the document, change
// it in memory and write the whole file back; there is no partial update.
func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Modify an existing document",
	}
	cmd.AddCommand(newEditFileCmd())
	cmd.AddCommand(newEditAddModelCmd())
	cmd.AddCommand(newEditAddMaterialCmd())
	return cmd
}

func newEditFileCmd() *cobra.Command {
	var (
		author   string
		fileName string
		comments string
	)

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Update file-level metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := codec.ReadFile(args[0])
			if err != nil {
				return err
			}

			changed := false
			if cmd.Flags().Changed("author") {
				doc.File.FileAuthor = author
				changed = true
			}
			if cmd.Flags().Changed("file-name") {
				doc.File.FileName = fileName
				changed = true
			}
			if cmd.Flags().Changed("comments") {
				doc.File.FileComments = comments
				changed = true
			}
			if !changed {
				printInfo("Nothing to change")
				return nil
			}

			if err := codec.WriteFile(args[0], doc); err != nil {
				return err
			}
			printSuccess("Updated %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "set fileAuthor")
	cmd.Flags().StringVar(&fileName, "file-name", "", "set fileName")
	cmd.Flags().StringVar(&comments, "comments", "", "set fileComments")
	return cmd
}

func newEditAddModelCmd() *cobra.Command {
	var (
		id        string
		name      string
		modelType string
		dimension string
	)

	cmd := &cobra.Command{
		Use:   "add-model <path>",
		Short: "Add an empty ground model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := codec.ReadFile(args[0])
			if err != nil {
				return err
			}

			model := ground.NewGroundModel(id, name,
				ground.ModelType(modelType), ground.Dimension(dimension))
			doc.AddModel(model)

			if err := codec.WriteFile(args[0], doc); err != nil {
				return err
			}
			printSuccess("Added model %s", id)
			printDetail("run 'agsi validate %s' to check the result", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "model id")
	cmd.Flags().StringVar(&name, "name", "", "model name")
	cmd.Flags().StringVar(&modelType, "type", string(ground.ModelStratigraphic), "model type")
	cmd.Flags().StringVar(&dimension, "dimension", string(ground.Dimension3D), "model dimension")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newEditAddMaterialCmd() *cobra.Command {
	var (
		modelID      string
		id           string
		name         string
		materialType string
		geology      string
	)

	cmd := &cobra.Command{
		Use:   "add-material <path>",
		Short: "Add a material to a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := codec.ReadFile(args[0])
			if err != nil {
				return err
			}

			model := doc.Model(modelID)
			if model == nil {
				return modelNotFound(modelID)
			}

			mat := ground.NewMaterial(id, name, ground.MaterialType(materialType))
			mat.Geology = geology
			model.AddMaterial(mat)

			if err := codec.WriteFile(args[0], doc); err != nil {
				return err
			}
			printSuccess("Added material %s to model %s", id, modelID)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelID, "model", "", "target model id")
	cmd.Flags().StringVar(&id, "id", "", "material id")
	cmd.Flags().StringVar(&name, "name", "", "material name")
	cmd.Flags().StringVar(&materialType, "type", string(ground.MaterialSoil), "material type")
	cmd.Flags().StringVar(&geology, "geology", "", "geological formation")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
