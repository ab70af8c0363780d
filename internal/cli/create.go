package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/strataforge/agsi/pkg/codec"
	"github.com/strataforge/agsi/pkg/geometry"
	"github.com/strataforge/agsi/pkg/ground"
)

// newCreateCmd builds the create command, which writes a fresh document to
// disk. With --example the document is seeded with a small two-layer model
// so downstream tooling has something to chew on.
func newCreateCmd() *cobra.Command {
	var (
		fileID      string
		author      string
		projectName string
		example     bool
	)

	cmd := &cobra.Command{
		Use:   "create <output>",
		Short: "Create a new document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())

			var doc *ground.Document
			if fileID != "" {
				doc = ground.NewDocument(fileID)
			} else {
				doc = ground.NewDocumentWithGeneratedID()
			}
			doc.File.FileDate = time.Now().UTC().Format("2006-01-02")

			if author != "" {
				doc.File.FileAuthor = author
			} else {
				doc.File.FileAuthor = cfg.DefaultAuthor
			}
			if cfg.Software != "" {
				doc.File.FileSoftware = cfg.Software
			}
			if projectName != "" {
				doc.Project = ground.NewProject("PROJ001", projectName)
			}
			if example {
				doc.AddModel(exampleModel())
			}

			if err := codec.WriteFile(args[0], doc); err != nil {
				return err
			}
			printSuccess("Created document %s", doc.File.FileID)
			printFile(args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&fileID, "file-id", "", "document file id (default: generated UUID)")
	cmd.Flags().StringVar(&author, "author", "", "document author (default: config default_author)")
	cmd.Flags().StringVar(&projectName, "project", "", "project name to attach")
	cmd.Flags().BoolVar(&example, "example", false, "seed the document with an example model")
	return cmd
}

// exampleModel builds a small but complete two-layer stratigraphic model.
func exampleModel() ground.GroundModel {
	model := ground.NewGroundModel("MODEL001", "Example section", ground.ModelStratigraphic, ground.Dimension2D)
	model.Extent = ground.NewExtent3D(0, 100, 0, 100, -20, 10)

	clay := ground.NewMaterial("MAT001", "Firm Clay", ground.MaterialSoil)
	clay.AddProperty(ground.NumericProperty("density", 1850, "kg/m3"))
	clay.AddProperty(ground.RangeProperty("undrained_shear_strength", 40, 75, "kPa"))
	model.AddMaterial(clay)

	sand := ground.NewMaterial("MAT002", "Dense Sand", ground.MaterialSoil)
	sand.AddProperty(ground.NumericProperty("friction_angle", 36, "degrees"))
	model.AddMaterial(sand)

	upper := ground.NewComponent("COMP001", "Upper clay", ground.ComponentLayer, "MAT001",
		geometry.Point(50, 50, 5))
	upper.SetElevations(10, -2)
	model.AddComponent(upper)

	lower := ground.NewComponent("COMP002", "Sand bed", ground.ComponentLayer, "MAT002",
		geometry.Point(50, 50, -10))
	lower.SetElevations(-2, -20)
	model.AddComponent(lower)

	return model
}
