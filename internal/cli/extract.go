package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strataforge/agsi/pkg/codec"
	"github.com/strataforge/agsi/pkg/errors"
	"github.com/strataforge/agsi/pkg/ground"
)

// newExtractCmd builds the extract command. Materials are extracted as a
// JSON array; a model is extracted as a new single-model document so the
// result is itself a loadable file.
func newExtractCmd() *cobra.Command {
	var (
		materials  bool
		modelID    string
		materialID string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract materials or a single model from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := codec.ReadFile(args[0])
			if err != nil {
				return err
			}

			switch {
			case materials:
				return extractMaterials(doc, output)
			case materialID != "":
				return extractMaterial(doc, materialID, output)
			case modelID != "":
				return extractModel(doc, modelID, output)
			default:
				return errors.New(errors.ErrCodeInvalidFormat,
					"nothing to extract: pass --materials, --material <id> or --model <id>")
			}
		},
	}

	cmd.Flags().BoolVar(&materials, "materials", false, "extract all materials")
	cmd.Flags().StringVar(&materialID, "material", "", "extract the material with this id")
	cmd.Flags().StringVar(&modelID, "model", "", "extract the model with this id")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func extractMaterials(doc *ground.Document, output string) error {
	matches := queryMaterials(doc, "", "")
	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSerialization, err, "encode materials")
	}

	if output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}
	printSuccess("Extracted %d materials", len(matches))
	printFile(output)
	return nil
}

func extractMaterial(doc *ground.Document, materialID, output string) error {
	for i := range doc.Models {
		if mat := doc.Models[i].Material(materialID); mat != nil {
			data, err := json.MarshalIndent(mat, "", "  ")
			if err != nil {
				return errors.Wrap(errors.ErrCodeSerialization, err, "encode material")
			}
			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := writeOutput(output, data); err != nil {
				return err
			}
			printSuccess("Extracted material %s", materialID)
			printFile(output)
			return nil
		}
	}
	return errors.New(errors.ErrCodeMaterialNotFound,
		"material %q not found in any model", materialID)
}

func extractModel(doc *ground.Document, modelID, output string) error {
	model := doc.Model(modelID)
	if model == nil {
		return modelNotFound(modelID)
	}

	out := ground.NewDocument(doc.File.FileID + "-" + modelID)
	out.File.FileAuthor = doc.File.FileAuthor
	out.Project = doc.Project
	out.AddModel(*model)

	if output == "" {
		data, err := codec.Serialize(out, codec.FormatJSON)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	if err := codec.WriteFile(output, out); err != nil {
		return err
	}
	printSuccess("Extracted model %s", modelID)
	printFile(output)
	return nil
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
