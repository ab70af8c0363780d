package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strataforge/agsi/pkg/codec"
	"github.com/strataforge/agsi/pkg/ground"
)

// diffResult lists identity-level differences between two documents. The
// comparison works on ids, not deep structure; --detailed adds per-model
// component differences.
type diffResult struct {
	OnlyInA []string `json:"onlyInA"`
	OnlyInB []string `json:"onlyInB"`
	Shared  []string `json:"shared"`
}

func (d diffResult) identical() bool {
	return len(d.OnlyInA) == 0 && len(d.OnlyInB) == 0
}

// newDiffCmd builds the diff command.
func newDiffCmd() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare the models and materials of two documents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := codec.ReadFile(args[0])
			if err != nil {
				return err
			}
			b, err := codec.ReadFile(args[1])
			if err != nil {
				return err
			}

			models := diffIDs(modelIDs(a), modelIDs(b))
			printDiffSection("Models", models)

			materials := diffIDs(materialIDs(a), materialIDs(b))
			printDiffSection("Materials", materials)

			if detailed {
				for _, id := range models.Shared {
					comps := diffIDs(componentIDs(a.Model(id)), componentIDs(b.Model(id)))
					if !comps.identical() {
						printNewline()
						printDiffSection(fmt.Sprintf("Components of %s", id), comps)
					}
				}
			}

			if models.identical() && materials.identical() {
				printSuccess("Documents share the same model and material ids")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "also compare components of shared models")
	return cmd
}

func printDiffSection(title string, d diffResult) {
	if d.identical() {
		return
	}
	fmt.Println(StyleTitle.Render(title))
	for _, id := range d.OnlyInA {
		printDetail("- %s (only in first)", id)
	}
	for _, id := range d.OnlyInB {
		printDetail("+ %s (only in second)", id)
	}
}

// diffIDs splits two id lists into exclusive and shared sets, preserving the
// order of the inputs.
func diffIDs(a, b []string) diffResult {
	inA := make(map[string]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}
	inB := make(map[string]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}

	d := diffResult{OnlyInA: []string{}, OnlyInB: []string{}, Shared: []string{}}
	for _, id := range a {
		if inB[id] {
			d.Shared = append(d.Shared, id)
		} else {
			d.OnlyInA = append(d.OnlyInA, id)
		}
	}
	for _, id := range b {
		if !inA[id] {
			d.OnlyInB = append(d.OnlyInB, id)
		}
	}
	return d
}

func modelIDs(doc *ground.Document) []string {
	ids := make([]string, len(doc.Models))
	for i := range doc.Models {
		ids[i] = doc.Models[i].ID
	}
	return ids
}

func materialIDs(doc *ground.Document) []string {
	var ids []string
	for i := range doc.Models {
		for j := range doc.Models[i].Materials {
			ids = append(ids, doc.Models[i].Materials[j].ID)
		}
	}
	return ids
}

func componentIDs(model *ground.GroundModel) []string {
	if model == nil {
		return nil
	}
	ids := make([]string, len(model.Components))
	for i := range model.Components {
		ids[i] = model.Components[i].ID
	}
	return ids
}
