package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/strataforge/agsi/pkg/codec"
	"github.com/strataforge/agsi/pkg/errors"
	"github.com/strataforge/agsi/pkg/observability"
	"github.com/strataforge/agsi/pkg/validate"
)

// newValidateCmd builds the validate command. It exits nonzero when the
// document has validation errors; warnings alone leave the exit code at
// zero.
func newValidateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a document against the schema and reference rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			logger.Debug("validating", "file", args[0])

			doc, err := codec.ReadFile(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			start := time.Now()
			observability.Validation().OnValidateStart(ctx, doc.File.FileID)
			report := validate.Document(doc)
			observability.Validation().OnValidateComplete(ctx, doc.File.FileID,
				len(report.Errors()), len(report.Warnings()), time.Since(start))

			if asJSON {
				out := struct {
					Valid    bool               `json:"valid"`
					Errors   []validate.Issue   `json:"errors"`
					Warnings []validate.Warning `json:"warnings"`
				}{report.IsValid(), report.Errors(), report.Warnings()}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return errors.Wrap(errors.ErrCodeSerialization, err, "encode report")
				}
				fmt.Println(string(data))
			} else {
				printReport(report)
			}

			if !report.IsValid() {
				return errors.New(errors.ErrCodeValidation,
					"validation failed with %d errors", len(report.Errors()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the report as JSON")
	return cmd
}

// printReport renders a validation report with the shared status styles.
func printReport(r *validate.Report) {
	if r.IsValid() {
		printSuccess("Validation passed")
	} else {
		printError("Validation failed")
	}

	if n := len(r.Errors()); n > 0 {
		printNewline()
		printInfo("%d Errors:", n)
		for _, e := range r.Errors() {
			printDetail("• %s - %s", e.Path, e.Message)
		}
	}
	if n := len(r.Warnings()); n > 0 {
		printNewline()
		printWarning("%d Warnings:", n)
		for _, w := range r.Warnings() {
			printDetail("• %s - %s", w.Path, w.Message)
		}
	}
}
