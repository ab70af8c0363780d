package cli

import (
	"github.com/spf13/cobra"

	"github.com/strataforge/agsi/pkg/codec"
)

// newConvertCmd builds the convert command. The target format name is parsed
// before any file is touched so an unknown name fails without side effects.
func newConvertCmd() *cobra.Command {
	var (
		formatName  string
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Re-encode a document in another wire format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			logger := loggerFromContext(cmd.Context())

			if formatName == "" {
				formatName = cfg.DefaultFormat
			}
			outFormat, err := codec.ParseFormat(formatName)
			if err != nil {
				return err
			}
			inFormat, err := codec.ParseFormat(inputFormat)
			if err != nil {
				return err
			}

			p := newProgress(logger)
			doc, err := codec.ReadFileFormat(args[0], inFormat)
			if err != nil {
				return err
			}
			if err := codec.WriteFileFormat(args[1], doc, outFormat); err != nil {
				return err
			}
			p.done("Converted to " + outFormat.String())

			printSuccess("Converted %s", args[0])
			printFile(args[1])
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "output format: json, json-compact, avro, protobuf (default: config default_format)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "json", "input format")
	return cmd
}
