package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/strataforge/agsi/pkg/codec"
	"github.com/strataforge/agsi/pkg/errors"
	"github.com/strataforge/agsi/pkg/validate"
)

// The agent command serves document tools over stdio for editor and
// assistant integrations. Requests and responses are newline-delimited JSON
// objects; each request names a tool and its parameters and carries an id
// the response echoes back.

// agentRequest is one incoming tool call.
type agentRequest struct {
	ID     json.RawMessage `json:"id"`
	Tool   string          `json:"tool"`
	Params agentParams     `json:"params"`
}

// agentParams is the union of all tool parameters.
type agentParams struct {
	Path         string `json:"path"`
	Name         string `json:"name,omitempty"`
	MaterialType string `json:"materialType,omitempty"`
}

// agentResponse is one outgoing result. Exactly one of Result and Error is
// set.
type agentResponse struct {
	ID     json.RawMessage `json:"id"`
	Result any             `json:"result,omitempty"`
	Error  *agentError     `json:"error,omitempty"`
}

type agentError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// newAgentCmd builds the agent command.
func newAgentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agent",
		Short: "Serve document tools over line-delimited JSON on stdio",
		Long: `Serves four tools over newline-delimited JSON on stdin/stdout:

  agsi_validate          {"path": ...}
  agsi_get_info          {"path": ...}
  agsi_extract_materials {"path": ...}
  agsi_query_materials   {"path": ..., "name": ..., "materialType": ...}

Each request is {"id": ..., "tool": ..., "params": {...}}; the response
echoes the id with either a result or an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgent(cmd.Context(), os.Stdin, os.Stdout)
		},
	}
}

// runAgent reads requests from r until EOF or context cancellation and
// writes one response line per request to w. Malformed lines produce an
// error response with a null id rather than killing the loop.
func runAgent(ctx context.Context, r io.Reader, w io.Writer) error {
	logger := loggerFromContext(ctx)
	logger.Info("agent listening on stdio")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	out := json.NewEncoder(w)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req agentRequest
		if err := json.Unmarshal(line, &req); err != nil {
			writeAgentError(out, nil, errors.Wrap(errors.ErrCodeJSONParse, err, "malformed request"))
			continue
		}
		logger.Debug("tool call", "tool", req.Tool)

		result, err := handleAgentRequest(&req)
		if err != nil {
			writeAgentError(out, req.ID, err)
			continue
		}
		if encErr := out.Encode(agentResponse{ID: req.ID, Result: result}); encErr != nil {
			return errors.Wrap(errors.ErrCodeIO, encErr, "write response")
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "read requests")
	}
	return nil
}

func writeAgentError(out *json.Encoder, id json.RawMessage, err error) {
	resp := agentResponse{ID: id, Error: &agentError{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	}}
	_ = out.Encode(resp)
}

// handleAgentRequest dispatches one tool call.
func handleAgentRequest(req *agentRequest) (any, error) {
	switch req.Tool {
	case "agsi_validate":
		doc, err := codec.ReadFile(req.Params.Path)
		if err != nil {
			return nil, err
		}
		report := validate.Document(doc)
		return struct {
			Valid    bool               `json:"valid"`
			Errors   []validate.Issue   `json:"errors"`
			Warnings []validate.Warning `json:"warnings"`
		}{report.IsValid(), report.Errors(), report.Warnings()}, nil

	case "agsi_get_info":
		doc, err := codec.ReadFile(req.Params.Path)
		if err != nil {
			return nil, err
		}
		return inspect(doc), nil

	case "agsi_extract_materials":
		doc, err := codec.ReadFile(req.Params.Path)
		if err != nil {
			return nil, err
		}
		return queryMaterials(doc, "", ""), nil

	case "agsi_query_materials":
		doc, err := codec.ReadFile(req.Params.Path)
		if err != nil {
			return nil, err
		}
		return queryMaterials(doc, req.Params.Name, req.Params.MaterialType), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown tool %q", req.Tool)
}
