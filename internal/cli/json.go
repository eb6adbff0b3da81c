package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Global JSON output flag
var jsonOutput bool

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Warning represents a non-fatal warning.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count       int   `json:"count,omitempty"`
	QueryTimeMs int64 `json:"query_time_ms,omitempty"`
}

// writeResponse encodes resp to stdout. HTML characters are left unescaped
// so code containing <, > and & stays readable.
func writeResponse(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		logger.Error("failed to write JSON response", "error", err)
	}
}

func outputSuccess(data interface{}, meta *Meta) {
	outputSuccessWithWarnings(data, nil, meta)
}

func outputSuccessWithWarnings(data interface{}, warnings []Warning, meta *Meta) {
	writeResponse(Response{
		OK:       true,
		Data:     data,
		Warnings: warnings,
		Meta:     meta,
	})
}

func isJSONOutput() bool {
	return jsonOutput
}

// handleError reports err under code. In JSON mode the envelope carries the
// error and nil is returned so cobra prints nothing more. In text mode the
// error, with the suggestion appended, is returned for cobra to print.
func handleError(code string, err error, suggestion string) error {
	return reportError(ErrorInfo{Code: code, Message: err.Error(), Suggestion: suggestion}, err)
}

func handleErrorMsg(code, message, suggestion string) error {
	return handleError(code, errors.New(message), suggestion)
}

// handleErrorWithDetails is handleError with structured details for JSON
// consumers.
func handleErrorWithDetails(code, message, suggestion string, details interface{}) error {
	return reportError(ErrorInfo{
		Code:       code,
		Message:    message,
		Details:    details,
		Suggestion: suggestion,
	}, errors.New(message))
}

func reportError(info ErrorInfo, err error) error {
	if jsonOutput {
		writeResponse(Response{Error: &info})
		return nil
	}
	if info.Suggestion != "" {
		return fmt.Errorf("%w\n\n%s", err, info.Suggestion)
	}
	return err
}
