package ledgerclient

import (
	"bytes"
	"encoding/json"
	"strings"
)

const unrecognizedFormatMsg = "unrecognized response format"

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type submitEntry struct {
	Failed  bool            `json:"failed"`
	Status  json.RawMessage `json:"status"`
	Code    int             `json:"code"`
	Error   *rpcError       `json:"error"`
	Message string          `json:"message"`
}

// ParseSubmitResponse normalizes every response shape the network produces
// into exactly one of success+ids or failure+message. Rules are applied in
// order:
//
//  1. any list of sub-results is scanned for a failed/non-ok entry, which
//     short-circuits to failure with that entry's message;
//  2. a transaction id is extracted from any of the aliased fields txid,
//     transactionId, transactionHash, and a content hash from any of hash,
//     transactionHash, simpleHash;
//  3. with no result at all, a top-level error.message is reported;
//  4. anything else is an unrecognized-format failure.
func ParseSubmitResponse(raw []byte) *SubmitResult {
	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return failure(unrecognizedFormatMsg)
	}

	if len(envelope.Result) > 0 && !bytes.Equal(envelope.Result, []byte("null")) {
		return parseResult(envelope.Result)
	}

	if envelope.Error != nil && envelope.Error.Message != "" {
		return failure(envelope.Error.Message)
	}

	return failure(unrecognizedFormatMsg)
}

func parseResult(result json.RawMessage) *SubmitResult {
	result = bytes.TrimSpace(result)

	// Batch operations answer with a list of independently failable
	// sub-results.
	if len(result) > 0 && result[0] == '[' {
		var entries []json.RawMessage
		if err := json.Unmarshal(result, &entries); err != nil {
			return failure(unrecognizedFormatMsg)
		}
		if res := scanEntries(entries); res != nil {
			return res
		}
		for _, entry := range entries {
			if res := extractIDs(entry, result); res != nil {
				return res
			}
		}
		return &SubmitResult{Ok: true, Data: result}
	}

	// Some operation families nest a list of per-operation status codes
	// under an outer result object.
	var nested struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(result, &nested); err == nil {
		inner := bytes.TrimSpace(nested.Result)
		if len(inner) > 0 && inner[0] == '[' {
			var entries []json.RawMessage
			if err := json.Unmarshal(inner, &entries); err == nil {
				if res := scanEntries(entries); res != nil {
					return res
				}
			}
		}
	}

	if res := extractIDs(result, result); res != nil {
		return res
	}

	return failure(unrecognizedFormatMsg)
}

// scanEntries returns a failure for the first failed entry, nil when all
// entries are fine.
func scanEntries(entries []json.RawMessage) *SubmitResult {
	for _, raw := range entries {
		var entry submitEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if !entryFailed(entry) {
			continue
		}

		msg := "submission failed"
		if entry.Error != nil && entry.Error.Message != "" {
			msg = entry.Error.Message
		} else if entry.Message != "" {
			msg = entry.Message
		}
		return failure(msg)
	}
	return nil
}

func entryFailed(entry submitEntry) bool {
	if entry.Failed || entry.Code != 0 {
		return true
	}
	var status string
	if err := json.Unmarshal(entry.Status, &status); err == nil {
		switch strings.ToLower(status) {
		case "", "ok", "delivered", "pending":
			return false
		default:
			return true
		}
	}
	return false
}

// extractIDs pulls the aliased transaction id and hash fields out of an
// object, tolerating any non-string junk around them. It returns nil when
// the object carries no id at all.
func extractIDs(raw, data json.RawMessage) *SubmitResult {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	txID := firstString(fields, "txid", "transactionId", "transactionHash")
	hash := firstString(fields, "hash", "transactionHash", "simpleHash")
	if txID == "" && hash == "" {
		return nil
	}

	return &SubmitResult{
		Ok:            true,
		TransactionID: txID,
		Hash:          hash,
		Data:          data,
	}
}

func firstString(fields map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := fields[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func failure(msg string) *SubmitResult {
	return &SubmitResult{Ok: false, Message: msg}
}
