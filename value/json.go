package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tailscale/hujson"
)

// MaxRepairAttempts bounds how many lines RepairJSON will drop before
// giving up on a document.
const MaxRepairAttempts = 4

// ErrUnrepairable is returned when a document cannot be made to parse.
var ErrUnrepairable = errors.New("unrepairable JSON")

// RepairJSON decodes a JSON object, tolerating the damage hand-edited
// codemeta.json files commonly carry. Valid input is decoded as is. Input
// that fails is first standardized, which removes trailing commas and
// comments without touching string contents. When that is not enough, the
// line implicated by the decoder's error offset is dropped and decoding is
// retried. A missing comma is reported on the line after the damage, so the
// preceding line is the one removed.
func RepairJSON(data []byte) (map[string]any, error) {
	data = trimBOM(data)

	var lastErr error
	for attempt := 0; attempt <= MaxRepairAttempts; attempt++ {
		out, err := decodeObject(data)
		if err == nil || errors.Is(err, ErrUnrepairable) {
			return out, err
		}
		lastErr = err

		if std, stdErr := hujson.Standardize(bytes.Clone(data)); stdErr == nil {
			slog.Debug("removed trailing commas and comments from JSON content")
			out, err := decodeObject(std)
			if err != nil && !errors.Is(err, ErrUnrepairable) {
				err = fmt.Errorf("%w: %v", ErrUnrepairable, err)
			}
			return out, err
		}

		offset, ok := errorOffset(err)
		if !ok {
			break
		}
		line := lineAt(data, offset)
		if line > 1 {
			line--
		}
		slog.Debug("skipping line in JSON content and retrying", "line", line, "err", err)
		data = dropLine(data, line)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnrepairable, lastErr)
}

func decodeObject(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: document is not an object", ErrUnrepairable)
	}
	return out, nil
}

func trimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
}

func errorOffset(err error) (int64, bool) {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Offset, true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Offset, true
	}
	return 0, false
}

// lineAt returns the 1-based line containing byte offset.
func lineAt(data []byte, offset int64) int {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}

// dropLine removes the 1-based line n.
func dropLine(data []byte, n int) []byte {
	lines := bytes.Split(data, []byte("\n"))
	if n < 1 || n > len(lines) {
		return data
	}
	lines = append(lines[:n-1], lines[n:]...)
	return bytes.Join(lines, []byte("\n"))
}
