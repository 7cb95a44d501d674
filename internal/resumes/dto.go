package resumes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const maxPatchBytes = 1 << 20

// ResumeResponse is the list item shape. The identifier is not exposed.
type ResumeResponse struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

type patchRequest struct {
	Filename *string `json:"filename"`
	Text     *string `json:"text"`
}

func toResponse(r Resume) ResumeResponse {
	return ResumeResponse{Filename: r.Filename, Text: r.Text}
}

func toResponses(items []Resume) []ResumeResponse {
	out := make([]ResumeResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	return out
}

// decodePatch reads a JSON object holding only filename and/or text strings.
// Anything else, including a null or non-object body, is ErrInvalidPatch.
func decodePatch(r io.Reader) (Patch, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxPatchBytes+1))
	if err != nil {
		return Patch{}, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	if len(raw) > maxPatchBytes {
		return Patch{}, fmt.Errorf("%w: body too large", ErrInvalidPatch)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Patch{}, fmt.Errorf("%w: expected a JSON object", ErrInvalidPatch)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	var req patchRequest
	if err := dec.Decode(&req); err != nil {
		return Patch{}, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Patch{}, fmt.Errorf("%w: trailing data", ErrInvalidPatch)
	}
	return Patch{Filename: req.Filename, Text: req.Text}, nil
}
