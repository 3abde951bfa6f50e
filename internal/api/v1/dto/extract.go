package dto

import "audio2num/internal/app/numbers"

// ExtractRequest asks for the number in a piece of text. Text must be
// present but may be empty; empty text has no number.
type ExtractRequest struct {
	Text *string `json:"text" binding:"required,max=65536"`
}

// Input returns the text to scan.
func (r *ExtractRequest) Input() string {
	if r.Text == nil {
		return ""
	}
	return *r.Text
}

// ExtractResponse carries the extracted number, encoded as a decimal string.
type ExtractResponse struct {
	Found  bool            `json:"found"`
	Number *numbers.Number `json:"number,omitempty"`
	Tokens []string        `json:"tokens"`
}
