// Package draft turns receipt extractions into expense payloads. An
// extraction is only a guess; the user reviews it, fills the gaps, and the
// result goes through the same validation as a manually entered expense.
package draft

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"spendlog/internal/api"
	"spendlog/internal/core"
)

// DateLayout is the calendar-day format used on the wire and in edits.
const DateLayout = "2006-01-02"

// FromExtraction builds a draft from an OCR response. Fields the service
// could not read stay unset; the recognized text is kept verbatim so the
// user can cross-check the guesses.
func FromExtraction(x api.Extraction) core.Draft {
	d := core.Draft{ExtractedText: x.ExtractedText}
	if x.Amount > 0 {
		m := core.FromFloat(x.Amount)
		d.Amount = &m
	}
	if c, ok := core.ParseCategory(x.Category); ok {
		d.Category = &c
	}
	if t, err := time.Parse(DateLayout, x.Date); err == nil {
		d.Date = &t
	}
	if s := strings.TrimSpace(x.Description); s != "" {
		d.Description = &s
	}
	return d
}

// Edits holds the user's corrections as raw input strings. An empty field
// means "keep whatever the draft has".
type Edits struct {
	Amount      string
	Category    string
	Date        string
	Description string
}

// ToPayload resolves edits over a draft and validates the result. Every
// missing or malformed field is reported in a single ValidationError, the
// same way the manual-entry path reports them.
func ToPayload(d core.Draft, e Edits) (core.Payload, error) {
	var p core.Payload
	var bad []string

	switch {
	case e.Amount != "":
		m, err := core.ParseAmount(e.Amount)
		if err != nil {
			bad = append(bad, core.FieldAmount)
		} else {
			p.Amount = m
		}
	case d.Amount != nil:
		p.Amount = *d.Amount
	}

	switch {
	case e.Category != "":
		c, ok := core.ParseCategory(e.Category)
		if !ok {
			bad = append(bad, core.FieldCategory)
		} else {
			p.Category = c
		}
	case d.Category != nil:
		p.Category = *d.Category
	}

	switch {
	case e.Date != "":
		t, err := time.Parse(DateLayout, e.Date)
		if err != nil {
			bad = append(bad, core.FieldDate)
		} else {
			p.Date = t
		}
	case d.Date != nil:
		p.Date = *d.Date
	}

	if e.Description != "" {
		p.Description = strings.TrimSpace(e.Description)
	} else if d.Description != nil {
		p.Description = *d.Description
	}

	if err := p.Validate(); err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			bad = mergeFields(bad, verr.Fields)
		}
		return core.Payload{}, &core.ValidationError{Fields: bad}
	}
	if len(bad) > 0 {
		return core.Payload{}, &core.ValidationError{Fields: bad}
	}
	return p, nil
}

// mergeFields unions two field lists keeping canonical order.
func mergeFields(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for _, f := range a {
		seen[f] = true
	}
	for _, f := range b {
		seen[f] = true
	}
	var out []string
	for _, f := range []string{core.FieldAmount, core.FieldCategory, core.FieldDate, core.FieldDescription} {
		if seen[f] {
			out = append(out, f)
		}
	}
	return out
}

// Scanner uploads receipt images and returns review drafts.
type Scanner struct {
	receipts api.ReceiptService
}

func NewScanner(receipts api.ReceiptService) *Scanner {
	return &Scanner{receipts: receipts}
}

// Scan sends the image to the extraction endpoint and wraps the response.
func (s *Scanner) Scan(ctx context.Context, filename string, image io.Reader) (core.Draft, error) {
	x, err := s.receipts.UploadReceipt(ctx, filename, image)
	if err != nil {
		return core.Draft{}, err
	}
	return FromExtraction(x), nil
}
