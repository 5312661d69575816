package slice

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownType is returned when decoding a slice whose type is not in the
// vocabulary.
var ErrUnknownType = errors.New("unknown slice type")

// fieldDecoders maps each slice type to the decoder of its Fields struct.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fieldDecoders = map[Type]func(json.RawMessage) (Fields, error){
	TypeTypography:   decodeFields[Typography],
	TypeNotification: decodeFields[Notification],
	TypeAccordion:    decodeFields[Accordion],
	TypeProsCons:     decodeFields[ProsCons],
	TypeChecklist:    decodeFields[Checklist],
	TypeTips:         decodeFields[Tips],
	TypeTable:        decodeFields[Table],
	TypeDosDonts:     decodeFields[DosDonts],
	TypeQuote:        decodeFields[Quote],
	TypeCallToAction: decodeFields[CallToAction],
	TypeImage:        decodeFields[Image],
	TypeDivider:      decodeFields[Divider],
}

func decodeFields[F Fields](data json.RawMessage) (Fields, error) {
	var fields F
	if len(data) > 0 {
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

// UnmarshalJSON decodes a slice, choosing the Fields type from sliceType.
// Missing lists decode as empty lists, as with New.
func (s *Slice) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type      Type            `json:"sliceType"`
		Variation string          `json:"variation"`
		Fields    json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decode, ok := fieldDecoders[raw.Type]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, raw.Type)
	}
	fields, err := decode(raw.Fields)
	if err != nil {
		return fmt.Errorf("decode %s fields: %w", raw.Type, err)
	}

	*s = New(fields, raw.Variation)
	return nil
}
