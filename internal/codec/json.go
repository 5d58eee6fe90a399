package codec

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"glossgraph/internal/domain"
)

// JSONCodec reads and writes glossaries as JSON. Besides the graph layout it
// accepts a term list, bare or under "terms". Anything else, including null
// and {}, is ErrNoGraph.
type JSONCodec struct{}

// NewJSONCodec returns the JSON codec
func NewJSONCodec() *JSONCodec { return &JSONCodec{} }

// Format is "json"
func (*JSONCodec) Format() string { return "json" }

// Parse decodes one JSON glossary document from r
func (*JSONCodec) Parse(r io.Reader) (*domain.GraphPayload, error) {
	br := bufio.NewReader(r)
	first, err := firstByte(br)
	if err != nil {
		return nil, fmt.Errorf("read glossary JSON: %w", err)
	}
	dec := json.NewDecoder(br)

	if first == '[' {
		var terms []domain.Term
		if err := dec.Decode(&terms); err != nil {
			return nil, fmt.Errorf("decode glossary JSON term list: %w", err)
		}
		return domain.PayloadFromTerms(terms), nil
	}

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode glossary JSON: %w", err)
	}
	payload, err := doc.payload()
	if err != nil {
		return nil, fmt.Errorf("decode glossary JSON: %w", err)
	}
	return payload, nil
}

// firstByte peeks past leading whitespace without consuming anything else
func firstByte(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

// Export writes payload as indented JSON
func (*JSONCodec) Export(payload *domain.GraphPayload, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encode glossary JSON: %w", err)
	}
	return nil
}
