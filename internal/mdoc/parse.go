package mdoc

import (
	"github.com/fxamacker/cbor/v2"
)

type issuerSignedWire struct {
	NameSpaces map[string][]cbor.RawMessage `cbor:"nameSpaces"`
	IssuerAuth cbor.RawMessage              `cbor:"issuerAuth"`
}

type issuerSignedItemWire struct {
	DigestID          int             `cbor:"digestID"`
	Random            []byte          `cbor:"random"`
	ElementIdentifier string          `cbor:"elementIdentifier"`
	ElementValue      cbor.RawMessage `cbor:"elementValue"`
}

type validityInfoWire struct {
	Signed     string `cbor:"signed"`
	ValidFrom  string `cbor:"validFrom"`
	ValidUntil string `cbor:"validUntil"`
}

type mobileSecurityObjectWire struct {
	DocType      string                    `cbor:"docType"`
	ValidityInfo validityInfoWire          `cbor:"validityInfo"`
	ValueDigests map[string]map[int][]byte `cbor:"valueDigests"`
}

// unwrapTag24 strips a CBOR tag #24 ("encoded CBOR data item", RFC 8949
// §3.4.5.1) envelope, returning the enclosed bytes as-is if no tag #24 is
// present.
func unwrapTag24(raw cbor.RawMessage) ([]byte, error) {
	var tag cbor.RawTag
	if err := cbor.Unmarshal(raw, &tag); err == nil && tag.Number == 24 {
		var inner []byte
		if err := cbor.Unmarshal(tag.Content, &inner); err != nil {
			return nil, ErrMalformedCBOR
		}
		return inner, nil
	}
	var inner []byte
	if err := cbor.Unmarshal(raw, &inner); err != nil {
		return nil, ErrMalformedCBOR
	}
	return inner, nil
}

// ParseIssuerSigned decodes an mdoc's IssuerSigned CBOR structure (spec.md
// GLOSSARY "Mdoc"): disclosed namespaces/attributes, the MSO they commit
// to, and the issuer's COSE_Sign1 signature.
func ParseIssuerSigned(raw []byte) (*IssuerSigned, error) {
	var wire issuerSignedWire
	if err := cbor.Unmarshal(raw, &wire); err != nil {
		return nil, ErrMalformedCBOR
	}

	sig, err := decodeSign1(wire.IssuerAuth)
	if err != nil {
		return nil, err
	}
	msoBytes, err := unwrapTag24(cbor.RawMessage(sig.Payload))
	if err != nil {
		return nil, err
	}
	var msoWire mobileSecurityObjectWire
	if err := cbor.Unmarshal(msoBytes, &msoWire); err != nil {
		return nil, ErrMalformedCBOR
	}

	nameSpaces := make(map[string][]IssuerSignedItem, len(wire.NameSpaces))
	for ns, items := range wire.NameSpaces {
		decoded := make([]IssuerSignedItem, 0, len(items))
		for _, raw := range items {
			itemBytes, err := unwrapTag24(raw)
			if err != nil {
				return nil, err
			}
			var itemWire issuerSignedItemWire
			if err := cbor.Unmarshal(itemBytes, &itemWire); err != nil {
				return nil, ErrMalformedCBOR
			}
			decoded = append(decoded, IssuerSignedItem{
				DigestID:          itemWire.DigestID,
				Random:            itemWire.Random,
				ElementIdentifier: itemWire.ElementIdentifier,
				ElementValueCBOR:  []byte(itemWire.ElementValue),
			})
		}
		nameSpaces[ns] = decoded
	}

	return &IssuerSigned{
		NameSpaces: nameSpaces,
		MSO: MobileSecurityObject{
			DocType: msoWire.DocType,
			ValidityInfo: ValidityInfo{
				Signed:     msoWire.ValidityInfo.Signed,
				ValidFrom:  msoWire.ValidityInfo.ValidFrom,
				ValidUntil: msoWire.ValidityInfo.ValidUntil,
			},
			ValueDigests: msoWire.ValueDigests,
		},
		MSOBytes: msoBytes,
		Sig:      sig,
	}, nil
}

// Attribute looks up a disclosed element's raw CBOR value by namespace and
// element identifier.
func (is *IssuerSigned) Attribute(namespace, elementIdentifier string) ([]byte, error) {
	items, ok := is.NameSpaces[namespace]
	if !ok {
		return nil, ErrMissingNameSpace
	}
	for _, item := range items {
		if item.ElementIdentifier == elementIdentifier {
			return item.ElementValueCBOR, nil
		}
	}
	return nil, ErrMissingAttribute
}
