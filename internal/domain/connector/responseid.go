package connector

// ResponseIDKind tags the populated variant of a ResponseID.
type ResponseIDKind string

const (
	// IDConnectorTransaction is a plain transaction or refund identifier.
	IDConnectorTransaction ResponseIDKind = "connector_transaction_id"
	// IDEncodedData is an identifier that still carries provider encoding
	// (a composite token, a base64 blob) and must be passed back verbatim.
	IDEncodedData ResponseIDKind = "encoded_data"
	// IDNone marks extraction finding no identifier. Whether that is fatal
	// depends on the flow, so it is a value, not an error.
	IDNone ResponseIDKind = "no_response_id"
)

// ResponseID is a sum type over the identifier shapes a provider response can
// yield. The zero value is not valid; use the constructors.
type ResponseID struct {
	kind  ResponseIDKind
	value string
}

// ConnectorTransactionID wraps a stable provider identifier.
func ConnectorTransactionID(id string) ResponseID {
	if id == "" {
		return NoResponseID()
	}
	return ResponseID{kind: IDConnectorTransaction, value: id}
}

// EncodedDataID wraps an identifier that must be echoed back unparsed.
func EncodedDataID(data string) ResponseID {
	if data == "" {
		return NoResponseID()
	}
	return ResponseID{kind: IDEncodedData, value: data}
}

// NoResponseID marks an absent identifier.
func NoResponseID() ResponseID {
	return ResponseID{kind: IDNone}
}

// Kind returns the variant tag.
func (r ResponseID) Kind() ResponseIDKind { return r.kind }

// Value returns the identifier and whether one is present.
func (r ResponseID) Value() (string, bool) {
	return r.value, r.kind == IDConnectorTransaction || r.kind == IDEncodedData
}

// Empty reports whether no identifier was extracted.
func (r ResponseID) Empty() bool { return r.kind == IDNone || r.kind == "" }
