package numfmt

// Built-in formatter identifiers.
const (
	SmartNumber       = "SMART_NUMBER"
	SmartNumberSigned = "SMART_NUMBER_SIGNED"
)

// DefaultSmartLabel is the catalog label of the smart formatters.
const DefaultSmartLabel = "Adaptive formatter"
