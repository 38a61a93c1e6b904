package domain

// Record field names understood by the loader.
const (
	FieldID         = "id"
	FieldType       = "type"
	FieldName       = "name"
	FieldRootNode   = "rootnode"
	FieldChildNodes = "childnodes"
	FieldDecoratee  = "decoratee"
	FieldAction     = "action"
)

// Built-in type names registered by default.
const (
	KindSequence    = "Sequence"
	KindSelector    = "Selector"
	KindPassThrough = "PassThrough"
	KindInvert      = "Invert"
	KindLeafAction  = "LeafAction"
	KindActor       = "Actor"

	// KindLeafIterative is a leaf that reports ready a fixed number of times
	// before it succeeds.
	KindLeafIterative = "NodeLeafIterative"
)
