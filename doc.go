// Package shape implements a small runtime schema validator over a closed
// set of variants: string, number, unknown, optional, array, object, union,
// and intersection.
//
// Schema nodes are immutable values assembled once via factory functions
// (String, Number, Unknown, Array, Object) and fluent builders (Optional,
// Or, And) that always return new nodes. Parse walks an input value against
// the node tree and reports Issues on mismatch; on success the original
// value is returned unchanged. Nodes hold no external resources and may be
// shared across goroutines.
package shape
