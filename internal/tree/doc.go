// Package tree defines the attributed tree consumed by the binder: an ordered,
// named node with string attributes and ordered children.
//
// The binder depends only on the Node interface. Script evaluators (HCL,
// YAML) produce *Element values, and tests can build trees by hand.
package tree
