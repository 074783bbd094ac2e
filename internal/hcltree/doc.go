// Package hcltree evaluates HCL scripts into attributed trees.
//
// Every block becomes a tree element named by its block type. Block labels are
// stored as attributes (see config.Descriptor.LabelAttributes) and every
// attribute expression is evaluated and rendered to its string form, so the
// binder downstream only ever sees raw strings:
//
//	Employees {
//	  Cook "gordon" {
//	    catchphrase = upper("it's raw")
//	    years       = 2 * 10
//	  }
//	}
//
// Expressions can reference external variables as var.<name> and call a small
// standard function library. Null values leave the attribute absent; lists,
// maps and objects are rejected because a tree attribute holds a single
// scalar.
package hcltree
