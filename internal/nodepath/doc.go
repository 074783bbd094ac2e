/*
Package nodepath provides a structured representation for positional node
addresses within an attributed tree.

The format is a dot-separated sequence of segments, each a node name with an
optional index, e.g. `Employees.Cook[0]`. The index is the node's position
among all children of its parent, so two addresses are equal exactly when
they point at the same place in the same tree.
*/
package nodepath
