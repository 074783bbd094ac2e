// Package config defines the format-agnostic contract for turning
// configuration scripts into attributed trees.
//
// A Descriptor names the root element to extract and the external variables
// made available to the script. Concrete Loader implementations, such as for
// HCL and YAML, are provided in separate packages.
package config
