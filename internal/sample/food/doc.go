// Package food is a small sample domain for the binder: a restaurant's staff
// directory. It shows inheritance of common employee attributes, defaults,
// a keyed collection of polymorphic employees and a singleton director.
package food
