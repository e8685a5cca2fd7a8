// Package docfacts extracts the facts a documentation comment is built from:
// declaration signatures, thrown exceptions, inline comments, returned
// identifiers and the indentation of the declaration.
//
// Every function reads only the nodes it is given and allocates fresh
// results, so extraction over one tree or many trees can run concurrently
// without coordination. Facts that cannot be determined are left out rather
// than reported as errors.
package docfacts
