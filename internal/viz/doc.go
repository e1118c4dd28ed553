// Package viz renders traces and the interactive live view in the
// terminal.
package viz
