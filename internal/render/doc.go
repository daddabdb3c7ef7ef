// Package render prints briefings for a terminal or a pipe. Colour follows
// NO_COLOR, CLICOLOR and CLICOLOR_FORCE; the wrap width follows the terminal.
package render
