// Package command encodes workflow commands as single lines of text.
//
// # Workflow Command Format
//
// # Overview
//
// A worker process cannot call its supervising runner directly. The only
// channel is the worker's standard output: the worker prints one structured
// line per instruction and the runner parses it back out. Goals:
//
//  1. One command is always exactly one line, for any input value
//  2. The runner can recover the original values losslessly
//  3. Everything that is not a command passes through as plain log text
//
// # Format Specification
//
// Each command line follows this format:
//
//	::name key1=value1,key2=value2::message
//
// The space and the property block are omitted entirely when a command has
// no properties:
//
//	::name::message
//
// # Fields
//
//   - name: Command name. A simple token matching [a-zA-Z-]+. For example:
//     set-env, add-mask, group.
//   - key: Property key, same token shape as name.
//   - value: Property value with %, CR, LF, `:` and `,` percent-escaped.
//     Order is significant and preserved.
//   - `::` Literal sentinel opening the line and separating the header from
//     the message.
//   - message: Free text with %, CR and LF percent-escaped. May be empty.
//
// # Escaping
//
// Message bodies apply three substitutions, in this order:
//
//	%  ->  %25
//	\r ->  %0D
//	\n ->  %0A
//
// Property values additionally escape the two structural separators:
//
//	:  ->  %3A
//	,  ->  %2C
//
// The % substitution must come first so that escape sequences introduced by
// the later substitutions are never re-escaped. Decoding reverses the
// substitutions in the opposite order, with %25 resolved last. Under these
// rules encoding is injective: distinct inputs never produce the same line,
// and any string value survives a round trip unchanged.
//
// # Examples
//
// Example 1: single property
//
//	::set-output name=result::42
//
// Example 2: value containing a newline and a percent sign
//
//	::set-env name=MSG::50%25 done%0Asecond line
//
// Example 3: no properties, empty message
//
//	::endgroup::
package command
