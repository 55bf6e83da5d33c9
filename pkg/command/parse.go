package command

import (
	"fmt"
	"strings"
)

// Parse decodes one command line back into a Command. This is the runner
// side of the contract: everything String produces parses back to an equal
// Command. Lines without the leading `::` sentinel or the closing `::` are
// not commands and produce an error.
func Parse(line string) (Command, error) {
	rest, ok := strings.CutPrefix(line, "::")
	if !ok {
		return Command{}, fmt.Errorf("not a command line: missing :: sentinel")
	}

	// The header never contains an unescaped colon, so the first :: after
	// the sentinel closes it. Colons inside the message stay untouched.
	header, message, ok := strings.Cut(rest, "::")
	if !ok {
		return Command{}, fmt.Errorf("not a command line: missing closing ::")
	}

	name, propBlock, hasProps := strings.Cut(header, " ")
	if name == "" {
		return Command{}, fmt.Errorf("command line has empty name")
	}

	cmd := Command{
		Name:    name,
		Message: UnescapeData(message),
	}

	if hasProps {
		for _, pair := range strings.Split(propBlock, ",") {
			key, value, ok := strings.Cut(pair, "=")
			if !ok || key == "" {
				return Command{}, fmt.Errorf("malformed property %q in command %q", pair, name)
			}
			cmd.Properties = append(cmd.Properties, Property{
				Key:   key,
				Value: UnescapeProperty(value),
			})
		}
	}

	return cmd, nil
}
