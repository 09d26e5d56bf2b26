package config

import (
	"encoding/json"
	"errors"
	"fmt"
)

// FormatError adds the line and character of a JSON syntax or type error in
// input to err.
func FormatError(input []byte, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, character, offsetErr := lineAndCharacter(input, int(syntaxErr.Offset))
		if offsetErr != nil {
			return err
		}

		return fmt.Errorf("syntax error at line %d, character %d: %w", line, character, err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, character, offsetErr := lineAndCharacter(input, int(typeErr.Offset))
		if offsetErr != nil {
			return err
		}

		return fmt.Errorf("expect type '%s' for '%s' at line %d, character %d: %w", typeErr.Type.String(), typeErr.Field, line, character, err)
	}

	return err
}

func lineAndCharacter(input []byte, offset int) (line int, character int, err error) {
	if offset > len(input) || offset < 0 {
		return 0, 0, fmt.Errorf("couldn't find offset %d within the input", offset)
	}

	line = 1

	for i, b := range input {
		if b == '\n' {
			line++
			character = 0
		}
		character++
		if i == offset {
			break
		}
	}

	return line, character, nil
}
