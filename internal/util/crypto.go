package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateNChar returns a url safe random id of n characters.
func GenerateNChar(n int) (string, error) {
	id, err := gonanoid.New(n)
	if err != nil {
		return "", err
	}
	return id, nil
}
