package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	a := assert.New(t)

	tok, err := Generate(20)
	a.NoError(err)
	a.Len(tok, 20)
	a.Regexp(regexp.MustCompile(`^[A-Za-z0-9_-]{20}\z`), tok)

	tok2, err := Generate(20)
	a.NoError(err)
	a.NotEqual(tok, tok2)

	short, err := Generate(8)
	a.NoError(err)
	a.Len(short, 8)
}
