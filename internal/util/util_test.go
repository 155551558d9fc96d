package util

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	a := assert.New(t)

	a.Equal("fallback", Getenv("test_getenv", "fallback"))

	unset := SetEnv("test_getenv", "value")
	defer unset()
	a.Equal("value", Getenv("test_getenv", "fallback"))
}

func TestSetEnv(t *testing.T) {
	a := assert.New(t)
	_, found := os.LookupEnv("test_foo")

	a.False(found)
	unset1 := SetEnv("test_foo", "bar")
	a.Equal("bar", os.Getenv("test_foo"))

	unset2 := SetEnv("test_foo", "bar2")
	a.Equal("bar2", os.Getenv("test_foo"))
	unset2()
	a.Equal("bar", os.Getenv("test_foo"))
	unset1()

	_, found = os.LookupEnv("test_foo")
	a.False(found)
}

type fixedGenerator int

func (f fixedGenerator) Intn(n int) int {
	return int(f) % n
}

func TestGetRandomName(t *testing.T) {
	a := assert.New(t)

	prev := random
	defer func() { random = prev }()

	random = fixedGenerator(0)
	a.Equal("Lucky Ace", GetRandomName())

	random = fixedGenerator(1)
	a.Equal("Bold Dealer", GetRandomName())

	random = prev
	parts := strings.SplitN(GetRandomName(), " ", 2)
	a.Len(parts, 2)
}

func TestRandomEmail(t *testing.T) {
	a := assert.New(t)

	email := RandomEmail()
	a.True(strings.HasSuffix(email, "@example.domain"))
	a.NotEqual(email, RandomEmail())
}
