package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetLines_StopsAtEmptyLine(t *testing.T) {
	var out bytes.Buffer
	got, err := GetLines(rdr("a\nb\n\nc\n"), "Enter lines", &out)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got)
}

func TestGetMetadata(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMetadata(rdr("name=invoice\nnotes=march\n\n"), &out)
	require.NoError(t, err)
	require.Equal(t, []string{"name=invoice", "notes=march"}, got)
}

func TestGetSecret(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("s3cret"), nil
	}
	var out bytes.Buffer
	got, err := GetSecret(&out)
	require.NoError(t, err)
	require.Equal(t, []byte("s3cret"), got)
}

func TestGetSecret_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetSecret(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}
