package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRefParser(t *testing.T) {
	t.Log("Strips known prefixes")
	{
		require.Equal(t, "main", RefParser("refs/heads/main"))
		require.Equal(t, "v1.0", RefParser("refs/tags/v1.0"))
		require.Equal(t, "feature/with/slashes", RefParser("refs/heads/feature/with/slashes"))
	}

	t.Log("Pass-through")
	{
		require.Equal(t, "main", RefParser("main"))
		require.Equal(t, "refs/remotes/origin/main", RefParser("refs/remotes/origin/main"))
		require.Equal(t, "refs/heads/", RefParser("refs/heads/"))
		require.Equal(t, "", RefParser(""))
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "diacritics and space", in: "José Pérez", want: "jose.perez"},
		{name: "whitespace runs", in: "Ana  María\tLópez", want: "ana.maria.lopez"},
		{name: "already a handle", in: "jdoe", want: "jdoe"},
		{name: "upper case", in: "JOHN DOE", want: "john.doe"},
		{name: "cedilla and tilde", in: "François Nuñez", want: "francois.nunez"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DisplayName(tt.in))
		})
	}
}

func TestAtName(t *testing.T) {
	require.Equal(t, "@jose.perez", AtName(&UserModel{Name: "José Pérez"}))
	require.Equal(t, "", AtName(nil))
	require.Equal(t, "", AtName(&UserModel{Username: "jperez"}))
}

func TestShortSHA(t *testing.T) {
	require.Equal(t, "1606d3dd", ShortSHA("1606d3dd4c4dc83ee8fed8d3cfd911da851bf740"))
	require.Equal(t, "abc", ShortSHA("abc"))
	require.Equal(t, "", ShortSHA(""))
}
