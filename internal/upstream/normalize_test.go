package upstream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"data envelope", `{"data":{"status":"pending"}}`, `{"status":"pending"}`},
		{"double envelope", `{"data":{"data":[1,2]}}`, `[1,2]`},
		{"data holding array", `{"data":[{"a":1}]}`, `[{"a":1}]`},
		{"bare array", `[{"a":1}]`, `[{"a":1}]`},
		{"bare object", `{"status":"pending"}`, `{"status":"pending"}`},
		{"scalar", `42`, `42`},
		{"null", `null`, `null`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(json.RawMessage(tc.in))
			assert.JSONEq(t, tc.want, string(got))
		})
	}
}

func TestStringList(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"json array", `["pdf","jpg"]`, []string{"pdf", "jpg"}},
		{"encoded array", `"[\"pdf\",\"jpg\"]"`, []string{"pdf", "jpg"}},
		{"comma string", `"pdf, jpg,png"`, []string{"pdf", "jpg", "png"}},
		{"single value", `"pdf"`, []string{"pdf"}},
		{"empty string", `""`, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var list StringList
			require.NoError(t, json.Unmarshal([]byte(tc.in), &list))
			assert.Equal(t, StringList(tc.want), list)
		})
	}
}
