package descriptor_test

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowcodec/adapter"
	"rowcodec/internal/descriptor"
)

type Address struct {
	City string
	Zip  string
}

type Account struct {
	ID      int64   `row:"rename=account_id"`
	Balance int     `row:"from=atoi"`
	Code    string  `row:" try_from = parse "`
	Home    Address `row:"flatten"`
	Note    string  `row:"-"`
	secret  string
	Plain   bool
}

func adapters(t *testing.T) *adapter.Registry {
	t.Helper()

	r := adapter.NewRegistry()
	require.NoError(t, r.Register("atoi", adapter.From(func(s string) int { n, _ := strconv.Atoi(s); return n })))
	require.NoError(t, r.Register("parse", adapter.TryFrom(func(n int64) (string, error) {
		return strconv.FormatInt(n, 10), nil
	})))

	return r
}

func parse[T any](t *testing.T, opts descriptor.Options) (*descriptor.Record, error) {
	t.Helper()

	if opts.Adapters == nil {
		opts.Adapters = adapters(t)
	}

	return descriptor.Parse(reflect.TypeFor[T](), opts)
}

func TestParse_Directives(t *testing.T) {
	rec, err := parse[Account](t, descriptor.Options{})
	require.NoError(t, err)

	assert.Equal(t, "descriptor_test.Account", rec.Name)
	require.Len(t, rec.Fields, 5, spew.Sdump(rec.Fields))

	id, balance, code, home, plain := rec.Fields[0], rec.Fields[1], rec.Fields[2], rec.Fields[3], rec.Fields[4]

	assert.Equal(t, "account_id", id.ColumnName())
	assert.Equal(t, reflect.TypeFor[int64](), id.TargetType())

	require.NotNil(t, balance.From)
	assert.Equal(t, "atoi", balance.From.Name)
	assert.Equal(t, reflect.TypeFor[string](), balance.TargetType())
	assert.Equal(t, reflect.TypeFor[int](), balance.Declared)

	require.NotNil(t, code.TryFrom)
	assert.Equal(t, reflect.TypeFor[int64](), code.TargetType())

	assert.True(t, home.Flatten)
	assert.Equal(t, "Home", home.ColumnName())

	assert.Equal(t, "Plain", plain.ColumnName())
	assert.Equal(t, []int{6}, plain.Path)
	assert.Equal(t, -1, plain.Index, "indices are assigned by Validate")
}

func TestParse_TagKey(t *testing.T) {
	type Custom struct {
		A string `db:"rename=a" row:"-"`
	}

	rec, err := parse[Custom](t, descriptor.Options{TagKey: "db"})
	require.NoError(t, err)
	require.Len(t, rec.Fields, 1)
	assert.Equal(t, "a", rec.Fields[0].ColumnName())

	rec, err = parse[Custom](t, descriptor.Options{})
	require.NoError(t, err)
	assert.Empty(t, rec.Fields)
}

func TestParse_Errors(t *testing.T) {
	type Broken struct {
		A string `row:"renam=x"`
		B string `row:"rename"`
		C string `row:"flatten=yes"`
		D string `row:"rename="`
		E int    `row:"from=atio"`
		F string `row:"rename=f,rename=g"`
		G string `row:"try_from="`
	}

	_, err := parse[Broken](t, descriptor.Options{})

	var perr *descriptor.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, []string{
		"unknown_directive",
		"missing_value",
		"unexpected_value",
		"empty_column",
		"unknown_adapter",
		"duplicate_directive",
		"missing_value",
	}, perr.Diagnostics.Codes())

	assert.Equal(t, []string{"rename"}, perr.Diagnostics.Errors[0].Suggestions)
	assert.Equal(t, []string{"atoi"}, perr.Diagnostics.Errors[4].Suggestions)
	assert.Contains(t, err.Error(), `parse record descriptor_test.Broken: [descriptor_test.Broken] A: [unknown_directive] unknown directive "renam" (did you mean "rename"?)`)
}

func TestParse_NonStruct(t *testing.T) {
	_, err := parse[int](t, descriptor.Options{})
	require.EqualError(t, err, "parse record int: [int]: [non_struct] record type must be a struct, got int")
}

func TestParse_Overrides(t *testing.T) {
	yes, no := true, false
	col := "plain_flag"
	empty := ""

	rec, err := parse[Account](t, descriptor.Options{
		Overrides: map[string]descriptor.Override{
			"Note":    {Skip: &no},
			"Plain":   {Rename: &col},
			"Balance": {From: &empty},
			"Home":    {Skip: &yes},
		},
	})
	require.NoError(t, err)

	names := make([]string, len(rec.Fields))
	for i, f := range rec.Fields {
		names[i] = f.ColumnName()
	}

	assert.Equal(t, []string{"account_id", "Balance", "Code", "Note", "plain_flag"}, names)
	assert.Nil(t, rec.Fields[1].From)
}

func TestParse_OverrideErrors(t *testing.T) {
	_, err := parse[Account](t, descriptor.Options{
		Overrides: map[string]descriptor.Override{
			"Plian":  {},
			"secret": {},
		},
	})

	var perr *descriptor.ParseError
	require.ErrorAs(t, err, &perr)
	assert.ElementsMatch(t, []string{"unknown_field", "unexported_field"}, perr.Diagnostics.Codes())

	for _, d := range perr.Diagnostics.Errors {
		if d.Code == "unknown_field" {
			assert.Equal(t, []string{"Plain"}, d.Suggestions)
		}
	}
}
