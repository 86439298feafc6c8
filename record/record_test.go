package record_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowcodec/expr"
	"rowcodec/record"
	"rowcodec/value"
)

type User struct {
	ID      int64 `row:"rename=id"`
	Name    string
	Email   *string
	Score   float64
	Active  bool
	Tags    []string
	Created time.Time
	cache   string
	Note    string `row:"-"`
}

func sampleUser() User {
	email := "ada@example.com"

	return User{
		ID:      7,
		Name:    "Ada",
		Email:   &email,
		Score:   99.5,
		Active:  true,
		Tags:    []string{"admin", "ops"},
		Created: time.Date(2023, time.October, 1, 12, 30, 0, 0, time.UTC),
	}
}

func ExampleReflector_DDL() {
	users := record.Must[User]()

	fmt.Println(users.Columns())
	fmt.Println(users.DDL("users"))
	// Output:
	// [id Name Email Score Active Tags Created]
	// CREATE TABLE IF NOT EXISTS users (
	//     id INT NOT NULL,
	//     Name TEXT NOT NULL,
	//     Email TEXT NULL,
	//     Score FLOAT NOT NULL,
	//     Active BOOLEAN NOT NULL,
	//     Tags LIST NOT NULL,
	//     Created TIMESTAMP NOT NULL
	// );
}

func ExampleProjector_ProjectRow() {
	users := record.Must[User]()
	u := sampleUser()
	u.Email = nil

	for _, n := range users.ProjectRow(&u) {
		fmt.Println(n)
	}
	// Output:
	// 7
	// 'Ada'
	// NULL
	// 99.5
	// TRUE
	// X'921792920ea561646d696e920ea36f7073'
	// TIMESTAMP '2023-10-01 12:30:00'
}

func TestRoundTrip(t *testing.T) {
	users, err := record.Build[User]()
	require.NoError(t, err)

	for _, u := range []User{sampleUser(), {Tags: []string{}}} {
		row := expr.Values(users.ProjectRow(&u))

		got, err := users.ExtractRow(users.Columns(), row)
		require.NoError(t, err, spew.Sdump(row))
		assert.Equal(t, u, got)
	}
}

func TestColumns(t *testing.T) {
	users := record.Must[User]()

	assert.Equal(t, []string{"id", "Name", "Email", "Score", "Active", "Tags", "Created"}, users.Columns())
	assert.Equal(t, []record.Column{
		{Name: "id", Type: "INT"},
		{Name: "Name", Type: "TEXT"},
		{Name: "Email", Type: "TEXT", Nullable: true},
		{Name: "Score", Type: "FLOAT"},
		{Name: "Active", Type: "BOOLEAN"},
		{Name: "Tags", Type: "LIST"},
		{Name: "Created", Type: "TIMESTAMP"},
	}, users.Schema())

	schema := users.Schema()
	schema[0].Name = "changed"
	assert.Equal(t, "id", users.Columns()[0], "Schema returns a copy")

	var nilUser *User
	assert.Nil(t, users.ProjectRow(nilUser))
}

type AX struct {
	A int64 `row:"rename=a"`
	X int64 `row:"rename=x"`
}

func TestExtractRow_InvalidFieldName(t *testing.T) {
	ax := record.Must[AX]()

	_, err := ax.ExtractRow([]string{"a", "b"}, []value.Value{value.I64(1), value.I64(2)})

	var nameErr *record.InvalidFieldName
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, record.InvalidFieldName{Index: 1, Expected: "x", Actual: "b"}, *nameErr)
	assert.EqualError(t, err, `expected field 1 "x", but actual label is "b"`)

	_, err = ax.ExtractRow([]string{"a"}, []value.Value{value.I64(1), value.I64(2)})
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, record.InvalidFieldName{Index: 1, Expected: "x", Actual: ""}, *nameErr)
}

func TestExtractRow_InvalidExtract(t *testing.T) {
	ax := record.Must[AX]()

	_, err := ax.ExtractRow([]string{"a"}, nil)

	var extractErr *record.InvalidExtract
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, record.InvalidExtract{Index: 0, Column: "a"}, *extractErr)
	assert.EqualError(t, err, `could not extract field: 0 "a"`)
}

func TestExtractRow_TrailingValuesIgnored(t *testing.T) {
	ax := record.Must[AX]()

	got, err := ax.ExtractRow(
		[]string{"a", "x", "extra"},
		[]value.Value{value.I64(1), value.I64(2), value.Str("ignored")},
	)
	require.NoError(t, err)
	assert.Equal(t, AX{A: 1, X: 2}, got)
}

func TestExtractRow_ConversionError(t *testing.T) {
	ax := record.Must[AX]()

	_, err := ax.ExtractRow([]string{"a", "x"}, []value.Value{value.I64(1), value.Str("two")})

	var fieldErr *record.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "X", fieldErr.Field)
	assert.Equal(t, 1, fieldErr.Index)

	var convErr *record.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "int64", convErr.Expected)
	assert.EqualError(t, err, `record_test.AX.X (column 1 "x"): could not convert into type int64: Str("two")`)
}

func TestExtractRows(t *testing.T) {
	ax := record.Must[AX]()
	labels := []string{"a", "x"}

	got, err := ax.ExtractRows(labels, [][]value.Value{
		{value.I64(1), value.I64(2)},
		{value.I64(3), value.I64(4)},
	})
	require.NoError(t, err)
	assert.Equal(t, []AX{{1, 2}, {3, 4}}, got)

	got, err = ax.ExtractRows(labels, [][]value.Value{
		{value.I64(1), value.I64(2)},
		{value.I64(3)},
		{value.I64(5), value.I64(6)},
	})
	require.Error(t, err)
	assert.Nil(t, got, "no partial result")

	var rowErr *record.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 1, rowErr.Row)
	assert.True(t, errors.As(err, new(*record.InvalidExtract)))

	got, err = ax.ExtractRows(labels, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuild_ConfigErrors(t *testing.T) {
	type FromAndTryFrom struct {
		V int `row:"from=tenths,try_from=email"`
	}

	type FlattenAndRename struct {
		V AX `row:"flatten,rename=v"`
	}

	reg := adapters(t)

	_, err := record.Build[FromAndTryFrom](record.WithAdapters(reg))

	var cfgErr *record.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "can't combine `from` with `try_from`", cfgErr.Message)
	assert.Equal(t, "V", cfgErr.Field)

	_, err = record.NewExtractor[FromAndTryFrom](record.WithAdapters(reg))
	require.ErrorAs(t, err, &cfgErr)

	_, err = record.Build[FlattenAndRename]()
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "can't combine `flatten` with `rename`", cfgErr.Message)

	_, err = record.NewReflector[FlattenAndRename]()
	require.ErrorAs(t, err, &cfgErr)
}

func TestBuild_ParseError(t *testing.T) {
	type Typo struct {
		V int `row:"flaten"`
	}

	_, err := record.Build[Typo]()

	var parseErr *record.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), `did you mean "flatten"?`)

	_, err = record.Build[int]()
	require.ErrorAs(t, err, &parseErr)

	assert.Panics(t, func() { record.Must[Typo]() })
}

func TestBuild_RequirementError(t *testing.T) {
	type Unsupported struct {
		OK   string
		Ch   chan int
		Func func()
	}

	_, err := record.Build[Unsupported]()

	var reqErr *record.RequirementError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "extract", reqErr.Direction)
	assert.Equal(t, []string{"unsatisfied_requirement", "unsatisfied_requirement"}, reqErr.Diagnostics.Codes())
	assert.Contains(t, err.Error(), "Ch: scalar extract chan int")
	assert.Contains(t, err.Error(), "Func: scalar extract func()")
}
