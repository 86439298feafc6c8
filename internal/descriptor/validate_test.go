package descriptor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowcodec/internal/descriptor"
)

func TestValidate_AssignsIndices(t *testing.T) {
	rec, err := parse[Account](t, descriptor.Options{})
	require.NoError(t, err)
	require.NoError(t, descriptor.Validate(rec))

	for i, f := range rec.Fields {
		assert.Equal(t, i, f.Index, f.Name)
	}
}

func TestValidate_Conflicts(t *testing.T) {
	type FromAndTryFrom struct {
		Ok string
		X  int64 `row:"from=atoi,try_from=parse"`
	}

	type FlattenAndRename struct {
		Home Address `row:"flatten,rename=home"`
	}

	type FlattenFrom struct {
		Home Address `row:"flatten,from=atoi"`
	}

	type FlattenTryFrom struct {
		Home Address `row:"try_from=parse,flatten"`
	}

	type SameColumn struct {
		A string `row:"rename=name"`
		B string `row:"rename=name"`
	}

	tests := []struct {
		name    string
		rec     func() (*descriptor.Record, error)
		field   string
		message string
	}{
		{
			name:    "from with try_from",
			rec:     func() (*descriptor.Record, error) { return parse[FromAndTryFrom](t, descriptor.Options{}) },
			field:   "X",
			message: "can't combine `from` with `try_from`",
		},
		{
			name:    "flatten with rename",
			rec:     func() (*descriptor.Record, error) { return parse[FlattenAndRename](t, descriptor.Options{}) },
			field:   "Home",
			message: "can't combine `flatten` with `rename`",
		},
		{
			name:    "flatten with from",
			rec:     func() (*descriptor.Record, error) { return parse[FlattenFrom](t, descriptor.Options{}) },
			field:   "Home",
			message: "can't combine `flatten` with `from`",
		},
		{
			name:    "flatten with try_from",
			rec:     func() (*descriptor.Record, error) { return parse[FlattenTryFrom](t, descriptor.Options{}) },
			field:   "Home",
			message: "can't combine `flatten` with `try_from`",
		},
		{
			name:    "duplicate column",
			rec:     func() (*descriptor.Record, error) { return parse[SameColumn](t, descriptor.Options{}) },
			field:   "B",
			message: `column "name" is already used by field A`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := tt.rec()
			require.NoError(t, err)

			err = descriptor.Validate(rec)

			var cerr *descriptor.ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Field)
			assert.Equal(t, tt.message, cerr.Message)
			assert.Equal(t, rec.Name, cerr.Record)
		})
	}
}
