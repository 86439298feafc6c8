package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "", PkgAlias(""))
	assert.Equal(t, "time", PkgAlias("time"))
	assert.Equal(t, "record_test", PkgAlias("rowcodec/record_test"))
	assert.Equal(t, "v5", PkgAlias("github.com/vmihailenco/msgpack/v5"))
}
