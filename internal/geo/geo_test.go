package geo

import (
	"testing"

	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistricts(t *testing.T) {
	assert.Equal(t, []string{"Satara", "Pune", "Sangli", "Kolhapur", "Nashik"}, Districts())
	assert.Contains(t, SubDistricts("Satara"), "Koregaon")
	assert.Nil(t, SubDistricts("Mumbai"))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate("Satara", ""))
	require.NoError(t, Validate(" Satara ", "Koregaon"))

	err := Validate("", "")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	err = Validate("Mumbai", "")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	err = Validate("Pune", "Koregaon")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestDirectoryIsACopy(t *testing.T) {
	dir := Directory()
	dir[0].SubDistricts[0] = "changed"
	assert.Equal(t, "Satara", SubDistricts("Satara")[0])
}
