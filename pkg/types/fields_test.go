package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateParticipant(t *testing.T) {
	for _, v := range []string{"F100", "A001", "Z999", "B010"} {
		assert.NoError(t, ValidateParticipant(v), v)
	}
	for _, v := range []string{"", "F000", "f100", "F1000", "1100", "F10"} {
		assert.Error(t, ValidateParticipant(v), v)
	}
}

func TestValidateUser(t *testing.T) {
	assert.NoError(t, ValidateUser("FAKEUSER"))
	assert.NoError(t, ValidateUser("A1"))
	assert.Error(t, ValidateUser(""))
	assert.Error(t, ValidateUser("lowercase"))
	assert.Error(t, ValidateUser("TOOLONGUSERNAME"))
}

func TestValidateResourceName(t *testing.T) {
	assert.NoError(t, ValidateResourceName("FAKE_RESC"))
	assert.NoError(t, ValidateResourceName("A-1_B"))
	assert.Error(t, ValidateResourceName(""))
	assert.Error(t, ValidateResourceName("TOOLONGRESOURCE"))
	assert.Error(t, ValidateResourceName("lower"))
}

func TestValidateTransactionID(t *testing.T) {
	assert.NoError(t, ValidateTransactionID("derpderp"))
	assert.NoError(t, ValidateTransactionID("1234567890"))
	assert.Error(t, ValidateTransactionID("short"))
	assert.Error(t, ValidateTransactionID("waytoolongid"))
	assert.Error(t, ValidateTransactionID("bad-chars!"))
}

func TestValidateSystemCode(t *testing.T) {
	assert.NoError(t, ValidateSystemCode("FSYS0"))
	assert.Error(t, ValidateSystemCode("FSYS"))
	assert.Error(t, ValidateSystemCode("fsys0"))
}

func TestValidatePower(t *testing.T) {
	assert.NoError(t, validatePower("q", 1))
	assert.NoError(t, validatePower("q", MaxPowerKw))
	assert.Error(t, validatePower("q", 0))
	assert.Error(t, validatePower("q", MaxPowerKw+1))
}
