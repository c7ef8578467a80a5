package kernel_test

import (
	"encoding/json"
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knownUUID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id1.String())
	assert.False(t, id1.IsEqual(id2))
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should accept standard formats", func(t *testing.T) {
		for _, in := range []string{
			knownUUID,
			"{" + knownUUID + "}",
			"urn:uuid:" + knownUUID,
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(in)
			require.NoError(t, err, in)
			assert.Equal(t, knownUUID, id.String())
		}
	})

	t.Run("should reject malformed input as validation error", func(t *testing.T) {
		for _, in := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716", "zzze8400-e29b-41d4-a716-446655440000"} {
			_, err := kernel.UUIDFromString(in)
			require.Error(t, err, in)
			assert.Contains(t, err.Error(), "invalid UUID format")
			assert.True(t, errs.IsValidation(err))
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should create UUID from valid bytes", func(t *testing.T) {
		raw := uuid.MustParse(knownUUID)

		id, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.Equal(t, knownUUID, id.String())
	})

	t.Run("should reject short input", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e})
		require.Error(t, err)
	})

	t.Run("should reject nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())

	parsedNil, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, parsedNil.Validate())
}

func TestUUID_Bytes_IsACopy(t *testing.T) {
	original := kernel.NewUUID()
	before := original.String()

	raw := original.Bytes()
	for i := range raw {
		raw[i] = 0xFF
	}

	assert.Equal(t, before, original.String())
}

func TestUUID_JSON(t *testing.T) {
	type payload struct {
		OrderID kernel.UUID `json:"order_id"`
	}
	id, _ := kernel.UUIDFromString(knownUUID)

	encoded, err := json.Marshal(payload{OrderID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"order_id":"`+knownUUID+`"}`, string(encoded))

	var decoded payload
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, decoded.OrderID.IsEqual(id))

	require.Error(t, json.Unmarshal([]byte(`{"order_id":"nope"}`), &decoded))
}

func TestOptionalUUID(t *testing.T) {
	got, err := kernel.OptionalUUID(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	raw := uuid.MustParse(knownUUID)
	got, err = kernel.OptionalUUID(&raw)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, knownUUID, got.String())
}
