package wire

import (
	"testing"

	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

func TestAccountRestrictionFlags_IsAddressRestriction(t *testing.T) {
	flagsList := []struct {
		flags AccountRestrictionFlags
		valid bool
	}{
		{0x0001, true},
		{0x8001, true},
		{0x4001, true},
		{0xC001, true},
		{0x0002, false},
		{0x8002, false},
		{0x4004, false},
		{0x0003, false},
		{0x0000, false},
		{0x8000, false},
		{0x2001, false},
	}

	for _, f := range flagsList {
		assert.Equal(t, f.valid, f.flags.IsAddressRestriction(), f.flags.String())
	}
}

func TestAccountAddressRestrictionBody(t *testing.T) {
	body := sampleRestrictionBody(t, AccountRestrictionFlagAddress|AccountRestrictionFlagOutgoing, 1, 2)

	bytes := body.Bytes()
	require.Len(t, bytes, body.Size())
	assert.Equal(t, []byte{0x01, 0x40, 0x01, 0x02, 0x00, 0x00, 0x00, 0x00}, bytes[:8])
	assert.Equal(t, byte(0x10), bytes[9])
	assert.Equal(t, byte(0x20), bytes[8+UnresolvedAddressDTOSize+1])
	assert.Equal(t, byte(0x21), bytes[8+2*UnresolvedAddressDTOSize+1])

	restored, consumedBytes, err := AccountAddressRestrictionBodyFromBytes(bytes)
	require.NoError(t, err)
	assert.Equal(t, len(bytes), consumedBytes)
	assert.Equal(t, body, restored)
	assert.Equal(t, AccountAddressRestrictionEntityType, restored.EntityType())

	additions := restored.RestrictionAdditions()
	additions[0][1] = 0xFF
	assert.Equal(t, byte(0x10), restored.RestrictionAdditions()[0][1])
}

func TestAccountAddressRestrictionBody_Invalid(t *testing.T) {
	_, err := NewAccountAddressRestrictionBody(AccountRestrictionFlagMosaicID, nil, nil)
	assert.ErrorIs(t, err, faults.ErrFormat)

	_, err = NewAccountAddressRestrictionBody(AccountRestrictionFlagAddress, make([]UnresolvedAddressDTO, 256), nil)
	assert.ErrorIs(t, err, faults.ErrFormat)

	bytes := marshalutil.New().WriteUint16(0x8002).WriteUint8(0).WriteUint8(0).WriteUint32(0).Bytes()
	restored, _, err := AccountAddressRestrictionBodyFromBytes(bytes)
	assert.ErrorIs(t, err, faults.ErrFormat)
	assert.Nil(t, restored)

	bytes = marshalutil.New().WriteUint16(0x0001).WriteUint8(1).WriteUint8(0).WriteUint32(0).WriteBytes(make([]byte, 24)).Bytes()
	_, _, err = AccountAddressRestrictionBodyFromBytes(bytes)
	assert.ErrorIs(t, err, faults.ErrLength)
}

func TestMosaicDefinitionBody(t *testing.T) {
	body := sampleMosaicBody(t)

	bytes := body.Bytes()
	require.Len(t, bytes, MosaicDefinitionBodySize)
	assert.Equal(t, []byte{0x07, 0x00, 0x00, 0x00}, bytes[:4])
	assert.Equal(t, byte(0x03), bytes[12])
	assert.Equal(t, byte(0x03), bytes[13])

	restored, err := MosaicDefinitionBodyFromMarshalUtil(marshalutil.New(bytes))
	require.NoError(t, err)
	assert.Equal(t, body, restored)
	assert.True(t, restored.Flags().Has(MosaicFlagTransferable))
	assert.False(t, restored.Flags().Has(MosaicFlagRestrictable))
}

func TestMosaicDefinitionBody_Invalid(t *testing.T) {
	_, err := NewMosaicDefinitionBody(1, 2, MosaicFlags(0x08), 0, 0)
	assert.ErrorIs(t, err, faults.ErrFormat)

	_, err = NewMosaicDefinitionBody(1, 2, MosaicFlagNone, MaxDivisibility+1, 0)
	assert.ErrorIs(t, err, faults.ErrFormat)

	bytes := sampleMosaicBody(t).Bytes()
	bytes[13] = 9
	_, err = MosaicDefinitionBodyFromMarshalUtil(marshalutil.New(bytes))
	assert.ErrorIs(t, err, faults.ErrFormat)

	_, err = MosaicDefinitionBodyFromMarshalUtil(marshalutil.New(bytes[:MosaicDefinitionBodySize-1]))
	assert.ErrorIs(t, err, faults.ErrLength)
}

func TestBodyFromMarshalUtil_UnknownType(t *testing.T) {
	body, err := BodyFromMarshalUtil(EntityTypeDTO(0x4154), marshalutil.New(make([]byte, 64)))
	assert.ErrorIs(t, err, faults.ErrFormat)
	assert.Nil(t, body)
}

func TestPrimitiveDTOs(t *testing.T) {
	amount, consumedBytes, err := AmountDTOFromBytes(AmountDTO(0x0102030405060708).Bytes())
	require.NoError(t, err)
	assert.Equal(t, AmountDTOSize, consumedBytes)
	assert.Equal(t, AmountDTO(0x0102030405060708), amount)
	assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, amount.Bytes())

	_, _, err = TimestampDTOFromBytes([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, faults.ErrLength)

	_, _, err = KeyDTOFromBytes(make([]byte, KeyDTOSize-1))
	assert.ErrorIs(t, err, faults.ErrLength)

	signature, consumedBytes, err := SignatureDTOFromBytes(make([]byte, SignatureDTOSize+10))
	require.NoError(t, err)
	assert.Equal(t, SignatureDTOSize, consumedBytes)
	assert.True(t, signature.IsZero())

	address, _, err := UnresolvedAddressDTOFromBytes(append([]byte{0x99}, make([]byte, 24)...))
	require.NoError(t, err)
	assert.Equal(t, byte(0x99), address[0])

	_, err = NetworkTypeDTOFromMarshalUtil(marshalutil.New([]byte{0x61}))
	assert.ErrorIs(t, err, faults.ErrFormat)
}
