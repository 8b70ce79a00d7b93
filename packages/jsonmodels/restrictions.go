package jsonmodels

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

// AccountRestrictionsResponse is the JSON model of the /restrictions/account/{address} endpoint.
type AccountRestrictionsResponse struct {
	AccountRestrictions AccountRestrictions `json:"accountRestrictions"`
}

// AccountRestrictions is the JSON model of catapult.AccountRestrictions.
type AccountRestrictions struct {
	Version      uint16               `json:"version"`
	Address      string               `json:"address"`
	Restrictions []AccountRestriction `json:"restrictions"`
}

// AccountRestriction is the JSON model of one catapult.AccountRestriction. Depending on the flags the values are hex
// encoded addresses, hex encoded mosaic ids or numeric transaction types.
type AccountRestriction struct {
	RestrictionFlags uint16            `json:"restrictionFlags"`
	Values           []json.RawMessage `json:"values"`
}

// ToAccountRestrictions converts the JSON model into catapult.AccountRestrictions. Unknown restriction flags are
// rejected.
func (a AccountRestrictions) ToAccountRestrictions() (restrictions catapult.AccountRestrictions, err error) {
	addressBytes, err := decodeHex(a.Address, catapult.AddressLength)
	if err != nil {
		return restrictions, errors.Errorf("failed to parse account address: %w", err)
	}
	if restrictions.Address, _, err = catapult.AddressFromBytes(addressBytes); err != nil {
		return restrictions, errors.Errorf("failed to parse account address: %w", err)
	}

	restrictions.Restrictions = make([]catapult.AccountRestriction, len(a.Restrictions))
	for i, restriction := range a.Restrictions {
		if restrictions.Restrictions[i], err = restriction.toAccountRestriction(); err != nil {
			return restrictions, errors.Errorf("failed to parse restriction %d: %w", i, err)
		}
	}

	return restrictions, nil
}

func (a AccountRestriction) toAccountRestriction() (restriction catapult.AccountRestriction, err error) {
	flags := wire.AccountRestrictionFlags(a.RestrictionFlags)
	restriction.Flags = flags

	if _, err = catapult.AddressRestrictionFlagFromDTO(flags); err == nil {
		restriction.Addresses = make([]catapult.Address, len(a.Values))
		for i, value := range a.Values {
			if restriction.Addresses[i], err = addressFromValue(value); err != nil {
				return restriction, errors.Errorf("failed to parse value %d: %w", i, err)
			}
		}

		return restriction, nil
	}

	if _, err = catapult.MosaicRestrictionFlagFromDTO(flags); err == nil {
		restriction.MosaicIDs = make([]catapult.MosaicID, len(a.Values))
		for i, value := range a.Values {
			if restriction.MosaicIDs[i], err = mosaicIDFromValue(value); err != nil {
				return restriction, errors.Errorf("failed to parse value %d: %w", i, err)
			}
		}

		return restriction, nil
	}

	if _, err = catapult.OperationRestrictionFlagFromDTO(flags); err == nil {
		restriction.TransactionTypes = make([]catapult.TransactionType, len(a.Values))
		for i, value := range a.Values {
			var transactionType uint16
			if unmarshalErr := json.Unmarshal(value, &transactionType); unmarshalErr != nil {
				return restriction, errors.Errorf("failed to parse value %d (%v): %w", i, unmarshalErr, faults.ErrFormat)
			}
			restriction.TransactionTypes[i] = catapult.TransactionType(transactionType)
		}

		return restriction, nil
	}

	return restriction, errors.Errorf("unknown restriction flags %s: %w", flags, faults.ErrFormat)
}

func addressFromValue(value json.RawMessage) (address catapult.Address, err error) {
	var text string
	if err = json.Unmarshal(value, &text); err != nil {
		return address, errors.Errorf("failed to parse address (%v): %w", err, faults.ErrFormat)
	}
	addressBytes, err := decodeHex(text, catapult.AddressLength)
	if err != nil {
		return address, err
	}
	address, _, err = catapult.AddressFromBytes(addressBytes)

	return address, err
}

func mosaicIDFromValue(value json.RawMessage) (catapult.MosaicID, error) {
	var text string
	if err := json.Unmarshal(value, &text); err != nil {
		return 0, errors.Errorf("failed to parse mosaic id (%v): %w", err, faults.ErrFormat)
	}

	return catapult.MosaicIDFromHex(text)
}
