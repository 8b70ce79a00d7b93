package jsonmodels

import (
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

// region Pagination ///////////////////////////////////////////////////////////////////////////////////////////////////

// Pagination describes the page of a paginated response.
type Pagination struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ResolutionStatement //////////////////////////////////////////////////////////////////////////////////////////

// ReceiptSource is the JSON model of a catapult.ReceiptSource.
type ReceiptSource struct {
	PrimaryID   uint32 `json:"primaryId"`
	SecondaryID uint32 `json:"secondaryId"`
}

// ResolutionEntry is the JSON model of a catapult.ResolutionEntry. Resolved is the hex encoded address or mosaic id.
type ResolutionEntry struct {
	Source   ReceiptSource `json:"source"`
	Resolved string        `json:"resolved"`
}

// ResolutionStatement is the JSON model of a catapult.ResolutionStatement. Unresolved is the hex encoded alias.
type ResolutionStatement struct {
	Height            uint64            `json:"height,string"`
	Unresolved        string            `json:"unresolved"`
	ResolutionEntries []ResolutionEntry `json:"resolutionEntries"`
}

// ResolutionStatementInfo wraps a ResolutionStatement in a paginated response.
type ResolutionStatementInfo struct {
	ID        string              `json:"id"`
	Statement ResolutionStatement `json:"statement"`
}

// ResolutionStatementsResponse is the JSON model of the /statements/resolutions/{address|mosaic} endpoints.
type ResolutionStatementsResponse struct {
	Data       []ResolutionStatementInfo `json:"data"`
	Pagination Pagination                `json:"pagination"`
}

// NewAddressResolutionStatement returns the JSON model of the given catapult.AddressResolutionStatement.
func NewAddressResolutionStatement(statement catapult.AddressResolutionStatement, networkType catapult.NetworkType) ResolutionStatement {
	dto := statement.Unresolved.UnresolvedAddressDTO(networkType)
	result := ResolutionStatement{
		Height:            statement.Height,
		Unresolved:        encodeHex(dto.Bytes()),
		ResolutionEntries: make([]ResolutionEntry, len(statement.Entries)),
	}
	for i, entry := range statement.Entries {
		result.ResolutionEntries[i] = ResolutionEntry{
			Source:   ReceiptSource(entry.Source),
			Resolved: encodeHex(entry.Resolved.Bytes()),
		}
	}

	return result
}

// NewMosaicResolutionStatement returns the JSON model of the given catapult.MosaicResolutionStatement.
func NewMosaicResolutionStatement(statement catapult.MosaicResolutionStatement) ResolutionStatement {
	result := ResolutionStatement{
		Height:            statement.Height,
		Unresolved:        statement.Unresolved.Hex(),
		ResolutionEntries: make([]ResolutionEntry, len(statement.Entries)),
	}
	for i, entry := range statement.Entries {
		result.ResolutionEntries[i] = ResolutionEntry{
			Source:   ReceiptSource(entry.Source),
			Resolved: entry.Resolved.Hex(),
		}
	}

	return result
}

// ToAddressResolutionStatement converts the JSON model into a catapult.AddressResolutionStatement.
func (r ResolutionStatement) ToAddressResolutionStatement() (statement catapult.AddressResolutionStatement, err error) {
	unresolvedBytes, err := decodeHex(r.Unresolved, wire.UnresolvedAddressDTOSize)
	if err != nil {
		return statement, errors.Errorf("failed to parse unresolved address: %w", err)
	}
	var unresolvedDTO wire.UnresolvedAddressDTO
	copy(unresolvedDTO[:], unresolvedBytes)

	unresolved, err := catapult.UnresolvedAddressFromDTO(unresolvedDTO)
	if err != nil {
		return statement, errors.Errorf("failed to parse unresolved address: %w", err)
	}
	alias, isAlias := unresolved.(catapult.NamespaceID)
	if !isAlias {
		return statement, errors.Errorf("unresolved address %s is not an alias: %w", r.Unresolved, faults.ErrFormat)
	}

	statement.Height = r.Height
	statement.Unresolved = alias
	statement.Entries = make([]catapult.ResolutionEntry[catapult.Address], len(r.ResolutionEntries))
	for i, entry := range r.ResolutionEntries {
		resolvedBytes, decodeErr := decodeHex(entry.Resolved, catapult.AddressLength)
		if decodeErr != nil {
			return statement, errors.Errorf("failed to parse resolved address %d: %w", i, decodeErr)
		}
		address, _, parseErr := catapult.AddressFromBytes(resolvedBytes)
		if parseErr != nil {
			return statement, errors.Errorf("failed to parse resolved address %d: %w", i, parseErr)
		}

		statement.Entries[i] = catapult.ResolutionEntry[catapult.Address]{Source: catapult.ReceiptSource(entry.Source), Resolved: address}
	}

	return statement, nil
}

// ToMosaicResolutionStatement converts the JSON model into a catapult.MosaicResolutionStatement.
func (r ResolutionStatement) ToMosaicResolutionStatement() (statement catapult.MosaicResolutionStatement, err error) {
	if statement.Unresolved, err = catapult.NamespaceIDFromHex(r.Unresolved); err != nil {
		return statement, errors.Errorf("failed to parse unresolved mosaic id: %w", err)
	}

	statement.Height = r.Height
	statement.Entries = make([]catapult.ResolutionEntry[catapult.MosaicID], len(r.ResolutionEntries))
	for i, entry := range r.ResolutionEntries {
		mosaicID, parseErr := catapult.MosaicIDFromHex(entry.Resolved)
		if parseErr != nil {
			return statement, errors.Errorf("failed to parse resolved mosaic id %d: %w", i, parseErr)
		}

		statement.Entries[i] = catapult.ResolutionEntry[catapult.MosaicID]{Source: catapult.ReceiptSource(entry.Source), Resolved: mosaicID}
	}

	return statement, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region utility functions ////////////////////////////////////////////////////////////////////////////////////////////

func encodeHex(bytes []byte) string {
	return strings.ToUpper(hex.EncodeToString(bytes))
}

func decodeHex(text string, expectedLength int) ([]byte, error) {
	decodedBytes, err := hex.DecodeString(text)
	if err != nil {
		return nil, errors.Errorf("failed to decode '%s' (%v): %w", text, err, faults.ErrFormat)
	}
	if expectedLength >= 0 && len(decodedBytes) != expectedLength {
		return nil, errors.Errorf("'%s' must have %d bytes: %w", text, expectedLength, faults.ErrLength)
	}

	return decodedBytes, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
