package catapult

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

// region ReceiptSource ////////////////////////////////////////////////////////////////////////////////////////////////

// ReceiptSource identifies the transaction that caused a receipt. PrimaryID is the one based index of the transaction
// in its block and SecondaryID is the one based index of the embedded transaction in an aggregate (zero if the
// receipt was caused by the transaction as a whole).
type ReceiptSource struct {
	PrimaryID   uint32
	SecondaryID uint32
}

// Compare returns -1, 0 or 1 if the ReceiptSource sorts before, equal to or after the other one.
func (r ReceiptSource) Compare(other ReceiptSource) int {
	switch {
	case r.PrimaryID < other.PrimaryID:
		return -1
	case r.PrimaryID > other.PrimaryID:
		return 1
	case r.SecondaryID < other.SecondaryID:
		return -1
	case r.SecondaryID > other.SecondaryID:
		return 1
	default:
		return 0
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ResolutionStatement //////////////////////////////////////////////////////////////////////////////////////////

// ResolutionEntry records the value an alias resolved to, starting at the given source.
type ResolutionEntry[R any] struct {
	Source   ReceiptSource
	Resolved R
}

// ResolutionStatement contains all resolutions of one alias in one block.
type ResolutionStatement[R any] struct {
	Height     uint64
	Unresolved NamespaceID
	Entries    []ResolutionEntry[R]
}

// AddressResolutionStatement contains the resolutions of an address alias.
type AddressResolutionStatement = ResolutionStatement[Address]

// MosaicResolutionStatement contains the resolutions of a mosaic alias.
type MosaicResolutionStatement = ResolutionStatement[MosaicID]

// EntryFor returns the entry that was active for the given source, which is the entry with the greatest source not
// exceeding the requested one (ordered by primary id, then secondary id).
func (r *ResolutionStatement[R]) EntryFor(source ReceiptSource) (entry ResolutionEntry[R], found bool) {
	for _, candidate := range r.Entries {
		if candidate.Source.Compare(source) > 0 {
			continue
		}
		if !found || candidate.Source.Compare(entry.Source) > 0 {
			entry = candidate
			found = true
		}
	}

	return entry, found
}

func (r *ResolutionStatement[R]) resolve(source ReceiptSource) (resolved R, err error) {
	if len(r.Entries) == 1 {
		return r.Entries[0].Resolved, nil
	}

	entry, found := r.EntryFor(source)
	if !found {
		err = errors.Errorf("no resolution entry for %s on block %d (source %d/%d): %w", r.Unresolved, r.Height, source.PrimaryID, source.SecondaryID, faults.ErrNotFound)
		return
	}

	return entry.Resolved, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Statement ////////////////////////////////////////////////////////////////////////////////////////////////////

// Statement contains the resolution statements a node reported for one or more blocks. It is never modified by the
// resolution of a transaction.
type Statement struct {
	AddressResolutionStatements []AddressResolutionStatement
	MosaicResolutionStatements  []MosaicResolutionStatement
}

// NewStatement creates a new Statement.
func NewStatement(addressStatements []AddressResolutionStatement, mosaicStatements []MosaicResolutionStatement) *Statement {
	return &Statement{
		AddressResolutionStatements: addressStatements,
		MosaicResolutionStatements:  mosaicStatements,
	}
}

// ResolveAddress returns the Address an UnresolvedAddress refers to at the given height and source. Concrete
// Addresses are returned unchanged.
func (s *Statement) ResolveAddress(unresolved UnresolvedAddress, height uint64, source ReceiptSource) (Address, error) {
	switch typedUnresolved := unresolved.(type) {
	case Address:
		return typedUnresolved, nil
	case NamespaceID:
		if s != nil {
			for i := range s.AddressResolutionStatements {
				if statement := &s.AddressResolutionStatements[i]; statement.Height == height && statement.Unresolved == typedUnresolved {
					return statement.resolve(source)
				}
			}
		}

		return Address{}, errors.Errorf("no address resolution statement for %s on block %d: %w", typedUnresolved, height, faults.ErrNotFound)
	default:
		return Address{}, errors.Errorf("unsupported unresolved address %T: %w", unresolved, faults.ErrFormat)
	}
}

// ResolveMosaicID returns the MosaicID an UnresolvedMosaicID refers to at the given height and source. Concrete
// MosaicIDs are returned unchanged.
func (s *Statement) ResolveMosaicID(unresolved UnresolvedMosaicID, height uint64, source ReceiptSource) (MosaicID, error) {
	switch typedUnresolved := unresolved.(type) {
	case MosaicID:
		return typedUnresolved, nil
	case NamespaceID:
		if s != nil {
			for i := range s.MosaicResolutionStatements {
				if statement := &s.MosaicResolutionStatements[i]; statement.Height == height && statement.Unresolved == typedUnresolved {
					return statement.resolve(source)
				}
			}
		}

		return 0, errors.Errorf("no mosaic resolution statement for %s on block %d: %w", typedUnresolved, height, faults.ErrNotFound)
	default:
		return 0, errors.Errorf("unsupported unresolved mosaic id %T: %w", unresolved, faults.ErrFormat)
	}
}

// String returns a human readable version of the Statement.
func (s *Statement) String() string {
	return stringify.Struct("Statement",
		stringify.StructField("addressResolutionStatements", len(s.AddressResolutionStatements)),
		stringify.StructField("mosaicResolutionStatements", len(s.MosaicResolutionStatements)),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region utility functions ////////////////////////////////////////////////////////////////////////////////////////////

func resolveAddresses(statement *Statement, unresolvedAddresses []UnresolvedAddress, height uint64, source ReceiptSource) ([]UnresolvedAddress, error) {
	resolvedAddresses := make([]UnresolvedAddress, len(unresolvedAddresses))
	for i, unresolved := range unresolvedAddresses {
		resolved, err := statement.ResolveAddress(unresolved, height, source)
		if err != nil {
			return nil, errors.Errorf("failed to resolve address %d: %w", i, err)
		}
		resolvedAddresses[i] = resolved
	}

	return resolvedAddresses, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
