package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelsAreDistinct(t *testing.T) {
	all := []error{
		ErrNotSeed, ErrTruncated, ErrNoBlockette1000, ErrWrongLength, ErrOutOfRange,
		ErrUnknownFormat, ErrUnknownBlockette, ErrSteimBadFlag, ErrSteimIntegrityFail,
		ErrInvalidBTime, ErrHashCollision, ErrInvalidSourceName, ErrSourceAlreadyStarted,
		ErrRateMismatch, ErrEmptySegment, ErrHeaderFieldTooLong, ErrArchiveClosed,
		ErrEntryOpen, ErrCacheBadMagic, ErrCacheVersion, ErrCacheCorrupt,
	}

	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			require.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestWrappedSentinelMatchesErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("%w: reclen=3", ErrOutOfRange)
	require.ErrorIs(t, wrapped, ErrOutOfRange)
	require.NotErrorIs(t, wrapped, ErrWrongLength)
}
