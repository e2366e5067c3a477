package edgeconfig

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/timzifer/edgeconf/jsonval"
)

type recordingCollector struct {
	decodeFailures   []int
	legacyMigrations int
	unknownCodes     []int
}

func (r *recordingCollector) IncDecodeFailure(code int)    { r.decodeFailures = append(r.decodeFailures, code) }
func (r *recordingCollector) IncLegacyMigration()          { r.legacyMigrations++ }
func (r *recordingCollector) IncUnknownErrorCode(code int) { r.unknownCodes = append(r.unknownCodes, code) }

func TestDecoderCountsLegacyMigrations(t *testing.T) {
	collector := &recordingCollector{}
	decoder := NewDecoder(WithCollector(collector), WithLogger(zerolog.Nop()))

	parsed, err := jsonval.Parse(legacyWire)
	require.NoError(t, err)

	_, err = decoder.Decode(parsed)
	require.NoError(t, err)
	require.Equal(t, 1, collector.legacyMigrations)
	require.Empty(t, collector.decodeFailures)
}

func TestDecoderCountsDecodeFailures(t *testing.T) {
	collector := &recordingCollector{}
	decoder := NewDecoder(WithCollector(collector))

	_, err := decoder.Decode("not an object")
	require.Error(t, err)
	require.Equal(t, []int{5002}, collector.decodeFailures)
}

func TestDecoderLegacyDetectionNeedsBothMarkers(t *testing.T) {
	decoder := NewDecoder()

	// "things" alone is not the legacy shape; the current-format parse
	// applies and fails on the missing "components" member.
	parsed, err := jsonval.Parse(`{"things": {}}`)
	require.NoError(t, err)
	_, err = decoder.Decode(parsed)
	require.Error(t, err)

	parsed, err = jsonval.Parse(`{"meta": {}, "components": {}, "factories": {}}`)
	require.NoError(t, err)
	cfg, err := decoder.Decode(parsed)
	require.NoError(t, err)
	require.Empty(t, cfg.ComponentIDs())
}
