package goparquet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pqcore/parquet-core/parquet"
)

func TestParseSchemaDefinitionTableDriven(t *testing.T) {
	testData := []struct {
		name      string
		msg       string
		expectErr bool
	}{
		{"empty message", `message foo { }`, false},
		{"missing closing brace", `message foo {`, true},
		{"required leaf", `message foo { required int64 bar; }`, false},
		{"repeated leaf", `message foo { repeated int64 bar; }`, false},
		{"optional leaf", `message foo { optional int64 bar; }`, false},
		{"bad repetition keyword", `message foo { justwrong int64 bar; }`, true},
		{"missing semicolon", `message foo { optional int64 bar }`, true},
		{"two required binaries with field ids", `message foo { required binary the_id = 1; required binary client = 2; }`, false},
		{"boolean leaf", `message foo { optional boolean is_fraud; }`, false},
		{"nested group with map-like shape", `message foo {
			required binary the_id (STRING) = 1;
			required binary client (STRING) = 2;
			required binary request_body = 3;
			required int64 ts = 4;
			required group data_enriched (MAP) {
				repeated group key_value (MAP_KEY_VALUE) {
					required binary key = 5;
					required binary value = 6;
				}
			}
			optional boolean is_fraud = 7;
		}`, false},
		{"invalid root name", `message $ { }`, true},
		{"invalid type", `message foo { optional int128 bar; }`, true},
		{"invalid logical type", `message foo { optional int64 bar (BLUB); }`, true},
		{"int32 leaf", `message foo { optional int32 bar; }`, false},
		{"double leaf", `message foo { optional double bar; }`, false},
		{"float leaf", `message foo { optional float bar; }`, false},
		{"int96 leaf", `message foo { optional int96 bar; }`, false},
		{"fixed_len_byte_array leaf", `message foo { optional fixed_len_byte_array(16) bar; }`, false},
		{"missing fixed_len_byte_array length", `message foo { optional fixed_len_byte_array bar; }`, true},
		{"decimal annotation", `message foo { optional fixed_len_byte_array(16) amount (DECIMAL(38, 9)); }`, false},
		{"timestamp annotation", `message foo { optional int64 ts (TIMESTAMP(MICROS, true)); }`, false},
		{"time annotation", `message foo { optional int32 t (TIME(MILLIS, false)); }`, false},
		{"int annotation", `message foo { optional int32 small (INT(16, true)); }`, false},
		{"unknown time unit", `message foo { optional int64 ts (TIMESTAMP(FORTNIGHTS, true)); }`, true},
	}

	for i, td := range testData {
		t.Run(td.name, func(t *testing.T) {
			_, err := ParseSchemaDefinition(td.msg)
			if td.expectErr {
				assert.Errorf(t, err, "case %d: %s", i, td.name)
			} else {
				assert.NoErrorf(t, err, "case %d: %s", i, td.name)
			}
		})
	}
}

func TestParseSchemaDefinitionProducesExpectedColumns(t *testing.T) {
	sd, err := ParseSchemaDefinition(`
		message record {
			required int64 id;
			optional binary name (STRING);
			optional int64 created_at (TIMESTAMP(MICROS, true)) = 3;
		}
	`)
	require.NoError(t, err)
	require.NotNil(t, sd)

	cols := sd.Columns()
	require.Len(t, cols, 3)

	id := sd.ColumnByName("id")
	require.NotNil(t, id)
	assert.Equal(t, parquet.Type_INT64, id.PhysicalType)
	assert.Equal(t, parquet.FieldRepetitionType_REQUIRED, id.Repetition)
	assert.Equal(t, int32(0), id.MaxDefinitionLevel)

	name := sd.ColumnByName("name")
	require.NotNil(t, name)
	assert.Equal(t, parquet.Type_BYTE_ARRAY, name.PhysicalType)
	assert.Equal(t, int32(1), name.MaxDefinitionLevel)
	require.NotNil(t, name.LogicalType)
	assert.NotNil(t, name.LogicalType.STRING)

	createdAt := sd.ColumnByName("created_at")
	require.NotNil(t, createdAt)
	require.NotNil(t, createdAt.LogicalType.TIMESTAMP)
	assert.True(t, createdAt.LogicalType.TIMESTAMP.IsAdjustedToUTC)
	assert.Equal(t, parquet.TimeUnit_MICROS, createdAt.LogicalType.TIMESTAMP.Unit)
}

func TestParseSchemaDefinitionNestedGroup(t *testing.T) {
	sd, err := ParseSchemaDefinition(`
		message record {
			required group location {
				required double lat;
				required double lng;
			}
		}
	`)
	require.NoError(t, err)

	lat := sd.ColumnByName("location.lat")
	require.NotNil(t, lat)
	assert.Equal(t, parquet.Type_DOUBLE, lat.PhysicalType)

	lng := sd.ColumnByName("location.lng")
	require.NotNil(t, lng)
}

func TestParseSchemaDefinitionRejectsFixedLenByteArrayWithoutLength(t *testing.T) {
	_, err := ParseSchemaDefinition(`message foo { required fixed_len_byte_array uuid; }`)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, InvalidParameter, kind)
}
