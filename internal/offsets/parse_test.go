package offsets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalSchema = `{
  "game_info": {"executable": "NBA2K26.exe", "playerSize": 1024, "teamSize": 2048},
  "base_pointers": {
    "Player": {
      "address": 53248,
      "chain": [{"offset": 16, "dereference": true, "post": 8}],
      "finalOffset": 256
    },
    "Team": {"address": 4202496, "absolute": true, "direct_table": true}
  },
  "offsets": [
    {"category": "Vitals", "name": "First Name", "address": 0, "length": 20, "type": "wstring"},
    {"category": "Vitals", "name": "Last Name", "address": 40, "length": 20, "type": "wstring"},
    {"category": "Attributes", "name": "Three Point", "address": 256, "startBit": 2, "length": 7, "type": "bitfield"},
    {"category": "Vitals", "name": "Position", "address": 300, "length": 3, "type": "enum",
     "values": ["PG", "SG", "SF", "PF", "C"]},
    {"category": "Vitals", "name": "Weight", "address": 320, "length": 32, "type": "float"},
    {"category": "Vitals", "name": "Salary", "address": 328, "length": 8, "type": "float"},
    {"category": "Vitals", "name": "Broken", "address": 400, "length": 0, "type": "unknown"}
  ]
}`

func TestParseCanonicalSchema(t *testing.T) {
	doc, err := Parse([]byte(canonicalSchema), "NBA2K26.exe")
	require.NoError(t, err)

	assert.Equal(t, "NBA2K26.exe", doc.Executable)
	assert.Equal(t, "2K26", doc.Version)

	require.Len(t, doc.Fields, 6)

	first := doc.Fields[0]
	assert.Equal(t, "First Name", first.Name)
	assert.Equal(t, KindUTF16, first.Kind)
	assert.Equal(t, 20, first.Capacity)

	three := doc.Fields[2]
	assert.Equal(t, KindPacked, three.Kind)
	assert.Equal(t, 2, three.StartBit)
	assert.Equal(t, 7, three.Bits)

	position := doc.Fields[3]
	assert.Equal(t, KindEnum, position.Kind)
	assert.Equal(t, []string{"PG", "SG", "SF", "PF", "C"}, position.Values)

	weight := doc.Fields[4]
	assert.Equal(t, KindFloat32, weight.Kind)

	// An 8 in a float's length slot is a byte count, not a bit count.
	salary := doc.Fields[5]
	assert.Equal(t, KindFloat64, salary.Kind)
	assert.Equal(t, 64, salary.Bits)

	// The zero-length entry is dropped with a warning, not an error.
	assert.NotEmpty(t, doc.Diags.Warnings)

	stride, ok := doc.Stride(TablePlayer)
	require.True(t, ok)
	assert.Equal(t, int64(1024), stride)

	playerChains := doc.TableChains(TablePlayer)
	require.Len(t, playerChains, 1)
	assert.Equal(t, int64(53248), playerChains[0].Base)
	assert.False(t, playerChains[0].Absolute)
	require.Len(t, playerChains[0].Hops, 1)
	assert.Equal(t, Hop{Offset: 16, Deref: true, Post: 8}, playerChains[0].Hops[0])
	assert.Equal(t, int64(256), playerChains[0].FinalOffset)

	teamChains := doc.TableChains(TableTeam)
	require.Len(t, teamChains, 1)
	assert.True(t, teamChains[0].Absolute)
	assert.True(t, teamChains[0].DirectTable)
}

func TestParseVersionKeyedSelectsMatchingGeneration(t *testing.T) {
	schema := `{
      "2K25": {
        "game_info": {"executable": "NBA2K25.exe"},
        "offsets": [{"category": "Vitals", "name": "First Name", "address": 8, "length": 16, "type": "wstring"}]
      },
      "2K26": {
        "game_info": {"executable": "NBA2K26.exe"},
        "offsets": [{"category": "Vitals", "name": "First Name", "address": 24, "length": 20, "type": "wstring"}]
      }
    }`

	doc, err := Parse([]byte(schema), "NBA2K26.exe")
	require.NoError(t, err)

	require.Len(t, doc.Fields, 1)
	assert.Equal(t, int64(24), doc.Fields[0].Offset)
	assert.Equal(t, "NBA2K26.exe", doc.Executable)

	doc, err = Parse([]byte(schema), "NBA2K25.exe")
	require.NoError(t, err)
	assert.Equal(t, int64(8), doc.Fields[0].Offset)
}

func TestParseMergedPerFieldVersions(t *testing.T) {
	schema := `{
      "versions": {
        "2K25": {"game_info": {"executable": "NBA2K25.exe", "playerSize": 900}},
        "2K26": {
          "game_info": {"executable": "NBA2K26.exe", "playerSize": 1100},
          "base_pointers": {"Player": {"address": 4096, "direct_table": true}}
        }
      },
      "offsets": [
        {
          "display_name": "Close Shot",
          "canonical_category": "Attributes",
          "versions": {
            "2K25": {"address": 100, "length": 8, "type": "bitfield", "startBit": 0},
            "2K26": {"address": 140, "length": 8, "type": "bitfield", "startBit": 4}
          }
        },
        {
          "display_name": "Gone",
          "canonical_category": "Attributes",
          "versions": {
            "2K25": {"address": 108, "length": 8, "type": "bitfield"}
          }
        }
      ]
    }`

	doc, err := Parse([]byte(schema), "NBA2K26.exe")
	require.NoError(t, err)

	require.Len(t, doc.Fields, 1)
	assert.Equal(t, "Close Shot", doc.Fields[0].Name)
	assert.Equal(t, int64(140), doc.Fields[0].Offset)
	assert.Equal(t, 4, doc.Fields[0].StartBit)

	stride, ok := doc.Stride(TablePlayer)
	require.True(t, ok)
	assert.Equal(t, int64(1100), stride)

	chains := doc.TableChains(TablePlayer)
	require.Len(t, chains, 1)
	assert.True(t, chains[0].DirectTable)
}

func TestParseLegacyBaseMap(t *testing.T) {
	schema := `{
      "process_info": {"base_address": 5368709120},
      "Base": {
        "Offset Player First Name": "0x100",
        "Offset Player Last Name": 320,
        "Player Base Address": 53248,
        "Player Offset Length": 800,
        "Player Offset Chain": [24, 48]
      }
    }`

	doc, err := Parse([]byte(schema), "NBA2K26.exe")
	require.NoError(t, err)

	require.Len(t, doc.Fields, 2)

	first, ok := findField(doc, "Vitals", "First Name")
	require.True(t, ok)
	assert.Equal(t, int64(0x100), first.Offset)
	assert.Equal(t, KindUTF16, first.Kind)
	assert.Equal(t, 20, first.Capacity)

	stride, ok := doc.Stride(TablePlayer)
	require.True(t, ok)
	assert.Equal(t, int64(800), stride)

	chains := doc.TableChains(TablePlayer)
	require.Len(t, chains, 1)
	// 53248 sits below the recorded process base, so it is image-relative.
	assert.False(t, chains[0].Absolute)
	require.Len(t, chains[0].Hops, 2)
	assert.True(t, chains[0].Hops[0].Deref)
	assert.Equal(t, int64(24), chains[0].Hops[0].Offset)
}

func TestParseNestedPlayerInfo(t *testing.T) {
	schema := `{
      "Player_Info": {
        "vitals_offsets": {
          "Handedness": {"offset_from_base": 640, "size": 1, "type": "bool"},
          "Clutch": {"offset_from_base": 640, "size": 2, "type": "bitfield"},
          "Jersey": {
            "Home": {"offset_from_base": 700, "size": 4, "type": "number"}
          },
          "Grit": {"offset_from_base": 648, "type": "bitfield", "info": {"startbit": 4, "length": 3}},
          "Divider": {"type": "blank"}
        }
      }
    }`

	doc, err := Parse([]byte(schema), "NBA2K26.exe")
	require.NoError(t, err)

	require.Len(t, doc.Fields, 4)

	handed, ok := findField(doc, "Vitals", "Handedness")
	require.True(t, ok)
	assert.Equal(t, int64(640), handed.Offset)
	assert.Equal(t, 1, handed.Bits)

	clutch, ok := findField(doc, "Vitals", "Clutch")
	require.True(t, ok)
	assert.Equal(t, 2, clutch.Bits)

	// Implicit packed runs at one offset stack after each other in name
	// order, so Clutch claims bits 0-1 and Handedness bit 2.
	assert.Equal(t, 0, clutch.StartBit)
	assert.Equal(t, clutch.StartBit+clutch.Bits, handed.StartBit)

	home, ok := findField(doc, "Vitals", "Jersey - Home")
	require.True(t, ok)
	assert.Equal(t, int64(700), home.Offset)
	assert.Equal(t, 32, home.Bits)

	// Start bit and length may live in the info sub-map. An explicit start
	// bit from there bypasses the implicit cursor.
	grit, ok := findField(doc, "Vitals", "Grit")
	require.True(t, ok)
	assert.Equal(t, 4, grit.StartBit)
	assert.Equal(t, 3, grit.Bits)

	// Template scaffolding entries produce neither fields nor warnings.
	_, ok = findField(doc, "Vitals", "Divider")
	assert.False(t, ok)

	for _, w := range doc.Diags.Warnings {
		assert.NotContains(t, w.Message, "Divider")
	}
}

func TestParseChainCandidateList(t *testing.T) {
	schema := `{
      "offsets": [{"category": "Vitals", "name": "First Name", "address": 0, "length": 16, "type": "wstring"}],
      "base_pointers": {
        "Player": {
          "address": 1000,
          "finalOffset": 64,
          "chain": [
            {"address": 2000, "finalOffset": 32},
            {"address": 3000, "absolute": true, "direct_table": true}
          ]
        }
      }
    }`

	doc, err := Parse([]byte(schema), "NBA2K26.exe")
	require.NoError(t, err)

	chains := doc.TableChains(TablePlayer)
	require.Len(t, chains, 2)

	assert.Equal(t, int64(2000), chains[0].Base)
	assert.Equal(t, int64(32), chains[0].FinalOffset)
	assert.False(t, chains[0].Absolute)

	assert.Equal(t, int64(3000), chains[1].Base)
	assert.True(t, chains[1].Absolute)
	assert.True(t, chains[1].DirectTable)
	// Candidates without their own final offset inherit the outer one.
	assert.Equal(t, int64(64), chains[1].FinalOffset)
}

func TestParseEmptySchemaFails(t *testing.T) {
	_, err := Parse([]byte(`{"offsets": []}`), "NBA2K26.exe")
	assert.ErrorIs(t, err, ErrEmptySchema)

	_, err = Parse([]byte(`{"game_info": {}}`), "NBA2K26.exe")
	assert.ErrorIs(t, err, ErrEmptySchema)

	_, err = Parse([]byte(`not json`), "NBA2K26.exe")
	assert.Error(t, err)
}

func TestParseTableLabels(t *testing.T) {
	cases := map[string]Table{
		"Player":      TablePlayer,
		"player_base": TablePlayer,
		"Teams":       TableTeam,
		"DraftClass":  TableDraftClass,
		"draft":       TableDraftClass,
		"coach":       TableStaff,
		"arena":       TableStadium,
	}

	for label, want := range cases {
		got, ok := ParseTable(label)
		require.True(t, ok, label)
		assert.Equal(t, want, got, label)
	}

	_, ok := ParseTable("unrelated")
	assert.False(t, ok)
}

func findField(doc *Document, category, name string) (Field, bool) {
	for _, f := range doc.Fields {
		if f.Category == category && f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}
