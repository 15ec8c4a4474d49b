package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rostermem/internal/catalog"
	"rostermem/internal/memproc"
	"rostermem/internal/offsets"
)

const (
	testImageBase = uint64(0x140000000)
	playerTable   = uint64(0x200000)
	playerStride  = int64(0x400)
)

func testSchema() *offsets.Document {
	return &offsets.Document{
		Executable: "NBA2K26.exe",
		Version:    "2K26",
		Fields: []offsets.Field{
			{Category: "Vitals", Name: "First Name", Offset: 0, Kind: offsets.KindUTF16, Capacity: 20},
			{Category: "Vitals", Name: "Last Name", Offset: 40, Kind: offsets.KindUTF16, Capacity: 20},
			{Category: "Vitals", Name: "Position", Offset: 0x110, Kind: offsets.KindEnum, Bits: 3,
				Values: []string{"PG", "SG", "SF", "PF", "C"}},
			{Category: "Vitals", Name: "Weight", Offset: 0x130, Kind: offsets.KindFloat32, Bits: 32},
			{Category: "Vitals", Name: "Nickname", Offset: 0, Kind: offsets.KindUTF16, Capacity: 16,
				Deref: true, DerefOffset: 0x140},
			{Category: "Attributes", Name: "Three Point", Offset: 0x100, StartBit: 2, Bits: 8,
				Kind: offsets.KindPacked},
			{Category: "Tendencies", Name: "Steal Tendency", Offset: 0x120, Bits: 8,
				Kind: offsets.KindPacked},
		},
		Chains: map[offsets.Table][]offsets.ChainSpec{
			offsets.TablePlayer: {{Base: 0x5000}},
			offsets.TableTeam:   {{Base: 0x9000, DirectTable: true}},
		},
		Strides: map[offsets.Table]int64{
			offsets.TablePlayer: playerStride,
		},
	}
}

// testEditor seeds a process image with a player table holding LeBron at slot
// zero, a vacant slot one and Jokic at slot two.
func testEditor(t *testing.T) (*Editor, *memproc.BufferProcess) {
	t.Helper()

	p := memproc.NewBufferProcess(testImageBase)
	p.PutUint64(testImageBase+0x5000, playerTable)

	p.PutUTF16(playerTable, "LeBron")
	p.PutUTF16(playerTable+40, "James")

	second := playerTable + 2*uint64(playerStride)
	p.PutUTF16(second, "Nikola")
	p.PutUTF16(second+40, "Jokic")

	// Nickname lives behind a per-record sub-structure pointer.
	p.PutUint64(playerTable+0x140, 0x300000)
	p.PutUTF16(0x300000, "King")

	doc := testSchema()

	return New(p, doc, catalog.New(doc, nil, nil), nil), p
}

func TestRecordAddress(t *testing.T) {
	e, _ := testEditor(t)

	addr, err := e.RecordAddress(offsets.TablePlayer, 2)
	require.NoError(t, err)
	assert.Equal(t, playerTable+2*uint64(playerStride), addr)

	_, err = e.RecordAddress(offsets.TablePlayer, -1)
	assert.ErrorIs(t, err, ErrBadValue)

	// No chain candidates are declared for staff.
	_, err = e.RecordAddress(offsets.TableStaff, 0)
	assert.ErrorIs(t, err, ErrTableUnavailable)

	// The team chain resolves but its record size is unknown.
	_, err = e.RecordAddress(offsets.TableTeam, 0)
	assert.ErrorIs(t, err, ErrNoStride)
}

func TestScanSkipsVacantSlots(t *testing.T) {
	e, _ := testEditor(t)

	records, err := e.Scan(offsets.TablePlayer, 3)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "LeBron James", records[0].Name)
	assert.Equal(t, 0, records[0].Handle.Index)
	assert.Equal(t, playerTable, records[0].Handle.Addr)

	assert.Equal(t, "Nikola Jokic", records[1].Name)
	assert.Equal(t, 2, records[1].Handle.Index)
}

func TestGetSetDisplayStrings(t *testing.T) {
	e, _ := testEditor(t)
	h := Handle{Table: offsets.TablePlayer, Index: 0}

	got, err := e.GetDisplay(h, "First Name", "Vitals")
	require.NoError(t, err)
	assert.Equal(t, "LeBron", got)

	require.NoError(t, e.SetDisplay(h, "First Name", "Vitals", "Bronny"))

	got, err = e.GetDisplay(h, "First Name", "Vitals")
	require.NoError(t, err)
	assert.Equal(t, "Bronny", got)
}

func TestGetSetDisplayAttributeRating(t *testing.T) {
	e, _ := testEditor(t)
	h := Handle{Table: offsets.TablePlayer, Index: 0}

	require.NoError(t, e.SetDisplay(h, "Three Point", "Attributes", "92"))

	got, err := e.GetDisplay(h, "Three Point", "Attributes")
	require.NoError(t, err)
	assert.Equal(t, "92", got)

	// The raw value sits on the 25-110 true scale, not at 92.
	raw, err := e.RawBits(h, "Three Point", "Attributes")
	require.NoError(t, err)
	assert.Equal(t, uint64(201), raw)
}

func TestGetSetDisplayTendencyRating(t *testing.T) {
	e, _ := testEditor(t)
	h := Handle{Table: offsets.TablePlayer, Index: 2}

	require.NoError(t, e.SetDisplay(h, "Steal Tendency", "Tendencies", "75"))

	got, err := e.GetDisplay(h, "Steal Tendency", "Tendencies")
	require.NoError(t, err)
	assert.Equal(t, "75", got)
}

func TestGetSetDisplayEnum(t *testing.T) {
	e, _ := testEditor(t)
	h := Handle{Table: offsets.TablePlayer, Index: 0}

	require.NoError(t, e.SetDisplay(h, "Position", "Vitals", "SF"))

	got, err := e.GetDisplay(h, "Position", "Vitals")
	require.NoError(t, err)
	assert.Equal(t, "SF", got)

	// A bare index inside the value list is accepted too.
	require.NoError(t, e.SetDisplay(h, "Position", "Vitals", "4"))

	got, err = e.GetDisplay(h, "Position", "Vitals")
	require.NoError(t, err)
	assert.Equal(t, "C", got)

	err = e.SetDisplay(h, "Position", "Vitals", "Goalkeeper")
	assert.ErrorIs(t, err, ErrBadValue)

	err = e.SetDisplay(h, "Position", "Vitals", "7")
	assert.ErrorIs(t, err, ErrBadValue)
}

func TestGetSetDisplayFloat(t *testing.T) {
	e, _ := testEditor(t)
	h := Handle{Table: offsets.TablePlayer, Index: 0}

	require.NoError(t, e.SetDisplay(h, "Weight", "Vitals", "112.5"))

	got, err := e.GetDisplay(h, "Weight", "Vitals")
	require.NoError(t, err)
	assert.Equal(t, "112.5", got)

	err = e.SetDisplay(h, "Weight", "Vitals", "heavy")
	assert.ErrorIs(t, err, ErrBadValue)
}

func TestDereferencedField(t *testing.T) {
	e, _ := testEditor(t)
	h := Handle{Table: offsets.TablePlayer, Index: 0}

	got, err := e.GetDisplay(h, "Nickname", "Vitals")
	require.NoError(t, err)
	assert.Equal(t, "King", got)

	require.NoError(t, e.SetDisplay(h, "Nickname", "Vitals", "Chosen One"))

	got, err = e.GetDisplay(h, "Nickname", "Vitals")
	require.NoError(t, err)
	assert.Equal(t, "Chosen One", got)

	// Record two carries no sub-structure pointer.
	_, err = e.GetDisplay(Handle{Table: offsets.TablePlayer, Index: 2}, "Nickname", "Vitals")
	assert.Error(t, err)
}

func TestRawBitsRoundtrip(t *testing.T) {
	e, _ := testEditor(t)
	h := Handle{Table: offsets.TablePlayer, Index: 0}

	require.NoError(t, e.SetRawBits(h, "Three Point", "Attributes", 111))

	raw, err := e.RawBits(h, "Three Point", "Attributes")
	require.NoError(t, err)
	assert.Equal(t, uint64(111), raw)

	err = e.SetRawBits(h, "Three Point", "Attributes", 256)
	assert.ErrorIs(t, err, ErrBadValue)
}

func TestUnknownFieldErrors(t *testing.T) {
	e, _ := testEditor(t)
	h := Handle{Table: offsets.TablePlayer, Index: 0}

	_, err := e.GetDisplay(h, "Wingspan", "Vitals")
	assert.ErrorIs(t, err, ErrUnknownField)

	err = e.SetDisplay(h, "Wingspan", "Vitals", "1")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = e.RawBits(h, "Wingspan", "Vitals")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestApplyBatchSkipsFailedAssignments(t *testing.T) {
	e, _ := testEditor(t)
	h := Handle{Table: offsets.TablePlayer, Index: 2}

	three, ok := e.Catalog().Find("Three Point", "Attributes")
	require.True(t, ok)
	steal, ok := e.Catalog().Find("Steal Tendency", "Tendencies")
	require.True(t, ok)

	// A packed field behind record two's nil sub-structure pointer.
	broken := offsets.Field{
		Category: "Vitals", Name: "Hidden", Offset: 8,
		Kind: offsets.KindPacked, Bits: 8, Deref: true, DerefOffset: 0x140,
	}

	applied, err := e.Apply(h, []Assignment{
		{Field: three, Raw: 201},
		{Field: broken, Raw: 1},
		{Field: steal, Raw: 191},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	raw, err := e.RawBits(h, "Three Point", "Attributes")
	require.NoError(t, err)
	assert.Equal(t, uint64(201), raw)

	raw, err = e.RawBits(h, "Steal Tendency", "Tendencies")
	require.NoError(t, err)
	assert.Equal(t, uint64(191), raw)
}

func TestPinnedHandleSurvivesInvalidate(t *testing.T) {
	e, p := testEditor(t)

	records, err := e.Scan(offsets.TablePlayer, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	pinned := records[0].Handle
	require.NotZero(t, pinned.Addr)

	// The chain now points elsewhere; the pinned handle still reads the
	// original record.
	p.PutUint64(testImageBase+0x5000, playerTable+0x100000)
	e.Invalidate()

	got, err := e.GetDisplay(pinned, "Last Name", "Vitals")
	require.NoError(t, err)
	assert.Equal(t, "James", got)
}
