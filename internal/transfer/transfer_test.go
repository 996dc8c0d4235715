package transfer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"copydetails/internal/catalog"
	"copydetails/internal/propkey"
	"copydetails/internal/propstore"
	"copydetails/internal/propstore/memstore"
	"copydetails/internal/propstore/sidecar"
	"copydetails/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	src = "/media/source.wmv"
	dst = "/media/dest.wmv"
)

func catalogNames() map[propkey.Key]string {
	names := make(map[propkey.Key]string)
	for _, e := range catalog.Default.Entries() {
		names[e.Key] = e.Name
	}
	return names
}

func newFixture() (*memstore.Service, *bytes.Buffer, *util.Logger) {
	svc := memstore.New(catalogNames())
	svc.AddFile(src)
	svc.AddFile(dst)
	var buf bytes.Buffer
	return svc, &buf, util.NewLogger(&buf, util.LevelInfo, false)
}

func slotIndex(t *testing.T, key propkey.Key) int {
	t.Helper()
	i, ok := catalog.Default.Index(key)
	require.True(t, ok)
	return i
}

func TestReadIgnoresKeysOutsideCatalog(t *testing.T) {
	svc, buf, log := newFixture()
	for i := 0; i < 50; i++ {
		svc.Put(src, propkey.Key{Format: uuid.New(), ID: uint32(i)}, propstore.String("noise"))
	}
	// right format, id not whitelisted
	svc.Put(src, propkey.Key{Format: catalog.FormatMedia, ID: 31}, propstore.String("noise"))

	slots, ok := NewReader(svc, nil, log).Read(src)
	assert.True(t, ok)
	assert.Equal(t, catalog.Default.Len(), len(slots))
	assert.Equal(t, 0, slots.Populated())
	assert.Empty(t, buf.String())
}

func TestReadFillsExactlyTheMatchingSlot(t *testing.T) {
	svc, _, log := newFixture()
	svc.Put(src, propkey.Key{Format: uuid.New(), ID: 5}, propstore.String("noise"))
	svc.Put(src, catalog.MediaYear, propstore.Uint32(2001))

	slots, ok := NewReader(svc, nil, log).Read(src)
	require.True(t, ok)

	year := slotIndex(t, catalog.MediaYear)
	for i, v := range slots {
		if i == year {
			assert.True(t, propstore.Uint32(2001).Equal(v))
			continue
		}
		assert.True(t, v.IsEmpty(), "slot %d (%s)", i, catalog.Default.Entry(i).Name)
	}
}

func TestReadEmptySourceReportsNothing(t *testing.T) {
	svc, _, log := newFixture()
	slots, ok := NewReader(svc, nil, log).Read(src)
	assert.False(t, ok)
	assert.Equal(t, 0, slots.Populated())
}

func TestReadMissingSource(t *testing.T) {
	svc, buf, log := newFixture()
	slots, ok := NewReader(svc, nil, log).Read("/media/missing.wmv")
	assert.False(t, ok)
	assert.Equal(t, 0, slots.Populated())
	assert.Equal(t, "Cannot get property store for file: /media/missing.wmv\n", buf.String())
}

func TestReadCountFailure(t *testing.T) {
	svc, buf, log := newFixture()
	svc.Put(src, catalog.MediaYear, propstore.Uint32(2001))
	svc.FailCount = true

	_, ok := NewReader(svc, nil, log).Read(src)
	assert.False(t, ok)
	assert.Equal(t, "Cannot get number of properties\n", buf.String())
}

func TestReadKeyFailureContinues(t *testing.T) {
	svc, buf, log := newFixture()
	svc.Put(src, catalog.MediaPublisher, propstore.String("Criterion"))
	svc.Put(src, catalog.MediaYear, propstore.Uint32(2001))
	svc.FailKeyAt[0] = true

	slots, ok := NewReader(svc, nil, log).Read(src)
	assert.True(t, ok)
	assert.Equal(t, "Cannot get property key: 0\n", buf.String())
	assert.True(t, slots[slotIndex(t, catalog.MediaPublisher)].IsEmpty())
	assert.False(t, slots[slotIndex(t, catalog.MediaYear)].IsEmpty())
}

func TestReadValueFailureNamesTheProperty(t *testing.T) {
	svc, buf, log := newFixture()
	svc.Put(src, catalog.MediaYear, propstore.Uint32(2001))
	svc.Put(src, catalog.MediaPublisher, propstore.String("Criterion"))
	svc.FailGet[catalog.MediaYear] = true

	slots, _ := NewReader(svc, nil, log).Read(src)
	assert.Equal(t, "Cannot read existing property: System.Media.Year\n", buf.String())
	assert.True(t, slots[slotIndex(t, catalog.MediaYear)].IsEmpty())
	assert.False(t, slots[slotIndex(t, catalog.MediaPublisher)].IsEmpty())
}

func TestReadValueFailureWithoutName(t *testing.T) {
	svc := memstore.New(nil)
	svc.AddFile(src)
	svc.Put(src, catalog.MediaYear, propstore.Uint32(2001))
	svc.FailGet[catalog.MediaYear] = true
	var buf bytes.Buffer

	NewReader(svc, nil, util.NewLogger(&buf, util.LevelInfo, false)).Read(src)
	assert.Equal(t, "Cannot read unknown property\n", buf.String())
}

func TestWriteSingleYear(t *testing.T) {
	svc, buf, log := newFixture()
	svc.Put(src, catalog.MediaYear, propstore.Uint32(2001))
	svc.Put(dst, catalog.MediaPublisher, propstore.String("Untouched"))

	slots, ok := NewReader(svc, nil, log).Read(src)
	require.True(t, ok)
	require.NoError(t, NewWriter(svc, nil, log).Write(dst, slots))

	got := svc.Props(dst)
	assert.Len(t, got, 2)
	assert.True(t, propstore.Uint32(2001).Equal(got[catalog.MediaYear]))
	assert.True(t, propstore.String("Untouched").Equal(got[catalog.MediaPublisher]))
	assert.Empty(t, buf.String())
}

func TestWriteNothingOpensNothing(t *testing.T) {
	svc, _, log := newFixture()
	require.NoError(t, NewWriter(svc, nil, log).Write(dst, NewSlots(catalog.Default)))
	opens, commits := svc.Calls()
	assert.Zero(t, opens)
	assert.Zero(t, commits)
}

func TestWriteOneCommitPerProperty(t *testing.T) {
	svc, _, log := newFixture()
	slots := NewSlots(catalog.Default)
	slots[slotIndex(t, catalog.MediaYear)] = propstore.Uint32(2001)
	slots[slotIndex(t, catalog.MediaPublisher)] = propstore.String("Criterion")
	slots[slotIndex(t, catalog.MediaEncodedBy)] = propstore.String("x264")

	require.NoError(t, NewWriter(svc, nil, log).Write(dst, slots))
	opens, commits := svc.Calls()
	assert.Equal(t, 3, opens)
	assert.Equal(t, 3, commits)
}

func TestWriteIsIdempotent(t *testing.T) {
	svc, _, log := newFixture()
	slots := NewSlots(catalog.Default)
	slots[slotIndex(t, catalog.MediaYear)] = propstore.Uint32(2001)
	slots[slotIndex(t, catalog.MediaPublisher)] = propstore.String("Criterion")

	w := NewWriter(svc, nil, log)
	require.NoError(t, w.Write(dst, slots))
	first := svc.Props(dst)
	require.NoError(t, w.Write(dst, slots))
	second := svc.Props(dst)

	require.Equal(t, len(first), len(second))
	for k, v := range first {
		assert.True(t, v.Equal(second[k]), "%s", k)
	}
}

func TestWriteAbortsWhenStoreUnavailable(t *testing.T) {
	svc, buf, log := newFixture()
	slots := NewSlots(catalog.Default)
	slots[slotIndex(t, catalog.MediaYear)] = propstore.Uint32(2001)
	slots[slotIndex(t, catalog.MediaPublisher)] = propstore.String("Criterion")
	slots[slotIndex(t, catalog.MediaEncodedBy)] = propstore.String("x264")

	// year sorts first; the store locks up afterwards
	svc.WriteOpenBudget = 1

	err := NewWriter(svc, nil, log).Write(dst, slots)
	require.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, os.ErrPermission)

	got := svc.Props(dst)
	assert.Len(t, got, 1)
	assert.True(t, propstore.Uint32(2001).Equal(got[catalog.MediaYear]))

	assert.Equal(t, "Cannot get property store for file: "+dst+"\n", buf.String())
	opens, _ := svc.Calls()
	assert.Equal(t, 2, opens, "no attempts after the failed open")
}

func TestWriteLockedDestination(t *testing.T) {
	svc, buf, log := newFixture()
	svc.LockedForWrite[dst] = true
	slots := NewSlots(catalog.Default)
	slots[slotIndex(t, catalog.MediaYear)] = propstore.Uint32(2001)

	err := NewWriter(svc, nil, log).Write(dst, slots)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Empty(t, svc.Props(dst))
	assert.Contains(t, buf.String(), "Cannot get property store for file: "+dst)
}

func TestWriteSetAndCommitFailuresContinue(t *testing.T) {
	svc, buf, log := newFixture()
	slots := NewSlots(catalog.Default)
	slots[slotIndex(t, catalog.MediaYear)] = propstore.Uint32(2001)
	slots[slotIndex(t, catalog.MediaPublisher)] = propstore.String("Criterion")
	slots[slotIndex(t, catalog.MediaEncodedBy)] = propstore.String("x264")
	svc.FailSet[catalog.MediaYear] = true
	svc.FailCommit[catalog.MediaPublisher] = true

	require.NoError(t, NewWriter(svc, nil, log).Write(dst, slots))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"Cannot write property: System.Media.Year",
		"Cannot commit property: System.Media.Publisher",
	}, lines)

	got := svc.Props(dst)
	assert.Len(t, got, 1)
	assert.True(t, propstore.String("x264").Equal(got[catalog.MediaEncodedBy]))
}

func TestWriteRejectsMismatchedSlots(t *testing.T) {
	svc, _, log := newFixture()
	assert.Error(t, NewWriter(svc, nil, log).Write(dst, make(Slots, 3)))
}

func TestWriteHonoursReducedCatalog(t *testing.T) {
	svc, _, log := newFixture()
	svc.Put(src, catalog.MediaYear, propstore.Uint32(2001))
	svc.Put(src, catalog.MediaPublisher, propstore.String("Criterion"))

	cat, err := catalog.Default.Without("System.Media.Publisher")
	require.NoError(t, err)

	slots, ok := NewReader(svc, cat, log).Read(src)
	require.True(t, ok)
	require.NoError(t, NewWriter(svc, cat, log).Write(dst, slots))

	got := svc.Props(dst)
	assert.Len(t, got, 1)
	assert.Contains(t, got, catalog.MediaYear)
}

func roundTripValues() map[propkey.Key]propstore.Value {
	return map[propkey.Key]propstore.Value{
		catalog.MediaYear:      propstore.Uint32(2001),
		catalog.MediaPublisher: propstore.String("Criterion"),
		catalog.MediaEncodedBy: propstore.String("x264"),
		{Format: catalog.FormatMedia, ID: 41}:  propstore.Bool(true),
		{Format: catalog.FormatMedia, ID: 100}: propstore.Uint32(7),
		{Format: catalog.FormatMedia, ID: 23}:  propstore.StringList("A. Writer", "B. Writer"),
	}
}

func TestRoundTripMemstore(t *testing.T) {
	svc, _, log := newFixture()
	want := roundTripValues()
	for k, v := range want {
		svc.Put(src, k, v)
	}

	slots, ok := NewReader(svc, nil, log).Read(src)
	require.True(t, ok)
	require.NoError(t, NewWriter(svc, nil, log).Write(dst, slots))

	back, ok := NewReader(svc, nil, log).Read(dst)
	require.True(t, ok)
	for i, v := range slots {
		assert.True(t, v.Equal(back[i]), "%s", catalog.Default.Entry(i).Name)
	}
	assert.Equal(t, len(want), back.Populated())
}

func TestRoundTripSidecar(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.mkv")
	dest := filepath.Join(dir, "dest.mkv")
	require.NoError(t, os.WriteFile(source, []byte{0x1A, 0x45, 0xDF, 0xA3}, 0644))
	require.NoError(t, os.WriteFile(dest, []byte{0x1A, 0x45, 0xDF, 0xA3}, 0644))

	var buf bytes.Buffer
	log := util.NewLogger(&buf, util.LevelInfo, false)
	svc := sidecar.New("")

	seed := NewSlots(catalog.Default)
	for k, v := range roundTripValues() {
		seed[slotIndex(t, k)] = v
	}
	require.NoError(t, NewWriter(svc, nil, log).Write(source, seed))

	slots, ok := NewReader(svc, nil, log).Read(source)
	require.True(t, ok)
	require.NoError(t, NewWriter(svc, nil, log).Write(dest, slots))

	back, ok := NewReader(svc, nil, log).Read(dest)
	require.True(t, ok)
	for i := range seed {
		assert.True(t, seed[i].Equal(back[i]), "%s", catalog.Default.Entry(i).Name)
	}
	assert.Empty(t, buf.String())
}

func TestVerify(t *testing.T) {
	svc, _, log := newFixture()
	slots := NewSlots(catalog.Default)
	slots[slotIndex(t, catalog.MediaYear)] = propstore.Uint32(2001)
	slots[slotIndex(t, catalog.MediaPublisher)] = propstore.String("Criterion")
	slots[slotIndex(t, catalog.MediaEncodedBy)] = propstore.String("x264")

	// widened kind still counts as preserved
	svc.Put(dst, catalog.MediaYear, propstore.Int64(2001))
	svc.Put(dst, catalog.MediaPublisher, propstore.String("Someone else"))

	r := NewReader(svc, nil, log)
	result, err := r.Verify(dst, slots)
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, 3, result.Checked)
	assert.Equal(t, []string{"System.Media.Publisher"}, result.Mismatched)
	assert.Equal(t, []string{"System.Media.EncodedBy"}, result.Missing)

	require.NoError(t, NewWriter(svc, nil, log).Write(dst, slots))
	result, err = r.Verify(dst, slots)
	require.NoError(t, err)
	assert.True(t, result.Success())

	_, err = r.Verify("/media/missing.wmv", slots)
	assert.Error(t, err)
}
