package sctp_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/lsctp"
	"github.com/soypat/lsctp/sctp"
)

type sackContent struct {
	CumAck sctp.TSN
	ARWND  uint32
	Blocks []sctp.GapAckBlock
	Dups   []sctp.TSN
}

func readSACK(t *testing.T, buf []byte) sackContent {
	t.Helper()
	sf, err := sctp.NewSACKFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	var v lsctp.Validator
	sf.ValidateSize(&v)
	if v.HasError() {
		t.Fatal(v.Err())
	}
	if sf.Type() != lsctp.ChunkSACK || sf.Flags() != 0 {
		t.Fatalf("bad chunk header type=%s flags=%d", sf.Type(), sf.Flags())
	}
	if int(sf.Length()) != len(buf) {
		t.Fatalf("chunk length %d does not match appended %d", sf.Length(), len(buf))
	}
	c := sackContent{CumAck: sf.CumulativeTSNAck(), ARWND: sf.ARWND()}
	for i := 0; i < int(sf.NumGapAckBlocks()); i++ {
		c.Blocks = append(c.Blocks, sf.GapAckBlock(i))
	}
	for i := 0; i < int(sf.NumDupTSNs()); i++ {
		c.Dups = append(c.Dups, sf.DupTSN(i))
	}
	return c
}

func TestAppendSACK(t *testing.T) {
	m := newMap(t, 1000)
	for _, tsn := range []sctp.TSN{1000, 1001, 1003, 1004, 1007, 1001, 999} {
		if _, err := m.Receive(tsn); err != nil {
			t.Fatal(err)
		}
	}
	prefix := []byte{0xca, 0xfe}
	buf, err := m.AppendSACK(prefix, 65535, 0)
	if err != nil {
		t.Fatal(err)
	}
	if buf[0] != 0xca || buf[1] != 0xfe {
		t.Fatal("AppendSACK overwrote existing data")
	}
	got := readSACK(t, buf[len(prefix):])
	want := sackContent{
		CumAck: 1001,
		ARWND:  65535,
		Blocks: []sctp.GapAckBlock{{Start: 2, End: 3}, {Start: 6, End: 6}},
		Dups:   []sctp.TSN{1001, 999},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SACK mismatch (-want +got):\n%s", diff)
	}
	if m.NumDupTSNs() != 0 {
		t.Fatal("duplicate TSNs not drained after SACK")
	}
	// Second SACK carries no duplicates.
	buf, err = m.AppendSACK(buf[:0], 1000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := readSACK(t, buf); got.Dups != nil || len(got.Blocks) != 2 {
		t.Fatalf("unexpected second SACK: %+v", got)
	}
}

func TestAppendSACKNoGaps(t *testing.T) {
	m := newMap(t, 1)
	mustMark(t, m, 1, 2, 3)
	buf, err := m.AppendSACK(nil, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 16 {
		t.Fatalf("want bare 16 byte SACK, got %d bytes", len(buf))
	}
	if got := readSACK(t, buf); got.CumAck != 3 || got.Blocks != nil {
		t.Fatalf("unexpected SACK: %+v", got)
	}
}

func TestAppendSACKMaxSize(t *testing.T) {
	m := newMap(t, 0)
	for tsn := sctp.TSN(1); tsn < 12; tsn += 2 {
		mustMark(t, m, tsn) // 6 blocks.
	}
	for _, tsn := range []sctp.TSN{1, 3, 5} {
		m.Receive(tsn)
	}
	// Room for all blocks and one duplicate.
	buf, err := m.AppendSACK(nil, 0, 16+7*4)
	if err != nil {
		t.Fatal(err)
	}
	got := readSACK(t, buf)
	if len(got.Blocks) != 6 || len(got.Dups) != 1 || got.Dups[0] != 1 {
		t.Fatalf("want 6 blocks and 1 dup, got %+v", got)
	}
	if m.NumDupTSNs() != 0 {
		t.Fatal("duplicates left out of SACK must be drained")
	}

	// Room for only some blocks.
	m.MarkDup(3)
	buf, err = m.AppendSACK(buf[:0], 0, 16+4*4+3)
	if err != nil {
		t.Fatal(err)
	}
	got = readSACK(t, buf)
	if len(buf) > 16+4*4+3 {
		t.Fatalf("SACK exceeds max size: %d", len(buf))
	}
	wantBlocks := []sctp.GapAckBlock{{Start: 2, End: 2}, {Start: 4, End: 4}, {Start: 6, End: 6}, {Start: 8, End: 8}}
	if diff := cmp.Diff(wantBlocks, got.Blocks); diff != "" || got.Dups != nil {
		t.Fatalf("truncated SACK mismatch dups=%v (-want +got):\n%s", got.Dups, diff)
	}

	_, err = m.AppendSACK(nil, 0, 15)
	if !errors.Is(err, lsctp.ErrShortBuffer) {
		t.Fatalf("want ErrShortBuffer, got %v", err)
	}
}

func TestSACKFrameValidate(t *testing.T) {
	_, err := sctp.NewSACKFrame(make([]byte, 15))
	if !errors.Is(err, lsctp.ErrShortBuffer) {
		t.Fatalf("want ErrShortBuffer, got %v", err)
	}
	buf := make([]byte, 24)
	sf, err := sctp.NewSACKFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	sf.SetType(lsctp.ChunkDATA)
	sf.SetNumGapAckBlocks(1)
	sf.SetNumDupTSNs(1)
	sf.SetLength(20)

	v := lsctp.NewValidator(lsctp.ValidateAllowMultiErrors)
	sf.ValidateSize(v)
	if !v.HasError() {
		t.Fatal("expected validation errors")
	}
	var bpe *lsctp.BitPosErr
	if !errors.As(v.Err(), &bpe) {
		t.Fatalf("expected bit position error, got %v", v.Err())
	}

	// Fix fields and revalidate.
	v.ResetErr()
	sf.SetType(lsctp.ChunkSACK)
	sf.SetLength(24)
	sf.SetGapAckBlock(0, sctp.GapAckBlock{Start: 3, End: 9})
	sf.SetDupTSN(0, 77)
	sf.ValidateSize(v)
	if v.HasError() {
		t.Fatal(v.Err())
	}
	if sf.GapAckBlock(0).Len() != 7 || sf.DupTSN(0) != 77 {
		t.Fatal("field round trip failed")
	}
	sf.SetLength(32)
	sf.SetNumDupTSNs(3)
	sf.ValidateSize(v)
	if !errors.Is(v.Err(), lsctp.ErrShortBuffer) {
		t.Fatalf("want ErrShortBuffer for length past buffer, got %v", v.Err())
	}
}
