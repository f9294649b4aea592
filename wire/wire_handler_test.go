package wire

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func write_stream(t *testing.T, lines map[int][]string, order []int) []byte {
	t.Helper()
	var buf bytes.Buffer
	wh := Construct_wirehandler(nil, &buf)
	for _, n := range order {
		if err := wh.Send_line(n, lines[n]); err != nil {
			t.Fatalf("Send_line failed: %v", err)
		}
	}
	if err := wh.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	return buf.Bytes()
}

func read_words(data []byte) ([]string, error) {
	wh := Construct_wirehandler(bytes.NewReader(data), nil)
	var words []string
	for {
		w, err := wh.Read_word()
		if err == io.EOF {
			return words, nil
		}
		if err != nil {
			return words, err
		}
		words = append(words, w)
	}
}

func TestStreamRoundTrip(t *testing.T) {
	data := write_stream(t, map[int][]string{
		1: {"hello", "world"},
		4: {"привет"},
		9: {"a", "b", "c"},
	}, []int{1, 4, 9})

	wh := Construct_wirehandler(bytes.NewReader(data), nil)
	var numbers []uint64
	for {
		res, err := wh.Receive()
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if res.Trailer != nil {
			if res.Trailer.Lines != 3 || res.Trailer.Tokens != 6 {
				t.Errorf("Expected 3 lines / 6 tokens, got %d / %d", res.Trailer.Lines, res.Trailer.Tokens)
			}
			if len(res.Trailer.Checksum) != 16 {
				t.Errorf("Expected md5 checksum, got %d bytes", len(res.Trailer.Checksum))
			}
			break
		}
		numbers = append(numbers, res.Line.Number)
	}
	if !reflect.DeepEqual(numbers, []uint64{1, 4, 9}) {
		t.Errorf("Expected line numbers 1 4 9, got %v", numbers)
	}

	words, err := read_words(data)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	want := []string{"hello", "world", "привет", "a", "b", "c"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("Expected %q, got %q", want, words)
	}
}

func TestEmptyStream(t *testing.T) {
	words, err := read_words(write_stream(t, nil, nil))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("Expected no words, got %q", words)
	}
}

func TestCorruptedToken(t *testing.T) {
	data := write_stream(t, map[int][]string{1: {"alpha", "beta"}}, []int{1})
	i := bytes.Index(data, []byte("beta"))
	data[i] = 'z'

	_, err := read_words(data)
	if !errors.Is(err, ErrChecksum) {
		t.Fatalf("Expected ErrChecksum, got: %v", err)
	}
}

func TestMissingTrailer(t *testing.T) {
	var buf bytes.Buffer
	wh := Construct_wirehandler(nil, &buf)
	if err := wh.Send_line(1, []string{"only"}); err != nil {
		t.Fatalf("Send_line failed: %v", err)
	}

	words, err := read_words(buf.Bytes())
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("Expected io.ErrUnexpectedEOF, got: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"only"}) {
		t.Errorf("Expected words before the cut, got %q", words)
	}
}

func TestTruncatedFrame(t *testing.T) {
	data := write_stream(t, map[int][]string{1: {"alpha"}}, []int{1})
	_, err := read_words(data[:12])
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("Expected io.ErrUnexpectedEOF, got: %v", err)
	}
}

func TestOversizedFrame(t *testing.T) {
	data := make([]byte, 8)
	data[7] = 0xff
	wh := Construct_wirehandler(bytes.NewReader(data), nil)
	if _, err := wh.Receive(); err == nil {
		t.Fatalf("Expected an error for an oversized frame")
	}
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	inner := protowire.AppendTag(nil, 7, protowire.VarintType)
	inner = protowire.AppendVarint(inner, 99)
	inner = protowire.AppendTag(inner, 1, protowire.VarintType)
	inner = protowire.AppendVarint(inner, 3)
	inner = protowire.AppendTag(inner, 2, protowire.BytesType)
	inner = protowire.AppendString(inner, "x")

	b := protowire.AppendTag(nil, 5, protowire.BytesType)
	b = protowire.AppendString(b, "future")
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, inner)

	w, err := Unmarshal(b)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if w.Line == nil || w.Line.Number != 3 || !reflect.DeepEqual(w.Line.Tokens, []string{"x"}) {
		t.Errorf("Expected line 3 [x], got %+v", w.Line)
	}
}

func TestMarshalMatchesSchema(t *testing.T) {
	b, err := Marshal(&Wrapper{Trailer: &Trailer{Lines: 2, Tokens: 5, Checksum: []byte{0xaa}}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	num, typ, n := protowire.ConsumeTag(b)
	if num != 2 || typ != protowire.BytesType {
		t.Fatalf("Expected trailer as field 2, got field %d type %d", num, typ)
	}
	inner, _ := protowire.ConsumeBytes(b[n:])

	want := protowire.AppendTag(nil, 1, protowire.VarintType)
	want = protowire.AppendVarint(want, 2)
	want = protowire.AppendTag(want, 2, protowire.VarintType)
	want = protowire.AppendVarint(want, 5)
	want = protowire.AppendTag(want, 3, protowire.BytesType)
	want = protowire.AppendBytes(want, []byte{0xaa})
	if !bytes.Equal(inner, want) {
		t.Errorf("Expected trailer bytes %x, got %x", want, inner)
	}
}

func TestMarshalRejectsAmbiguousWrapper(t *testing.T) {
	if _, err := Marshal(&Wrapper{}); err == nil {
		t.Errorf("Expected an error for an empty wrapper")
	}
	if _, err := Marshal(&Wrapper{Line: &Line{}, Trailer: &Trailer{}}); err == nil {
		t.Errorf("Expected an error for a wrapper with both messages")
	}
	if _, err := Unmarshal(nil); err == nil {
		t.Errorf("Expected an error for an empty payload")
	}
}
