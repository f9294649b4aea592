package wire

import (
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"io"
	"wordnorm/util"
)

// Max_frame bounds a single payload; anything larger is treated as a corrupt prefix.
const Max_frame = 1 << 30

var ErrChecksum = errors.New("token stream checksum mismatch")

// WireHandler frames Wrappers as an 8-byte little-endian length followed by the payload.
type WireHandler struct {
	r io.Reader
	w io.Writer

	sent     hash.Hash
	recvd    hash.Hash
	sent_ln  uint64
	sent_tk  uint64
	recvd_ln uint64
	recvd_tk uint64
	pending  []string
	finished bool
}

// Construct_wirehandler wraps either end of a stream; r or w may be nil when unused.
func Construct_wirehandler(r io.Reader, w io.Writer) *WireHandler {
	wh := &WireHandler{
		r:     r,
		w:     w,
		sent:  md5.New(),
		recvd: md5.New(),
	}
	return wh
}

func (wh *WireHandler) readN(buf []byte) error {
	_, err := io.ReadFull(wh.r, buf)
	return err
}

func (wh *WireHandler) writeN(buf []byte) error {
	bytesWritten := uint64(0)
	for bytesWritten < uint64(len(buf)) {
		n, err := wh.w.Write(buf[bytesWritten:])
		if err != nil {
			return err
		}
		bytesWritten += uint64(n)
	}
	return nil
}

// Receive reads the next frame. It returns io.EOF only on a clean frame boundary.
func (wh *WireHandler) Receive() (*Wrapper, error) {
	prefix := make([]byte, 8)
	err := wh.readN(prefix)
	if err != nil {
		return nil, err
	}

	payloadSize := binary.LittleEndian.Uint64(prefix)
	if payloadSize > Max_frame {
		return nil, fmt.Errorf("frame of %d bytes exceeds limit", payloadSize)
	}
	payload := make([]byte, payloadSize)
	err = wh.readN(payload)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}

	data, err := Unmarshal(payload)
	if err != nil {
		return nil, err
	}

	if data.Line != nil {
		wh.recvd.Write(payload)
		wh.recvd_ln++
		wh.recvd_tk += uint64(len(data.Line.Tokens))
	} else {
		err = wh.verify(data.Trailer)
	}
	return data, err
}

func (wh *WireHandler) verify(tr *Trailer) error {
	err := util.VerifyChecksum(tr.Checksum, wh.recvd.Sum(nil))
	if err != nil {
		return fmt.Errorf("%w after %d lines", ErrChecksum, wh.recvd_ln)
	}
	if tr.Lines != wh.recvd_ln || tr.Tokens != wh.recvd_tk {
		return fmt.Errorf("trailer counts %d lines / %d tokens, received %d / %d",
			tr.Lines, tr.Tokens, wh.recvd_ln, wh.recvd_tk)
	}
	return nil
}

func (wh *WireHandler) Send(w *Wrapper) error {
	serialized, err := Marshal(w)
	if err != nil {
		return err
	}

	prefix := make([]byte, 8)
	binary.LittleEndian.PutUint64(prefix, uint64(len(serialized)))
	if err = wh.writeN(prefix); err != nil {
		return err
	}
	if err = wh.writeN(serialized); err != nil {
		return err
	}

	if w.Line != nil {
		wh.sent.Write(serialized)
		wh.sent_ln++
		wh.sent_tk += uint64(len(w.Line.Tokens))
	}
	return nil
}

// Send_line has the shape of a tokenizer emitter.
func (wh *WireHandler) Send_line(number int, tokens []string) error {
	return wh.Send(&Wrapper{Line: &Line{Number: uint64(number), Tokens: tokens}})
}

// Finish writes the trailer. Nothing may be sent after it.
func (wh *WireHandler) Finish() error {
	return wh.Send(&Wrapper{Trailer: &Trailer{
		Lines:    wh.sent_ln,
		Tokens:   wh.sent_tk,
		Checksum: wh.sent.Sum(nil),
	}})
}

// Read_word flattens the received lines into single words. It returns io.EOF after
// a verified trailer and io.ErrUnexpectedEOF if the stream stops before one.
func (wh *WireHandler) Read_word() (string, error) {
	for len(wh.pending) == 0 {
		if wh.finished {
			return "", io.EOF
		}

		res, err := wh.Receive()
		if err == io.EOF {
			return "", io.ErrUnexpectedEOF
		}
		if err != nil {
			return "", err
		}

		if res.Line != nil {
			wh.pending = res.Line.Tokens
		} else {
			wh.finished = true
		}
	}

	word := wh.pending[0]
	wh.pending = wh.pending[1:]
	return word, nil
}
