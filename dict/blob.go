package dict

import (
	"bytes"
	"encoding/binary"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/npillmayer/kaiseki/errs"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the compression of a dictionary blob.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionZSTD Compression = 1
	CompressionLZ4  Compression = 2
)

// BlobVersion is the version of the blob layout written by this package.
// Blobs of other versions are rejected.
const BlobVersion uint16 = 1

const blobMagic = "KSKI"

const blobHeaderSize = 8 // magic | kind u8 | version u16 | compression u8

const maxLZ4Ratio = 255

type blobKind uint8

const (
	blobCharDef blobKind = iota + 1
	blobMatrix
	blobTrie
	blobVals
	blobWordsIdx
	blobWords
	blobUnknown
)

// The blob files of a dictionary directory.
const (
	CharDefFile  = "char_def.bin"
	MatrixFile   = "matrix.mtx"
	TrieFile     = "dict.da"
	ValsFile     = "dict.vals"
	WordsIdxFile = "dict.wordsidx"
	WordsFile    = "dict.words"
	UnknownFile  = "unk.bin"
)

var blobFiles = map[blobKind]string{
	blobCharDef:  CharDefFile,
	blobMatrix:   MatrixFile,
	blobTrie:     TrieFile,
	blobVals:     ValsFile,
	blobWordsIdx: WordsIdxFile,
	blobWords:    WordsFile,
	blobUnknown:  UnknownFile,
}

var (
	zstdDecoder     *zstd.Decoder
	zstdDecoderOnce sync.Once
	zstdDecoderErr  error
)

func getZstdDecoder() (*zstd.Decoder, error) {
	zstdDecoderOnce.Do(func() {
		zstdDecoder, zstdDecoderErr = zstd.NewReader(nil)
	})
	return zstdDecoder, zstdDecoderErr
}

// encodeBlob wraps payload in the blob envelope. Compressed payloads are
// prefixed with their uncompressed size (u32). If lz4 cannot compress the
// payload, it is stored uncompressed.
func encodeBlob(w io.Writer, kind blobKind, c Compression, payload []byte) error {
	var body []byte
	switch c {
	case CompressionNone:
		body = payload
	case CompressionZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		body = binary.LittleEndian.AppendUint32(nil, uint32(len(payload)))
		body = enc.EncodeAll(payload, body)
		_ = enc.Close()
	case CompressionLZ4:
		compressed := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, compressed, nil)
		if err != nil {
			return err
		}
		if n == 0 {
			c, body = CompressionNone, payload
			break
		}
		body = binary.LittleEndian.AppendUint32(nil, uint32(len(payload)))
		body = append(body, compressed[:n]...)
	default:
		return errs.Argsf("unknown blob compression %d", c)
	}
	header := make([]byte, 0, blobHeaderSize)
	header = append(header, blobMagic...)
	header = append(header, byte(kind))
	header = binary.LittleEndian.AppendUint16(header, BlobVersion)
	header = append(header, byte(c))
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

// decodeBlob checks the envelope of a blob and returns its uncompressed
// payload. All failures are of kind errs.ErrDeserialize.
func decodeBlob(data []byte, kind blobKind) ([]byte, error) {
	name := blobFiles[kind]
	if len(data) < blobHeaderSize || !bytes.Equal(data[:4], []byte(blobMagic)) {
		return nil, errs.Deserializef("%s: not a dictionary blob", name)
	}
	if k := blobKind(data[4]); k != kind {
		return nil, errs.Deserializef("%s: blob of kind %d, expected %d", name, k, kind)
	}
	if v := binary.LittleEndian.Uint16(data[5:]); v != BlobVersion {
		return nil, errs.Deserializef("%s: blob version %d, expected %d", name, v, BlobVersion)
	}
	c := Compression(data[7])
	body := data[blobHeaderSize:]
	if c == CompressionNone {
		return body, nil
	}
	if len(body) < 4 {
		return nil, errs.Deserializef("%s: missing uncompressed size", name)
	}
	size := int(binary.LittleEndian.Uint32(body))
	body = body[4:]
	switch c {
	case CompressionZSTD:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, errs.Deserializef("%s: %v", name, err)
		}
		payload, err := dec.DecodeAll(body, nil)
		if err != nil {
			return nil, errs.Deserializef("%s: %v", name, err)
		}
		if len(payload) != size {
			return nil, errs.Deserializef("%s: decompressed size mismatch", name)
		}
		return payload, nil
	case CompressionLZ4:
		if size > maxLZ4Ratio*len(body)+16 {
			return nil, errs.Deserializef("%s: implausible uncompressed size %d", name, size)
		}
		payload := make([]byte, size)
		n, err := lz4.UncompressBlock(body, payload)
		if err != nil {
			return nil, errs.Deserializef("%s: %v", name, err)
		}
		if n != size {
			return nil, errs.Deserializef("%s: decompressed size mismatch", name)
		}
		return payload, nil
	}
	return nil, errs.Deserializef("%s: unknown compression %d", name, c)
}
