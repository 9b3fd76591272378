// Package extension encodes algorithm choices into filename suffix tags and
// decodes them back. Tags are short fixed tokens appended after a file's
// existing extension; identity variants contribute no tag, so an untouched
// file keeps its exact name.
package extension

import (
	"fmt"
	"strings"

	"github.com/idelchi/zarc/internal/compression"
	"github.com/idelchi/zarc/internal/encryption"
)

// Container is the tag naming the archive container format.
const Container = "zap"

// encTags and compTags map suffix tokens back to their algorithms. Tags are
// unique across both families.
var (
	encTags = map[string]encryption.Type{
		encryption.ChaCha.Tag():  encryption.ChaCha,
		encryption.XChaCha.Tag(): encryption.XChaCha,
		encryption.AESGCM.Tag():  encryption.AESGCM,
	}

	compTags = map[string]compression.Type{
		compression.LZ4.Tag():    compression.LZ4,
		compression.Gzip.Tag():   compression.Gzip,
		compression.Snappy.Tag(): compression.Snappy,
	}
)

// Encode returns the suffix recording the non-identity algorithm choices,
// encryption tag first, e.g. ".xcha.lz4". Appending the suffix to a
// relative path extends the final element's extension; an extension-less
// name gains the suffix as its extension. Both identity variants yield an
// empty suffix.
func Encode(enc encryption.Type, comp compression.Type) string {
	var sb strings.Builder

	if tag := enc.Tag(); tag != "" {
		sb.WriteByte('.')
		sb.WriteString(tag)
	}

	if tag := comp.Tag(); tag != "" {
		sb.WriteByte('.')
		sb.WriteString(tag)
	}

	return sb.String()
}

// Decoded is the result of decoding a file name's suffix tags.
type Decoded struct {
	// Name is the file name with all recognized tags removed.
	Name string

	// Encryption selected by a recognized tag, or Passthrough.
	Encryption encryption.Type

	// Compression selected by a recognized tag, or Passthrough.
	Compression compression.Type
}

// Decode classifies the trailing dot-separated tokens of a bare file name
// (no path separators) against the tag vocabulary. Scanning stops at the
// first unrecognized token, so tokens inside the original name are never
// touched. Recognized tags are removed and select the algorithms;
// classification is order-insensitive and the leftmost tag of a family wins
// when duplicated. A name consisting only of tags cannot be reconstructed
// and is an error.
func Decode(name string) (Decoded, error) {
	tokens := strings.Split(name, ".")

	decoded := Decoded{
		Encryption:  encryption.Passthrough,
		Compression: compression.Passthrough,
	}

	end := len(tokens)

	for end > 0 {
		token := tokens[end-1]

		if typ, ok := encTags[token]; ok {
			decoded.Encryption = typ
			end--

			continue
		}

		if typ, ok := compTags[token]; ok {
			decoded.Compression = typ
			end--

			continue
		}

		break
	}

	decoded.Name = strings.Join(tokens[:end], ".")

	if decoded.Name == "" {
		return Decoded{}, fmt.Errorf("%w: %q", ErrOnlyTags, name)
	}

	return decoded, nil
}

// ArchiveName derives the archive file name for an input path: trailing
// dots trimmed, algorithm suffix appended, container extension last.
func ArchiveName(input string, enc encryption.Type, comp compression.Type) string {
	return strings.TrimRight(input, ".") + Encode(enc, comp) + "." + Container
}
