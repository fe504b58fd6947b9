package descriptor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/scenectl/internal/dataerr"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// decode parses text into out. Unknown keys are tolerated and logged.
func decode(kind, text string, out any) (toml.MetaData, error) {
	meta, err := toml.Decode(text, out)
	if err != nil {
		return meta, dataerr.Deserialization("", "parse "+kind, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		log.Debug().Str("kind", kind).Strs("keys", keys).Msg("ignoring unknown keys")
	}
	return meta, nil
}

// requireKeys checks that every dotted key ("transform.position") is present.
func requireKeys(meta toml.MetaData, required ...string) error {
	for _, key := range required {
		if !meta.IsDefined(strings.Split(key, ".")...) {
			return fmt.Errorf("%w %q", dataerr.ErrMissingField, key)
		}
	}
	return nil
}

// encode renders v as canonical TOML: no indentation under tables, keys in
// declaration order, nil optional tables omitted.
func encode(kind string, v any) (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(v); err != nil {
		return "", dataerr.Serialization("", "encode "+kind, err)
	}
	return buf.String(), nil
}

// clone returns a deep copy so built descriptors never share slices with
// their builders or callers.
func clone[T any](src T) T {
	var dst T
	if err := copier.CopyWithOption(&dst, &src, copier.Option{DeepCopy: true}); err != nil {
		// same-type copies cannot fail
		panic(fmt.Sprintf("descriptor: clone %T: %v", src, err))
	}
	return dst
}

func cloneFloats(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
