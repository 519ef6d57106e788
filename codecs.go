package statebind

import (
	"encoding/json"
	"strconv"
)

// StringCodec stores strings verbatim.
func StringCodec() Codec[string] {
	return CodecFuncs[string]{
		EncodeFunc: func(value string) (string, error) { return value, nil },
		DecodeFunc: func(raw string) (string, error) { return raw, nil },
	}
}

// IntCodec stores integers as decimal strings.
func IntCodec() Codec[int] {
	return CodecFuncs[int]{
		EncodeFunc: func(value int) (string, error) {
			return strconv.Itoa(value), nil
		},
		DecodeFunc: func(raw string) (int, error) {
			return strconv.Atoi(raw)
		},
	}
}

// Float64Codec stores floats as decimal strings.
func Float64Codec() Codec[float64] {
	return CodecFuncs[float64]{
		EncodeFunc: func(value float64) (string, error) {
			return strconv.FormatFloat(value, 'g', -1, 64), nil
		},
		DecodeFunc: func(raw string) (float64, error) {
			return strconv.ParseFloat(raw, 64)
		},
	}
}

// BoolCodec stores booleans as "true" or "false". Reads are case-sensitive:
// exactly "true" decodes to true and every other string decodes to false,
// never an error.
func BoolCodec() Codec[bool] {
	return CodecFuncs[bool]{
		EncodeFunc: func(value bool) (string, error) {
			if value {
				return "true", nil
			}
			return "false", nil
		},
		DecodeFunc: func(raw string) (bool, error) {
			return raw == "true", nil
		},
	}
}

// JSONCodec stores any JSON-serialisable value via encoding/json.
func JSONCodec[T any]() Codec[T] {
	return CodecFuncs[T]{
		EncodeFunc: func(value T) (string, error) {
			data, err := json.Marshal(value)
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
		DecodeFunc: func(raw string) (T, error) {
			var value T
			if err := json.Unmarshal([]byte(raw), &value); err != nil {
				var zero T
				return zero, err
			}
			return value, nil
		},
	}
}

// EnumCodec stores string-kinded enumeration types as their underlying
// string.
func EnumCodec[T ~string]() Codec[T] {
	return CodecFuncs[T]{
		EncodeFunc: func(value T) (string, error) { return string(value), nil },
		DecodeFunc: func(raw string) (T, error) { return T(raw), nil },
	}
}

// IntEnumCodec stores integer-kinded enumeration types as decimal strings.
func IntEnumCodec[T ~int]() Codec[T] {
	return CodecFuncs[T]{
		EncodeFunc: func(value T) (string, error) {
			return strconv.Itoa(int(value)), nil
		},
		DecodeFunc: func(raw string) (T, error) {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				var zero T
				return zero, err
			}
			return T(parsed), nil
		},
	}
}
